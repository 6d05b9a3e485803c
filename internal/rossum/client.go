package rossum

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"annotation-exporter/internal/annotation"
	"annotation-exporter/internal/config"
)

// Client communicates with the Rossum HTTP API.
type Client struct {
	baseURL   string
	token     string
	resultURL string

	retryAttempts  int
	retryBaseDelay time.Duration

	httpClient *http.Client
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseRossumURL, "/"),
		token:          cfg.RossumToken,
		resultURL:      cfg.ResultRossumURL,
		retryAttempts:  cfg.RetryAttempts,
		retryBaseDelay: cfg.RetryBaseDelay,
		httpClient: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
	}
}

// FetchError is the terminal failure of an annotation fetch, after retries
// are exhausted or a non-retryable response is received.
type FetchError struct {
	Message string
}

func (e *FetchError) Error() string {
	return e.Message
}

// FetchAnnotation downloads one annotation export. Server errors and
// transport failures are retried with exponential backoff; 4xx responses are
// surfaced immediately with the server-provided detail.
func (c *Client) FetchAnnotation(ctx context.Context, queueID, annotationID int) (*annotation.Annotation, error) {
	for attempt := 0; attempt < c.retryAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, &FetchError{Message: "Internal error"}
			case <-time.After(Backoff(attempt-1, c.retryBaseDelay)):
			}
		}

		ann, err := c.fetchAnnotationOnce(ctx, queueID, annotationID)
		if err == nil {
			return ann, nil
		}
		if !IsRetryable(err) {
			return nil, &FetchError{Message: err.Error()}
		}
	}
	return nil, &FetchError{Message: "Internal error"}
}

func (c *Client) fetchAnnotationOnce(ctx context.Context, queueID, annotationID int) (*annotation.Annotation, error) {
	u := fmt.Sprintf("%s/v1/queues/%d/export?id=%d", c.baseURL, queueID, annotationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "token "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &retryableError{cause: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &retryableError{cause: err}
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		return nil, &retryableError{statusCode: resp.StatusCode}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, errors.New(detailMessage(body))
	}

	var ann annotation.Annotation
	if err := json.Unmarshal(body, &ann); err != nil {
		return nil, fmt.Errorf("decode annotation: %w", err)
	}
	return &ann, nil
}

// detailMessage extracts the API error detail from a 4xx body.
func detailMessage(body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	return "Something wrong"
}

// SubmitResult delivers the rendered XML to the result endpoint. Delivery is
// best-effort: a single POST, no retry, and the response status is not
// inspected. The transport error, if any, is returned so the caller can log
// it, but delivery failure never fails an export.
func (c *Client) SubmitResult(ctx context.Context, annotationID int, xmlResult []byte) error {
	form := url.Values{
		"annotationId": {strconv.Itoa(annotationID)},
		"content":      {base64.StdEncoding.EncodeToString(xmlResult)},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.resultURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submit result: %w", err)
	}
	resp.Body.Close()
	return nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
