package api

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"annotation-exporter/internal/config"
	"annotation-exporter/internal/export"
	"annotation-exporter/internal/rossum"
)

const annotationBody = `{
	"results": [{
		"content": [
			{"schema_id": "invoice_info_section", "children": [
				{"schema_id": "document_id", "value": "INV-1"}
			]}
		]
	}]
}`

func newTestServer(t *testing.T, sourceURL, resultURL string) *Server {
	t.Helper()
	cfg := config.Config{
		CorrectUsername: "test",
		CorrectPassword: "test",
		RossumToken:     "t",
		BaseRossumURL:   sourceURL,
		ResultRossumURL: resultURL,
		HTTPTimeout:     5 * time.Second,
		RetryAttempts:   2,
		RetryBaseDelay:  time.Millisecond,
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	exporter := export.New(rossum.NewClient(cfg), log)
	return NewServer(exporter, log, cfg)
}

func doExport(srv *Server, body string, withAuth bool, user, pass string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/export", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if withAuth {
		req.SetBasicAuth(user, pass)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestExport_FullRun(t *testing.T) {
	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(annotationBody))
	}))
	defer source.Close()
	result := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer result.Close()

	srv := newTestServer(t, source.URL, result.URL)
	rec := doExport(srv, `{"annotation_id": 1, "queue_id": 1}`, true, "test", "test")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp["success"] != true {
		t.Errorf("expected success true, got %v", resp)
	}
	if _, ok := resp["error_message"]; ok {
		t.Errorf("expected no error_message, got %v", resp)
	}
}

func TestExport_NotFoundAnnotation(t *testing.T) {
	source := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer source.Close()

	srv := newTestServer(t, source.URL, "http://127.0.0.1:0")
	rec := doExport(srv, `{"annotation_id": 1, "queue_id": 1}`, true, "test", "test")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp["success"] != false {
		t.Errorf("expected success false, got %v", resp)
	}
	if resp["error_message"] != "Couldn't find the annotation." {
		t.Errorf("expected not-found message, got %v", resp["error_message"])
	}
}

func TestExport_MissingAuth(t *testing.T) {
	srv := newTestServer(t, "http://127.0.0.1:0", "http://127.0.0.1:0")
	rec := doExport(srv, `{"annotation_id": 1, "queue_id": 1}`, false, "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestExport_WrongCredentials(t *testing.T) {
	srv := newTestServer(t, "http://127.0.0.1:0", "http://127.0.0.1:0")
	rec := doExport(srv, `{"annotation_id": 1, "queue_id": 1}`, true, "test", "wrong")
	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", rec.Code)
	}
}

func TestExport_InvalidBody(t *testing.T) {
	srv := newTestServer(t, "http://127.0.0.1:0", "http://127.0.0.1:0")

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"missing annotation_id", `{"queue_id": 1}`},
		{"missing queue_id", `{"annotation_id": 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doExport(srv, tt.body, true, "test", "test")
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body)
			}
		})
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, "http://127.0.0.1:0", "http://127.0.0.1:0")
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
