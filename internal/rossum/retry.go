package rossum

import (
	"errors"
	"fmt"
	"time"
)

// retryableError indicates a transient failure worth another attempt: a 5xx
// response or a network-level error.
type retryableError struct {
	statusCode int
	cause      error
}

func (e *retryableError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("retryable error: %v", e.cause)
	}
	return fmt.Sprintf("retryable error (status %d)", e.statusCode)
}

func (e *retryableError) Unwrap() error {
	return e.cause
}

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var retryErr *retryableError
	return errors.As(err, &retryErr)
}

// Backoff returns the wait before retry attempt n (0-indexed), doubling from
// base and capped at 30s.
func Backoff(attempt int, base time.Duration) time.Duration {
	d := base << uint(attempt)
	if d > 30*time.Second {
		d = 30 * time.Second
	}
	return d
}
