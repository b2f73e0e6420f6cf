package embedding

import (
	"context"
	"time"
)

const (
	defaultMaxRetries = 3
	initialBackoff    = 1 * time.Second
	maxBackoff        = 30 * time.Second
	backoffMultiplier = 2.0
)

// retryable is reported by providers for transient failures (HTTP 429/5xx,
// transport errors). Anything else fails immediately.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

func markRetryable(err error) error {
	return &retryableError{err: err}
}

func isRetryable(err error) bool {
	_, ok := err.(*retryableError)
	return ok
}

// withRetry runs fn up to maxRetries+1 times with exponential backoff,
// honouring context cancellation between attempts.
func withRetry(ctx context.Context, maxRetries int, fn func() error) error {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	backoff := initialBackoff
	var err error
	for attempt := 0; ; attempt++ {
		err = fn()
		if err == nil || !isRetryable(err) || attempt >= maxRetries {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = time.Duration(float64(backoff) * backoffMultiplier)
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}
}
