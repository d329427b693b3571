package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork is returned for backend failures (timeouts, connection errors).
var ErrNetwork = errors.New("network error")

// RetryableError marks an error as transient: RetryWithBackoff retries
// the operation instead of giving up.
type RetryableError struct{ Err error }

// Retryable marks err as transient. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap exposes the underlying error to errors.Is and errors.As.
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a RetryableError mark.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// RetryWithBackoff runs fn up to three times, doubling the wait between
// attempts starting from one second. Only errors marked Retryable are
// retried; anything else returns immediately. Context cancellation cuts
// the waiting short.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	const attempts = 3
	for i, delay := 0, time.Second; ; i, delay = i+1, delay*2 {
		err := fn()
		if err == nil || !IsRetryable(err) {
			return err
		}
		if i == attempts-1 {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}
