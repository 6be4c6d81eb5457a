package cache

import (
	"context"
	"errors"
	"time"
)

// ErrBackend marks a failure of a remote cache backend.
var ErrBackend = errors.New("cache backend error")

// RetryableError marks an error that is worth another attempt.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. It returns nil for nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }

func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err was wrapped with Retryable.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// Backoff configures retryWithBackoff.
type Backoff struct {
	Attempts int
	Delay    time.Duration // doubled after each failed attempt
}

// DefaultBackoff suits a cache in front of a CPU-bound search: a stalled
// backend should cost milliseconds, not seconds.
var DefaultBackoff = Backoff{Attempts: 3, Delay: 20 * time.Millisecond}

// retryWithBackoff calls fn until it succeeds, returns a non-retryable error,
// or runs out of attempts.
func retryWithBackoff(ctx context.Context, b Backoff, fn func() error) error {
	delay := b.Delay
	var lastErr error
	for i := 0; i < max(b.Attempts, 1); i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}
		if i < b.Attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}
