package cache

import (
	"context"
	"errors"
	"time"
)

// RetryableError marks a transient failure (a backend that is still
// starting, a dropped connection).
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. nil stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// Error returns the wrapped message.
func (e *RetryableError) Error() string { return e.Err.Error() }

// Unwrap returns the wrapped error.
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// retryAttempts and retryDelay drive RetryWithBackoff; tests shorten them.
var (
	retryAttempts = 3
	retryDelay    = 500 * time.Millisecond
)

// RetryWithBackoff calls fn until it succeeds, returns a non-retryable
// error, or runs out of attempts. The delay doubles after each failure.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryDelay
	var lastErr error

	for i := 0; i < retryAttempts; i++ {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !IsRetryable(err) {
			return err
		}

		if i < retryAttempts-1 {
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
