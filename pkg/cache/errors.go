package cache

import (
	"context"
	"errors"
	"time"
)

// ErrNetwork marks failures to reach a remote backend. RedisCache wraps
// connection errors with it so callers can fall back to computing the layout.
var ErrNetwork = errors.New("network error")

// RetryableError flags a backend failure as transient.
type RetryableError struct{ Err error }

// Retryable marks err as transient. It returns nil for a nil err.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err, or any error it wraps, was marked with
// [Retryable].
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// backoff is a bounded retry schedule with a doubling delay.
type backoff struct {
	attempts int
	first    time.Duration
}

// redisBackoff covers a Redis failover without stalling a request for long:
// the waits are 100ms and 200ms.
var redisBackoff = backoff{attempts: 3, first: 100 * time.Millisecond}

// run calls fn until it succeeds, returns an error not marked retryable, or
// the attempts are used up. The last error is returned.
func (b backoff) run(ctx context.Context, fn func() error) error {
	wait := b.first
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsRetryable(err) || attempt >= b.attempts {
			return err
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait *= 2
	}
}

// RetryWithBackoff runs fn on the schedule RedisCache uses for reads and
// writes. Only errors marked with [Retryable] are retried.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return redisBackoff.run(ctx, fn)
}
