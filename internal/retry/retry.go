package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Config controls the attempt budget and backoff curve.
type Config struct {
	// Attempts is the total attempt budget, including the first. Values
	// below 1 are treated as 1.
	Attempts int

	// Base scales the backoff curve. The wait before attempt k (k >= 2)
	// is Base << (k-1): with the default 1s base that is 2s, 4s, 8s, ...
	Base time.Duration

	// Retryable decides whether a failed attempt is worth repeating. Nil
	// means every failure except context cancellation is retried.
	Retryable func(error) bool

	// Sleep is the wait primitive between attempts, overridable in tests.
	// Nil means a timer that honors context cancellation.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultConfig returns the standard budget: three attempts with waits of
// 2s and 4s between them.
func DefaultConfig() Config {
	return Config{
		Attempts: 3,
		Base:     time.Second,
	}
}

// AttemptsError wraps the final failure after the budget is spent,
// preserving the attempt count for user-visible messages. Unwrap exposes
// the underlying failure for classification.
type AttemptsError struct {
	Attempts int
	Err      error
}

func (e *AttemptsError) Error() string {
	if e.Attempts == 1 {
		return fmt.Sprintf("after 1 attempt: %v", e.Err)
	}
	return fmt.Sprintf("after %d attempts: %v", e.Attempts, e.Err)
}

func (e *AttemptsError) Unwrap() error { return e.Err }

// Do runs op under cfg's budget, backing off between attempts. Cancellation
// is terminal: a context cancelled before an attempt, mid-attempt, or
// during a backoff wait returns immediately without further attempts and
// without the AttemptsError wrapper. Any other failure is retried until the
// budget runs out, then wrapped in *AttemptsError around the last failure.
func Do[T any](ctx context.Context, cfg Config, op func(context.Context) (T, error)) (T, error) {
	var zero T

	attempts := cfg.Attempts
	if attempts < 1 {
		attempts = 1
	}
	base := cfg.Base
	if base <= 0 {
		base = time.Second
	}
	retryable := cfg.Retryable
	if retryable == nil {
		retryable = defaultRetryable
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, base<<(attempt-1)); err != nil {
				return zero, err
			}
		}
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		value, err := op(ctx)
		if err == nil {
			return value, nil
		}
		if !retryable(err) {
			return zero, err
		}
		lastErr = err
	}
	return zero, &AttemptsError{Attempts: attempts, Err: lastErr}
}

func defaultRetryable(err error) bool {
	return !errors.Is(err, context.Canceled)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
