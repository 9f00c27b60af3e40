package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// recordingSleep captures requested backoff waits without actually waiting.
func recordingSleep(waits *[]time.Duration) func(context.Context, time.Duration) error {
	return func(ctx context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return ctx.Err()
	}
}

func TestDo_FirstAttemptSuccessSkipsBackoff(t *testing.T) {
	var waits []time.Duration
	cfg := DefaultConfig()
	cfg.Sleep = recordingSleep(&waits)

	calls := 0
	got, err := Do(context.Background(), cfg, func(ctx context.Context) (string, error) {
		calls++
		return "value", nil
	})
	if err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if got != "value" || calls != 1 {
		t.Fatalf("Do = %q after %d calls, want value after 1", got, calls)
	}
	if len(waits) != 0 {
		t.Fatalf("waits = %v, want none", waits)
	}
}

func TestDo_RetriesWithDoublingBackoff(t *testing.T) {
	var waits []time.Duration
	cfg := DefaultConfig()
	cfg.Sleep = recordingSleep(&waits)

	calls := 0
	got, err := Do(context.Background(), cfg, func(ctx context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, fmt.Errorf("transient %d", calls)
		}
		return 42, nil
	})
	if err != nil {
		t.Fatalf("Do returned error: %v", err)
	}
	if got != 42 || calls != 3 {
		t.Fatalf("Do = %d after %d calls, want 42 after 3", got, calls)
	}
	if len(waits) != 2 || waits[0] != 2*time.Second || waits[1] != 4*time.Second {
		t.Fatalf("waits = %v, want [2s 4s]", waits)
	}
}

func TestDo_ExhaustedBudgetWrapsLastFailure(t *testing.T) {
	var waits []time.Duration
	cfg := DefaultConfig()
	cfg.Sleep = recordingSleep(&waits)

	last := errors.New("still broken")
	calls := 0
	_, err := Do(context.Background(), cfg, func(ctx context.Context) (int, error) {
		calls++
		if calls < 3 {
			return 0, fmt.Errorf("broken %d", calls)
		}
		return 0, last
	})

	var attemptsErr *AttemptsError
	if !errors.As(err, &attemptsErr) {
		t.Fatalf("Do error = %v, want *AttemptsError", err)
	}
	if attemptsErr.Attempts != 3 {
		t.Fatalf("Attempts = %d, want 3", attemptsErr.Attempts)
	}
	if !errors.Is(err, last) {
		t.Fatalf("Do error %v should unwrap to the last failure", err)
	}
	if calls != 3 || len(waits) != 2 {
		t.Fatalf("calls = %d waits = %v, want full budget", calls, waits)
	}
}

func TestDo_CancellationDuringAttemptIsTerminal(t *testing.T) {
	var waits []time.Duration
	cfg := DefaultConfig()
	cfg.Sleep = recordingSleep(&waits)

	calls := 0
	_, err := Do(context.Background(), cfg, func(ctx context.Context) (int, error) {
		calls++
		return 0, fmt.Errorf("execute request: %w", context.Canceled)
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Do error = %v, want context.Canceled", err)
	}
	var attemptsErr *AttemptsError
	if errors.As(err, &attemptsErr) {
		t.Fatalf("cancellation should not be wrapped in AttemptsError")
	}
	if calls != 1 || len(waits) != 0 {
		t.Fatalf("calls = %d waits = %v, want single attempt and no waits", calls, waits)
	}
}

func TestDo_CancellationDuringBackoffStopsAttempts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Sleep = func(ctx context.Context, d time.Duration) error {
		return context.Canceled
	}

	calls := 0
	_, err := Do(context.Background(), cfg, func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Do error = %v, want context.Canceled", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1 (no attempt after cancelled backoff)", calls)
	}
}

func TestDo_CancelledBeforeFirstAttempt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, err := Do(ctx, DefaultConfig(), func(ctx context.Context) (int, error) {
		calls++
		return 0, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Do error = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Fatalf("calls = %d, want 0", calls)
	}
}

func TestDo_CustomRetryableStopsEarly(t *testing.T) {
	var waits []time.Duration
	fatal := errors.New("fatal")
	cfg := Config{
		Attempts:  3,
		Base:      time.Second,
		Retryable: func(err error) bool { return !errors.Is(err, fatal) },
		Sleep:     recordingSleep(&waits),
	}

	calls := 0
	_, err := Do(context.Background(), cfg, func(ctx context.Context) (int, error) {
		calls++
		return 0, fatal
	})
	if !errors.Is(err, fatal) {
		t.Fatalf("Do error = %v, want fatal", err)
	}
	var attemptsErr *AttemptsError
	if errors.As(err, &attemptsErr) {
		t.Fatalf("non-retryable failure should not be wrapped in AttemptsError")
	}
	if calls != 1 || len(waits) != 0 {
		t.Fatalf("calls = %d waits = %v, want immediate stop", calls, waits)
	}
}

func TestDo_BudgetFloorIsOneAttempt(t *testing.T) {
	calls := 0
	_, err := Do(context.Background(), Config{Attempts: 0}, func(ctx context.Context) (int, error) {
		calls++
		return 0, errors.New("broken")
	})
	var attemptsErr *AttemptsError
	if !errors.As(err, &attemptsErr) || attemptsErr.Attempts != 1 {
		t.Fatalf("Do error = %v, want AttemptsError with 1 attempt", err)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}
