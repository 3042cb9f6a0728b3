package retry

import (
	"context"
	"testing"
	"time"

	"resumeforge-utils/pkg/utils"
)

func newFastExecutor(store AttemptStore, maxRetries int) (*Executor, *[]time.Duration) {
	e := NewExecutor(store, maxRetries)
	var delays []time.Duration
	e.sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}
	return e, &delays
}

func TestRetryEventualSuccessClearsCounter(t *testing.T) {
	store := NewInMemoryAttemptStore()
	executor, delays := newFastExecutor(store, 3)

	calls := 0
	err := executor.Do(context.Background(), "tmpl_a", "user_1", func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return utils.NewError(utils.ErrNetworkError, "connection reset")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if store.Count("tmpl_a:user_1") != 0 {
		t.Error("counter should be cleared on success")
	}
	for _, d := range *delays {
		if d != 2*time.Second {
			t.Errorf("network errors should wait 2s, got %v", d)
		}
	}
}

func TestNonRetryableErrorPropagatesImmediately(t *testing.T) {
	executor, delays := newFastExecutor(NewInMemoryAttemptStore(), 3)

	calls := 0
	err := executor.Do(context.Background(), "tmpl_a", "user_1", func(ctx context.Context) error {
		calls++
		return utils.NewValidationError("bad input")
	})
	if err == nil {
		t.Fatal("expected the validation error to propagate")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 for a non-retryable error", calls)
	}
	if len(*delays) != 0 {
		t.Error("non-retryable errors must not wait")
	}
}

func TestRetryExhaustionPropagatesAndClears(t *testing.T) {
	store := NewInMemoryAttemptStore()
	executor, _ := newFastExecutor(store, 3)

	calls := 0
	err := executor.Do(context.Background(), "tmpl_a", "user_1", func(ctx context.Context) error {
		calls++
		return utils.NewError(utils.ErrStorageError, "disk full")
	})
	if err == nil {
		t.Fatal("expected exhaustion to propagate the error")
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if store.Count("tmpl_a:user_1") != 0 {
		t.Error("counter should be cleared on exhaustion")
	}
}

func TestRetryKeysAreIndependent(t *testing.T) {
	store := NewInMemoryAttemptStore()
	executor, _ := newFastExecutor(store, 3)

	fail := func(ctx context.Context) error {
		return utils.NewError(utils.ErrNetworkError, "down")
	}
	_ = executor.Do(context.Background(), "tmpl_a", "user_1", fail)

	// A different (template, user) pair starts with a fresh budget.
	calls := 0
	err := executor.Do(context.Background(), "tmpl_a", "user_2", func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return utils.NewError(utils.ErrNetworkError, "down")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestRetryHonorsContextCancellation(t *testing.T) {
	executor := NewExecutor(NewInMemoryAttemptStore(), 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := executor.Do(ctx, "tmpl_a", "user_1", func(ctx context.Context) error {
		return utils.NewError(utils.ErrNetworkError, "down")
	})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRetryDelaysFollowTaxonomy(t *testing.T) {
	cases := map[utils.ErrorKind]time.Duration{
		utils.ErrRateLimitExceeded: 5 * time.Second,
		utils.ErrNetworkError:      2 * time.Second,
		utils.ErrStorageError:      3 * time.Second,
		utils.ErrRenderFailed:      1 * time.Second,
		utils.ErrExportFailed:      1 * time.Second,
	}
	for kind, want := range cases {
		if got := utils.NewError(kind, "x").RetryDelay(); got != want {
			t.Errorf("%s delay = %v, want %v", kind, got, want)
		}
	}
}
