package retry

import (
	"context"
	"fmt"
	"time"

	"resumeforge-utils/internal/logging"
	"resumeforge-utils/internal/logging/types"
	"resumeforge-utils/pkg/utils"
)

const defaultMaxRetries = 3

// Operation is a unit of work the executor can re-invoke.
type Operation func(ctx context.Context) error

// Executor re-invokes failed operations for retryable error kinds, waiting
// out each kind's suggested delay between attempts. Attempt counts are
// tracked per (templateID, userID) key and cleared on success or
// exhaustion. Non-retryable errors propagate immediately.
type Executor struct {
	store      AttemptStore
	maxRetries int
	log        types.Logger

	// sleep is swappable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewExecutor(store AttemptStore, maxRetries int) *Executor {
	if store == nil {
		store = NewInMemoryAttemptStore()
	}
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return &Executor{
		store:      store,
		maxRetries: maxRetries,
		log:        logging.GetGlobalLogger(),
		sleep:      sleepCtx,
	}
}

// Do runs the operation, retrying per the error taxonomy.
func (e *Executor) Do(ctx context.Context, templateID, userID string, op Operation) error {
	key := attemptKey(templateID, userID)

	for {
		err := op(ctx)
		if err == nil {
			if clearErr := e.store.Clear(ctx, key); clearErr != nil {
				e.log.Warn("failed to clear retry counter", map[string]interface{}{
					"key":   key,
					"error": clearErr.Error(),
				})
			}
			return nil
		}

		renderErr := utils.AsRenderError(err)
		if !renderErr.Retryable() {
			return err
		}

		attempts, storeErr := e.store.Increment(ctx, key)
		if storeErr != nil {
			e.log.Warn("retry counter unavailable, not retrying", map[string]interface{}{
				"key":   key,
				"error": storeErr.Error(),
			})
			return err
		}
		if attempts >= e.maxRetries {
			if clearErr := e.store.Clear(ctx, key); clearErr != nil {
				e.log.Warn("failed to clear retry counter", map[string]interface{}{
					"key":   key,
					"error": clearErr.Error(),
				})
			}
			e.log.Error("retries exhausted", map[string]interface{}{
				"key":      key,
				"attempts": attempts,
				"kind":     string(renderErr.Kind),
			})
			return err
		}

		delay := renderErr.RetryDelay()
		e.log.Warn("operation failed, retrying", map[string]interface{}{
			"key":      key,
			"attempt":  attempts,
			"kind":     string(renderErr.Kind),
			"delay_ms": delay.Milliseconds(),
		})
		if sleepErr := e.sleep(ctx, delay); sleepErr != nil {
			return sleepErr
		}
	}
}

func attemptKey(templateID, userID string) string {
	return fmt.Sprintf("%s:%s", templateID, userID)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
