package retry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"resumeforge-utils/pkg/utils"
)

// AttemptStore tracks retry attempt counts keyed by (templateID, userID).
type AttemptStore interface {
	// Increment bumps the counter for a key and returns the new count.
	Increment(ctx context.Context, key string) (int, error)

	// Clear drops the counter for a key.
	Clear(ctx context.Context, key string) error
}

// InMemoryAttemptStore keeps counters in process memory.
type InMemoryAttemptStore struct {
	mu       sync.Mutex
	attempts map[string]int
}

func NewInMemoryAttemptStore() *InMemoryAttemptStore {
	return &InMemoryAttemptStore{attempts: make(map[string]int)}
}

func (s *InMemoryAttemptStore) Increment(ctx context.Context, key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts[key]++
	return s.attempts[key], nil
}

func (s *InMemoryAttemptStore) Clear(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.attempts, key)
	return nil
}

// Count is exposed for tests and monitoring.
func (s *InMemoryAttemptStore) Count(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts[key]
}

// RedisAttemptStore keeps counters in Redis so retry budgets survive
// restarts and are shared across instances.
type RedisAttemptStore struct {
	client *utils.RedisClient
	ttl    time.Duration
}

func NewRedisAttemptStore(client *utils.RedisClient, ttl time.Duration) *RedisAttemptStore {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisAttemptStore{client: client, ttl: ttl}
}

func (s *RedisAttemptStore) Increment(ctx context.Context, key string) (int, error) {
	n, err := s.client.Incr(ctx, s.redisKey(key), s.ttl)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (s *RedisAttemptStore) Clear(ctx context.Context, key string) error {
	return s.client.Delete(ctx, s.redisKey(key))
}

func (s *RedisAttemptStore) redisKey(key string) string {
	return fmt.Sprintf("retry:attempts:%s", key)
}
