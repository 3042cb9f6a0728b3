package background

import (
	"context"
	"fmt"
	"sync"
	"time"

	"resumeforge-utils/pkg/models"
	"resumeforge-utils/pkg/utils"
)

// TaskStatus represents the status of a background task
type TaskStatus string

const (
	TaskStatusAccepted   TaskStatus = "ACCEPTED"
	TaskStatusProcessing TaskStatus = "PROCESSING"
	TaskStatusSuccess    TaskStatus = "SUCCESS"
	TaskStatusFailure    TaskStatus = "FAILURE"
)

// TaskType represents the type of background task
type TaskType string

const (
	TaskTypeRender TaskType = "render"
	TaskTypeExport TaskType = "export"
)

// TaskResult represents the result of a background task
type TaskResult struct {
	ProcessID      string                 `json:"processId"`
	Type           TaskType               `json:"type"`
	Status         TaskStatus             `json:"status"`
	Data           interface{}            `json:"data,omitempty"`
	Error          string                 `json:"error,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	CompletedAt    *time.Time             `json:"completedAt,omitempty"`
	ProcessingTime *time.Duration         `json:"processingTime,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// RenderTaskData is the payload of a finished render task.
type RenderTaskData struct {
	Rendered *models.RenderedTemplate `json:"rendered,omitempty"`
	Warnings []models.RenderWarning   `json:"warnings,omitempty"`
}

// TaskStore defines the interface for storing and retrieving task results
type TaskStore interface {
	// Store stores a task result
	Store(ctx context.Context, result *TaskResult) error

	// Get retrieves a task result by process ID
	Get(ctx context.Context, processID string) (*TaskResult, error)

	// Update updates a task result
	Update(ctx context.Context, result *TaskResult) error

	// Delete removes a task result
	Delete(ctx context.Context, processID string) error

	// Cleanup removes expired task results
	Cleanup(ctx context.Context, maxAge time.Duration) error

	// List returns all task results (for monitoring)
	List(ctx context.Context) ([]*TaskResult, error)
}

// InMemoryTaskStore implements TaskStore using in-memory storage
type InMemoryTaskStore struct {
	mu    sync.RWMutex
	tasks map[string]*TaskResult
}

// NewInMemoryTaskStore creates a new in-memory task store
func NewInMemoryTaskStore() *InMemoryTaskStore {
	return &InMemoryTaskStore{
		tasks: make(map[string]*TaskResult),
	}
}

// Store stores a task result
func (s *InMemoryTaskStore) Store(ctx context.Context, result *TaskResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks[result.ProcessID] = result
	return nil
}

// Get retrieves a task result by process ID
func (s *InMemoryTaskStore) Get(ctx context.Context, processID string) (*TaskResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, exists := s.tasks[processID]
	if !exists {
		return nil, ErrTaskNotFound
	}

	return result, nil
}

// Update updates a task result
func (s *InMemoryTaskStore) Update(ctx context.Context, result *TaskResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[result.ProcessID]; !exists {
		return ErrTaskNotFound
	}

	s.tasks[result.ProcessID] = result
	return nil
}

// Delete removes a task result
func (s *InMemoryTaskStore) Delete(ctx context.Context, processID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[processID]; !exists {
		return ErrTaskNotFound
	}

	delete(s.tasks, processID)
	return nil
}

// Cleanup removes expired task results
func (s *InMemoryTaskStore) Cleanup(ctx context.Context, maxAge time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)

	for processID, result := range s.tasks {
		if result.CreatedAt.Before(cutoff) {
			delete(s.tasks, processID)
		}
	}

	return nil
}

// List returns all task results (for monitoring)
func (s *InMemoryTaskStore) List(ctx context.Context) ([]*TaskResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*TaskResult, 0, len(s.tasks))
	for _, result := range s.tasks {
		results = append(results, result)
	}

	return results, nil
}

// RedisTaskStore implements TaskStore on Redis so task results survive
// restarts and are visible across instances. Expiry rides on the key TTL.
type RedisTaskStore struct {
	client *utils.RedisClient
	ttl    time.Duration
}

// NewRedisTaskStore creates a Redis-backed task store.
func NewRedisTaskStore(client *utils.RedisClient, ttl time.Duration) *RedisTaskStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisTaskStore{client: client, ttl: ttl}
}

func (s *RedisTaskStore) key(processID string) string {
	return fmt.Sprintf("task:result:%s", processID)
}

func (s *RedisTaskStore) Store(ctx context.Context, result *TaskResult) error {
	return s.client.SetJSON(ctx, s.key(result.ProcessID), result, s.ttl)
}

func (s *RedisTaskStore) Get(ctx context.Context, processID string) (*TaskResult, error) {
	var result TaskResult
	if err := s.client.GetJSON(ctx, s.key(processID), &result); err != nil {
		if utils.IsRedisNotFound(err) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &result, nil
}

func (s *RedisTaskStore) Update(ctx context.Context, result *TaskResult) error {
	exists, err := s.client.Exists(ctx, s.key(result.ProcessID))
	if err != nil {
		return err
	}
	if !exists {
		return ErrTaskNotFound
	}
	return s.client.SetJSON(ctx, s.key(result.ProcessID), result, s.ttl)
}

func (s *RedisTaskStore) Delete(ctx context.Context, processID string) error {
	return s.client.Delete(ctx, s.key(processID))
}

// Cleanup is a no-op: Redis expires keys via their TTL.
func (s *RedisTaskStore) Cleanup(ctx context.Context, maxAge time.Duration) error {
	return nil
}

func (s *RedisTaskStore) List(ctx context.Context) ([]*TaskResult, error) {
	keys, err := s.client.Keys(ctx, s.key("*"))
	if err != nil {
		return nil, err
	}
	results := make([]*TaskResult, 0, len(keys))
	for _, key := range keys {
		var result TaskResult
		if err := s.client.GetJSON(ctx, key, &result); err != nil {
			continue // key may have expired between Keys and Get
		}
		results = append(results, &result)
	}
	return results, nil
}

// Common errors
var (
	ErrTaskNotFound = NewTaskError("task not found")
)

// TaskError represents a background task error
type TaskError struct {
	Message string
	Code    string
}

func NewTaskError(message string) *TaskError {
	return &TaskError{
		Message: message,
		Code:    "TASK_ERROR",
	}
}

func (e *TaskError) Error() string {
	return e.Message
}
