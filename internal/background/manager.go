package background

import (
	"context"
	"fmt"
	"sync"
	"time"

	"resumeforge-utils/internal/config"
	"resumeforge-utils/internal/logging"
	"resumeforge-utils/internal/logging/types"
	"resumeforge-utils/internal/pipeline"
	"resumeforge-utils/internal/retry"
	"resumeforge-utils/pkg/models"
)

// TaskManager manages background render tasks
type TaskManager interface {
	// SubmitRenderTask submits a render for asynchronous processing
	SubmitRenderTask(ctx context.Context, processID string, template *models.ResumeTemplate, resume *models.ResumeData, options models.RenderingOptions) error

	// GetTaskResult retrieves the result of a task
	GetTaskResult(ctx context.Context, processID string) (*TaskResult, error)

	// GetTaskStatus retrieves just the status of a task
	GetTaskStatus(ctx context.Context, processID string) (TaskStatus, error)

	// ListTasks returns all known task results
	ListTasks(ctx context.Context) ([]*TaskResult, error)

	// Start starts the task manager workers
	Start(ctx context.Context) error

	// Stop gracefully stops the task manager
	Stop(ctx context.Context) error

	// IsHealthy reports whether the manager is accepting work
	IsHealthy() bool
}

// TaskExecution represents a task being executed
type TaskExecution struct {
	Result  *TaskResult
	Execute func(ctx context.Context) (interface{}, error)
	Context context.Context
	Cancel  context.CancelFunc
}

// TaskManagerImpl implements TaskManager with a worker pool
type TaskManagerImpl struct {
	cfg      *config.Config
	store    TaskStore
	renderer *pipeline.Pipeline
	executor *retry.Executor
	logger   types.Logger

	taskChan chan *TaskExecution
	workers  int

	mu      sync.RWMutex
	running bool
	wg      sync.WaitGroup
	cancel  context.CancelFunc
}

// NewTaskManager creates a new task manager
func NewTaskManager(cfg *config.Config, store TaskStore, renderer *pipeline.Pipeline, executor *retry.Executor) *TaskManagerImpl {
	if store == nil {
		store = NewInMemoryTaskStore()
	}
	if executor == nil {
		executor = retry.NewExecutor(nil, cfg.Retry.MaxRetries)
	}

	workers := cfg.Workers.PoolSize
	if workers < 1 {
		workers = 1
	}
	queueSize := cfg.Workers.QueueSize
	if queueSize < 1 {
		queueSize = workers * 10
	}

	return &TaskManagerImpl{
		cfg:      cfg,
		store:    store,
		renderer: renderer,
		executor: executor,
		logger:   logging.GetGlobalLogger(),
		taskChan: make(chan *TaskExecution, queueSize),
		workers:  workers,
	}
}

// Start starts the worker pool and the cleanup routine
func (tm *TaskManagerImpl) Start(ctx context.Context) error {
	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.running {
		return fmt.Errorf("task manager already running")
	}

	workerCtx, cancel := context.WithCancel(ctx)
	tm.cancel = cancel
	tm.running = true

	for i := 0; i < tm.workers; i++ {
		tm.wg.Add(1)
		go tm.worker(workerCtx, i)
	}

	tm.wg.Add(1)
	go tm.cleanupRoutine(workerCtx)

	tm.logger.Info("Task manager started", map[string]interface{}{
		"workers":    tm.workers,
		"queue_size": cap(tm.taskChan),
	})

	return nil
}

// Stop gracefully stops the task manager
func (tm *TaskManagerImpl) Stop(ctx context.Context) error {
	tm.mu.Lock()
	if !tm.running {
		tm.mu.Unlock()
		return nil
	}
	tm.running = false
	tm.mu.Unlock()

	tm.cancel()

	done := make(chan struct{})
	go func() {
		tm.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		tm.logger.Info("Task manager stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("task manager shutdown timed out: %w", ctx.Err())
	}
}

// IsHealthy reports whether the manager is running with queue headroom
func (tm *TaskManagerImpl) IsHealthy() bool {
	tm.mu.RLock()
	defer tm.mu.RUnlock()
	return tm.running && len(tm.taskChan) < cap(tm.taskChan)
}

// SubmitRenderTask submits a render for asynchronous processing
func (tm *TaskManagerImpl) SubmitRenderTask(ctx context.Context, processID string, template *models.ResumeTemplate, resume *models.ResumeData, options models.RenderingOptions) error {
	tm.mu.RLock()
	running := tm.running
	tm.mu.RUnlock()
	if !running {
		return fmt.Errorf("task manager is not running")
	}

	result := &TaskResult{
		ProcessID: processID,
		Type:      TaskTypeRender,
		Status:    TaskStatusAccepted,
		CreatedAt: time.Now(),
		Metadata: map[string]interface{}{
			"template_id": templateIdentifier(template),
			"user_id":     options.UserID,
			"format":      options.Format,
		},
	}

	if err := tm.store.Store(ctx, result); err != nil {
		return fmt.Errorf("failed to store task result: %w", err)
	}

	LogTaskAccepted(processID, string(TaskTypeRender), result.Metadata)

	taskCtx, cancel := context.WithCancel(context.Background())
	execution := &TaskExecution{
		Result:  result,
		Context: taskCtx,
		Cancel:  cancel,
		Execute: func(execCtx context.Context) (interface{}, error) {
			return tm.executeRenderTask(execCtx, template, resume, options)
		},
	}

	select {
	case tm.taskChan <- execution:
		return nil
	default:
		cancel()
		result.Status = TaskStatusFailure
		result.Error = "task queue is full"
		_ = tm.store.Update(ctx, result)
		return fmt.Errorf("task queue is full")
	}
}

// GetTaskResult retrieves the result of a task
func (tm *TaskManagerImpl) GetTaskResult(ctx context.Context, processID string) (*TaskResult, error) {
	return tm.store.Get(ctx, processID)
}

// GetTaskStatus retrieves just the status of a task
func (tm *TaskManagerImpl) GetTaskStatus(ctx context.Context, processID string) (TaskStatus, error) {
	result, err := tm.store.Get(ctx, processID)
	if err != nil {
		return "", err
	}
	return result.Status, nil
}

// ListTasks returns all known task results
func (tm *TaskManagerImpl) ListTasks(ctx context.Context) ([]*TaskResult, error) {
	return tm.store.List(ctx)
}

func (tm *TaskManagerImpl) worker(ctx context.Context, id int) {
	defer tm.wg.Done()

	tm.logger.Debug("Background worker started", map[string]interface{}{
		"worker_id": id,
	})

	for {
		select {
		case <-ctx.Done():
			return
		case execution, ok := <-tm.taskChan:
			if !ok {
				return
			}
			tm.processTask(execution)
		}
	}
}

func (tm *TaskManagerImpl) processTask(execution *TaskExecution) {
	defer execution.Cancel()

	result := execution.Result
	started := time.Now()

	result.Status = TaskStatusProcessing
	if err := tm.store.Update(execution.Context, result); err != nil {
		tm.logger.Error("Failed to mark task as processing", map[string]interface{}{
			"process_id": result.ProcessID,
			"error":      err.Error(),
		})
	}

	LogTaskStart(result.ProcessID, string(result.Type))

	data, err := execution.Execute(execution.Context)
	elapsed := time.Since(started)
	completed := time.Now()

	result.CompletedAt = &completed
	result.ProcessingTime = &elapsed

	if err != nil {
		result.Status = TaskStatusFailure
		result.Error = err.Error()
		LogTaskError(result.ProcessID, string(result.Type), err, elapsed)
	} else {
		result.Status = TaskStatusSuccess
		result.Data = data
		LogTaskSuccess(result.ProcessID, string(result.Type), elapsed)
	}

	if err := tm.store.Update(execution.Context, result); err != nil {
		tm.logger.Error("Failed to store task result", map[string]interface{}{
			"process_id": result.ProcessID,
			"error":      err.Error(),
		})
	}
}

func (tm *TaskManagerImpl) executeRenderTask(ctx context.Context, template *models.ResumeTemplate, resume *models.ResumeData, options models.RenderingOptions) (interface{}, error) {
	var rendered *models.RenderedTemplate
	var warnings []models.RenderWarning

	err := tm.executor.Do(ctx, templateIdentifier(template), options.UserID, func(opCtx context.Context) error {
		var renderErr error
		rendered, warnings, renderErr = tm.renderer.Render(opCtx, template, resume, options)
		return renderErr
	})
	if err != nil {
		return nil, err
	}

	return &RenderTaskData{
		Rendered: rendered,
		Warnings: warnings,
	}, nil
}

func (tm *TaskManagerImpl) cleanupRoutine(ctx context.Context) {
	defer tm.wg.Done()

	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := tm.store.Cleanup(ctx, 24*time.Hour); err != nil {
				tm.logger.Error("Task cleanup failed", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}

func templateIdentifier(template *models.ResumeTemplate) string {
	if template == nil {
		return ""
	}
	return template.ID
}
