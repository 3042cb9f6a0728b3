package background

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"resumeforge-utils/internal/logging"
)

// TaskCompletionLog is the structured record emitted for task lifecycle
// events. It goes to stdout as a single JSON line so log shippers can
// pick it up without parsing the regular application log.
type TaskCompletionLog struct {
	Timestamp  string                 `json:"timestamp"`
	Level      string                 `json:"level"`
	Message    string                 `json:"message"`
	ProcessID  string                 `json:"process_id"`
	TaskType   string                 `json:"task_type"`
	Status     string                 `json:"status"`
	DurationMs int64                  `json:"duration_ms,omitempty"`
	Error      string                 `json:"error,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// WriteStructuredLog writes a task completion log entry to stdout
func WriteStructuredLog(entry TaskCompletionLog) {
	entry.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)

	data, err := json.Marshal(entry)
	if err != nil {
		logging.GetGlobalLogger().Error("Failed to marshal task log entry", map[string]interface{}{
			"process_id": entry.ProcessID,
			"error":      err.Error(),
		})
		return
	}

	fmt.Fprintln(os.Stdout, string(data))
}

// LogTaskAccepted logs that a task was accepted into the queue
func LogTaskAccepted(processID, taskType string, metadata map[string]interface{}) {
	WriteStructuredLog(TaskCompletionLog{
		Level:     "info",
		Message:   "Task accepted",
		ProcessID: processID,
		TaskType:  taskType,
		Status:    string(TaskStatusAccepted),
		Metadata:  metadata,
	})
}

// LogTaskStart logs that a worker picked up a task
func LogTaskStart(processID, taskType string) {
	WriteStructuredLog(TaskCompletionLog{
		Level:     "info",
		Message:   "Task processing started",
		ProcessID: processID,
		TaskType:  taskType,
		Status:    string(TaskStatusProcessing),
	})
}

// LogTaskSuccess logs a successful task completion
func LogTaskSuccess(processID, taskType string, duration time.Duration) {
	WriteStructuredLog(TaskCompletionLog{
		Level:      "info",
		Message:    "Task completed successfully",
		ProcessID:  processID,
		TaskType:   taskType,
		Status:     string(TaskStatusSuccess),
		DurationMs: duration.Milliseconds(),
	})
}

// LogTaskError logs a failed task completion
func LogTaskError(processID, taskType string, err error, duration time.Duration) {
	WriteStructuredLog(TaskCompletionLog{
		Level:      "error",
		Message:    "Task failed",
		ProcessID:  processID,
		TaskType:   taskType,
		Status:     string(TaskStatusFailure),
		DurationMs: duration.Milliseconds(),
		Error:      err.Error(),
	})
}
