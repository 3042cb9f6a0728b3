package models

import "time"

// AsyncStatus represents the status of an async operation
type AsyncStatus string

const (
	AsyncStatusAccepted   AsyncStatus = "ACCEPTED"
	AsyncStatusProcessing AsyncStatus = "PROCESSING"
	AsyncStatusSuccess    AsyncStatus = "SUCCESS"
	AsyncStatusFailure    AsyncStatus = "FAILURE"
)

// AsyncRenderResponse is the immediate response from the async render endpoint.
type AsyncRenderResponse struct {
	ProcessID string      `json:"processId"`
	Status    AsyncStatus `json:"status"`
	Message   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
}

// AsyncTaskStatusResponse represents the response for task status queries
type AsyncTaskStatusResponse struct {
	ProcessID      string                 `json:"processId"`
	Status         AsyncStatus            `json:"status"`
	Data           interface{}            `json:"data,omitempty"`
	Error          string                 `json:"error,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	CompletedAt    *time.Time             `json:"completedAt,omitempty"`
	ProcessingTime *time.Duration         `json:"processingTime,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// AsyncRenderCompletionData is the completion payload of a render task.
type AsyncRenderCompletionData struct {
	Rendered *RenderedTemplate `json:"rendered,omitempty"`
	Warnings []RenderWarning   `json:"warnings,omitempty"`
}

// AsyncTaskListResponse represents the response for listing tasks
type AsyncTaskListResponse struct {
	Success bool                      `json:"success"`
	Tasks   []AsyncTaskStatusResponse `json:"tasks"`
	Count   int                       `json:"count"`
}

// AsyncErrorResponse represents an error response for async operations
type AsyncErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	ProcessID string    `json:"processId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// CreateAsyncRenderResponse creates a successful async render response.
func CreateAsyncRenderResponse(processID string) *AsyncRenderResponse {
	return &AsyncRenderResponse{
		ProcessID: processID,
		Status:    AsyncStatusAccepted,
		Message:   "Render request accepted for background processing",
		Timestamp: time.Now(),
	}
}

// CreateAsyncErrorResponse creates an error response for async operations
func CreateAsyncErrorResponse(errorCode, message string, processID ...string) *AsyncErrorResponse {
	response := &AsyncErrorResponse{
		Error:     errorCode,
		Message:   message,
		Timestamp: time.Now(),
	}

	if len(processID) > 0 && processID[0] != "" {
		response.ProcessID = processID[0]
	}

	return response
}

// IsCompleted checks if the async task has completed (success or failure)
func (r *AsyncTaskStatusResponse) IsCompleted() bool {
	return r.Status == AsyncStatusSuccess || r.Status == AsyncStatusFailure
}

// IsSuccessful checks if the async task completed successfully
func (r *AsyncTaskStatusResponse) IsSuccessful() bool {
	return r.Status == AsyncStatusSuccess
}

// RenderData returns the render completion payload, if this is a render task.
func (r *AsyncTaskStatusResponse) RenderData() *AsyncRenderCompletionData {
	if data, ok := r.Data.(*AsyncRenderCompletionData); ok {
		return data
	}
	return nil
}
