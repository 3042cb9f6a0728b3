package models

import "time"

// RenderResponse wraps a completed synchronous render.
type RenderResponse struct {
	Success        bool              `json:"success"`
	Rendered       *RenderedTemplate `json:"rendered,omitempty"`
	Warnings       []RenderWarning   `json:"warnings,omitempty"`
	Error          string            `json:"error,omitempty"`
	ProcessingTime time.Duration     `json:"processing_time"`
	RequestID      string            `json:"request_id"`
}

// SessionResponse reports the state of a customization session.
type SessionResponse struct {
	SessionID     string                  `json:"session_id"`
	Customization *TemplateCustomization  `json:"customization,omitempty"`
	Analytics     *CustomizationAnalytics `json:"analytics,omitempty"`
	CSS           string                  `json:"css,omitempty"`
	RequestID     string                  `json:"request_id,omitempty"`
}

// UndoResponse reports the outcome of an undo request.
type UndoResponse struct {
	Undone        bool                   `json:"undone"`
	Customization *TemplateCustomization `json:"customization,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
}

// StatusResponse represents the service status response
type StatusResponse struct {
	Service     string                 `json:"service"`
	Version     string                 `json:"version"`
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Uptime      time.Duration          `json:"uptime"`
	StageStats  map[string]StageMetric `json:"stage_stats,omitempty"`
	ActiveTasks int                    `json:"active_tasks"`
	Sessions    int                    `json:"sessions"`
}
