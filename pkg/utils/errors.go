package utils

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorKind identifies one member of the closed error taxonomy.
type ErrorKind string

const (
	ErrTemplateNotFound     ErrorKind = "TEMPLATE_NOT_FOUND"
	ErrRenderFailed         ErrorKind = "RENDER_FAILED"
	ErrExportFailed         ErrorKind = "EXPORT_FAILED"
	ErrCustomizationInvalid ErrorKind = "CUSTOMIZATION_INVALID"
	ErrValidationFailed     ErrorKind = "VALIDATION_FAILED"
	ErrPermissionDenied     ErrorKind = "PERMISSION_DENIED"
	ErrRateLimitExceeded    ErrorKind = "RATE_LIMIT_EXCEEDED"
	ErrStorageError         ErrorKind = "STORAGE_ERROR"
	ErrNetworkError         ErrorKind = "NETWORK_ERROR"
	ErrParseError           ErrorKind = "PARSE_ERROR"
)

// kindInfo is the policy attached to each error kind: what the end user
// sees, whether the operation may be retried, and the suggested delay.
type kindInfo struct {
	userMessage string
	retryable   bool
	retryDelay  time.Duration
	httpStatus  int
}

var kindTable = map[ErrorKind]kindInfo{
	ErrTemplateNotFound: {
		userMessage: "The requested template could not be found.",
		httpStatus:  http.StatusNotFound,
	},
	ErrRenderFailed: {
		userMessage: "The resume could not be rendered. Please try again.",
		retryable:   true,
		retryDelay:  1000 * time.Millisecond,
		httpStatus:  http.StatusInternalServerError,
	},
	ErrExportFailed: {
		userMessage: "The document could not be exported. Please try again.",
		retryable:   true,
		retryDelay:  1000 * time.Millisecond,
		httpStatus:  http.StatusInternalServerError,
	},
	ErrCustomizationInvalid: {
		userMessage: "The customization settings are invalid.",
		httpStatus:  http.StatusBadRequest,
	},
	ErrValidationFailed: {
		userMessage: "The provided data failed validation.",
		httpStatus:  http.StatusBadRequest,
	},
	ErrPermissionDenied: {
		userMessage: "You do not have permission to perform this action.",
		httpStatus:  http.StatusForbidden,
	},
	ErrRateLimitExceeded: {
		userMessage: "Too many requests. Please wait a moment and try again.",
		retryable:   true,
		retryDelay:  5000 * time.Millisecond,
		httpStatus:  http.StatusTooManyRequests,
	},
	ErrStorageError: {
		userMessage: "A storage problem occurred. Please try again shortly.",
		retryable:   true,
		retryDelay:  3000 * time.Millisecond,
		httpStatus:  http.StatusServiceUnavailable,
	},
	ErrNetworkError: {
		userMessage: "A network problem occurred. Please try again shortly.",
		retryable:   true,
		retryDelay:  2000 * time.Millisecond,
		httpStatus:  http.StatusBadGateway,
	},
	ErrParseError: {
		userMessage: "The document could not be parsed.",
		httpStatus:  http.StatusBadRequest,
	},
}

// RenderError is the application error type. The internal message is for
// logs only; callers surface UserMessage() instead.
type RenderError struct {
	Kind       ErrorKind              `json:"kind"`
	Message    string                 `json:"message"`
	TemplateID string                 `json:"template_id,omitempty"`
	UserID     string                 `json:"user_id,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

func (e *RenderError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return string(e.Kind)
}

// UserMessage returns the fixed, kind-specific sentence shown to end users.
// Internal message strings never leak through here.
func (e *RenderError) UserMessage() string {
	if info, ok := kindTable[e.Kind]; ok {
		return info.userMessage
	}
	return "An unexpected error occurred. Please try again."
}

// Retryable reports whether operations failing with this kind may be retried.
func (e *RenderError) Retryable() bool {
	return kindTable[e.Kind].retryable
}

// RetryDelay returns the suggested wait before a retry of this kind.
func (e *RenderError) RetryDelay() time.Duration {
	return kindTable[e.Kind].retryDelay
}

// HTTPStatus maps the kind to a response status code.
func (e *RenderError) HTTPStatus() int {
	if info, ok := kindTable[e.Kind]; ok {
		return info.httpStatus
	}
	return http.StatusInternalServerError
}

// WithContext attaches template/user identity for logging and retry keying.
func (e *RenderError) WithContext(templateID, userID string) *RenderError {
	e.TemplateID = templateID
	e.UserID = userID
	return e
}

// WithDetail attaches one structured detail.
func (e *RenderError) WithDetail(key string, value interface{}) *RenderError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewError creates a RenderError of an arbitrary kind.
func NewError(kind ErrorKind, message string) *RenderError {
	return &RenderError{Kind: kind, Message: message}
}

// Common error constructors
func NewTemplateNotFoundError(templateID string) *RenderError {
	return &RenderError{
		Kind:       ErrTemplateNotFound,
		Message:    fmt.Sprintf("template %q not found", templateID),
		TemplateID: templateID,
	}
}

func NewRenderFailedError(detail string) *RenderError {
	return &RenderError{Kind: ErrRenderFailed, Message: detail}
}

func NewExportFailedError(detail string) *RenderError {
	return &RenderError{Kind: ErrExportFailed, Message: detail}
}

func NewCustomizationInvalidError(detail string) *RenderError {
	return &RenderError{Kind: ErrCustomizationInvalid, Message: detail}
}

func NewValidationError(detail string) *RenderError {
	return &RenderError{Kind: ErrValidationFailed, Message: detail}
}

func NewPermissionDeniedError(detail string) *RenderError {
	return &RenderError{Kind: ErrPermissionDenied, Message: detail}
}

func NewRateLimitError(detail string) *RenderError {
	return &RenderError{Kind: ErrRateLimitExceeded, Message: detail}
}

func NewStorageError(detail string) *RenderError {
	return &RenderError{Kind: ErrStorageError, Message: detail}
}

func NewNetworkError(detail string) *RenderError {
	return &RenderError{Kind: ErrNetworkError, Message: detail}
}

func NewParseError(detail string) *RenderError {
	return &RenderError{Kind: ErrParseError, Message: detail}
}

// AsRenderError unwraps err into a RenderError. Unknown errors map to
// RenderFailed so every failure resolves to a taxonomy kind.
func AsRenderError(err error) *RenderError {
	if err == nil {
		return nil
	}
	var re *RenderError
	if errors.As(err, &re) {
		return re
	}
	return &RenderError{Kind: ErrRenderFailed, Message: err.Error()}
}

// IsKind reports whether err is a RenderError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var re *RenderError
	if errors.As(err, &re) {
		return re.Kind == kind
	}
	return false
}
