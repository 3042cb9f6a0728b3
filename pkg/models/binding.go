package models

// BindingError is one structured failure from the data binder.
type BindingError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Section string `json:"section,omitempty"`
}

// BindingWarning is a non-fatal observation from the data binder.
type BindingWarning struct {
	Message string `json:"message"`
	Impact  string `json:"impact,omitempty"`
}

// BindingMetadata summarizes a binding pass.
type BindingMetadata struct {
	BoundFields      int     `json:"bound_fields"`
	DataCompleteness float64 `json:"data_completeness"` // 0-100
}

// BindingResult is the contract output of the external data binder: the raw
// resume records mapped into template field slots.
type BindingResult struct {
	Success  bool                   `json:"success"`
	Data     map[string]interface{} `json:"data,omitempty"`
	Errors   []BindingError         `json:"errors,omitempty"`
	Warnings []BindingWarning       `json:"warnings,omitempty"`
	Metadata BindingMetadata        `json:"metadata"`
}

// HasUnrecoverableError reports whether any binding error is of a kind the
// pipeline cannot proceed past (missing required field).
func (r *BindingResult) HasUnrecoverableError() bool {
	for _, e := range r.Errors {
		if e.Code == BindingErrorMissingRequired {
			return true
		}
	}
	return false
}

// Binding error codes.
const (
	BindingErrorMissingRequired = "missing_required_field"
	BindingErrorTypeMismatch    = "type_mismatch"
	BindingErrorUnknownSection  = "unknown_section"
)
