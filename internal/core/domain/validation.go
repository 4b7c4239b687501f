package domain

import "fmt"

// FieldError is a single validation failure. Field is empty for global
// (cross-field) errors such as an inconsistent price pair.
type FieldError struct {
	ObjectName     string `json:"objectName"`
	Field          string `json:"field,omitempty"`
	Code           string `json:"code"`
	DefaultMessage string `json:"defaultMessage"`
	RejectedValue  any    `json:"rejectedValue,omitempty"`
}

// ValidationError aggregates every violated rule of a payload. All rules
// are evaluated before it is returned; it is never a partial view.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s)", len(e.Errors))
}

// GlobalError builds a cross-field error entry.
func GlobalError(object, code, message string) FieldError {
	return FieldError{ObjectName: object, Code: code, DefaultMessage: message}
}

// NewFieldError builds a single-field error entry.
func NewFieldError(object, field, code, message string, rejected any) FieldError {
	return FieldError{
		ObjectName:     object,
		Field:          field,
		Code:           code,
		DefaultMessage: message,
		RejectedValue:  rejected,
	}
}
