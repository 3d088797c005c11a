package dto

import "time"

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the application
const (
	ErrorCodeResourceNotFound     ErrorCode = "RES_001"
	ErrorCodeValidationFailed     ErrorCode = "VAL_001"
	ErrorCodeInternalServer       ErrorCode = "SRV_001"
	ErrorCodeDatabaseError        ErrorCode = "SRV_002"
	ErrorCodeExternalServiceError ErrorCode = "SRV_003"
)

// ErrorResponse is the body of every non-2xx API response. Message is always
// set; Field only for validation failures.
type ErrorResponse struct {
	Message   string    `json:"message"`
	Field     string    `json:"field,omitempty"`
	Code      ErrorCode `json:"code"`
	Timestamp time.Time `json:"timestamp"`
}

// NewErrorResponse creates an error response
func NewErrorResponse(code ErrorCode, message string) *ErrorResponse {
	return &ErrorResponse{
		Message:   message,
		Code:      code,
		Timestamp: time.Now(),
	}
}

// WithField adds a field name to the error response
func (e *ErrorResponse) WithField(field string) *ErrorResponse {
	e.Field = field
	return e
}
