package models

// ErrorMessageResponse returns the error message response struct
type ErrorMessageResponse struct {
	Response MessageError
}

// MessageError contains the inner details for the error message response
type MessageError struct {
	Message string
	Error   string
}

// ErrorResponse is the structured error envelope used by the admin surface
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// Error codes returned by the moderation surface
const (
	CodeValidationError   = "VALIDATION_ERROR"
	CodeDuplicateReport   = "DUPLICATE_REPORT"
	CodeNotFound          = "NOT_FOUND"
	CodeUnsupportedAction = "UNSUPPORTED_ACTION"
	CodeDatabaseError     = "DATABASE_ERROR"
	CodeAlreadyResolved   = "ALREADY_RESOLVED"
)
