package dto

import "time"

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Status    int       `json:"status" example:"404"`
	Message   string    `json:"message" example:"Student not found with ID: 5"`
	Timestamp time.Time `json:"timestamp" example:"2026-08-31T12:01:05.123Z"`
}

// NewErrorResponse creates a standard error response
func NewErrorResponse(status int, message string) *ErrorResponse {
	return &ErrorResponse{
		Status:    status,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// FieldErrors maps field names to violation messages. Returned with 400
// instead of the generic error shape when request validation fails.
type FieldErrors map[string]string
