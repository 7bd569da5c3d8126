package apiresponses

import "time"

// Standard Success Response Envelope
type SuccessResponse struct {
	Status    string      `json:"status"` // Always "success"
	Data      interface{} `json:"data"`   // Payload
	Timestamp string      `json:"timestamp,omitempty"`
}

// Standard Error Response Envelope (used by middleware)
type ErrorResponse struct {
	Status string      `json:"status"` // Always "error"
	Error  ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code      string                 `json:"code"`    // Application-specific error code
	Message   string                 `json:"message"` // User-friendly message
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp string                 `json:"timestamp,omitempty"`
}

// Helper to create a success response
func NewSuccessResponse(data interface{}) SuccessResponse {
	return SuccessResponse{
		Status:    "success",
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// NewErrorResponse creates the standard error envelope.
func NewErrorResponse(code, message string, details map[string]interface{}) ErrorResponse {
	return ErrorResponse{
		Status: "error",
		Error: ErrorDetail{
			Code:      code,
			Message:   message,
			Details:   details,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	}
}

// ActionConfirmation acknowledges a state-changing request with no payload.
type ActionConfirmation struct {
	Message string `json:"message"`
}
