// Package models - API response types and error handling.
// This file defines all outgoing API response structures with consistent formatting.
//
// Response Design Principles:
// - Consistent JSON structure across all endpoints
// - Optional fields use omitempty to reduce response size
// - Machine-readable codes next to human-readable messages
// - RFC3339 timestamps
package models

import (
	"time"
)

// BusinessDataResponse wraps a freshly synthesized record.
type BusinessDataResponse struct {
	Success bool           `json:"success"`
	Data    BusinessRecord `json:"data"`
	Message string         `json:"message"`
}

// HeadlineResponse carries a regenerated headline.
type HeadlineResponse struct {
	Success  bool   `json:"success"`
	Headline string `json:"headline"`
	Message  string `json:"message"`
}

// IndexResponse describes the service and its operations.
type IndexResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// ErrorResponse provides structured error information with debugging context.
//
// Error Handling Design:
// - Error is a short human-readable category ("Validation error")
// - Code is the machine-readable discriminator clients switch on
// - Field names the offending input for validation failures
// - RetryAfter is set only on rate limit rejections, in whole seconds
// - AvailableEndpoints is set only on 404s
type ErrorResponse struct {
	Error              string            `json:"error"`                         // Error category
	Message            string            `json:"message"`                       // Human-readable error description
	Code               string            `json:"code,omitempty"`                // Machine-readable error code
	Field              string            `json:"field,omitempty"`               // Offending input field
	RetryAfter         int               `json:"retry_after,omitempty"`         // Seconds until the client may retry
	AvailableEndpoints []string          `json:"available_endpoints,omitempty"` // Valid operations (404 only)
	Details            map[string]string `json:"details,omitempty"`             // Additional context
	Timestamp          time.Time         `json:"timestamp"`                     // Error occurrence time
	RequestID          string            `json:"request_id,omitempty"`          // Unique request identifier
}

type HealthCheckResponse struct {
	Status     string                     `json:"status"`
	Timestamp  time.Time                  `json:"timestamp"`
	Version    string                     `json:"version,omitempty"`
	Uptime     string                     `json:"uptime,omitempty"`
	Components map[string]ComponentHealth `json:"components,omitempty"`
	Metrics    map[string]interface{}     `json:"metrics,omitempty"`
}

type ComponentHealth struct {
	Status    string                 `json:"status"`
	Message   string                 `json:"message,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Health Status Constants
const (
	StatusHealthy   = "healthy"   // All systems operational
	StatusUnhealthy = "unhealthy" // Major system issues
	StatusDegraded  = "degraded"  // Partial functionality
	StatusUnknown   = "unknown"   // Status indeterminate
)

// Standard HTTP Error Codes
//
// Error Code Strategy:
// - Upper-case with underscores for consistency
// - Maps to standard HTTP status codes
// - Machine-readable for client error handling
const (
	ErrorCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED" // 429: Client exhausted its window
	ErrorCodeValidation        = "VALIDATION_ERROR"    // 400: Input validation failed
	ErrorCodeBadRequest        = "BAD_REQUEST"         // 400: Malformed request body
	ErrorCodeNotFound          = "NOT_FOUND"           // 404: Unknown endpoint
	ErrorCodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"  // 405: Known path, wrong method
	ErrorCodeInternalError     = "INTERNAL_ERROR"      // 500: Server-side error
)

var errorTitles = map[string]string{
	ErrorCodeRateLimitExceeded: "Rate limit exceeded",
	ErrorCodeValidation:        "Validation error",
	ErrorCodeBadRequest:        "Bad request",
	ErrorCodeNotFound:          "Not found",
	ErrorCodeMethodNotAllowed:  "Method not allowed",
	ErrorCodeInternalError:     "Internal server error",
}

// Client-facing messages shared by the transport layer.
const (
	MessageRateLimited     = "Too many requests. Please try again later."
	MessageNotFound        = "The requested endpoint does not exist"
	MessageInternalError   = "Something went wrong on our end. Please try again."
	MessageRecordCreated   = "Business data generated successfully"
	MessageHeadlineCreated = "Headline regenerated successfully"
)

// NewErrorResponse builds an error body whose category is derived from code.
func NewErrorResponse(message string, code string) *ErrorResponse {
	title, ok := errorTitles[code]
	if !ok {
		title = "error"
	}
	return &ErrorResponse{
		Error:     title,
		Message:   message,
		Code:      code,
		Timestamp: time.Now().UTC(),
	}
}

func NewRateLimitErrorResponse(retryAfterSeconds int) *ErrorResponse {
	resp := NewErrorResponse(MessageRateLimited, ErrorCodeRateLimitExceeded)
	resp.RetryAfter = retryAfterSeconds
	return resp
}

func NewValidationErrorResponse(field, message string) *ErrorResponse {
	resp := NewErrorResponse(message, ErrorCodeValidation)
	resp.Field = field
	return resp
}

func NewNotFoundErrorResponse(endpoints []string) *ErrorResponse {
	resp := NewErrorResponse(MessageNotFound, ErrorCodeNotFound)
	resp.AvailableEndpoints = endpoints
	return resp
}

func NewHealthCheckResponse(status string) *HealthCheckResponse {
	return &HealthCheckResponse{
		Status:     status,
		Timestamp:  time.Now().UTC(),
		Components: make(map[string]ComponentHealth),
		Metrics:    make(map[string]interface{}),
	}
}

func (h *HealthCheckResponse) AddComponent(name, status, message string) {
	h.Components[name] = ComponentHealth{
		Status:    status,
		Message:   message,
		Timestamp: time.Now().UTC(),
		Details:   make(map[string]interface{}),
	}
}

func (h *HealthCheckResponse) AddMetric(name string, value interface{}) {
	h.Metrics[name] = value
}
