package business

import (
	"fmt"
	"net/http"

	"growthpro/internal/models"
)

// ServiceError represents errors from the business service with HTTP context
type ServiceError struct {
	Code       string
	Message    string
	Field      string
	StatusCode int
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Error constructors for common service errors

func NewValidationError(field, message string, err error) *ServiceError {
	return &ServiceError{
		Code:       models.ErrorCodeValidation,
		Message:    message,
		Field:      field,
		StatusCode: http.StatusBadRequest,
		Err:        err,
	}
}

// NewGenerationError reports a record that failed its own range checks. The
// message is generic; the cause stays in Err for logging.
func NewGenerationError(message string, err error) *ServiceError {
	return &ServiceError{
		Code:       models.ErrorCodeInternalError,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}
