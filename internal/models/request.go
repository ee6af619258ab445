// Package models - API request types and input validation.
// This file defines the incoming request structures and their validation.
//
// Validation Philosophy:
// - Normalize first (trim surrounding whitespace), then validate the normalized value
// - One error is reported, by its wire name: missing fields first, then
//   length violations, then forbidden characters, name before location
// - Length limits count characters, not bytes
// - Markup-like characters (<, >, {, }) are rejected outright; no other
//   sanitization happens, the values are echoed verbatim into headlines
package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Input length bounds, applied after trimming.
const (
	MinInputLength = 2
	MaxInputLength = 100
)

// forbiddenChars may not appear anywhere in a name or location.
const forbiddenChars = "<>{}"

// BusinessDataRequest is the body of a create-record call.
type BusinessDataRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100,safetext"`
	Location string `json:"location" validate:"required,min=2,max=100,safetext"`
}

// HeadlineRequest carries the query parameters of a headline regeneration.
// It is held to the same rules as BusinessDataRequest.
type HeadlineRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100,safetext"`
	Location string `json:"location" validate:"required,min=2,max=100,safetext"`
}

// FieldError reports the first invalid input field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON name
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("safetext", validateSafeText); err != nil {
		panic(fmt.Sprintf("failed to register safetext validator: %v", err))
	}
	return v
}

// validateSafeText rejects values containing any of forbiddenChars.
func validateSafeText(fl validator.FieldLevel) bool {
	return !strings.ContainsAny(fl.Field().String(), forbiddenChars)
}

func (r *BusinessDataRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Location = strings.TrimSpace(r.Location)
}

func (r *BusinessDataRequest) Validate() error {
	return validateStruct(r)
}

func (r *HeadlineRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Location = strings.TrimSpace(r.Location)
}

func (r *HeadlineRequest) Validate() error {
	return validateStruct(r)
}

func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return fmt.Errorf("validation failed: %w", err)
	}

	fe := validationErrors[0]
	for _, candidate := range validationErrors[1:] {
		if tagRank(candidate.Tag()) < tagRank(fe.Tag()) {
			fe = candidate
		}
	}
	return &FieldError{
		Field:   fe.Field(),
		Message: fieldMessage(fe.Field(), fe.Tag()),
	}
}

// tagRank orders failed rules across fields.
func tagRank(tag string) int {
	switch tag {
	case "required":
		return 0
	case "min", "max":
		return 1
	default:
		return 2
	}
}

func fieldMessage(field, tag string) string {
	label := fieldLabel(field)
	switch tag {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		return fmt.Sprintf("%s must be at least %d characters long", label, MinInputLength)
	case "max":
		return fmt.Sprintf("%s must be less than %d characters long", label, MaxInputLength)
	case "safetext":
		return "Input contains invalid characters"
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

func fieldLabel(field string) string {
	switch field {
	case "name":
		return "Business name"
	case "location":
		return "Location"
	default:
		return field
	}
}
