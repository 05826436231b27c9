package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrExternal     = errors.New("external provider error")
	ErrUnauthorized = errors.New("unauthorized")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// ProductNotFoundError reports that a single provider has no record for an ID.
type ProductNotFoundError struct {
	ProductID string
	Source    Source
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %q not found in source %q", e.ProductID, e.Source)
}

func (e *ProductNotFoundError) Unwrap() error { return ErrNotFound }

// SourcesExhaustedError reports that every configured source was tried
// without a match.
type SourcesExhaustedError struct {
	ProductID string
	Tried     []Source
}

func (e *SourcesExhaustedError) Error() string {
	tried := make([]string, len(e.Tried))
	for i, s := range e.Tried {
		tried[i] = string(s)
	}
	return fmt.Sprintf("product %q not found in any configured source (tried: %s)",
		e.ProductID, strings.Join(tried, ", "))
}

func (e *SourcesExhaustedError) Unwrap() error { return ErrNotFound }

// ExternalError reports a provider communication or parsing failure.
type ExternalError struct {
	Source Source
	Detail string
	Err    error
}

func (e *ExternalError) Error() string {
	return fmt.Sprintf("external provider %q: %s", e.Source, e.Detail)
}

// Unwrap exposes both ErrExternal and the underlying cause.
func (e *ExternalError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrExternal}
	}
	return []error{ErrExternal, e.Err}
}

// NewExternalError wraps err as an ExternalError for the given source.
func NewExternalError(source Source, detail string, err error) *ExternalError {
	return &ExternalError{Source: source, Detail: detail, Err: err}
}
