// ABOUTME: Custom error types for the preview core
// ABOUTME: Separates validation failures, cancellations and upstream failures

package errors

import (
	"errors"
	"fmt"

	"digests-preview/core/domain"
)

// ErrAborted is returned by a download task whose fetches were aborted
var ErrAborted = errors.New("download aborted")

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError is a link that cannot be turned into a URL
type ValidationError struct {
	Field   string
	Message string
	Code    domain.LinkError
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// AbortedError records which fetch was cut short by AbortAll
type AbortedError struct {
	URL string
}

// Error implements the error interface
func (e *AbortedError) Error() string {
	return fmt.Sprintf("download of %s aborted", e.URL)
}

// Is lets errors.Is match ErrAborted
func (e *AbortedError) Is(target error) bool {
	return target == ErrAborted
}

// ExternalAPIError represents an error from an external API
type ExternalAPIError struct {
	StatusCode int
	Message    string
	API        string
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsAborted checks if an error comes from an aborted download
func IsAborted(err error) bool {
	return errors.Is(err, ErrAborted)
}

// IsExternalAPI checks if an error is an ExternalAPIError
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// LinkErrorOf extracts the link error code of a validation failure
func LinkErrorOf(err error) (domain.LinkError, bool) {
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		return "", false
	}
	return validationErr.Code, true
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
