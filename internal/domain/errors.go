package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound             = errors.New("not found")
	ErrConflict             = errors.New("already exists")
	ErrValidation           = errors.New("validation failed")
	ErrStorage              = errors.New("storage failure")
	ErrConfigurationMissing = errors.New("configuration missing")
	ErrConversionFailed     = errors.New("conversion failed")
)

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// StorageError indicates the blob store could not complete an operation
	StorageError struct {
		Op  string // put, open, remove, list
		Key string
		Err error
	}

	// ConfigurationMissingError indicates a required setting is absent
	ConfigurationMissingError struct {
		Setting string
	}

	// ConversionFailedError indicates the external converter rejected or failed a request
	ConversionFailedError struct {
		Message string
		Err     error
	}
)

func (e *NotFoundError) Error() string   { return e.Message }
func (e *ValidationError) Error() string { return e.Message }

func (e *StorageError) Error() string {
	if e.Key == "" {
		return "storage " + e.Op + ": " + e.Err.Error()
	}
	return "storage " + e.Op + " " + e.Key + ": " + e.Err.Error()
}

func (e *ConfigurationMissingError) Error() string {
	return e.Setting + " is not configured"
}

func (e *ConversionFailedError) Error() string {
	if e.Err == nil {
		return "conversion failed: " + e.Message
	}
	return "conversion failed: " + e.Message + ": " + e.Err.Error()
}

func (e *NotFoundError) StatusCode() int             { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int           { return http.StatusBadRequest }
func (e *StorageError) StatusCode() int              { return http.StatusInternalServerError }
func (e *ConfigurationMissingError) StatusCode() int { return http.StatusServiceUnavailable }
func (e *ConversionFailedError) StatusCode() int     { return http.StatusBadGateway }

func (e *NotFoundError) Is(target error) bool             { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool           { return target == ErrValidation }
func (e *StorageError) Is(target error) bool              { return target == ErrStorage }
func (e *ConfigurationMissingError) Is(target error) bool { return target == ErrConfigurationMissing }
func (e *ConversionFailedError) Is(target error) bool     { return target == ErrConversionFailed }

func (e *StorageError) Unwrap() error          { return e.Err }
func (e *ConversionFailedError) Unwrap() error { return e.Err }

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // supplier, folder, document
	ResourceID   string // ID of the existing/conflicting resource, if known
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
