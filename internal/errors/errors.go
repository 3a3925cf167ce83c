// Package errors provides centralized error definitions and error handling utilities
// for resdash. It defines the sentinel errors raised at the data and
// configuration boundary, semantic error types with context, and
// classification helpers.
//
// The derivation core (criteria store, address codec, filter, sort, debouncer)
// never returns errors: malformed input degrades to defaults there. Errors only
// arise when loading snapshots or configuration.
//
// # Error Types
//
//   - DataError: a snapshot file could not be decoded or failed validation
//   - NotFoundError: a file or named item does not exist
//   - ValidationError: invalid input such as a bad flag value
//
// # Usage
//
//	err := errors.NewDataError("patientId is required", errors.ErrMissingField).
//		WithSource("records.json").WithIndex(3).WithField("patientId")
//
//	if errors.Is(err, errors.ErrMissingField) { ... }
//
//	var dataErr *errors.DataError
//	if errors.As(err, &dataErr) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Snapshot-related sentinel errors
var (
	// ErrUnsupportedFormat indicates a snapshot file extension with no decoder.
	ErrUnsupportedFormat = New("unsupported snapshot format")
	// ErrMalformedSnapshot indicates the file could not be decoded at all.
	ErrMalformedSnapshot = New("malformed snapshot")
	// ErrMissingField indicates a required record field is empty.
	ErrMissingField = New("required field missing")
	// ErrMalformedTimestamp indicates a timestamp that is not RFC 3339.
	ErrMalformedTimestamp = New("malformed timestamp")
	// ErrDuplicatePatient indicates two records share a patient ID.
	ErrDuplicatePatient = New("duplicate patient id")
)

// General sentinel errors
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrNotFound indicates that a named item does not exist.
	ErrNotFound = New("not found")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// ResdashError is the base interface for all resdash errors.
type ResdashError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// DataError represents a snapshot that could not be loaded.
// Index is the zero-based record position, or -1 when the error concerns the
// whole file.
//
// Example:
//
//	err := errors.NewDataError("patientId is required", errors.ErrMissingField).
//		WithSource("data.json").WithIndex(2).WithField("patientId")
//	fmt.Println(err) // "data error [source=data.json, record=2, field=patientId]: patientId is required: required field missing"
type DataError struct {
	baseError
	Source string
	Index  int
	Field  string
}

// NewDataError creates a new DataError.
func NewDataError(message string, cause error) *DataError {
	return &DataError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			userFacing: true,
		},
		Index: -1,
	}
}

// WithSource adds the snapshot path to the error context.
func (e *DataError) WithSource(source string) *DataError {
	e.Source = source
	return e
}

// WithIndex adds the offending record index.
func (e *DataError) WithIndex(idx int) *DataError {
	e.Index = idx
	return e
}

// WithField adds the offending field name.
func (e *DataError) WithField(field string) *DataError {
	e.Field = field
	return e
}

// Error returns the formatted error message.
func (e *DataError) Error() string {
	var parts []string
	if e.Source != "" {
		parts = append(parts, fmt.Sprintf("source=%s", e.Source))
	}
	if e.Index >= 0 {
		parts = append(parts, fmt.Sprintf("record=%d", e.Index))
	}
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}

	prefix := "data error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("data error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *DataError) Is(target error) bool {
	if _, ok := target.(*DataError); ok {
		return true
	}
	return errors.Is(e.cause, target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("snapshot", "records.json")
//	fmt.Println(err) // "snapshot 'records.json' not found"
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity:   SeverityWarning,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// WithCause adds a cause to the error.
func (e *NotFoundError) WithCause(cause error) *NotFoundError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *NotFoundError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s '%s' not found: %v", e.ResourceType, e.ResourceID, e.cause)
	}
	return fmt.Sprintf("%s '%s' not found", e.ResourceType, e.ResourceID)
}

// Is checks if this error matches the target.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	if target == ErrNotFound {
		return true
	}
	return errors.Is(e.cause, target)
}

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("unknown sort direction").
//		WithField("sort").WithValue("sideways")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	return target == ErrInvalidInput
}

// -----------------------------------------------------------------------------
// Classification
// -----------------------------------------------------------------------------

// IsUserFacing returns true if the error message is safe to display to end users.
//
// Example:
//
//	if errors.IsUserFacing(err) {
//	    m.errorMessage = err.Error()
//	} else {
//	    m.errorMessage = "failed to reload data"
//	    logger.Error("reload failed", "error", err)
//	}
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var rErr ResdashError
	if As(err, &rErr) {
		return rErr.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement ResdashError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var rErr ResdashError
	if As(err, &rErr) {
		return rErr.Severity()
	}
	return SeverityError
}

// Wrap wraps an error with additional context message.
//
// Example:
//
//	err := errors.Wrap(baseErr, "failed to reload snapshot")
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
