package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstream indicates an external service answered with a non-2xx status
	// or could not be reached.
	ErrUpstream = errors.New("upstream request failed")

	// ErrPartialWrite indicates that only part of a multi-call page update
	// was applied by the document store.
	ErrPartialWrite = errors.New("partial write")

	// ErrNotConfigured indicates a required setting is missing.
	ErrNotConfigured = errors.New("not configured")
)

// ValidationError reports request fields that failed validation.
// Fields maps a field name to the messages for that field.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}

// Add records another message for a field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// HasErrors reports whether any field failed.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(e.Fields[name], ", ")))
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrInvalidInput) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// UpstreamError represents a failed call to an external service.
type UpstreamError struct {
	// Service names the external service (notion, spoonacular).
	Service string

	// Op is the operation that failed (extract, analyze, query, ...).
	Op string

	// StatusCode is the HTTP status returned, or 0 when no response arrived.
	StatusCode int

	// Body is the raw response body when one was available.
	Body []byte

	// Err is the transport error when no response arrived.
	Err error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Service, e.Op, e.Err)
	case len(e.Body) > 0:
		return fmt.Sprintf("%s: %s: status %d: %s", e.Service, e.Op, e.StatusCode, strings.TrimSpace(string(e.Body)))
	default:
		return fmt.Sprintf("%s: %s: status %d", e.Service, e.Op, e.StatusCode)
	}
}

// Unwrap returns the transport error, if any.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrUpstream) match.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

// NotFoundError reports a reference search with no match. Response carries
// the store's query response so callers can pass it on.
type NotFoundError struct {
	Kind     ReferenceKind
	Query    string
	Response json.RawMessage
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Kind, e.Query, ErrNotFound)
}

// Is makes errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// PartialWriteError reports an update where the properties patch and the
// content patch did not both succeed. The page may be left half-updated.
type PartialWriteError struct {
	PageID       string
	PropertiesOK bool
	ContentOK    bool

	// Err is the failure of the half that did not apply.
	Err error
}

func (e *PartialWriteError) Error() string {
	switch {
	case e.PropertiesOK && !e.ContentOK:
		return fmt.Sprintf("partial write on page %s: properties updated but content update failed: %v", e.PageID, e.Err)
	case !e.PropertiesOK && e.ContentOK:
		return fmt.Sprintf("partial write on page %s: content updated but properties update failed: %v", e.PageID, e.Err)
	default:
		return fmt.Sprintf("partial write on page %s: %v", e.PageID, e.Err)
	}
}

// Unwrap returns the underlying failure.
func (e *PartialWriteError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrPartialWrite) match.
func (e *PartialWriteError) Is(target error) bool {
	return target == ErrPartialWrite
}

// StatusCode extracts an HTTP status from an error chain.
// Returns 0 when the chain carries no upstream status.
func StatusCode(err error) int {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return upErr.StatusCode
	}
	return 0
}
