// Package errors provides custom error types for the stocksync system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Aliases of the standard library functions so callers need a single errors import.
var (
	New  = errors.New
	Is   = errors.Is
	As   = errors.As
	Join = errors.Join
)

// Common sentinel errors for the stocksync system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrFeedUnavailable indicates the supplier feed could not be retrieved or parsed
	ErrFeedUnavailable = errors.New("feed unavailable")

	// ErrTimeout indicates that a marketplace call exceeded its deadline
	ErrTimeout = errors.New("operation timed out")

	// ErrTransport indicates a connection-level failure
	ErrTransport = errors.New("transport error")

	// ErrProtocol indicates a non-success status from a marketplace
	ErrProtocol = errors.New("protocol error")

	// ErrParse indicates an unparsable quantity or price value
	ErrParse = errors.New("parse error")

	// ErrRateLimited indicates that the API rate limit has been exceeded
	ErrRateLimited = errors.New("rate limited")

	// ErrProviderUnavailable indicates that a marketplace is temporarily unavailable
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// FeedError represents a failure to download, unpack or parse the supplier feed.
type FeedError struct {
	Source  string // feed URL or file name
	Stage   string // "download", "archive", "parse"
	Message string
	Err     error
}

// Error implements the error interface
func (e *FeedError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("feed %s failed during %s: %s", e.Source, e.Stage, e.Message)
	}
	return fmt.Sprintf("feed failed during %s: %s", e.Stage, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *FeedError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *FeedError) Is(target error) bool {
	return target == ErrFeedUnavailable
}

// NewFeedError creates a new FeedError
func NewFeedError(source, stage string, err error) *FeedError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &FeedError{
		Source:  source,
		Stage:   stage,
		Message: message,
		Err:     err,
	}
}

// APIError represents a non-success response from a marketplace API.
type APIError struct {
	Marketplace string
	StatusCode  int
	Message     string
	Endpoint    string
	Err         error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Marketplace, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Marketplace, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrProtocol:
		return true
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	case ErrProviderUnavailable:
		return e.StatusCode >= http.StatusInternalServerError
	}
	return false
}

// NewAPIError creates a new APIError
func NewAPIError(marketplace string, statusCode int, message string) *APIError {
	return &APIError{
		Marketplace: marketplace,
		StatusCode:  statusCode,
		Message:     message,
	}
}

// TransportError represents a connection-level failure talking to a marketplace.
type TransportError struct {
	Marketplace string
	Endpoint    string
	Err         error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error calling %s %s: %v", e.Marketplace, e.Endpoint, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// TimeoutError represents an operation timeout
type TimeoutError struct {
	Operation string
	Duration  string
	Message   string
}

// Error implements the error interface
func (e *TimeoutError) Error() string {
	if e.Duration != "" {
		return fmt.Sprintf("operation %s timed out after %s: %s", e.Operation, e.Duration, e.Message)
	}
	return fmt.Sprintf("operation %s timed out: %s", e.Operation, e.Message)
}

// Is implements errors.Is support
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}

// NewTimeoutError creates a new TimeoutError
func NewTimeoutError(operation, duration, message string) *TimeoutError {
	return &TimeoutError{
		Operation: operation,
		Duration:  duration,
		Message:   message,
	}
}

// ParseError represents an unparsable value in the supplier feed.
type ParseError struct {
	Format  string // "quantity", "price", "xls", "csv"
	Field   string // offer code or column the value belongs to
	Value   string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s parse error for %s (value %q): %s", e.Format, e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("%s parse error (value %q): %s", e.Format, e.Value, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// NewParseError creates a new ParseError
func NewParseError(format, value, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		Value:   value,
		Message: message,
		Err:     err,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// BatchError records a failed batch submission.
type BatchError struct {
	Marketplace string
	Account     string
	Kind        string // "stocks" or "prices"
	Index       int
	Size        int
	Err         error
}

// Error implements the error interface
func (e *BatchError) Error() string {
	return fmt.Sprintf("%s %s batch %d (%d items) for %s failed: %v",
		e.Marketplace, e.Kind, e.Index, e.Size, e.Account, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *BatchError) Unwrap() error {
	return e.Err
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "delete", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsFeedUnavailable checks if an error means the supplier feed is unusable
func IsFeedUnavailable(err error) bool {
	return errors.Is(err, ErrFeedUnavailable)
}

// IsTimeout checks if an error is a timeout error
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsTransport checks if an error is a connection-level failure
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsProtocol checks if an error is a non-success API response
func IsProtocol(err error) bool {
	return errors.Is(err, ErrProtocol)
}

// IsParse checks if an error is a value parse failure
func IsParse(err error) bool {
	return errors.Is(err, ErrParse)
}

// IsRateLimited checks if an error is a rate limit error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsCanceled checks if an error is a cancellation error
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   err.Error(),
		Err:       err,
	}
}

// WrapFeed wraps an error as a FeedError
func WrapFeed(source, stage string, err error) error {
	if err == nil {
		return nil
	}
	return NewFeedError(source, stage, err)
}

// WrapAPI wraps an error as an APIError
func WrapAPI(marketplace string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{
		Marketplace: marketplace,
		StatusCode:  statusCode,
		Message:     err.Error(),
		Err:         err,
	}
}
