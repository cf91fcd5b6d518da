package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Exit codes for scripting integration.
const (
	// ExitSuccess indicates the run completed. Outdated entries are not a failure.
	ExitSuccess = 0

	// ExitFailure indicates a fatal error: manifest missing or malformed, or the write failed.
	ExitFailure = 1
)

// ExitError represents a command termination with a specific exit code.
//
// Fields:
//   - Code: Exit code (ExitSuccess or ExitFailure)
//   - Message: Human-readable error message
//   - Err: Underlying error that caused this exit, may be nil
//
// Example:
//
//	return &ExitError{
//	    Code:    ExitFailure,
//	    Message: "failed to load manifest",
//	    Err:     err,
//	}
type ExitError struct {
	// Code is the exit code for the command.
	Code int

	// Message is a human-readable description of why the command failed.
	Message string

	// Err is the underlying error that caused this exit.
	// May be nil if no underlying error exists.
	Err error
}

// Error implements the error interface.
//
// Returns the Message field if set, otherwise returns the underlying error's
// message, or a default message with the exit code.
//
// Returns:
//   - string: The error message
func (e *ExitError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

// Unwrap returns the underlying error for errors.Is/As support.
//
// Returns:
//   - error: The underlying error, or nil if none exists
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates an ExitError with the given code and underlying error.
//
// Parameters:
//   - code: Exit code (use ExitSuccess or ExitFailure)
//   - err: Underlying error, may be nil
//
// Returns:
//   - *ExitError: New exit error
func NewExitError(code int, err error) *ExitError {
	return &ExitError{Code: code, Err: err}
}

// GetExitCode extracts the exit code from an error.
//
// If err is nil, returns ExitSuccess.
// If err is an ExitError, returns its code.
// Otherwise returns ExitFailure.
//
// Parameters:
//   - err: The error to extract code from
//
// Returns:
//   - int: Exit code
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	return ExitFailure
}

// IsExitError checks if err is an ExitError and returns it.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - *ExitError: The ExitError if err is one, nil otherwise
//   - bool: true if err is an ExitError
func IsExitError(err error) (*ExitError, bool) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr, true
	}
	return nil, false
}

// ManifestNotFoundError indicates that no manifest exists at any of the checked paths.
//
// Fields:
//   - Paths: Every path that was checked, in probe order
type ManifestNotFoundError struct {
	Paths []string
}

// Error implements the error interface.
//
// Returns:
//   - string: Message naming the explicit path, or listing every probed path
func (e *ManifestNotFoundError) Error() string {
	switch len(e.Paths) {
	case 0:
		return "workspace manifest not found"
	case 1:
		return fmt.Sprintf("workspace manifest not found: %s", e.Paths[0])
	default:
		return fmt.Sprintf("workspace manifest not found (checked %s)", strings.Join(e.Paths, ", "))
	}
}

// ManifestParseError indicates that the manifest content could not be decoded.
//
// Fields:
//   - Path: The manifest path
//   - Err: The decoder error or structural problem
type ManifestParseError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ManifestParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying decode error.
func (e *ManifestParseError) Unwrap() error {
	return e.Err
}

// RegistryLookupError records a failed latest-version lookup for one dependency.
//
// It is never fatal: the dependency is reported as unknown and skipped.
//
// Fields:
//   - Name: The dependency name
//   - Err: Transport, status or decode error
type RegistryLookupError struct {
	Name string
	Err  error
}

// Error implements the error interface.
func (e *RegistryLookupError) Error() string {
	return fmt.Sprintf("failed to fetch latest version of %s: %v", e.Name, e.Err)
}

// Unwrap returns the underlying lookup error.
func (e *RegistryLookupError) Unwrap() error {
	return e.Err
}

// WriteError indicates that the updated manifest could not be written back.
type WriteError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying I/O error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// IsManifestNotFound reports whether err is, or wraps, a ManifestNotFoundError.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: true if a ManifestNotFoundError is in the chain
func IsManifestNotFound(err error) bool {
	var target *ManifestNotFoundError
	return errors.As(err, &target)
}

// IsManifestParseError reports whether err is, or wraps, a ManifestParseError.
func IsManifestParseError(err error) bool {
	var target *ManifestParseError
	return errors.As(err, &target)
}
