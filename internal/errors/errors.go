// Package errors provides standardized error handling for treeside.
// It defines the error kinds the sidebar distinguishes between (startup,
// directory access, clipboard, external program spawn, state persistence)
// and helper functions for consistent creation, wrapping, and checking.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package functions re-exported for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// ErrorKind represents the kind of error
type ErrorKind int

// Error kinds
const (
	Unknown ErrorKind = iota
	// Startup errors abort before the event loop starts
	InvalidRoot
	// Access errors are recovered as empty directory listings
	AccessDenied
	DirectoryGone
	// Clipboard errors surface as a status message
	NoClipboard
	// Spawn errors cover missing or failing external programs
	ProgramNotFound
	ProgramFailed
	// Persistence errors fall back to defaults on load and are skipped on save
	StateUnreadable
	StateUnwritable
)

// ApplicationError is the base error type for all treeside errors
type ApplicationError struct {
	msg  string
	err  error
	kind ErrorKind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() ErrorKind {
	return e.kind
}

// StartupError represents a fatal error raised before the event loop starts,
// such as a root path that does not exist or is not a directory.
type StartupError struct {
	ApplicationError
	path string
}

// NewStartupError creates a new startup error
func NewStartupError(msg string, path string, err error) *StartupError {
	return &StartupError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: InvalidRoot,
		},
		path: path,
	}
}

// Error returns the startup error message
func (e *StartupError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the offending path
func (e *StartupError) Path() string {
	return e.path
}

// AccessError represents an unreadable directory. Callers treat the
// listing as empty rather than propagating the failure.
type AccessError struct {
	ApplicationError
	path string
}

// NewAccessError creates a new access error
func NewAccessError(msg string, path string, kind ErrorKind, err error) *AccessError {
	return &AccessError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the access error message
func (e *AccessError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the directory path associated with the error
func (e *AccessError) Path() string {
	return e.path
}

// ClipboardError represents a failure to reach any clipboard mechanism
type ClipboardError struct {
	ApplicationError
}

// NewClipboardError creates a new clipboard error
func NewClipboardError(msg string, err error) *ClipboardError {
	return &ClipboardError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: NoClipboard,
		},
	}
}

// SpawnError represents a preview or editor program that could not be
// started or exited with a failure.
type SpawnError struct {
	ApplicationError
	program string
}

// NewSpawnError creates a new spawn error
func NewSpawnError(msg string, program string, kind ErrorKind, err error) *SpawnError {
	return &SpawnError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		program: program,
	}
}

// Error returns the spawn error message
func (e *SpawnError) Error() string {
	if e.program != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.program, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.program)
	}
	return e.ApplicationError.Error()
}

// Program returns the external program associated with the error
func (e *SpawnError) Program() string {
	return e.program
}

// PersistenceError represents a state file that could not be read or written
type PersistenceError struct {
	ApplicationError
	path string
}

// NewPersistenceError creates a new persistence error
func NewPersistenceError(msg string, path string, kind ErrorKind, err error) *PersistenceError {
	return &PersistenceError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the persistence error message
func (e *PersistenceError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the state file path associated with the error
func (e *PersistenceError) Path() string {
	return e.path
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// IsStartup checks if the error is a startup error
func IsStartup(err error) bool {
	var startupErr *StartupError
	return errors.As(err, &startupErr)
}

// IsAccess checks if the error is a directory access error
func IsAccess(err error) bool {
	var accessErr *AccessError
	return errors.As(err, &accessErr)
}

// IsClipboard checks if the error is a clipboard error
func IsClipboard(err error) bool {
	var clipErr *ClipboardError
	return errors.As(err, &clipErr)
}

// IsSpawn checks if the error is a spawn error
func IsSpawn(err error) bool {
	var spawnErr *SpawnError
	return errors.As(err, &spawnErr)
}

// IsPersistence checks if the error is a persistence error
func IsPersistence(err error) bool {
	var persistErr *PersistenceError
	return errors.As(err, &persistErr)
}
