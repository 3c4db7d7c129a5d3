// Package errors provides typed errors for registry, volume and argument failures.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of a failure.
type ErrorType string

const (
	// TypeStoreAccess indicates the MountedDevices key could not be opened or written
	TypeStoreAccess ErrorType = "store_access"
	// TypeInUse indicates a letter is backing a mounted volume
	TypeInUse ErrorType = "in_use"
	// TypeNotMounted indicates no live volume uses a letter
	TypeNotMounted ErrorType = "not_mounted"
	// TypeArgument indicates a caller passed invalid input
	TypeArgument ErrorType = "argument"
	// TypeUnsupported indicates the operation needs Windows
	TypeUnsupported ErrorType = "unsupported"
)

// Error represents a structured error with type, message, and context.
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *Error) Unwrap() error {
	return e.Cause
}

// StoreAccessError creates an error for a registry key that could not be opened.
func StoreAccessError(message string, cause error) *Error {
	return &Error{
		Type:    TypeStoreAccess,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// InUseError creates an error for a letter that is currently mounted.
func InUseError(letter rune) *Error {
	return &Error{
		Type:    TypeInUse,
		Message: fmt.Sprintf("drive letter %c is in use by a mounted device or is system critical", letter),
		Context: map[string]any{"letter": string(letter)},
	}
}

// NotMountedError creates an error for a letter without a live volume.
func NotMountedError(letter rune) *Error {
	return &Error{
		Type:    TypeNotMounted,
		Message: fmt.Sprintf("no device is mounted at drive letter %c", letter),
		Context: map[string]any{"letter": string(letter)},
	}
}

// ArgumentError creates an error for invalid caller input.
func ArgumentError(message string) *Error {
	return &Error{
		Type:    TypeArgument,
		Message: message,
		Context: make(map[string]any),
	}
}

// UnsupportedError creates an error for operations that need a Windows host.
func UnsupportedError(message string) *Error {
	return &Error{
		Type:    TypeUnsupported,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context fields to the error (chainable).
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// IsType reports whether any error in err's chain is an *Error of type t.
func IsType(err error, t ErrorType) bool {
	var appErr *Error
	for err != nil {
		if !errors.As(err, &appErr) {
			return false
		}
		if appErr.Type == t {
			return true
		}
		err = appErr.Cause
	}
	return false
}

// Letter returns the "letter" context of the first *Error in err's chain, or 0.
func Letter(err error) rune {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return 0
	}
	s, ok := appErr.Context["letter"].(string)
	if !ok || s == "" {
		return 0
	}
	return []rune(s)[0]
}
