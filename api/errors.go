// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for the reactive engine.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the library.
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrDisposed           = errors.New("object is disposed")
	ErrNotSupported       = errors.New("operation not supported")
	ErrAlreadyAssigned    = errors.New("disposable is already assigned")
	ErrMoreThanOneElement = errors.New("sequence contains more than one matching element")
	ErrHostClosed         = errors.New("host is closed")
	ErrOperatorFault      = errors.New("operator fault")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeDisposed
	ErrCodeNotSupported
	ErrCodeProtocolViolation
	ErrCodeOperatorFault
	ErrCodeInternal
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeOK:
		return "ok"
	case ErrCodeInvalidArgument:
		return "invalid_argument"
	case ErrCodeDisposed:
		return "disposed"
	case ErrCodeNotSupported:
		return "not_supported"
	case ErrCodeProtocolViolation:
		return "protocol_violation"
	case ErrCodeOperatorFault:
		return "operator_fault"
	default:
		return "internal"
	}
}

// Error represents a structured error with code and context.
// Err, when set, is exposed through Unwrap so errors.Is matches the sentinels above.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if len(e.Context) == 0 {
		return msg
	}
	return fmt.Sprintf("%s (context: %+v)", msg, e.Context)
}

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// Wrap sets the cause of the error.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// InvalidArgument builds the construction-time error returned when a required
// collaborator is missing or an argument is out of range.
func InvalidArgument(name string) *Error {
	return NewError(ErrCodeInvalidArgument, "invalid argument "+name).Wrap(ErrInvalidArgument)
}

// OperatorFault converts a panic recovered from user transformation logic into an error.
func OperatorFault(operator string, recovered any) *Error {
	cause := ErrOperatorFault
	if err, ok := recovered.(error); ok {
		cause = fmt.Errorf("%w: %w", ErrOperatorFault, err)
	} else if recovered != nil {
		cause = fmt.Errorf("%w: %v", ErrOperatorFault, recovered)
	}
	return NewError(ErrCodeOperatorFault, operator+" failed").Wrap(cause)
}

// CodeOf extracts the ErrorCode of err, or ErrCodeInternal when err is not an *Error.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrCodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}
