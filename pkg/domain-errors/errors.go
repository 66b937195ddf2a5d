// Package domainerrors carries typed, client-facing failures.
//
// Services translate infrastructure facts (pkg/platform/sentinel) into an
// *Error with a Code that handlers map onto HTTP statuses. Workflow
// precondition failures additionally carry a Reason so callers can branch on
// the exact condition (for example "already_linked") without parsing messages.
package domainerrors

import (
	"errors"
)

// Code classifies an error for transport mapping.
type Code string

const (
	CodeBadRequest         Code = "bad_request"
	CodeConflict           Code = "conflict"
	CodeForbidden          Code = "forbidden"
	CodeInternal           Code = "internal_error"
	CodeInvalidInput       Code = "invalid_input"
	CodeInvariantViolation Code = "invariant_violation"
	CodeNotFound           Code = "not_found"
	CodeTimeout            Code = "timeout"
	CodeUnauthorized       Code = "unauthorized"
	CodeValidation         Code = "validation_error"
)

// Error is a domain error with a stable code, an optional workflow reason,
// and an optional wrapped cause that is never exposed to clients.
type Error struct {
	Code    Code
	Reason  Reason
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error with the given code and client-safe message.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// NewWithReason creates an error that also names the workflow precondition that failed.
func NewWithReason(code Code, reason Reason, msg string) error {
	return &Error{Code: code, Reason: reason, Message: msg}
}

// Wrap attaches a code and client-safe message to an underlying cause.
func Wrap(err error, code Code, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// As extracts the outermost *Error in the chain.
func As(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// HasCode reports whether any *Error in the chain carries code.
func HasCode(err error, code Code) bool {
	for err != nil {
		var de *Error
		if !errors.As(err, &de) {
			return false
		}
		if de.Code == code {
			return true
		}
		err = de.Err
	}
	return false
}

// CodeOf returns the code of the outermost *Error, or CodeInternal for
// anything untyped.
func CodeOf(err error) Code {
	if de, ok := As(err); ok {
		return de.Code
	}
	return CodeInternal
}
