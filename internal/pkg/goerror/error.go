// Package goerror defines the structured error used across the application.
//
// Every error that crosses a module boundary is either a plain error (treated
// as a server fault) or a *Error carrying a user-facing message, a type, a
// stable code, and optionally a machine-readable reason for clients.
package goerror

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound marks a missing resource at the storage layer.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict marks a uniqueness or state conflict at the storage layer.
	ErrConflict = errors.New("resource conflict")
)

// Type is the high-level classification of an error.
type Type int

const (
	// TypeServer is an infrastructure or programming fault.
	TypeServer Type = iota
	// TypeBusiness is a domain rule violation.
	TypeBusiness
	// TypeValidation is a malformed or invalid request.
	TypeValidation
)

// String returns the wire representation of the type.
func (t Type) String() string {
	switch t {
	case TypeBusiness:
		return "ERROR_TYPE_BUSINESS"
	case TypeValidation:
		return "ERROR_TYPE_VALIDATION"
	default:
		return "ERROR_TYPE_SERVER"
	}
}

// Code identifies the failure category and drives the HTTP status mapping.
type Code int

const (
	// CodeInternal is an unspecified server failure.
	CodeInternal Code = iota
	// CodeInvalidFormat means the request body could not be parsed.
	CodeInvalidFormat
	// CodeInvalidInput means the request was parsed but failed validation.
	CodeInvalidInput
	// CodeNotFound means the resource does not exist.
	CodeNotFound
	// CodeConflict means the request conflicts with current state.
	CodeConflict
	// CodeUnauthorized means authentication failed or is missing.
	CodeUnauthorized
	// CodeForbidden means the caller lacks permission.
	CodeForbidden
	// CodeTooManyRequest means the caller is rate limited.
	CodeTooManyRequest
	// CodeTimeout means the operation exceeded its deadline.
	CodeTimeout
)

// String returns the wire representation of the code.
func (c Code) String() string {
	switch c {
	case CodeInvalidFormat:
		return "ERROR_CODE_INVALID_FORMAT"
	case CodeInvalidInput:
		return "ERROR_CODE_INVALID_INPUT"
	case CodeNotFound:
		return "ERROR_CODE_NOT_FOUND"
	case CodeConflict:
		return "ERROR_CODE_CONFLICT"
	case CodeUnauthorized:
		return "ERROR_CODE_UNAUTHORIZED"
	case CodeForbidden:
		return "ERROR_CODE_FORBIDDEN"
	case CodeTooManyRequest:
		return "ERROR_CODE_TOO_MANY_REQUESTS"
	case CodeTimeout:
		return "ERROR_CODE_TIMEOUT"
	default:
		return "ERROR_CODE_INTERNAL"
	}
}

// Error wraps an underlying error together with the information the HTTP
// layer needs to build a response without inspecting module internals.
type Error struct {
	err     error
	msg     string
	errType Type
	code    Code
	reason  string
	fields  map[string]string
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.err != nil:
		return e.err.Error()
	case e.msg != "":
		return e.msg
	default:
		return e.errType.String()
	}
}

// String renders all parts of the error for logs.
func (e *Error) String() string {
	return fmt.Sprintf("type=%s code=%s reason=%q msg=%q cause=%v",
		e.errType, e.code, e.reason, e.msg, e.err)
}

// Msg returns the user-facing message.
func (e *Error) Msg() string { return e.msg }

// Type returns the error classification.
func (e *Error) Type() Type { return e.errType }

// Code returns the stable error code.
func (e *Error) Code() Code { return e.code }

// Reason returns the machine-readable reason tag, if any. Clients branch on
// this value, so it must stay stable across releases.
func (e *Error) Reason() string { return e.reason }

// Fields returns per-field validation messages, if any.
func (e *Error) Fields() map[string]string { return e.fields }

// Unwrap returns the wrapped cause.
func (e *Error) Unwrap() error { return e.err }

// StatusCode maps the error code to an HTTP status.
func (e *Error) StatusCode() int {
	switch e.code {
	case CodeInvalidFormat:
		return http.StatusBadRequest
	case CodeInvalidInput:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	case CodeTimeout:
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// NewServer wraps err as an internal server fault.
func NewServer(err error) error {
	return &Error{err: err, msg: "Internal server error", errType: TypeServer, code: CodeInternal}
}

// NewBusiness creates a domain rule violation with a user-facing message.
func NewBusiness(msg string, code Code) error {
	return &Error{msg: msg, errType: TypeBusiness, code: code}
}

// NewUnauthorized creates an authentication failure carrying a stable reason
// tag that clients can branch on.
func NewUnauthorized(msg, reason string) error {
	return &Error{msg: msg, errType: TypeBusiness, code: CodeUnauthorized, reason: reason}
}

// NewInvalidInputReason creates a validation error carrying a stable reason
// tag in addition to the wrapped cause.
func NewInvalidInputReason(err error, reason string) error {
	return &Error{err: err, msg: "Validation error", errType: TypeValidation, code: CodeInvalidInput, reason: reason}
}

// NewInvalidInput creates a validation error. When err is nil, the optional
// key/value pairs become per-field messages.
func NewInvalidInput(err error, kv ...string) error {
	if err != nil {
		return &Error{err: err, msg: "Validation error", errType: TypeValidation, code: CodeInvalidInput}
	}

	if len(kv)%2 != 0 {
		return NewInvalidFormat()
	}

	out := &Error{msg: "Validation error", errType: TypeValidation, code: CodeInvalidInput}
	out.fields = make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out.fields[kv[i]] = kv[i+1]
	}

	return out
}

// NewInvalidFormat creates an error for an unparseable request body.
func NewInvalidFormat(msgs ...string) error {
	msg := "Invalid request body"
	if len(msgs) > 0 {
		msg = msgs[0]
	}
	return &Error{msg: msg, errType: TypeValidation, code: CodeInvalidFormat}
}
