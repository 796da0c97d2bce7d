package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies failures of a query cycle.
type ErrorKind string

const (
	KindValidation        ErrorKind = "VALIDATION_ERROR"
	KindInitialization    ErrorKind = "INITIALIZATION_ERROR"
	KindServer            ErrorKind = "SERVER_ERROR"
	KindMalformedResponse ErrorKind = "MALFORMED_RESPONSE"
	KindUnexpected        ErrorKind = "UNEXPECTED_ERROR"
)

// QueryError is the structured error surfaced to the user.
type QueryError struct {
	Kind    ErrorKind
	Message string   // human-readable, shown in the error region
	Status  int      // HTTP status for KindServer
	Missing []string // field keys or binding roles
	Err     error
}

func (e *QueryError) Error() string {
	return e.Message
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Is matches another *QueryError by kind, so errors.Is(err, &QueryError{Kind: KindServer}) works.
func (e *QueryError) Is(target error) bool {
	t, ok := target.(*QueryError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func NewValidationError(message string) *QueryError {
	return &QueryError{Kind: KindValidation, Message: message}
}

func NewInitializationError(missing []string) *QueryError {
	return &QueryError{
		Kind:    KindInitialization,
		Message: "Missing required UI elements: " + strings.Join(missing, ", "),
		Missing: missing,
	}
}

func NewServerError(status int, message string) *QueryError {
	if message == "" {
		message = fmt.Sprintf("Server error: %d", status)
	}
	return &QueryError{Kind: KindServer, Message: message, Status: status}
}

func NewMalformedResponseError(missing []string) *QueryError {
	return &QueryError{
		Kind:    KindMalformedResponse,
		Message: "Invalid response format. Missing fields: " + strings.Join(missing, ", "),
		Missing: missing,
	}
}

// NewMalformedBodyError reports a success body that is valid JSON but not an object.
func NewMalformedBodyError() *QueryError {
	return &QueryError{Kind: KindMalformedResponse, Message: "Invalid response format: expected a JSON object"}
}

func NewUnexpectedError(err error) *QueryError {
	msg := "An unexpected error occurred"
	if err != nil {
		msg = err.Error()
	}
	return &QueryError{Kind: KindUnexpected, Message: msg, Err: err}
}

// Normalize converts any error into a *QueryError.
func Normalize(err error) *QueryError {
	if err == nil {
		return nil
	}
	var qe *QueryError
	if errors.As(err, &qe) {
		return qe
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &QueryError{Kind: KindUnexpected, Message: "Request timed out", Err: err}
	}
	return NewUnexpectedError(err)
}

// KindOf returns the kind of err, KindUnexpected for foreign errors.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	return Normalize(err).Kind
}
