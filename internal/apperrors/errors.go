// Package apperrors defines the request-facing error taxonomy. Every error
// crossing the service boundary is one of these kinds; the HTTP layer maps
// kinds to status codes and never inspects anything else.
package apperrors

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindUnauthenticated: no (or invalid) principal on the request.
	KindUnauthenticated Kind = iota
	// KindForbidden: authenticated but not allowed.
	KindForbidden
	// KindNotFound: resource absent or outside the principal's visible set.
	// Deliberately indistinguishable from "does not exist".
	KindNotFound
	// KindValidation: missing required field or an invalid reference.
	KindValidation
	// KindInternal: everything else.
	KindInternal
)

type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func Unauthenticated(message string) *AppError {
	return &AppError{Kind: KindUnauthenticated, Code: "unauthenticated", Message: message}
}

func Forbidden(message string) *AppError {
	return &AppError{Kind: KindForbidden, Code: "forbidden", Message: message}
}

func NotFound(message string) *AppError {
	return &AppError{Kind: KindNotFound, Code: "not_found", Message: message}
}

func Validation(code, message string) *AppError {
	return &AppError{Kind: KindValidation, Code: code, Message: message}
}

func Internal(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Code: "internal", Message: message, Err: err}
}

// KindOf extracts the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
