// Package apperr carries the application error taxonomy: every domain
// failure has a kind and an HTTP-style status the boundary layer can
// translate without inspecting messages.
package apperr

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindValidationFailed Kind = "validation_failed"
	KindNotFound         Kind = "not_found"
	KindConflict         Kind = "conflict"
	KindUploadFailed     Kind = "upload_failed"
	KindDeletionAborted  Kind = "deletion_aborted"
	KindUnauthorized     Kind = "unauthorized"
	KindInternal         Kind = "internal"
)

type Error struct {
	Kind    Kind
	Status  int
	Message string
	// Fields holds one message per offending field for validation errors.
	Fields map[string]string
}

func (e *Error) Error() string { return e.Message }

func Validation(message string, fields map[string]string) *Error {
	return &Error{Kind: KindValidationFailed, Status: http.StatusBadRequest, Message: message, Fields: fields}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Status: http.StatusNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Status: http.StatusBadRequest, Message: message}
}

func Upload(message string) *Error {
	return &Error{Kind: KindUploadFailed, Status: http.StatusBadRequest, Message: message}
}

func DeletionAborted(message string) *Error {
	return &Error{Kind: KindDeletionAborted, Status: http.StatusInternalServerError, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: KindUnauthorized, Status: http.StatusUnauthorized, Message: message}
}

func Internal(message string) *Error {
	return &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: message}
}

// From returns err as an *Error, wrapping unknown errors as a generic
// internal failure so infra details never leak to clients.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return Internal("Internal Server Error")
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
