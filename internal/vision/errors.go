package vision

import (
	"errors"
	"fmt"

	"github.com/tordrt/umlgen/internal/apperrors"
)

// ErrorKind classifies a failed import.
type ErrorKind string

const (
	// KindUnavailable means the provider could not be reached or refused the call.
	KindUnavailable ErrorKind = "unavailable"
	// KindTimeout means the provider did not answer within the configured timeout.
	KindTimeout ErrorKind = "timeout"
	// KindInvalidResponse means the answer was not a readable document.
	KindInvalidResponse ErrorKind = "invalid_response"
	// KindEmptyDiagram means the answer was readable but held no class.
	KindEmptyDiagram ErrorKind = "empty_diagram"
)

// Error is a failed vision import.
type Error struct {
	Kind     ErrorKind
	Provider string
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("vision %s (%s): %s", e.Kind, e.Provider, e.Message)
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the apperrors sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindUnavailable, KindTimeout:
		return target == apperrors.ErrVisionUnavailable
	default:
		return target == apperrors.ErrVisionResponse
	}
}

func newError(kind ErrorKind, provider, message string, cause error) *Error {
	return &Error{Kind: kind, Provider: provider, Message: message, Cause: cause}
}

// KindOf returns the kind of a vision error, or "" for any other error.
func KindOf(err error) ErrorKind {
	var ve *Error
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return ""
}
