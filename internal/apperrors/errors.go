package apperrors

import "errors"

var (
	ErrUnknownTarget       = errors.New("unknown generation target")
	ErrInvalidDocument     = errors.New("invalid interchange document")
	ErrEmptyDiagram        = errors.New("diagram has no classes")
	ErrUnsupportedDatabase = errors.New("unsupported database type")
	ErrVisionUnavailable   = errors.New("vision service unavailable")
	ErrVisionResponse      = errors.New("vision service returned an unusable response")
)
