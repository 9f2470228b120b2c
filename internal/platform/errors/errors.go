package apperrors

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNoFileSelected   = errors.New("no file selected")
	ErrEmptyQuestion    = errors.New("question is empty")
	ErrExtractionFailed = errors.New("extraction failed")
	ErrAskFailed        = errors.New("ask failed")
	// ErrSuperseded marks a request whose result was discarded because a
	// newer request on the same flow was issued before it settled.
	ErrSuperseded = errors.New("superseded by a newer request")
)
