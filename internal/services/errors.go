package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDownload      = errors.New("download error")
	ErrTranscription = errors.New("transcription error")
	ErrFormat        = errors.New("format error")
	ErrIO            = errors.New("io error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above; a nil marker leaves the error
// untagged.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	var wrapped error
	switch {
	case marker == nil && err != nil:
		wrapped = fmt.Errorf("%s: %w", detail, err)
	case marker == nil:
		wrapped = errors.New(detail)
	case err != nil:
		wrapped = fmt.Errorf("%w: %s: %w", marker, detail, err)
	default:
		wrapped = fmt.Errorf("%w: %s", marker, detail)
	}
	if stage = strings.TrimSpace(stage); stage != "" {
		return &stageError{stage: stage, err: wrapped}
	}
	return wrapped
}

// stageError records the failing pipeline stage without altering the message.
type stageError struct {
	stage string
	err   error
}

func (e *stageError) Error() string { return e.err.Error() }

func (e *stageError) Unwrap() error { return e.err }

// StageOf reports the pipeline stage recorded on the error chain, or an empty
// string when none was recorded.
func StageOf(err error) string {
	var se *stageError
	if errors.As(err, &se) {
		return se.stage
	}
	return ""
}

// Category maps an error to its short taxonomy label. Errors without a scribe
// marker report an empty category.
func Category(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrDownload):
		return "download"
	case errors.Is(err, ErrTranscription):
		return "transcription"
	case errors.Is(err, ErrFormat):
		return "format"
	case errors.Is(err, ErrIO):
		return "io"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	default:
		return ""
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
