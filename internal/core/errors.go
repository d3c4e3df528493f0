package core

import (
	"errors"
	"fmt"
)

// ErrEmptyText is returned by the prompt builder when there is no document
// text to work with. It is checked before any external call is made.
var ErrEmptyText = errors.New("document text is empty")

// ExtractionError reports a failure while turning an uploaded document into
// plain text: unsupported format, corrupt file, or an empty result.
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("extraction failed: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// GenerationError reports a failure from the model-serving endpoint:
// connection refused, timeout, unknown model, or a non-OK response.
type GenerationError struct {
	Reason string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("generation failed: %s", e.Reason)
}

func (e *GenerationError) Unwrap() error { return e.Err }
