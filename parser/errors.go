package parser

import (
	"errors"
	"fmt"
)

// Reasons for dropping an individual edit while the scan continues.
var (
	ErrMalformedBatch = errors.New("malformed structured edit block")
	ErrUnknownFile    = errors.New("file is not part of the session")
	ErrOutOfBounds    = errors.New("line range is outside the file")
	ErrBadOperation   = errors.New("unsupported edit operation")
	ErrNoChange       = errors.New("proposed content equals the original")
)

// IntentError records one dropped edit and why. Dropping is local: the rest
// of the buffer is still scanned.
type IntentError struct {
	Path   string
	Reason error
}

func (e IntentError) Error() string {
	if e.Path == "" {
		return e.Reason.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Reason)
}

func (e IntentError) Unwrap() error { return e.Reason }
