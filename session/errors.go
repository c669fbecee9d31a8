package session

import (
	"errors"
	"fmt"
)

// Errors returned by session operations. They are return values only; no
// session operation panics.
var (
	// ErrInvalidTransition means the operation is not legal in the current
	// state. The state is left untouched.
	ErrInvalidTransition = errors.New("operation not legal in current session state")

	// ErrParseFailure means a completed stream yielded no usable edits.
	ErrParseFailure = errors.New("no edits could be extracted from the stream")

	// ErrEmptyTransaction means a transaction was prepared with no edits.
	ErrEmptyTransaction = errors.New("transaction contains no edits")

	// ErrCommitInconsistent means commit found the session's snapshots and
	// the transaction out of step; nothing was applied.
	ErrCommitInconsistent = errors.New("transaction is inconsistent with session snapshots")
)

// Validation failure reasons.
const (
	ValidationUnknownEdit   = "unknown edit id"
	ValidationUnknownFile   = "file is not part of the session"
	ValidationDuplicateFile = "file selected more than once"
	ValidationNoOpEdit      = "edit proposes no change"
)

// ValidationError describes why PrepareTransaction rejected a selection.
// The session state is unchanged when one is returned.
type ValidationError struct {
	Reason string
	Path   string
	EditID string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Path != "":
		return fmt.Sprintf("transaction validation failed: %s (%s)", e.Reason, e.Path)
	case e.EditID != "":
		return fmt.Sprintf("transaction validation failed: %s (%s)", e.Reason, e.EditID)
	default:
		return fmt.Sprintf("transaction validation failed: %s", e.Reason)
	}
}
