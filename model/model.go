// Package model holds the immutable values exchanged between the parser, the
// diff engine and the session: file snapshots, proposed edits and the
// transaction types that group them.
package model

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"editflow/diff"
)

// ErrDuplicateFile is returned when a transaction would contain two edits
// for the same path.
var ErrDuplicateFile = errors.New("transaction contains two edits for the same file")

// Edit types recorded in ProposedEdit metadata.
const (
	EditTypePatch   = "patch"   // built from structured line operations
	EditTypeRewrite = "rewrite" // whole-file replacement block
)

// FileSnapshot is the captured state of one file. Snapshots are values and
// are never mutated; a session replaces them wholesale on commit and undo.
type FileSnapshot struct {
	Path     string
	Content  string
	Language string
}

// EditMetadata carries informational attributes of a proposed edit.
type EditMetadata struct {
	Confidence float64
	EditType   string
}

// ProposedEdit is one not-yet-applied change to a single file, with its diff
// precomputed against the original content.
type ProposedEdit struct {
	ID              string
	FilePath        string
	OriginalContent string
	ProposedContent string
	Diff            diff.Diff
	Metadata        EditMetadata
}

// NewProposedEdit builds an edit with a fresh ID and a diff computed from
// the two contents.
func NewProposedEdit(path, original, proposed string, meta EditMetadata) ProposedEdit {
	return ProposedEdit{
		ID:              uuid.NewString(),
		FilePath:        path,
		OriginalContent: original,
		ProposedContent: proposed,
		Diff:            diff.Compute(original, proposed),
		Metadata:        meta,
	}
}

// EditTransaction is an atomic group of edits across distinct files.
type EditTransaction struct {
	ID            string
	Edits         []ProposedEdit
	AffectedFiles map[string]struct{}
}

// NewEditTransaction groups edits into a transaction. Each file may appear
// in at most one edit.
func NewEditTransaction(edits []ProposedEdit) (EditTransaction, error) {
	affected := make(map[string]struct{}, len(edits))
	for _, e := range edits {
		if _, dup := affected[e.FilePath]; dup {
			return EditTransaction{}, fmt.Errorf("%w: %s", ErrDuplicateFile, e.FilePath)
		}
		affected[e.FilePath] = struct{}{}
	}
	return EditTransaction{
		ID:            uuid.NewString(),
		Edits:         append([]ProposedEdit(nil), edits...),
		AffectedFiles: affected,
	}, nil
}

// TransactionSnapshot captures the pre-commit state of every file a
// transaction touches, so the commit can be undone.
type TransactionSnapshot struct {
	TransactionID string
	PreState      map[string]FileSnapshot
}

// CaptureSnapshot records the current snapshot of each affected file.
func CaptureSnapshot(tx EditTransaction, files map[string]FileSnapshot) TransactionSnapshot {
	pre := make(map[string]FileSnapshot, len(tx.AffectedFiles))
	for path := range tx.AffectedFiles {
		pre[path] = files[path]
	}
	return TransactionSnapshot{TransactionID: tx.ID, PreState: pre}
}
