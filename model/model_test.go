package model

import (
	"errors"
	"testing"
)

func TestNewProposedEditComputesDiff(t *testing.T) {
	e := NewProposedEdit("main.py", "print(1)", "print(2)", EditMetadata{EditType: EditTypeRewrite})
	if e.ID == "" {
		t.Error("expected a generated ID")
	}
	if e.Diff.AddedLines != 1 || e.Diff.RemovedLines != 1 {
		t.Errorf("diff counts = +%d/-%d, want +1/-1", e.Diff.AddedLines, e.Diff.RemovedLines)
	}
}

func TestNewEditTransaction(t *testing.T) {
	a := NewProposedEdit("a.txt", "1", "2", EditMetadata{})
	b := NewProposedEdit("b.txt", "1", "2", EditMetadata{})

	tx, err := NewEditTransaction([]ProposedEdit{a, b})
	if err != nil {
		t.Fatalf("NewEditTransaction: %v", err)
	}
	if len(tx.AffectedFiles) != 2 {
		t.Errorf("AffectedFiles has %d entries, want 2", len(tx.AffectedFiles))
	}

	dup := NewProposedEdit("a.txt", "1", "3", EditMetadata{})
	if _, err := NewEditTransaction([]ProposedEdit{a, dup}); !errors.Is(err, ErrDuplicateFile) {
		t.Errorf("expected ErrDuplicateFile, got %v", err)
	}
}

func TestCaptureSnapshot(t *testing.T) {
	files := map[string]FileSnapshot{
		"a.txt": {Path: "a.txt", Content: "old a"},
		"b.txt": {Path: "b.txt", Content: "old b"},
	}
	edit := NewProposedEdit("a.txt", "old a", "new a", EditMetadata{})
	tx, err := NewEditTransaction([]ProposedEdit{edit})
	if err != nil {
		t.Fatalf("NewEditTransaction: %v", err)
	}

	snap := CaptureSnapshot(tx, files)
	if snap.TransactionID != tx.ID {
		t.Errorf("TransactionID = %q, want %q", snap.TransactionID, tx.ID)
	}
	if len(snap.PreState) != 1 {
		t.Fatalf("PreState has %d entries, want 1", len(snap.PreState))
	}
	if snap.PreState["a.txt"].Content != "old a" {
		t.Errorf("PreState content = %q, want %q", snap.PreState["a.txt"].Content, "old a")
	}
}
