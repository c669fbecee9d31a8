package session

import (
	"testing"

	"editflow/model"
)

func entryFor(path, before, after string) historyEntry {
	edit := model.NewProposedEdit(path, before, after, model.EditMetadata{})
	tx, err := model.NewEditTransaction([]model.ProposedEdit{edit})
	if err != nil {
		panic(err)
	}
	snap := model.CaptureSnapshot(tx, map[string]model.FileSnapshot{
		path: {Path: path, Content: before},
	})
	return historyEntry{tx: tx, snap: snap}
}

func TestHistoryRecordClearsRedo(t *testing.T) {
	var h History
	h.record(entryFor("a.txt", "1", "2"))
	h.record(entryFor("a.txt", "2", "3"))
	if h.UndoDepth() != 2 || h.RedoDepth() != 0 {
		t.Fatalf("depths = %d/%d, want 2/0", h.UndoDepth(), h.RedoDepth())
	}

	e, ok := h.popUndo()
	if !ok {
		t.Fatal("popUndo failed")
	}
	h.pushRedo(e)
	if !h.CanRedo() {
		t.Fatal("expected redo entry")
	}

	h.record(entryFor("a.txt", "2", "4"))
	if h.CanRedo() {
		t.Error("record must clear the redo stack")
	}
}

func TestHistoryOrdering(t *testing.T) {
	var h History
	first := entryFor("a.txt", "1", "2")
	second := entryFor("a.txt", "2", "3")
	h.record(first)
	h.record(second)

	e, _ := h.popUndo()
	if e.tx.ID != second.tx.ID {
		t.Error("popUndo did not return the most recent entry")
	}
	h.pushRedo(e)

	r, _ := h.popRedo()
	if r.tx.ID != second.tx.ID {
		t.Error("popRedo did not return the undone entry")
	}
	h.restore(r)

	if h.UndoDepth() != 2 {
		t.Errorf("UndoDepth = %d, want 2", h.UndoDepth())
	}
	if _, ok := h.popRedo(); ok {
		t.Error("redo stack should be empty")
	}
}

func TestHistoryEmptyPops(t *testing.T) {
	var h History
	if _, ok := h.popUndo(); ok {
		t.Error("popUndo on empty history")
	}
	if _, ok := h.popRedo(); ok {
		t.Error("popRedo on empty history")
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("empty history reports availability")
	}
}
