package session

import "editflow/model"

// historyEntry pairs a committed transaction with the pre-commit snapshot
// that undoes it.
type historyEntry struct {
	tx   model.EditTransaction
	snap model.TransactionSnapshot
}

// History holds the linear undo/redo stacks of one session. Each session
// owns its own History; stacks are never shared between sessions. Depth is
// unbounded: sessions live for a single task and rarely see more than a
// handful of commits.
type History struct {
	undo []historyEntry
	redo []historyEntry
}

// record pushes a fresh commit and discards any pending redo entries.
func (h *History) record(e historyEntry) {
	h.undo = append(h.undo, e)
	h.redo = nil
}

// popUndo removes and returns the most recent commit.
func (h *History) popUndo() (historyEntry, bool) {
	if len(h.undo) == 0 {
		return historyEntry{}, false
	}
	e := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	return e, true
}

// popRedo removes and returns the most recently undone commit.
func (h *History) popRedo() (historyEntry, bool) {
	if len(h.redo) == 0 {
		return historyEntry{}, false
	}
	e := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	return e, true
}

// pushRedo stores an undone commit for redo.
func (h *History) pushRedo(e historyEntry) {
	h.redo = append(h.redo, e)
}

// restore puts a redone commit back on the undo stack without clearing
// redo, unlike record.
func (h *History) restore(e historyEntry) {
	h.undo = append(h.undo, e)
}

// CanUndo reports whether an undo entry is available.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether a redo entry is available.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoDepth returns the number of commits that can be undone.
func (h *History) UndoDepth() int { return len(h.undo) }

// RedoDepth returns the number of commits that can be redone.
func (h *History) RedoDepth() int { return len(h.redo) }
