// Package session coordinates one instruction-to-edits workflow: buffering a
// streamed AI response, parsing it into proposed edits, validating and
// committing them as atomic transactions over in-memory file snapshots, and
// undoing or redoing committed transactions.
package session

import (
	"fmt"

	"editflow/model"
	"editflow/parser"
)

// Notify is called once per state transition with the new state.
type Notify func(State)

// AppliedChange is the outcome of a committed edit, for the caller to apply
// to its real files. The engine itself never touches the file system.
type AppliedChange struct {
	FilePath   string
	NewContent string
}

// Session is the sole entry point of the engine. A session is owned by one
// logical caller at a time; there is no internal locking, so concurrent use
// from multiple goroutines must be serialized by the caller.
//
// Every operation checks the current state first. An operation that is
// illegal for the current state is a no-op that returns a failure value; it
// never panics and never mutates the session.
type Session struct {
	instruction string
	files       map[string]model.FileSnapshot
	buf         *parser.Parser

	state   State
	notify  Notify
	failure error

	proposed []model.ProposedEdit
	dropped  []parser.IntentError
	tx       *model.EditTransaction
	lastSnap *model.TransactionSnapshot
	history  History
}

// Option configures a new session.
type Option func(*Session)

// WithNotify registers a state-change callback.
func WithNotify(fn Notify) Option {
	return func(s *Session) { s.notify = fn }
}

// New creates a session over the given file snapshots. Snapshots are
// captured once here and never refreshed from outside; a later snapshot for
// the same path replaces an earlier one.
func New(instruction string, snapshots []model.FileSnapshot, opts ...Option) *Session {
	files := make(map[string]model.FileSnapshot, len(snapshots))
	for _, fs := range snapshots {
		files[fs.Path] = fs
	}
	s := &Session{
		instruction: instruction,
		files:       files,
		buf:         parser.New(),
		state:       StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// apply runs one event through the transition table. It reports whether the
// event was legal; the notification fires only when the state actually
// changed, so appending chunks does not spam the callback.
func (s *Session) apply(e event) bool {
	to, ok := next(s.state, e)
	if !ok {
		return false
	}
	changed := to != s.state
	s.state = to
	if changed && s.notify != nil {
		s.notify(to)
	}
	return true
}

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Instruction returns the instruction the session was created with.
func (s *Session) Instruction() string { return s.instruction }

// Err returns the reason the session entered the failed state, or nil.
func (s *Session) Err() error { return s.failure }

// Snapshot returns the session's current snapshot of one file.
func (s *Session) Snapshot(path string) (model.FileSnapshot, bool) {
	fs, ok := s.files[path]
	return fs, ok
}

// Files returns a copy of the session's current snapshots.
func (s *Session) Files() map[string]model.FileSnapshot {
	out := make(map[string]model.FileSnapshot, len(s.files))
	for p, fs := range s.files {
		out[p] = fs
	}
	return out
}

// Proposed returns the edits awaiting review.
func (s *Session) Proposed() []model.ProposedEdit {
	return append([]model.ProposedEdit(nil), s.proposed...)
}

// Dropped returns the per-edit reasons recorded while parsing.
func (s *Session) Dropped() []parser.IntentError {
	return append([]parser.IntentError(nil), s.dropped...)
}

// Transaction returns the prepared transaction, if any.
func (s *Session) Transaction() *model.EditTransaction {
	return s.tx
}

// LastSnapshot returns the snapshot captured by the most recent commit.
func (s *Session) LastSnapshot() *model.TransactionSnapshot {
	return s.lastSnap
}

// CanUndo reports whether a committed transaction can be undone.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether an undone transaction can be redone.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// Start opens an empty streaming buffer.
func (s *Session) Start() error {
	if !s.apply(eventStart) {
		return ErrInvalidTransition
	}
	s.buf.Reset()
	return nil
}

// AppendStreamingText buffers one chunk. Nothing is parsed until
// CompleteStreaming.
func (s *Session) AppendStreamingText(chunk string) error {
	if !s.apply(eventAppend) {
		return ErrInvalidTransition
	}
	s.buf.Append(chunk)
	return nil
}

// CompleteStreaming parses the accumulated buffer synchronously. It moves
// the session to proposed when at least one usable edit was extracted, and
// to failed otherwise. This is the session's one potentially expensive call:
// O(buffer length + total file length).
func (s *Session) CompleteStreaming() error {
	if _, ok := next(s.state, eventComplete); !ok {
		return ErrInvalidTransition
	}
	s.apply(eventComplete)

	intents, dropped := parser.Extract(s.buf.String(), s.files)
	s.dropped = dropped

	if len(intents) == 0 {
		s.failure = ErrParseFailure
		s.apply(eventParseFailed)
		return ErrParseFailure
	}

	s.proposed = make([]model.ProposedEdit, 0, len(intents))
	for _, in := range intents {
		s.proposed = append(s.proposed, model.NewProposedEdit(
			in.Path,
			s.files[in.Path].Content,
			in.ProposedContent,
			model.EditMetadata{Confidence: in.Confidence, EditType: in.EditType},
		))
	}
	s.apply(eventParseOK)
	return nil
}

// PrepareTransaction validates a selection of proposed edits (all of them
// when no ids are given) and builds the transaction. On a validation error
// the state is unchanged.
func (s *Session) PrepareTransaction(ids ...string) error {
	if _, ok := next(s.state, eventPrepare); !ok {
		return ErrInvalidTransition
	}

	selected, err := s.selectEdits(ids)
	if err != nil {
		return err
	}

	tx, err := model.NewEditTransaction(selected)
	if err != nil {
		return &ValidationError{Reason: ValidationDuplicateFile}
	}

	s.tx = &tx
	s.apply(eventPrepare)
	return nil
}

// selectEdits resolves edit ids against the proposal set and validates each
// selected edit.
func (s *Session) selectEdits(ids []string) ([]model.ProposedEdit, error) {
	var selected []model.ProposedEdit
	if len(ids) == 0 {
		selected = s.proposed
	} else {
		byID := make(map[string]model.ProposedEdit, len(s.proposed))
		for _, e := range s.proposed {
			byID[e.ID] = e
		}
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			e, ok := byID[id]
			if !ok {
				return nil, &ValidationError{Reason: ValidationUnknownEdit, EditID: id}
			}
			selected = append(selected, e)
		}
	}

	if len(selected) == 0 {
		return nil, ErrEmptyTransaction
	}

	files := make(map[string]bool, len(selected))
	for _, e := range selected {
		if _, known := s.files[e.FilePath]; !known {
			return nil, &ValidationError{Reason: ValidationUnknownFile, Path: e.FilePath}
		}
		if e.ProposedContent == e.OriginalContent {
			return nil, &ValidationError{Reason: ValidationNoOpEdit, Path: e.FilePath}
		}
		if files[e.FilePath] {
			return nil, &ValidationError{Reason: ValidationDuplicateFile, Path: e.FilePath}
		}
		files[e.FilePath] = true
	}
	return selected, nil
}

// CommitTransaction applies the prepared transaction atomically: the new
// snapshots are built in full before anything is touched, then the history
// entry is recorded and every affected snapshot replaced. On any internal
// inconsistency nothing is applied and the session stays in
// transactionReady.
func (s *Session) CommitTransaction() (*model.TransactionSnapshot, error) {
	if _, ok := next(s.state, eventCommit); !ok {
		return nil, ErrInvalidTransition
	}
	if s.tx == nil {
		return nil, ErrCommitInconsistent
	}
	tx := *s.tx

	updated := make(map[string]model.FileSnapshot, len(tx.Edits))
	for _, e := range tx.Edits {
		cur, ok := s.files[e.FilePath]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrCommitInconsistent, e.FilePath)
		}
		updated[e.FilePath] = model.FileSnapshot{
			Path:     e.FilePath,
			Content:  e.ProposedContent,
			Language: cur.Language,
		}
	}

	snap := model.CaptureSnapshot(tx, s.files)
	s.history.record(historyEntry{tx: tx, snap: snap})
	for path, fs := range updated {
		s.files[path] = fs
	}
	s.lastSnap = &snap
	s.tx = nil
	s.apply(eventCommit)
	return &snap, nil
}

// RollbackTransaction discards the prepared transaction. History and
// snapshots are untouched.
func (s *Session) RollbackTransaction() error {
	if _, ok := next(s.state, eventRollback); !ok {
		return ErrInvalidTransition
	}
	s.tx = nil
	s.apply(eventRollback)
	return nil
}

// Accept prepares and commits the named edits (or all of them) in one step
// and returns the content the caller should write to its files.
func (s *Session) Accept(ids ...string) ([]AppliedChange, error) {
	if err := s.PrepareTransaction(ids...); err != nil {
		return nil, err
	}
	edits := s.tx.Edits
	if _, err := s.CommitTransaction(); err != nil {
		return nil, err
	}
	changes := make([]AppliedChange, len(edits))
	for i, e := range edits {
		changes[i] = AppliedChange{FilePath: e.FilePath, NewContent: e.ProposedContent}
	}
	return changes, nil
}

// AcceptAll accepts every proposed edit.
func (s *Session) AcceptAll() ([]AppliedChange, error) {
	return s.Accept()
}

// Reject removes the named proposals. When none remain the session moves to
// rolledBack; otherwise it stays in proposed.
func (s *Session) Reject(ids ...string) error {
	if _, ok := next(s.state, eventReject); !ok {
		return ErrInvalidTransition
	}

	byID := make(map[string]bool, len(ids))
	for _, id := range ids {
		byID[id] = true
	}
	known := make(map[string]bool, len(s.proposed))
	for _, e := range s.proposed {
		known[e.ID] = true
	}
	for id := range byID {
		if !known[id] {
			return &ValidationError{Reason: ValidationUnknownEdit, EditID: id}
		}
	}

	kept := s.proposed[:0:0]
	for _, e := range s.proposed {
		if !byID[e.ID] {
			kept = append(kept, e)
		}
	}
	s.proposed = kept
	if len(s.proposed) == 0 {
		s.apply(eventReject)
	}
	return nil
}

// RejectAll discards every proposal.
func (s *Session) RejectAll() error {
	if !s.apply(eventReject) {
		return ErrInvalidTransition
	}
	s.proposed = nil
	return nil
}

// Undo reverts the most recent committed transaction against the session's
// snapshots and returns the restored contents for the caller to apply. An
// empty undo stack returns nil, not an error. Undo is legal in any state.
func (s *Session) Undo() map[string]string {
	e, ok := s.history.popUndo()
	if !ok {
		return nil
	}
	restored := make(map[string]string, len(e.snap.PreState))
	for path, fs := range e.snap.PreState {
		s.files[path] = fs
		restored[path] = fs.Content
	}
	s.history.pushRedo(e)
	return restored
}

// Redo reapplies the most recently undone transaction and returns the
// reapplied contents. An empty redo stack returns nil.
func (s *Session) Redo() map[string]string {
	e, ok := s.history.popRedo()
	if !ok {
		return nil
	}
	applied := make(map[string]string, len(e.tx.Edits))
	for _, ed := range e.tx.Edits {
		cur := s.files[ed.FilePath]
		s.files[ed.FilePath] = model.FileSnapshot{
			Path:     ed.FilePath,
			Content:  ed.ProposedContent,
			Language: cur.Language,
		}
		applied[ed.FilePath] = ed.ProposedContent
	}
	s.history.restore(e)
	return applied
}

// Reset returns the session to idle for a new round, discarding the buffer,
// proposals and any pending transaction. File snapshots and history are
// kept.
func (s *Session) Reset() error {
	if _, ok := next(s.state, eventReset); !ok {
		return ErrInvalidTransition
	}
	s.buf.Reset()
	s.proposed = nil
	s.dropped = nil
	s.tx = nil
	s.lastSnap = nil
	s.failure = nil
	s.apply(eventReset)
	return nil
}
