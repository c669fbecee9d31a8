// Package app drives one review session from the command line: it loads the
// referenced files, streams the source text through a session, and applies
// whatever the user accepts.
package app

import (
	"errors"
	"fmt"
	"runtime/debug"

	"editflow/internal/cli"
	"editflow/internal/fs"
	"editflow/internal/source"
	"editflow/internal/ui"
	"editflow/model"
	"editflow/parser"
	"editflow/session"
)

// App orchestrates the CLI workflow around a single session.
type App struct {
	cfg      *cli.Config
	resolver *fs.PathResolver
	provider *source.Provider
	sess     *session.Session
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

// Outcome is what a processed source yields for review.
type Outcome struct {
	Proposed []model.ProposedEdit
	Dropped  []parser.IntentError
	Empty    bool
}

// New creates a new App instance.
func New(cfg *cli.Config) (*App, error) {
	resolver, err := fs.NewPathResolver(cfg.LookupDirs)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize path resolver: %w", err)
	}
	return &App{
		cfg:      cfg,
		resolver: resolver,
		provider: source.New(),
	}, nil
}

// Process reads the source, captures snapshots of every referenced file and
// runs the stream through a fresh session.
func (a *App) Process() (*Outcome, error) {
	content, err := a.provider.GetContent()
	if err != nil {
		if errors.Is(err, source.ErrEmpty) {
			return &Outcome{Empty: true}, nil
		}
		return nil, err
	}

	snapshots, err := a.resolver.LoadSnapshots(parser.ScanPaths(content))
	if err != nil {
		return nil, err
	}

	a.sess = session.New(a.cfg.Instruction, snapshots)
	if err := a.sess.Start(); err != nil {
		return nil, err
	}
	if err := a.sess.AppendStreamingText(content); err != nil {
		return nil, err
	}
	if err := a.sess.CompleteStreaming(); err != nil {
		if errors.Is(err, session.ErrParseFailure) {
			return &Outcome{Dropped: a.sess.Dropped(), Empty: true}, nil
		}
		return nil, err
	}

	return &Outcome{
		Proposed: a.sess.Proposed(),
		Dropped:  a.sess.Dropped(),
	}, nil
}

// Commit accepts the edits for the named file paths (all edits when paths
// is empty) and, with --write, persists the contents to disk. Selection is
// by path because edit ids are generated per run; a path the user can see
// in the proposal listing is the stable handle.
func (a *App) Commit(paths []string) ([]session.AppliedChange, []string, []string, error) {
	if a.sess == nil {
		return nil, nil, nil, fmt.Errorf("no processed session to commit")
	}
	ids, err := a.editIDsForPaths(paths)
	if err != nil {
		return nil, nil, nil, err
	}
	changes, err := a.sess.Accept(ids...)
	if err != nil {
		return nil, nil, nil, err
	}

	var written, failed []string
	if a.cfg.Write {
		written, failed = a.resolver.WriteChanges(changes)
	}
	return changes, written, failed, nil
}

// editIDsForPaths resolves file paths against the current proposals.
func (a *App) editIDsForPaths(paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	byPath := make(map[string]string)
	for _, e := range a.sess.Proposed() {
		byPath[e.FilePath] = e.ID
	}
	ids := make([]string, 0, len(paths))
	for _, p := range paths {
		id, ok := byPath[p]
		if !ok {
			return nil, fmt.Errorf("no proposed edit for %s", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Undo reverts the last committed transaction, mirroring it to disk with
// --write. It returns the restored contents plus the paths whose disk write
// failed; restored is nil when there is nothing to undo.
func (a *App) Undo() (restored map[string]string, written, failed []string) {
	if a.sess == nil {
		return nil, nil, nil
	}
	restored = a.sess.Undo()
	if restored != nil && a.cfg.Write {
		written, failed = a.resolver.WriteContents(restored)
	}
	return restored, written, failed
}

// Redo reapplies the last undone transaction.
func (a *App) Redo() (applied map[string]string, written, failed []string) {
	if a.sess == nil {
		return nil, nil, nil
	}
	applied = a.sess.Redo()
	if applied != nil && a.cfg.Write {
		written, failed = a.resolver.WriteContents(applied)
	}
	return applied, written, failed
}

// RunPlain executes the non-interactive path: process, commit, summarize.
func (a *App) RunPlain() (err error) {
	// Centralized panic recovery to provide stack traces for unexpected
	// errors.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	outcome, err := a.Process()
	if err != nil {
		return err
	}
	ui.PrintProposals(outcome.Proposed, outcome.Dropped)
	if outcome.Empty || len(outcome.Proposed) == 0 {
		return nil
	}

	changes, written, failed, err := a.Commit(a.cfg.Select)
	if err != nil {
		return err
	}
	ui.PrintCommitted(changes, written, failed)
	if !a.cfg.Write {
		ui.Warning("\nNothing was written to disk. Use -w/--write to persist.")
	}
	return nil
}
