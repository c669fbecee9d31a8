package session

import (
	"errors"
	"testing"

	"editflow/model"
)

const streamFixture = "main.py\n```python\nprint(2)\n```\n"

func fixtureSession() *Session {
	return New("update main", []model.FileSnapshot{
		{Path: "main.py", Content: "print(1)", Language: "python"},
	})
}

// driveTo moves a fresh session into the named state using only public
// operations.
func driveTo(t *testing.T, s *Session, target State) {
	t.Helper()
	step := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("driving to %s: %v", target, err)
		}
	}

	switch target {
	case StateIdle:
	case StateStreaming:
		step(s.Start())
	case StateProposed:
		step(s.Start())
		step(s.AppendStreamingText(streamFixture))
		step(s.CompleteStreaming())
	case StateTransactionReady:
		driveTo(t, s, StateProposed)
		step(s.PrepareTransaction())
	case StateCommitted:
		driveTo(t, s, StateTransactionReady)
		if _, err := s.CommitTransaction(); err != nil {
			t.Fatalf("driving to %s: %v", target, err)
		}
	case StateRolledBack:
		driveTo(t, s, StateProposed)
		step(s.RejectAll())
	case StateFailed:
		step(s.Start())
		step(s.AppendStreamingText("no edits here, just prose"))
		if err := s.CompleteStreaming(); !errors.Is(err, ErrParseFailure) {
			t.Fatalf("driving to %s: expected parse failure, got %v", target, err)
		}
	default:
		t.Fatalf("cannot drive to %s", target)
	}

	if s.State() != target {
		t.Fatalf("drive ended in %s, want %s", s.State(), target)
	}
}

func TestIllegalOperationsAreNoOps(t *testing.T) {
	ops := map[string]func(*Session) error{
		"Start":               func(s *Session) error { return s.Start() },
		"AppendStreamingText": func(s *Session) error { return s.AppendStreamingText("x") },
		"CompleteStreaming":   func(s *Session) error { return s.CompleteStreaming() },
		"PrepareTransaction":  func(s *Session) error { return s.PrepareTransaction() },
		"CommitTransaction": func(s *Session) error {
			_, err := s.CommitTransaction()
			return err
		},
		"RollbackTransaction": func(s *Session) error { return s.RollbackTransaction() },
		"RejectAll":           func(s *Session) error { return s.RejectAll() },
		"Reset":               func(s *Session) error { return s.Reset() },
	}

	legal := map[State]map[string]bool{
		StateIdle:             {"Start": true},
		StateStreaming:        {"AppendStreamingText": true, "CompleteStreaming": true, "Reset": true},
		StateProposed:         {"PrepareTransaction": true, "RejectAll": true},
		StateTransactionReady: {"CommitTransaction": true, "RollbackTransaction": true},
		StateCommitted:        {"Reset": true},
		StateRolledBack:       {"Reset": true},
		StateFailed:           {"Reset": true},
	}

	for state, allowed := range legal {
		for name, op := range ops {
			if allowed[name] {
				continue
			}
			t.Run(state.String()+"/"+name, func(t *testing.T) {
				s := fixtureSession()
				driveTo(t, s, state)
				before := s.Files()

				err := op(s)
				if !errors.Is(err, ErrInvalidTransition) {
					t.Errorf("expected ErrInvalidTransition, got %v", err)
				}
				if s.State() != state {
					t.Errorf("state changed to %s, want %s", s.State(), state)
				}
				after := s.Files()
				for path, fs := range before {
					if after[path] != fs {
						t.Errorf("snapshot for %s changed", path)
					}
				}
			})
		}
	}
}

func TestUndoRedoLegalEverywhere(t *testing.T) {
	for _, target := range []State{
		StateIdle, StateStreaming, StateProposed, StateTransactionReady,
		StateCommitted, StateRolledBack, StateFailed,
	} {
		t.Run(target.String(), func(t *testing.T) {
			s := fixtureSession()
			driveTo(t, s, target)
			before := s.State()
			// With an empty history both return nil without an error or a
			// transition, regardless of phase.
			if target != StateCommitted {
				if got := s.Undo(); got != nil {
					t.Errorf("Undo = %v, want nil", got)
				}
			}
			if got := s.Redo(); got != nil {
				t.Errorf("Redo = %v, want nil", got)
			}
			if s.State() != before {
				t.Errorf("state changed from %s to %s", before, s.State())
			}
		})
	}
}

func TestTransitionTableIsPure(t *testing.T) {
	for state, events := range transitions {
		for e, want := range events {
			got, ok := next(state, e)
			if !ok || got != want {
				t.Errorf("next(%s, %d) = %s,%v, want %s,true", state, e, got, ok, want)
			}
		}
	}
	if got, ok := next(StateIdle, eventCommit); ok || got != StateIdle {
		t.Errorf("next(idle, commit) = %s,%v, want idle,false", got, ok)
	}
}
