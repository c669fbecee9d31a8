package session

// State is the current phase of a session. A session moves through states
// only via the transition table below; operations illegal for the current
// state are no-ops that report failure.
type State int

const (
	// StateIdle is the initial state, before streaming starts.
	StateIdle State = iota
	// StateStreaming accumulates raw text chunks.
	StateStreaming
	// StateParsing is the transient state while the buffer is scanned.
	StateParsing
	// StateProposed holds extracted edits awaiting review.
	StateProposed
	// StateTransactionReady holds a validated transaction awaiting commit.
	StateTransactionReady
	// StateCommitted means the last transaction was applied to the
	// session's snapshots and recorded in history.
	StateCommitted
	// StateRolledBack means the proposals or transaction were discarded.
	StateRolledBack
	// StateFailed means the completed stream yielded no usable edits.
	StateFailed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateStreaming:
		return "streaming"
	case StateParsing:
		return "parsing"
	case StateProposed:
		return "proposed"
	case StateTransactionReady:
		return "transactionReady"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolledBack"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// event is an internal state-machine input. Events map one-to-one onto the
// session operations that can change phase; undo/redo and introspection are
// deliberately absent since they never transition.
type event int

const (
	eventStart event = iota
	eventAppend
	eventComplete
	eventParseOK
	eventParseFailed
	eventPrepare
	eventCommit
	eventRollback
	eventReject
	eventReset
)

// transitions is the full legality table. Reset from streaming covers the
// mid-stream abort case; reset from failed keeps every error recoverable
// within the session.
var transitions = map[State]map[event]State{
	StateIdle: {
		eventStart: StateStreaming,
	},
	StateStreaming: {
		eventAppend:   StateStreaming,
		eventComplete: StateParsing,
		eventReset:    StateIdle,
	},
	StateParsing: {
		eventParseOK:     StateProposed,
		eventParseFailed: StateFailed,
	},
	StateProposed: {
		eventPrepare: StateTransactionReady,
		eventReject:  StateRolledBack,
	},
	StateTransactionReady: {
		eventCommit:   StateCommitted,
		eventRollback: StateRolledBack,
	},
	StateCommitted: {
		eventReset: StateIdle,
	},
	StateRolledBack: {
		eventReset: StateIdle,
	},
	StateFailed: {
		eventReset: StateIdle,
	},
}

// next is the pure transition function. ok reports whether the event is
// legal in the given state; when it is not, the returned state is unchanged.
func next(s State, e event) (State, bool) {
	to, ok := transitions[s][e]
	if !ok {
		return s, false
	}
	return to, true
}
