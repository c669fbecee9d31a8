package tui

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"editflow/internal/app"
	"editflow/parser"
	"editflow/session"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// --- Styles ---
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")) // Mauve
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))  // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197")) // Red
	addStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	delStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))
	pathStyle    = lipgloss.NewStyle()
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// --- Messages ---
type outcomeMsg struct {
	*app.Outcome
}

type committedMsg struct {
	changes []session.AppliedChange
	written []string
	failed  []string
}

type revertedMsg struct {
	restored map[string]string
	failed   []string
	redo     bool
}

type errorMsg struct{ err error }

func (e errorMsg) Error() string { return e.err.Error() }

// --- Model ---
type Model struct {
	app       *app.App
	spinner   spinner.Model
	state     state
	outcome   outcomeMsg
	committed committedMsg
	reverted  revertedMsg
	err       error
}

type state int

const (
	stateProcessing state = iota
	stateReview
	stateDone
	stateError
)

func New(app *app.App) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return Model{
		app:     app,
		spinner: s,
		state:   stateProcessing,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runApp)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if m.state == stateReview {
				return m, m.commit
			}
		case "u":
			if m.state == stateDone {
				return m, m.undo
			}
		case "r":
			if m.state == stateDone {
				return m, m.redo
			}
		}

	case outcomeMsg:
		m.outcome = msg
		if msg.Empty || len(msg.Proposed) == 0 {
			m.state = stateDone
			return m, nil
		}
		m.state = stateReview
		return m, nil

	case committedMsg:
		m.state = stateDone
		m.committed = msg
		m.reverted = revertedMsg{}
		return m, nil

	case revertedMsg:
		m.reverted = msg
		return m, nil

	case errorMsg:
		m.state = stateError
		m.err = msg
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		if m.state == stateProcessing {
			m.spinner, cmd = m.spinner.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	switch m.state {
	case stateProcessing:
		return fmt.Sprintf("%s Processing...", m.spinner.View())
	case stateError:
		return errorStyle.Render("Error: ", m.err.Error())
	case stateReview:
		return m.renderReview()
	case stateDone:
		return m.renderDone()
	default:
		return ""
	}
}

func (m *Model) renderReview() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("Proposed edits:"))
	b.WriteString("\n")
	for _, edit := range m.outcome.Proposed {
		b.WriteString(fmt.Sprintf("  %s %s %s\n",
			pathStyle.Render(edit.FilePath),
			addStyle.Render(fmt.Sprintf("+%d", edit.Diff.AddedLines)),
			delStyle.Render(fmt.Sprintf("-%d", edit.Diff.RemovedLines)),
		))
	}
	b.WriteString(m.renderDropped(m.outcome.Dropped))
	b.WriteString(faintStyle.Render("\nenter: apply all  q: quit"))
	return b.String()
}

func (m *Model) renderDone() string {
	var b strings.Builder

	if m.reverted.restored != nil {
		if m.reverted.redo {
			b.WriteString(headerStyle.Render("Reapplied:"))
		} else {
			b.WriteString(headerStyle.Render("Reverted:"))
		}
		b.WriteString("\n")
		paths := make([]string, 0, len(m.reverted.restored))
		for path := range m.reverted.restored {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		for _, path := range paths {
			b.WriteString(fmt.Sprintf("  %s\n", pathStyle.Render(path)))
		}
		if len(m.reverted.failed) > 0 {
			b.WriteString(errorStyle.Render("Failed to write:"))
			b.WriteString("\n")
			for _, path := range m.reverted.failed {
				b.WriteString(fmt.Sprintf("  %s\n", pathStyle.Render(path)))
			}
		}
		b.WriteString(faintStyle.Render("\nu: undo  r: redo  q: quit"))
		return b.String()
	}

	if len(m.committed.changes) > 0 {
		b.WriteString(successStyle.Render("Applied:"))
		b.WriteString("\n")
		for _, change := range m.committed.changes {
			b.WriteString(fmt.Sprintf("  %s\n", pathStyle.Render(change.FilePath)))
		}
		if len(m.committed.written) > 0 {
			b.WriteString(successStyle.Render("Written:"))
			b.WriteString("\n")
			for _, path := range m.committed.written {
				b.WriteString(fmt.Sprintf("  %s\n", pathStyle.Render(path)))
			}
		}
		if len(m.committed.failed) > 0 {
			b.WriteString(errorStyle.Render("Failed to write:"))
			b.WriteString("\n")
			for _, path := range m.committed.failed {
				b.WriteString(fmt.Sprintf("  %s\n", pathStyle.Render(path)))
			}
		}
		b.WriteString(faintStyle.Render("\nu: undo  q: quit"))
		return b.String()
	}

	b.WriteString(m.renderDropped(m.outcome.Dropped))
	b.WriteString(faintStyle.Render("Nothing to do."))
	return b.String()
}

func (m *Model) renderDropped(dropped []parser.IntentError) string {
	if len(dropped) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(errorStyle.Render("Dropped:"))
	b.WriteString("\n")
	for _, d := range dropped {
		b.WriteString(fmt.Sprintf("  %s: %s\n", pathStyle.Render(d.Path), d.Reason))
	}
	return b.String()
}

func (m *Model) runApp() tea.Msg {
	outcome, err := m.app.Process()
	if err != nil {
		// Check for detailed error to print stack
		if e, ok := err.(*app.DetailedError); ok {
			// The TUI will exit, so we can print to stderr here for the stack trace.
			fmt.Fprintf(os.Stderr, "\n--- Stack Trace ---\n%s\n", e.Stack)
		}
		return errorMsg{err}
	}
	return outcomeMsg{Outcome: outcome}
}

func (m *Model) commit() tea.Msg {
	changes, written, failed, err := m.app.Commit(nil)
	if err != nil {
		return errorMsg{err}
	}
	return committedMsg{changes: changes, written: written, failed: failed}
}

func (m *Model) undo() tea.Msg {
	restored, _, failed := m.app.Undo()
	if restored == nil {
		return nil
	}
	return revertedMsg{restored: restored, failed: failed}
}

func (m *Model) redo() tea.Msg {
	applied, _, failed := m.app.Redo()
	if applied == nil {
		return nil
	}
	return revertedMsg{restored: applied, failed: failed, redo: true}
}
