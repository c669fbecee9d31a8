// Package ui prints colored status output to stderr, keeping stdout free
// for pipeable data.
package ui

import (
	"os"

	"github.com/fatih/color"

	"editflow/model"
	"editflow/parser"
	"editflow/session"
)

var (
	HeaderColor  = color.New(color.FgBlue, color.Bold)
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	WarningColor = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
	PathColor    = color.New(color.FgYellow)
)

func Header(format string, a ...interface{}) {
	HeaderColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Info(format string, a ...interface{}) {
	InfoColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Success(format string, a ...interface{}) {
	SuccessColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Warning(format string, a ...interface{}) {
	WarningColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Error(format string, a ...interface{}) {
	ErrorColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Path(format string, a ...interface{}) {
	PathColor.Fprintf(os.Stderr, "  "+format+"\n", a...)
}

// PrintProposals lists the extracted edits with their diff stats, and the
// reason for every dropped edit.
func PrintProposals(edits []model.ProposedEdit, dropped []parser.IntentError) {
	Header("--- Proposed edits ---")
	if len(edits) == 0 {
		Warning("No edits were extracted.")
	}
	for _, e := range edits {
		Path("%s  +%d -%d  (%s)",
			e.FilePath, e.Diff.AddedLines, e.Diff.RemovedLines, e.Metadata.EditType)
	}
	for _, d := range dropped {
		Warning("  dropped: %v", d)
	}
}

// PrintCommitted reports the outcome of a commit.
func PrintCommitted(changes []session.AppliedChange, written, failed []string) {
	if len(changes) == 0 {
		return
	}
	Header("--- Committed ---")
	for _, c := range changes {
		Success("  %s", c.FilePath)
	}
	for _, p := range written {
		Info("  wrote %s", p)
	}
	for _, p := range failed {
		Error("  failed to write %s", p)
	}
}
