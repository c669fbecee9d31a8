// Package diff computes line-based diffs between two versions of a file.
//
// Compute is pure and deterministic: equal inputs always produce equal
// output, and no I/O is performed. The edit script comes from difflib's
// sequence matcher; contiguous changes are grouped into hunks padded with
// unchanged context lines, and hunks whose context windows overlap are
// merged.
package diff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// ContextLines is the number of unchanged lines kept around each change.
const ContextLines = 3

// LineKind classifies a single line within a hunk.
type LineKind uint8

const (
	// Unchanged lines appear in both versions.
	Unchanged LineKind = iota
	// Added lines appear only in the new version.
	Added
	// Removed lines appear only in the old version.
	Removed
)

// String returns a human-readable representation of the line kind.
func (k LineKind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Line is one line of a hunk. Line numbers are 1-based; OldNumber is zero
// for added lines and NewNumber is zero for removed lines.
type Line struct {
	Kind      LineKind
	Text      string
	OldNumber int
	NewNumber int
}

// Hunk is a contiguous changed region with surrounding context.
type Hunk struct {
	OldStart int
	OldCount int
	NewStart int
	NewCount int
	Lines    []Line
}

// Diff is the complete result of comparing two contents. The counters cover
// every line of both documents, inside or outside hunks.
type Diff struct {
	Hunks          []Hunk
	AddedLines     int
	RemovedLines   int
	UnchangedLines int
}

// HasChanges reports whether the two contents differ.
func (d Diff) HasChanges() bool {
	return d.AddedLines > 0 || d.RemovedLines > 0
}

// SplitLines splits content into logical lines. The empty string is a single
// empty line, so Split and Join round-trip exactly.
func SplitLines(content string) []string {
	return strings.Split(content, "\n")
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

// Compute diffs old against new and returns the structured result.
func Compute(oldContent, newContent string) Diff {
	oldLines := SplitLines(oldContent)
	newLines := SplitLines(newContent)

	ops := difflib.NewMatcher(oldLines, newLines).GetOpCodes()

	var (
		flat      []Line
		added     int
		removed   int
		unchanged int
	)
	for _, op := range ops {
		switch op.Tag {
		case 'e':
			for k := 0; k < op.I2-op.I1; k++ {
				flat = append(flat, Line{
					Kind:      Unchanged,
					Text:      oldLines[op.I1+k],
					OldNumber: op.I1 + k + 1,
					NewNumber: op.J1 + k + 1,
				})
				unchanged++
			}
		case 'd', 'r':
			for i := op.I1; i < op.I2; i++ {
				flat = append(flat, Line{
					Kind:      Removed,
					Text:      oldLines[i],
					OldNumber: i + 1,
				})
				removed++
			}
			if op.Tag == 'r' {
				for j := op.J1; j < op.J2; j++ {
					flat = append(flat, Line{
						Kind:      Added,
						Text:      newLines[j],
						NewNumber: j + 1,
					})
					added++
				}
			}
		case 'i':
			for j := op.J1; j < op.J2; j++ {
				flat = append(flat, Line{
					Kind:      Added,
					Text:      newLines[j],
					NewNumber: j + 1,
				})
				added++
			}
		}
	}

	return Diff{
		Hunks:          buildHunks(flat),
		AddedLines:     added,
		RemovedLines:   removed,
		UnchangedLines: unchanged,
	}
}

// buildHunks groups the flat line sequence into hunks. A hunk starts
// ContextLines before the first change of a run and ends ContextLines after
// the last; runs separated by at most 2*ContextLines unchanged lines share a
// hunk, since their context windows would overlap.
func buildHunks(flat []Line) []Hunk {
	var hunks []Hunk
	n := len(flat)
	i := 0
	for i < n {
		if flat[i].Kind == Unchanged {
			i++
			continue
		}

		start := i - ContextLines
		if start < 0 {
			start = 0
		}

		// Extend over subsequent change runs that are close enough.
		last := i
		j := i + 1
		for j < n {
			if flat[j].Kind != Unchanged {
				last = j
			} else if j-last > 2*ContextLines {
				break
			}
			j++
		}

		stop := last + ContextLines
		if stop > n-1 {
			stop = n - 1
		}

		hunks = append(hunks, makeHunk(flat[start:stop+1], flat, start))
		i = stop + 1
	}
	return hunks
}

// makeHunk assembles a hunk from a window of the flat line sequence. origin
// is the window's offset into flat, used to anchor pure insertions that have
// no old-side lines of their own.
func makeHunk(window []Line, flat []Line, origin int) Hunk {
	h := Hunk{Lines: make([]Line, len(window))}
	copy(h.Lines, window)

	for _, ln := range window {
		if ln.OldNumber > 0 {
			if h.OldStart == 0 {
				h.OldStart = ln.OldNumber
			}
			h.OldCount++
		}
		if ln.NewNumber > 0 {
			if h.NewStart == 0 {
				h.NewStart = ln.NewNumber
			}
			h.NewCount++
		}
	}

	if h.OldStart == 0 {
		h.OldStart = nextOldNumber(flat, origin)
	}
	if h.NewStart == 0 {
		h.NewStart = nextNewNumber(flat, origin)
	}
	return h
}

// nextOldNumber returns the old-side line number at which a window starting
// at origin is anchored: one past the last old line before it, or 1 at the
// start of the document.
func nextOldNumber(flat []Line, origin int) int {
	for i := origin - 1; i >= 0; i-- {
		if flat[i].OldNumber > 0 {
			return flat[i].OldNumber + 1
		}
	}
	return 1
}

func nextNewNumber(flat []Line, origin int) int {
	for i := origin - 1; i >= 0; i-- {
		if flat[i].NewNumber > 0 {
			return flat[i].NewNumber + 1
		}
	}
	return 1
}
