package diff

import (
	"errors"
	"fmt"
)

// ErrHunkMismatch is returned when a hunk does not line up with the content
// it is applied to.
var ErrHunkMismatch = errors.New("hunk does not match content")

// Apply replays the hunks of d against old and returns the resulting
// content. For any d = Compute(old, new), Apply(old, d) returns new.
func Apply(old string, d Diff) (string, error) {
	oldLines := SplitLines(old)
	out := make([]string, 0, len(oldLines)+d.AddedLines)

	cursor := 1 // next 1-based old line to consume
	for _, h := range d.Hunks {
		if h.OldStart < cursor {
			return "", fmt.Errorf("%w: hunk starts at line %d but line %d was already consumed", ErrHunkMismatch, h.OldStart, cursor)
		}

		// Copy untouched lines before the hunk.
		for ; cursor < h.OldStart; cursor++ {
			if cursor > len(oldLines) {
				return "", fmt.Errorf("%w: hunk starts past end of content", ErrHunkMismatch)
			}
			out = append(out, oldLines[cursor-1])
		}

		for _, ln := range h.Lines {
			switch ln.Kind {
			case Unchanged:
				if cursor > len(oldLines) || oldLines[cursor-1] != ln.Text {
					return "", fmt.Errorf("%w: context line %d differs", ErrHunkMismatch, cursor)
				}
				out = append(out, ln.Text)
				cursor++
			case Removed:
				if cursor > len(oldLines) || oldLines[cursor-1] != ln.Text {
					return "", fmt.Errorf("%w: removed line %d differs", ErrHunkMismatch, cursor)
				}
				cursor++
			case Added:
				out = append(out, ln.Text)
			}
		}
	}

	// Copy the untouched suffix.
	for ; cursor <= len(oldLines); cursor++ {
		out = append(out, oldLines[cursor-1])
	}
	return JoinLines(out), nil
}
