package diff

import (
	"strconv"
	"strings"
)

// Unified renders d in unified diff format. It returns the empty string when
// there are no changes.
func Unified(d Diff, oldName, newName string) string {
	if !d.HasChanges() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("--- ")
	sb.WriteString(oldName)
	sb.WriteString("\n+++ ")
	sb.WriteString(newName)
	sb.WriteString("\n")

	for _, h := range d.Hunks {
		sb.WriteString("@@ -")
		sb.WriteString(strconv.Itoa(h.OldStart))
		sb.WriteString(",")
		sb.WriteString(strconv.Itoa(h.OldCount))
		sb.WriteString(" +")
		sb.WriteString(strconv.Itoa(h.NewStart))
		sb.WriteString(",")
		sb.WriteString(strconv.Itoa(h.NewCount))
		sb.WriteString(" @@\n")

		for _, ln := range h.Lines {
			switch ln.Kind {
			case Added:
				sb.WriteString("+")
			case Removed:
				sb.WriteString("-")
			default:
				sb.WriteString(" ")
			}
			sb.WriteString(ln.Text)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
