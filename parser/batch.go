package parser

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Structured operations accepted inside an edit batch.
const (
	opReplace = "replace"
	opInsert  = "insert"
	opDelete  = "delete"
)

// batchOp is one structured line operation decoded from a JSON edit batch.
// Ranges are 1-indexed and inclusive.
type batchOp struct {
	File      string
	Operation string
	StartLine int
	EndLine   int
	Content   []string
}

// decodeBatch decodes the body of a structured block into its operations.
// gjson tolerates stray text around the document better than a strict
// unmarshal, which suits model output. ok is false when the body is not a
// usable batch at all.
func decodeBatch(body string) ([]batchOp, bool) {
	if !gjson.Valid(body) {
		return nil, false
	}
	edits := gjson.Get(body, "edits")
	if !edits.IsArray() {
		return nil, false
	}

	var ops []batchOp
	edits.ForEach(func(_, e gjson.Result) bool {
		op := batchOp{
			File:      e.Get("file").String(),
			Operation: e.Get("operation").String(),
			StartLine: int(e.Get("range.startLine").Int()),
			EndLine:   int(e.Get("range.endLine").Int()),
		}
		for _, c := range e.Get("content").Array() {
			op.Content = append(op.Content, c.String())
		}
		ops = append(ops, op)
		return true
	})
	return ops, true
}

// applyOp applies one operation to a file's working lines and returns the
// result. The input slice is not modified.
func applyOp(lines []string, op batchOp) ([]string, error) {
	switch op.Operation {
	case opReplace:
		if op.StartLine < 1 || op.EndLine < op.StartLine || op.EndLine > len(lines) {
			return nil, fmt.Errorf("%w: replace %d-%d in %d lines", ErrOutOfBounds, op.StartLine, op.EndLine, len(lines))
		}
		out := make([]string, 0, len(lines)-(op.EndLine-op.StartLine+1)+len(op.Content))
		out = append(out, lines[:op.StartLine-1]...)
		out = append(out, op.Content...)
		out = append(out, lines[op.EndLine:]...)
		return out, nil

	case opInsert:
		// Insert before StartLine; len(lines)+1 appends at the end.
		if op.StartLine < 1 || op.StartLine > len(lines)+1 {
			return nil, fmt.Errorf("%w: insert at %d in %d lines", ErrOutOfBounds, op.StartLine, len(lines))
		}
		out := make([]string, 0, len(lines)+len(op.Content))
		out = append(out, lines[:op.StartLine-1]...)
		out = append(out, op.Content...)
		out = append(out, lines[op.StartLine-1:]...)
		return out, nil

	case opDelete:
		if op.StartLine < 1 || op.EndLine < op.StartLine || op.EndLine > len(lines) {
			return nil, fmt.Errorf("%w: delete %d-%d in %d lines", ErrOutOfBounds, op.StartLine, op.EndLine, len(lines))
		}
		out := make([]string, 0, len(lines)-(op.EndLine-op.StartLine+1))
		out = append(out, lines[:op.StartLine-1]...)
		out = append(out, lines[op.EndLine:]...)
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrBadOperation, op.Operation)
	}
}
