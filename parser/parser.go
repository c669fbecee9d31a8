// Package parser turns a completed stream of AI output into edit intents.
//
// Parsing is deferred: chunks are only buffered while streaming, and the
// buffer is scanned exactly once when the stream completes, so there is a
// single authoritative parse result per session. Two formats are understood,
// in priority order: structured JSON edit batches, and path-hinted fenced
// code blocks carrying whole-file replacements.
package parser

import (
	"slices"
	"strings"

	"editflow/diff"
	"editflow/model"
)

const langJSON = "json"

// Confidence attached to intents by format; a structured batch states its
// target lines explicitly, a whole-file block is inferred from a path hint.
const (
	ConfidenceStructured = 0.9
	ConfidenceFallback   = 0.6
)

// Parser accumulates raw streamed text.
type Parser struct {
	buf strings.Builder
}

// New returns an empty Parser.
func New() *Parser {
	return &Parser{}
}

// Append buffers one chunk. No parsing happens here.
func (p *Parser) Append(chunk string) {
	p.buf.WriteString(chunk)
}

// Len returns the buffered length in bytes.
func (p *Parser) Len() int { return p.buf.Len() }

// String returns the buffered content.
func (p *Parser) String() string { return p.buf.String() }

// Reset discards the buffer.
func (p *Parser) Reset() { p.buf.Reset() }

// Intent is one extracted edit: a full proposed content for a single file.
type Intent struct {
	Path            string
	ProposedContent string
	EditType        string
	Confidence      float64
	Operations      int
}

// Extract scans completed content against the session's file snapshots and
// returns the surviving intents plus a reason for every dropped edit.
// Structured batches win over whole-file blocks for the same path. At most
// one intent is returned per file.
func Extract(content string, files map[string]model.FileSnapshot) ([]Intent, []IntentError) {
	blocks := extractBlocks([]byte(content))

	type working struct {
		lines []string
		ops   int
	}
	patched := make(map[string]*working)
	var patchedOrder []string
	rewrites := make(map[string]string)
	var rewriteOrder []string
	var errs []IntentError

	applyBatch := func(ops []batchOp) {
		for _, op := range ops {
			snap, known := files[op.File]
			if !known {
				errs = append(errs, IntentError{Path: op.File, Reason: ErrUnknownFile})
				continue
			}
			w := patched[op.File]
			lines := diff.SplitLines(snap.Content)
			if w != nil {
				lines = w.lines
			}
			next, err := applyOp(lines, op)
			if err != nil {
				errs = append(errs, IntentError{Path: op.File, Reason: err})
				continue
			}
			if w == nil {
				patched[op.File] = &working{lines: next, ops: 1}
				patchedOrder = append(patchedOrder, op.File)
			} else {
				w.lines = next
				w.ops++
			}
		}
	}

	for _, b := range blocks {
		switch {
		case b.Lang == langJSON:
			ops, ok := decodeBatch(b.Body)
			if !ok {
				errs = append(errs, IntentError{Reason: ErrMalformedBatch})
				continue
			}
			applyBatch(ops)

		case b.Lang == "diff":
			// Unified diff input is not an edit format here; never treat
			// the body as whole-file content.

		default:
			if b.Lang == "" {
				if ops, ok := decodeBatch(b.Body); ok {
					applyBatch(ops)
					continue
				}
			}
			path := pathFromHint(b.Hint, b.HintCode)
			if path == "" {
				continue
			}
			if _, known := files[path]; !known {
				errs = append(errs, IntentError{Path: path, Reason: ErrUnknownFile})
				continue
			}
			rewrites[path] = strings.TrimSuffix(b.Body, "\n")
			if !slices.Contains(rewriteOrder, path) {
				rewriteOrder = append(rewriteOrder, path)
			}
		}
	}

	var intents []Intent
	taken := make(map[string]bool)
	for _, path := range patchedOrder {
		proposed := diff.JoinLines(patched[path].lines)
		if proposed == files[path].Content {
			errs = append(errs, IntentError{Path: path, Reason: ErrNoChange})
			continue
		}
		intents = append(intents, Intent{
			Path:            path,
			ProposedContent: proposed,
			EditType:        model.EditTypePatch,
			Confidence:      ConfidenceStructured,
			Operations:      patched[path].ops,
		})
		taken[path] = true
	}
	for _, path := range rewriteOrder {
		if taken[path] {
			continue
		}
		proposed := rewrites[path]
		if proposed == files[path].Content {
			errs = append(errs, IntentError{Path: path, Reason: ErrNoChange})
			continue
		}
		intents = append(intents, Intent{
			Path:            path,
			ProposedContent: proposed,
			EditType:        model.EditTypeRewrite,
			Confidence:      ConfidenceFallback,
		})
	}

	return intents, errs
}

// ScanPaths lists every file the buffer refers to, hinted or structured,
// without validating against any snapshot set. Callers use it to decide
// which files to capture before opening a session.
func ScanPaths(content string) []string {
	var paths []string
	seen := make(map[string]bool)
	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, b := range extractBlocks([]byte(content)) {
		if b.Lang == langJSON || b.Lang == "" {
			if ops, ok := decodeBatch(b.Body); ok {
				for _, op := range ops {
					add(op.File)
				}
				if b.Lang == langJSON {
					continue
				}
			}
		}
		if b.Lang != "diff" {
			add(pathFromHint(b.Hint, b.HintCode))
		}
	}
	return paths
}

// pathFromHint extracts a file path from the paragraph preceding a block.
// Accepted forms: a backtick-quoted path (surfaced as the paragraph's code
// span), or a paragraph that is a single bare path-like token. Anything else
// is not a marker.
func pathFromHint(hint, hintCode string) string {
	if hintCode != "" {
		// A quoted command like `go run main.go` is not a path.
		if strings.Contains(hintCode, " ") {
			return ""
		}
		return hintCode
	}

	hint = strings.TrimSuffix(strings.TrimSpace(hint), ":")
	if hint == "" || strings.ContainsAny(hint, " \t") {
		return ""
	}
	if strings.ContainsAny(hint, "/.") {
		return hint
	}
	return ""
}
