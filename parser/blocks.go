package parser

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// fencedBlock is one fenced code block found in the buffer, together with
// the text of the paragraph immediately preceding it, which may name the
// target file. HintCode is the first inline code span of that paragraph;
// goldmark strips the backticks, so the span has to be captured separately.
type fencedBlock struct {
	Hint     string
	HintCode string
	Lang     string
	Body     string
}

// extractBlocks walks the markdown AST of the buffer and collects every
// fenced code block in document order. Markdown structure survives odd
// streaming output far better than line regexes do.
func extractBlocks(source []byte) []fencedBlock {
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	var blocks []fencedBlock
	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var b fencedBlock
		if fence.Info != nil {
			info := string(fence.Info.Text(source))
			// The info string may carry extra attributes after the language.
			if fields := strings.Fields(info); len(fields) > 0 {
				b.Lang = fields[0]
			}
		}

		var body bytes.Buffer
		lines := fence.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			body.Write(seg.Value(source))
		}
		b.Body = body.String()

		if prev := fence.PreviousSibling(); prev != nil {
			if p, ok := prev.(*ast.Paragraph); ok {
				b.Hint = strings.TrimSpace(string(p.Text(source)))
				for child := p.FirstChild(); child != nil; child = child.NextSibling() {
					if cs, ok := child.(*ast.CodeSpan); ok {
						b.HintCode = strings.TrimSpace(string(cs.Text(source)))
						break
					}
				}
			}
		}

		blocks = append(blocks, b)
		return ast.WalkSkipChildren, nil
	}

	// The walker never returns an error, so Walk cannot either.
	_ = ast.Walk(root, walker)

	return blocks
}
