// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"

	"github.com/pdiddy/notebook-converter/pkg/types"
)

const (
	fenceOpen  = "```python\n"
	fenceClose = "\n```"
	// cellSeparator ends every rendered cell, leaving one blank line before
	// the next.
	cellSeparator = "\n\n"
)

// MarkdownRenderer renders code cells as fenced python blocks and prose
// cells verbatim.
type MarkdownRenderer struct {
	opts options
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer(opts ...Option) *MarkdownRenderer {
	return &MarkdownRenderer{opts: newOptions(opts)}
}

// Render concatenates the Markdown rendering of each cell in order. Source
// text is neither escaped nor trimmed.
func (r *MarkdownRenderer) Render(cells types.CellSequence) string {
	var b strings.Builder
	for i, c := range cells {
		switch c.Kind {
		case types.CellCode:
			b.WriteString(fenceOpen)
			b.WriteString(c.Source)
			b.WriteString(fenceClose)
			b.WriteString(cellSeparator)
		case types.CellProse:
			b.WriteString(c.Source)
			b.WriteString(cellSeparator)
		default:
			r.opts.skip(i, c)
		}
	}
	return b.String()
}

// Format returns types.FormatMarkdown.
func (r *MarkdownRenderer) Format() types.OutputFormat {
	return types.FormatMarkdown
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return types.FormatMarkdown.Suffix()
}
