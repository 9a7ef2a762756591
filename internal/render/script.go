// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"strings"
	"unicode"

	"github.com/pdiddy/notebook-converter/pkg/types"
)

const (
	// lineSeparator is the only line break recognized inside cell sources,
	// independent of the host platform.
	lineSeparator = "\n"
	commentPrefix = "# "
	bareComment   = "#"
)

// ScriptRenderer renders code cells verbatim and prose cells as Python
// line comments.
type ScriptRenderer struct {
	opts options
}

// NewScriptRenderer creates a ScriptRenderer.
func NewScriptRenderer(opts ...Option) *ScriptRenderer {
	return &ScriptRenderer{opts: newOptions(opts)}
}

// Render concatenates the script rendering of each cell in order.
func (r *ScriptRenderer) Render(cells types.CellSequence) string {
	var b strings.Builder
	for i, c := range cells {
		switch c.Kind {
		case types.CellCode:
			b.WriteString(c.Source)
			b.WriteString(cellSeparator)
		case types.CellProse:
			b.WriteString(CommentLines(c.Source))
			b.WriteString(cellSeparator)
		default:
			r.opts.skip(i, c)
		}
	}
	return b.String()
}

// Format returns types.FormatPython.
func (r *ScriptRenderer) Format() types.OutputFormat {
	return types.FormatPython
}

// Extension returns the file extension for Python output.
func (r *ScriptRenderer) Extension() string {
	return types.FormatPython.Suffix()
}

// CommentLines turns prose into Python comments. Each line holding any
// non-whitespace character becomes "# " followed by the line; blank and
// whitespace-only lines become a bare "#". An empty source is one empty
// line and yields "#".
func CommentLines(source string) string {
	lines := strings.Split(source, lineSeparator)
	for i, line := range lines {
		if isBlank(line) {
			lines[i] = bareComment
		} else {
			lines[i] = commentPrefix + line
		}
	}
	return strings.Join(lines, lineSeparator)
}

// isBlank reports whether line holds only white space. The ASCII
// information separators U+001C..U+001F count as white space, as they do
// for Python's str.strip.
func isBlank(line string) bool {
	return strings.IndexFunc(line, func(r rune) bool {
		return !unicode.IsSpace(r) && (r < 0x1c || r > 0x1f)
	}) < 0
}
