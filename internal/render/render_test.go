// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/notebook-converter/pkg/types"
)

func code(src string) types.Cell  { return types.Cell{Kind: types.CellCode, Source: src} }
func prose(src string) types.Cell { return types.Cell{Kind: types.CellProse, Source: src} }
func raw(src string) types.Cell   { return types.Cell{Kind: types.CellKind("raw"), Source: src} }

func TestMarkdownRenderer(t *testing.T) {
	tests := []struct {
		name  string
		cells types.CellSequence
		want  string
	}{
		{
			name:  "empty sequence",
			cells: nil,
			want:  "",
		},
		{
			name:  "single code cell is fenced",
			cells: types.CellSequence{code("print('hi')")},
			want:  "```python\nprint('hi')\n```\n\n",
		},
		{
			name:  "single prose cell passes through",
			cells: types.CellSequence{prose("# Title\n\nSome *text*.")},
			want:  "# Title\n\nSome *text*.\n\n",
		},
		{
			name:  "empty code cell is still fenced",
			cells: types.CellSequence{code("")},
			want:  "```python\n\n```\n\n",
		},
		{
			name:  "empty prose cell keeps separator",
			cells: types.CellSequence{prose("")},
			want:  "\n\n",
		},
		{
			name:  "trailing newline in source is kept",
			cells: types.CellSequence{code("x = 1\n")},
			want:  "```python\nx = 1\n\n```\n\n",
		},
		{
			name:  "prose is not escaped",
			cells: types.CellSequence{prose("```bash\nls\n```")},
			want:  "```bash\nls\n```\n\n",
		},
		{
			name:  "cells render in document order",
			cells: types.CellSequence{prose("intro"), code("a = 1"), prose("outro"), code("b = 2")},
			want: "intro\n\n" +
				"```python\na = 1\n```\n\n" +
				"outro\n\n" +
				"```python\nb = 2\n```\n\n",
		},
		{
			name:  "unknown kinds are skipped",
			cells: types.CellSequence{code("a = 1"), raw("%%raw"), prose("done")},
			want:  "```python\na = 1\n```\n\ndone\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewMarkdownRenderer().Render(tt.cells)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScriptRenderer(t *testing.T) {
	tests := []struct {
		name  string
		cells types.CellSequence
		want  string
	}{
		{
			name:  "empty sequence",
			cells: types.CellSequence{},
			want:  "",
		},
		{
			name:  "code passes through",
			cells: types.CellSequence{code("import os\nprint(os.getcwd())")},
			want:  "import os\nprint(os.getcwd())\n\n",
		},
		{
			name:  "prose becomes comments with bare hash for blank lines",
			cells: types.CellSequence{prose("line one\n\nline two")},
			want:  "# line one\n#\n# line two\n\n",
		},
		{
			name:  "empty prose yields a lone hash",
			cells: types.CellSequence{prose("")},
			want:  "#\n\n",
		},
		{
			name:  "whitespace-only prose line becomes bare hash",
			cells: types.CellSequence{prose("a\n   \t\nb")},
			want:  "# a\n#\n# b\n\n",
		},
		{
			name:  "leading indentation is kept after the prefix",
			cells: types.CellSequence{prose("  - item")},
			want:  "#   - item\n\n",
		},
		{
			name:  "trailing newline in prose adds a bare hash line",
			cells: types.CellSequence{prose("title\n")},
			want:  "# title\n#\n\n",
		},
		{
			name:  "empty code cell keeps separator",
			cells: types.CellSequence{code("")},
			want:  "\n\n",
		},
		{
			name:  "mixed cells keep order",
			cells: types.CellSequence{prose("Setup"), code("x = 1"), prose("Result"), code("print(x)")},
			want:  "# Setup\n\nx = 1\n\n# Result\n\nprint(x)\n\n",
		},
		{
			name:  "unknown kinds are skipped",
			cells: types.CellSequence{raw("ignored"), code("x = 1")},
			want:  "x = 1\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewScriptRenderer().Render(tt.cells)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommentLines(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "#"},
		{"one", "# one"},
		{"one\ntwo", "# one\n# two"},
		{"\n", "#\n#"},
		{"a\r\nb", "# a\r\n# b"},
		{" \t\r\v\f", "#"},
		{"\u00a0\u2003", "#"},
		{"\x1f", "#"},
		{"\x1c\x1d\x1e", "#"},
		{"a\x1e", "# a\x1e"},
		{"x\n\x1f\ny", "# x\n#\n# y"},
		{"\x1b", "# \x1b"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CommentLines(tt.in), "CommentLines(%q)", tt.in)
	}
}

func TestUnknownKindMatchesCodeAlone(t *testing.T) {
	alone := types.CellSequence{code("print(1)")}
	mixed := types.CellSequence{code("print(1)"), raw("something")}

	for _, r := range []Renderer{NewMarkdownRenderer(), NewScriptRenderer()} {
		t.Run(string(r.Format()), func(t *testing.T) {
			assert.Equal(t, r.Render(alone), r.Render(mixed))
		})
	}
}

func TestUnknownKindHandler(t *testing.T) {
	var seen []int
	handler := WithUnknownKindHandler(func(index int, cell types.Cell) {
		seen = append(seen, index)
		assert.Equal(t, types.CellKind("raw"), cell.Kind)
	})

	cells := types.CellSequence{raw("a"), code("x"), raw("b"), prose("p")}

	NewMarkdownRenderer(handler).Render(cells)
	assert.Equal(t, []int{0, 2}, seen)

	seen = nil
	NewScriptRenderer(handler).Render(cells)
	assert.Equal(t, []int{0, 2}, seen)
}

func TestRenderIsRepeatable(t *testing.T) {
	cells := types.CellSequence{prose("Notes\n\nmore"), code("y = 2"), raw("r")}
	snapshot := append(types.CellSequence(nil), cells...)

	for _, r := range []Renderer{NewMarkdownRenderer(), NewScriptRenderer()} {
		first := r.Render(cells)
		second := r.Render(cells)
		assert.Equal(t, first, second, "%s renderer", r.Format())
	}
	assert.Equal(t, snapshot, cells, "input must not be mutated")
}

func TestRenderConcurrent(t *testing.T) {
	cells := types.CellSequence{prose("a\nb"), code("c")}
	r := NewScriptRenderer()
	want := r.Render(cells)

	var wg sync.WaitGroup
	results := make([]string, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.Render(cells)
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestDispatch(t *testing.T) {
	cells := types.CellSequence{prose("Hello"), code("x = 1")}

	t.Run("markdown", func(t *testing.T) {
		out, err := Dispatch(cells, types.FormatMarkdown)
		require.NoError(t, err)
		assert.Equal(t, "md", out.Suffix)
		assert.Equal(t, "Hello\n\n```python\nx = 1\n```\n\n", out.Text)
	})

	t.Run("python", func(t *testing.T) {
		out, err := Dispatch(cells, types.FormatPython)
		require.NoError(t, err)
		assert.Equal(t, "py", out.Suffix)
		assert.Equal(t, "# Hello\n\nx = 1\n\n", out.Text)
	})

	t.Run("invalid selector is rejected", func(t *testing.T) {
		for _, f := range []types.OutputFormat{"", "html", "Markdown"} {
			out, err := Dispatch(cells, f)
			require.Error(t, err, "format %q", f)
			assert.True(t, errors.Is(err, types.ErrInvalidFormat))
			assert.Equal(t, types.RenderedOutput{}, out)
		}
	})

	t.Run("options reach the renderer", func(t *testing.T) {
		calls := 0
		_, err := Dispatch(types.CellSequence{raw("x")}, types.FormatPython,
			WithUnknownKindHandler(func(int, types.Cell) { calls++ }))
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestNew(t *testing.T) {
	r, err := New(types.FormatMarkdown)
	require.NoError(t, err)
	assert.IsType(t, &MarkdownRenderer{}, r)
	assert.Equal(t, "md", r.Extension())

	r, err = New(types.FormatPython)
	require.NoError(t, err)
	assert.IsType(t, &ScriptRenderer{}, r)
	assert.Equal(t, "py", r.Extension())

	_, err = New("latex")
	assert.ErrorIs(t, err, types.ErrInvalidFormat)
}
