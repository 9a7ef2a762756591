// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns a notebook's cell sequence into a single flat text
// document. Two renderers are provided: Markdown (code cells fenced, prose
// inline) and Python script (code inline, prose as line comments).
//
// Renderers are pure: they hold only immutable options, never mutate their
// input, and are safe for concurrent use.
package render

import (
	"fmt"

	"github.com/pdiddy/notebook-converter/pkg/types"
)

// Renderer converts a cell sequence into one output format.
type Renderer interface {
	// Render returns the converted document. Cells of unrecognized kinds
	// produce no output.
	Render(cells types.CellSequence) string

	// Format returns the output format this renderer produces.
	Format() types.OutputFormat

	// Extension returns the file suffix for the output, without a dot.
	Extension() string
}

// UnknownKindHandler is called for each cell skipped because its kind is
// neither code nor prose. index is the cell's position in the sequence.
type UnknownKindHandler func(index int, cell types.Cell)

// Option configures a renderer.
type Option func(*options)

type options struct {
	onUnknown UnknownKindHandler
}

// WithUnknownKindHandler installs a callback for skipped cells. The
// callback must not retain or mutate shared state if the renderer is used
// concurrently.
func WithUnknownKindHandler(h UnknownKindHandler) Option {
	return func(o *options) {
		o.onUnknown = h
	}
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) skip(index int, cell types.Cell) {
	if o.onUnknown != nil {
		o.onUnknown(index, cell)
	}
}

// New returns the renderer for format. It returns types.ErrInvalidFormat
// for any selector other than Markdown or Python; there is no default.
func New(format types.OutputFormat, opts ...Option) (Renderer, error) {
	switch format {
	case types.FormatMarkdown:
		return NewMarkdownRenderer(opts...), nil
	case types.FormatPython:
		return NewScriptRenderer(opts...), nil
	default:
		return nil, fmt.Errorf("%w %q", types.ErrInvalidFormat, format)
	}
}

// Dispatch renders cells with the renderer selected by format and returns
// the text together with the format's suffix.
func Dispatch(cells types.CellSequence, format types.OutputFormat, opts ...Option) (types.RenderedOutput, error) {
	r, err := New(format, opts...)
	if err != nil {
		return types.RenderedOutput{}, err
	}
	return types.RenderedOutput{
		Text:   r.Render(cells),
		Suffix: r.Extension(),
	}, nil
}
