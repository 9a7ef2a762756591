// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidFormat is returned when an output format selector is neither
// Markdown nor Python.
var ErrInvalidFormat = errors.New("invalid output format")

// OutputFormat selects the text representation a notebook is rendered to.
type OutputFormat string

const (
	FormatMarkdown OutputFormat = "markdown"
	FormatPython   OutputFormat = "python"
)

// Suffix returns the file extension (without the dot) for the format, or
// an empty string for an unrecognized format.
func (f OutputFormat) Suffix() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatPython:
		return "py"
	default:
		return ""
	}
}

// Valid reports whether f is one of the supported formats.
func (f OutputFormat) Valid() bool {
	return f == FormatMarkdown || f == FormatPython
}

// ParseOutputFormat maps a user-supplied selector to an OutputFormat. It
// accepts the format names and their suffixes, case-insensitively.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "python", "py":
		return FormatPython, nil
	default:
		return "", fmt.Errorf("%w %q: use markdown or python", ErrInvalidFormat, s)
	}
}

// RenderedOutput is the result of one conversion: the full converted
// document and the file suffix for its format.
type RenderedOutput struct {
	Text   string `json:"text" yaml:"text"`
	Suffix string `json:"suffix" yaml:"suffix"`
}
