// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidStatus is returned when a status filter names no known
// conversion outcome.
var ErrInvalidStatus = errors.New("invalid conversion status")

// ConversionStatus indicates the outcome of converting one notebook.
type ConversionStatus string

const (
	ConversionDone    ConversionStatus = "converted"
	ConversionSkipped ConversionStatus = "skipped"
	ConversionFailed  ConversionStatus = "failed"
)

// ParseConversionStatus maps a user-supplied status, case-insensitively,
// to a ConversionStatus.
func ParseConversionStatus(s string) (ConversionStatus, error) {
	switch st := ConversionStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case ConversionDone, ConversionSkipped, ConversionFailed:
		return st, nil
	default:
		return "", fmt.Errorf("%w %q: use converted, skipped or failed", ErrInvalidStatus, s)
	}
}

// ConversionRecord describes a single notebook conversion attempt.
type ConversionRecord struct {
	// NotebookPath is the path of the source notebook.
	NotebookPath string `json:"notebook_path" yaml:"notebook_path"`

	// OutputPath is where the converted text was written. Empty for
	// previews and failed conversions.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	// Format is the requested output format.
	Format OutputFormat `json:"format" yaml:"format"`

	// Status is the conversion outcome.
	Status ConversionStatus `json:"status" yaml:"status"`

	// CodeCells and ProseCells count the rendered cells by kind.
	CodeCells  int `json:"code_cells" yaml:"code_cells"`
	ProseCells int `json:"prose_cells" yaml:"prose_cells"`

	// SkippedCells counts cells of unrecognized kinds that produced no output.
	SkippedCells int `json:"skipped_cells" yaml:"skipped_cells"`

	// Bytes is the size of the converted text.
	Bytes int `json:"bytes" yaml:"bytes"`

	// Error holds the failure message when Status is ConversionFailed.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// ConvertedAt is when the attempt finished.
	ConvertedAt time.Time `json:"converted_at" yaml:"converted_at"`
}
