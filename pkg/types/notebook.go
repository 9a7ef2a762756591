// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CellKind tags a notebook cell as executable code or prose. Values other
// than CellCode and CellProse can appear when a notebook carries cell types
// the converter does not render (for example "raw"); they are kept verbatim
// so renderers can skip them explicitly.
type CellKind string

const (
	CellCode  CellKind = "code"
	CellProse CellKind = "prose"
)

// Cell is one unit of a notebook. Source uses "\n" as its line separator
// and is never normalized: it may be empty and may or may not end in a
// newline.
type Cell struct {
	Kind   CellKind `json:"kind" yaml:"kind"`
	Source string   `json:"source" yaml:"source"`
}

// CellSequence is the ordered list of cells of a notebook. Order is
// significant and is preserved by every renderer.
type CellSequence []Cell

// CountByKind returns the number of cells for each kind in the sequence.
func (s CellSequence) CountByKind() map[CellKind]int {
	counts := make(map[CellKind]int)
	for _, c := range s {
		counts[c.Kind]++
	}
	return counts
}

// Notebook is a parsed notebook document.
type Notebook struct {
	// Cells holds the notebook cells in document order.
	Cells CellSequence `json:"cells" yaml:"cells"`

	// NBFormat and NBFormatMinor record the notebook format version.
	NBFormat      int `json:"nbformat" yaml:"nbformat"`
	NBFormatMinor int `json:"nbformat_minor" yaml:"nbformat_minor"`

	// Language is the kernel language declared in the notebook metadata,
	// empty when the notebook does not declare one.
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
}
