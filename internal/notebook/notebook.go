// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package notebook reads Jupyter notebook documents (nbformat 4 JSON) into
// the typed cell sequence the renderers consume. It is a boundary adapter,
// not a full nbformat implementation: outputs, attachments, and older
// format versions are not handled.
package notebook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/pdiddy/notebook-converter/pkg/types"
)

// ErrParse marks every failure to turn a document into a Notebook. Callers
// test for it with errors.Is.
var ErrParse = errors.New("could not parse notebook")

// minNBFormat is the oldest notebook major version with a top-level
// "cells" array.
const minNBFormat = 4

// Notebook cell_type values.
const (
	cellTypeCode     = "code"
	cellTypeMarkdown = "markdown"
)

type rawNotebook struct {
	Cells         []rawCell   `json:"cells"`
	Metadata      rawMetadata `json:"metadata"`
	NBFormat      *int        `json:"nbformat"`
	NBFormatMinor int         `json:"nbformat_minor"`
}

type rawMetadata struct {
	KernelSpec struct {
		Language string `json:"language"`
	} `json:"kernelspec"`
	LanguageInfo struct {
		Name string `json:"name"`
	} `json:"language_info"`
}

type rawCell struct {
	CellType string          `json:"cell_type"`
	Source   json.RawMessage `json:"source"`
}

// Parse decodes a notebook document from r.
func Parse(r io.Reader) (types.Notebook, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return types.Notebook{}, fmt.Errorf("%w: reading input: %v", ErrParse, err)
	}
	return ParseBytes(data)
}

// ParseFile decodes the notebook at path. Errors do not name the path;
// callers converting several notebooks add it once themselves.
func ParseFile(path string) (types.Notebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		var pe *fs.PathError
		if errors.As(err, &pe) {
			err = pe.Err
		}
		return types.Notebook{}, fmt.Errorf("%w: reading file: %v", ErrParse, err)
	}
	return ParseBytes(data)
}

// ParseBytes decodes a notebook document held in memory.
func ParseBytes(data []byte) (types.Notebook, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return types.Notebook{}, fmt.Errorf("%w: empty document", ErrParse)
	}

	var raw rawNotebook
	if err := json.Unmarshal(data, &raw); err != nil {
		return types.Notebook{}, fmt.Errorf("%w: invalid JSON: %v", ErrParse, err)
	}

	if raw.NBFormat == nil {
		return types.Notebook{}, fmt.Errorf("%w: missing nbformat version", ErrParse)
	}
	if *raw.NBFormat < minNBFormat {
		return types.Notebook{}, fmt.Errorf("%w: unsupported nbformat %d (need %d or later)",
			ErrParse, *raw.NBFormat, minNBFormat)
	}
	if raw.Cells == nil {
		return types.Notebook{}, fmt.Errorf("%w: missing cells array", ErrParse)
	}

	cells := make(types.CellSequence, 0, len(raw.Cells))
	for i, rc := range raw.Cells {
		c, err := convertCell(rc)
		if err != nil {
			return types.Notebook{}, fmt.Errorf("%w: cell %d: %v", ErrParse, i, err)
		}
		cells = append(cells, c)
	}

	return types.Notebook{
		Cells:         cells,
		NBFormat:      *raw.NBFormat,
		NBFormatMinor: raw.NBFormatMinor,
		Language:      raw.Metadata.language(),
	}, nil
}

func (m rawMetadata) language() string {
	if m.LanguageInfo.Name != "" {
		return m.LanguageInfo.Name
	}
	return m.KernelSpec.Language
}

func convertCell(rc rawCell) (types.Cell, error) {
	if rc.CellType == "" {
		return types.Cell{}, errors.New("missing cell_type")
	}
	src, err := decodeSource(rc.Source)
	if err != nil {
		return types.Cell{}, err
	}
	return types.Cell{Kind: kindOf(rc.CellType), Source: src}, nil
}

// kindOf maps an nbformat cell_type to a CellKind. Unrecognized types are
// kept as their own kind so renderers skip them.
func kindOf(cellType string) types.CellKind {
	switch cellType {
	case cellTypeCode:
		return types.CellCode
	case cellTypeMarkdown:
		return types.CellProse
	default:
		return types.CellKind(cellType)
	}
}

// decodeSource accepts the two encodings nbformat allows for multiline
// strings: a single string, or a list of strings joined without separator.
// A missing source is an empty string.
func decodeSource(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}

	var parts []string
	if err := json.Unmarshal(raw, &parts); err != nil {
		return "", errors.New("source must be a string or a list of strings")
	}
	return strings.Join(parts, ""), nil
}
