// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/notebook-converter/internal/notebook"
	"github.com/pdiddy/notebook-converter/internal/render"
	"github.com/pdiddy/notebook-converter/pkg/types"
)

// NotebookConverter parses .ipynb files and renders them in one output
// format.
type NotebookConverter struct {
	format      types.OutputFormat
	warnUnknown bool
	log         logrus.FieldLogger
}

// NewNotebookConverter creates a converter for cfg.Format. It returns
// types.ErrInvalidFormat when the format is not Markdown or Python.
func NewNotebookConverter(cfg types.ConversionConfig, log logrus.FieldLogger) (*NotebookConverter, error) {
	if !cfg.Format.Valid() {
		return nil, fmt.Errorf("%w %q", types.ErrInvalidFormat, cfg.Format)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &NotebookConverter{
		format:      cfg.Format,
		warnUnknown: cfg.WarnUnknownKinds,
		log:         log,
	}, nil
}

// Format returns the converter's output format.
func (n *NotebookConverter) Format() types.OutputFormat {
	return n.format
}

// Convert parses the notebook at path and renders it. Parse failures wrap
// notebook.ErrParse and produce no output.
func (n *NotebookConverter) Convert(path string) (Conversion, error) {
	nb, err := notebook.ParseFile(path)
	if err != nil {
		return Conversion{}, err
	}
	n.log.WithFields(logrus.Fields{
		"notebook": path,
		"cells":    len(nb.Cells),
		"nbformat": fmt.Sprintf("%d.%d", nb.NBFormat, nb.NBFormatMinor),
	}).Debug("parsed notebook")

	var skipped int
	onUnknown := func(index int, cell types.Cell) {
		skipped++
		if n.warnUnknown {
			n.log.WithFields(logrus.Fields{
				"notebook": path,
				"cell":     index,
				"kind":     cell.Kind,
			}).Warn("skipping cell of unrecognized kind")
		}
	}

	out, err := render.Dispatch(nb.Cells, n.format, render.WithUnknownKindHandler(onUnknown))
	if err != nil {
		return Conversion{}, err
	}

	counts := nb.Cells.CountByKind()
	return Conversion{
		Output:       out,
		CodeCells:    counts[types.CellCode],
		ProseCells:   counts[types.CellProse],
		SkippedCells: skipped,
	}, nil
}
