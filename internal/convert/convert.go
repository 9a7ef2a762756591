// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs notebooks through parsing and rendering and writes
// the converted files, one notebook at a time or in batches.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/pdiddy/notebook-converter/pkg/types"
)

const (
	notebookExt    = ".ipynb"
	checkpointsDir = ".ipynb_checkpoints"
)

// Converter turns the notebook at a path into converted text. The
// production implementation is NotebookConverter; tests substitute fakes.
type Converter interface {
	// Format returns the output format the converter produces.
	Format() types.OutputFormat

	// Convert reads the notebook at path and returns the converted text and
	// cell counts.
	Convert(path string) (Conversion, error)
}

// Conversion is the output of a single Converter call.
type Conversion struct {
	Output       types.RenderedOutput
	CodeCells    int
	ProseCells   int
	SkippedCells int
}

// Recorder persists conversion records. history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, rec types.ConversionRecord) error
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
	Records   []types.ConversionRecord

	errs *multierror.Error
}

// Total returns the total number of notebooks processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any notebook failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Err returns the failures of the run combined into one error, or nil.
func (r BatchResult) Err() error {
	return r.errs.ErrorOrNil()
}

// Input is one notebook selected for conversion. Rel is the notebook's
// path relative to the argument it was found under; the output keeps the
// same relative layout below the output directory.
type Input struct {
	Path string
	Rel  string
}

// InputsFromPaths wraps plain notebook paths as Inputs whose outputs are
// written flat, under the notebook's base name.
func InputsFromPaths(paths []string) []Input {
	inputs := make([]Input, len(paths))
	for i, p := range paths {
		inputs[i] = Input{Path: p, Rel: filepath.Base(p)}
	}
	return inputs
}

// OutputName returns the path, relative to the output directory, that a
// converted notebook is written under: rel with its extension replaced by
// suffix. Directory components of rel are kept.
func OutputName(rel, suffix string) string {
	return strings.TrimSuffix(rel, filepath.Ext(rel)) + "." + suffix
}

// OutputPath returns where in outDir the converted form of in is written.
func OutputPath(in Input, outDir, suffix string) string {
	rel := in.Rel
	if rel == "" {
		rel = filepath.Base(in.Path)
	}
	return filepath.Join(outDir, OutputName(rel, suffix))
}

// ConvertNotebook converts a single notebook and writes the result to
// outDir. If the output already exists and force is false it skips the
// notebook. Per-notebook status lines are written to w.
func ConvertNotebook(c Converter, in Input, outDir string, force bool, w io.Writer) types.ConversionRecord {
	outPath := OutputPath(in, outDir, c.Format().Suffix())
	rec := types.ConversionRecord{
		NotebookPath: in.Path,
		Format:       c.Format(),
	}

	if !force {
		if _, err := os.Stat(outPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (%s already exists)\n", in.Path, outPath)
			rec.OutputPath = outPath
			return finish(rec, types.ConversionSkipped, nil, w)
		}
	}

	conv, err := c.Convert(in.Path)
	if err != nil {
		return finish(rec, types.ConversionFailed, err, w)
	}
	rec.CodeCells = conv.CodeCells
	rec.ProseCells = conv.ProseCells
	rec.SkippedCells = conv.SkippedCells
	rec.Bytes = len(conv.Output.Text)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return finish(rec, types.ConversionFailed, fmt.Errorf("creating output directory: %w", err), w)
	}
	if err := os.WriteFile(outPath, []byte(conv.Output.Text), 0o644); err != nil {
		return finish(rec, types.ConversionFailed, fmt.Errorf("writing %s: %w", outPath, err), w)
	}

	rec.OutputPath = outPath
	fmt.Fprintf(w, "converted: %s -> %s\n", in.Path, outPath)
	return finish(rec, types.ConversionDone, nil, w)
}

// finish stamps rec with its outcome. Failures are reported to w.
func finish(rec types.ConversionRecord, status types.ConversionStatus, err error, w io.Writer) types.ConversionRecord {
	rec.Status = status
	rec.ConvertedAt = time.Now().UTC()
	if err != nil {
		rec.Error = err.Error()
		fmt.Fprintf(w, "failed:  %s (%v)\n", rec.NotebookPath, err)
	}
	return rec
}

// ConvertBatch converts each input, printing per-file status to w and
// returning a summary. Two inputs that map to the same output path within
// one batch are not both written: the later one fails. Every record is
// passed to rec when rec is non-nil; a recording failure is logged and
// does not fail the notebook. The returned error is non-nil only when ctx
// is cancelled; conversion failures are reported through BatchResult.Err.
func ConvertBatch(ctx context.Context, c Converter, inputs []Input, cfg types.ConversionConfig, rec Recorder, w io.Writer) (BatchResult, error) {
	var result BatchResult
	claimed := make(map[string]string, len(inputs))

	for _, in := range inputs {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		var r types.ConversionRecord
		outPath := OutputPath(in, cfg.OutputDir, c.Format().Suffix())
		if first, ok := claimed[outPath]; ok {
			r = finish(types.ConversionRecord{NotebookPath: in.Path, Format: c.Format()},
				types.ConversionFailed,
				fmt.Errorf("output %s is already produced by %s in this run", outPath, first), w)
		} else {
			claimed[outPath] = in.Path
			r = ConvertNotebook(c, in, cfg.OutputDir, cfg.Force, w)
		}
		result.Records = append(result.Records, r)

		switch r.Status {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionSkipped:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
			result.errs = multierror.Append(result.errs, fmt.Errorf("%s: %s", in.Path, r.Error))
		}

		if rec != nil {
			if err := rec.Record(ctx, r); err != nil {
				logrus.WithError(err).WithField("notebook", in.Path).Warn("could not record conversion history")
			}
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// Preview converts the notebook at path and writes the converted text to
// w without touching the filesystem.
func Preview(c Converter, path string, w io.Writer) (Conversion, error) {
	conv, err := c.Convert(path)
	if err != nil {
		return Conversion{}, err
	}
	if _, err := io.WriteString(w, conv.Output.Text); err != nil {
		return Conversion{}, fmt.Errorf("writing preview: %w", err)
	}
	return conv, nil
}

// PreviewBatch previews each notebook to out. With more than one notebook,
// each preview is preceded by a header naming its source, written as a
// comment of the output format. A notebook that fails is reported to
// status and the rest are still previewed; the failures are returned
// combined.
func PreviewBatch(c Converter, paths []string, out, status io.Writer) error {
	var errs *multierror.Error
	for _, p := range paths {
		if len(paths) > 1 {
			if _, err := io.WriteString(out, previewHeader(c.Format(), p)); err != nil {
				return fmt.Errorf("writing preview: %w", err)
			}
		}
		if _, err := Preview(c, p, out); err != nil {
			fmt.Fprintf(status, "failed:  %s (%v)\n", p, err)
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", p, err))
		}
	}
	return errs.ErrorOrNil()
}

// previewHeader labels a notebook's section of a multi-notebook preview
// so the combined text stays valid in the output format.
func previewHeader(format types.OutputFormat, path string) string {
	if format == types.FormatPython {
		return "# ==> " + path + " <==\n\n"
	}
	return "<!-- ==> " + path + " <== -->\n\n"
}

// CollectNotebooks expands args into notebook inputs. Files are taken as
// given and written flat. Directories are walked for *.ipynb files,
// skipping Jupyter checkpoint directories, and each file keeps its path
// relative to the directory. Results from each directory are sorted.
func CollectNotebooks(args []string) ([]Input, error) {
	var inputs []Input
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", arg, err)
		}
		if !info.IsDir() {
			inputs = append(inputs, Input{Path: arg, Rel: filepath.Base(arg)})
			continue
		}

		var found []Input
		err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if d.Name() == checkpointsDir {
					return filepath.SkipDir
				}
				return nil
			}
			if !strings.EqualFold(filepath.Ext(path), notebookExt) {
				return nil
			}
			rel, err := filepath.Rel(arg, path)
			if err != nil {
				return err
			}
			found = append(found, Input{Path: path, Rel: rel})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", arg, err)
		}
		sort.Slice(found, func(i, j int) bool { return found[i].Path < found[j].Path })
		inputs = append(inputs, found...)
	}
	return inputs, nil
}
