// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pdiddy/notebook-converter/internal/config"
	"github.com/pdiddy/notebook-converter/internal/convert"
	"github.com/pdiddy/notebook-converter/internal/history"
)

var convertCmd = &cobra.Command{
	Use:   "convert <notebook.ipynb|dir>...",
	Short: "Convert notebooks to Markdown or a Python script",
	Long: `Convert reads each notebook and writes a flattened text version to the
output directory as <name>.md or <name>.py. Directories are searched
recursively for .ipynb files; Jupyter checkpoint directories are ignored.
Notebooks found under a directory keep their subdirectory in the output
directory, so notebooks/sub/a.ipynb is written to <output-dir>/sub/a.md.
When two notebooks of one run would produce the same output, the later
one fails.

Markdown output fences code cells as python blocks and keeps prose verbatim.
Python output keeps code verbatim and turns prose into # comments. Cells of
any other kind (for example raw cells) are skipped.

Existing outputs are left alone unless --force is given. Use --stdout to
print the converted text instead of writing files; with several notebooks
each one is preceded by a header comment naming it.

Examples:
  notebook-converter convert analysis.ipynb
  notebook-converter convert notebooks/ --format python --output-dir build
  notebook-converter convert report.ipynb --stdout`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	toStdout, _ := cmd.Flags().GetBool("stdout")
	noHistory, _ := cmd.Flags().GetBool("no-history")
	cfg := appConfig

	conversion, err := config.ValidateConversion(cfg.Conversion)
	if err != nil {
		return err
	}
	cfg.Conversion = conversion

	inputs, err := convert.CollectNotebooks(args)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return errors.New("no notebooks found")
	}

	conv, err := convert.NewNotebookConverter(cfg.Conversion, logrus.StandardLogger())
	if err != nil {
		return err
	}

	if toStdout {
		paths := make([]string, len(inputs))
		for i, in := range inputs {
			paths[i] = in.Path
		}
		return convert.PreviewBatch(conv, paths, os.Stdout, os.Stderr)
	}

	var rec convert.Recorder
	if cfg.History.Enabled && !noHistory {
		store, err := history.NewStore(cfg.History)
		if err != nil {
			logrus.WithError(err).Warn("conversion history disabled")
		} else {
			defer store.Close()
			rec = store
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := convert.ConvertBatch(ctx, conv, inputs, cfg.Conversion, rec, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d of %d notebook(s) failed: %w", result.Failed, result.Total(), result.Err())
	}
	return nil
}

func init() {
	convertCmd.Flags().StringP("format", "f", string(config.DefaultFormat), "output format: markdown (md) or python (py)")
	convertCmd.Flags().StringP("output-dir", "o", config.DefaultOutputDir, "directory for converted files")
	convertCmd.Flags().Bool("force", false, "overwrite existing output files")
	convertCmd.Flags().Bool("warn-unknown-kinds", true, "log a warning for skipped cells that are neither code nor markdown")
	convertCmd.Flags().Bool("stdout", false, "print converted text instead of writing files")
	convertCmd.Flags().Bool("no-history", false, "do not record this run in the conversion history")

	bindFlag(config.KeyFormat, convertCmd.Flags().Lookup("format"))
	bindFlag(config.KeyOutputDir, convertCmd.Flags().Lookup("output-dir"))
	bindFlag(config.KeyForce, convertCmd.Flags().Lookup("force"))
	bindFlag(config.KeyWarnUnknownKinds, convertCmd.Flags().Lookup("warn-unknown-kinds"))

	rootCmd.AddCommand(convertCmd)
}
