// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pdiddy/notebook-converter/internal/history"
	"github.com/pdiddy/notebook-converter/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and export the conversion history",
	Long: `History reads the local SQLite log of past conversions. Use
subcommands to list recent conversions or export them.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent conversions, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	opts, err := listOptsFromFlags(cmd)
	if err != nil {
		return err
	}

	store, err := history.NewStore(appConfig.History)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	records, err := store.List(ctx, opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		if records == nil {
			records = []types.ConversionRecord{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	summary, err := store.Summarize(ctx)
	if err != nil {
		return err
	}
	writeHistoryTable(os.Stdout, records, summary)
	return nil
}

func writeHistoryTable(w io.Writer, records []types.ConversionRecord, summary history.Summary) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"When", "Notebook", "Format", "Status", "Cells", "Output"})
	table.SetAutoWrapText(false)
	for _, r := range records {
		output := r.OutputPath
		if r.Status == types.ConversionFailed {
			output = r.Error
		}
		table.Append([]string{
			r.ConvertedAt.Local().Format("2006-01-02 15:04:05"),
			r.NotebookPath,
			string(r.Format),
			string(r.Status),
			strconv.Itoa(r.CodeCells + r.ProseCells),
			output,
		})
	}
	table.Render()

	fmt.Fprintf(w, "\nall time: %d converted, %d skipped, %d failed\n",
		summary.Converted, summary.Skipped, summary.Failed)
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the conversion history to YAML or JSON",
	Long: `Export writes the conversion history (or a filtered subset) to
<history-dir>/export.yaml or export.json, or to the path given with --out.`,
	RunE: runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	opts, err := listOptsFromFlags(cmd)
	if err != nil {
		return err
	}

	store, err := history.NewStore(appConfig.History)
	if err != nil {
		return err
	}
	defer store.Close()

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(context.Background(), out, opts)
	case "json":
		path, err = store.ExportJSON(context.Background(), out, opts)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}

	fmt.Println("Exported to", path)
	return nil
}

// --- shared helpers ---

func listOptsFromFlags(cmd *cobra.Command) (history.ListOptions, error) {
	target, _ := cmd.Flags().GetString("target")
	status, _ := cmd.Flags().GetString("status")
	nb, _ := cmd.Flags().GetString("notebook")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := history.ListOptions{
		Notebook: nb,
		Limit:    limit,
	}
	if target != "" {
		f, err := types.ParseOutputFormat(target)
		if err != nil {
			return history.ListOptions{}, err
		}
		opts.Format = f
	}
	if status != "" {
		st, err := types.ParseConversionStatus(status)
		if err != nil {
			return history.ListOptions{}, err
		}
		opts.Status = st
	}
	return opts, nil
}

func init() {
	// Filter flags shared by both subcommands.
	for _, c := range []*cobra.Command{historyListCmd, historyExportCmd} {
		c.Flags().String("target", "", "filter by output format: markdown or python")
		c.Flags().String("status", "", "filter by status: converted, skipped, failed")
		c.Flags().String("notebook", "", "filter by notebook path")
	}

	historyListCmd.Flags().Int("limit", 0, "maximum entries (0 = use history.max_results)")
	historyListCmd.Flags().Bool("json", false, "output entries as JSON")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().String("out", "", "output path (default: <history-dir>/export.<format>)")
	historyExportCmd.Flags().Int("limit", 0, "maximum entries to export (0 = all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
