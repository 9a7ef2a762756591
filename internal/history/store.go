// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists a log of notebook conversions in SQLite and
// exports it as YAML or JSON.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/notebook-converter/pkg/types"
)

const (
	dbFile = "history.db"
	// timeLayout is fixed-width so stored timestamps sort lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Store manages the conversion history database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates the history database at cfg.Dir/history.db and
// creates the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		dir:        cfg.Dir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the directory holding the database and exports.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			notebook_path TEXT NOT NULL,
			output_path TEXT,
			format TEXT NOT NULL,
			status TEXT NOT NULL,
			code_cells INTEGER NOT NULL DEFAULT 0,
			prose_cells INTEGER NOT NULL DEFAULT 0,
			skipped_cells INTEGER NOT NULL DEFAULT 0,
			bytes INTEGER NOT NULL DEFAULT 0,
			error TEXT,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_status ON conversions(status)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_format ON conversions(format)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_notebook ON conversions(notebook_path)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends one conversion to the history.
func (s *Store) Record(ctx context.Context, rec types.ConversionRecord) error {
	convertedAt := rec.ConvertedAt
	if convertedAt.IsZero() {
		convertedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (notebook_path, output_path, format, status,
			code_cells, prose_cells, skipped_cells, bytes, error, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.NotebookPath, rec.OutputPath, string(rec.Format), string(rec.Status),
		rec.CodeCells, rec.ProseCells, rec.SkippedCells, rec.Bytes, rec.Error,
		convertedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("recording conversion of %s: %w", rec.NotebookPath, err)
	}
	return nil
}

// ListOptions filters history queries. Zero values mean "no filter".
type ListOptions struct {
	Format   types.OutputFormat
	Status   types.ConversionStatus
	Notebook string
	Limit    int
}

// List returns matching records, newest first. Limit falls back to the
// store's configured maximum when zero.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]types.ConversionRecord, error) {
	var (
		where []string
		args  []any
	)
	if opts.Format != "" {
		where = append(where, "format = ?")
		args = append(args, string(opts.Format))
	}
	if opts.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(opts.Status))
	}
	if opts.Notebook != "" {
		where = append(where, "notebook_path = ?")
		args = append(args, opts.Notebook)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = s.maxResults
	}

	query := `SELECT notebook_path, output_path, format, status, code_cells,
		prose_cells, skipped_cells, bytes, error, converted_at FROM conversions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY converted_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var records []types.ConversionRecord
	for rows.Next() {
		var (
			rec                       types.ConversionRecord
			outputPath, errMsg        sql.NullString
			format, status, converted string
		)
		if err := rows.Scan(&rec.NotebookPath, &outputPath, &format, &status,
			&rec.CodeCells, &rec.ProseCells, &rec.SkippedCells, &rec.Bytes,
			&errMsg, &converted); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		rec.OutputPath = outputPath.String
		rec.Error = errMsg.String
		rec.Format = types.OutputFormat(format)
		rec.Status = types.ConversionStatus(status)
		if t, err := time.Parse(timeLayout, converted); err == nil {
			rec.ConvertedAt = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Summary holds conversion counts by status.
type Summary struct {
	Converted int `json:"converted" yaml:"converted"`
	Skipped   int `json:"skipped" yaml:"skipped"`
	Failed    int `json:"failed" yaml:"failed"`
}

// Total returns the number of recorded conversions.
func (s Summary) Total() int {
	return s.Converted + s.Skipped + s.Failed
}

// Summarize counts recorded conversions by status.
func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, count(*) FROM conversions GROUP BY status`)
	if err != nil {
		return Summary{}, fmt.Errorf("summarizing history: %w", err)
	}
	defer rows.Close()

	var sum Summary
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return Summary{}, fmt.Errorf("scanning summary row: %w", err)
		}
		switch types.ConversionStatus(status) {
		case types.ConversionDone:
			sum.Converted = n
		case types.ConversionSkipped:
			sum.Skipped = n
		case types.ConversionFailed:
			sum.Failed = n
		}
	}
	return sum, rows.Err()
}
