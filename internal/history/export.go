// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/notebook-converter/pkg/types"
)

const exportLimit = 100000

// Export file names written when no explicit path is given.
const (
	ExportYAMLFile = "export.yaml"
	ExportJSONFile = "export.json"
)

// ExportYAML writes matching records to path, or to <dir>/export.yaml when
// path is empty, and returns the path written.
func (s *Store) ExportYAML(ctx context.Context, path string, opts ListOptions) (string, error) {
	records, err := s.exportRecords(ctx, opts)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return s.writeExport(path, ExportYAMLFile, data)
}

// ExportJSON writes matching records to path, or to <dir>/export.json when
// path is empty, and returns the path written.
func (s *Store) ExportJSON(ctx context.Context, path string, opts ListOptions) (string, error) {
	records, err := s.exportRecords(ctx, opts)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return s.writeExport(path, ExportJSONFile, data)
}

func (s *Store) exportRecords(ctx context.Context, opts ListOptions) ([]types.ConversionRecord, error) {
	if opts.Limit <= 0 {
		opts.Limit = exportLimit
	}
	records, err := s.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	if records == nil {
		records = []types.ConversionRecord{}
	}
	return records, nil
}

func (s *Store) writeExport(path, defaultName string, data []byte) (string, error) {
	if path == "" {
		path = filepath.Join(s.dir, defaultName)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
