// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config resolves the application configuration from viper, which
// merges the config file, NOTEBOOK_CONVERTER_* environment variables, and
// bound command-line flags.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/pdiddy/notebook-converter/pkg/types"
)

// Viper keys.
const (
	KeyFormat           = "conversion.format"
	KeyOutputDir        = "conversion.output_dir"
	KeyForce            = "conversion.force"
	KeyWarnUnknownKinds = "conversion.warn_unknown_kinds"
	KeyHistoryEnabled   = "history.enabled"
	KeyHistoryDir       = "history.dir"
	KeyHistoryMax       = "history.max_results"
	KeyVerbose          = "log.verbose"
	KeyDisableColor     = "log.disable_color"
)

// Defaults.
const (
	DefaultFormat     = types.FormatMarkdown
	DefaultOutputDir  = "output"
	DefaultHistoryDir = ".history"
	DefaultMaxResults = 20
)

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyFormat, string(DefaultFormat))
	v.SetDefault(KeyOutputDir, DefaultOutputDir)
	v.SetDefault(KeyForce, false)
	v.SetDefault(KeyWarnUnknownKinds, true)
	v.SetDefault(KeyHistoryEnabled, true)
	v.SetDefault(KeyHistoryDir, DefaultHistoryDir)
	v.SetDefault(KeyHistoryMax, DefaultMaxResults)
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyDisableColor, false)
}

// Load decodes v into an AppConfig. A recognized output format is
// normalized, so "md" and "py" become their full names. An unrecognized
// one is kept as given: only commands that convert reject it, through
// ValidateConversion.
func Load(v *viper.Viper) (types.AppConfig, error) {
	var cfg types.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return types.AppConfig{}, fmt.Errorf("decoding configuration: %w", err)
	}

	if format, err := types.ParseOutputFormat(string(cfg.Conversion.Format)); err == nil {
		cfg.Conversion.Format = format
	}

	if cfg.Conversion.OutputDir == "" {
		cfg.Conversion.OutputDir = DefaultOutputDir
	}
	if cfg.History.Dir == "" {
		cfg.History.Dir = DefaultHistoryDir
	}
	if cfg.History.MaxResults <= 0 {
		cfg.History.MaxResults = DefaultMaxResults
	}
	return cfg, nil
}

// ValidateConversion checks the settings a conversion run depends on and
// returns them with the output format normalized.
func ValidateConversion(c types.ConversionConfig) (types.ConversionConfig, error) {
	format, err := types.ParseOutputFormat(string(c.Format))
	if err != nil {
		return types.ConversionConfig{}, fmt.Errorf("%s: %w", KeyFormat, err)
	}
	c.Format = format
	return c, nil
}
