package types

// ConversionConfig holds settings for the convert stage.
type ConversionConfig struct {
	// Format selects the output format: markdown or python.
	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`

	// OutputDir is the directory converted files are written to.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Force overwrites existing output files instead of skipping them.
	Force bool `json:"force" yaml:"force" mapstructure:"force"`

	// WarnUnknownKinds logs a warning for every cell whose kind is neither
	// code nor prose. Such cells are skipped either way.
	WarnUnknownKinds bool `json:"warn_unknown_kinds" yaml:"warn_unknown_kinds" mapstructure:"warn_unknown_kinds"`
}

// HistoryConfig holds settings for the conversion history store.
type HistoryConfig struct {
	// Enabled controls whether conversions are recorded.
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Dir is the directory holding history.db.
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default number of entries listed (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// LoggingConfig holds diagnostic logging settings.
type LoggingConfig struct {
	// Verbose enables debug-level logging.
	Verbose bool `json:"verbose" yaml:"verbose" mapstructure:"verbose"`

	// DisableColor turns off colored log output.
	DisableColor bool `json:"disable_color" yaml:"disable_color" mapstructure:"disable_color"`
}

// AppConfig groups all configuration sections.
type AppConfig struct {
	Conversion ConversionConfig `json:"conversion" yaml:"conversion" mapstructure:"conversion"`
	History    HistoryConfig    `json:"history" yaml:"history" mapstructure:"history"`
	Log        LoggingConfig    `json:"log" yaml:"log" mapstructure:"log"`
}
