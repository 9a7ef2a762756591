// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the notebook-converter CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/notebook-converter/internal/config"
	"github.com/pdiddy/notebook-converter/internal/logger"
	"github.com/pdiddy/notebook-converter/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// appConfig holds the resolved configuration, loaded before any subcommand runs.
var appConfig types.AppConfig

// rootCmd is the base command for the notebook-converter CLI.
var rootCmd = &cobra.Command{
	Use:   "notebook-converter",
	Short: "Convert Jupyter notebooks to Markdown or Python scripts",
	Long: `notebook-converter flattens Jupyter notebooks into plain text. Markdown
output keeps prose as-is and fences code cells; Python output keeps code
as-is and turns prose into comments.

Conversions are recorded in a local SQLite history that can be listed
and exported with the history subcommand.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		appConfig = cfg
		logger.Init(cfg.Log, os.Stderr)
		if used := viper.ConfigFileUsed(); used != "" {
			logrus.WithField("file", used).Debug("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./notebook-converter.yaml or ~/.config/notebook-converter/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored log output")
	rootCmd.PersistentFlags().String("history-dir", config.DefaultHistoryDir, "directory holding the conversion history database")

	bindFlag(config.KeyVerbose, rootCmd.PersistentFlags().Lookup("verbose"))
	bindFlag(config.KeyDisableColor, rootCmd.PersistentFlags().Lookup("no-color"))
	bindFlag(config.KeyHistoryDir, rootCmd.PersistentFlags().Lookup("history-dir"))
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("notebook-converter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "notebook-converter"))
		}
	}

	viper.SetEnvPrefix("NOTEBOOK_CONVERTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "warning: reading config:", err)
		}
	}
}

// bindFlag binds a cobra flag to a viper key. Binding only fails for a nil
// flag, which is a programming error.
func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag for %s: %v", key, err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
