// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger configures the process-wide logrus logger used for
// diagnostics. Per-notebook progress lines are not logged here; they go to
// the io.Writer handed to the conversion functions.
package logger

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/notebook-converter/pkg/types"
)

// Init sets the level and formatter of the standard logrus logger and
// directs it to out.
func Init(cfg types.LoggingConfig, out io.Writer) {
	if cfg.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}

	logrus.SetOutput(out)
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableColors:    cfg.DisableColor,
		DisableTimestamp: !cfg.Verbose,
		FullTimestamp:    true,
	})
}
