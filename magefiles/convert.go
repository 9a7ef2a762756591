//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Convert builds the CLI and converts every notebook under notebooks/ to
// Markdown in output/.
func Convert() error {
	mg.Deps(Init, Build)
	return sh.RunV(filepath.Join(binDir, binName), "convert", "notebooks", "--output-dir", "output")
}

// ConvertScripts converts every notebook under notebooks/ to a Python
// script in output/.
func ConvertScripts() error {
	mg.Deps(Init, Build)
	return sh.RunV(filepath.Join(binDir, binName), "convert", "notebooks", "--format", "python", "--output-dir", "output")
}
