package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Sync builds the CLI and mirrors the courses configured in the
// environment or .env into ./output.
func Sync() error {
	mg.Deps(Build)
	return sh.RunV(filepath.Join(binDir, binName), "sync")
}

// Manifest exports the latest run recorded in $MANIFEST as YAML.
func Manifest() error {
	mg.Deps(Build)
	args := []string{"manifest", "export"}
	if path := os.Getenv("MANIFEST"); path != "" {
		args = append(args, path)
	}
	return sh.RunV(filepath.Join(binDir, binName), args...)
}
