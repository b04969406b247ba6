// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/course-mirror/internal/manifest"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Inspect the run manifest",
	Long: `Manifest reads the SQLite database written by sync --manifest, which
records every file each run produced.`,
}

var manifestExportCmd = &cobra.Command{
	Use:   "export [manifest.db]",
	Short: "Export a run's artifacts as YAML",
	Long: `Export prints the artifacts of one run as YAML. Without --run the latest
run is exported. The database path defaults to MANIFEST.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runManifestExport,
}

func runManifestExport(cmd *cobra.Command, args []string) error {
	path := viper.GetString(keyManifest)
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("provide a manifest path or set MANIFEST")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("manifest %s: %w", path, err)
	}

	runID, _ := cmd.Flags().GetString("run")

	store, err := manifest.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.ExportYAML(context.Background(), cmd.OutOrStdout(), runID)
}

func init() {
	manifestExportCmd.Flags().String("run", "", "run id to export (default: latest)")

	manifestCmd.AddCommand(manifestExportCmd)
	rootCmd.AddCommand(manifestCmd)
}
