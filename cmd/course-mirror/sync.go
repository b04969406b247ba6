// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/course-mirror/internal/canvas"
	"github.com/pdiddy/course-mirror/internal/convert"
	"github.com/pdiddy/course-mirror/internal/manifest"
	"github.com/pdiddy/course-mirror/internal/mirror"
	"github.com/pdiddy/course-mirror/internal/secrets"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download course content into the output directory",
	Long: `Sync walks every selected course: each module's files, pages, assignments,
and external links, then any course file no module reached. Existing output is
overwritten; nothing is skipped based on earlier runs.

Per-item failures are reported and skipped. The command fails only when the
configuration is incomplete or the course list cannot be fetched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(context.Background(), viper.GetViper(), loadedSecrets, cmd.OutOrStdout())
	},
}

func init() {
	syncCmd.Flags().String("output", "", "output directory (default ./output, env OUTPUT)")
	syncCmd.Flags().String("courses", "", `comma-separated course ids or "all" (env COURSES)`)
	syncCmd.Flags().Bool("no-markdown", false, "write raw HTML instead of Markdown")
	syncCmd.Flags().String("manifest", "", "record written files in this SQLite database (env MANIFEST)")

	viper.BindPFlag(keyOutput, syncCmd.Flags().Lookup("output"))
	viper.BindPFlag(keyCourses, syncCmd.Flags().Lookup("courses"))
	viper.BindPFlag(keyNoMarkdown, syncCmd.Flags().Lookup("no-markdown"))
	viper.BindPFlag(keyManifest, syncCmd.Flags().Lookup("manifest"))

	rootCmd.AddCommand(syncCmd)
}

// runSync validates configuration before touching the filesystem, then
// mirrors the selected courses.
func runSync(ctx context.Context, v *viper.Viper, sec secrets.Secrets, w io.Writer) error {
	cfg, err := loadConfig(v, sec)
	if err != nil {
		return err
	}

	if err := mirror.EnsureOutputRoot(cfg.OutputDir); err != nil {
		return err
	}

	client := canvas.New(cfg)
	writer := convert.NewWriter(convert.NewHTMLConverter(cfg.BaseURL), cfg.ConvertHTML)
	walker := mirror.NewWalker(client, writer, cfg.OutputDir, w)

	var run *manifest.Run
	if cfg.ManifestPath != "" {
		store, err := manifest.Open(cfg.ManifestPath)
		if err != nil {
			return err
		}
		defer store.Close()

		run, err = store.BeginRun(ctx, cfg.BaseURL)
		if err != nil {
			return err
		}
		walker.WithRecorder(run)
		fmt.Fprintf(w, "manifest: %s (run %s)\n", cfg.ManifestPath, run.ID())
	}

	sel, err := mirror.SelectCourses(ctx, client, cfg.CourseIDs, w)
	if err != nil {
		return err
	}
	walker.Run(ctx, sel)

	if run != nil {
		if err := run.Finish(ctx); err != nil {
			fmt.Fprintf(w, "warning: %v\n", err)
		}
	}
	return nil
}
