// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the course-mirror CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/course-mirror/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets secrets.Secrets

// rootCmd is the base command for the course-mirror CLI.
var rootCmd = &cobra.Command{
	Use:   "course-mirror",
	Short: "Mirror Canvas course content to local disk",
	Long: `course-mirror downloads the files, pages, assignments, and external links
of Canvas courses into a local tree organized by course and module. Page and
assignment bodies are converted to Markdown, and every file is downloaded once
per course even when several modules or pages link it.

Configuration comes from the environment (URL, TOKEN, OUTPUT, COURSES,
CONVERT_HTML_TO_MD), a .env file in the working directory, or an optional
course-mirror.yaml config file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./course-mirror.yaml or ~/.config/course-mirror/config.yaml)")
}

func initConfig() {
	// Variables already in the environment take precedence over .env.
	if err := godotenv.Load(); err == nil {
		fmt.Fprintln(os.Stderr, "Loaded environment from .env")
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("course-mirror")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "course-mirror"))
		}
	}

	setDefaults(viper.GetViper())
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
