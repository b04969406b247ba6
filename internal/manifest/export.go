// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package manifest

import (
	"context"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/course-mirror/pkg/types"
)

// Export is the YAML document written by ExportYAML.
type Export struct {
	Run       RunInfo          `yaml:"run"`
	Artifacts []types.Artifact `yaml:"artifacts"`
}

// ExportYAML writes the run and its artifacts to w. An empty runID selects
// the latest run.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer, runID string) error {
	var info RunInfo
	if runID == "" {
		latest, ok, err := s.LatestRun(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("manifest has no runs")
		}
		info = latest
	} else {
		r, err := s.GetRun(ctx, runID)
		if err != nil {
			return err
		}
		info = r
	}

	artifacts, err := s.Artifacts(ctx, info.ID)
	if err != nil {
		return err
	}
	if artifacts == nil {
		artifacts = []types.Artifact{}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Export{Run: info, Artifacts: artifacts}); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}
