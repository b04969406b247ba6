// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/course-mirror/internal/secrets"
	"github.com/pdiddy/course-mirror/pkg/types"
)

const (
	defaultOutput    = "./output"
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "course-mirror/0.1"
)

// Configuration keys. Environment variables use the upper-case form.
const (
	keyURL        = "url"
	keyToken      = "token"
	keyOutput     = "output"
	keyCourses    = "courses"
	keyConvert    = "convert_html_to_md"
	keyTimeout    = "timeout"
	keyManifest   = "manifest"
	keyNoMarkdown = "no_markdown"
)

var errMissingCredentials = errors.New("missing URL or TOKEN: set them in the environment, a .env file, or .secrets/")

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyOutput, defaultOutput)
	v.SetDefault(keyCourses, "all")
	v.SetDefault(keyConvert, "true")
	v.SetDefault(keyTimeout, defaultTimeout)
}

// loadConfig builds the run configuration from v, falling back to sec for
// the URL and token. It fails when either credential is missing or COURSES
// is malformed.
func loadConfig(v *viper.Viper, sec secrets.Secrets) (types.MirrorConfig, error) {
	cfg := types.MirrorConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   v.GetDuration(keyTimeout),
			UserAgent: defaultUserAgent,
		},
		BaseURL:      sec.Or(strings.TrimSpace(v.GetString(keyURL)), secrets.KeyURL),
		Token:        sec.Or(strings.TrimSpace(v.GetString(keyToken)), secrets.KeyToken),
		OutputDir:    normalizeOutput(v.GetString(keyOutput)),
		ConvertHTML:  strings.EqualFold(strings.TrimSpace(v.GetString(keyConvert)), "true"),
		ManifestPath: strings.TrimSpace(v.GetString(keyManifest)),
	}
	if cfg.BaseURL == "" || cfg.Token == "" {
		return types.MirrorConfig{}, errMissingCredentials
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if v.GetBool(keyNoMarkdown) {
		cfg.ConvertHTML = false
	}

	ids, err := parseCourses(strings.Join(v.GetStringSlice(keyCourses), ","))
	if err != nil {
		return types.MirrorConfig{}, err
	}
	cfg.CourseIDs = ids
	return cfg, nil
}

// normalizeOutput strips trailing slashes; "/" stays "/".
func normalizeOutput(dir string) string {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return defaultOutput
	}
	if trimmed := strings.TrimRight(dir, "/"); trimmed != "" {
		return trimmed
	}
	return "/"
}

// parseCourses reads the COURSES value: "all" (or empty) selects every
// course and returns nil; otherwise a comma-separated list of numeric ids.
func parseCourses(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return nil, nil
	}

	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("COURSES: %q is not a numeric course id", part)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("COURSES: no course ids in %q", s)
	}
	return ids, nil
}
