package types

import "time"

// HTTPConfig holds HTTP settings for requests to the Canvas API.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout, applied to downloads as well.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with every request
	// (e.g. "course-mirror/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// MirrorConfig holds everything a sync run needs. It is built once by the
// CLI and passed down explicitly.
type MirrorConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the Canvas instance root (e.g. "https://canvas.example.edu").
	BaseURL string `json:"url" yaml:"url"`

	// Token is the Canvas access token.
	Token string `json:"-" yaml:"-"`

	// OutputDir is the local root for mirrored content, without a trailing slash.
	OutputDir string `json:"output" yaml:"output"`

	// CourseIDs restricts the run to these courses. Nil means every course
	// the token can list.
	CourseIDs []int64 `json:"courses,omitempty" yaml:"courses,omitempty"`

	// ConvertHTML selects Markdown output for pages and assignments.
	// When false the raw HTML body is written instead.
	ConvertHTML bool `json:"convert_html_to_md" yaml:"convert_html_to_md"`

	// ManifestPath is the SQLite run manifest location. Empty disables it.
	ManifestPath string `json:"manifest,omitempty" yaml:"manifest,omitempty"`
}

// AllCourses reports whether the run enumerates every visible course.
func (c MirrorConfig) AllCourses() bool {
	return c.CourseIDs == nil
}
