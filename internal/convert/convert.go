// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert writes page and assignment bodies to disk, as Markdown
// through a pluggable Converter or as the raw HTML.
package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/course-mirror/internal/fsname"
)

const (
	extMarkdown = ".md"
	extHTML     = ".html"
)

// ErrConversion marks a failure inside the Converter, as opposed to a
// filesystem failure.
var ErrConversion = errors.New("markdown conversion failed")

// Converter transforms an HTML body into Markdown text.
type Converter interface {
	Convert(html string) (string, error)
}

// Writer persists bodies under a sanitized title. For each call it writes
// exactly one of <title>.md or <title>.html, never both.
type Writer struct {
	conv     Converter
	markdown bool
}

// NewWriter returns a Writer. When markdown is false conv is never used and
// may be nil.
func NewWriter(conv Converter, markdown bool) *Writer {
	return &Writer{conv: conv, markdown: markdown}
}

// Markdown reports whether the writer produces Markdown.
func (w *Writer) Markdown() bool {
	return w.markdown
}

// Write stores body in dir and returns the path written. If conversion
// fails the returned error wraps ErrConversion and nothing is written.
// An existing file with the same sanitized name is overwritten.
func (w *Writer) Write(body, dir, title string) (string, error) {
	name := fsname.Sanitize(title)
	if name == "" {
		return "", fmt.Errorf("title %q has no usable filename characters", title)
	}

	if !w.markdown {
		path := filepath.Join(dir, name+extHTML)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return "", fmt.Errorf("writing %s: %w", path, err)
		}
		return path, nil
	}

	content, err := w.conv.Convert(body)
	if err != nil {
		return "", fmt.Errorf("%w for %q: %v", ErrConversion, title, err)
	}

	path := filepath.Join(dir, name+extMarkdown)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}
