// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mirror

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pdiddy/course-mirror/internal/fsname"
)

const gitignoreName = ".gitignore"

// EnsureOutputRoot creates dir and drops a .gitignore that ignores
// everything in it. An existing .gitignore is left untouched.
func EnsureOutputRoot(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, gitignoreName)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte("*\n"), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// WriteShortcut writes an Internet Shortcut file named <title>.url that
// opens target, and returns its path.
func WriteShortcut(dir, title, target string) (string, error) {
	name := fsname.Sanitize(title)
	if name == "" {
		return "", fmt.Errorf("title %q has no usable filename characters", title)
	}
	path := filepath.Join(dir, name+".url")
	content := "[InternetShortcut]\nURL=" + target
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// courseDir returns <root>/<course> with the course name sanitized.
func courseDir(root, course string) (string, error) {
	c := fsname.Sanitize(course)
	if c == "" {
		return "", fmt.Errorf("course name %q has no usable filename characters", course)
	}
	return filepath.Join(root, c), nil
}

// moduleDir builds and creates <root>/<course>/<module>.
func moduleDir(root, course, module string) (string, error) {
	cdir, err := courseDir(root, course)
	if err != nil {
		return "", err
	}
	m := fsname.Sanitize(module)
	if m == "" {
		return "", fmt.Errorf("module name %q has no usable filename characters", module)
	}
	dir := filepath.Join(cdir, m)
	if err := ensureDir(dir); err != nil {
		return "", err
	}
	return dir, nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}
	return nil
}
