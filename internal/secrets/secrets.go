// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads Canvas credentials from a directory of plain-text
// files. Each file in the directory represents one secret: the filename is
// the key name and the file contents (trimmed) are the value.
//
// Supported key files: canvas-url, canvas-token.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Key files understood by the CLI.
const (
	KeyURL   = "canvas-url"
	KeyToken = "canvas-token"
)

// Secrets maps key file names to their trimmed contents.
type Secrets map[string]string

// Load reads all files in dir and returns their trimmed contents by name.
// A missing directory or missing files are not errors; Load returns an
// empty map. Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (Secrets, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(Secrets)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Or returns value when it is set, otherwise the secret stored under key.
func (s Secrets) Or(value, key string) string {
	if value != "" {
		return value
	}
	return s[key]
}
