// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fsname turns course, module, and item titles into names that are
// valid on every common filesystem. The rules match what students see when
// the same course is mirrored on Windows, macOS, or Linux: characters any of
// them reject are dropped rather than replaced.
package fsname

import (
	"strings"
	"unicode/utf8"
)

// MaxLen is the longest name, in bytes, most filesystems accept.
const MaxLen = 255

const invalidChars = `\/:*?"<>|`

var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true, "CLOCK$": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// Sanitize returns name with illegal characters removed. The result may be
// empty when name has nothing usable; callers treat that as missing data.
// Distinct inputs can sanitize to the same output.
func Sanitize(name string) string {
	name = strings.ToValidUTF8(name, "")

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r < 0x20 || r == 0x7f || strings.ContainsRune(invalidChars, r) {
			continue
		}
		b.WriteRune(r)
	}

	s := truncate(strings.TrimSpace(b.String()), MaxLen)
	s = strings.TrimRight(s, " .")
	if s == "" {
		return ""
	}

	base := s
	if i := strings.IndexByte(base, '.'); i >= 0 {
		base = base[:i]
	}
	if reservedNames[strings.ToUpper(base)] {
		s += "_"
	}
	return s
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
