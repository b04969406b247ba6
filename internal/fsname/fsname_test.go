// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fsname

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain title", "My Page", "My Page"},
		{"path separators", "Week 1/2: Intro", "Week 12 Intro"},
		{"windows reserved chars", `a<b>c"d|e?f*g\h`, "abcdefgh"},
		{"control characters", "line\none\ttab", "lineonetab"},
		{"surrounding whitespace", "  Syllabus  ", "Syllabus"},
		{"trailing dots", "Notes...", "Notes"},
		{"only illegal", `<>:"/\|?*`, ""},
		{"empty", "", ""},
		{"dot names", "..", ""},
		{"reserved device name", "con", "con_"},
		{"reserved with extension", "NUL.txt", "NUL.txt_"},
		{"reserved prefix is fine", "CONSOLE", "CONSOLE"},
		{"unicode kept", "Übung 3 – Lösungen", "Übung 3 – Lösungen"},
		{"filename with extension", "lecture 01.pdf", "lecture 01.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestSanitizeTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 200) // 400 bytes
	got := Sanitize(long)
	assert.LessOrEqual(t, len(got), MaxLen)
	assert.True(t, utf8.ValidString(got))
}

func TestSanitizeCollisions(t *testing.T) {
	assert.Equal(t, Sanitize("A/B"), Sanitize("AB"))
}
