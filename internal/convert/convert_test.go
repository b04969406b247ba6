// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConverter implements Converter for testing. It returns canned Markdown
// or an error, depending on configuration.
type fakeConverter struct {
	output string
	err    error
	calls  int
}

func (f *fakeConverter) Convert(string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.output, nil
}

func dirNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestWriterMarkdown(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(&fakeConverter{output: "Hi\n"}, true)

	path, err := w.Write("<p>Hi</p>", dir, "My Page")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "My Page.md"), path)
	assert.Equal(t, []string{"My Page.md"}, dirNames(t, dir))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Hi\n", string(data))
}

func TestWriterHTML(t *testing.T) {
	dir := t.TempDir()
	conv := &fakeConverter{output: "unused"}
	w := NewWriter(conv, false)

	path, err := w.Write("<p>Hi</p>", dir, "My Page")
	require.NoError(t, err)
	assert.Equal(t, []string{"My Page.html"}, dirNames(t, dir))
	assert.Zero(t, conv.calls)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<p>Hi</p>", string(data))
}

func TestWriterConversionFailure(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(&fakeConverter{err: errors.New("bad html")}, true)

	path, err := w.Write("<p>Hi", dir, "Broken")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConversion)
	assert.Empty(t, path)
	assert.Empty(t, dirNames(t, dir), "no file should be written when conversion fails")
}

func TestWriterEmptyBody(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(&fakeConverter{output: ""}, true)

	_, err := w.Write("", dir, "Empty")
	require.NoError(t, err)
	assert.Equal(t, []string{"Empty.md"}, dirNames(t, dir))
}

func TestWriterSanitizesTitle(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(nil, false)

	_, err := w.Write("x", dir, "Week 1: Intro/Overview?")
	require.NoError(t, err)
	assert.Equal(t, []string{"Week 1 IntroOverview.html"}, dirNames(t, dir))
}

func TestWriterCollisionOverwrites(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(nil, false)

	_, err := w.Write("first", dir, "A/B")
	require.NoError(t, err)
	path, err := w.Write("second", dir, "AB")
	require.NoError(t, err)

	assert.Equal(t, []string{"AB.html"}, dirNames(t, dir))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestWriterUnusableTitle(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(nil, false)

	_, err := w.Write("x", dir, "???")
	require.Error(t, err)
	assert.Empty(t, dirNames(t, dir))
}

func TestWriterMissingDirectory(t *testing.T) {
	w := NewWriter(nil, false)
	_, err := w.Write("x", filepath.Join(t.TempDir(), "missing"), "Page")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrConversion)
}
