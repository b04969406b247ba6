// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the course-mirror tool:
// the Canvas entities read during a sync, the artifacts written to disk,
// and the run configuration.
package types

import "strconv"

// Course is a Canvas course visible to the configured token.
type Course struct {
	ID int64 `json:"id" yaml:"id"`

	// Name is the display name. Canvas omits it for courses the token can
	// see in a listing but not open.
	Name string `json:"name" yaml:"name"`

	CourseCode string `json:"course_code" yaml:"course_code"`
}

// Module is a named grouping of items within a course.
type Module struct {
	ID       int64  `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Position int    `json:"position" yaml:"position"`
}

// ItemKind is the closed set of module item types the walker acts on.
type ItemKind int

const (
	// KindIgnored covers SubHeader, Discussion, Quiz, ExternalTool and any
	// type Canvas adds later.
	KindIgnored ItemKind = iota
	KindFile
	KindPage
	KindExternalURL
	KindAssignment
)

// String returns the Canvas type name for the kind.
func (k ItemKind) String() string {
	switch k {
	case KindFile:
		return "File"
	case KindPage:
		return "Page"
	case KindExternalURL:
		return "ExternalUrl"
	case KindAssignment:
		return "Assignment"
	default:
		return "Ignored"
	}
}

// ParseItemKind maps a Canvas module item type string onto an ItemKind.
// Unrecognized strings map to KindIgnored.
func ParseItemKind(s string) ItemKind {
	switch s {
	case "File":
		return KindFile
	case "Page":
		return KindPage
	case "ExternalUrl":
		return KindExternalURL
	case "Assignment":
		return KindAssignment
	default:
		return KindIgnored
	}
}

// ModuleItem is one entry of a module. Which payload field is set depends
// on Type: ContentID for File and Assignment, PageURL for Page, ExternalURL
// for ExternalUrl.
type ModuleItem struct {
	ID          int64  `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Type        string `json:"type" yaml:"type"`
	ContentID   int64  `json:"content_id" yaml:"content_id"`
	PageURL     string `json:"page_url" yaml:"page_url"`
	ExternalURL string `json:"external_url" yaml:"external_url"`
}

// Kind returns the item's ItemKind.
func (m ModuleItem) Kind() ItemKind {
	return ParseItemKind(m.Type)
}

// File is a Canvas file record. URL is a pre-authorized download link.
type File struct {
	ID          int64  `json:"id" yaml:"id"`
	Filename    string `json:"filename" yaml:"filename"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	URL         string `json:"url" yaml:"url"`
	Size        int64  `json:"size" yaml:"size"`
}

// Key returns the identifier used for download deduplication. Module
// items, body references, and file listings all resolve to this form.
func (f File) Key() string {
	return FileKey(f.ID)
}

// FileKey formats a numeric file id as a dedup key.
func FileKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Page is a wiki page. Body is HTML and may be empty.
type Page struct {
	URL   string `json:"url" yaml:"url"`
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`
}

// Assignment carries the HTML description shown to students.
type Assignment struct {
	ID          int64  `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}
