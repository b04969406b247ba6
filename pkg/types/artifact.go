// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ArtifactKind labels how an output file was produced.
type ArtifactKind string

const (
	ArtifactFile       ArtifactKind = "file"
	ArtifactReference  ArtifactKind = "reference"
	ArtifactPage       ArtifactKind = "page"
	ArtifactAssignment ArtifactKind = "assignment"
	ArtifactShortcut   ArtifactKind = "shortcut"
	ArtifactSweep      ArtifactKind = "sweep"
)

// Artifact describes one file written during a sync.
type Artifact struct {
	CourseID   int64        `json:"course_id" yaml:"course_id"`
	CourseName string       `json:"course_name" yaml:"course_name"`
	Module     string       `json:"module,omitempty" yaml:"module,omitempty"`
	Kind       ArtifactKind `json:"kind" yaml:"kind"`

	// RemoteID is the Canvas id of the source object (file id, page slug,
	// assignment id, or module item id for shortcuts).
	RemoteID string `json:"remote_id" yaml:"remote_id"`

	// Path is the local path as written, including the output root.
	Path string `json:"path" yaml:"path"`
}
