// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mirror

// Tracker is the set of file ids already downloaded for one course.
// It is not safe for concurrent use.
type Tracker struct {
	ids map[string]struct{}
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{ids: make(map[string]struct{})}
}

// Mark records id as downloaded.
func (t *Tracker) Mark(id string) {
	t.ids[id] = struct{}{}
}

// Seen reports whether id was marked.
func (t *Tracker) Seen(id string) bool {
	_, ok := t.ids[id]
	return ok
}

// Len returns the number of distinct ids marked.
func (t *Tracker) Len() int {
	return len(t.ids)
}
