// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mirror

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/course-mirror/pkg/types"
)

// CourseLister resolves which courses a run covers.
type CourseLister interface {
	ListCourses(ctx context.Context) ([]types.Course, error)
	GetCourse(ctx context.Context, courseID int64) (types.Course, error)
}

// Selection is the set of courses a run walks. Failed counts explicit
// course ids that could not be fetched.
type Selection struct {
	Courses []types.Course
	Failed  int
}

// SelectCourses returns every visible course when ids is nil, otherwise
// the listed courses in the given order. An id that cannot be fetched is
// reported to w, counted, and skipped; failing to list all courses is an
// error.
func SelectCourses(ctx context.Context, l CourseLister, ids []int64, w io.Writer) (Selection, error) {
	if ids == nil {
		courses, err := l.ListCourses(ctx)
		if err != nil {
			return Selection{}, fmt.Errorf("listing courses: %w", err)
		}
		return Selection{Courses: courses}, nil
	}

	sel := Selection{Courses: make([]types.Course, 0, len(ids))}
	for _, id := range ids {
		c, err := l.GetCourse(ctx, id)
		if err != nil {
			fmt.Fprintf(w, "failed:  course %d (%v)\n", id, err)
			sel.Failed++
			continue
		}
		sel.Courses = append(sel.Courses, c)
	}
	return sel, nil
}
