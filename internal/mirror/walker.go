// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mirror walks a course's modules and writes its content to disk:
// module files, page and assignment bodies with the attachments they link,
// external links as shortcuts, and finally any course file the modules did
// not reach. A per-course Tracker keeps each file id to a single download
// across the body references and the final sweep.
package mirror

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/pdiddy/course-mirror/internal/extract"
	"github.com/pdiddy/course-mirror/internal/fsname"
	"github.com/pdiddy/course-mirror/internal/httputil"
	"github.com/pdiddy/course-mirror/pkg/types"
)

// Source is the remote side of a walk. Errors carry httputil kinds so the
// walker can decide which ones to suppress.
type Source interface {
	ListModules(ctx context.Context, courseID int64) ([]types.Module, error)
	ListModuleItems(ctx context.Context, courseID, moduleID int64) ([]types.ModuleItem, error)
	GetFile(ctx context.Context, fileID string) (types.File, error)
	GetCourseFile(ctx context.Context, courseID int64, fileID string) (types.File, error)
	GetPage(ctx context.Context, courseID int64, pageURL string) (types.Page, error)
	GetAssignment(ctx context.Context, courseID, assignmentID int64) (types.Assignment, error)
	ListCourseFiles(ctx context.Context, courseID int64) ([]types.File, error)
	Download(ctx context.Context, f types.File, destPath string) error
}

// ContentWriter persists an HTML body under a title in dir.
type ContentWriter interface {
	Write(body, dir, title string) (string, error)
}

// Recorder receives every artifact written. Recording errors are reported
// but never stop the walk.
type Recorder interface {
	Record(a types.Artifact) error
}

// Result counts the outcome of walking one or more courses.
type Result struct {
	Downloaded     int
	Written        int
	Shortcuts      int
	Swept          int
	Ignored        int
	ModulesSkipped int
	Failed         int
}

// Total returns the number of files written.
func (r Result) Total() int {
	return r.Downloaded + r.Written + r.Shortcuts + r.Swept
}

func (r *Result) add(o Result) {
	r.Downloaded += o.Downloaded
	r.Written += o.Written
	r.Shortcuts += o.Shortcuts
	r.Swept += o.Swept
	r.Ignored += o.Ignored
	r.ModulesSkipped += o.ModulesSkipped
	r.Failed += o.Failed
}

// Walker mirrors courses into an output root.
type Walker struct {
	src    Source
	writer ContentWriter
	rec    Recorder
	root   string
	w      io.Writer
}

// NewWalker returns a Walker that reads from src, writes bodies with
// writer, places output under root, and prints progress to w.
func NewWalker(src Source, writer ContentWriter, root string, w io.Writer) *Walker {
	return &Walker{src: src, writer: writer, root: root, w: w}
}

// WithRecorder sets the artifact recorder and returns the walker.
func (wk *Walker) WithRecorder(rec Recorder) *Walker {
	wk.rec = rec
	return wk
}

// Run walks each selected course in order and prints a summary. Courses
// that could not be selected count as failures.
func (wk *Walker) Run(ctx context.Context, sel Selection) Result {
	total := Result{Failed: sel.Failed}
	for _, c := range sel.Courses {
		total.add(wk.WalkCourse(ctx, c))
	}
	fmt.Fprintf(wk.w, "\nSync summary: %d course(s), %d downloaded, %d written, %d shortcut(s), %d swept, %d failed\n",
		len(sel.Courses), total.Downloaded, total.Written, total.Shortcuts, total.Swept, total.Failed)
	return total
}

// itemScope is where a module item's output goes.
type itemScope struct {
	course types.Course
	module string
	dir    string
	seen   *Tracker
}

// WalkCourse mirrors one course: every module in order, then the flat
// sweep of course files no module reached.
func (wk *Walker) WalkCourse(ctx context.Context, course types.Course) Result {
	var res Result
	seen := NewTracker()

	modules, err := wk.src.ListModules(ctx, course.ID)
	if err != nil {
		wk.failf(&res, "%s: listing modules (%v)", course.Name, err)
	}
	for _, m := range modules {
		wk.walkModule(ctx, course, m, seen, &res)
	}

	wk.sweep(ctx, course, seen, &res)
	return res
}

func (wk *Walker) walkModule(ctx context.Context, course types.Course, m types.Module, seen *Tracker, res *Result) {
	items, err := wk.src.ListModuleItems(ctx, course.ID, m.ID)
	if err != nil {
		wk.failf(res, "%s - %s: listing items (%v)", course.Name, m.Name, err)
		res.ModulesSkipped++
		return
	}
	if len(items) == 0 {
		return
	}

	dir, err := moduleDir(wk.root, course.Name, m.Name)
	if err != nil {
		wk.failf(res, "%s - %s: %v", course.Name, m.Name, err)
		res.ModulesSkipped++
		return
	}

	scope := itemScope{course: course, module: m.Name, dir: dir, seen: seen}
	for _, item := range items {
		fmt.Fprintf(wk.w, "%s - %s - %s (%s)\n", course.Name, m.Name, item.Title, item.Type)

		switch item.Kind() {
		case types.KindFile:
			wk.fileItem(ctx, scope, item, res)
		case types.KindPage:
			wk.pageItem(ctx, scope, item, res)
		case types.KindExternalURL:
			wk.shortcutItem(scope, item, res)
		case types.KindAssignment:
			wk.assignmentItem(ctx, scope, item, res)
		default:
			res.Ignored++
		}
	}
}

// fileItem downloads a module file. It does not consult the tracker: a
// file item is downloaded even if a body reference already fetched it.
func (wk *Walker) fileItem(ctx context.Context, s itemScope, item types.ModuleItem, res *Result) {
	id := types.FileKey(item.ContentID)
	f, err := wk.src.GetFile(ctx, id)
	if err != nil {
		wk.failf(res, "%s: fetching file %s (%v)", item.Title, id, err)
		return
	}
	s.seen.Mark(id)

	path, err := wk.download(ctx, f, s.dir)
	if err != nil {
		wk.failf(res, "%s: %v", item.Title, err)
		return
	}
	res.Downloaded++
	wk.record(s, types.ArtifactFile, id, path)
}

func (wk *Walker) pageItem(ctx context.Context, s itemScope, item types.ModuleItem, res *Result) {
	page, err := wk.src.GetPage(ctx, s.course.ID, item.PageURL)
	if err != nil {
		wk.failf(res, "%s: fetching page %s (%v)", item.Title, item.PageURL, err)
		return
	}
	wk.writeBody(s, page.Body, item.Title, types.ArtifactPage, item.PageURL, res)
	wk.references(ctx, s, page.Body, false, res)
}

// assignmentItem is pageItem for assignment descriptions, except that an
// assignment or attachment the token may not open is skipped silently.
func (wk *Walker) assignmentItem(ctx context.Context, s itemScope, item types.ModuleItem, res *Result) {
	a, err := wk.src.GetAssignment(ctx, s.course.ID, item.ContentID)
	if err != nil {
		if httputil.IsDenied(err) {
			return
		}
		wk.failf(res, "%s: fetching assignment %d (%v)", item.Title, item.ContentID, err)
		return
	}
	wk.writeBody(s, a.Description, item.Title, types.ArtifactAssignment, types.FileKey(a.ID), res)
	wk.references(ctx, s, a.Description, true, res)
}

func (wk *Walker) shortcutItem(s itemScope, item types.ModuleItem, res *Result) {
	path, err := WriteShortcut(s.dir, item.Title, item.ExternalURL)
	if err != nil {
		wk.failf(res, "%s: %v", item.Title, err)
		return
	}
	res.Shortcuts++
	wk.record(s, types.ArtifactShortcut, types.FileKey(item.ID), path)
}

func (wk *Walker) writeBody(s itemScope, body, title string, kind types.ArtifactKind, remoteID string, res *Result) {
	path, err := wk.writer.Write(body, s.dir, title)
	if err != nil {
		wk.failf(res, "%s: %v", title, err)
		return
	}
	res.Written++
	wk.record(s, kind, remoteID, path)
}

// references downloads files linked from body that this course has not
// downloaded yet. Missing files are skipped silently; so are denied ones
// when tolerateDenied is set.
func (wk *Walker) references(ctx context.Context, s itemScope, body string, tolerateDenied bool, res *Result) {
	quiet := func(err error) bool {
		return httputil.IsNotFound(err) || (tolerateDenied && httputil.IsDenied(err))
	}

	for _, id := range extract.FileIDs(body) {
		if s.seen.Seen(id) {
			continue
		}
		f, err := wk.src.GetCourseFile(ctx, s.course.ID, id)
		if err != nil {
			if !quiet(err) {
				wk.failf(res, "referenced file %s (%v)", id, err)
			}
			continue
		}
		s.seen.Mark(id)

		path, err := wk.download(ctx, f, s.dir)
		if err != nil {
			if !quiet(err) {
				wk.failf(res, "referenced file %s: %v", id, err)
			}
			continue
		}
		res.Downloaded++
		wk.record(s, types.ArtifactReference, id, path)
	}
}

// sweep downloads course files that no module item or body reference
// reached into the course directory. A denied listing ends it silently.
func (wk *Walker) sweep(ctx context.Context, course types.Course, seen *Tracker, res *Result) {
	files, err := wk.src.ListCourseFiles(ctx, course.ID)
	if err != nil {
		if !httputil.IsDenied(err) {
			wk.failf(res, "%s: listing files (%v)", course.Name, err)
		}
		return
	}

	var dir string
	for _, f := range files {
		if seen.Seen(f.Key()) {
			continue
		}
		if dir == "" {
			if dir, err = courseDir(wk.root, course.Name); err != nil {
				wk.failf(res, "%s: file sweep (%v)", course.Name, err)
				return
			}
			if err := ensureDir(dir); err != nil {
				wk.failf(res, "%s: file sweep (%v)", course.Name, err)
				return
			}
		}

		fmt.Fprintf(wk.w, "%s - %s\n", course.Name, f.Filename)
		seen.Mark(f.Key())
		path, err := wk.download(ctx, f, dir)
		if err != nil {
			if !httputil.IsDenied(err) {
				wk.failf(res, "%s - %s: %v", course.Name, f.Filename, err)
			}
			continue
		}
		res.Swept++
		wk.record(itemScope{course: course}, types.ArtifactSweep, f.Key(), path)
	}
}

// download saves f into dir under its sanitized filename.
func (wk *Walker) download(ctx context.Context, f types.File, dir string) (string, error) {
	name := fsname.Sanitize(f.Filename)
	if name == "" {
		return "", fmt.Errorf("file %d: filename %q has no usable characters", f.ID, f.Filename)
	}
	path := filepath.Join(dir, name)
	if err := wk.src.Download(ctx, f, path); err != nil {
		return "", err
	}
	return path, nil
}

func (wk *Walker) record(s itemScope, kind types.ArtifactKind, remoteID, path string) {
	if wk.rec == nil {
		return
	}
	a := types.Artifact{
		CourseID:   s.course.ID,
		CourseName: s.course.Name,
		Module:     s.module,
		Kind:       kind,
		RemoteID:   remoteID,
		Path:       path,
	}
	if err := wk.rec.Record(a); err != nil {
		fmt.Fprintf(wk.w, "  warning: recording %s failed: %v\n", path, err)
	}
}

func (wk *Walker) failf(res *Result, format string, args ...any) {
	fmt.Fprintf(wk.w, "failed:  "+format+"\n", args...)
	res.Failed++
}
