// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mirror

import (
	"context"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pdiddy/course-mirror/internal/httputil"
	"github.com/pdiddy/course-mirror/pkg/types"
)

// fakeSource is an in-memory Source for one course. Lookups that miss
// return a 404 StatusError.
type fakeSource struct {
	modules        []types.Module
	modulesErr     error
	items          map[int64][]types.ModuleItem
	itemsErr       map[int64]error
	files          map[string]types.File
	fileErr        map[string]error
	pages          map[string]types.Page
	assignments    map[int64]types.Assignment
	assignmentErr  map[int64]error
	courseFiles    []types.File
	courseFilesErr error
	downloadErr    map[int64]error

	downloads []string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		items:         map[int64][]types.ModuleItem{},
		itemsErr:      map[int64]error{},
		files:         map[string]types.File{},
		fileErr:       map[string]error{},
		pages:         map[string]types.Page{},
		assignments:   map[int64]types.Assignment{},
		assignmentErr: map[int64]error{},
		downloadErr:   map[int64]error{},
	}
}

func statusErr(code int) error {
	return httputil.NewStatusError(code, http.MethodGet, "/fake")
}

// addFile registers a course file that is reachable by id and listed in
// the course's file listing.
func (f *fakeSource) addFile(id int64, name string) types.File {
	file := types.File{ID: id, Filename: name, URL: "https://files.example/" + name}
	f.files[file.Key()] = file
	f.courseFiles = append(f.courseFiles, file)
	return file
}

func (f *fakeSource) ListModules(context.Context, int64) ([]types.Module, error) {
	return f.modules, f.modulesErr
}

func (f *fakeSource) ListModuleItems(_ context.Context, _ int64, moduleID int64) ([]types.ModuleItem, error) {
	if err := f.itemsErr[moduleID]; err != nil {
		return nil, err
	}
	return f.items[moduleID], nil
}

func (f *fakeSource) lookupFile(id string) (types.File, error) {
	if err := f.fileErr[id]; err != nil {
		return types.File{}, err
	}
	file, ok := f.files[id]
	if !ok {
		return types.File{}, statusErr(http.StatusNotFound)
	}
	return file, nil
}

func (f *fakeSource) GetFile(_ context.Context, id string) (types.File, error) {
	return f.lookupFile(id)
}

func (f *fakeSource) GetCourseFile(_ context.Context, _ int64, id string) (types.File, error) {
	return f.lookupFile(id)
}

func (f *fakeSource) GetPage(_ context.Context, _ int64, pageURL string) (types.Page, error) {
	p, ok := f.pages[pageURL]
	if !ok {
		return types.Page{}, statusErr(http.StatusNotFound)
	}
	return p, nil
}

func (f *fakeSource) GetAssignment(_ context.Context, _ int64, id int64) (types.Assignment, error) {
	if err := f.assignmentErr[id]; err != nil {
		return types.Assignment{}, err
	}
	a, ok := f.assignments[id]
	if !ok {
		return types.Assignment{}, statusErr(http.StatusNotFound)
	}
	return a, nil
}

func (f *fakeSource) ListCourseFiles(context.Context, int64) ([]types.File, error) {
	if f.courseFilesErr != nil {
		return nil, f.courseFilesErr
	}
	return f.courseFiles, nil
}

func (f *fakeSource) Download(_ context.Context, file types.File, dest string) error {
	if err := f.downloadErr[file.ID]; err != nil {
		return err
	}
	f.downloads = append(f.downloads, file.Key())
	return os.WriteFile(dest, []byte("content of "+file.Filename), 0o644)
}

// fakeRecorder collects artifacts.
type fakeRecorder struct {
	artifacts []types.Artifact
	err       error
}

func (r *fakeRecorder) Record(a types.Artifact) error {
	r.artifacts = append(r.artifacts, a)
	return r.err
}

// treeFiles lists every regular file under root as slash-separated paths
// relative to root, sorted.
func treeFiles(t *testing.T, root string) []string {
	t.Helper()
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	sort.Strings(out)
	return out
}
