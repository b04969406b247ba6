// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package canvas is a read-only client for the Canvas LMS REST API (v1).
// It covers the calls a course mirror needs: courses, modules, module
// items, files, pages, and assignments. Failed responses are returned as
// *httputil.StatusError so callers can match unauthorized, forbidden, and
// not-found conditions with errors.Is.
package canvas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/pdiddy/course-mirror/internal/httputil"
	"github.com/pdiddy/course-mirror/pkg/types"
)

const (
	apiPrefix = "/api/v1"
	perPage   = "100"
)

// jsonPrefix is prepended to JSON bodies by instances with CSRF
// protection enabled.
var jsonPrefix = []byte("while(1);")

// Client talks to one Canvas instance with one access token.
type Client struct {
	rc *resty.Client
}

// New builds a Client from the run configuration. Requests are never
// retried.
func New(cfg types.MirrorConfig) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")+apiPrefix).
		SetAuthToken(cfg.Token).
		SetHeader("Accept", "application/json").
		SetLogger(quietLogger{}).
		SetRetryCount(0)
	if cfg.Timeout > 0 {
		rc.SetTimeout(cfg.Timeout)
	}
	if cfg.UserAgent != "" {
		rc.SetHeader("User-Agent", cfg.UserAgent)
	}
	return &Client{rc: rc}
}

// ListCourses returns every course visible to the token.
func (c *Client) ListCourses(ctx context.Context) ([]types.Course, error) {
	return listAll[types.Course](ctx, c, "/courses")
}

// GetCourse fetches a single course by id.
func (c *Client) GetCourse(ctx context.Context, courseID int64) (types.Course, error) {
	var course types.Course
	err := c.getJSON(ctx, "/courses/"+itoa(courseID), &course)
	return course, err
}

// ListModules returns a course's modules in Canvas order.
func (c *Client) ListModules(ctx context.Context, courseID int64) ([]types.Module, error) {
	return listAll[types.Module](ctx, c, fmt.Sprintf("/courses/%d/modules", courseID))
}

// ListModuleItems returns a module's items in Canvas order.
func (c *Client) ListModuleItems(ctx context.Context, courseID, moduleID int64) ([]types.ModuleItem, error) {
	return listAll[types.ModuleItem](ctx, c, fmt.Sprintf("/courses/%d/modules/%d/items", courseID, moduleID))
}

// GetFile fetches file metadata through the global files endpoint.
func (c *Client) GetFile(ctx context.Context, fileID string) (types.File, error) {
	var f types.File
	err := c.getJSON(ctx, "/files/"+url.PathEscape(fileID), &f)
	return f, err
}

// GetCourseFile fetches file metadata scoped to a course.
func (c *Client) GetCourseFile(ctx context.Context, courseID int64, fileID string) (types.File, error) {
	var f types.File
	err := c.getJSON(ctx, fmt.Sprintf("/courses/%d/files/%s", courseID, url.PathEscape(fileID)), &f)
	return f, err
}

// GetPage fetches a wiki page, including its body, by URL slug.
func (c *Client) GetPage(ctx context.Context, courseID int64, pageURL string) (types.Page, error) {
	var p types.Page
	err := c.getJSON(ctx, fmt.Sprintf("/courses/%d/pages/%s", courseID, url.PathEscape(pageURL)), &p)
	return p, err
}

// GetAssignment fetches an assignment, including its description.
func (c *Client) GetAssignment(ctx context.Context, courseID, assignmentID int64) (types.Assignment, error) {
	var a types.Assignment
	err := c.getJSON(ctx, fmt.Sprintf("/courses/%d/assignments/%d", courseID, assignmentID), &a)
	return a, err
}

// ListCourseFiles returns every file in the course, regardless of module.
func (c *Client) ListCourseFiles(ctx context.Context, courseID int64) ([]types.File, error) {
	return listAll[types.File](ctx, c, fmt.Sprintf("/courses/%d/files", courseID))
}

// Download streams the file's content to destPath, replacing any existing
// file. The write is not atomic: an interrupted download leaves a partial
// file behind.
func (c *Client) Download(ctx context.Context, f types.File, destPath string) error {
	if f.URL == "" {
		return fmt.Errorf("file %d has no download URL", f.ID)
	}

	resp, err := c.rc.R().
		SetContext(ctx).
		SetHeader("Accept", "*/*").
		SetDoNotParseResponse(true).
		Get(f.URL)
	if err != nil {
		return fmt.Errorf("downloading file %d: %w", f.ID, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if err := httputil.CheckStatus(resp.StatusCode(), http.MethodGet, f.URL); err != nil {
		return fmt.Errorf("downloading file %d: %w", f.ID, err)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", destPath, err)
	}
	_, copyErr := io.Copy(out, body)
	closeErr := out.Close()
	if copyErr != nil {
		return fmt.Errorf("writing %s: %w", destPath, copyErr)
	}
	if closeErr != nil {
		return fmt.Errorf("closing %s: %w", destPath, closeErr)
	}
	return nil
}

// getJSON issues a GET for path and decodes the JSON body into out.
func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	resp, err := c.rc.R().SetContext(ctx).Get(path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	if err := httputil.CheckStatus(resp.StatusCode(), http.MethodGet, path); err != nil {
		return err
	}
	return decode(resp.Body(), path, out)
}

// listAll follows Link rel="next" pagination from path and concatenates
// every page.
func listAll[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var all []T

	req := c.rc.R().SetContext(ctx).SetQueryParam("per_page", perPage)
	next := path
	for next != "" {
		resp, err := req.Get(next)
		if err != nil {
			return nil, fmt.Errorf("GET %s: %w", next, err)
		}
		if err := httputil.CheckStatus(resp.StatusCode(), http.MethodGet, next); err != nil {
			return nil, err
		}

		var page []T
		if err := decode(resp.Body(), next, &page); err != nil {
			return nil, err
		}
		all = append(all, page...)

		next = nextLink(resp.Header().Get("Link"))
		// Next links already carry per_page and the page cursor.
		req = c.rc.R().SetContext(ctx)
	}
	return all, nil
}

func decode(body []byte, path string, out any) error {
	body = bytes.TrimPrefix(body, jsonPrefix)
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

// nextLink returns the rel="next" target of an RFC 8288 Link header, or "".
func nextLink(header string) string {
	for _, link := range strings.Split(header, ",") {
		parts := strings.Split(link, ";")
		if len(parts) < 2 {
			continue
		}
		target := strings.TrimSpace(parts[0])
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}
		for _, param := range parts[1:] {
			param = strings.ReplaceAll(strings.TrimSpace(param), " ", "")
			if param == `rel="next"` || param == "rel=next" {
				return target[1 : len(target)-1]
			}
		}
	}
	return ""
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

type quietLogger struct{}

func (quietLogger) Errorf(string, ...interface{}) {}
func (quietLogger) Warnf(string, ...interface{})  {}
func (quietLogger) Debugf(string, ...interface{}) {}
