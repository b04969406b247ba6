// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the Canvas client and
// the walker: classification of failed responses into error kinds callers
// can match with errors.Is.
package httputil

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds. A *StatusError wraps at most one of these.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Method     string
	URL        string
	kind       error
}

// NewStatusError builds a StatusError for code, classifying it.
func NewStatusError(code int, method, url string) *StatusError {
	return &StatusError{
		StatusCode: code,
		Method:     method,
		URL:        url,
		kind:       kindOf(code),
	}
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.URL, e.StatusCode)
}

// Unwrap returns the error kind, or nil for generic failures.
func (e *StatusError) Unwrap() error {
	return e.kind
}

func kindOf(code int) error {
	switch code {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return nil
	}
}

// CheckStatus returns nil for 2xx codes and a *StatusError otherwise.
func CheckStatus(code int, method, url string) error {
	if code >= 200 && code < 300 {
		return nil
	}
	return NewStatusError(code, method, url)
}

// IsDenied reports whether err is an authorization failure (401 or 403).
func IsDenied(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}

// IsNotFound reports whether err is a 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
