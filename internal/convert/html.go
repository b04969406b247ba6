// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

// HTMLConverter converts Canvas rich-content HTML to CommonMark.
type HTMLConverter struct {
	conv *md.Converter
}

// NewHTMLConverter returns a converter that resolves relative links
// (e.g. /courses/1/files/2) against baseURL. An empty or unparsable
// baseURL leaves them as they are.
func NewHTMLConverter(baseURL string) *HTMLConverter {
	var base *url.URL
	if u, err := url.Parse(strings.TrimRight(baseURL, "/") + "/"); err == nil && u.IsAbs() {
		base = u
	}

	domain := ""
	if base != nil {
		domain = base.Host
	}
	conv := md.NewConverter(domain, true, &md.Options{
		GetAbsoluteURL: absoluteURL(base),
	})
	conv.AddRules(iframeRule())
	return &HTMLConverter{conv: conv}
}

// Convert returns the Markdown for html. Empty input converts to "".
func (h *HTMLConverter) Convert(html string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("converter panic: %v", r)
		}
	}()
	return h.conv.ConvertString(html)
}

func absoluteURL(base *url.URL) func(*goquery.Selection, string, string) string {
	return func(_ *goquery.Selection, raw string, _ string) string {
		if base == nil {
			return raw
		}
		u, err := url.Parse(raw)
		if err != nil || u.IsAbs() || (u.Host == "" && u.Path == "") {
			return raw
		}
		return base.ResolveReference(u).String()
	}
}

// iframeRule keeps embedded media (lecture recordings, slides) reachable
// by rendering each iframe as a link to its source.
func iframeRule() md.Rule {
	return md.Rule{
		Filter: []string{"iframe"},
		Replacement: func(_ string, sel *goquery.Selection, _ *md.Options) *string {
			src := strings.TrimSpace(sel.AttrOr("src", ""))
			if src == "" {
				return md.String("")
			}
			label := strings.TrimSpace(sel.AttrOr("title", ""))
			if label == "" {
				label = "Embedded content"
			}
			return md.String(fmt.Sprintf("\n\n[%s](%s)\n\n", label, src))
		},
	}
}
