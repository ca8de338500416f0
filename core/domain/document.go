// ABOUTME: TextResponse is the fetched document handed to source recognizers
// ABOUTME: Carries the final URL, status and body with HTML/link helpers

package domain

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// TextResponse is a fetched document
type TextResponse struct {
	// URL is the final URL after redirects
	URL string

	// OK is true for 2xx responses
	OK bool

	// Status is the HTTP status code
	Status int

	// ContentType is the raw Content-Type header
	ContentType string

	// Text is the decoded response body
	Text string
}

// IsHTML reports whether the document looks like an HTML page
func (r *TextResponse) IsHTML() bool {
	if strings.Contains(strings.ToLower(r.ContentType), "html") {
		return true
	}
	head := strings.ToLower(strings.TrimSpace(r.Text))
	if len(head) > 512 {
		head = head[:512]
	}
	return strings.HasPrefix(head, "<!doctype html") || strings.Contains(head, "<html")
}

// Document parses the body as HTML
func (r *TextResponse) Document() (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(r.Text))
}

// ResolveURL resolves href against the document URL.
// Returns an empty string when either side does not parse.
func (r *TextResponse) ResolveURL(href string) string {
	base, err := url.Parse(r.URL)
	if err != nil {
		return ""
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
