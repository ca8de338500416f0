// ABOUTME: Source recognizer contract used by the preview engine
// ABOUTME: Each source classifies URLs and documents and lists posts

package interfaces

import (
	"context"
	"net/url"

	"digests-preview/core/domain"
)

// URLVerdict is the answer of a source for a URL shape
type URLVerdict int

const (
	// URLMaybe means the source needs the document to decide
	URLMaybe URLVerdict = iota
	// URLMine means the URL alone identifies the source
	URLMine
	// URLNotMine means the source never handles this URL
	URLNotMine
)

// URLMatch is the result of Source.MatchURL.
// Title is only set for URLMine.
type URLMatch struct {
	Verdict URLVerdict
	Title   string
}

// Mine builds a positive URL match
func Mine(title string) URLMatch {
	return URLMatch{Verdict: URLMine, Title: title}
}

// Maybe is the URL match of sources that need the document
var Maybe = URLMatch{Verdict: URLMaybe}

// NotMine is the URL match of sources that reject the URL
var NotMine = URLMatch{Verdict: URLNotMine}

// Source is a pluggable content source recognizer
type Source interface {
	// Name returns the registry key of the source
	Name() domain.SourceName

	// MatchURL classifies a URL by its shape alone
	MatchURL(u *url.URL) URLMatch

	// MatchText classifies a fetched document and returns its title
	MatchText(resp *domain.TextResponse) (string, bool)

	// Links returns absolute URLs of resources of this source linked from resp
	Links(resp *domain.TextResponse) []string

	// GetPosts lists the posts of the source at url. text is the already
	// fetched document when the candidate was recognized by content.
	GetPosts(ctx context.Context, task DownloadTask, url string, text *domain.TextResponse) ([]domain.Post, error)
}
