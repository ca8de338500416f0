// ABOUTME: Source registry maps source names to recognizers in a fixed order
// ABOUTME: First match wins when several sources claim the same URL or document

package source

import (
	"errors"
	"net/url"

	"digests-preview/core/domain"
	coreerrors "digests-preview/core/errors"
	"digests-preview/core/interfaces"
)

// Source names of the default registry
const (
	GitHub   domain.SourceName = "github"
	Reddit   domain.SourceName = "reddit"
	Atom     domain.SourceName = "atom"
	RSS      domain.SourceName = "rss"
	JSONFeed domain.SourceName = "jsonFeed"
)

// ErrUnsupportedURL is returned for posts of a URL the source does not handle
var ErrUnsupportedURL = errors.New("url is not handled by this source")

// Registry is an ordered, immutable set of sources
type Registry struct {
	sources []interfaces.Source
	byName  map[domain.SourceName]interfaces.Source
}

// NewRegistry creates a registry iterating sources in the given order.
// A later source with a duplicate name is ignored.
func NewRegistry(sources ...interfaces.Source) *Registry {
	r := &Registry{byName: make(map[domain.SourceName]interfaces.Source, len(sources))}
	for _, s := range sources {
		if _, dup := r.byName[s.Name()]; dup {
			continue
		}
		r.sources = append(r.sources, s)
		r.byName[s.Name()] = s
	}
	return r
}

// Default returns the built-in sources: shape matchers first, then feed formats
func Default() *Registry {
	return NewRegistry(
		NewGitHub(),
		NewReddit(),
		NewAtom(),
		NewRSS(),
		NewJSONFeed(),
	)
}

// Names lists source names in iteration order
func (r *Registry) Names() []domain.SourceName {
	names := make([]domain.SourceName, len(r.sources))
	for i, s := range r.sources {
		names[i] = s.Name()
	}
	return names
}

// Get returns the source registered under name
func (r *Registry) Get(name domain.SourceName) (interfaces.Source, error) {
	s, ok := r.byName[name]
	if !ok {
		return nil, &coreerrors.NotFoundError{Resource: "source", ID: string(name)}
	}
	return s, nil
}

// MatchURL returns a candidate for the first source that recognizes rawURL by
// shape alone.
func (r *Registry) MatchURL(rawURL string) (domain.Candidate, bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return domain.Candidate{}, false
	}
	for _, s := range r.sources {
		if m := s.MatchURL(parsed); m.Verdict == interfaces.URLMine {
			return domain.Candidate{Source: s.Name(), URL: rawURL, Title: m.Title}, true
		}
	}
	return domain.Candidate{}, false
}

// MatchText returns a candidate for the first source that does not reject the
// document URL and recognizes the document. The candidate carries resp.
func (r *Registry) MatchText(resp *domain.TextResponse) (domain.Candidate, bool) {
	parsed, err := url.Parse(resp.URL)
	if err != nil {
		return domain.Candidate{}, false
	}
	for _, s := range r.sources {
		if s.MatchURL(parsed).Verdict == interfaces.URLNotMine {
			continue
		}
		if title, ok := s.MatchText(resp); ok {
			return domain.Candidate{Source: s.Name(), URL: resp.URL, Title: title, Text: resp}, true
		}
	}
	return domain.Candidate{}, false
}

// Links collects the links every source finds in resp, in source order.
// Duplicates are kept; callers decide how to merge them.
func (r *Registry) Links(resp *domain.TextResponse) []string {
	var links []string
	for _, s := range r.sources {
		links = append(links, s.Links(resp)...)
	}
	return links
}
