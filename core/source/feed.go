// ABOUTME: Feed format sources recognize Atom, RSS and JSON Feed documents
// ABOUTME: They also discover alternate feed links advertised by HTML pages

package source

import (
	"context"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"digests-preview/core/domain"
	"digests-preview/core/interfaces"
)

// FeedSource recognizes one syndication format
type FeedSource struct {
	name      domain.SourceName
	feedType  gofeed.FeedType
	mimeTypes []string
}

// NewAtom creates the Atom source
func NewAtom() *FeedSource {
	return &FeedSource{
		name:      Atom,
		feedType:  gofeed.FeedTypeAtom,
		mimeTypes: []string{"application/atom+xml"},
	}
}

// NewRSS creates the RSS source, RSS 0.9x, 2.0 and RDF
func NewRSS() *FeedSource {
	return &FeedSource{
		name:      RSS,
		feedType:  gofeed.FeedTypeRSS,
		mimeTypes: []string{"application/rss+xml", "application/rdf+xml"},
	}
}

// NewJSONFeed creates the JSON Feed source
func NewJSONFeed() *FeedSource {
	return &FeedSource{
		name:      JSONFeed,
		feedType:  gofeed.FeedTypeJSON,
		mimeTypes: []string{"application/feed+json"},
	}
}

// Name returns the registry key
func (s *FeedSource) Name() domain.SourceName {
	return s.name
}

// MatchURL never decides by shape, any URL may serve a feed
func (s *FeedSource) MatchURL(*url.URL) interfaces.URLMatch {
	return interfaces.Maybe
}

// MatchText recognizes documents of the source's format and returns the feed
// title, or the host when the feed has none.
func (s *FeedSource) MatchText(resp *domain.TextResponse) (string, bool) {
	if gofeed.DetectFeedType(strings.NewReader(resp.Text)) != s.feedType {
		return "", false
	}
	// any JSON object sniffs as JSON, require the JSON Feed version marker
	if s.feedType == gofeed.FeedTypeJSON && !strings.Contains(resp.Text, "jsonfeed.org/version/") {
		return "", false
	}
	feed, err := gofeed.NewParser().ParseString(resp.Text)
	if err != nil {
		return "", false
	}
	if title := strings.TrimSpace(feed.Title); title != "" {
		return title, true
	}
	if u, err := url.Parse(resp.URL); err == nil && u.Host != "" {
		return u.Host, true
	}
	return resp.URL, true
}

// Links returns feeds of this format advertised with
// <link rel="alternate" type="..."> in an HTML page
func (s *FeedSource) Links(resp *domain.TextResponse) []string {
	if !resp.IsHTML() {
		return nil
	}
	doc, err := resp.Document()
	if err != nil {
		return nil
	}

	var links []string
	doc.Find(`link[rel~="alternate"][href]`).Each(func(_ int, sel *goquery.Selection) {
		if !s.acceptsType(sel.AttrOr("type", "")) {
			return
		}
		if href := resp.ResolveURL(sel.AttrOr("href", "")); href != "" {
			links = append(links, href)
		}
	})
	return links
}

// GetPosts parses text, or fetches feedURL when the candidate was not fetched
func (s *FeedSource) GetPosts(ctx context.Context, task interfaces.DownloadTask, feedURL string, text *domain.TextResponse) ([]domain.Post, error) {
	doc, err := loadFeed(ctx, task, s.name, feedURL, text)
	if err != nil {
		return nil, err
	}
	return feedPosts(doc)
}

func (s *FeedSource) acceptsType(contentType string) bool {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	for _, t := range s.mimeTypes {
		if contentType == t {
			return true
		}
	}
	return false
}
