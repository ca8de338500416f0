// ABOUTME: Reddit source recognizes subreddit and user URLs without fetching them
// ABOUTME: Posts come from the RSS feed Reddit serves under /.rss

package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"digests-preview/core/domain"
	"digests-preview/core/interfaces"
)

// RedditSource recognizes reddit.com/r/<name> and reddit.com/user/<name>
type RedditSource struct{}

// NewReddit creates the Reddit source
func NewReddit() *RedditSource {
	return &RedditSource{}
}

// Name returns the registry key
func (s *RedditSource) Name() domain.SourceName {
	return Reddit
}

// MatchURL claims community and user URLs and rejects everything else
func (s *RedditSource) MatchURL(u *url.URL) interfaces.URLMatch {
	title, _, ok := redditPath(u)
	if !ok {
		return interfaces.NotMine
	}
	return interfaces.Mine(title)
}

// MatchText is never needed, communities are matched by URL
func (s *RedditSource) MatchText(*domain.TextResponse) (string, bool) {
	return "", false
}

// Links finds nothing
func (s *RedditSource) Links(*domain.TextResponse) []string {
	return nil
}

// GetPosts loads the community feed
func (s *RedditSource) GetPosts(ctx context.Context, task interfaces.DownloadTask, pageURL string, text *domain.TextResponse) ([]domain.Post, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, err
	}
	_, path, ok := redditPath(u)
	if !ok {
		return nil, fmt.Errorf("reddit posts for %s: %w", pageURL, ErrUnsupportedURL)
	}
	feedURL := "https://www.reddit.com" + path + "/.rss"

	doc, err := loadFeed(ctx, task, Reddit, feedURL, nil)
	if err != nil {
		return nil, err
	}
	return feedPosts(doc)
}

// redditPath returns the display title and canonical path of a community or user
func redditPath(u *url.URL) (title, path string, ok bool) {
	host := strings.ToLower(u.Hostname())
	if host != "reddit.com" && !strings.HasSuffix(host, ".reddit.com") {
		return "", "", false
	}
	parts := pathParts(u.Path)
	if len(parts) < 2 {
		return "", "", false
	}
	switch strings.ToLower(parts[0]) {
	case "r":
		return "r/" + parts[1], "/r/" + parts[1], true
	case "u", "user":
		return "u/" + parts[1], "/user/" + parts[1], true
	}
	return "", "", false
}
