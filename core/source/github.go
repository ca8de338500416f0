// ABOUTME: GitHub source recognizes repository URLs without fetching them
// ABOUTME: Posts come from the repository commits Atom feed

package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"digests-preview/core/domain"
	"digests-preview/core/interfaces"
)

// githubReserved are top-level paths that are not user or organization names
var githubReserved = map[string]bool{
	"about": true, "explore": true, "features": true, "login": true,
	"marketplace": true, "orgs": true, "pricing": true, "settings": true,
	"sponsors": true, "topics": true, "trending": true,
}

// GitHubSource recognizes github.com/<owner>/<repo>
type GitHubSource struct{}

// NewGitHub creates the GitHub source
func NewGitHub() *GitHubSource {
	return &GitHubSource{}
}

// Name returns the registry key
func (s *GitHubSource) Name() domain.SourceName {
	return GitHub
}

// MatchURL claims repository URLs and rejects everything else
func (s *GitHubSource) MatchURL(u *url.URL) interfaces.URLMatch {
	owner, repo, ok := githubRepo(u)
	if !ok {
		return interfaces.NotMine
	}
	return interfaces.Mine(owner + "/" + repo)
}

// MatchText is never needed, repositories are matched by URL
func (s *GitHubSource) MatchText(*domain.TextResponse) (string, bool) {
	return "", false
}

// Links finds nothing, repository pages are not followed
func (s *GitHubSource) Links(*domain.TextResponse) []string {
	return nil
}

// GetPosts lists recent commits of the repository
func (s *GitHubSource) GetPosts(ctx context.Context, task interfaces.DownloadTask, repoURL string, text *domain.TextResponse) ([]domain.Post, error) {
	u, err := url.Parse(repoURL)
	if err != nil {
		return nil, err
	}
	owner, repo, ok := githubRepo(u)
	if !ok {
		return nil, fmt.Errorf("github posts for %s: %w", repoURL, ErrUnsupportedURL)
	}
	feedURL := "https://github.com/" + owner + "/" + repo + "/commits.atom"

	doc, err := loadFeed(ctx, task, GitHub, feedURL, nil)
	if err != nil {
		return nil, err
	}
	return feedPosts(doc)
}

func githubRepo(u *url.URL) (owner, repo string, ok bool) {
	host := strings.ToLower(u.Hostname())
	if host != "github.com" && host != "www.github.com" {
		return "", "", false
	}
	parts := pathParts(u.Path)
	if len(parts) < 2 || githubReserved[strings.ToLower(parts[0])] {
		return "", "", false
	}
	return parts[0], strings.TrimSuffix(parts[1], ".git"), true
}

func pathParts(path string) []string {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
