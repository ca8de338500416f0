package preview

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"digests-preview/core/domain"
	coreerrors "digests-preview/core/errors"
	"digests-preview/core/interfaces"
)

// fakeSource understands a tiny line based document format:
//
//	feed:<title>  the document is a feed of this source
//	link:<url>    an outbound link
//	post:<title>  a post of the feed
//
// URLs on shapeHost are claimed by shape. Posts of candidates without a
// document are fetched from <url>#posts.
type fakeSource struct {
	name      domain.SourceName
	shapeHost string

	mu         sync.Mutex
	postsCalls map[string]int
}

func newFakeSource(name domain.SourceName, shapeHost string) *fakeSource {
	return &fakeSource{name: name, shapeHost: shapeHost, postsCalls: map[string]int{}}
}

func (f *fakeSource) Name() domain.SourceName {
	return f.name
}

func (f *fakeSource) MatchURL(u *url.URL) interfaces.URLMatch {
	if f.shapeHost == "" {
		return interfaces.Maybe
	}
	if u.Host == f.shapeHost {
		return interfaces.Mine("Shape " + u.Path)
	}
	return interfaces.NotMine
}

func (f *fakeSource) MatchText(resp *domain.TextResponse) (string, bool) {
	if f.shapeHost != "" {
		return "", false
	}
	for _, line := range strings.Split(resp.Text, "\n") {
		if title, ok := strings.CutPrefix(line, "feed:"); ok {
			return title, true
		}
	}
	return "", false
}

func (f *fakeSource) Links(resp *domain.TextResponse) []string {
	if f.shapeHost != "" {
		return nil
	}
	var links []string
	for _, line := range strings.Split(resp.Text, "\n") {
		if link, ok := strings.CutPrefix(line, "link:"); ok {
			links = append(links, link)
		}
	}
	return links
}

func (f *fakeSource) GetPosts(ctx context.Context, task interfaces.DownloadTask, u string, text *domain.TextResponse) ([]domain.Post, error) {
	f.mu.Lock()
	f.postsCalls[u]++
	f.mu.Unlock()

	if text == nil {
		resp, err := task.Text(ctx, u+"#posts")
		if err != nil {
			return nil, err
		}
		if !resp.OK {
			return nil, &coreerrors.ExternalAPIError{API: string(f.name), StatusCode: resp.Status, Message: "posts"}
		}
		text = resp
	}

	var posts []domain.Post
	for _, line := range strings.Split(text.Text, "\n") {
		if title, ok := strings.CutPrefix(line, "post:"); ok {
			posts = append(posts, domain.Post{OriginID: u + "#" + title, URL: u + "#" + title, Title: title})
		}
	}
	return posts, nil
}

func (f *fakeSource) calls(u string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.postsCalls[u]
}

// mockMetrics is a mock implementation of the Metrics interface
type mockMetrics struct {
	mock.Mock
}

func (m *mockMetrics) LinkState(state domain.LinkState) {
	m.Called(state)
}

func (m *mockMetrics) Fetch(duration time.Duration, ok bool) {
	m.Called(duration, ok)
}

func (m *mockMetrics) PostsLoaded(source domain.SourceName, count int) {
	m.Called(source, count)
}

// mockLogger is a mock implementation of the Logger interface
type mockLogger struct {
	mock.Mock
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *mockLogger) Info(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *mockLogger) Warn(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}

func (m *mockLogger) Error(msg string, fields map[string]interface{}) {
	m.Called(msg, fields)
}
