// ABOUTME: In-memory posts cache backed by patrickmn/go-cache
// ABOUTME: Entries never expire and live until the preview session is reset

package memory

import (
	gocache "github.com/patrickmn/go-cache"

	"digests-preview/core/domain"
)

// PostsCache implements interfaces.PostsCache. Keys are candidate URLs.
type PostsCache struct {
	items *gocache.Cache
}

// NewPostsCache creates an empty cache
func NewPostsCache() *PostsCache {
	return &PostsCache{items: gocache.New(gocache.NoExpiration, 0)}
}

// Get returns a copy of the posts stored for url
func (c *PostsCache) Get(url string) ([]domain.Post, bool) {
	value, ok := c.items.Get(url)
	if !ok {
		return nil, false
	}
	posts, ok := value.([]domain.Post)
	if !ok {
		return nil, false
	}
	return clonePosts(posts), true
}

// Set stores posts for url, replacing any previous entry
func (c *PostsCache) Set(url string, posts []domain.Post) {
	c.items.Set(url, clonePosts(posts), gocache.NoExpiration)
}

// Flush removes every entry
func (c *PostsCache) Flush() {
	c.items.Flush()
}

// Len reports how many candidate URLs are cached
func (c *PostsCache) Len() int {
	return c.items.ItemCount()
}

// clonePosts copies the slice so callers cannot mutate cached entries.
// An empty result is kept as a non-nil slice to distinguish it from a miss.
func clonePosts(posts []domain.Post) []domain.Post {
	out := make([]domain.Post, len(posts))
	for i, p := range posts {
		p.Media = append([]string(nil), p.Media...)
		out[i] = p
	}
	return out
}
