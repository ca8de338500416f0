// Package interfaces defines the core interfaces used throughout the application.
// These interfaces allow for dependency injection and make the code testable.
package interfaces

import "digests-preview/core/domain"

// PostsCache stores the posts loaded for a candidate URL.
// Entries live until Flush; there is no expiration.
//
// Example usage:
//
//	if posts, ok := cache.Get(url); ok {
//		return posts
//	}
//	cache.Set(url, posts)
//
//	// on reset
//	cache.Flush()
type PostsCache interface {
	// Get returns the cached posts and whether the URL was cached
	Get(url string) ([]domain.Post, bool)

	// Set stores posts for the URL
	Set(url string, posts []domain.Post)

	// Flush drops every entry
	Flush()
}
