// ABOUTME: Candidate selection and loading of the selected candidate's posts
// ABOUTME: Posts are cached per candidate URL until the next reset

package preview

import (
	"context"
	"fmt"

	"digests-preview/core/domain"
	coreerrors "digests-preview/core/errors"
)

// SelectCandidate selects the candidate with url and publishes its posts,
// from the cache when they were loaded before. Unknown URLs are ignored.
// The result of a load is dropped when another candidate was selected
// meanwhile.
func (e *Engine) SelectCandidate(ctx context.Context, url string) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	s := e.sessionLocked()

	candidate, ok := e.findCandidateLocked(url)
	if !ok {
		e.mu.Unlock()
		return nil
	}
	load := e.beginSelectLocked(candidate)
	e.mu.Unlock()

	if !load {
		return nil
	}
	return e.loadPosts(ctx, s, candidate)
}

func (e *Engine) findCandidateLocked(url string) (domain.Candidate, bool) {
	for _, c := range e.candidates.Get() {
		if c.URL == url {
			return c, true
		}
	}
	return domain.Candidate{}, false
}

// beginSelectLocked publishes the selection. Reports whether posts still
// have to be loaded.
func (e *Engine) beginSelectLocked(candidate domain.Candidate) bool {
	e.selected.Set(candidate.URL)
	if posts, ok := e.cache.Get(candidate.URL); ok {
		e.posts.Set(posts)
		e.postsLoading.Set(false)
		return false
	}
	e.posts.Set([]domain.Post{})
	e.postsLoading.Set(true)
	return true
}

func (e *Engine) loadPosts(ctx context.Context, s session, candidate domain.Candidate) error {
	src, err := e.sources.Get(candidate.Source)
	if err != nil {
		return fmt.Errorf("load posts of %s: %w", candidate.URL, err)
	}

	posts, err := src.GetPosts(ctx, s.task, candidate.URL, candidate.Text)
	if coreerrors.IsAborted(err) {
		return nil
	}
	if err != nil {
		e.logger.Error("Failed to load posts", map[string]interface{}{
			"session": s.id,
			"url":     candidate.URL,
			"source":  string(candidate.Source),
			"error":   err.Error(),
		})
		return fmt.Errorf("load posts of %s: %w", candidate.URL, err)
	}
	if posts == nil {
		posts = []domain.Post{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.staleLocked(s) || e.selected.Get() != candidate.URL {
		return nil
	}
	e.posts.Set(posts)
	e.postsLoading.Set(false)
	e.cache.Set(candidate.URL, posts)
	e.metrics.PostsLoaded(candidate.Source, len(posts))
	return nil
}
