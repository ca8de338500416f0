// ABOUTME: Link resolution: normalization, source matching and one level of discovery
// ABOUTME: Every state write is checked against the session so a reset leaves no trace

package preview

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"digests-preview/core/domain"
	coreerrors "digests-preview/core/errors"
	"digests-preview/core/normalize"
)

// Resolve tracks raw as a new link of the current session and waits until
// it and every link discovered from it reach a final state. Results are
// published through the engine views. Cancellations caused by Reset are not
// errors; a failure to load posts of the auto-selected candidate is.
func (e *Engine) Resolve(ctx context.Context, raw string) error {
	s, err := e.currentSession()
	if err != nil {
		return err
	}
	if e.opts.ResolveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.ResolveTimeout)
		defer cancel()
	}
	return e.resolve(ctx, s, raw, 0)
}

// SetURL replaces the current preview with the one of raw
func (e *Engine) SetURL(ctx context.Context, raw string) error {
	e.Reset()
	return e.Resolve(ctx, raw)
}

func (e *Engine) resolve(ctx context.Context, s session, raw string, depth int) error {
	link, err := normalize.Normalize(raw)
	if err != nil {
		code, ok := coreerrors.LinkErrorOf(err)
		if !ok {
			code = domain.ErrInvalidURL
		}
		e.setLink(s, strings.TrimSpace(raw), domain.Invalid(code))
		return nil
	}

	if candidate, ok := e.sources.MatchURL(link); ok {
		return e.addCandidate(ctx, s, link, candidate)
	}

	if !e.setLink(s, link, domain.Status(domain.LinkLoading)) {
		return nil
	}

	start := time.Now()
	resp, err := s.task.Text(ctx, link)
	if coreerrors.IsAborted(err) {
		e.logger.Debug("Fetch aborted", map[string]interface{}{
			"session": s.id,
			"url":     link,
		})
		return nil
	}
	if err != nil {
		e.metrics.Fetch(time.Since(start), false)
		e.logger.Warn("Fetch failed", map[string]interface{}{
			"session": s.id,
			"url":     link,
			"error":   err.Error(),
		})
		e.setLink(s, link, domain.Status(domain.LinkUnloadable))
		return nil
	}
	e.metrics.Fetch(time.Since(start), resp.OK)

	if !resp.OK {
		e.logger.Debug("Link unloadable", map[string]interface{}{
			"session": s.id,
			"url":     link,
			"status":  resp.Status,
		})
		e.setLink(s, link, domain.Status(domain.LinkUnloadable))
		return nil
	}

	var selectErr error
	if candidate, ok := e.sources.MatchText(resp); ok {
		selectErr = e.addCandidate(ctx, s, link, candidate)
	} else {
		e.setLink(s, link, domain.Status(domain.LinkUnknown))
	}

	if depth >= MaxDepth {
		return selectErr
	}
	if err := e.discover(ctx, s, link, resp, depth+1); err != nil && selectErr == nil {
		selectErr = err
	}
	return selectErr
}

// discover resolves the links found in resp concurrently and waits for all
// of them. The first error is returned after every resolution finished.
func (e *Engine) discover(ctx context.Context, s session, link string, resp *domain.TextResponse, depth int) error {
	links := e.discoveredLinks(link, resp)
	if len(links) == 0 {
		return nil
	}

	e.logger.Debug("Following discovered links", map[string]interface{}{
		"session": s.id,
		"url":     link,
		"links":   len(links),
		"depth":   depth,
	})

	var g errgroup.Group
	g.SetLimit(e.opts.DiscoveryConcurrency)
	for _, found := range links {
		if e.isStale(s) {
			break
		}
		g.Go(func() error {
			return e.resolve(ctx, s, found, depth)
		})
	}
	return g.Wait()
}

// discoveredLinks returns the unique links of resp other than the document
// itself, capped at MaxDiscoveredLinks
func (e *Engine) discoveredLinks(link string, resp *domain.TextResponse) []string {
	seen := map[string]bool{link: true, resp.URL: true}
	var links []string
	for _, found := range e.sources.Links(resp) {
		if seen[found] {
			continue
		}
		seen[found] = true
		links = append(links, found)
		if len(links) == e.opts.MaxDiscoveredLinks {
			e.logger.Warn("Discovered links capped", map[string]interface{}{
				"url":   link,
				"limit": e.opts.MaxDiscoveredLinks,
			})
			break
		}
	}
	return links
}

// addCandidate marks link processed and appends candidate unless a candidate
// with the same URL exists. The first candidate of a session is selected.
func (e *Engine) addCandidate(ctx context.Context, s session, link string, candidate domain.Candidate) error {
	e.mu.Lock()
	if e.staleLocked(s) {
		e.mu.Unlock()
		return nil
	}

	if current, ok := e.links.Get().Get(link); !ok || current.State != domain.LinkProcessed {
		e.writeLinkLocked(s, link, domain.Status(domain.LinkProcessed))
	}

	list := e.candidates.Get()
	for _, c := range list {
		if c.URL == candidate.URL {
			e.mu.Unlock()
			return nil
		}
	}
	next := make([]domain.Candidate, len(list), len(list)+1)
	copy(next, list)
	next = append(next, candidate)
	e.candidates.Set(next)

	e.logger.Info("Candidate found", map[string]interface{}{
		"session": s.id,
		"url":     candidate.URL,
		"source":  string(candidate.Source),
		"title":   candidate.Title,
	})

	if len(next) != 1 {
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

func (e *Engine) isStale(s session) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.staleLocked(s)
}
