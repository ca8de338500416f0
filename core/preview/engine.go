// ABOUTME: Preview engine resolves user input into content source candidates
// ABOUTME: Owns the published state, the posts cache and the current download task

// Package preview turns a user supplied link into the list of content
// sources it points to. The engine normalizes the input, matches it
// against the source registry by URL shape or by fetched content,
// follows links found in fetched documents one level deep and publishes
// every step as observable state.
//
// All published values are written under the engine lock. Subscribers are
// called synchronously from inside that lock and must not call back into
// the engine.
package preview

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"digests-preview/core/domain"
	"digests-preview/core/interfaces"
	"digests-preview/core/source"
	"digests-preview/pkg/observable"
)

// MaxDepth is how deep links found in fetched documents are followed.
// The input link has depth 0.
const MaxDepth = 1

const (
	defaultMaxDiscoveredLinks   = 50
	defaultDiscoveryConcurrency = 8
)

// ErrClosed is returned by operations on a closed engine
var ErrClosed = errors.New("preview engine closed")

// Options bound the work done for one input
type Options struct {
	// MaxDiscoveredLinks caps links followed from one document, 0 means 50
	MaxDiscoveredLinks int

	// DiscoveryConcurrency caps concurrent resolutions of discovered links, 0 means 8
	DiscoveryConcurrency int

	// ResolveTimeout bounds each Resolve call when positive
	ResolveTimeout time.Duration
}

// Dependencies are the collaborators of an engine. NewTask and PostsCache
// are required; the rest fall back to defaults.
type Dependencies struct {
	Sources    *source.Registry
	NewTask    interfaces.DownloadTaskFactory
	PostsCache interfaces.PostsCache
	Logger     interfaces.Logger
	Metrics    interfaces.Metrics
}

// Engine resolves links and publishes the result
type Engine struct {
	sources *source.Registry
	newTask interfaces.DownloadTaskFactory
	cache   interfaces.PostsCache
	logger  interfaces.Logger
	metrics interfaces.Metrics
	opts    Options

	mu         sync.Mutex
	task       interfaces.DownloadTask
	generation uint64
	sessionID  string
	closed     bool

	links        *observable.Value[LinkSnapshot]
	candidates   *observable.Value[[]domain.Candidate]
	selected     *observable.Value[string]
	posts        *observable.Value[[]domain.Post]
	postsLoading *observable.Value[bool]

	urlError          observable.Readable[domain.LinkError]
	candidatesLoading observable.Readable[bool]
}

// session identifies the state a resolution belongs to. Writes from an
// older session are dropped.
type session struct {
	generation uint64
	id         string
	task       interfaces.DownloadTask
}

// New creates an engine with empty state and a fresh download task
func New(deps Dependencies, opts Options) *Engine {
	if deps.NewTask == nil {
		panic("preview: Dependencies.NewTask is required")
	}
	if deps.PostsCache == nil {
		panic("preview: Dependencies.PostsCache is required")
	}
	if deps.Sources == nil {
		deps.Sources = source.Default()
	}
	if deps.Logger == nil {
		deps.Logger = interfaces.NopLogger{}
	}
	if deps.Metrics == nil {
		deps.Metrics = interfaces.NopMetrics{}
	}
	if opts.MaxDiscoveredLinks <= 0 {
		opts.MaxDiscoveredLinks = defaultMaxDiscoveredLinks
	}
	if opts.DiscoveryConcurrency <= 0 {
		opts.DiscoveryConcurrency = defaultDiscoveryConcurrency
	}

	e := &Engine{
		sources:      deps.Sources,
		newTask:      deps.NewTask,
		cache:        deps.PostsCache,
		logger:       deps.Logger,
		metrics:      deps.Metrics,
		opts:         opts,
		task:         deps.NewTask(),
		sessionID:    uuid.NewString(),
		links:        observable.NewValue(LinkSnapshot{}),
		candidates:   observable.NewValue([]domain.Candidate{}),
		selected:     observable.NewValue(""),
		posts:        observable.NewValue([]domain.Post{}),
		postsLoading: observable.NewValue(false),
	}
	e.urlError = observable.Derive[LinkSnapshot](e.links, urlError)
	e.candidatesLoading = observable.Derive[LinkSnapshot](e.links, anyLoading)
	return e
}

// Links publishes the status of every tracked link
func (e *Engine) Links() observable.Readable[LinkSnapshot] {
	return e.links
}

// Candidates publishes recognized sources in discovery order.
// Slices are shared and must not be modified.
func (e *Engine) Candidates() observable.Readable[[]domain.Candidate] {
	return e.candidates
}

// Selected publishes the URL of the selected candidate, empty when none
func (e *Engine) Selected() observable.Readable[string] {
	return e.selected
}

// Posts publishes the posts of the selected candidate
func (e *Engine) Posts() observable.Readable[[]domain.Post] {
	return e.posts
}

// PostsLoading is true while posts of the selected candidate are fetched
func (e *Engine) PostsLoading() observable.Readable[bool] {
	return e.postsLoading
}

// URLError publishes the error of the first link: its validation error when
// invalid, ErrUnloadable when it could not be loaded, empty otherwise
func (e *Engine) URLError() observable.Readable[domain.LinkError] {
	return e.urlError
}

// CandidatesLoading is true while any link is being fetched
func (e *Engine) CandidatesLoading() observable.Readable[bool] {
	return e.candidatesLoading
}

// Reset clears the published state and the posts cache, aborts every fetch
// of the current session and starts a new one
func (e *Engine) Reset() {
	e.mu.Lock()
	old := e.task
	if !e.closed {
		e.task = e.newTask()
	}
	e.generation++
	e.sessionID = uuid.NewString()

	e.links.Set(LinkSnapshot{})
	e.candidates.Set([]domain.Candidate{})
	e.selected.Set("")
	e.posts.Set([]domain.Post{})
	e.postsLoading.Set(false)
	e.cache.Flush()
	sessionID := e.sessionID
	e.mu.Unlock()

	old.AbortAll()
	e.logger.Debug("Preview reset", map[string]interface{}{
		"session": sessionID,
	})
}

// Close aborts every fetch. Later calls return ErrClosed.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.generation++
	task := e.task
	e.mu.Unlock()

	task.AbortAll()
}

// currentSession returns the session new work belongs to
func (e *Engine) currentSession() (session, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return session{}, ErrClosed
	}
	return e.sessionLocked(), nil
}

func (e *Engine) sessionLocked() session {
	return session{generation: e.generation, id: e.sessionID, task: e.task}
}

// staleLocked reports whether s was reset or closed since it started
func (e *Engine) staleLocked(s session) bool {
	return e.closed || e.generation != s.generation
}

// writeLinkLocked stores status for url unless s is stale or the state
// machine forbids the move. Reports whether the write happened.
func (e *Engine) writeLinkLocked(s session, url string, status domain.LinkStatus) bool {
	if e.staleLocked(s) {
		return false
	}
	links := e.links.Get()
	var from domain.LinkState
	if current, ok := links.Get(url); ok {
		from = current.State
	}
	if !domain.CanTransition(from, status.State) {
		e.logger.Debug("Link transition refused", map[string]interface{}{
			"session": s.id,
			"url":     url,
			"from":    string(from),
			"to":      string(status.State),
		})
		return false
	}
	e.links.Set(links.with(url, status))
	e.metrics.LinkState(status.State)
	return true
}

// setLink is writeLinkLocked taking the lock
func (e *Engine) setLink(s session, url string, status domain.LinkStatus) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.writeLinkLocked(s, url, status)
}
