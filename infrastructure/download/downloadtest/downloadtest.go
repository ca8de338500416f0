// ABOUTME: Scripted download tasks for tests of code that fetches documents
// ABOUTME: Requests are matched against expectations, optionally held until released

// Package downloadtest provides a DownloadTask double whose responses are
// scripted in advance. Every task created by one Script shares its
// expectations but has its own abort domain, so code that swaps tasks on
// reset can be tested against a single script.
package downloadtest

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"digests-preview/core/domain"
	coreerrors "digests-preview/core/errors"
	"digests-preview/core/interfaces"
)

// Script holds the expected requests shared by its tasks
type Script struct {
	mu      sync.Mutex
	expects []*Expectation
	calls   []string
	tasks   []*Task
}

// New creates an empty script
func New() *Script {
	return &Script{}
}

// Expect registers a request for url answered with 200 and an empty body
// unless configured otherwise. Each expectation serves one request.
func (s *Script) Expect(url string) *Expectation {
	gate := make(chan struct{})
	close(gate)
	e := &Expectation{
		script:  s,
		url:     url,
		status:  http.StatusOK,
		gate:    gate,
		started: make(chan struct{}),
	}
	s.mu.Lock()
	s.expects = append(s.expects, e)
	s.mu.Unlock()
	return e
}

// NewTask creates a task bound to the script
func (s *Script) NewTask() *Task {
	t := &Task{script: s, done: make(chan struct{})}
	s.mu.Lock()
	s.tasks = append(s.tasks, t)
	s.mu.Unlock()
	return t
}

// Factory returns a DownloadTaskFactory producing script tasks
func (s *Script) Factory() interfaces.DownloadTaskFactory {
	return func() interfaces.DownloadTask {
		return s.NewTask()
	}
}

// Calls lists requested URLs in arrival order
func (s *Script) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// Pending lists URLs of expectations that were never requested
func (s *Script) Pending() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var pending []string
	for _, e := range s.expects {
		if !e.used {
			pending = append(pending, e.url)
		}
	}
	return pending
}

// Tasks lists every task created so far, oldest first
func (s *Script) Tasks() []*Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*Task(nil), s.tasks...)
}

func (s *Script) take(url string) *Expectation {
	for _, e := range s.expects {
		if !e.used && e.url == url {
			e.used = true
			return e
		}
	}
	return nil
}

// Expectation is one scripted request
type Expectation struct {
	script      *Script
	url         string
	status      int
	body        string
	contentType string
	finalURL    string
	err         error
	used        bool
	gate        chan struct{}
	started     chan struct{}
	release     sync.Once
}

// Respond sets the response status and body
func (e *Expectation) Respond(status int, body string) *Expectation {
	e.script.mu.Lock()
	e.status = status
	e.body = body
	e.script.mu.Unlock()
	return e
}

// ContentType sets the response Content-Type
func (e *Expectation) ContentType(contentType string) *Expectation {
	e.script.mu.Lock()
	e.contentType = contentType
	e.script.mu.Unlock()
	return e
}

// RedirectTo makes the response report a different final URL
func (e *Expectation) RedirectTo(finalURL string) *Expectation {
	e.script.mu.Lock()
	e.finalURL = finalURL
	e.script.mu.Unlock()
	return e
}

// Fail makes the request fail with err instead of responding
func (e *Expectation) Fail(err error) *Expectation {
	e.script.mu.Lock()
	e.err = err
	e.script.mu.Unlock()
	return e
}

// Wait holds the request until the returned function is called with the
// response to deliver.
func (e *Expectation) Wait() func(status int, body string) {
	gate := make(chan struct{})
	e.script.mu.Lock()
	e.gate = gate
	e.script.mu.Unlock()
	return func(status int, body string) {
		e.release.Do(func() {
			e.Respond(status, body)
			close(gate)
		})
	}
}

// Started is closed once the request arrives
func (e *Expectation) Started() <-chan struct{} {
	return e.started
}

// Task is a DownloadTask serving a Script
type Task struct {
	script  *Script
	mu      sync.Mutex
	aborted bool
	done    chan struct{}
}

// Text answers from the first unused expectation for url
func (t *Task) Text(ctx context.Context, url string) (*domain.TextResponse, error) {
	if t.Aborted() {
		return nil, &coreerrors.AbortedError{URL: url}
	}

	s := t.script
	s.mu.Lock()
	s.calls = append(s.calls, url)
	e := s.take(url)
	var gate chan struct{}
	if e != nil {
		gate = e.gate
	}
	s.mu.Unlock()
	if e == nil {
		return nil, fmt.Errorf("unexpected request %s", url)
	}
	close(e.started)

	select {
	case <-gate:
	case <-t.done:
		return nil, &coreerrors.AbortedError{URL: url}
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if t.Aborted() {
		return nil, &coreerrors.AbortedError{URL: url}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if e.err != nil {
		return nil, e.err
	}
	finalURL := e.finalURL
	if finalURL == "" {
		finalURL = url
	}
	return &domain.TextResponse{
		URL:         finalURL,
		OK:          e.status >= 200 && e.status < 300,
		Status:      e.status,
		ContentType: e.contentType,
		Text:        e.body,
	}, nil
}

// AbortAll fails every pending and future request of this task
func (t *Task) AbortAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.aborted {
		t.aborted = true
		close(t.done)
	}
}

// Aborted reports whether AbortAll was called
func (t *Task) Aborted() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.aborted
}
