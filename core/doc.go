// Package core contains the link preview logic. It has no dependency on a
// transport or a UI and can be embedded in any front end.
//
// The core package is organized into several sub-packages:
//
// - domain: Link statuses and their transitions, candidates, posts, fetched documents
// - normalize: Turns user input into an absolute http(s) URL
// - source: Recognizers for feeds and known sites, and the ordered registry
// - preview: The engine resolving a link and publishing observable state
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (download, cache, HTTP, logger, metrics)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Every fetch of a preview belongs to one abortable download task
//
// # Usage Example
//
//	import (
//	    "digests-preview/core/preview"
//	    "digests-preview/core/source"
//	)
//
//	engine := preview.New(preview.Dependencies{
//	    Sources:    source.Default(),
//	    NewTask:    myTaskFactory, // implements interfaces.DownloadTaskFactory
//	    PostsCache: myPostsCache,  // implements interfaces.PostsCache
//	}, preview.Options{})
//
//	engine.Candidates().Subscribe(func(c []domain.Candidate) {
//	    render(c)
//	})
//	err := engine.SetURL(ctx, "example.com")
package core
