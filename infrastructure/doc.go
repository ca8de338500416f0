// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package. These implementations handle external concerns
// such as fetching documents, caching, logging and metrics.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: Posts cache backed by patrickmn/go-cache
// - download: Abortable download tasks with pacing and charset decoding
// - download/downloadtest: Scripted download tasks for tests
// - http/standard: Standard library HTTP client with retry logic
// - logger/logrus: Structured logger backed by sirupsen/logrus
// - metrics: Prometheus recorder
//
// # Design Philosophy
//
// Infrastructure components are designed to be:
// - Pluggable: Easy to swap implementations
// - Configurable: Accept configuration objects
// - Testable: Include both unit and integration tests
package infrastructure
