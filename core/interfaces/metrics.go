package interfaces

import (
	"time"

	"digests-preview/core/domain"
)

// Metrics records preview activity
type Metrics interface {
	// LinkState counts a state written to the link map
	LinkState(state domain.LinkState)

	// Fetch observes a document fetch; ok is false for non-2xx and transport errors
	Fetch(duration time.Duration, ok bool)

	// PostsLoaded counts posts loaded for a selected candidate
	PostsLoaded(source domain.SourceName, count int)
}

// NopMetrics discards every observation
type NopMetrics struct{}

func (NopMetrics) LinkState(domain.LinkState) {}
func (NopMetrics) Fetch(time.Duration, bool) {}
func (NopMetrics) PostsLoaded(domain.SourceName, int) {}
