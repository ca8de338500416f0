// ABOUTME: Prometheus recorder for link states, document fetches and loaded posts
// ABOUTME: Collectors are registered on a caller supplied registry

package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"digests-preview/core/domain"
)

// Recorder implements interfaces.Metrics with Prometheus collectors
type Recorder struct {
	linkStates    *prometheus.CounterVec
	fetches       *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	posts         *prometheus.CounterVec
}

// NewRecorder registers the collectors against reg, or the default registerer when nil
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		linkStates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "preview_link_states_total",
			Help: "Link status writes partitioned by state.",
		}, []string{"state"}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "preview_fetches_total",
			Help: "Document fetches partitioned by result.",
		}, []string{"result"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "preview_fetch_duration_seconds",
			Help:    "Wall time of document fetches.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}),
		posts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "preview_posts_loaded_total",
			Help: "Posts loaded for selected candidates partitioned by source.",
		}, []string{"source"}),
	}
	for _, collector := range []prometheus.Collector{
		r.linkStates,
		r.fetches,
		r.fetchDuration,
		r.posts,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register preview collector: %w", err)
		}
	}
	return r, nil
}

// LinkState counts a status write
func (r *Recorder) LinkState(state domain.LinkState) {
	r.linkStates.WithLabelValues(string(state)).Inc()
}

// Fetch observes one document fetch
func (r *Recorder) Fetch(duration time.Duration, ok bool) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	r.fetches.WithLabelValues(result).Inc()
	if duration > 0 {
		r.fetchDuration.Observe(duration.Seconds())
	}
}

// PostsLoaded counts posts published for a candidate
func (r *Recorder) PostsLoaded(source domain.SourceName, count int) {
	if count > 0 {
		r.posts.WithLabelValues(string(source)).Add(float64(count))
	}
}
