package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"digests-preview/core/domain"
	"digests-preview/core/interfaces"
)

var _ interfaces.Metrics = (*Recorder)(nil)

// TestRecorderRecordsMetrics ensures counters and histograms follow the calls.
func TestRecorderRecordsMetrics(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	rec, err := NewRecorder(reg)
	require.NoError(t, err)

	rec.LinkState(domain.LinkLoading)
	rec.LinkState(domain.LinkProcessed)
	rec.LinkState(domain.LinkLoading)
	rec.Fetch(120*time.Millisecond, true)
	rec.Fetch(0, false)
	rec.PostsLoaded("rss", 12)
	rec.PostsLoaded("rss", 0)

	require.Equal(t, 2.0, testutil.ToFloat64(rec.linkStates.WithLabelValues("loading")))
	require.Equal(t, 1.0, testutil.ToFloat64(rec.linkStates.WithLabelValues("processed")))
	require.Equal(t, 1.0, testutil.ToFloat64(rec.fetches.WithLabelValues("ok")))
	require.Equal(t, 1.0, testutil.ToFloat64(rec.fetches.WithLabelValues("failed")))
	require.Equal(t, 12.0, testutil.ToFloat64(rec.posts.WithLabelValues("rss")))
	require.Equal(t, 1, testutil.CollectAndCount(rec.fetchDuration, "preview_fetch_duration_seconds"))
}

// TestRecorderDuplicateRegistration surfaces registry conflicts.
func TestRecorderDuplicateRegistration(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	_, err := NewRecorder(reg)
	require.NoError(t, err)

	_, err = NewRecorder(reg)
	require.Error(t, err)
}
