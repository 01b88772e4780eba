package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/careplan-api/pkg/jobs"
)

func TestMetricsServiceSnapshot(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/plans", http.StatusOK, 20*time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.RecordCascade("apoiador", 3, 1)

	snap := m.Snapshot()
	assert.EqualValues(t, 1, snap.RequestsTotal)
	assert.InDelta(t, 0.5, snap.CacheHitRatio, 0.0001)
	assert.EqualValues(t, 1, snap.CascadesTotal)
	assert.EqualValues(t, 1, snap.CascadeFailures)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "careplan_option_rename_cascades_total")
	assert.Contains(t, rec.Body.String(), `careplan_dashboard_cache_lookups_total{result="hit"} 1`)
}

func TestMetricsServiceWatchesQueue(t *testing.T) {
	m := NewMetricsService()
	assert.Zero(t, m.Snapshot().InvalidationsPending)

	m.WatchQueue(func() jobs.Stats { return jobs.Stats{Pending: 2, Coalesced: 5} })
	snap := m.Snapshot()
	assert.Equal(t, 2, snap.InvalidationsPending)
	assert.EqualValues(t, 5, snap.InvalidationsCoalesced)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), "careplan_invalidation_queue_pending 2")
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	assert.NotPanics(t, func() {
		m.ObserveDBQuery("plans", time.Millisecond)
		m.RecordCascade("eixo", 1, 0)
		m.WatchQueue(nil)
		_ = m.Snapshot()
	})
}
