package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/careplan-api/internal/models"
	"github.com/noah-isme/careplan-api/pkg/jobs"
)

const metricsNamespace = "careplan"

// runningMean accumulates a count and a total duration for snapshot averages.
type runningMean struct {
	count atomic.Uint64
	nanos atomic.Uint64
}

func (r *runningMean) add(d time.Duration) {
	r.count.Add(1)
	r.nanos.Add(uint64(d.Nanoseconds()))
}

func (r *runningMean) millis() float64 {
	n := r.count.Load()
	if n == 0 {
		return 0
	}
	return float64(r.nanos.Load()) / float64(n) / float64(time.Millisecond)
}

// MetricsService owns the Prometheus registry and keeps running totals for /metrics/snapshot.
type MetricsService struct {
	registry *prometheus.Registry
	handler  http.Handler

	httpDuration *prometheus.HistogramVec
	cacheOps     *prometheus.HistogramVec
	cacheLookups *prometheus.CounterVec
	dbDuration   *prometheus.HistogramVec
	cascades     *prometheus.CounterVec
	cascadePlans *prometheus.CounterVec

	requests  runningMean
	queries   runningMean
	hits      atomic.Uint64
	misses    atomic.Uint64
	cascadeN  atomic.Uint64
	cascadeKO atomic.Uint64

	queueMu sync.Mutex
	queue   func() jobs.Stats
}

// NewMetricsService registers the HTTP, cache, store and cascade collectors.
func NewMetricsService() *MetricsService {
	m := &MetricsService{registry: prometheus.NewRegistry()}

	m.httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route template and status.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	m.cacheOps = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "dashboard_cache_op_seconds",
		Help:      "Dashboard cache latency by operation.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25},
	}, []string{"op"})

	m.cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "dashboard_cache_lookups_total",
		Help:      "Dashboard cache lookups by result.",
	}, []string{"result"})

	m.dbDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "store_query_duration_seconds",
		Help:      "Plan store query latency by call site.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"query"})

	m.cascades = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "option_rename_cascades_total",
		Help:      "Option renames propagated to plans, by vocabulary and outcome.",
	}, []string{"type", "outcome"})

	m.cascadePlans = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "option_rename_cascade_plans_total",
		Help:      "Plans touched by option rename cascades, by outcome.",
	}, []string{"outcome"})

	queueGauge := func(name, help string, read func(jobs.Stats) float64) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      name,
			Help:      help,
		}, func() float64 {
			if stats, ok := m.queueStats(); ok {
				return read(stats)
			}
			return 0
		})
	}

	m.registry.MustRegister(
		m.httpDuration, m.cacheOps, m.cacheLookups, m.dbDuration, m.cascades, m.cascadePlans,
		queueGauge("invalidation_queue_pending", "Cache invalidations waiting for a worker.",
			func(s jobs.Stats) float64 { return float64(s.Pending) }),
		queueGauge("invalidation_queue_coalesced", "Cache invalidations absorbed by an identical pending one.",
			func(s jobs.Stats) float64 { return float64(s.Coalesced) }),
		queueGauge("invalidation_queue_dropped", "Cache invalidations abandoned after retries.",
			func(s jobs.Stats) float64 { return float64(s.Dropped) }),
		prometheus.NewGoCollector(),
	)
	m.handler = promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return m
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// WatchQueue publishes the counters of the cache invalidation queue.
func (m *MetricsService) WatchQueue(stats func() jobs.Stats) {
	if m == nil {
		return
	}
	m.queueMu.Lock()
	m.queue = stats
	m.queueMu.Unlock()
}

func (m *MetricsService) queueStats() (jobs.Stats, bool) {
	m.queueMu.Lock()
	read := m.queue
	m.queueMu.Unlock()
	if read == nil {
		return jobs.Stats{}, false
	}
	return read(), true
}

// ObserveHTTPRequest records one served request.
func (m *MetricsService) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
	m.requests.add(duration)
}

// RecordCacheOperation records one dashboard cache lookup.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheOps.WithLabelValues("get").Observe(duration.Seconds())
	if hit {
		m.hits.Add(1)
		m.cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	m.misses.Add(1)
	m.cacheLookups.WithLabelValues("miss").Inc()
}

// ObserveCacheWrite records one dashboard cache write.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheOps.WithLabelValues("set").Observe(duration.Seconds())
}

// ObserveDBQuery records plan store timing for one call site.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbDuration.WithLabelValues(label).Observe(duration.Seconds())
	m.queries.add(duration)
}

// RecordCascade counts one rename cascade and the plans it updated or failed on.
func (m *MetricsService) RecordCascade(optionType string, updated, failed int) {
	if m == nil {
		return
	}
	outcome := "complete"
	if failed > 0 {
		outcome = "partial"
		m.cascadeKO.Add(1)
	}
	m.cascadeN.Add(1)
	m.cascades.WithLabelValues(optionType, outcome).Inc()
	m.cascadePlans.WithLabelValues("updated").Add(float64(updated))
	m.cascadePlans.WithLabelValues("failed").Add(float64(failed))
}

// Snapshot returns the running totals.
func (m *MetricsService) Snapshot() models.SystemMetrics {
	if m == nil {
		return models.SystemMetrics{}
	}
	hits, misses := m.hits.Load(), m.misses.Load()
	var ratio float64
	if hits+misses > 0 {
		ratio = float64(hits) / float64(hits+misses)
	}
	snap := models.SystemMetrics{
		CacheHitRatio:            ratio,
		CacheHits:                hits,
		CacheMisses:              misses,
		RequestsTotal:            m.requests.count.Load(),
		AverageRequestDurationMs: m.requests.millis(),
		DBQueryCount:             m.queries.count.Load(),
		AverageDBQueryDurationMs: m.queries.millis(),
		CascadesTotal:            m.cascadeN.Load(),
		CascadeFailures:          m.cascadeKO.Load(),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
	if stats, ok := m.queueStats(); ok {
		snap.InvalidationsPending = stats.Pending
		snap.InvalidationsCoalesced = stats.Coalesced
	}
	return snap
}
