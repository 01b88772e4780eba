package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/careplan-api/pkg/jobs"
)

const jobCacheInvalidate = "cache.invalidate"

// Cache key patterns shared by the dashboard and its invalidation paths.
const (
	dashboardKeyPrefix  = "dashboard"
	dashboardKeyPattern = dashboardKeyPrefix + ":*"
)

func dashboardUserPattern(userID string) string {
	return fmt.Sprintf("%s:%s:*", dashboardKeyPrefix, userID)
}

type patternInvalidator interface {
	Invalidate(ctx context.Context, patterns ...string) error
}

// CacheInvalidator evicts cache patterns on a background queue so mutations
// do not wait on Redis. Identical pending evictions collapse into one. When the
// queue is stopped or full it evicts inline.
type CacheInvalidator struct {
	cache  patternInvalidator
	queue  *jobs.Queue
	logger *zap.Logger
}

// CacheInvalidatorConfig tunes the backing worker queue.
type CacheInvalidatorConfig struct {
	Workers    int
	MaxRetries int
	RetryDelay time.Duration
}

// NewCacheInvalidator wires a jobs queue whose handler evicts cache patterns.
func NewCacheInvalidator(cache patternInvalidator, logger *zap.Logger, cfg CacheInvalidatorConfig) *CacheInvalidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	inv := &CacheInvalidator{cache: cache, logger: logger}
	router := jobs.NewRouter()
	router.Handle(jobCacheInvalidate, inv.handle)
	inv.queue = jobs.NewQueue("cache-invalidation", router.Dispatch, jobs.QueueConfig{
		Workers:    cfg.Workers,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Logger:     logger,
	})
	return inv
}

// Start launches the workers.
func (i *CacheInvalidator) Start(ctx context.Context) {
	i.queue.Start(ctx)
}

// Stop halts the workers.
func (i *CacheInvalidator) Stop() {
	i.queue.Stop()
}

// Stats exposes the queue counters.
func (i *CacheInvalidator) Stats() jobs.Stats {
	return i.queue.Stats()
}

// Invalidate schedules eviction of patterns. Failures are logged, never returned.
func (i *CacheInvalidator) Invalidate(ctx context.Context, patterns ...string) {
	if i == nil || i.cache == nil || len(patterns) == 0 {
		return
	}
	job := jobs.Job{
		Type:    jobCacheInvalidate,
		Key:     strings.Join(patterns, "|"),
		Payload: append([]string(nil), patterns...),
	}
	if err := i.queue.Enqueue(job); err != nil {
		i.logger.Debug("invalidating inline", zap.Strings("patterns", patterns), zap.Error(err))
		if err := i.cache.Invalidate(ctx, patterns...); err != nil {
			i.logger.Warn("cache invalidation failed", zap.Strings("patterns", patterns), zap.Error(err))
		}
	}
}

func (i *CacheInvalidator) handle(ctx context.Context, job jobs.Job) error {
	patterns, ok := job.Payload.([]string)
	if !ok {
		return fmt.Errorf("unexpected payload %T", job.Payload)
	}
	return i.cache.Invalidate(ctx, patterns...)
}
