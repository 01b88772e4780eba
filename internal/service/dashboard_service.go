package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/careplan-api/internal/dto"
	"github.com/noah-isme/careplan-api/internal/models"
	"github.com/noah-isme/careplan-api/internal/planning"
	appErrors "github.com/noah-isme/careplan-api/pkg/errors"
)

type planLister interface {
	List(ctx context.Context) ([]models.Plan, error)
}

// DashboardServiceConfig tunes dashboard behaviour.
type DashboardServiceConfig struct {
	CacheTTL    time.Duration
	RecentLimit int
}

// DashboardService composes dashboard aggregates over the plan collection.
type DashboardService struct {
	plans   planLister
	cache   *CacheService
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
	cfg     DashboardServiceConfig
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(plans planLister, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cfg DashboardServiceConfig) *DashboardService {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 5 * time.Minute
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		plans:   plans,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
		cfg:     cfg,
	}
}

// Summary returns the dashboard for one care line (or all of them) and
// reports whether it was served from cache. Without a session the dashboard
// is computed over an empty collection.
func (s *DashboardService) Summary(ctx context.Context, actor *models.JWTClaims, careLine string) (*dto.DashboardResponse, bool, error) {
	careLine = models.PlanFilter{CareLine: careLine}.Normalized().CareLine
	if actor == nil {
		return s.compose(nil, careLine), false, nil
	}

	key := fmt.Sprintf("%s:%s:%s", dashboardKeyPrefix, actor.UserID, careLine)
	value, hit, err := s.cache.Remember(ctx, key, &dto.DashboardResponse{}, s.cfg.CacheTTL, func(ctx context.Context) (interface{}, error) {
		plans, err := s.load(ctx)
		if err != nil {
			return nil, err
		}
		return s.compose(plans, careLine), nil
	})
	if err != nil {
		return nil, false, err
	}
	return value.(*dto.DashboardResponse), hit, nil
}

// Aggregate groups the plans matching req.Filter by one dimension.
func (s *DashboardService) Aggregate(ctx context.Context, actor *models.JWTClaims, req dto.AggregateRequest) (*dto.AggregateResponse, error) {
	if !req.Dimension.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown dimension %q", req.Dimension))
	}
	var plans []models.Plan
	if actor != nil {
		var err error
		if plans, err = s.load(ctx); err != nil {
			return nil, err
		}
	}
	filtered := planning.Filter(plans, req.Filter)
	return &dto.AggregateResponse{
		Dimension: req.Dimension,
		Total:     len(filtered),
		Buckets:   planning.Aggregate(filtered, req.Dimension),
	}, nil
}

func (s *DashboardService) load(ctx context.Context) ([]models.Plan, error) {
	start := time.Now()
	plans, err := s.plans.List(ctx)
	s.metrics.ObserveDBQuery("dashboard_plans", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load plans")
	}
	return plans, nil
}

func (s *DashboardService) compose(plans []models.Plan, careLine string) *dto.DashboardResponse {
	filtered := planning.Filter(plans, models.PlanFilter{CareLine: careLine})
	return &dto.DashboardResponse{
		CareLine:    careLine,
		GeneratedAt: s.now().UTC(),
		Summary:     planning.Summarize(filtered, s.cfg.RecentLimit),
	}
}
