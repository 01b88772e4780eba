package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/careplan-api/internal/dto"
	"github.com/noah-isme/careplan-api/internal/models"
	"github.com/noah-isme/careplan-api/internal/planning"
	appErrors "github.com/noah-isme/careplan-api/pkg/errors"
)

var defaultHistoryPageSizes = []int{5, 10, 20, 50}

// HistoryServiceConfig lists the accepted page sizes.
type HistoryServiceConfig struct {
	PageSizes       []int
	DefaultPageSize int
}

// HistoryService serves the filtered, paginated plan history.
type HistoryService struct {
	plans   planLister
	metrics *MetricsService
	logger  *zap.Logger
	cfg     HistoryServiceConfig
}

// NewHistoryService constructs a HistoryService.
func NewHistoryService(plans planLister, metrics *MetricsService, logger *zap.Logger, cfg HistoryServiceConfig) *HistoryService {
	if len(cfg.PageSizes) == 0 {
		cfg.PageSizes = defaultHistoryPageSizes
	}
	sizes := append([]int(nil), cfg.PageSizes...)
	sort.Ints(sizes)
	cfg.PageSizes = sizes
	if !containsInt(cfg.PageSizes, cfg.DefaultPageSize) {
		cfg.DefaultPageSize = planning.DefaultPageSize
		if !containsInt(cfg.PageSizes, cfg.DefaultPageSize) {
			cfg.DefaultPageSize = cfg.PageSizes[0]
		}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryService{plans: plans, metrics: metrics, logger: logger, cfg: cfg}
}

// PageSizes returns the accepted page sizes in ascending order.
func (s *HistoryService) PageSizes() []int {
	return append([]int(nil), s.cfg.PageSizes...)
}

// List returns one page of the plans matching req.Filter. The page is
// clamped into range, and a filter change starts from the first page when
// the caller omits the page number.
func (s *HistoryService) List(ctx context.Context, actor *models.JWTClaims, req dto.HistoryRequest) (*dto.HistoryResponse, *models.Pagination, error) {
	size := req.PageSize
	if size == 0 {
		size = s.cfg.DefaultPageSize
	}
	if !containsInt(s.cfg.PageSizes, size) {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("page_size must be one of %v", s.cfg.PageSizes))
	}
	page := req.Page
	if page <= 0 {
		page = 1
	}

	plans, err := s.working(ctx, actor)
	if err != nil {
		return nil, nil, err
	}

	ws := planning.NewWorkspace(plans, size)
	ws.SetFilter(req.Filter)
	ws.SetPage(page)

	current := ws.CurrentPage()
	items := make([]dto.PlanListItem, 0, len(current))
	for _, plan := range current {
		items = append(items, dto.PlanListItem{Plan: plan, CanManage: actor.CanManage(plan)})
	}
	pagination := ws.Pagination()
	return &dto.HistoryResponse{
		Items:     items,
		Filter:    ws.Filter(),
		Choices:   planning.Choices(plans),
		PageSizes: s.PageSizes(),
	}, &pagination, nil
}

// Filtered returns every plan matching filter, newest first.
func (s *HistoryService) Filtered(ctx context.Context, actor *models.JWTClaims, filter models.PlanFilter) ([]models.Plan, error) {
	plans, err := s.working(ctx, actor)
	if err != nil {
		return nil, err
	}
	return planning.Filter(plans, filter), nil
}

func (s *HistoryService) working(ctx context.Context, actor *models.JWTClaims) ([]models.Plan, error) {
	if actor == nil {
		return []models.Plan{}, nil
	}
	start := time.Now()
	plans, err := s.plans.List(ctx)
	s.metrics.ObserveDBQuery("history_plans", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load plans")
	}
	return plans, nil
}

func containsInt(values []int, v int) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
