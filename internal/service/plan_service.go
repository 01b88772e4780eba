package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/careplan-api/internal/dto"
	"github.com/noah-isme/careplan-api/internal/models"
	"github.com/noah-isme/careplan-api/internal/planning"
	appErrors "github.com/noah-isme/careplan-api/pkg/errors"
)

type planRepository interface {
	List(ctx context.Context) ([]models.Plan, error)
	FindByID(ctx context.Context, id string) (*models.Plan, error)
	Create(ctx context.Context, plan *models.Plan) error
	Update(ctx context.Context, plan *models.Plan) error
	Delete(ctx context.Context, id string) error
}

type optionChecker interface {
	Exists(ctx context.Context, optionType models.OptionType, label string) (bool, error)
}

type cacheEvictor interface {
	Invalidate(ctx context.Context, patterns ...string)
}

// PlanService implements plan CRUD with validation and ownership checks.
type PlanService struct {
	repo      planRepository
	options   optionChecker
	evictor   cacheEvictor
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPlanService constructs a PlanService. options and evictor are optional.
func NewPlanService(repo planRepository, options optionChecker, evictor cacheEvictor, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *PlanService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PlanService{
		repo:      repo,
		options:   options,
		evictor:   evictor,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// List returns every plan newest first. Without a session the list is empty.
func (s *PlanService) List(ctx context.Context, actor *models.JWTClaims) ([]models.Plan, error) {
	if actor == nil {
		return []models.Plan{}, nil
	}
	start := time.Now()
	plans, err := s.repo.List(ctx)
	s.metrics.ObserveDBQuery("plans_list", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list plans")
	}
	if plans == nil {
		plans = []models.Plan{}
	}
	return plans, nil
}

// Get returns a single plan.
func (s *PlanService) Get(ctx context.Context, actor *models.JWTClaims, id string) (*models.Plan, error) {
	if actor == nil {
		return nil, appErrors.ErrStaleSession
	}
	return s.find(ctx, id)
}

// Create validates and stores a new plan owned by the actor.
func (s *PlanService) Create(ctx context.Context, actor *models.JWTClaims, req dto.PlanRequest) (*models.Plan, error) {
	if actor == nil {
		return nil, appErrors.ErrStaleSession
	}
	plan, err := s.buildPlan(ctx, req)
	if err != nil {
		return nil, err
	}
	plan.OwnerID = actor.UserID
	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create plan")
	}
	s.evictDashboards(ctx)
	s.logger.Info("plan created", zap.String("plan_id", plan.ID), zap.String("owner_id", plan.OwnerID))
	return plan, nil
}

// Update replaces the mutable fields of a plan. Only the owner or an
// administrator may update; id, owner and creation time are preserved.
func (s *PlanService) Update(ctx context.Context, actor *models.JWTClaims, id string, req dto.PlanRequest) (*models.Plan, error) {
	if actor == nil {
		return nil, appErrors.ErrStaleSession
	}
	existing, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(*existing) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only the owner or an administrator may edit this plan")
	}
	plan, err := s.buildPlan(ctx, req)
	if err != nil {
		return nil, err
	}
	plan.ID = existing.ID
	plan.OwnerID = existing.OwnerID
	plan.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(ctx, plan); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "plan not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update plan")
	}
	s.evictDashboards(ctx)
	return plan, nil
}

// Delete removes a plan. Only the owner or an administrator may delete.
func (s *PlanService) Delete(ctx context.Context, actor *models.JWTClaims, id string) error {
	if actor == nil {
		return appErrors.ErrStaleSession
	}
	existing, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManage(*existing) {
		return appErrors.Clone(appErrors.ErrForbidden, "only the owner or an administrator may delete this plan")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "plan not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete plan")
	}
	s.evictDashboards(ctx)
	s.logger.Info("plan deleted", zap.String("plan_id", id), zap.String("actor_id", actor.UserID))
	return nil
}

func (s *PlanService) evictDashboards(ctx context.Context) {
	if s.evictor != nil {
		s.evictor.Invalidate(ctx, dashboardKeyPattern)
	}
}

func (s *PlanService) find(ctx context.Context, id string) (*models.Plan, error) {
	if strings.TrimSpace(id) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "plan id is required")
	}
	plan, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "plan not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load plan")
	}
	return plan, nil
}

// buildPlan validates req and returns the plan it describes. Nothing reaches
// the store unless every check passes.
func (s *PlanService) buildPlan(ctx context.Context, req dto.PlanRequest) (*models.Plan, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid plan payload")
	}
	if !req.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status %q", req.Status))
	}
	frequency := planning.NormalizeLabel(req.EvaluationFrequency)
	if !knownFrequency(frequency) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown evaluation frequency %q", req.EvaluationFrequency))
	}
	if req.StartDate.IsZero() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_date is required")
	}
	if !req.EndDate.IsZero() && req.EndDate.Before(req.StartDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end_date must not precede start_date")
	}

	plan := &models.Plan{
		Axis:                planning.NormalizeLabel(req.Axis),
		CareLine:            planning.NormalizeLabel(req.CareLine),
		Status:              req.Status,
		Supporters:          normalizeLabels(req.Supporters),
		Summary:             strings.TrimSpace(req.Summary),
		Goal:                strings.TrimSpace(req.Goal),
		EvaluationFrequency: frequency,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		Notes:               trimmedOrNil(req.Notes),
	}
	if plan.Axis == models.AxisQualification {
		plan.Categories = normalizeLabels(req.Categories)
	}
	if plan.Axis == models.AxisWorkProcess {
		plan.Cycle = trimmedOrNil(req.Cycle)
	}
	if err := requireFilled(plan); err != nil {
		return nil, err
	}

	if err := s.checkLabels(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// requireFilled rejects required fields that were blank once trimmed.
func requireFilled(plan *models.Plan) error {
	switch {
	case plan.Axis == "":
		return appErrors.Clone(appErrors.ErrValidation, "axis is required")
	case plan.CareLine == "":
		return appErrors.Clone(appErrors.ErrValidation, "care_line is required")
	case len(plan.Supporters) == 0:
		return appErrors.Clone(appErrors.ErrValidation, "at least one supporter is required")
	case plan.Summary == "":
		return appErrors.Clone(appErrors.ErrValidation, "summary is required")
	case plan.Goal == "":
		return appErrors.Clone(appErrors.ErrValidation, "goal is required")
	}
	return nil
}

func (s *PlanService) checkLabels(ctx context.Context, plan *models.Plan) error {
	if s.options == nil {
		return nil
	}
	check := func(optionType models.OptionType, label string) error {
		ok, err := s.options.Exists(ctx, optionType, label)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify options")
		}
		if !ok {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s %q is not a registered option", optionType, label))
		}
		return nil
	}
	if err := check(models.OptionTypeAxis, plan.Axis); err != nil {
		return err
	}
	if err := check(models.OptionTypeCareLine, plan.CareLine); err != nil {
		return err
	}
	for _, supporter := range plan.Supporters {
		if err := check(models.OptionTypeSupporter, supporter); err != nil {
			return err
		}
	}
	for _, category := range plan.Categories {
		if err := check(models.OptionTypeCategory, category); err != nil {
			return err
		}
	}
	return nil
}

func knownFrequency(value string) bool {
	for _, f := range models.EvaluationFrequencies {
		if f == value {
			return true
		}
	}
	return false
}

func normalizeLabels(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = planning.NormalizeLabel(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
