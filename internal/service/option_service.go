package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/noah-isme/careplan-api/internal/dto"
	"github.com/noah-isme/careplan-api/internal/models"
	"github.com/noah-isme/careplan-api/internal/planning"
	appErrors "github.com/noah-isme/careplan-api/pkg/errors"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

type optionRepository interface {
	List(ctx context.Context) ([]models.ConfigOption, error)
	Exists(ctx context.Context, optionType models.OptionType, label string) (bool, error)
	Create(ctx context.Context, option *models.ConfigOption) error
	Rename(ctx context.Context, optionType models.OptionType, oldLabel, newLabel string) error
	Delete(ctx context.Context, optionType models.OptionType, label string) error
}

type planLabelRepository interface {
	RenameScalar(ctx context.Context, optionType models.OptionType, oldLabel, newLabel string) (int64, error)
	ListReferencing(ctx context.Context, optionType models.OptionType, label string) ([]models.Plan, error)
	UpdateLabels(ctx context.Context, id string, optionType models.OptionType, labels []string) error
}

// OptionService manages the controlled vocabularies and propagates renames
// into the plans that reference them.
type OptionService struct {
	repo      optionRepository
	plans     planLabelRepository
	evictor   cacheEvictor
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewOptionService constructs an OptionService.
func NewOptionService(repo optionRepository, plans planLabelRepository, evictor cacheEvictor, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *OptionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OptionService{
		repo:      repo,
		plans:     plans,
		evictor:   evictor,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// List returns every vocabulary's labels. Without a session the editable
// vocabularies are empty.
func (s *OptionService) List(ctx context.Context, actor *models.JWTClaims) (*dto.OptionCatalog, error) {
	catalog := &dto.OptionCatalog{
		Axes:                  []string{},
		CareLines:             []string{},
		Supporters:            []string{},
		Categories:            []string{},
		EvaluationFrequencies: append([]string(nil), models.EvaluationFrequencies...),
		Statuses:              make([]string, 0, len(models.PlanStatuses)),
	}
	for _, status := range models.PlanStatuses {
		catalog.Statuses = append(catalog.Statuses, string(status))
	}
	if actor == nil {
		return catalog, nil
	}

	options, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list options")
	}
	for _, option := range options {
		switch option.Type {
		case models.OptionTypeAxis:
			catalog.Axes = append(catalog.Axes, option.Label)
		case models.OptionTypeCareLine:
			catalog.CareLines = append(catalog.CareLines, option.Label)
		case models.OptionTypeSupporter:
			catalog.Supporters = append(catalog.Supporters, option.Label)
		case models.OptionTypeCategory:
			catalog.Categories = append(catalog.Categories, option.Label)
		}
	}
	for _, labels := range [][]string{catalog.Axes, catalog.CareLines, catalog.Supporters, catalog.Categories} {
		sort.Strings(labels)
	}
	return catalog, nil
}

// Add normalises the label and registers it. Collisions yield DUPLICATE_LABEL.
func (s *OptionService) Add(ctx context.Context, actor *models.JWTClaims, req dto.AddOptionRequest) (*models.ConfigOption, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid option payload")
	}
	if !req.Type.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown option type %q", req.Type))
	}
	label := planning.NormalizeLabel(req.Label)
	if label == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "label is required")
	}

	exists, err := s.repo.Exists(ctx, req.Type, label)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check option")
	}
	if exists {
		return nil, duplicateLabel(req.Type, label)
	}

	option := &models.ConfigOption{Type: req.Type, Label: label}
	if err := s.repo.Create(ctx, option); err != nil {
		if hasPQCode(err, pqUniqueViolation) {
			return nil, duplicateLabel(req.Type, label)
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create option")
	}
	s.audit("option.add", actor, zap.String("type", string(req.Type)), zap.String("label", label))
	return option, nil
}

// Rename changes a label and rewrites every plan referencing it. Scalar
// fields are rewritten by one update; set fields are read and written per
// plan, so a failure part way leaves a partial result. That case returns the
// result together with PARTIAL_CASCADE_FAILURE carrying the cascade report,
// and RetryCascade finishes the job.
func (s *OptionService) Rename(ctx context.Context, actor *models.JWTClaims, optionType models.OptionType, oldLabel, newLabel string) (*dto.RenameOptionResult, error) {
	result, err := s.prepareRename(actor, optionType, oldLabel, newLabel)
	if err != nil || result.OldLabel == result.NewLabel {
		return result, err
	}
	oldLabel, newLabel = result.OldLabel, result.NewLabel

	newExists, err := s.exists(ctx, optionType, newLabel)
	if err != nil {
		return nil, err
	}
	if newExists {
		return nil, duplicateLabel(optionType, newLabel)
	}
	if err := s.repo.Rename(ctx, optionType, oldLabel, newLabel); err != nil {
		if hasPQCode(err, pqUniqueViolation) {
			return nil, duplicateLabel(optionType, newLabel)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s %q not found", optionType, oldLabel))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to rename option")
	}
	result.OptionRenamed = true
	return s.finishRename(ctx, actor, "option.rename", result)
}

// RetryCascade re-runs the plan rewrite of a rename whose option update
// already happened: newLabel must be registered and oldLabel must not.
// Plans already carrying the new label are left untouched.
func (s *OptionService) RetryCascade(ctx context.Context, actor *models.JWTClaims, optionType models.OptionType, oldLabel, newLabel string) (*dto.RenameOptionResult, error) {
	result, err := s.prepareRename(actor, optionType, oldLabel, newLabel)
	if err != nil || result.OldLabel == result.NewLabel {
		return result, err
	}
	oldLabel, newLabel = result.OldLabel, result.NewLabel

	oldExists, err := s.exists(ctx, optionType, oldLabel)
	if err != nil {
		return nil, err
	}
	if oldExists {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%s %q is still registered, rename it first", optionType, oldLabel))
	}
	newExists, err := s.exists(ctx, optionType, newLabel)
	if err != nil {
		return nil, err
	}
	if !newExists {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s %q not found", optionType, newLabel))
	}
	return s.finishRename(ctx, actor, "option.rename_retry", result)
}

func (s *OptionService) prepareRename(actor *models.JWTClaims, optionType models.OptionType, oldLabel, newLabel string) (*dto.RenameOptionResult, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if !optionType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown option type %q", optionType))
	}
	oldLabel = strings.TrimSpace(oldLabel)
	newLabel = planning.NormalizeLabel(newLabel)
	if oldLabel == "" || newLabel == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "both labels are required")
	}
	return &dto.RenameOptionResult{
		Type:     optionType,
		OldLabel: oldLabel,
		NewLabel: newLabel,
		Cascade:  dto.CascadeReport{Updated: []string{}, Failed: []dto.CascadeFailure{}},
	}, nil
}

func (s *OptionService) exists(ctx context.Context, optionType models.OptionType, label string) (bool, error) {
	ok, err := s.repo.Exists(ctx, optionType, label)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check option")
	}
	return ok, nil
}

func (s *OptionService) finishRename(ctx context.Context, actor *models.JWTClaims, action string, result *dto.RenameOptionResult) (*dto.RenameOptionResult, error) {
	if err := s.cascade(ctx, result.Type, result.OldLabel, result.NewLabel, &result.Cascade); err != nil {
		return nil, err
	}
	s.metrics.RecordCascade(string(result.Type), len(result.Cascade.Updated)+int(result.Cascade.ScalarRows), len(result.Cascade.Failed))
	if s.evictor != nil {
		s.evictor.Invalidate(ctx, dashboardKeyPattern)
	}
	s.audit(action, actor,
		zap.String("type", string(result.Type)),
		zap.String("old_label", result.OldLabel),
		zap.String("new_label", result.NewLabel),
		zap.Bool("option_renamed", result.OptionRenamed),
		zap.Int64("scalar_rows", result.Cascade.ScalarRows),
		zap.Int("updated", len(result.Cascade.Updated)),
		zap.Int("failed", len(result.Cascade.Failed)),
	)

	if !result.Cascade.Complete() {
		return result, appErrors.WithDetails(appErrors.ErrPartialCascade, result.Cascade)
	}
	return result, nil
}

func (s *OptionService) cascade(ctx context.Context, optionType models.OptionType, oldLabel, newLabel string, report *dto.CascadeReport) error {
	if !optionType.SetValued() {
		rows, err := s.plans.RenameScalar(ctx, optionType, oldLabel, newLabel)
		if err != nil {
			s.logger.Error("rename cascade failed", zap.String("type", string(optionType)), zap.Error(err))
			return appErrors.WithDetails(appErrors.ErrPartialCascade, *report)
		}
		report.ScalarRows = rows
		return nil
	}

	plans, err := s.plans.ListReferencing(ctx, optionType, oldLabel)
	if err != nil {
		s.logger.Error("rename cascade lookup failed", zap.String("type", string(optionType)), zap.Error(err))
		return appErrors.WithDetails(appErrors.ErrPartialCascade, *report)
	}
	for _, plan := range plans {
		current := plan.Supporters
		if optionType == models.OptionTypeCategory {
			current = plan.Categories
		}
		labels, changed := planning.ReplaceLabel(current, oldLabel, newLabel)
		if !changed {
			continue
		}
		if err := s.plans.UpdateLabels(ctx, plan.ID, optionType, labels); err != nil {
			s.logger.Warn("rename cascade skipped plan", zap.String("plan_id", plan.ID), zap.Error(err))
			report.Failed = append(report.Failed, dto.CascadeFailure{PlanID: plan.ID, Error: err.Error()})
			continue
		}
		report.Updated = append(report.Updated, plan.ID)
	}
	return nil
}

// Delete removes an option without checking for references. A store-level
// foreign key rejection surfaces as OPTION_IN_USE.
func (s *OptionService) Delete(ctx context.Context, actor *models.JWTClaims, optionType models.OptionType, label string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if !optionType.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown option type %q", optionType))
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return appErrors.Clone(appErrors.ErrValidation, "label is required")
	}
	if err := s.repo.Delete(ctx, optionType, label); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s %q not found", optionType, label))
		case hasPQCode(err, pqForeignKeyViolation):
			return appErrors.Wrap(err, appErrors.ErrOptionInUse.Code, appErrors.ErrOptionInUse.Status, appErrors.ErrOptionInUse.Message)
		default:
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete option")
		}
	}
	if s.evictor != nil {
		s.evictor.Invalidate(ctx, dashboardKeyPattern)
	}
	s.audit("option.delete", actor, zap.String("type", string(optionType)), zap.String("label", label))
	return nil
}

func (s *OptionService) audit(action string, actor *models.JWTClaims, fields ...zap.Field) {
	fields = append([]zap.Field{zap.String("action", action), zap.String("actor_id", actor.UserID)}, fields...)
	s.logger.Info("audit", fields...)
}

func requireAdmin(actor *models.JWTClaims) error {
	if actor == nil {
		return appErrors.ErrStaleSession
	}
	if !actor.IsAdmin() {
		return appErrors.Clone(appErrors.ErrForbidden, "administrator privileges required")
	}
	return nil
}

func duplicateLabel(optionType models.OptionType, label string) error {
	return appErrors.Clone(appErrors.ErrDuplicateLabel, fmt.Sprintf("%s %q already exists", optionType, label))
}

func hasPQCode(err error, code string) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == code
}
