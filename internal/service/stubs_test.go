package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/noah-isme/careplan-api/internal/models"
)

type planRepoStub struct {
	plans   []models.Plan
	err     error
	created []*models.Plan
	updated []*models.Plan
	deleted []string
	lists   int
}

func (s *planRepoStub) List(ctx context.Context) ([]models.Plan, error) {
	s.lists++
	if s.err != nil {
		return nil, s.err
	}
	return append([]models.Plan(nil), s.plans...), nil
}

func (s *planRepoStub) FindByID(ctx context.Context, id string) (*models.Plan, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.plans {
		if p.ID == id {
			plan := p
			return &plan, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *planRepoStub) Create(ctx context.Context, plan *models.Plan) error {
	if s.err != nil {
		return s.err
	}
	if plan.ID == "" {
		plan.ID = "new-plan"
	}
	s.created = append(s.created, plan)
	return nil
}

func (s *planRepoStub) Update(ctx context.Context, plan *models.Plan) error {
	if s.err != nil {
		return s.err
	}
	s.updated = append(s.updated, plan)
	return nil
}

func (s *planRepoStub) Delete(ctx context.Context, id string) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

type optionRepoStub struct {
	labels    map[models.OptionType]map[string]bool
	allowAll  bool
	err       error
	createErr error
	renameErr error
	deleteErr error
	created   []models.ConfigOption
	renamed   []string
	deleted   []string
}

func newOptionRepoStub(entries map[models.OptionType][]string) *optionRepoStub {
	s := &optionRepoStub{labels: map[models.OptionType]map[string]bool{}}
	for t, labels := range entries {
		s.labels[t] = map[string]bool{}
		for _, l := range labels {
			s.labels[t][l] = true
		}
	}
	return s
}

func (s *optionRepoStub) List(ctx context.Context) ([]models.ConfigOption, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []models.ConfigOption
	for _, t := range models.OptionTypes {
		for label := range s.labels[t] {
			out = append(out, models.ConfigOption{Type: t, Label: label})
		}
	}
	return out, nil
}

func (s *optionRepoStub) Exists(ctx context.Context, optionType models.OptionType, label string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if s.allowAll {
		return true, nil
	}
	return s.labels[optionType][label], nil
}

func (s *optionRepoStub) Create(ctx context.Context, option *models.ConfigOption) error {
	if s.createErr != nil {
		return s.createErr
	}
	option.ID = "opt-new"
	option.CreatedAt = time.Now()
	s.created = append(s.created, *option)
	return nil
}

func (s *optionRepoStub) Rename(ctx context.Context, optionType models.OptionType, oldLabel, newLabel string) error {
	if s.renameErr != nil {
		return s.renameErr
	}
	if !s.labels[optionType][oldLabel] {
		return sql.ErrNoRows
	}
	delete(s.labels[optionType], oldLabel)
	s.labels[optionType][newLabel] = true
	s.renamed = append(s.renamed, oldLabel+"->"+newLabel)
	return nil
}

func (s *optionRepoStub) Delete(ctx context.Context, optionType models.OptionType, label string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if !s.labels[optionType][label] {
		return sql.ErrNoRows
	}
	delete(s.labels[optionType], label)
	s.deleted = append(s.deleted, label)
	return nil
}

type planLabelStub struct {
	scalarRows  int64
	scalarErr   error
	referencing []models.Plan
	listErr     error
	failFor     map[string]error
	updates     map[string][]string
}

func (s *planLabelStub) RenameScalar(ctx context.Context, optionType models.OptionType, oldLabel, newLabel string) (int64, error) {
	return s.scalarRows, s.scalarErr
}

func (s *planLabelStub) ListReferencing(ctx context.Context, optionType models.OptionType, label string) ([]models.Plan, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []models.Plan
	for _, p := range s.referencing {
		values := p.Supporters
		if optionType == models.OptionTypeCategory {
			values = p.Categories
		}
		for _, v := range values {
			if v == label {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (s *planLabelStub) UpdateLabels(ctx context.Context, id string, optionType models.OptionType, labels []string) error {
	if err := s.failFor[id]; err != nil {
		return err
	}
	if s.updates == nil {
		s.updates = map[string][]string{}
	}
	s.updates[id] = labels
	return nil
}

type evictorStub struct {
	patterns []string
}

func (e *evictorStub) Invalidate(_ context.Context, patterns ...string) {
	e.patterns = append(e.patterns, patterns...)
}

func adminActor() *models.JWTClaims {
	return &models.JWTClaims{UserID: "admin-1", Email: "admin@ubs.org", Privilege: models.RoleAdmin}
}

func userActor(id string) *models.JWTClaims {
	return &models.JWTClaims{UserID: id, Email: id + "@ubs.org", Privilege: models.RoleNormal}
}

func fixturePlan(id, owner string, status models.PlanStatus, careLine, start string, supporters ...string) models.Plan {
	return models.Plan{
		ID:                  id,
		OwnerID:             owner,
		Axis:                models.AxisInnovation,
		CareLine:            careLine,
		Status:              status,
		Supporters:          supporters,
		Summary:             "resumo " + id,
		Goal:                "meta " + id,
		EvaluationFrequency: "MENSAL",
		StartDate:           models.MustCalendarDate(start),
		CreatedAt:           time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}
