package planning

import (
	"time"

	"github.com/noah-isme/careplan-api/internal/models"
)

type planOpt func(*models.Plan)

func withStatus(s models.PlanStatus) planOpt { return func(p *models.Plan) { p.Status = s } }
func withAxis(a string) planOpt            { return func(p *models.Plan) { p.Axis = a } }
func withCareLine(l string) planOpt        { return func(p *models.Plan) { p.CareLine = l } }
func withSupporters(s ...string) planOpt   { return func(p *models.Plan) { p.Supporters = s } }
func withCategories(c ...string) planOpt   { return func(p *models.Plan) { p.Categories = c } }
func withSummary(s string) planOpt         { return func(p *models.Plan) { p.Summary = s } }
func withStart(d string) planOpt {
	return func(p *models.Plan) { p.StartDate = models.MustCalendarDate(d) }
}
func withEnd(d string) planOpt {
	return func(p *models.Plan) { p.EndDate = models.MustCalendarDate(d) }
}
func withCreated(ts time.Time) planOpt { return func(p *models.Plan) { p.CreatedAt = ts } }

func newPlan(id string, opts ...planOpt) models.Plan {
	p := models.Plan{
		ID:         id,
		OwnerID:    "owner-1",
		Axis:       models.AxisInnovation,
		CareLine:   "SAÚDE DA MULHER",
		Status:     models.PlanStatusPlanned,
		Supporters: []string{"ANA"},
		Summary:    "plan " + id,
		Goal:       "goal " + id,
		StartDate:  models.MustCalendarDate("2024-01-15"),
		CreatedAt:  time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func samplePlans() []models.Plan {
	return []models.Plan{
		newPlan("p1", withStatus(models.PlanStatusCompleted), withSupporters("ANA", "BRUNO"), withStart("2023-12-15")),
		newPlan("p2", withStatus(models.PlanStatusInProgress), withAxis(models.AxisQualification), withCategories("VACINAÇÃO"), withStart("2024-01-10")),
		newPlan("p3", withCareLine("SAÚDE MENTAL"), withSupporters("BRUNO"), withSummary("Grupo de apoio a Dengue"), withStart("2024-02-01")),
		newPlan("p4", withStatus(models.PlanStatusSuspended), withAxis(models.AxisWorkProcess), withSupporters("CARLA", "ANA"), withStart("2024-01-31")),
		newPlan("p5", withStatus(models.PlanStatusCompleted), withAxis(models.AxisQualification), withCategories("VACINAÇÃO", "PRÉ-NATAL")),
	}
}

func ids(plans []models.Plan) []string {
	out := make([]string, len(plans))
	for i, p := range plans {
		out[i] = p.ID
	}
	return out
}
