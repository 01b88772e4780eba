package planning

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/careplan-api/internal/models"
)

func TestFilterVacuousCriteriaKeepEverything(t *testing.T) {
	plans := samplePlans()
	for _, f := range []models.PlanFilter{
		{},
		{Status: "ANY", Axis: "Todos", CareLine: " ", Supporter: "ANY"},
	} {
		assert.Equal(t, ids(plans), ids(Filter(plans, f)))
	}
}

func TestFilterCriteria(t *testing.T) {
	plans := samplePlans()

	cases := []struct {
		name   string
		filter models.PlanFilter
		want   []string
	}{
		{"status", models.PlanFilter{Status: string(models.PlanStatusCompleted)}, []string{"p1", "p5"}},
		{"axis", models.PlanFilter{Axis: models.AxisQualification}, []string{"p2", "p5"}},
		{"care line", models.PlanFilter{CareLine: "SAÚDE MENTAL"}, []string{"p3"}},
		{"supporter membership", models.PlanFilter{Supporter: "ANA"}, []string{"p1", "p2", "p4", "p5"}},
		{"search is case insensitive", models.PlanFilter{SearchText: "dengue"}, []string{"p3"}},
		{"search matches id", models.PlanFilter{SearchText: "P4"}, []string{"p4"}},
		{"date range inclusive", models.PlanFilter{
			StartDate: models.MustCalendarDate("2024-01-10"),
			EndDate:   models.MustCalendarDate("2024-01-31"),
		}, []string{"p2", "p4", "p5"}},
		{"combined criteria", models.PlanFilter{Supporter: "ANA", Status: string(models.PlanStatusCompleted)}, []string{"p1", "p5"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(Filter(plans, tc.filter)))
		})
	}
}

func TestFilterMissingStartDateNeverMatchesDateBound(t *testing.T) {
	undated := newPlan("u1")
	undated.StartDate = models.CalendarDate{}
	plans := []models.Plan{undated}

	assert.Len(t, Filter(plans, models.PlanFilter{}), 1)
	assert.Empty(t, Filter(plans, models.PlanFilter{StartDate: models.MustCalendarDate("2000-01-01")}))
	assert.Empty(t, Filter(plans, models.PlanFilter{EndDate: models.MustCalendarDate("2999-01-01")}))
}

func TestFilterIdempotent(t *testing.T) {
	plans := samplePlans()
	filters := []models.PlanFilter{
		{},
		{Supporter: "ANA"},
		{Axis: models.AxisQualification, SearchText: "plan"},
		{StartDate: models.MustCalendarDate("2024-01-01")},
	}
	for _, f := range filters {
		once := Filter(plans, f)
		assert.Equal(t, once, Filter(once, f))
	}
}

func TestFilterMonotonic(t *testing.T) {
	plans := samplePlans()
	base := models.PlanFilter{Supporter: "ANA"}
	narrower := []models.PlanFilter{
		{Supporter: "ANA", Status: string(models.PlanStatusCompleted)},
		{Supporter: "ANA", SearchText: "p1"},
		{Supporter: "ANA", EndDate: models.MustCalendarDate("2024-01-01")},
	}
	wide := len(Filter(plans, base))
	for _, f := range narrower {
		assert.LessOrEqual(t, len(Filter(plans, f)), wide)
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	plans := samplePlans()
	before := ids(plans)
	_ = Filter(plans, models.PlanFilter{Status: string(models.PlanStatusPlanned)})
	assert.Equal(t, before, ids(plans))
}
