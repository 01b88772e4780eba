package planning

import (
	"strings"

	"github.com/noah-isme/careplan-api/internal/models"
)

// Filter returns the plans matching every active criterion of f, in input order.
// The input slice is never modified.
func Filter(plans []models.Plan, f models.PlanFilter) []models.Plan {
	f = f.Normalized()
	term := strings.ToLower(f.SearchText)
	out := make([]models.Plan, 0, len(plans))
	for _, plan := range plans {
		if matches(plan, f, term) {
			out = append(out, plan)
		}
	}
	return out
}

func matches(plan models.Plan, f models.PlanFilter, term string) bool {
	if f.Status != models.AnyOption && string(plan.Status) != f.Status {
		return false
	}
	if f.Axis != models.AnyOption && plan.Axis != f.Axis {
		return false
	}
	if f.CareLine != models.AnyOption && plan.CareLine != f.CareLine {
		return false
	}
	if f.Supporter != models.AnyOption && !plan.HasSupporter(f.Supporter) {
		return false
	}
	if !withinDateRange(plan.StartDate, f.StartDate, f.EndDate) {
		return false
	}
	if term != "" && !containsTerm(plan, term) {
		return false
	}
	return true
}

func withinDateRange(start, from, to models.CalendarDate) bool {
	if from.IsZero() && to.IsZero() {
		return true
	}
	if start.IsZero() {
		return false
	}
	if !from.IsZero() && start.Before(from) {
		return false
	}
	if !to.IsZero() && start.After(to) {
		return false
	}
	return true
}

func containsTerm(plan models.Plan, term string) bool {
	for _, field := range []string{plan.CareLine, plan.Axis, plan.Summary, plan.Goal, plan.ID} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}
