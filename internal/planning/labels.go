package planning

import (
	"sort"
	"strings"

	"github.com/noah-isme/careplan-api/internal/models"
)

// NormalizeLabel trims and upper-cases an option label.
func NormalizeLabel(label string) string {
	return strings.ToUpper(strings.TrimSpace(label))
}

// ReplaceLabel swaps oldLabel for newLabel in values, keeping order. If
// newLabel is already present the duplicate is dropped. The second result
// reports whether anything changed, so re-applying a rename is a no-op.
func ReplaceLabel(values []string, oldLabel, newLabel string) ([]string, bool) {
	changed := false
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == oldLabel {
			v = newLabel
			changed = true
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if !changed {
		return values, false
	}
	return out, true
}

// RenameInPlan applies a label rename of the given vocabulary to a single plan.
func RenameInPlan(plan models.Plan, optionType models.OptionType, oldLabel, newLabel string) (models.Plan, bool) {
	switch optionType {
	case models.OptionTypeAxis:
		if plan.Axis != oldLabel {
			return plan, false
		}
		plan.Axis = newLabel
		return plan, true
	case models.OptionTypeCareLine:
		if plan.CareLine != oldLabel {
			return plan, false
		}
		plan.CareLine = newLabel
		return plan, true
	case models.OptionTypeSupporter:
		updated, changed := ReplaceLabel(plan.Supporters, oldLabel, newLabel)
		plan.Supporters = updated
		return plan, changed
	case models.OptionTypeCategory:
		updated, changed := ReplaceLabel(plan.Categories, oldLabel, newLabel)
		plan.Categories = updated
		return plan, changed
	default:
		return plan, false
	}
}

// References reports whether the plan uses label in the given vocabulary.
func References(plan models.Plan, optionType models.OptionType, label string) bool {
	switch optionType {
	case models.OptionTypeAxis:
		return plan.Axis == label
	case models.OptionTypeCareLine:
		return plan.CareLine == label
	case models.OptionTypeSupporter:
		return plan.HasSupporter(label)
	case models.OptionTypeCategory:
		return plan.HasCategory(label)
	default:
		return false
	}
}

// FilterChoices are the select options offered by the history filters.
type FilterChoices struct {
	Statuses   []string `json:"statuses"`
	Axes       []string `json:"axes"`
	CareLines  []string `json:"care_lines"`
	Supporters []string `json:"supporters"`
}

// Choices derives the filter select options from the working set: unique,
// sorted, and prefixed by the "any" sentinel.
func Choices(plans []models.Plan) FilterChoices {
	statuses := make([]string, 0, len(models.PlanStatuses)+1)
	statuses = append(statuses, models.AnyOption)
	for _, s := range models.PlanStatuses {
		statuses = append(statuses, string(s))
	}

	axes := map[string]struct{}{}
	lines := map[string]struct{}{}
	supporters := map[string]struct{}{}
	for _, plan := range plans {
		addNonEmpty(axes, plan.Axis)
		addNonEmpty(lines, plan.CareLine)
		for _, s := range plan.Supporters {
			addNonEmpty(supporters, s)
		}
	}
	return FilterChoices{
		Statuses:   statuses,
		Axes:       withAny(axes),
		CareLines:  withAny(lines),
		Supporters: withAny(supporters),
	}
}

func addNonEmpty(set map[string]struct{}, value string) {
	if value != "" {
		set[value] = struct{}{}
	}
}

func withAny(set map[string]struct{}) []string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return append([]string{models.AnyOption}, values...)
}

func uniqueLabels(values []string) []string {
	if len(values) < 2 {
		return values
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
