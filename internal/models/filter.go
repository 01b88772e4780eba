package models

import "strings"

// AnyOption is the sentinel meaning "no constraint" for a select filter.
const AnyOption = "ANY"

// legacyAnyOption is accepted on input for compatibility with older clients.
const legacyAnyOption = "Todos"

// PlanFilter is a snapshot of every criterion the history and dashboard views apply.
type PlanFilter struct {
	Status     string       `json:"status"`
	Axis       string       `json:"axis"`
	CareLine   string       `json:"care_line"`
	Supporter  string       `json:"supporter"`
	StartDate  CalendarDate `json:"start_date"`
	EndDate    CalendarDate `json:"end_date"`
	SearchText string       `json:"search"`
}

// IsAny reports whether a select value imposes no constraint.
func IsAny(value string) bool {
	value = strings.TrimSpace(value)
	return value == "" || value == AnyOption || strings.EqualFold(value, legacyAnyOption)
}

// Normalized returns the filter with every vacuous select collapsed to AnyOption
// and surrounding whitespace removed.
func (f PlanFilter) Normalized() PlanFilter {
	norm := func(v string) string {
		if IsAny(v) {
			return AnyOption
		}
		return strings.TrimSpace(v)
	}
	f.Status = norm(f.Status)
	f.Axis = norm(f.Axis)
	f.CareLine = norm(f.CareLine)
	f.Supporter = norm(f.Supporter)
	f.SearchText = strings.TrimSpace(f.SearchText)
	return f
}

// Equal compares two filters after normalisation.
func (f PlanFilter) Equal(other PlanFilter) bool {
	return f.Normalized() == other.Normalized()
}

// Summary renders the active criteria as "Status: X | Eixo: Y | ..." for printed exports.
func (f PlanFilter) Summary() string {
	f = f.Normalized()
	parts := make([]string, 0, 7)
	add := func(label, value string) {
		if value == "" || value == AnyOption {
			return
		}
		parts = append(parts, label+": "+value)
	}
	add("Status", f.Status)
	add("Eixo", f.Axis)
	add("Linha", f.CareLine)
	add("Apoiador", f.Supporter)
	add("De", f.StartDate.String())
	add("Até", f.EndDate.String())
	add("Busca", f.SearchText)
	if len(parts) == 0 {
		return "Todos os registros"
	}
	return strings.Join(parts, " | ")
}

// PageState is the 1-based page cursor over a filtered list.
type PageState struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}
