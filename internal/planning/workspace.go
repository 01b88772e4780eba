package planning

import (
	"github.com/noah-isme/careplan-api/internal/models"
	"github.com/noah-isme/careplan-api/pkg/pagination"
)

// DefaultPageSize is used when a workspace is created without a page size.
const DefaultPageSize = 10

// Workspace owns the working set of plans together with the filter and page
// cursor applied to it. Changing the filter or page size resets the cursor to
// the first page; replacing the data clamps it into range.
type Workspace struct {
	plans    []models.Plan
	filter   models.PlanFilter
	page     models.PageState
	filtered []models.Plan
}

// NewWorkspace builds a workspace over plans with an unconstrained filter.
func NewWorkspace(plans []models.Plan, pageSize int) *Workspace {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	w := &Workspace{
		filter: models.PlanFilter{}.Normalized(),
		page:   models.PageState{Page: 1, PageSize: pageSize},
	}
	w.SetPlans(plans)
	return w
}

// SetPlans replaces the working set, as after a refetch.
func (w *Workspace) SetPlans(plans []models.Plan) {
	w.plans = append([]models.Plan(nil), plans...)
	w.refresh()
	w.page.Page = pagination.Clamp(w.page.Page, len(w.filtered), w.page.PageSize)
}

// Plans returns the full working set.
func (w *Workspace) Plans() []models.Plan {
	return append([]models.Plan(nil), w.plans...)
}

// Filter returns the active filter.
func (w *Workspace) Filter() models.PlanFilter {
	return w.filter
}

// SetFilter applies f. Any actual change resets the cursor to page 1.
func (w *Workspace) SetFilter(f models.PlanFilter) {
	f = f.Normalized()
	if f == w.filter {
		return
	}
	w.filter = f
	w.refresh()
	w.page.Page = 1
}

// PageState returns the current cursor.
func (w *Workspace) PageState() models.PageState {
	return w.page
}

// SetPage moves the cursor, clamped into range.
func (w *Workspace) SetPage(page int) {
	w.page.Page = pagination.Clamp(page, len(w.filtered), w.page.PageSize)
}

// SetPageSize changes the page size and resets the cursor to page 1.
func (w *Workspace) SetPageSize(size int) {
	if size <= 0 || size == w.page.PageSize {
		return
	}
	w.page.PageSize = size
	w.page.Page = 1
}

// Filtered returns every plan matching the active filter.
func (w *Workspace) Filtered() []models.Plan {
	return append([]models.Plan(nil), w.filtered...)
}

// CurrentPage returns the plans on the current page.
func (w *Workspace) CurrentPage() []models.Plan {
	return pagination.Paginate(w.filtered, w.page.Page, w.page.PageSize)
}

// Pagination describes the cursor for list responses.
func (w *Workspace) Pagination() models.Pagination {
	total := pagination.TotalPages(len(w.filtered), w.page.PageSize)
	return models.Pagination{
		Page:       w.page.Page,
		PageSize:   w.page.PageSize,
		TotalCount: len(w.filtered),
		TotalPages: total,
		Window:     pagination.Window(w.page.Page, total),
	}
}

// Summary aggregates the filtered set.
func (w *Workspace) Summary(recentLimit int) Summary {
	return Summarize(w.filtered, recentLimit)
}

// ApplyRename mirrors an option rename into the working set and into any
// filter selection that pointed at the old label.
func (w *Workspace) ApplyRename(optionType models.OptionType, oldLabel, newLabel string) {
	for i := range w.plans {
		w.plans[i], _ = RenameInPlan(w.plans[i], optionType, oldLabel, newLabel)
	}
	switch optionType {
	case models.OptionTypeAxis:
		if w.filter.Axis == oldLabel {
			w.filter.Axis = newLabel
		}
	case models.OptionTypeCareLine:
		if w.filter.CareLine == oldLabel {
			w.filter.CareLine = newLabel
		}
	case models.OptionTypeSupporter:
		if w.filter.Supporter == oldLabel {
			w.filter.Supporter = newLabel
		}
	}
	w.refresh()
	w.page.Page = pagination.Clamp(w.page.Page, len(w.filtered), w.page.PageSize)
}

func (w *Workspace) refresh() {
	w.filtered = Filter(w.plans, w.filter)
}
