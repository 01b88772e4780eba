package dto

import (
	"github.com/noah-isme/careplan-api/internal/models"
	"github.com/noah-isme/careplan-api/internal/planning"
)

// PlanRequest is the payload for creating or updating a plan.
type PlanRequest struct {
	Axis                string              `json:"axis" validate:"required"`
	CareLine            string              `json:"care_line" validate:"required"`
	Status              models.PlanStatus   `json:"status" validate:"required"`
	Supporters          []string            `json:"supporters" validate:"required,min=1,dive,required"`
	Categories          []string            `json:"categories" validate:"omitempty,dive,required"`
	Summary             string              `json:"summary" validate:"required"`
	Goal                string              `json:"goal" validate:"required"`
	EvaluationFrequency string              `json:"evaluation_frequency" validate:"required"`
	Cycle               *string             `json:"cycle"`
	StartDate           models.CalendarDate `json:"start_date"`
	EndDate             models.CalendarDate `json:"end_date"`
	Notes               *string             `json:"notes"`
}

// PlanListItem decorates a plan with the caller's permissions.
type PlanListItem struct {
	models.Plan
	CanManage bool `json:"can_manage"`
}

// HistoryRequest captures the filter and cursor of a history listing.
type HistoryRequest struct {
	Filter   models.PlanFilter
	Page     int
	PageSize int
}

// HistoryResponse is one page of the filtered plan history.
type HistoryResponse struct {
	Items     []PlanListItem         `json:"items"`
	Filter    models.PlanFilter      `json:"filter"`
	Choices   planning.FilterChoices `json:"choices"`
	PageSizes []int                  `json:"page_sizes"`
}

// ExportRequest selects the rendering of a filtered history export.
type ExportRequest struct {
	Filter      models.PlanFilter
	Format      string
	Orientation string
}

// ExportFile is a rendered export ready to be streamed.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}
