package dto

import (
	"time"

	"github.com/noah-isme/careplan-api/internal/models"
	"github.com/noah-isme/careplan-api/internal/planning"
)

// DashboardResponse is the dashboard payload for one care-line selection.
type DashboardResponse struct {
	CareLine    string    `json:"care_line"`
	GeneratedAt time.Time `json:"generated_at"`
	planning.Summary
}

// AggregateRequest groups a filtered working set by one dimension.
type AggregateRequest struct {
	Dimension planning.Dimension
	Filter    models.PlanFilter
}

// AggregateResponse lists the buckets of one grouping.
type AggregateResponse struct {
	Dimension planning.Dimension `json:"dimension"`
	Total     int                `json:"total"`
	Buckets   []planning.Bucket  `json:"buckets"`
}
