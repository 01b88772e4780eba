package planning

import (
	"fmt"
	"sort"

	"github.com/noah-isme/careplan-api/internal/models"
)

// Dimension names a grouping axis for Aggregate.
type Dimension string

const (
	DimensionStatus    Dimension = "status"
	DimensionAxis      Dimension = "axis"
	DimensionCareLine  Dimension = "care_line"
	DimensionSupporter Dimension = "supporter"
	DimensionCategory  Dimension = "category"
	DimensionMonth     Dimension = "month"
)

// Dimensions lists every supported grouping.
var Dimensions = []Dimension{
	DimensionStatus,
	DimensionAxis,
	DimensionCareLine,
	DimensionSupporter,
	DimensionCategory,
	DimensionMonth,
}

// Valid reports whether d is a supported grouping.
func (d Dimension) Valid() bool {
	for _, known := range Dimensions {
		if d == known {
			return true
		}
	}
	return false
}

// Aggregate groups plans by dim. Status buckets follow the status enumeration
// and omit empty statuses, month buckets are chronological, and every other
// dimension is ordered by descending count.
func Aggregate(plans []models.Plan, dim Dimension) []Bucket {
	switch dim {
	case DimensionStatus:
		return StatusDistribution(plans).Series
	case DimensionAxis:
		return AxisShare(plans)
	case DimensionCareLine:
		return CareLineDistribution(plans)
	case DimensionSupporter:
		return SupporterDistribution(plans)
	case DimensionCategory:
		return CategoryDistribution(plans)
	case DimensionMonth:
		return TemporalSeries(plans)
	default:
		return []Bucket{}
	}
}

// StatusBreakdown holds the status distribution in two shapes.
type StatusBreakdown struct {
	// All has one bucket per status, zero counts included.
	All []Bucket `json:"all"`
	// Series drops zero buckets for chart rendering.
	Series []Bucket `json:"series"`
}

// StatusDistribution counts plans per status.
func StatusDistribution(plans []models.Plan) StatusBreakdown {
	counter := NewCounter()
	for _, status := range models.PlanStatuses {
		counter.Seed(string(status))
	}
	for _, plan := range plans {
		counter.Add(string(plan.Status), 1)
	}
	all := counter.Buckets(len(plans))
	series := make([]Bucket, 0, len(all))
	for _, b := range all {
		if b.Count > 0 {
			series = append(series, b)
		}
	}
	return StatusBreakdown{All: all, Series: series}
}

// AxisRate is the completion rate of one axis.
type AxisRate struct {
	Axis      string `json:"axis"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Rate      int    `json:"rate"`
}

// AxisCompletionRates returns completed/total per axis present, in first-seen order.
func AxisCompletionRates(plans []models.Plan) []AxisRate {
	totals := NewCounter()
	completed := NewCounter()
	for _, plan := range plans {
		totals.Add(plan.Axis, 1)
		if plan.Status == models.PlanStatusCompleted {
			completed.Add(plan.Axis, 1)
		}
	}
	out := make([]AxisRate, 0, totals.Len())
	for _, axis := range totals.Keys() {
		total := totals.Count(axis)
		done := completed.Count(axis)
		out = append(out, AxisRate{Axis: axis, Total: total, Completed: done, Rate: Percent(done, total)})
	}
	return out
}

// AxisShare returns each axis' share of the plans, largest first.
func AxisShare(plans []models.Plan) []Bucket {
	counter := NewCounter()
	for _, plan := range plans {
		counter.Add(plan.Axis, 1)
	}
	return counter.SortedDesc(len(plans))
}

// CareLineDistribution counts plans per care line, largest first.
func CareLineDistribution(plans []models.Plan) []Bucket {
	counter := NewCounter()
	for _, plan := range plans {
		counter.Add(plan.CareLine, 1)
	}
	return counter.SortedDesc(len(plans))
}

// SupporterDistribution counts one hit per supporter per plan, largest first.
func SupporterDistribution(plans []models.Plan) []Bucket {
	counter := NewCounter()
	for _, plan := range plans {
		for _, supporter := range uniqueLabels(plan.Supporters) {
			counter.Add(supporter, 1)
		}
	}
	return counter.SortedDesc(len(plans))
}

// CategoryDistribution counts one hit per category per plan, largest first.
func CategoryDistribution(plans []models.Plan) []Bucket {
	counter := NewCounter()
	for _, plan := range plans {
		for _, category := range uniqueLabels(plan.Categories) {
			counter.Add(category, 1)
		}
	}
	return counter.SortedDesc(len(plans))
}

type monthKey struct {
	year  int
	month int
}

// TemporalSeries buckets plans by the month of their start date, keyed MM/YYYY,
// in chronological order. Plans without a start date are skipped.
func TemporalSeries(plans []models.Plan) []Bucket {
	counts := make(map[monthKey]int)
	var keys []monthKey
	dated := 0
	for _, plan := range plans {
		if plan.StartDate.IsZero() {
			continue
		}
		k := monthKey{year: plan.StartDate.Year, month: int(plan.StartDate.Month)}
		if _, ok := counts[k]; !ok {
			keys = append(keys, k)
		}
		counts[k]++
		dated++
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})
	out := make([]Bucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, Bucket{
			Key:        fmt.Sprintf("%02d/%04d", k.month, k.year),
			Count:      counts[k],
			Percentage: Percent(counts[k], dated),
		})
	}
	return out
}

// ResolutionRate is the completed share of all plans as an integer percentage.
func ResolutionRate(plans []models.Plan) int {
	completed := 0
	for _, plan := range plans {
		if plan.Status == models.PlanStatusCompleted {
			completed++
		}
	}
	return Percent(completed, len(plans))
}

// LeadTime summarises elapsed days between start and completion reference.
type LeadTime struct {
	AverageDays float64 `json:"average_days"`
	Samples     int     `json:"samples"`
}

// AverageLeadTime averages the days from start date to creation date over
// completed plans that have a start date. Plans carry no completion timestamp,
// so the creation date is the only reference; the planned end date is ignored.
// Negative spans are kept as degenerate samples.
func AverageLeadTime(plans []models.Plan) LeadTime {
	total := 0
	samples := 0
	for _, plan := range plans {
		if plan.Status != models.PlanStatusCompleted || plan.StartDate.IsZero() || plan.CreatedAt.IsZero() {
			continue
		}
		total += plan.StartDate.DaysUntil(models.DateOf(plan.CreatedAt.UTC()))
		samples++
	}
	if samples == 0 {
		return LeadTime{}
	}
	return LeadTime{AverageDays: float64(total) / float64(samples), Samples: samples}
}

// Totals are the headline counters of a dashboard.
type Totals struct {
	Total      int `json:"total"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
}

// Summary bundles every dashboard aggregate for one working set.
type Summary struct {
	Totals                Totals          `json:"totals"`
	Status                StatusBreakdown `json:"status"`
	AxisShare             []Bucket        `json:"axis_share"`
	AxisCompletion        []AxisRate      `json:"axis_completion"`
	Temporal              []Bucket        `json:"temporal"`
	SupporterDistribution []Bucket        `json:"supporters"`
	CareLineDistribution  []Bucket        `json:"care_lines"`
	CategoryDistribution  []Bucket        `json:"categories"`
	ResolutionRate        int             `json:"resolution_rate"`
	LeadTime              LeadTime        `json:"lead_time"`
	Recent                []models.Plan   `json:"recent"`
}

// Summarize computes every aggregate over plans. Recent holds the first
// recentLimit plans in input order, which callers keep newest first.
func Summarize(plans []models.Plan, recentLimit int) Summary {
	status := StatusDistribution(plans)
	totals := Totals{Total: len(plans)}
	for _, b := range status.All {
		switch models.PlanStatus(b.Key) {
		case models.PlanStatusInProgress:
			totals.InProgress = b.Count
		case models.PlanStatusCompleted:
			totals.Completed = b.Count
		}
	}
	if recentLimit < 0 {
		recentLimit = 0
	}
	if recentLimit > len(plans) {
		recentLimit = len(plans)
	}
	recent := make([]models.Plan, recentLimit)
	copy(recent, plans[:recentLimit])

	return Summary{
		Totals:                totals,
		Status:                status,
		AxisShare:             AxisShare(plans),
		AxisCompletion:        AxisCompletionRates(plans),
		Temporal:              TemporalSeries(plans),
		SupporterDistribution: SupporterDistribution(plans),
		CareLineDistribution:  CareLineDistribution(plans),
		CategoryDistribution:  CategoryDistribution(plans),
		ResolutionRate:        ResolutionRate(plans),
		LeadTime:              AverageLeadTime(plans),
		Recent:                recent,
	}
}
