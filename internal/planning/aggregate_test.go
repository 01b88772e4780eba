package planning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/careplan-api/internal/models"
)

func TestStatusDistributionPartitionsTheSet(t *testing.T) {
	plans := samplePlans()
	dist := StatusDistribution(plans)

	sum := 0
	for _, b := range dist.All {
		sum += b.Count
	}
	assert.Equal(t, len(plans), sum)
	assert.Len(t, dist.All, len(models.PlanStatuses))
	assert.Len(t, dist.Series, 4)

	onlyPlanned := StatusDistribution([]models.Plan{newPlan("x")})
	assert.Len(t, onlyPlanned.All, 4)
	require.Len(t, onlyPlanned.Series, 1)
	assert.Equal(t, Bucket{Key: string(models.PlanStatusPlanned), Count: 1, Percentage: 100}, onlyPlanned.Series[0])
}

func TestAxisCompletionRates(t *testing.T) {
	plans := []models.Plan{
		newPlan("1", withStatus(models.PlanStatusCompleted), withAxis("X")),
		newPlan("2", withStatus(models.PlanStatusPlanned), withAxis("X")),
		newPlan("3", withStatus(models.PlanStatusCompleted), withAxis("Y")),
	}
	rates := AxisCompletionRates(plans)
	require.Len(t, rates, 2)
	assert.Equal(t, AxisRate{Axis: "X", Total: 2, Completed: 1, Rate: 50}, rates[0])
	assert.Equal(t, AxisRate{Axis: "Y", Total: 1, Completed: 1, Rate: 100}, rates[1])
}

func TestPercentBoundsAndRounding(t *testing.T) {
	assert.Equal(t, 0, Percent(0, 0))
	assert.Equal(t, 0, Percent(3, 0))
	assert.Equal(t, 13, Percent(1, 8))
	assert.Equal(t, 33, Percent(1, 3))
	assert.Equal(t, 67, Percent(2, 3))
	assert.Equal(t, 100, Percent(5, 5))
	for total := 1; total <= 40; total++ {
		for part := 0; part <= total; part++ {
			p := Percent(part, total)
			assert.GreaterOrEqual(t, p, 0)
			assert.LessOrEqual(t, p, 100)
		}
	}
	assert.Equal(t, 0, ResolutionRate(nil))
}

func TestTemporalSeriesOrdersAcrossYearBoundary(t *testing.T) {
	plans := []models.Plan{
		newPlan("a", withStart("2024-01-10")),
		newPlan("b", withStart("2023-12-15")),
		newPlan("c", withStart("2024-01-20")),
		newPlan("d", withStart("2023-02-01")),
	}
	series := TemporalSeries(plans)
	require.Len(t, series, 3)
	assert.Equal(t, "02/2023", series[0].Key)
	assert.Equal(t, "12/2023", series[1].Key)
	assert.Equal(t, "01/2024", series[2].Key)
	assert.Equal(t, 2, series[2].Count)
}

func TestSetValuedDistributionsFlatten(t *testing.T) {
	plans := samplePlans()
	supporters := SupporterDistribution(plans)
	assert.Equal(t, []Bucket{
		{Key: "ANA", Count: 4, Percentage: 80},
		{Key: "BRUNO", Count: 2, Percentage: 40},
		{Key: "CARLA", Count: 1, Percentage: 20},
	}, supporters)

	categories := CategoryDistribution(plans)
	require.Len(t, categories, 2)
	assert.Equal(t, "VACINAÇÃO", categories[0].Key)
	assert.Equal(t, 2, categories[0].Count)

	lines := CareLineDistribution(plans)
	assert.Equal(t, "SAÚDE DA MULHER", lines[0].Key)
	assert.Equal(t, 4, lines[0].Count)
}

func TestAggregateByDimension(t *testing.T) {
	plans := samplePlans()
	assert.Equal(t, StatusDistribution(plans).Series, Aggregate(plans, DimensionStatus))
	assert.Equal(t, AxisShare(plans), Aggregate(plans, DimensionAxis))
	assert.Equal(t, TemporalSeries(plans), Aggregate(plans, DimensionMonth))
	assert.Empty(t, Aggregate(plans, Dimension("unknown")))
	assert.False(t, Dimension("unknown").Valid())
}

func TestAggregatesArePure(t *testing.T) {
	plans := samplePlans()
	first := Summarize(plans, 5)
	_ = Summarize(plans[:2], 1)
	second := Summarize(plans, 5)
	assert.Equal(t, first, second)
}

func TestAverageLeadTime(t *testing.T) {
	plans := []models.Plan{
		newPlan("a", withStatus(models.PlanStatusCompleted), withStart("2024-01-01"),
			withCreated(time.Date(2024, 1, 11, 9, 0, 0, 0, time.UTC))),
		newPlan("b", withStatus(models.PlanStatusCompleted), withStart("2024-01-01"),
			withCreated(time.Date(2024, 1, 21, 8, 0, 0, 0, time.UTC))),
		newPlan("c", withStatus(models.PlanStatusInProgress), withStart("2023-01-01")),
		newPlan("d", withStatus(models.PlanStatusCompleted), withStart("2024-01-01"), withCreated(time.Time{})),
	}
	lead := AverageLeadTime(plans)
	assert.Equal(t, 2, lead.Samples)
	assert.InDelta(t, 15.0, lead.AverageDays, 0.001)

	assert.Equal(t, LeadTime{}, AverageLeadTime(nil))
}

func TestAverageLeadTimeIgnoresPlannedEndDate(t *testing.T) {
	plans := []models.Plan{
		newPlan("a", withStatus(models.PlanStatusCompleted), withStart("2024-01-01"), withEnd("2024-12-31"),
			withCreated(time.Date(2024, 1, 11, 0, 0, 0, 0, time.UTC))),
	}
	lead := AverageLeadTime(plans)
	assert.Equal(t, 1, lead.Samples)
	assert.InDelta(t, 10.0, lead.AverageDays, 0.001)
}

func TestSummarizeTotalsAndRecent(t *testing.T) {
	plans := samplePlans()
	summary := Summarize(plans, 3)
	assert.Equal(t, Totals{Total: 5, InProgress: 1, Completed: 2}, summary.Totals)
	assert.Equal(t, []string{"p1", "p2", "p3"}, ids(summary.Recent))
	assert.Equal(t, 40, summary.ResolutionRate)

	empty := Summarize(nil, 5)
	assert.Empty(t, empty.Recent)
	assert.Empty(t, empty.Status.Series)
	assert.Len(t, empty.Status.All, 4)
}
