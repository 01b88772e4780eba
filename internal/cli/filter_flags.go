package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/careplan-api/internal/models"
)

type filterFlags struct {
	status    string
	axis      string
	careLine  string
	supporter string
	startDate string
	endDate   string
	search    string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.status, "status", models.AnyOption, "Filter by status")
	cmd.Flags().StringVar(&f.axis, "axis", models.AnyOption, "Filter by axis")
	cmd.Flags().StringVar(&f.careLine, "care-line", models.AnyOption, "Filter by care line")
	cmd.Flags().StringVar(&f.supporter, "supporter", models.AnyOption, "Filter by supporter")
	cmd.Flags().StringVar(&f.startDate, "from", "", "Earliest start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.endDate, "to", "", "Latest start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.search, "search", "", "Free-text search")
}

func (f *filterFlags) build() (models.PlanFilter, error) {
	filter := models.PlanFilter{
		Status:     f.status,
		Axis:       f.axis,
		CareLine:   f.careLine,
		Supporter:  f.supporter,
		SearchText: f.search,
	}
	var err error
	if f.startDate != "" {
		if filter.StartDate, err = models.ParseCalendarDate(f.startDate); err != nil {
			return filter, fmt.Errorf("invalid --from: %w", err)
		}
	}
	if f.endDate != "" {
		if filter.EndDate, err = models.ParseCalendarDate(f.endDate); err != nil {
			return filter, fmt.Errorf("invalid --to: %w", err)
		}
	}
	return filter.Normalized(), nil
}
