package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/noah-isme/careplan-api/internal/models"
	"github.com/noah-isme/careplan-api/internal/planning"
)

func newDashboardCmd(app *App, load workspaceLoader) *cobra.Command {
	var careLine string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Print dashboard indicators",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := load(cmd.Context())
			if err != nil {
				return err
			}
			ws.SetFilter(models.PlanFilter{CareLine: careLine})

			limit := app.RecentLimit
			if limit <= 0 {
				limit = 5
			}
			printSummary(cmd.OutOrStdout(), ws.Summary(limit))
			return nil
		},
	}

	cmd.Flags().StringVar(&careLine, "care-line", models.AnyOption, "Restrict to one care line")

	return cmd
}

func printSummary(w io.Writer, s planning.Summary) {
	fmt.Fprintf(w, "Total: %d  Em andamento: %d  Concluídos: %d\n", s.Totals.Total, s.Totals.InProgress, s.Totals.Completed)
	fmt.Fprintf(w, "Resolutividade: %d%%\n", s.ResolutionRate)
	if s.LeadTime.Samples > 0 {
		fmt.Fprintf(w, "Tempo médio: %.1f dias (%d planos)\n", s.LeadTime.AverageDays, s.LeadTime.Samples)
	}

	printBuckets(w, "Status", s.Status.All)
	printBuckets(w, "Eixos", s.AxisShare)
	printBuckets(w, "Linhas de cuidado", s.CareLineDistribution)
	printBuckets(w, "Apoiadores", s.SupporterDistribution)
	printBuckets(w, "Categorias", s.CategoryDistribution)
	printBuckets(w, "Evolução mensal", s.Temporal)

	if len(s.AxisCompletion) > 0 {
		fmt.Fprintln(w, "\nConclusão por eixo")
		for _, rate := range s.AxisCompletion {
			fmt.Fprintf(w, "  %-30s %d/%d (%d%%)\n", rate.Axis, rate.Completed, rate.Total, rate.Rate)
		}
	}
}

func printBuckets(w io.Writer, title string, buckets []planning.Bucket) {
	if len(buckets) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	for _, b := range buckets {
		fmt.Fprintf(w, "  %-30s %4d  %3d%%\n", b.Key, b.Count, b.Percentage)
	}
}
