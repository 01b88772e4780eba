package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/noah-isme/careplan-api/internal/models"
)

func newHistoryCmd(load workspaceLoader) *cobra.Command {
	var (
		filters  filterFlags
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List plans page by page",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := filters.build()
			if err != nil {
				return err
			}
			ws, err := load(cmd.Context())
			if err != nil {
				return err
			}
			ws.SetFilter(filter)
			if cmd.Flags().Changed("page-size") {
				ws.SetPageSize(pageSize)
			}
			ws.SetPage(page)

			out := cmd.OutOrStdout()
			printPlans(out, ws.CurrentPage())
			p := ws.Pagination()
			fmt.Fprintf(out, "\nPágina %d de %d (%d registros) %s\n", p.Page, p.TotalPages, p.TotalCount, formatWindow(p.Window, p.Page))
			return nil
		},
	}

	filters.register(cmd)
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 10, "Rows per page")

	return cmd
}

func printPlans(w io.Writer, plans []models.Plan) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tINÍCIO\tSTATUS\tEIXO\tLINHA\tRESUMO")
	for _, plan := range plans {
		start := plan.StartDate.String()
		if start == "" {
			start = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", plan.ID, start, plan.Status, plan.Axis, plan.CareLine, plan.Summary)
	}
	tw.Flush() //nolint:errcheck
}

func formatWindow(window []int, current int) string {
	parts := make([]string, 0, len(window))
	for _, n := range window {
		if n == current {
			parts = append(parts, fmt.Sprintf("[%d]", n))
			continue
		}
		parts = append(parts, fmt.Sprintf("%d", n))
	}
	return strings.Join(parts, " ")
}
