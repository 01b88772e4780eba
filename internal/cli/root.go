package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/noah-isme/careplan-api/internal/planning"
)

// App holds what the plantracker commands read from.
type App struct {
	// Plans is used when no --file is given.
	Plans       PlanSource
	PageSize    int
	RecentLimit int
}

// NewRootCmd creates the top-level "plantracker" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var file string

	root := &cobra.Command{
		Use:           "plantracker",
		Short:         "Offline dashboards and history over care plans",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&file, "file", "", "Read plans from a JSON export instead of the database")

	load := func(ctx context.Context) (*planning.Workspace, error) {
		source := app.Plans
		if file != "" {
			source = NewFileSource(file)
		}
		if source == nil {
			return nil, fmt.Errorf("no plan source configured, pass --file")
		}
		plans, err := source.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading plans: %w", err)
		}
		return planning.NewWorkspace(plans, app.PageSize), nil
	}

	root.AddCommand(
		newDashboardCmd(app, load),
		newHistoryCmd(load),
		newExportCmd(load),
		newRenameCmd(load),
	)

	return root
}

type workspaceLoader func(ctx context.Context) (*planning.Workspace, error)
