package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/noah-isme/careplan-api/internal/dto"
	"github.com/noah-isme/careplan-api/internal/models"
	"github.com/noah-isme/careplan-api/internal/planning"
	"github.com/noah-isme/careplan-api/internal/service"
	"github.com/noah-isme/careplan-api/pkg/storage"
)

// workspaceSource adapts a loaded workspace to the export service.
type workspaceSource struct {
	ws *planning.Workspace
}

func (s workspaceSource) Filtered(_ context.Context, _ *models.JWTClaims, filter models.PlanFilter) ([]models.Plan, error) {
	s.ws.SetFilter(filter)
	return s.ws.Filtered(), nil
}

func newExportCmd(load workspaceLoader) *cobra.Command {
	var (
		filters     filterFlags
		format      string
		orientation string
		dir         string
		prune       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered history as csv, pdf or xlsx",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := filters.build()
			if err != nil {
				return err
			}
			ws, err := load(cmd.Context())
			if err != nil {
				return err
			}

			exports := service.NewExportService(workspaceSource{ws: ws}, nil)
			file, err := exports.Plans(cmd.Context(), nil, dto.ExportRequest{
				Format:      format,
				Orientation: orientation,
				Filter:      filter,
			})
			if err != nil {
				return err
			}

			target, err := storage.NewExportDir(dir)
			if err != nil {
				return err
			}
			if prune > 0 {
				if _, err := target.Prune(prune, time.Now()); err != nil {
					return err
				}
			}
			path, err := target.Save(file.Filename, file.Body)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	filters.register(cmd)
	cmd.Flags().StringVar(&format, "format", service.ExportFormatCSV, "csv, pdf or xlsx")
	cmd.Flags().StringVar(&orientation, "orientation", "landscape", "PDF orientation")
	cmd.Flags().StringVar(&dir, "out", ".", "Output directory")
	cmd.Flags().DurationVar(&prune, "prune", 0, "Remove exports older than this from the output directory first")

	return cmd
}
