package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/noah-isme/careplan-api/internal/models"
	"github.com/noah-isme/careplan-api/internal/planning"
)

func newRenameCmd(load workspaceLoader) *cobra.Command {
	var (
		filters filterFlags
		out     string
	)

	cmd := &cobra.Command{
		Use:   "rename <eixo|linha_cuidado|apoiador|categoria> <old> <new>",
		Short: "Rename an option label across a plan snapshot",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			optionType := models.OptionType(args[0])
			if !optionType.Valid() {
				return fmt.Errorf("unknown option type %q", args[0])
			}
			oldLabel := strings.TrimSpace(args[1])
			newLabel := planning.NormalizeLabel(args[2])
			if oldLabel == "" || newLabel == "" {
				return fmt.Errorf("both labels are required")
			}
			filter, err := filters.build()
			if err != nil {
				return err
			}
			ws, err := load(cmd.Context())
			if err != nil {
				return err
			}
			ws.SetFilter(filter)

			affected := 0
			for _, plan := range ws.Plans() {
				if planning.References(plan, optionType, oldLabel) {
					affected++
				}
			}
			ws.ApplyRename(optionType, oldLabel, newLabel)

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s: %s -> %s (%d planos)\n", optionType, oldLabel, newLabel, affected)
			fmt.Fprintf(w, "Filtro: %s (%d registros)\n", ws.Filter().Summary(), len(ws.Filtered()))

			if out == "" {
				return nil
			}
			raw, err := json.MarshalIndent(ws.Plans(), "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, raw, 0o600); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintln(w, out)
			return nil
		},
	}

	filters.register(cmd)
	cmd.Flags().StringVar(&out, "out", "", "Write the renamed plans as JSON to this path")

	return cmd
}
