package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leuz9/oolu-kpis-sub000/internal/cli/formatter"
	"github.com/leuz9/oolu-kpis-sub000/internal/contract"
)

func newStatusCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the full objective tree with progress and status",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Status.GetStatus(context.Background(), contract.StatusRequest{
				IncludeArchived: all,
			})
			if err != nil {
				return err
			}

			fmt.Printf("%s\n", formatter.FormatStatusReport(resp))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived objectives")

	return cmd
}
