package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leuz9/oolu-kpis-sub000/internal/cli/formatter"
)

func newAuditCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the most recent audit events",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := app.Audit.Recent(context.Background(), limit)
			if err != nil {
				return err
			}

			if len(events) == 0 {
				fmt.Println("No audit events recorded.")
				return nil
			}

			headers := []string{"WHEN", "ACTOR", "EVENT", "PAYLOAD"}
			rows := make([][]string, 0, len(events))
			for _, e := range events {
				rows = append(rows, []string{
					formatter.Dim(formatter.HumanTimestamp(e.TS)),
					formatter.Bold(e.Actor),
					e.Type,
					formatter.Dim(e.Payload),
				})
			}

			fmt.Printf("%s\n", formatter.RenderBox("Audit Trail", formatter.RenderTable(headers, rows)))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum events to show")

	return cmd
}
