package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leuz9/oolu-kpis-sub000/internal/cli/formatter"
)

func newLinkCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Manage objective-KPI links",
	}

	cmd.AddCommand(
		newLinkAddCmd(app),
		newLinkRemoveCmd(app),
	)

	return cmd
}

func newLinkAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <objective-id> <kpi-id>",
		Short: "Link a KPI to an objective",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			objectiveID, err := resolveObjectiveID(ctx, app, args[0])
			if err != nil {
				return err
			}
			kpiID, err := resolveKPIID(ctx, app, args[1])
			if err != nil {
				return err
			}

			progress, err := app.Links.Link(ctx, app.Actor, objectiveID, kpiID)
			if err != nil {
				return err
			}

			fmt.Printf("Linked KPI [%s] to objective [%s], progress now %d%%\n",
				formatter.TruncID(kpiID), formatter.TruncID(objectiveID), progress)
			return nil
		},
	}
}

func newLinkRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <objective-id> <kpi-id>",
		Aliases: []string{"rm"},
		Short:   "Unlink a KPI from an objective",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			objectiveID, err := resolveObjectiveID(ctx, app, args[0])
			if err != nil {
				return err
			}
			kpiID, err := resolveKPIID(ctx, app, args[1])
			if err != nil {
				return err
			}

			progress, err := app.Links.Unlink(ctx, app.Actor, objectiveID, kpiID)
			if err != nil {
				return err
			}

			fmt.Printf("Unlinked KPI [%s] from objective [%s], progress now %d%%\n",
				formatter.TruncID(kpiID), formatter.TruncID(objectiveID), progress)
			return nil
		},
	}
}
