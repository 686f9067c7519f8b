package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leuz9/oolu-kpis-sub000/internal/cli/formatter"
)

func newProgressCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Recompute derived progress",
	}

	cmd.AddCommand(newProgressRecalcCmd(app))

	return cmd
}

func newProgressRecalcCmd(app *App) *cobra.Command {
	var tree bool

	cmd := &cobra.Command{
		Use:   "recalc <id>",
		Short: "Recalculate an objective's progress and propagate upward",
		Long: "Recalculates the objective's rollup from its KPIs and children and walks " +
			"the parent chain to the root. With --tree the whole subtree underneath is " +
			"recomputed bottom-up first, which repairs trees left stale by an interrupted update.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			id, err := resolveObjectiveID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if tree {
				if err := app.Aggregator.RecalculateSubtree(ctx, id); err != nil {
					return err
				}
				fmt.Printf("Recalculated subtree under [%s]\n", formatter.TruncID(id))
				return nil
			}

			progress, err := app.Aggregator.Recalculate(ctx, id)
			if err != nil {
				return err
			}
			fmt.Printf("Recalculated objective [%s], progress now %d%%\n", formatter.TruncID(id), progress)
			return nil
		},
	}

	cmd.Flags().BoolVar(&tree, "tree", false, "Recompute the whole subtree bottom-up first")

	return cmd
}
