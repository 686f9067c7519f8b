package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leuz9/oolu-kpis-sub000/internal/importer"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a full objective tree from a YAML seed file",
		Long: "Validates and imports objectives, KPIs and links from a YAML file. The " +
			"whole tree is written in one transaction and aggregated afterward; a file " +
			"with validation errors imports nothing.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			schema, err := importer.LoadSeedSchema(args[0])
			if err != nil {
				return fmt.Errorf("loading seed file: %w", err)
			}

			if errs := importer.ValidateSeedSchema(schema); len(errs) > 0 {
				fmt.Printf("Seed file has %d validation error(s):\n", len(errs))
				for _, e := range errs {
					fmt.Printf("  - %v\n", e)
				}
				return fmt.Errorf("import aborted")
			}

			tree, err := importer.Convert(schema)
			if err != nil {
				return err
			}
			if err := importer.Persist(ctx, app.UoW, tree); err != nil {
				return err
			}
			if app.Audit != nil {
				_ = app.Audit.Record(ctx, app.Actor, "tree_imported", map[string]any{
					"file":       args[0],
					"objectives": len(tree.Objectives),
					"kpis":       len(tree.KPIs),
					"links":      len(tree.Links),
				})
			}

			for _, rootID := range tree.RootIDs {
				if err := app.Aggregator.RecalculateSubtree(ctx, rootID); err != nil {
					return fmt.Errorf("tree imported but aggregation failed, re-run 'oolu progress recalc --tree': %w", err)
				}
			}

			fmt.Printf("Imported %d objectives, %d KPIs, %d links\n",
				len(tree.Objectives), len(tree.KPIs), len(tree.Links))
			return nil
		},
	}
}
