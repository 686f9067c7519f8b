package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leuz9/oolu-kpis-sub000/internal/cli/formatter"
	"github.com/leuz9/oolu-kpis-sub000/internal/domain"
)

func newKPICmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kpi",
		Short: "Manage KPIs",
	}

	cmd.AddCommand(
		newKPIAddCmd(app),
		newKPIListCmd(app),
		newKPISetCmd(app),
		newKPIUpdateCmd(app),
	)

	return cmd
}

func newKPIAddCmd(app *App) *cobra.Command {
	var name, unit string
	var value, target float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new KPI",
		RunE: func(cmd *cobra.Command, args []string) error {
			k := &domain.KPI{
				Name:   name,
				Unit:   unit,
				Value:  value,
				Target: target,
			}
			if err := app.KPIs.Create(context.Background(), app.Actor, k); err != nil {
				return err
			}

			fmt.Printf("Created KPI %s [%s] at %d%%\n", k.Name, k.DisplayID(), k.Progress)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "KPI name")
	cmd.Flags().StringVar(&unit, "unit", "", "Unit of measure")
	cmd.Flags().Float64Var(&value, "value", 0, "Current value")
	cmd.Flags().Float64Var(&target, "target", 0, "Target value (non-zero)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func newKPIListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List KPIs",
		RunE: func(cmd *cobra.Command, args []string) error {
			kpis, err := app.KPIs.List(context.Background())
			if err != nil {
				return err
			}

			if len(kpis) == 0 {
				fmt.Println("No KPIs found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatKPIList(kpis))
			return nil
		},
	}
}

func newKPISetCmd(app *App) *cobra.Command {
	var value float64

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Record a new KPI measurement and roll up linked objectives",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			id, err := resolveKPIID(ctx, app, args[0])
			if err != nil {
				return err
			}
			progress, err := app.KPIs.SetValue(ctx, app.Actor, id, value)
			if err != nil {
				return err
			}

			fmt.Printf("Set KPI [%s] to %.1f (%d%%)\n", formatter.TruncID(id), value, progress)
			return nil
		},
	}

	cmd.Flags().Float64Var(&value, "value", 0, "New measured value")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newKPIUpdateCmd(app *App) *cobra.Command {
	var name, unit string
	var target float64

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a KPI's name, unit or target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			id, err := resolveKPIID(ctx, app, args[0])
			if err != nil {
				return err
			}
			k, err := app.KPIs.GetByID(ctx, id)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				k.Name = name
			}
			if cmd.Flags().Changed("unit") {
				k.Unit = unit
			}
			if cmd.Flags().Changed("target") {
				k.Target = target
			}

			if err := app.KPIs.Update(ctx, app.Actor, k); err != nil {
				return err
			}

			fmt.Printf("Updated KPI %s [%s] at %d%%\n", k.Name, k.DisplayID(), k.Progress)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().StringVar(&unit, "unit", "", "New unit of measure")
	cmd.Flags().Float64Var(&target, "target", 0, "New target value (non-zero)")

	return cmd
}
