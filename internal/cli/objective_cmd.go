package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leuz9/oolu-kpis-sub000/internal/cli/formatter"
	"github.com/leuz9/oolu-kpis-sub000/internal/domain"
)

func newObjectiveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "objective",
		Aliases: []string{"obj"},
		Short:   "Manage objectives",
	}

	cmd.AddCommand(
		newObjectiveAddCmd(app),
		newObjectiveListCmd(app),
		newObjectiveInspectCmd(app),
		newObjectiveUpdateCmd(app),
		newObjectiveArchiveCmd(app),
	)

	return cmd
}

func newObjectiveAddCmd(app *App) *cobra.Command {
	var title, description, level, parent, due string
	var contributors []string
	var quarter, year int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new objective",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			o := &domain.Objective{
				Title:        title,
				Description:  description,
				Level:        domain.Level(level),
				Contributors: contributors,
				Quarter:      quarter,
				Year:         year,
			}

			if parent != "" {
				parentID, err := resolveObjectiveID(ctx, app, parent)
				if err != nil {
					return err
				}
				o.ParentID = &parentID
			}
			if due != "" {
				dueDate, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("invalid due date %q: %w", due, err)
				}
				o.DueDate = &dueDate
			}

			if err := app.Objectives.Create(ctx, app.Actor, o); err != nil {
				return err
			}

			fmt.Printf("Created %s objective %s [%s]\n", o.Level, o.Title, o.DisplayID())
			return nil
		},
	}

	now := time.Now()
	cmd.Flags().StringVar(&title, "title", "", "Objective title")
	cmd.Flags().StringVar(&description, "desc", "", "Objective description")
	cmd.Flags().StringVar(&level, "level", "", "Hierarchy level (company, department, individual)")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent objective ID (required below company level)")
	cmd.Flags().StringSliceVar(&contributors, "contributors", nil, "Contributor user IDs (required below company level)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&quarter, "quarter", int(now.Month()-1)/3+1, "Quarter (1-4)")
	cmd.Flags().IntVar(&year, "year", now.Year(), "Year")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("level")

	return cmd
}

func newObjectiveListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List objectives",
		RunE: func(cmd *cobra.Command, args []string) error {
			objectives, err := app.Objectives.List(context.Background(), all)
			if err != nil {
				return err
			}

			if len(objectives) == 0 {
				fmt.Println("No objectives found.")
				return nil
			}

			fmt.Printf("%s\n", formatter.FormatObjectiveList(objectives))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived objectives")

	return cmd
}

func newObjectiveInspectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <id>",
		Short: "Show one objective with its KPIs and children",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			id, err := resolveObjectiveID(ctx, app, args[0])
			if err != nil {
				return err
			}
			o, err := app.Objectives.GetByID(ctx, id)
			if err != nil {
				return err
			}

			kpis := make([]*domain.KPI, 0, len(o.KPIIDs))
			for _, kpiID := range o.KPIIDs {
				k, err := app.KPIs.GetByID(ctx, kpiID)
				if err != nil {
					continue
				}
				kpis = append(kpis, k)
			}

			all, err := app.Objectives.List(ctx, false)
			if err != nil {
				return err
			}
			var children []*domain.Objective
			for _, candidate := range all {
				if candidate.ParentID != nil && *candidate.ParentID == o.ID {
					children = append(children, candidate)
				}
			}

			fmt.Printf("%s\n", formatter.FormatObjectiveInspect(o, kpis, children))
			return nil
		},
	}
}

func newObjectiveUpdateCmd(app *App) *cobra.Command {
	var title, description, parent, due string
	var contributors []string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an objective's editable fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			id, err := resolveObjectiveID(ctx, app, args[0])
			if err != nil {
				return err
			}
			o, err := app.Objectives.GetByID(ctx, id)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("title") {
				o.Title = title
			}
			if cmd.Flags().Changed("desc") {
				o.Description = description
			}
			if cmd.Flags().Changed("contributors") {
				o.Contributors = contributors
			}
			if cmd.Flags().Changed("parent") {
				if parent == "" {
					o.ParentID = nil
				} else {
					parentID, err := resolveObjectiveID(ctx, app, parent)
					if err != nil {
						return err
					}
					o.ParentID = &parentID
				}
			}
			if cmd.Flags().Changed("due") {
				if due == "" {
					o.DueDate = nil
				} else {
					dueDate, err := time.Parse("2006-01-02", due)
					if err != nil {
						return fmt.Errorf("invalid due date %q: %w", due, err)
					}
					o.DueDate = &dueDate
				}
			}

			if err := app.Objectives.Update(ctx, app.Actor, o); err != nil {
				return err
			}

			fmt.Printf("Updated objective %s [%s]\n", o.Title, o.DisplayID())
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVar(&description, "desc", "", "New description")
	cmd.Flags().StringVar(&parent, "parent", "", "New parent objective ID (empty to clear)")
	cmd.Flags().StringSliceVar(&contributors, "contributors", nil, "Replacement contributor user IDs")
	cmd.Flags().StringVar(&due, "due", "", "New due date (YYYY-MM-DD, empty to clear)")

	return cmd
}

func newObjectiveArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive an objective (children are left active)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			id, err := resolveObjectiveID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Objectives.Archive(ctx, app.Actor, id); err != nil {
				return err
			}

			fmt.Printf("Archived objective [%s]\n", formatter.TruncID(id))
			return nil
		},
	}
}
