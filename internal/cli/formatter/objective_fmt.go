package formatter

import (
	"fmt"
	"strings"

	"github.com/leuz9/oolu-kpis-sub000/internal/domain"
)

// FormatObjectiveList renders a styled objective table inside a bordered box.
func FormatObjectiveList(objectives []*domain.Objective) string {
	headers := []string{"ID", "TITLE", "LEVEL", "STATUS", "PROGRESS", "DUE"}
	rows := make([][]string, 0, len(objectives))

	for _, o := range objectives {
		dueStr := Dim("--")
		if o.DueDate != nil {
			dueStr = RelativeDateStyled(*o.DueDate)
		}

		rows = append(rows, []string{
			Dim(TruncID(o.ID)),
			Bold(o.Title),
			LevelBadge(o.Level),
			StatusPill(o.Status),
			RenderProgress(o.Progress, 10),
			dueStr,
		})
	}

	table := RenderTable(headers, rows)
	return RenderBox("Objectives", table)
}

// FormatObjectiveInspect renders one objective with its linked KPIs and children.
func FormatObjectiveInspect(o *domain.Objective, kpis []*domain.KPI, children []*domain.Objective) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(o.Title) + "\n")
	b.WriteString(LevelBadge(o.Level) + "\n\n")

	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("STATUS  "), StatusPill(o.Status)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("PROGRESS"), RenderProgress(o.Progress, 20)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ID      "), Dim(o.ID)))
	b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("PERIOD  "), StyleFg.Render(fmt.Sprintf("Q%d %d", o.Quarter, o.Year))))
	if o.ParentID != nil {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("PARENT  "), Dim(TruncID(*o.ParentID))))
	}
	if len(o.Contributors) > 0 {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("PEOPLE  "), StyleFg.Render(strings.Join(o.Contributors, ", "))))
	}
	if o.DueDate != nil {
		b.WriteString(fmt.Sprintf("%s  %s %s\n", StyleDim.Render("DUE     "), RelativeDateStyled(*o.DueDate), Dim("("+o.DueDate.Format("Jan 2, 2006")+")")))
	}
	if o.ArchivedAt != nil {
		b.WriteString(fmt.Sprintf("%s  %s\n", StyleDim.Render("ARCHVD  "), HumanTimestamp(*o.ArchivedAt)))
	}
	if o.Description != "" {
		b.WriteString("\n" + StyleFg.Render(o.Description) + "\n")
	}

	if len(kpis) > 0 {
		b.WriteString("\n" + Header("Linked KPIs") + "\n")
		for _, k := range kpis {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				RenderProgress(k.Progress, 10),
				Bold(k.Name),
				Dim(fmt.Sprintf("%.1f/%.1f %s", k.Value, k.Target, k.Unit))))
		}
	}

	if len(children) > 0 {
		b.WriteString("\n" + Header("Children") + "\n")
		for _, child := range children {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				RenderProgress(child.Progress, 10),
				Bold(child.Title),
				LevelBadge(child.Level)))
		}
	}

	return RenderBox("", b.String())
}
