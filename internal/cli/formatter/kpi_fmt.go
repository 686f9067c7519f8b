package formatter

import (
	"fmt"

	"github.com/leuz9/oolu-kpis-sub000/internal/domain"
)

// FormatKPIList renders a styled KPI table inside a bordered box.
func FormatKPIList(kpis []*domain.KPI) string {
	headers := []string{"ID", "NAME", "VALUE", "TARGET", "PROGRESS", "STATUS"}
	rows := make([][]string, 0, len(kpis))

	for _, k := range kpis {
		value := fmt.Sprintf("%.1f", k.Value)
		target := fmt.Sprintf("%.1f", k.Target)
		if k.Unit != "" {
			value += " " + k.Unit
			target += " " + k.Unit
		}
		rows = append(rows, []string{
			Dim(TruncID(k.ID)),
			Bold(k.Name),
			StyleFg.Render(value),
			StyleFg.Render(target),
			RenderProgress(k.Progress, 10),
			StatusPill(k.Status),
		})
	}

	table := RenderTable(headers, rows)
	return RenderBox("KPIs", table)
}
