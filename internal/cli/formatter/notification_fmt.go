package formatter

import (
	"github.com/leuz9/oolu-kpis-sub000/internal/domain"
)

// FormatNotificationList renders a user's notifications, newest first.
func FormatNotificationList(notifications []*domain.Notification) string {
	headers := []string{"ID", "WHEN", "PRIORITY", "TITLE", "MESSAGE", "READ"}
	rows := make([][]string, 0, len(notifications))

	for _, n := range notifications {
		read := Dim("--")
		if n.ReadAt != nil {
			read = StyleGreen.Render("✔")
		}
		rows = append(rows, []string{
			Dim(TruncID(n.ID)),
			Dim(HumanTimestamp(n.CreatedAt)),
			priorityBadge(n.Priority),
			Bold(n.Title),
			StyleFg.Render(n.Message),
			read,
		})
	}

	table := RenderTable(headers, rows)
	return RenderBox("Notifications", table)
}

func priorityBadge(p domain.NotificationPriority) string {
	switch p {
	case domain.PriorityHigh:
		return StyleRed.Render("HIGH")
	case domain.PriorityMedium:
		return StyleYellow.Render("MED")
	default:
		return StyleDim.Render("LOW")
	}
}
