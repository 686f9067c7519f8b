// Package notify turns aggregation events into per-user notification
// records. Delivery is a queue write; nothing here talks to an external
// channel directly.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/leuz9/oolu-kpis-sub000/internal/domain"
	"github.com/leuz9/oolu-kpis-sub000/internal/repository"
)

// Notifier fans a status transition out to every contributor of the
// objective. It satisfies the service layer's StatusNotifier.
type Notifier struct {
	notifications repository.NotificationRepo
}

func NewNotifier(notifications repository.NotificationRepo) *Notifier {
	return &Notifier{notifications: notifications}
}

// StatusChanged enqueues one notification per contributor. A nil receiver
// disables notifications entirely.
func (n *Notifier) StatusChanged(ctx context.Context, o *domain.Objective, from domain.Status) error {
	if n == nil || n.notifications == nil {
		return nil
	}

	title, message := FormatStatusChange(o, from)
	priority := PriorityForStatus(o.Status)
	now := time.Now().UTC()

	for _, userID := range o.Contributors {
		notification := &domain.Notification{
			ID:        uuid.New().String(),
			UserID:    userID,
			Title:     title,
			Message:   message,
			Type:      domain.NotificationStatusChange,
			Priority:  priority,
			Link:      "/objectives/" + o.ID,
			CreatedAt: now,
		}
		if err := n.notifications.Enqueue(ctx, notification); err != nil {
			return fmt.Errorf("enqueueing notification for '%s': %w", userID, err)
		}
	}
	return nil
}

// FormatStatusChange builds the human-readable notification text.
func FormatStatusChange(o *domain.Objective, from domain.Status) (title, message string) {
	switch o.Status {
	case domain.StatusOnTrack:
		title = "Objective back on track"
	case domain.StatusAtRisk:
		title = "Objective at risk"
	case domain.StatusBehind:
		title = "Objective falling behind"
	default:
		title = "Objective status changed"
	}
	message = fmt.Sprintf("%s: %s → %s (%d%%)", o.Title, from, o.Status, o.Progress)
	return title, message
}

// PriorityForStatus maps the new status to a notification priority.
func PriorityForStatus(s domain.Status) domain.NotificationPriority {
	switch s {
	case domain.StatusBehind:
		return domain.PriorityHigh
	case domain.StatusAtRisk:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}
