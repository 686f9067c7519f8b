package service

import (
	"context"
	"fmt"

	"github.com/leuz9/oolu-kpis-sub000/internal/domain"
	"github.com/leuz9/oolu-kpis-sub000/internal/repository"
)

const defaultNotificationLimit = 50

type notificationService struct {
	notifications repository.NotificationRepo
	audit         AuditRecorder
}

func NewNotificationService(notifications repository.NotificationRepo, audit AuditRecorder) NotificationService {
	return &notificationService{notifications: notifications, audit: audit}
}

func (s *notificationService) ListForUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error) {
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	items, err := s.notifications.ListForUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing notifications for '%s': %w", userID, err)
	}
	return items, nil
}

func (s *notificationService) MarkRead(ctx context.Context, actor, id string) error {
	if err := s.notifications.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("marking notification '%s' read: %w", id, err)
	}
	if s.audit != nil {
		_ = s.audit.Record(ctx, actor, "notification_read", map[string]any{"notification_id": id})
	}
	return nil
}
