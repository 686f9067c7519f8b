package domain

import "time"

// Notification is the record handed to the notification collaborator.
// Delivery is owned elsewhere; the engine only enqueues.
type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Type      NotificationType
	Priority  NotificationPriority
	Link      string
	ReadAt    *time.Time
	CreatedAt time.Time
}
