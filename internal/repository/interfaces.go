package repository

import (
	"context"

	"github.com/leuz9/oolu-kpis-sub000/internal/domain"
)

type ObjectiveRepo interface {
	Create(ctx context.Context, o *domain.Objective) error
	GetByID(ctx context.Context, id string) (*domain.Objective, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Objective, error)
	ListChildren(ctx context.Context, parentID string, activeOnly bool) ([]*domain.Objective, error)
	Update(ctx context.Context, o *domain.Objective) error
}

type KPIRepo interface {
	Create(ctx context.Context, k *domain.KPI) error
	GetByID(ctx context.Context, id string) (*domain.KPI, error)
	List(ctx context.Context) ([]*domain.KPI, error)
	ListByObjective(ctx context.Context, objectiveID string) ([]*domain.KPI, error)
	Update(ctx context.Context, k *domain.KPI) error
}

// LinkRepo owns the objective↔KPI edge set. Both directions of the
// relationship are views over the same rows, so the two id lists can
// never drift apart.
type LinkRepo interface {
	Link(ctx context.Context, objectiveID, kpiID string) error
	Unlink(ctx context.Context, objectiveID, kpiID string) error
	Exists(ctx context.Context, objectiveID, kpiID string) (bool, error)
	KPIIDsFor(ctx context.Context, objectiveID string) ([]string, error)
	ObjectiveIDsFor(ctx context.Context, kpiID string) ([]string, error)
}

type NotificationRepo interface {
	Enqueue(ctx context.Context, n *domain.Notification) error
	ListForUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id string) error
}
