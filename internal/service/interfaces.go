package service

import (
	"context"

	"github.com/leuz9/oolu-kpis-sub000/internal/contract"
	"github.com/leuz9/oolu-kpis-sub000/internal/domain"
)

// Mutating operations take an explicit actor id for the audit trail; there
// is no ambient "current user" state anywhere in the engine.

type ObjectiveService interface {
	Create(ctx context.Context, actor string, o *domain.Objective) error
	GetByID(ctx context.Context, id string) (*domain.Objective, error)
	List(ctx context.Context, includeArchived bool) ([]*domain.Objective, error)
	Update(ctx context.Context, actor string, o *domain.Objective) error
	Archive(ctx context.Context, actor, id string) error
}

type KPIService interface {
	Create(ctx context.Context, actor string, k *domain.KPI) error
	GetByID(ctx context.Context, id string) (*domain.KPI, error)
	List(ctx context.Context) ([]*domain.KPI, error)
	Update(ctx context.Context, actor string, k *domain.KPI) error
	SetValue(ctx context.Context, actor, id string, value float64) (int, error)
}

// LinkService maintains the objective↔KPI association. Both sides of the
// relationship change in one transaction; the follow-up aggregation is a
// separate write and is reported, not rolled back, on failure.
type LinkService interface {
	Link(ctx context.Context, actor, objectiveID, kpiID string) (int, error)
	Unlink(ctx context.Context, actor, objectiveID, kpiID string) (int, error)
}

// AggregatorService keeps derived progress and status consistent across a
// tree as leaves change.
type AggregatorService interface {
	// Recalculate recomputes the objective's rollup and walks the parent
	// chain to the root, returning the objective's new progress.
	Recalculate(ctx context.Context, objectiveID string) (int, error)
	// RecalculateSubtree forces a bottom-up re-aggregation of the whole
	// subtree, recovering from any earlier partial aggregation failure.
	RecalculateSubtree(ctx context.Context, rootID string) error
}

type NotificationService interface {
	ListForUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, actor, id string) error
}

type StatusService interface {
	GetStatus(ctx context.Context, req contract.StatusRequest) (*contract.StatusResponse, error)
}

// AuditRecorder appends an entry to the audit trail. A nil recorder is
// valid and disables auditing.
type AuditRecorder interface {
	Record(ctx context.Context, actor, eventType string, payload any) error
}

// StatusNotifier receives derived status transitions from the aggregator.
// Implementations enqueue notification records; delivery is owned by an
// external collaborator and aggregation never depends on it succeeding.
type StatusNotifier interface {
	StatusChanged(ctx context.Context, o *domain.Objective, from domain.Status) error
}
