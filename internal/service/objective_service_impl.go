package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/leuz9/oolu-kpis-sub000/internal/db"
	"github.com/leuz9/oolu-kpis-sub000/internal/domain"
	"github.com/leuz9/oolu-kpis-sub000/internal/repository"
)

type objectiveService struct {
	uow        db.UnitOfWork
	objectives repository.ObjectiveRepo
	aggregator AggregatorService
	validator  *hierarchyValidator
	audit      AuditRecorder
	observer   UseCaseObserver
}

func NewObjectiveService(
	uow db.UnitOfWork,
	objectives repository.ObjectiveRepo,
	aggregator AggregatorService,
	audit AuditRecorder,
	observers ...UseCaseObserver,
) ObjectiveService {
	return &objectiveService{
		uow:        uow,
		objectives: objectives,
		aggregator: aggregator,
		validator:  newHierarchyValidator(objectives),
		audit:      audit,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// Create persists a new objective. Progress and status are always derived,
// so whatever the caller put there is discarded and the objective starts at
// zero. The parent's aggregate is refreshed after the write since a fresh
// child dilutes its mean.
func (s *objectiveService) Create(ctx context.Context, actor string, o *domain.Objective) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"level": string(o.Level)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "create-objective",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	fields["objective_id"] = o.ID
	now := time.Now().UTC()
	o.CreatedAt = now
	o.UpdatedAt = now
	o.Progress = 0
	o.Status = domain.StatusForProgress(0)
	o.ArchivedAt = nil
	o.Contributors = domain.DedupeIDs(o.Contributors)

	if err = s.validator.ValidateFields(o); err != nil {
		return err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		objectives := repository.NewSQLiteObjectiveRepo(tx)
		v := newHierarchyValidator(objectives)
		if _, txErr := v.ValidateParent(ctx, o); txErr != nil {
			return txErr
		}
		return objectives.Create(ctx, o)
	})
	if err != nil {
		return err
	}
	s.record(ctx, actor, "objective_created", map[string]any{"objective_id": o.ID, "title": o.Title, "level": o.Level})

	if o.ParentID != nil {
		if _, aggErr := s.aggregator.Recalculate(ctx, *o.ParentID); aggErr != nil {
			return fmt.Errorf("objective created but aggregation failed, re-run recalculation for '%s': %w", *o.ParentID, aggErr)
		}
	}
	return nil
}

func (s *objectiveService) GetByID(ctx context.Context, id string) (*domain.Objective, error) {
	o, err := s.objectives.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading objective '%s': %w", id, err)
	}
	return o, nil
}

func (s *objectiveService) List(ctx context.Context, includeArchived bool) ([]*domain.Objective, error) {
	objectives, err := s.objectives.List(ctx, includeArchived)
	if err != nil {
		return nil, fmt.Errorf("listing objectives: %w", err)
	}
	return objectives, nil
}

// Update applies caller-editable fields. Level is fixed for the lifetime of
// an objective, and progress, status and the archive marker always come from
// the stored row regardless of what the caller sent. A version mismatch
// surfaces as a write conflict for the caller to retry with fresh data.
func (s *objectiveService) Update(ctx context.Context, actor string, o *domain.Objective) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"objective_id": o.ID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "update-objective",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	current, err := s.objectives.GetByID(ctx, o.ID)
	if err != nil {
		return fmt.Errorf("loading objective '%s': %w", o.ID, err)
	}
	if current.IsArchived() {
		return ValidationErrors{{Field: "id", Message: fmt.Sprintf("objective '%s' is archived and cannot be modified", o.ID)}}
	}
	if o.Level != current.Level {
		return ValidationErrors{{Field: "level", Message: "cannot be changed after creation"}}
	}

	o.Progress = current.Progress
	o.Status = current.Status
	o.ArchivedAt = current.ArchivedAt
	o.CreatedAt = current.CreatedAt
	o.Contributors = domain.DedupeIDs(o.Contributors)

	if err = s.validator.ValidateFields(o); err != nil {
		return err
	}

	oldParent := current.ParentID
	parentChanged := !sameParent(o.ParentID, oldParent)
	if parentChanged {
		if _, err = s.validator.ValidateParent(ctx, o); err != nil {
			return err
		}
		if err = s.validator.EnsureNoCycle(ctx, o.ID, o.ParentID); err != nil {
			return err
		}
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteObjectiveRepo(tx).Update(ctx, o)
	})
	if err != nil {
		return err
	}
	s.record(ctx, actor, "objective_updated", map[string]any{"objective_id": o.ID, "title": o.Title})

	if _, aggErr := s.aggregator.Recalculate(ctx, o.ID); aggErr != nil {
		return fmt.Errorf("objective updated but aggregation failed, re-run recalculation for '%s': %w", o.ID, aggErr)
	}
	if parentChanged && oldParent != nil {
		if _, aggErr := s.aggregator.Recalculate(ctx, *oldParent); aggErr != nil {
			return fmt.Errorf("objective updated but aggregation failed, re-run recalculation for '%s': %w", *oldParent, aggErr)
		}
	}
	return nil
}

// Archive soft-deletes an objective. Children are deliberately left alone so
// teams can re-parent or archive them on their own schedule; the former
// parent's aggregate is refreshed because archived nodes no longer count
// toward it. Archiving an already archived objective is a no-op.
func (s *objectiveService) Archive(ctx context.Context, actor, id string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"objective_id": id}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "archive-objective",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	var parentID *string
	var lastErr error
	archived := false
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		var o *domain.Objective
		o, err = s.objectives.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("loading objective '%s': %w", id, err)
		}
		if o.IsArchived() {
			return nil
		}
		parentID = o.ParentID

		now := time.Now().UTC()
		o.ArchivedAt = &now
		o.Status = domain.StatusArchived
		err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return repository.NewSQLiteObjectiveRepo(tx).Update(ctx, o)
		})
		if err == nil {
			archived = true
			break
		}
		if !errors.Is(err, repository.ErrWriteConflict) {
			return err
		}
		lastErr = err
	}
	if !archived {
		return fmt.Errorf("archiving objective '%s' after %d attempts: %w", id, maxConflictRetries, lastErr)
	}
	s.record(ctx, actor, "objective_archived", map[string]any{"objective_id": id})

	if parentID != nil {
		if _, aggErr := s.aggregator.Recalculate(ctx, *parentID); aggErr != nil {
			return fmt.Errorf("objective archived but aggregation failed, re-run recalculation for '%s': %w", *parentID, aggErr)
		}
	}
	return nil
}

func (s *objectiveService) record(ctx context.Context, actor, eventType string, payload any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, actor, eventType, payload)
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
