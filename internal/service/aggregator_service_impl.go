package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/leuz9/oolu-kpis-sub000/internal/domain"
	"github.com/leuz9/oolu-kpis-sub000/internal/repository"
)

// maxConflictRetries bounds how many times a read-compute-write cycle is
// replayed after losing a version race to a concurrent writer.
const maxConflictRetries = 3

type aggregatorService struct {
	objectives repository.ObjectiveRepo
	kpis       repository.KPIRepo
	links      repository.LinkRepo
	notifier   StatusNotifier
	observer   UseCaseObserver
}

func NewAggregatorService(
	objectives repository.ObjectiveRepo,
	kpis repository.KPIRepo,
	links repository.LinkRepo,
	notifier StatusNotifier,
	observers ...UseCaseObserver,
) AggregatorService {
	return &aggregatorService{
		objectives: objectives,
		kpis:       kpis,
		links:      links,
		notifier:   notifier,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// Recalculate recomputes the objective's progress from its linked KPIs and
// active children, then repeats the computation for each ancestor up to the
// root. Every node is persisted before its parent is read, so a failure
// partway leaves a prefix of the chain updated and the rest stale; callers
// recover with RecalculateSubtree.
func (s *aggregatorService) Recalculate(ctx context.Context, objectiveID string) (result int, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"objective_id": objectiveID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "recalculate-progress",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	first := -1
	id := objectiveID
	for hops := 0; ; hops++ {
		if hops >= maxAncestorHops {
			return 0, fmt.Errorf("ancestor chain from '%s' exceeds %d hops: %w", objectiveID, maxAncestorHops, ErrHierarchyCycle)
		}
		progress, obj, recalcErr := s.recalcOne(ctx, id)
		if recalcErr != nil {
			return 0, recalcErr
		}
		if first == -1 {
			first = progress
		}
		if obj.ParentID == nil {
			break
		}
		id = *obj.ParentID
	}
	fields["progress"] = first
	return first, nil
}

// RecalculateSubtree re-aggregates every active node under root bottom-up,
// then propagates the root's fresh value toward its own ancestors. It is the
// recovery path for trees left partially stale by an interrupted update.
func (s *aggregatorService) RecalculateSubtree(ctx context.Context, rootID string) error {
	if err := s.recalcSubtree(ctx, rootID, 0); err != nil {
		return err
	}
	_, err := s.Recalculate(ctx, rootID)
	return err
}

func (s *aggregatorService) recalcSubtree(ctx context.Context, id string, depth int) error {
	if depth >= maxAncestorHops {
		return fmt.Errorf("subtree under '%s' exceeds %d levels: %w", id, maxAncestorHops, ErrHierarchyCycle)
	}
	children, err := s.objectives.ListChildren(ctx, id, true)
	if err != nil {
		return fmt.Errorf("listing children of '%s': %w", id, err)
	}
	for _, child := range children {
		if err := s.recalcSubtree(ctx, child.ID, depth+1); err != nil {
			return err
		}
	}
	_, _, err = s.recalcOne(ctx, id)
	return err
}

// recalcOne recomputes and persists a single objective's derived progress
// and status, retrying the full read-compute-write cycle on version
// conflicts. Archived objectives are left untouched so the chain walk can
// pass through them without reviving their status.
func (s *aggregatorService) recalcOne(ctx context.Context, id string) (int, *domain.Objective, error) {
	var lastErr error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		o, err := s.objectives.GetByID(ctx, id)
		if err != nil {
			return 0, nil, fmt.Errorf("loading objective '%s': %w", id, err)
		}
		if o.IsArchived() {
			return o.Progress, o, nil
		}

		progress, err := s.computeRollup(ctx, o)
		if err != nil {
			return 0, nil, err
		}
		status := domain.StatusForProgress(progress)
		if progress == o.Progress && status == o.Status {
			return progress, o, nil
		}

		from := o.Status
		o.Progress = progress
		o.Status = status
		if err := s.objectives.Update(ctx, o); err != nil {
			if errors.Is(err, repository.ErrWriteConflict) {
				lastErr = err
				continue
			}
			return 0, nil, fmt.Errorf("persisting progress for '%s': %w", id, err)
		}

		if status != from && s.notifier != nil {
			// Notification delivery never blocks or fails aggregation.
			_ = s.notifier.StatusChanged(ctx, o, from)
		}
		return progress, o, nil
	}
	return 0, nil, fmt.Errorf("recalculating objective '%s' after %d attempts: %w", id, maxConflictRetries, lastErr)
}

// computeRollup gathers the progress inputs for one objective: every linked
// KPI's percentage plus every active child's aggregated progress.
func (s *aggregatorService) computeRollup(ctx context.Context, o *domain.Objective) (int, error) {
	kpiIDs, err := s.links.KPIIDsFor(ctx, o.ID)
	if err != nil {
		return 0, fmt.Errorf("listing KPIs for '%s': %w", o.ID, err)
	}

	values := make([]int, 0, len(kpiIDs))
	for _, kpiID := range kpiIDs {
		k, err := s.kpis.GetByID(ctx, kpiID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return 0, fmt.Errorf("loading KPI '%s': %w", kpiID, err)
		}
		values = append(values, k.Progress)
	}

	children, err := s.objectives.ListChildren(ctx, o.ID, true)
	if err != nil {
		return 0, fmt.Errorf("listing children of '%s': %w", o.ID, err)
	}
	for _, child := range children {
		values = append(values, child.Progress)
	}

	return domain.Rollup(values), nil
}
