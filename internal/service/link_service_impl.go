package service

import (
	"context"
	"fmt"
	"time"

	"github.com/leuz9/oolu-kpis-sub000/internal/db"
	"github.com/leuz9/oolu-kpis-sub000/internal/repository"
)

type linkService struct {
	uow        db.UnitOfWork
	aggregator AggregatorService
	audit      AuditRecorder
	observer   UseCaseObserver
}

func NewLinkService(uow db.UnitOfWork, aggregator AggregatorService, audit AuditRecorder, observers ...UseCaseObserver) LinkService {
	return &linkService{
		uow:        uow,
		aggregator: aggregator,
		audit:      audit,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// Link associates a KPI with an objective. The edge write happens in one
// transaction so the relationship is never visible from only one side.
// Re-aggregation runs after commit; if it fails the link still stands and
// the error tells the caller to re-run the rollup.
func (s *linkService) Link(ctx context.Context, actor, objectiveID, kpiID string) (progress int, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"objective_id": objectiveID, "kpi_id": kpiID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "link-kpi",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		objectives := repository.NewSQLiteObjectiveRepo(tx)
		kpis := repository.NewSQLiteKPIRepo(tx)
		links := repository.NewSQLiteLinkRepo(tx)

		o, txErr := objectives.GetByID(ctx, objectiveID)
		if txErr != nil {
			return fmt.Errorf("loading objective '%s': %w", objectiveID, txErr)
		}
		if o.IsArchived() {
			return ValidationErrors{{Field: "objectiveId", Message: fmt.Sprintf("objective '%s' is archived", objectiveID)}}
		}
		if _, txErr = kpis.GetByID(ctx, kpiID); txErr != nil {
			return fmt.Errorf("loading KPI '%s': %w", kpiID, txErr)
		}
		return links.Link(ctx, objectiveID, kpiID)
	})
	if err != nil {
		return 0, err
	}
	s.record(ctx, actor, "kpi_linked", fields)

	progress, aggErr := s.aggregator.Recalculate(ctx, objectiveID)
	if aggErr != nil {
		return 0, fmt.Errorf("kpi linked but aggregation failed, re-run recalculation for '%s': %w", objectiveID, aggErr)
	}
	return progress, nil
}

// Unlink removes the association. Unlinking a pair that is not linked is a
// no-op, matching Link's idempotence in the other direction.
func (s *linkService) Unlink(ctx context.Context, actor, objectiveID, kpiID string) (progress int, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"objective_id": objectiveID, "kpi_id": kpiID}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "unlink-kpi",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		objectives := repository.NewSQLiteObjectiveRepo(tx)
		kpis := repository.NewSQLiteKPIRepo(tx)
		links := repository.NewSQLiteLinkRepo(tx)

		if _, txErr := objectives.GetByID(ctx, objectiveID); txErr != nil {
			return fmt.Errorf("loading objective '%s': %w", objectiveID, txErr)
		}
		if _, txErr := kpis.GetByID(ctx, kpiID); txErr != nil {
			return fmt.Errorf("loading KPI '%s': %w", kpiID, txErr)
		}
		return links.Unlink(ctx, objectiveID, kpiID)
	})
	if err != nil {
		return 0, err
	}
	s.record(ctx, actor, "kpi_unlinked", fields)

	progress, aggErr := s.aggregator.Recalculate(ctx, objectiveID)
	if aggErr != nil {
		return 0, fmt.Errorf("kpi unlinked but aggregation failed, re-run recalculation for '%s': %w", objectiveID, aggErr)
	}
	return progress, nil
}

func (s *linkService) record(ctx context.Context, actor, eventType string, payload any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, actor, eventType, payload)
}
