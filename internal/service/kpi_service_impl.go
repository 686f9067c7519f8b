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

type kpiService struct {
	uow        db.UnitOfWork
	kpis       repository.KPIRepo
	links      repository.LinkRepo
	aggregator AggregatorService
	audit      AuditRecorder
	observer   UseCaseObserver
}

func NewKPIService(
	uow db.UnitOfWork,
	kpis repository.KPIRepo,
	links repository.LinkRepo,
	aggregator AggregatorService,
	audit AuditRecorder,
	observers ...UseCaseObserver,
) KPIService {
	return &kpiService{
		uow:        uow,
		kpis:       kpis,
		links:      links,
		aggregator: aggregator,
		audit:      audit,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func validateKPI(k *domain.KPI) error {
	var errs ValidationErrors
	if k.Name == "" {
		errs = append(errs, ValidationError{Field: "name", Message: "is required"})
	}
	if k.Target == 0 {
		errs = append(errs, ValidationError{Field: "target", Message: "must be non-zero"})
	}
	return errs.OrNil()
}

func (s *kpiService) Create(ctx context.Context, actor string, k *domain.KPI) error {
	if k.ID == "" {
		k.ID = uuid.New().String()
	}
	if err := validateKPI(k); err != nil {
		return err
	}
	now := time.Now().UTC()
	k.CreatedAt = now
	k.UpdatedAt = now
	k.Recompute()

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteKPIRepo(tx).Create(ctx, k)
	})
	if err != nil {
		return err
	}
	s.record(ctx, actor, "kpi_created", map[string]any{"kpi_id": k.ID, "name": k.Name})
	return nil
}

func (s *kpiService) GetByID(ctx context.Context, id string) (*domain.KPI, error) {
	k, err := s.kpis.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading KPI '%s': %w", id, err)
	}
	return k, nil
}

func (s *kpiService) List(ctx context.Context) ([]*domain.KPI, error) {
	kpis, err := s.kpis.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing KPIs: %w", err)
	}
	return kpis, nil
}

// Update applies caller-editable KPI fields. Progress and status are
// recomputed from value and target, never taken from the caller; a version
// mismatch surfaces as a write conflict.
func (s *kpiService) Update(ctx context.Context, actor string, k *domain.KPI) error {
	current, err := s.kpis.GetByID(ctx, k.ID)
	if err != nil {
		return fmt.Errorf("loading KPI '%s': %w", k.ID, err)
	}
	if err := validateKPI(k); err != nil {
		return err
	}
	k.CreatedAt = current.CreatedAt
	k.Recompute()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteKPIRepo(tx).Update(ctx, k)
	})
	if err != nil {
		return err
	}
	s.record(ctx, actor, "kpi_updated", map[string]any{"kpi_id": k.ID, "name": k.Name})
	return s.refreshLinked(ctx, k.ID)
}

// SetValue records a new measurement and ripples the change through every
// objective the KPI is linked to. The KPI write retries on version conflicts
// since it is a pure read-modify-write with no caller-held state.
func (s *kpiService) SetValue(ctx context.Context, actor, id string, value float64) (progress int, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"kpi_id": id, "value": value}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "set-kpi-value",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	var lastErr error
	updated := false
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		var k *domain.KPI
		k, err = s.kpis.GetByID(ctx, id)
		if err != nil {
			return 0, fmt.Errorf("loading KPI '%s': %w", id, err)
		}
		k.Value = value
		k.Recompute()
		progress = k.Progress

		err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return repository.NewSQLiteKPIRepo(tx).Update(ctx, k)
		})
		if err == nil {
			updated = true
			break
		}
		if !errors.Is(err, repository.ErrWriteConflict) {
			return 0, err
		}
		lastErr = err
	}
	if !updated {
		return 0, fmt.Errorf("updating KPI '%s' after %d attempts: %w", id, maxConflictRetries, lastErr)
	}
	s.record(ctx, actor, "kpi_value_set", fields)

	if err = s.refreshLinked(ctx, id); err != nil {
		return 0, err
	}
	return progress, nil
}

// refreshLinked re-aggregates every objective linked to the KPI. Each chain
// walk subsumes the shared ancestors, so overlapping trees settle on the
// same final values regardless of order.
func (s *kpiService) refreshLinked(ctx context.Context, kpiID string) error {
	objectiveIDs, err := s.links.ObjectiveIDsFor(ctx, kpiID)
	if err != nil {
		return fmt.Errorf("listing objectives for KPI '%s': %w", kpiID, err)
	}
	for _, objectiveID := range objectiveIDs {
		if _, aggErr := s.aggregator.Recalculate(ctx, objectiveID); aggErr != nil {
			return fmt.Errorf("kpi updated but aggregation failed, re-run recalculation for '%s': %w", objectiveID, aggErr)
		}
	}
	return nil
}

func (s *kpiService) record(ctx context.Context, actor, eventType string, payload any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, actor, eventType, payload)
}
