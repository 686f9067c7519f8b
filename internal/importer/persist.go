package importer

import (
	"context"
	"fmt"

	"github.com/leuz9/oolu-kpis-sub000/internal/db"
	"github.com/leuz9/oolu-kpis-sub000/internal/repository"
)

// Persist writes the whole converted tree in a single transaction. Either
// every objective, KPI and link lands or none do; a failed import never
// leaves a half-built hierarchy behind.
func Persist(ctx context.Context, uow db.UnitOfWork, tree *SeedTree) error {
	return uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		objectives := repository.NewSQLiteObjectiveRepo(tx)
		kpis := repository.NewSQLiteKPIRepo(tx)
		links := repository.NewSQLiteLinkRepo(tx)

		for _, o := range tree.Objectives {
			if err := objectives.Create(ctx, o); err != nil {
				return fmt.Errorf("creating objective %q: %w", o.Title, err)
			}
		}
		for _, k := range tree.KPIs {
			if err := kpis.Create(ctx, k); err != nil {
				return fmt.Errorf("creating KPI %q: %w", k.Name, err)
			}
		}
		for _, l := range tree.Links {
			if err := links.Link(ctx, l.ObjectiveID, l.KPIID); err != nil {
				return fmt.Errorf("linking KPI '%s' to objective '%s': %w", l.KPIID, l.ObjectiveID, err)
			}
		}
		return nil
	})
}
