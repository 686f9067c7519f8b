package service

import (
	"database/sql"
	"testing"

	"github.com/leuz9/oolu-kpis-sub000/internal/db"
	"github.com/leuz9/oolu-kpis-sub000/internal/notify"
	"github.com/leuz9/oolu-kpis-sub000/internal/repository"
	"github.com/leuz9/oolu-kpis-sub000/internal/testutil"
)

// testEnv wires the full service stack against an in-memory database.
type testEnv struct {
	database      *sql.DB
	uow           db.UnitOfWork
	objectiveRepo repository.ObjectiveRepo
	kpiRepo       repository.KPIRepo
	linkRepo      repository.LinkRepo
	notifRepo     repository.NotificationRepo

	aggregator AggregatorService
	objectives ObjectiveService
	kpis       KPIService
	links      LinkService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	env := &testEnv{
		database:      database,
		uow:           uow,
		objectiveRepo: repository.NewSQLiteObjectiveRepo(database),
		kpiRepo:       repository.NewSQLiteKPIRepo(database),
		linkRepo:      repository.NewSQLiteLinkRepo(database),
		notifRepo:     repository.NewSQLiteNotificationRepo(database),
	}

	notifier := notify.NewNotifier(env.notifRepo)
	env.aggregator = NewAggregatorService(env.objectiveRepo, env.kpiRepo, env.linkRepo, notifier)
	env.objectives = NewObjectiveService(uow, env.objectiveRepo, env.aggregator, nil)
	env.kpis = NewKPIService(uow, env.kpiRepo, env.linkRepo, env.aggregator, nil)
	env.links = NewLinkService(uow, env.aggregator, nil)

	return env
}

const testActor = "alice"
