package main

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/leuz9/oolu-kpis-sub000/internal/audit"
	"github.com/leuz9/oolu-kpis-sub000/internal/cli"
	"github.com/leuz9/oolu-kpis-sub000/internal/db"
	"github.com/leuz9/oolu-kpis-sub000/internal/notify"
	"github.com/leuz9/oolu-kpis-sub000/internal/repository"
	"github.com/leuz9/oolu-kpis-sub000/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.oolu/oolu.db
	dbPath := os.Getenv("OOLU_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".oolu", "oolu.db")
	}

	// Plain output when piped or redirected.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	objectiveRepo := repository.NewSQLiteObjectiveRepo(database)
	kpiRepo := repository.NewSQLiteKPIRepo(database)
	linkRepo := repository.NewSQLiteLinkRepo(database)
	notificationRepo := repository.NewSQLiteNotificationRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	auditLog := audit.NewLogger(database)
	notifier := notify.NewNotifier(notificationRepo)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if os.Getenv("OOLU_LOG") != "" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	aggregator := service.NewAggregatorService(objectiveRepo, kpiRepo, linkRepo, notifier, observer)

	app := &cli.App{
		Objectives:    service.NewObjectiveService(uow, objectiveRepo, aggregator, auditLog, observer),
		KPIs:          service.NewKPIService(uow, kpiRepo, linkRepo, aggregator, auditLog, observer),
		Links:         service.NewLinkService(uow, aggregator, auditLog, observer),
		Aggregator:    aggregator,
		Notifications: service.NewNotificationService(notificationRepo, auditLog),
		Status:        service.NewStatusService(objectiveRepo, kpiRepo, linkRepo),
		Audit:         auditLog,
		UoW:           uow,
		Actor:         resolveActor(),
	}

	return cli.NewRootCmd(app).Execute()
}

// resolveActor picks the user id recorded on mutations: OOLU_ACTOR wins,
// then the OS username, then a fixed fallback.
func resolveActor() string {
	if actor := os.Getenv("OOLU_ACTOR"); actor != "" {
		return actor
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "unknown"
}
