package cli

import (
	"github.com/spf13/cobra"

	"github.com/leuz9/oolu-kpis-sub000/internal/audit"
	"github.com/leuz9/oolu-kpis-sub000/internal/db"
	"github.com/leuz9/oolu-kpis-sub000/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Objectives    service.ObjectiveService
	KPIs          service.KPIService
	Links         service.LinkService
	Aggregator    service.AggregatorService
	Notifications service.NotificationService
	Status        service.StatusService
	Audit         *audit.Logger
	UoW           db.UnitOfWork

	// Actor is the user id recorded against every mutation, resolved
	// from OOLU_ACTOR or the OS username at startup.
	Actor string
}

// NewRootCmd creates the top-level "oolu" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "oolu",
		Short: "Objective and KPI tracker with hierarchical progress rollup",
	}

	root.AddCommand(
		newObjectiveCmd(app),
		newKPICmd(app),
		newLinkCmd(app),
		newProgressCmd(app),
		newStatusCmd(app),
		newImportCmd(app),
		newNotificationCmd(app),
		newAuditCmd(app),
	)

	return root
}
