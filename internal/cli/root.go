package cli

import (
	"time"

	"github.com/alexanderramin/kairos-gantt/internal/app"
	"github.com/alexanderramin/kairos-gantt/internal/domain"
	"github.com/alexanderramin/kairos-gantt/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands,
// plus the order slot the commands act on.
type App struct {
	Items    service.ItemService
	Timeline service.TimelineService
	Import   service.ImportService

	// Optional use-case overrides. Nil falls back to the services above.
	TimelineView app.TimelineUseCase
	ImportItems  app.ImportItemsUseCase

	UserID string
	Kind   domain.ResourceKind

	// Now overrides the clock for tests. Nil means time.Now.
	Now func() time.Time
	// IsInteractive reports whether stdin is a terminal. Nil means never.
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) orderKey() domain.OrderKey {
	return domain.OrderKey{ResourceKind: a.Kind, UserID: a.UserID}
}

// NewRootCmd creates the top-level "gantt" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	if app.Kind == "" {
		app.Kind = domain.ResourceTasks
	}

	root := &cobra.Command{
		Use:           "gantt",
		Short:         "Half-month gantt timeline for tasks and projects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&app.UserID, "user", app.UserID, "User whose row order is shown and saved")
	root.PersistentFlags().Var(newKindValue(&app.Kind), "kind", "Resource kind: tasks or projects")

	root.AddCommand(
		newItemCmd(app),
		newShowCmd(app),
		newMoveCmd(app),
		newOrderCmd(app),
		newImportCmd(app),
		newTUICmd(app),
	)

	return root
}
