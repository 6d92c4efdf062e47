package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/eap/internal/app"
	"github.com/alexanderramin/eap/internal/domain"
	"github.com/alexanderramin/eap/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and process settings used by CLI commands.
type App struct {
	EAPs    service.EAPService
	WBS     service.WBSService
	Imports service.ImportService

	// Optional use-case overrides. When nil, the services above serve them.
	TreeView     app.TreeUseCase
	StatusView   app.StatusUseCase
	ScheduleView app.ScheduleUseCase
	ImportEAP    app.ImportEAPUseCase

	// Session identifies the user recorded as author of new EAPs.
	Session domain.Session

	// Now overrides the clock for overdue checks. Nil means time.Now.
	Now func() time.Time

	// IsInteractive reports whether stdin is a terminal. Interactive forms
	// are only offered when it returns true.
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now().UTC()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "eap" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "eap",
		Short:         "Work breakdown structure planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetContext(context.Background())

	root.AddCommand(
		newProjectCmd(app),
		newItemCmd(app),
		newDepCmd(app),
		newTreeCmd(app),
		newBrowseCmd(app),
		newStatsCmd(app),
		newGanttCmd(app),
		newCheckCmd(app),
		newImportCmd(app),
	)

	return root
}
