package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tabelhq/tabel/internal/domain"
	"github.com/tabelhq/tabel/internal/service"
	"github.com/tabelhq/tabel/internal/session"
	"github.com/tabelhq/tabel/internal/store"
)

// App holds the stores and services used by CLI commands.
type App struct {
	Auth     *store.AuthStore
	Calendar *store.CalendarStore

	Schedules     service.ScheduleService
	Notifications service.NotificationService
	Users         service.UserService
	Statistics    service.StatisticsService
	Charts        service.ChartService

	Session *session.Store

	// IsInteractive reports whether stdin is a terminal; bare "tabel"
	// opens the calendar TUI only then.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "tabel" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "tabel",
		Short: "Terminal client for the employee time-tracking server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runCalendarTUI(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newLoginCmd(app),
		newRegisterCmd(app),
		newLogoutCmd(app),
		newWhoamiCmd(app),
		newProfileCmd(app),
		newCalendarCmd(app),
		newRecordCmd(app),
		newScheduleCmd(app),
		newStatsCmd(app),
		newChartsCmd(app),
		newNotifyCmd(app),
		newUsersCmd(app),
	)

	return root
}

// ensureAuth confirms session liveness before a command runs. The
// gateway refreshes an expired session transparently; this only fails
// when no usable session exists at all.
func ensureAuth(ctx context.Context, app *App) (*domain.User, error) {
	app.Auth.CheckAuth(ctx)
	state := app.Auth.Snapshot()
	if !state.IsAuthenticated {
		return nil, fmt.Errorf("not signed in, run \"tabel login\" first")
	}
	return state.User, nil
}

// ensureAdmin is ensureAuth plus a role gate for admin surfaces.
func ensureAdmin(ctx context.Context, app *App) (*domain.User, error) {
	u, err := ensureAuth(ctx, app)
	if err != nil {
		return nil, err
	}
	if !u.IsAdmin() {
		return nil, fmt.Errorf("this command requires the admin role")
	}
	return u, nil
}
