package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newCalendarCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar",
		Short: "Interactive month calendar",
		Long: `Open the month calendar. Navigate days with the arrow keys,
press enter to log or edit the selected day, and x to delete
the selected day's record.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalendarTUI(app)
		},
	}
}

func runCalendarTUI(app *App) error {
	app.Auth.CheckAuth(context.Background())

	p := tea.NewProgram(newCalendarModel(app), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
