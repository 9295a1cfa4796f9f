package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tabelhq/tabel/internal/cli/formatter"
)

func newStatsCmd(app *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Per-user hour totals for a month (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := ensureAdmin(ctx, app); err != nil {
				return err
			}

			anchor, err := parseMonthFlag(month)
			if err != nil {
				return err
			}

			stats, err := app.Statistics.UserStatistics(ctx, anchor.Year(), anchor.Month())
			if err != nil {
				return err
			}
			if len(stats) == 0 {
				fmt.Println("No statistics for this month.")
				return nil
			}

			rows := make([][]string, 0, len(stats))
			for _, s := range stats {
				rows = append(rows, []string{
					s.Email,
					formatter.FormatHoursPair(s.TotalHours, s.ExpectedHours),
				})
			}
			fmt.Print(formatter.RenderTable([]string{"USER", "LOGGED / EXPECTED"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month (YYYY-MM, default current)")
	return cmd
}

func newChartsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "charts",
		Short: "Aggregated chart data as tables (admin)",
	}

	cmd.AddCommand(
		newChartsDailyCmd(app),
		newChartsCumulativeCmd(app),
		newChartsUsersCmd(app),
	)

	return cmd
}

func newChartsDailyCmd(app *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Actual vs required hours per day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := ensureAdmin(ctx, app); err != nil {
				return err
			}
			anchor, err := parseMonthFlag(month)
			if err != nil {
				return err
			}

			points, err := app.Charts.ActualVsRequiredByDays(ctx, anchor.Year(), anchor.Month())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(points))
			for _, p := range points {
				rows = append(rows, []string{
					p.Date,
					formatter.FormatHours(p.ActualHours),
					formatter.FormatHours(p.RequiredHours),
				})
			}
			fmt.Print(formatter.RenderTable([]string{"DATE", "ACTUAL", "REQUIRED"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month (YYYY-MM, default current)")
	return cmd
}

func newChartsCumulativeCmd(app *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "cumulative",
		Short: "Cumulative hours per user over the month",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := ensureAdmin(ctx, app); err != nil {
				return err
			}
			anchor, err := parseMonthFlag(month)
			if err != nil {
				return err
			}

			series, err := app.Charts.CumulativeHoursByUsers(ctx, anchor.Year(), anchor.Month())
			if err != nil {
				return err
			}

			for _, s := range series {
				fmt.Println(formatter.Bold(s.Email))
				rows := make([][]string, 0, len(s.Data))
				for _, p := range s.Data {
					rows = append(rows, []string{p.Date, formatter.FormatHours(p.CumulativeHours)})
				}
				fmt.Print(formatter.RenderTable([]string{"DATE", "CUMULATIVE"}, rows))
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month (YYYY-MM, default current)")
	return cmd
}

func newChartsUsersCmd(app *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "users",
		Short: "Actual vs planned hours per user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := ensureAdmin(ctx, app); err != nil {
				return err
			}
			anchor, err := parseMonthFlag(month)
			if err != nil {
				return err
			}

			points, err := app.Charts.ActualVsPlannedByUsers(ctx, anchor.Year(), anchor.Month())
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(points))
			for _, p := range points {
				rows = append(rows, []string{
					p.Email,
					formatter.FormatHoursPair(p.ActualHours, p.PlannedHours),
				})
			}
			fmt.Print(formatter.RenderTable([]string{"USER", "ACTUAL / PLANNED"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month (YYYY-MM, default current)")
	return cmd
}
