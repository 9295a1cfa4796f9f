package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tabelhq/tabel/internal/cli/formatter"
	"github.com/tabelhq/tabel/internal/dateutil"
	"github.com/tabelhq/tabel/internal/domain"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "View and configure the work schedule",
	}

	cmd.AddCommand(
		newScheduleShowCmd(app),
		newScheduleSetCmd(app),
		newScheduleClearCmd(app),
	)

	return cmd
}

func newScheduleShowCmd(app *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the schedule for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := ensureAuth(ctx, app); err != nil {
				return err
			}

			anchor, err := parseMonthFlag(month)
			if err != nil {
				return err
			}

			entries, err := app.Schedules.ByMonth(ctx, anchor.Year(), anchor.Month())
			if err != nil {
				return err
			}
			expected, err := app.Schedules.ExpectedHours(ctx, anchor.Year(), anchor.Month())
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println("No schedule configured for this month.")
			} else {
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					key, err := dateutil.WireToKey(e.Date)
					if err != nil {
						key = e.Date
					}
					rows = append(rows, []string{key, formatter.FormatHours(e.RequiredHours)})
				}
				fmt.Print(formatter.RenderTable([]string{"DATE", "REQUIRED"}, rows))
			}

			fmt.Printf("\nExpected total: %s\n", formatter.Bold(formatter.FormatHours(expected)))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to show (YYYY-MM, default current)")
	return cmd
}

func newScheduleSetCmd(app *App) *cobra.Command {
	var month, date string
	var hours float64

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set required hours for a day or for all weekdays of a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := ensureAdmin(ctx, app); err != nil {
				return err
			}
			if hours < 0 || hours > 24 {
				return fmt.Errorf("--hours must be between 0 and 24")
			}

			var items []domain.ScheduleItem
			if date != "" {
				wire, err := dateutil.KeyToWire(date)
				if err != nil {
					return err
				}
				items = append(items, domain.ScheduleItem{Date: wire, RequiredHours: hours})
			} else {
				anchor, err := parseMonthFlag(month)
				if err != nil {
					return err
				}
				first, last := dateutil.MonthWindow(anchor)
				for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
					if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
						continue
					}
					items = append(items, domain.ScheduleItem{
						Date:          dateutil.FormatWire(d),
						RequiredHours: hours,
					})
				}
			}

			entries, err := app.Schedules.BulkSet(ctx, items)
			if err != nil {
				return err
			}
			fmt.Printf("%s Schedule set for %d day(s)\n", formatter.StyleGreen.Render("✔"), len(entries))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to fill weekdays for (YYYY-MM, default current)")
	cmd.Flags().StringVar(&date, "date", "", "Single day to set (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&hours, "hours", 8, "Required hours per day")
	return cmd
}

func newScheduleClearCmd(app *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove the schedule for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := ensureAdmin(ctx, app); err != nil {
				return err
			}

			anchor, err := parseMonthFlag(month)
			if err != nil {
				return err
			}
			if err := app.Schedules.Remove(ctx, anchor.Year(), anchor.Month()); err != nil {
				return err
			}
			fmt.Printf("Schedule cleared for %s\n", anchor.Format("2006-01"))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to clear (YYYY-MM, default current)")
	return cmd
}
