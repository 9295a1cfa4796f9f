package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/tabelhq/tabel/internal/cli/formatter"
	"github.com/tabelhq/tabel/internal/dateutil"
)

func newRecordCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Manage your time records",
	}

	cmd.AddCommand(
		newRecordLogCmd(app),
		newRecordListCmd(app),
		newRecordRemoveCmd(app),
	)

	return cmd
}

// parseMonthFlag parses a YYYY-MM month flag, defaulting to now.
func parseMonthFlag(month string) (time.Time, error) {
	if month == "" {
		return time.Now(), nil
	}
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM", month)
	}
	return t, nil
}

func newRecordLogCmd(app *App) *cobra.Command {
	var date, description string
	var hours float64

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log hours for a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := ensureAuth(ctx, app); err != nil {
				return err
			}

			if date == "" {
				date = dateutil.FormatKey(time.Now())
			}
			if _, err := dateutil.ParseKey(date); err != nil {
				return err
			}

			if err := app.Calendar.Create(ctx, date, hours, description); err != nil {
				return fmt.Errorf("%s", app.Calendar.Snapshot().Err)
			}

			fmt.Printf("%s Logged %s on %s\n", formatter.StyleGreen.Render("✔"),
				formatter.Bold(formatter.FormatHours(hours)), date)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to log (YYYY-MM-DD, default today)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Hours worked (0-24, fractions allowed)")
	cmd.Flags().StringVar(&description, "desc", "", "What was worked on")
	return cmd
}

func newRecordListCmd(app *App) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your records for a month",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := ensureAuth(ctx, app); err != nil {
				return err
			}

			anchor, err := parseMonthFlag(month)
			if err != nil {
				return err
			}
			if err := app.Calendar.SetCurrentDate(ctx, anchor); err != nil {
				return fmt.Errorf("%s", app.Calendar.Snapshot().Err)
			}

			state := app.Calendar.Snapshot()
			keys := make([]string, 0, len(state.Records))
			for k := range state.Records {
				keys = append(keys, k)
			}
			sort.Strings(keys)

			if len(keys) == 0 {
				fmt.Println("No records for this month.")
				return nil
			}

			var total float64
			rows := make([][]string, 0, len(keys))
			for _, k := range keys {
				rec := state.Records[k]
				total += rec.Hours
				rows = append(rows, []string{
					k,
					formatter.FormatHours(rec.Hours),
					fmt.Sprintf("%d", rec.ID),
					formatter.Truncate(rec.Description, 48),
				})
			}

			fmt.Print(formatter.RenderTable([]string{"DATE", "HOURS", "ID", "DESCRIPTION"}, rows))
			fmt.Printf("\nTotal: %s\n", formatter.Bold(formatter.FormatHours(total)))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to list (YYYY-MM, default current)")
	return cmd
}

func newRecordRemoveCmd(app *App) *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete a record by id",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := ensureAuth(ctx, app); err != nil {
				return err
			}
			if id == 0 {
				return fmt.Errorf("--id is required")
			}

			if err := app.Calendar.Delete(ctx, id); err != nil {
				return fmt.Errorf("%s", app.Calendar.Snapshot().Err)
			}
			fmt.Printf("Deleted record %d\n", id)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Record id")
	return cmd
}
