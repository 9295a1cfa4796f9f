package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tabelhq/tabel/internal/cli/formatter"
)

func newNotifyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify",
		Short: "View notifications",
	}

	cmd.AddCommand(
		newNotifyListCmd(app),
		newNotifyReadCmd(app),
		newNotifyReadAllCmd(app),
		newNotifyCheckCmd(app),
	)

	return cmd
}

func newNotifyListCmd(app *App) *cobra.Command {
	var unreadOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := ensureAuth(ctx, app); err != nil {
				return err
			}

			notifications, err := app.Notifications.List(ctx)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(notifications))
			for _, n := range notifications {
				if unreadOnly && n.IsRead {
					continue
				}
				msg := formatter.Truncate(n.Message, 64)
				if !n.IsRead {
					msg = formatter.Bold(msg)
				}
				rows = append(rows, []string{
					formatter.OutcomeIndicator(n.IsGood),
					fmt.Sprintf("%d", n.ID),
					n.Date,
					msg,
				})
			}
			if len(rows) == 0 {
				fmt.Println("No notifications.")
				return nil
			}

			fmt.Print(formatter.RenderTable([]string{"", "ID", "DATE", "MESSAGE"}, rows))

			count, err := app.Notifications.UnreadCount(ctx)
			if err == nil && count > 0 {
				fmt.Printf("\n%d unread\n", count)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "Only show unread notifications")
	return cmd
}

func newNotifyReadCmd(app *App) *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Mark one notification as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := ensureAuth(ctx, app); err != nil {
				return err
			}
			if id == 0 {
				return fmt.Errorf("--id is required")
			}

			if _, err := app.Notifications.MarkRead(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Notification %d marked read\n", id)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Notification id")
	return cmd
}

func newNotifyReadAllCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := ensureAuth(ctx, app); err != nil {
				return err
			}

			count, err := app.Notifications.MarkAllRead(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%d notification(s) marked read\n", count)
			return nil
		},
	}
}

func newNotifyCheckCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Ask the server to generate pending notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := ensureAuth(ctx, app); err != nil {
				return err
			}
			if err := app.Notifications.Check(ctx); err != nil {
				return err
			}
			fmt.Println("Notification check triggered.")
			return nil
		},
	}
}
