package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tabelhq/tabel/internal/cli/formatter"
	"github.com/tabelhq/tabel/internal/domain"
	"github.com/tabelhq/tabel/internal/service"
)

func newUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts (admin)",
	}

	cmd.AddCommand(
		newUsersListCmd(app),
		newUsersUpdateCmd(app),
		newUsersRemoveCmd(app),
	)

	return cmd
}

func newUsersListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := ensureAdmin(ctx, app); err != nil {
				return err
			}

			users, err := app.Users.List(ctx)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(users))
			for _, u := range users {
				role := string(u.Role)
				if u.IsAdmin() {
					role = formatter.StyleYellow.Render(role)
				}
				rows = append(rows, []string{fmt.Sprintf("%d", u.ID), u.Email, role})
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "EMAIL", "ROLE"}, rows))
			return nil
		},
	}
}

func newUsersUpdateCmd(app *App) *cobra.Command {
	var id int
	var email, password, role string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Edit an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := ensureAdmin(ctx, app); err != nil {
				return err
			}
			if id == 0 {
				return fmt.Errorf("--id is required")
			}
			if role != "" && !domain.ValidRoles[role] {
				return fmt.Errorf("unknown role %q", role)
			}
			if password != "" && len(password) < domain.MinPasswordLength {
				return domain.ErrPasswordTooShort
			}

			u, err := app.Users.Update(ctx, service.UserUpdate{
				ID:       id,
				Email:    email,
				Password: password,
				Role:     domain.Role(role),
			})
			if err != nil {
				return err
			}
			fmt.Printf("%s Updated %s (%s)\n", formatter.StyleGreen.Render("✔"), formatter.Bold(u.Email), u.Role)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "User id")
	cmd.Flags().StringVar(&email, "email", "", "New email")
	cmd.Flags().StringVar(&password, "password", "", "New password (8 characters minimum)")
	cmd.Flags().StringVar(&role, "role", "", "New role (admin or employee)")
	return cmd
}

func newUsersRemoveCmd(app *App) *cobra.Command {
	var id int

	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Delete an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := ensureAdmin(ctx, app); err != nil {
				return err
			}
			if id == 0 {
				return fmt.Errorf("--id is required")
			}

			if err := app.Users.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Printf("Deleted user %d\n", id)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "User id")
	return cmd
}
