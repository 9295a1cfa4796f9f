package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/tabelhq/tabel/internal/cli/formatter"
	"github.com/tabelhq/tabel/internal/domain"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the time-tracking server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if email == "" || password == "" {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("--email and --password are required in non-interactive mode")
				}
				if err := credentialsForm(&email, &password).Run(); err != nil {
					return err
				}
			}

			if err := app.Auth.Login(ctx, domain.Credentials{Email: email, Password: password}); err != nil {
				return fmt.Errorf("%s", app.Auth.Snapshot().Err)
			}

			u := app.Auth.Snapshot().User
			fmt.Printf("%s Signed in as %s (%s)\n", formatter.StyleGreen.Render("✔"), formatter.Bold(u.Email), u.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	return cmd
}

func newRegisterCmd(app *App) *cobra.Command {
	var email, password, role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if email == "" || password == "" {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("--email and --password are required in non-interactive mode")
				}
				if err := credentialsForm(&email, &password).Run(); err != nil {
					return err
				}
			}

			reg := domain.Registration{Email: email, Password: password, Role: domain.Role(role)}
			if err := reg.Validate(); err != nil {
				return err
			}
			if role != "" && !domain.ValidRoles[role] {
				return fmt.Errorf("unknown role %q", role)
			}

			if err := app.Auth.Register(ctx, reg); err != nil {
				return fmt.Errorf("%s", app.Auth.Snapshot().Err)
			}

			fmt.Printf("%s Registered %s\n", formatter.StyleGreen.Render("✔"), formatter.Bold(email))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (8 characters minimum)")
	cmd.Flags().StringVar(&role, "role", "", "Account role (admin or employee)")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and drop the local session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Auth.Logout(context.Background())
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app.Auth.CheckAuth(ctx)
			state := app.Auth.Snapshot()
			if !state.IsAuthenticated {
				fmt.Println("Not signed in.")
				return nil
			}

			// The liveness check carries no email; fill it from the
			// cached identity when available.
			email := state.User.Email
			if email == "" {
				if cached, err := app.Session.CachedIdentity(ctx); err == nil && cached != nil {
					email = cached.Email
				}
			}
			if email == "" {
				email = fmt.Sprintf("user #%d", state.User.ID)
			}
			fmt.Printf("%s (%s)\n", formatter.Bold(email), state.User.Role)
			return nil
		},
	}
}

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage the signed-in account",
	}
	cmd.AddCommand(newProfileUpdateCmd(app))
	return cmd
}

func newProfileUpdateCmd(app *App) *cobra.Command {
	var currentPassword, email, newPassword string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change account email or password",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			if _, err := ensureAuth(ctx, app); err != nil {
				return err
			}

			if currentPassword == "" {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("--current-password is required in non-interactive mode")
				}
				form := huh.NewForm(huh.NewGroup(
					huh.NewInput().Title("Current password").EchoMode(huh.EchoModePassword).Value(&currentPassword),
				)).WithTheme(tabelHuhTheme()).WithShowHelp(false)
				if err := form.Run(); err != nil {
					return err
				}
			}

			update := domain.ProfileUpdate{
				CurrentPassword: currentPassword,
				Email:           email,
				NewPassword:     newPassword,
			}
			if err := app.Auth.UpdateProfile(ctx, update); err != nil {
				return fmt.Errorf("%s", app.Auth.Snapshot().Err)
			}

			fmt.Printf("%s Profile updated\n", formatter.StyleGreen.Render("✔"))
			return nil
		},
	}

	cmd.Flags().StringVar(&currentPassword, "current-password", "", "Current password (always required)")
	cmd.Flags().StringVar(&email, "email", "", "New email")
	cmd.Flags().StringVar(&newPassword, "new-password", "", "New password (8 characters minimum)")
	return cmd
}
