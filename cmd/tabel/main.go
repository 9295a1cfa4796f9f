package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/tabelhq/tabel/internal/api"
	"github.com/tabelhq/tabel/internal/cli"
	"github.com/tabelhq/tabel/internal/config"
	"github.com/tabelhq/tabel/internal/db"
	"github.com/tabelhq/tabel/internal/repository"
	"github.com/tabelhq/tabel/internal/service"
	"github.com/tabelhq/tabel/internal/session"
	"github.com/tabelhq/tabel/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	// Open local state database (session cookies, cached identity)
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening local database: %w", err)
	}
	defer database.Close()

	// Wire repositories and the persistent cookie jar
	cookieRepo := repository.NewSQLiteCookieRepo(database)
	identityRepo := repository.NewSQLiteIdentityRepo(database)

	jar, err := session.NewJar(cookieRepo, cfg.ServerURL)
	if err != nil {
		return fmt.Errorf("restoring session: %w", err)
	}
	local := session.NewStore(jar, identityRepo)

	// Wire the HTTP gateway
	var observer api.Observer = api.NoopObserver{}
	if cfg.LogCalls {
		observer = api.NewLogObserver(os.Stderr)
	}
	client := api.New(cfg.ServerURL, jar, time.Duration(cfg.TimeoutMs)*time.Millisecond, observer)
	client.OnSessionExpired(func() {
		fmt.Fprintln(os.Stderr, "Session expired, run \"tabel login\" to sign in again.")
	})

	// Wire services and stores
	authSvc := service.NewAuthService(client)
	recordSvc := service.NewTimeRecordService(client)

	app := &cli.App{
		Auth:     store.NewAuthStore(authSvc, client, local),
		Calendar: store.NewCalendarStore(recordSvc, time.Now()),

		Schedules:     service.NewScheduleService(client),
		Notifications: service.NewNotificationService(client),
		Users:         service.NewUserService(client),
		Statistics:    service.NewStatisticsService(client),
		Charts:        service.NewChartService(client),

		Session: local,
	}

	// Detect interactive terminal for the calendar-TUI entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
