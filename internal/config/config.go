package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all client configuration.
type Config struct {
	ServerURL string // base URL of the time-tracking API
	DBPath    string // local sqlite state (cookies, cached identity)
	TimeoutMs int    // per-request timeout
	LogCalls  bool   // emit gateway call events to stderr
}

// DefaultConfig returns a Config with sensible defaults. The DB path
// defaults to ~/.tabel/tabel.db.
func DefaultConfig() Config {
	dbPath := "tabel.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".tabel", "tabel.db")
	}
	return Config{
		ServerURL: "http://localhost:3000/api",
		DBPath:    dbPath,
		TimeoutMs: 15000,
		LogCalls:  false,
	}
}

// Load reads configuration from environment variables, falling back to
// defaults for any unset values.
func Load() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("TABEL_SERVER"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("TABEL_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TABEL_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("TABEL_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg
}
