package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("TABEL_SERVER", "")
	t.Setenv("TABEL_DB", "")
	t.Setenv("TABEL_TIMEOUT_MS", "")
	t.Setenv("TABEL_LOG_CALLS", "")

	cfg := Load()
	assert.Equal(t, "http://localhost:3000/api", cfg.ServerURL)
	assert.Equal(t, 15000, cfg.TimeoutMs)
	assert.False(t, cfg.LogCalls)
	assert.NotEmpty(t, cfg.DBPath)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TABEL_SERVER", "https://tracker.example.com/api")
	t.Setenv("TABEL_DB", "/tmp/t.db")
	t.Setenv("TABEL_TIMEOUT_MS", "2500")
	t.Setenv("TABEL_LOG_CALLS", "true")

	cfg := Load()
	assert.Equal(t, "https://tracker.example.com/api", cfg.ServerURL)
	assert.Equal(t, "/tmp/t.db", cfg.DBPath)
	assert.Equal(t, 2500, cfg.TimeoutMs)
	assert.True(t, cfg.LogCalls)
}

func TestLoad_InvalidTimeoutIgnored(t *testing.T) {
	t.Setenv("TABEL_TIMEOUT_MS", "not-a-number")
	cfg := Load()
	assert.Equal(t, 15000, cfg.TimeoutMs)

	t.Setenv("TABEL_TIMEOUT_MS", "-5")
	cfg = Load()
	assert.Equal(t, 15000, cfg.TimeoutMs)
}
