package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "catalog:\n  enabled: false\n"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Minute, cfg.Server.CacheTTL)
	assert.Equal(t, "Ras Al Khaimah", cfg.Planner.City)
	assert.Equal(t, "Ras Al Khaimah", cfg.Planner.Locality)
	assert.Equal(t, 15, cfg.Planner.BufferMinutes)
	assert.Equal(t, "09:00", cfg.Planner.DailyStart)
	assert.Equal(t, []int{30, 60, 90, 120}, cfg.Planner.SurpriseDurations)
	assert.Equal(t, "overpass", cfg.Catalog.Provider)
	assert.Equal(t, 6*time.Hour, cfg.Catalog.Interval)
	assert.False(t, cfg.Catalog.Enabled)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "planner.db", cfg.Database.DSN)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
server:
  port: 9000
planner:
  city: "Dubai"
  buffer_minutes: 20
  max_places: 8
catalog:
  provider: google
  interval_seconds: 60
  categories: [museum]
database:
  driver: postgres
  dsn: "host=localhost user=planner"
`))
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "Dubai", cfg.Planner.City)
	assert.Equal(t, "Dubai", cfg.Planner.Locality)
	assert.Equal(t, 20, cfg.Planner.BufferMinutes)
	assert.Equal(t, 8, cfg.Planner.MaxPlaces)
	assert.Equal(t, "google", cfg.Catalog.Provider)
	assert.Equal(t, time.Minute, cfg.Catalog.Interval)
	assert.Equal(t, []string{"museum"}, cfg.Catalog.Categories)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "host=localhost user=planner", cfg.Database.DSN)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PLANNER_GOOGLE_API_KEY", "secret")
	t.Setenv("PLANNER_SERVER_PORT", "7070")
	t.Setenv("PLANNER_DATABASE_DSN", "file.db")

	cfg, err := Load(writeConfig(t, "server:\n  port: 9000\ncatalog:\n  google:\n    api_key: from-file\n"))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Catalog.Google.APIKey)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "file.db", cfg.Database.DSN)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "server: [not a map"))
	assert.Error(t, err)

	t.Setenv("PLANNER_SERVER_PORT", "not-a-number")
	_, err = Load(writeConfig(t, "{}"))
	assert.Error(t, err)
}

func TestLoad_ZeroValuesAndOmittedKeys(t *testing.T) {
	cfg, err := Load(writeConfig(t, "planner:\n  buffer_minutes: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Planner.BufferMinutes, "an explicit zero buffer is kept")
	assert.True(t, cfg.Catalog.Enabled, "catalog is enabled unless the file says otherwise")

	cfg, err = Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Planner.BufferMinutes)
	assert.True(t, cfg.Catalog.Enabled)

	cfg, err = Load(writeConfig(t, "planner:\n  buffer_minutes: -3\n"))
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Planner.BufferMinutes)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.Catalog.Enabled)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestPlannerLocation(t *testing.T) {
	assert.Equal(t, "Asia/Dubai", PlannerConfig{Timezone: "Asia/Dubai"}.Location().String())
	assert.Equal(t, time.UTC, PlannerConfig{Timezone: "Nowhere/Invalid"}.Location())
}
