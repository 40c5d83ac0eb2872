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

// clearEnv blanks the conventional variables; viper treats empty values as unset.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "DATABASE_URL", "ANTHROPIC_API_KEY", "GIN_MODE"} {
		t.Setenv(k, "")
	}
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "", cfg.Database.URL)
	assert.Equal(t, "tag_tracker.db", cfg.Database.SQLitePath)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.Anthropic.Model)
	assert.Equal(t, int64(1000), cfg.Anthropic.MaxTokens)
	assert.Equal(t, 60*time.Second, cfg.Anthropic.Timeout)
	assert.Equal(t, 30, cfg.Tag.ReturnWindowDays)
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "8080"
  mode: debug
database:
  url: "postgres://u:p@db/tags"
anthropic:
  timeout: 15s
tag:
  return_window_days: 45
`)
	clearEnv(t)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "postgres://u:p@db/tags", cfg.Database.URL)
	assert.Equal(t, 15*time.Second, cfg.Anthropic.Timeout)
	assert.Equal(t, 45, cfg.Tag.ReturnWindowDays)
	// Untouched keys keep their defaults.
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_ConventionalEnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: \"8080\"\n")
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "mysql://u:p@db/tags")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("GIN_MODE", "test")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "mysql://u:p@db/tags", cfg.Database.URL)
	assert.Equal(t, "sk-test", cfg.Anthropic.APIKey)
	assert.Equal(t, "test", cfg.Server.Mode)
}

func TestLoad_PrefixedEnvOverrides(t *testing.T) {
	t.Setenv("TAG_TRACKER_TAG_RETURN_WINDOW_DAYS", "14")
	t.Setenv("TAG_TRACKER_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 14, cfg.Tag.ReturnWindowDays)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_RejectsNonPositiveWindow(t *testing.T) {
	path := writeConfig(t, "tag:\n  return_window_days: 0\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := writeConfig(t, "server: [unclosed\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestPath(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	assert.Equal(t, DefaultConfigPath, Path())

	t.Setenv(EnvConfigPath, "/etc/tag-tracker.yaml")
	assert.Equal(t, "/etc/tag-tracker.yaml", Path())
}
