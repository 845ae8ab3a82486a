package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"CABLETRAINER_LOG_LEVEL", "CABLETRAINER_DEBUG", "CABLETRAINER_THEME", "CABLETRAINER_START_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "1s", cfg.Game.TickInterval)
	assert.True(t, cfg.Game.ReferenceSocket)
	assert.False(t, cfg.Game.StrictProgression)
	assert.Equal(t, 1, cfg.Game.StartLevel)
	assert.Equal(t, "auto", cfg.UI.Theme)
	assert.True(t, cfg.UI.AltScreen)
	assert.False(t, cfg.Logging.DebugMode)
	require.NoError(t, cfg.Validate())
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Game.ReferenceSocket = false
	cfg.Game.StrictProgression = true
	cfg.Game.StartLevel = 2
	cfg.Logging.Categories = map[string]bool{"ui": false}

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(cfg, loaded); diff != "" {
		t.Errorf("round trip (-saved +loaded):\n%s", diff)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("game:\n  start_level: 2\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Game.StartLevel)
	assert.Equal(t, "1s", cfg.Game.TickInterval)
	assert.Equal(t, "2s", cfg.UI.FeedbackTimeout)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("game: [unclosed"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad tick", func(c *Config) { c.Game.TickInterval = "soon" }, "tick_interval"},
		{"bad start level", func(c *Config) { c.Game.StartLevel = 0 }, "start_level"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad theme", func(c *Config) { c.UI.Theme = "neon" }, "ui.theme"},
		{"bad feedback", func(c *Config) { c.UI.FeedbackTimeout = "x" }, "feedback_timeout"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestConfig_DurationGetters(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, time.Second, cfg.GetTickInterval())
	assert.Equal(t, 2*time.Second, cfg.GetFeedbackTimeout())

	cfg.Game.TickInterval = "250ms"
	cfg.UI.FeedbackTimeout = "nope"
	assert.Equal(t, 250*time.Millisecond, cfg.GetTickInterval())
	assert.Equal(t, 2*time.Second, cfg.GetFeedbackTimeout())

	cfg.Game.TickInterval = "-1s"
	assert.Equal(t, time.Second, cfg.GetTickInterval())
}

func TestLoggingConfig_IsCategoryEnabled(t *testing.T) {
	lc := LoggingConfig{}
	assert.False(t, lc.IsCategoryEnabled("session"))

	lc.DebugMode = true
	assert.True(t, lc.IsCategoryEnabled("session"))

	lc.Categories = map[string]bool{"session": false, "ui": true}
	assert.False(t, lc.IsCategoryEnabled("session"))
	assert.True(t, lc.IsCategoryEnabled("ui"))
	assert.True(t, lc.IsCategoryEnabled("scoring"))
}
