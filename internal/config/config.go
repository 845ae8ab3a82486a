package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all cabletrainer configuration.
type Config struct {
	// Game rules
	Game GameConfig `yaml:"game" json:"game"`

	// Logging
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Terminal user interface
	UI UIConfig `yaml:"ui" json:"ui"`
}

// GameConfig configures the level controller.
type GameConfig struct {
	// TickInterval is how often the attempt clock is refreshed.
	TickInterval string `yaml:"tick_interval" json:"tick_interval"`

	// ReferenceSocket pre-wires socket B as a worked example.
	ReferenceSocket bool `yaml:"reference_socket" json:"reference_socket"`

	// StrictProgression locks a level until the previous one is passed.
	StrictProgression bool `yaml:"strict_progression" json:"strict_progression"`

	// StartLevel is the level selected on launch (1 duct, 2 socket).
	StartLevel int `yaml:"start_level" json:"start_level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Game: GameConfig{
			TickInterval:      "1s",
			ReferenceSocket:   true,
			StrictProgression: false,
			StartLevel:        1,
		},

		Logging: LoggingConfig{
			Level:     "info",
			Format:    "json",
			DebugMode: false,
			LogDir:    ".cabletrainer/logs",
		},

		UI: *DefaultUIConfig(),
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Defaults if the file doesn't exist
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if level := os.Getenv("CABLETRAINER_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
	if debug := os.Getenv("CABLETRAINER_DEBUG"); debug != "" {
		if on, err := strconv.ParseBool(debug); err == nil {
			c.Logging.DebugMode = on
		}
	}
	if theme := os.Getenv("CABLETRAINER_THEME"); theme != "" {
		c.UI.Theme = strings.ToLower(theme)
	}
	if start := os.Getenv("CABLETRAINER_START_LEVEL"); start != "" {
		if n, err := strconv.Atoi(start); err == nil {
			c.Game.StartLevel = n
		}
	}
}

// GetTickInterval returns the clock refresh interval as a duration.
func (c *Config) GetTickInterval() time.Duration {
	d, err := time.ParseDuration(c.Game.TickInterval)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}

// GetFeedbackTimeout returns how long a status line stays visible.
func (c *Config) GetFeedbackTimeout() time.Duration {
	d, err := time.ParseDuration(c.UI.FeedbackTimeout)
	if err != nil || d <= 0 {
		return 2 * time.Second
	}
	return d
}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// ValidThemes lists the accepted UI themes.
var ValidThemes = []string{"auto", "light", "dark"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := time.ParseDuration(c.Game.TickInterval); err != nil {
		return fmt.Errorf("invalid game.tick_interval %q: %w", c.Game.TickInterval, err)
	}
	if c.Game.StartLevel < 1 {
		return fmt.Errorf("invalid game.start_level: %d", c.Game.StartLevel)
	}
	if !contains(ValidLogLevels, c.Logging.Level) {
		return fmt.Errorf("invalid logging.level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("invalid logging.format: %s (valid: json, console)", c.Logging.Format)
	}
	if !contains(ValidThemes, c.UI.Theme) {
		return fmt.Errorf("invalid ui.theme: %s (valid: %v)", c.UI.Theme, ValidThemes)
	}
	if _, err := time.ParseDuration(c.UI.FeedbackTimeout); err != nil {
		return fmt.Errorf("invalid ui.feedback_timeout %q: %w", c.UI.FeedbackTimeout, err)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
