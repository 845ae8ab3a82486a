// Package logging provides config-driven categorized file logging for
// cabletrainer. Each category writes to its own date-prefixed file under the
// configured log directory. When debug mode is off every category logger is a
// no-op, so the terminal UI never shares the screen with log output.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"cabletrainer/internal/config"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot      Category = "boot"      // Startup and configuration
	CategorySession   Category = "session"   // Attempt creation and replacement
	CategoryPlacement Category = "placement" // Accepted and rejected placements
	CategoryScoring   Category = "scoring"   // Check results
	CategoryLevel     Category = "level"     // Level selection, timer, progression
	CategoryScript    Category = "script"    // Scripted replays
	CategoryUI        Category = "ui"        // Terminal UI events
)

// Categories lists every known category.
var Categories = []Category{
	CategoryBoot,
	CategorySession,
	CategoryPlacement,
	CategoryScoring,
	CategoryLevel,
	CategoryScript,
	CategoryUI,
}

type entry struct {
	logger *zap.Logger
	file   *os.File
}

var (
	mu      sync.RWMutex
	cfg     config.LoggingConfig
	level   zapcore.Level
	now     = time.Now
	loggers = make(map[Category]entry)
)

// Initialize applies the logging configuration. It may be called again to
// reconfigure; open category files are closed first.
func Initialize(c config.LoggingConfig) error {
	CloseAll()

	lvl, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	mu.Lock()
	cfg = c
	level = lvl
	mu.Unlock()

	if !c.DebugMode {
		return nil
	}
	if c.LogDir == "" {
		return fmt.Errorf("logging.log_dir required in debug mode")
	}
	if err := os.MkdirAll(c.LogDir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}

	boot := Get(CategoryBoot)
	boot.Info("logging initialized",
		zap.String("dir", c.LogDir),
		zap.String("level", lvl.String()),
		zap.String("format", c.Format))
	for _, cat := range Categories {
		boot.Debug("category", zap.String("name", string(cat)), zap.Bool("enabled", IsCategoryEnabled(cat)))
	}
	return nil
}

// IsDebugMode returns whether category logging is on.
func IsDebugMode() bool {
	mu.RLock()
	defer mu.RUnlock()
	return cfg.DebugMode
}

// IsCategoryEnabled returns whether a specific category is enabled.
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return cfg.IsCategoryEnabled(string(category))
}

// Get returns (or creates) the logger for a category. It returns a no-op
// logger if debug mode or the category is disabled.
func Get(category Category) *zap.Logger {
	if !IsCategoryEnabled(category) {
		return zap.NewNop()
	}

	mu.RLock()
	if e, ok := loggers[category]; ok {
		mu.RUnlock()
		return e.logger
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()

	// Double-check after acquiring write lock
	if e, ok := loggers[category]; ok {
		return e.logger
	}

	// Date prefix for easy rotation
	filename := fmt.Sprintf("%s_%s.log", now().Format("2006-01-02"), category)
	path := filepath.Join(cfg.LogDir, filename)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] Warning: could not open log file %s: %v\n", path, err)
		return zap.NewNop()
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if cfg.Format == "console" {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(file), level)
	l := zap.New(core).With(zap.String("category", string(category)))
	loggers[category] = entry{logger: l, file: file}
	return l
}

// CloseAll flushes and closes every category file.
func CloseAll() {
	mu.Lock()
	defer mu.Unlock()

	for cat, e := range loggers {
		_ = e.logger.Sync()
		if e.file != nil {
			e.file.Close()
		}
		delete(loggers, cat)
	}
}
