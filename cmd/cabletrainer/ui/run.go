package ui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"cabletrainer/internal/level"
)

// RunConfig configures an interactive session.
type RunConfig struct {
	Options         level.Options
	Theme           string
	FeedbackTimeout time.Duration
	AltScreen       bool
	Logger          *zap.Logger
}

// Run plays the trainer until the learner quits.
func Run(cfg RunConfig) error {
	var p *tea.Program

	opts := cfg.Options
	opts.OnTick = func(st level.Status) {
		if p != nil {
			p.Send(TickMsg(st))
		}
	}

	ctrl, err := level.NewController(opts)
	if err != nil {
		return fmt.Errorf("failed to start level: %w", err)
	}
	defer ctrl.Close()

	model := NewGameModel(GameConfig{
		Controller:      ctrl,
		Styles:          NewStyles(ThemeFor(cfg.Theme)),
		FeedbackTimeout: cfg.FeedbackTimeout,
		Logger:          cfg.Logger,
	})

	var progOpts []tea.ProgramOption
	if cfg.AltScreen {
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	p = tea.NewProgram(model, progOpts...)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
