package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cabletrainer/cmd/cabletrainer/ui"
	"cabletrainer/internal/level"
	"cabletrainer/internal/logging"
)

var playLevel int

// playCmd starts the interactive trainer
var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the trainer interactively",
	Long: `Opens the terminal trainer.

Press s to start the clock, ? to reveal a hint (each tier costs 5 points),
x to check and r to reset. On the socket level pick a core with 1-8, move
to a terminal with the arrow keys and punch it down with enter.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&playLevel, "level", 0, "Level to start on (default: game.start_level)")
}

func playOptions() level.Options {
	start := cfg.Game.StartLevel
	if playLevel != 0 {
		start = playLevel
	}
	return level.Options{
		StartLevel:        level.ID(start),
		ReferenceSocket:   cfg.Game.ReferenceSocket,
		StrictProgression: cfg.Game.StrictProgression,
		TickInterval:      cfg.GetTickInterval(),
		Logger:            logging.Get(logging.CategoryLevel),
		SessionLogger:     logging.Get(logging.CategorySession),
		PlacementLogger:   logging.Get(logging.CategoryPlacement),
		ScoringLogger:     logging.Get(logging.CategoryScoring),
	}
}

func runPlay(cmd *cobra.Command, args []string) error {
	opts := playOptions()
	logger.Info("starting trainer",
		zap.Int("level", int(opts.StartLevel)),
		zap.Bool("reference_socket", opts.ReferenceSocket),
		zap.Duration("tick", opts.TickInterval))

	return ui.Run(ui.RunConfig{
		Options:         opts,
		Theme:           cfg.UI.Theme,
		FeedbackTimeout: cfg.GetFeedbackTimeout(),
		AltScreen:       cfg.UI.AltScreen,
		Logger:          logging.Get(logging.CategoryUI),
	})
}
