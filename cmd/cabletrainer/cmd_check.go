package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cabletrainer/internal/level"
	"cabletrainer/internal/scoring"
	"cabletrainer/internal/session"
	"cabletrainer/internal/standard"
)

var (
	checkCorrect int
	checkTotal   int
	checkElapsed int
	checkHints   int
	checkLevel   int
	checkJSON    bool
)

// checkCmd scores an attempt without playing it
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compute the score of an attempt",
	Long: `Applies the scoring rules to the given counts.

Examples:
  cabletrainer check --correct 8 --elapsed 45
  cabletrainer check --correct 6 --elapsed 200 --hints 2
  cabletrainer check --level 1 --correct 6 --elapsed 65 --hints 1`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().IntVar(&checkCorrect, "correct", 0, "Correctly placed cores (or routed segments on level 1)")
	checkCmd.Flags().IntVar(&checkTotal, "total", 0, "Positions scored (default: 8 for level 2, 6 for level 1)")
	checkCmd.Flags().IntVar(&checkElapsed, "elapsed", 0, "Elapsed seconds")
	checkCmd.Flags().IntVar(&checkHints, "hints", 0, "Highest hint tier revealed (0-3)")
	checkCmd.Flags().IntVar(&checkLevel, "level", int(level.Socket), "Level (1 duct, 2 socket)")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Print the result as JSON")
}

func scoreAttempt() (scoring.Result, error) {
	if checkHints < 0 || checkHints > session.MaxHelpTier {
		return scoring.Result{}, session.ErrInvalidHelpTier
	}
	if checkElapsed < 0 || checkCorrect < 0 {
		return scoring.Result{}, fmt.Errorf("counts must not be negative")
	}

	res := scoring.Result{
		Level:     checkLevel,
		Correct:   checkCorrect,
		Total:     checkTotal,
		Elapsed:   checkElapsed,
		HelpLevel: checkHints,
	}
	switch level.ID(checkLevel) {
	case level.Duct:
		if res.Total == 0 {
			res.Total = session.TotalSegments
		}
		res.Passed = res.Correct >= res.Total
		res.Score = scoring.Duct(res.Passed, res.Elapsed, res.HelpLevel)
	case level.Socket:
		if res.Total == 0 {
			res.Total = standard.CoreCount
		}
		res.Passed = res.Correct == res.Total
		res.Score = scoring.Socket(res.Correct, res.Total, res.Elapsed, res.HelpLevel)
	default:
		return scoring.Result{}, fmt.Errorf("%w: %d", level.ErrUnknownLevel, checkLevel)
	}
	if res.Correct > res.Total {
		return scoring.Result{}, fmt.Errorf("correct (%d) exceeds total (%d)", res.Correct, res.Total)
	}
	res.Grade = scoring.GradeFor(res.Score)
	return res, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	res, err := scoreAttempt()
	if err != nil {
		return err
	}
	logger.Debug("scored", zap.Int("level", res.Level), zap.Int("score", res.Score))

	if checkJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Score:    %d/%d\n", res.Score, scoring.MaxScore)
	fmt.Printf("Correct:  %d/%d\n", res.Correct, res.Total)
	fmt.Printf("Time:     %s (x%.2f)\n", scoring.FormatClock(res.Elapsed), scoring.TimeBonus(res.Elapsed))
	fmt.Printf("Penalty:  -%d\n", scoring.HelpPenalty(res.HelpLevel))
	fmt.Printf("Grade:    %s\n", res.Grade.Message())
	return nil
}
