package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"cabletrainer/internal/logging"
	"cabletrainer/internal/scoring"
	"cabletrainer/internal/script"
)

var (
	replayWatch    bool
	replayJSON     bool
	replayParallel int
)

// replayCmd replays recorded input scripts
var replayCmd = &cobra.Command{
	Use:   "replay FILE...",
	Short: "Replay input scripts and print their results",
	Long: `Replays YAML input scripts against a fresh attempt each and prints
the result and every rejected input. Time only advances on wait steps, so a
replay is reproducible.

Example script:
  name: duct
  level: 1
  steps:
    - op: start
    - op: pickup
    - op: place
      arg: "1"
      expect: out_of_order`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&replayWatch, "watch", false, "Re-run a script whenever it changes")
	replayCmd.Flags().BoolVar(&replayJSON, "json", false, "Print reports as JSON")
	replayCmd.Flags().IntVar(&replayParallel, "parallel", 4, "Scripts replayed at once")
}

func runReplay(cmd *cobra.Command, args []string) error {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := replayInitial(ctx, args); err != nil {
		return err
	}
	if !replayWatch {
		return nil
	}

	var out sync.Mutex

	w, err := script.NewWatcher(args, func(path string) {
		rep, err := replayFile(ctx, path)
		out.Lock()
		defer out.Unlock()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		printReport(rep)
	}, logging.Get(logging.CategoryScript))
	if err != nil {
		return fmt.Errorf("failed to watch scripts: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Watching for changes. Press Ctrl+C to stop.")
	return w.Run(ctx)
}

// replayInitial runs and prints every script once. In watch mode a failing
// script is reported and the watch still starts, so it can be fixed and saved.
func replayInitial(ctx context.Context, paths []string) error {
	reports, err := replayAll(ctx, paths)
	for _, rep := range reports {
		if rep != nil {
			printReport(rep)
		}
	}
	if err != nil {
		if !replayWatch {
			return err
		}
		fmt.Fprintln(os.Stderr, err)
	}
	return nil
}

// replayAll runs every script, at most replayParallel at a time, and returns
// the reports in argument order. On error the reports of the scripts that
// finished are still returned; the others are nil.
func replayAll(ctx context.Context, paths []string) ([]*script.Report, error) {
	reports := make([]*script.Report, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, replayParallel))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			rep, err := replayFile(gctx, path)
			if err != nil {
				return err
			}
			reports[i] = rep
			return nil
		})
	}
	err := g.Wait()
	return reports, err
}

func replayFile(ctx context.Context, path string) (*script.Report, error) {
	s, err := script.Load(path)
	if err != nil {
		return nil, err
	}
	rep, err := script.Run(ctx, s, script.Options{Logger: logging.Get(logging.CategoryScript)})
	if err != nil {
		return nil, err
	}
	logger.Debug("replayed", zap.String("script", rep.Name), zap.Int("rejections", len(rep.Rejections)))
	return rep, nil
}

func printReport(rep *script.Report) {
	if replayJSON {
		data, err := json.Marshal(rep)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		fmt.Println(string(data))
		return
	}

	fmt.Printf("== %s\n", rep.Name)
	for _, r := range rep.Rejections {
		mark := " "
		if r.Expected {
			mark = "✓"
		}
		fmt.Printf("  %s step %-3d %-7s %-10s %s\n", mark, r.Step, r.Op, r.Arg, r.Message)
	}
	res, ok := rep.Last()
	if !ok {
		fmt.Println("  not checked")
		return
	}
	fmt.Println("  " + formatResult(res))
	for _, e := range res.Errors {
		fmt.Println("    " + e.String())
	}
}

func formatResult(res scoring.Result) string {
	parts := []string{
		fmt.Sprintf("level %d", res.Level),
		fmt.Sprintf("score %d", res.Score),
		fmt.Sprintf("correct %d/%d", res.Correct, res.Total),
		"time " + scoring.FormatClock(res.Elapsed),
		fmt.Sprintf("help %d", res.HelpLevel),
	}
	if res.NextLevel != 0 {
		parts = append(parts, fmt.Sprintf("unlocks level %d", res.NextLevel))
	}
	return strings.Join(parts, ", ")
}
