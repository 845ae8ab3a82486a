package script

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"cabletrainer/internal/level"
	"cabletrainer/internal/scoring"
	"cabletrainer/internal/session"
	"cabletrainer/internal/standard"
)

// Rejection is one refused input in the replay log.
type Rejection struct {
	Step     int    `json:"step" yaml:"step"`
	Op       Op     `json:"op" yaml:"op"`
	Arg      string `json:"arg,omitempty" yaml:"arg,omitempty"`
	Error    string `json:"error" yaml:"error"`
	Message  string `json:"message" yaml:"message"`
	Expected bool   `json:"expected" yaml:"expected"`
}

// Report is the outcome of a replay.
type Report struct {
	Name       string           `json:"name" yaml:"name"`
	Session    string           `json:"session" yaml:"session"`
	Results    []scoring.Result `json:"results" yaml:"results"`
	Rejections []Rejection      `json:"rejections" yaml:"rejections"`
	Final      session.Snapshot `json:"final" yaml:"final"`
}

// Last returns the most recent check result, if any.
func (r *Report) Last() (scoring.Result, bool) {
	if len(r.Results) == 0 {
		return scoring.Result{}, false
	}
	return r.Results[len(r.Results)-1], true
}

// Options configures a replay.
type Options struct {
	Logger *zap.Logger
}

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *stepClock) advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Run replays s on a fresh controller. Rejections are collected; the run
// only fails on a broken expectation, a malformed argument or ctx.
func Run(ctx context.Context, s *Script, opts Options) (*Report, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ref := true
	if s.ReferenceSocket != nil {
		ref = *s.ReferenceSocket
	}

	clock := &stepClock{now: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)}
	ctrl, err := level.NewController(level.Options{
		StartLevel:        level.ID(s.Level),
		ReferenceSocket:   ref,
		StrictProgression: s.StrictProgression,
		Clock:             clock,
		Logger:            log,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}
	defer ctrl.Close()

	rep := &Report{Name: s.Name}
	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n := i + 1
		op := Op(strings.ToLower(string(st.Op)))

		stepErr, argErr := apply(ctrl, clock, op, st.Arg, rep)
		if argErr != nil {
			return nil, fmt.Errorf("%s: step %d (%s): %w", s.Name, n, op, argErr)
		}

		want, _ := lookupError(st.Expect)
		switch {
		case stepErr == nil && want != nil:
			return nil, fmt.Errorf("%s: step %d (%s %s): %w: wanted %s, step succeeded",
				s.Name, n, op, st.Arg, ErrExpectation, st.Expect)
		case stepErr == nil:
			continue
		case want != nil && !errors.Is(stepErr, want):
			return nil, fmt.Errorf("%s: step %d (%s %s): %w: wanted %s, got %v",
				s.Name, n, op, st.Arg, ErrExpectation, st.Expect, stepErr)
		}

		rep.Rejections = append(rep.Rejections, Rejection{
			Step:     n,
			Op:       op,
			Arg:      st.Arg,
			Error:    ErrorName(stepErr),
			Message:  level.Message(stepErr),
			Expected: want != nil,
		})
		log.Debug("step rejected", zap.String("script", s.Name), zap.Int("step", n), zap.Error(stepErr))
	}

	st := ctrl.Status()
	rep.Session = st.Session
	rep.Final = st.Game
	log.Info("script replayed",
		zap.String("script", s.Name),
		zap.Int("steps", len(s.Steps)),
		zap.Int("rejections", len(rep.Rejections)),
		zap.Int("checks", len(rep.Results)))
	return rep, nil
}

// apply performs one step. stepErr is a rejection from the controller;
// argErr is a malformed script argument.
func apply(c *level.Controller, clock *stepClock, op Op, arg string, rep *Report) (stepErr, argErr error) {
	switch op {
	case OpStart:
		return c.StartGame(), nil
	case OpLevel:
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("level %q: %w", arg, err)
		}
		return c.SelectLevel(level.ID(n)), nil
	case OpReset:
		c.ResetLevel()
		return nil, nil
	case OpSelect:
		_, err := c.SelectCore(standard.CoreID(strings.ToLower(arg)))
		return err, nil
	case OpAssign:
		_, err := c.AssignCore(arg)
		return err, nil
	case OpCable:
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("cable %q: %w", arg, err)
		}
		return c.SetActiveCable(n), nil
	case OpUndo:
		_, err := c.UndoLast()
		return err, nil
	case OpPickUp:
		return c.PickUp(), nil
	case OpPlace:
		_, err := c.Place(arg)
		return err, nil
	case OpClose:
		res, err := c.CloseCover()
		if err == nil {
			rep.Results = append(rep.Results, res)
		}
		return err, nil
	case OpHelp:
		n, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("help tier %q: %w", arg, err)
		}
		return c.RecordHelpUsed(n), nil
	case OpWait:
		d, err := parseWait(arg)
		if err != nil {
			return nil, err
		}
		clock.advance(d)
		c.Tick(clock.Now())
		return nil, nil
	case OpCheck:
		res, err := c.CheckSolution()
		if err == nil {
			rep.Results = append(rep.Results, res)
		}
		return err, nil
	}
	return nil, fmt.Errorf("%w: unknown op %q", ErrInvalidScript, op)
}

// parseWait accepts a duration ("1m30s") or plain seconds ("90").
func parseWait(arg string) (time.Duration, error) {
	if n, err := strconv.Atoi(arg); err == nil && n >= 0 {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(arg)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("wait %q: not a duration", arg)
	}
	return d, nil
}
