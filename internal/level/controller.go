package level

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"cabletrainer/internal/placement"
	"cabletrainer/internal/scoring"
	"cabletrainer/internal/session"
	"cabletrainer/internal/standard"
)

// Options configures a Controller.
type Options struct {
	// StartLevel is selected on construction. Defaults to the duct level.
	StartLevel ID

	// ReferenceSocket pre-wires socket 2 as a worked example so only
	// cable 1 is played and scored.
	ReferenceSocket bool

	// StrictProgression locks a level until the level it requires is passed.
	StrictProgression bool

	// TickInterval runs the timer on a background ticker. Zero leaves
	// ticking to the caller via Tick.
	TickInterval time.Duration

	// OnTick, if set, receives the status after every background tick.
	OnTick func(Status)

	Clock Clock

	// Logger receives level, timer and progression events. SessionLogger,
	// PlacementLogger and ScoringLogger receive attempt lifecycle, input
	// and check events; each falls back to Logger.
	Logger          *zap.Logger
	SessionLogger   *zap.Logger
	PlacementLogger *zap.Logger
	ScoringLogger   *zap.Logger
}

// Controller owns the active level and its attempt. Every input is applied
// under one lock, so events are processed strictly one at a time.
type Controller struct {
	mu   sync.Mutex
	opts Options

	log      *zap.Logger
	logSess  *zap.Logger
	logPlace *zap.Logger
	logScore *zap.Logger

	level    Info
	game     *session.Game
	engine   placement.Engine
	assigner *placement.Assigner
	ducter   *placement.Ducter
	policy   placement.Policy

	timer   Timer
	ticker  *Ticker
	retired []*Ticker
	passed  map[ID]bool
	result  *scoring.Result
}

// NewController builds a controller and selects the start level.
func NewController(opts Options) (*Controller, error) {
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	for _, l := range []**zap.Logger{&opts.SessionLogger, &opts.PlacementLogger, &opts.ScoringLogger} {
		if *l == nil {
			*l = opts.Logger
		}
	}
	if opts.StartLevel == 0 {
		opts.StartLevel = Duct
	}
	c := &Controller{
		opts:     opts,
		log:      opts.Logger,
		logSess:  opts.SessionLogger,
		logPlace: opts.PlacementLogger,
		logScore: opts.ScoringLogger,
		passed:   make(map[ID]bool),
	}
	if err := c.SelectLevel(opts.StartLevel); err != nil {
		return nil, err
	}
	return c, nil
}

// SelectLevel switches level and discards the current attempt entirely.
func (c *Controller) SelectLevel(id ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	info, ok := Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownLevel, id)
	}
	if !info.Available {
		return fmt.Errorf("%w: %s", ErrLevelUnavailable, info.Name)
	}
	if c.opts.StrictProgression && info.Requires != 0 && !c.passed[info.Requires] {
		return fmt.Errorf("%w: pass level %d first", ErrLevelLocked, info.Requires)
	}
	c.level = info
	c.rebuild(0)
	c.log.Info("level selected", zap.Int("level", int(id)))
	c.logSess.Info("session created", zap.Int("level", int(id)), zap.String("session", c.game.ID.String()))
	return nil
}

// ResetLevel discards the attempt and builds a fresh one on the same level.
// Hint tiers already revealed stay revealed and keep their penalty; only a
// level switch clears them.
func (c *Controller) ResetLevel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	help := c.game.HelpLevel
	c.rebuild(help)
	c.logSess.Info("session reset",
		zap.Int("level", int(c.level.ID)),
		zap.String("session", c.game.ID.String()),
		zap.Int("help_level", help))
}

// rebuild replaces the session and engines. Nothing of the previous attempt
// survives except the help level passed in.
func (c *Controller) rebuild(helpLevel int) {
	c.stopTimer()
	c.result = nil
	c.assigner, c.ducter = nil, nil

	switch c.level.ID {
	case Duct:
		c.game = session.New(session.Options{Level: int(Duct), Duct: true})
		c.ducter = placement.NewDucter(c.game)
		c.engine = c.ducter
		c.policy = placement.DuctPolicy{}
	case Socket:
		var ref []int
		if c.opts.ReferenceSocket {
			ref = []int{2}
		}
		c.game = session.New(session.Options{Level: int(Socket), Cables: []int{1, 2}, ReferenceCables: ref})
		c.assigner = placement.NewAssigner(c.game)
		c.engine = c.assigner
		c.policy = placement.SocketPolicy{}
	}
	c.game.HelpLevel = helpLevel
}

// StartGame starts the attempt timer.
func (c *Controller) StartGame() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.game.Started {
		return ErrAlreadyStarted
	}
	now := c.opts.Clock.Now()
	c.game.Started = true
	c.game.StartTime = now
	c.game.Elapsed = 0
	c.timer.Start(now)
	if c.opts.TickInterval > 0 {
		c.ticker = StartTicker(context.Background(), c.opts.TickInterval, c.backgroundTick)
	}
	c.logSess.Debug("game started", zap.String("session", c.game.ID.String()))
	return nil
}

// backgroundTick reads the controller clock; the ticker only paces it.
func (c *Controller) backgroundTick(time.Time) {
	st := c.Tick(c.opts.Clock.Now())
	if c.opts.OnTick != nil {
		c.opts.OnTick(st)
	}
}

// Tick recomputes elapsed seconds from the start time and returns the status.
func (c *Controller) Tick(now time.Time) Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tick(now)
	return c.status()
}

func (c *Controller) tick(now time.Time) {
	if c.timer.Running() {
		c.game.Elapsed = c.timer.Tick(now)
	}
}

// StopTimer freezes the attempt timer. Calling it again does nothing.
func (c *Controller) StopTimer() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimer()
}

// stopTimer never waits for the ticker goroutine: it may be blocked on c.mu.
// Retired tickers that already exited are dropped.
func (c *Controller) stopTimer() {
	c.timer.Stop()
	if c.ticker == nil {
		return
	}
	c.ticker.Stop()
	live := c.retired[:0]
	for _, t := range c.retired {
		if !t.Exited() {
			live = append(live, t)
		}
	}
	c.retired = append(live, c.ticker)
	c.ticker = nil
}

// Close stops every background ticker and waits for them to exit.
func (c *Controller) Close() {
	c.mu.Lock()
	c.stopTimer()
	retired := c.retired
	c.retired = nil
	c.mu.Unlock()

	for _, t := range retired {
		t.Wait()
	}
}

// playable guards every placement input.
func (c *Controller) playable() error {
	switch {
	case !c.game.Started:
		return ErrNotStarted
	case c.result != nil:
		return ErrAlreadyChecked
	}
	return nil
}

func (c *Controller) reject(op string, err error) error {
	c.logPlace.Debug("input rejected", zap.String("op", op), zap.Error(err), zap.String("session", c.game.ID.String()))
	return err
}

// SelectCore arms or disarms a core on the socket level.
func (c *Controller) SelectCore(id standard.CoreID) (placement.Selection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.assigner == nil {
		return placement.Selection{}, c.reject("select", ErrWrongLevel)
	}
	if err := c.playable(); err != nil {
		return placement.Selection{}, c.reject("select", err)
	}
	sel, err := c.assigner.SelectCore(id)
	if err != nil {
		return sel, c.reject("select", err)
	}
	return sel, nil
}

// AssignCore punches the armed core onto a terminal ("top-0", "1:bottom-2").
func (c *Controller) AssignCore(target string) (placement.Placement, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.assigner == nil {
		return placement.Placement{}, c.reject("assign", ErrWrongLevel)
	}
	if err := c.playable(); err != nil {
		return placement.Placement{}, c.reject("assign", err)
	}
	p, err := c.assigner.Place(target)
	if err != nil {
		return p, c.reject("assign", err)
	}
	c.logPlace.Debug("core assigned", zap.String("core", string(p.Core)), zap.String("terminal", p.Target), zap.Int("cable", p.Cable))
	return p, nil
}

// UndoLast reverses the most recent assignment.
func (c *Controller) UndoLast() (placement.Placement, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.playable(); err != nil {
		return placement.Placement{}, c.reject("undo", err)
	}
	p, err := c.engine.Undo()
	if err != nil {
		return p, c.reject("undo", err)
	}
	c.logPlace.Debug("assignment undone", zap.String("core", string(p.Core)), zap.String("terminal", p.Target))
	return p, nil
}

// SetActiveCable switches the cable being wired when both are playable.
func (c *Controller) SetActiveCable(id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.assigner == nil {
		return c.reject("cable", ErrWrongLevel)
	}
	if err := c.playable(); err != nil {
		return c.reject("cable", err)
	}
	if err := c.game.SetActiveCable(id); err != nil {
		return c.reject("cable", err)
	}
	return nil
}

// PickUp takes the duct cable in hand.
func (c *Controller) PickUp() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ducter == nil {
		return c.reject("pickup", ErrWrongLevel)
	}
	if err := c.playable(); err != nil {
		return c.reject("pickup", err)
	}
	if err := c.ducter.PickUp(); err != nil {
		return c.reject("pickup", err)
	}
	return nil
}

// PlaceSegment routes the next segment into slot index.
func (c *Controller) PlaceSegment(index int) (placement.Placement, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ducter == nil {
		return placement.Placement{}, c.reject("place", ErrWrongLevel)
	}
	if err := c.playable(); err != nil {
		return placement.Placement{}, c.reject("place", err)
	}
	p, err := c.ducter.PlaceSegment(index)
	if err != nil {
		return p, c.reject("place", err)
	}
	return p, nil
}

// Place forwards a target to whichever engine is active.
func (c *Controller) Place(target string) (placement.Placement, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.playable(); err != nil {
		return placement.Placement{}, c.reject("place", err)
	}
	p, err := c.engine.Place(target)
	if err != nil {
		return p, c.reject("place", err)
	}
	return p, nil
}

// CloseCover closes the duct and checks the attempt.
func (c *Controller) CloseCover() (scoring.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ducter == nil {
		return scoring.Result{}, c.reject("close", ErrWrongLevel)
	}
	if err := c.playable(); err != nil {
		return scoring.Result{}, c.reject("close", err)
	}
	if err := c.ducter.CloseCover(); err != nil {
		return scoring.Result{}, c.reject("close", err)
	}
	return c.check(), nil
}

// CheckSolution stops the timer and scores the attempt. On the duct level it
// closes the cover first.
func (c *Controller) CheckSolution() (scoring.Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.playable(); err != nil {
		return scoring.Result{}, c.reject("check", err)
	}
	if !c.engine.Ready() {
		return scoring.Result{}, c.reject("check", ErrCheckDisabled)
	}
	if c.ducter != nil && c.ducter.CanClose() {
		if err := c.ducter.CloseCover(); err != nil {
			return scoring.Result{}, c.reject("check", err)
		}
	}
	return c.check(), nil
}

func (c *Controller) check() scoring.Result {
	c.tick(c.opts.Clock.Now())
	c.stopTimer()

	ev := c.policy.Evaluate(c.game)
	score := c.policy.Score(ev, c.game.Elapsed, c.game.HelpLevel)
	res := scoring.Result{
		Level:     int(c.level.ID),
		Score:     score,
		Correct:   ev.Correct,
		Total:     ev.Total,
		Errors:    ev.Errors,
		Elapsed:   c.game.Elapsed,
		HelpLevel: c.game.HelpLevel,
		Passed:    ev.Passed,
		Grade:     scoring.GradeFor(score),
	}
	if ev.Passed {
		c.passed[c.level.ID] = true
		if n, ok := next(c.level.ID); ok {
			res.NextLevel = int(n)
		}
	}
	c.game.Checked = true
	c.result = &res

	c.logScore.Info("attempt checked",
		zap.String("session", c.game.ID.String()),
		zap.Int("level", res.Level),
		zap.Int("score", res.Score),
		zap.Int("correct", res.Correct),
		zap.Int("total", res.Total),
		zap.Int("elapsed", res.Elapsed),
		zap.Int("help", res.HelpLevel))
	return res
}

// RecordHelpUsed notes that a hint tier was revealed. The penalty follows
// the highest tier ever revealed in the attempt.
func (c *Controller) RecordHelpUsed(tier int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.game.RecordHelp(tier); err != nil {
		return c.reject("help", err)
	}
	c.log.Debug("help revealed", zap.Int("tier", tier), zap.Int("help_level", c.game.HelpLevel))
	return nil
}

// Advance moves on to the level unlocked by the last passed check.
func (c *Controller) Advance() error {
	c.mu.Lock()
	var nextLevel ID
	if c.result != nil {
		nextLevel = ID(c.result.NextLevel)
	}
	c.mu.Unlock()

	if nextLevel == 0 {
		return ErrNoNextLevel
	}
	return c.SelectLevel(nextLevel)
}

// Hints returns the hint tiers of the active level.
func (c *Controller) Hints() []Hint {
	c.mu.Lock()
	defer c.mu.Unlock()
	return HintsFor(c.level.ID)
}

// Passed reports whether a level was passed during this process.
func (c *Controller) Passed(id ID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.passed[id]
}

// Snapshot copies the attempt state.
func (c *Controller) Snapshot() session.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.game.Snapshot()
}
