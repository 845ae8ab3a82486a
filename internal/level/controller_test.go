package level

import (
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"cabletrainer/internal/placement"
	"cabletrainer/internal/scoring"
	"cabletrainer/internal/standard"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newController(t *testing.T, opts Options) (*Controller, *fakeClock) {
	t.Helper()
	clock := newFakeClock()
	opts.Clock = clock
	c, err := NewController(opts)
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c, clock
}

func routeDuct(t *testing.T, c *Controller) {
	t.Helper()
	require.NoError(t, c.PickUp())
	for i := 0; i < 6; i++ {
		_, err := c.PlaceSegment(i)
		require.NoError(t, err)
	}
}

func wireSocket(t *testing.T, c *Controller, swap map[string]standard.CoreID) {
	t.Helper()
	for _, row := range standard.Rows() {
		for i, id := range standard.Layout(row) {
			target := string(row) + "-" + string(rune('0'+i))
			if s, ok := swap[target]; ok {
				id = s
			}
			_, err := c.SelectCore(id)
			require.NoError(t, err)
			_, err = c.AssignCore(target)
			require.NoError(t, err)
		}
	}
}

func TestNewControllerStartsOnDuct(t *testing.T) {
	c, _ := newController(t, Options{})
	st := c.Status()
	assert.Equal(t, Duct, st.Level.ID)
	assert.False(t, st.Started)
	assert.Equal(t, "00:00", st.Clock)
	assert.NotEmpty(t, st.Session)
}

func TestInputsRequireStart(t *testing.T) {
	c, _ := newController(t, Options{})
	assert.ErrorIs(t, c.PickUp(), ErrNotStarted)

	_, err := c.CheckSolution()
	assert.ErrorIs(t, err, ErrNotStarted)

	require.NoError(t, c.StartGame())
	assert.ErrorIs(t, c.StartGame(), ErrAlreadyStarted)
}

func TestWrongLevelInputs(t *testing.T) {
	c, _ := newController(t, Options{})
	require.NoError(t, c.StartGame())

	_, err := c.SelectCore(standard.Blue)
	assert.ErrorIs(t, err, ErrWrongLevel)
	_, err = c.AssignCore("top-0")
	assert.ErrorIs(t, err, ErrWrongLevel)
	assert.ErrorIs(t, c.SetActiveCable(1), ErrWrongLevel)

	require.NoError(t, c.SelectLevel(Socket))
	require.NoError(t, c.StartGame())
	assert.ErrorIs(t, c.PickUp(), ErrWrongLevel)
	_, err = c.CloseCover()
	assert.ErrorIs(t, err, ErrWrongLevel)
}

func TestDuctAttemptScoresAndUnlocksSocket(t *testing.T) {
	c, clock := newController(t, Options{})
	require.NoError(t, c.StartGame())
	routeDuct(t, c)
	require.NoError(t, c.RecordHelpUsed(1))
	clock.Advance(65 * time.Second)

	st := c.Status()
	assert.True(t, st.CanClose)
	assert.True(t, st.CheckEnabled)

	res, err := c.CloseCover()
	require.NoError(t, err)
	want := scoring.Result{
		Level:     int(Duct),
		Score:     90,
		Correct:   6,
		Total:     6,
		Elapsed:   65,
		HelpLevel: 1,
		Passed:    true,
		Grade:     scoring.GradeGood,
		NextLevel: int(Socket),
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("result (-want +got):\n%s", diff)
	}
	assert.True(t, c.Passed(Duct))

	require.NoError(t, c.Advance())
	assert.Equal(t, Socket, c.Status().Level.ID)
}

func TestDuctCheckClosesCover(t *testing.T) {
	c, _ := newController(t, Options{})
	require.NoError(t, c.StartGame())

	_, err := c.CheckSolution()
	assert.ErrorIs(t, err, ErrCheckDisabled)

	routeDuct(t, c)
	res, err := c.CheckSolution()
	require.NoError(t, err)
	assert.Equal(t, 100, res.Score)
	assert.True(t, c.Snapshot().Duct.CoverClosed)
}

func TestDuctOutOfOrderLeavesStateUnchanged(t *testing.T) {
	c, _ := newController(t, Options{})
	require.NoError(t, c.StartGame())
	require.NoError(t, c.PickUp())

	before := c.Snapshot()
	_, err := c.PlaceSegment(3)
	assert.ErrorIs(t, err, placement.ErrOutOfOrder)
	if diff := cmp.Diff(before, c.Snapshot()); diff != "" {
		t.Errorf("state changed on rejection (-before +after):\n%s", diff)
	}
}

func TestSocketAttemptPerfect(t *testing.T) {
	c, clock := newController(t, Options{StartLevel: Socket, ReferenceSocket: true})
	require.NoError(t, c.StartGame())
	wireSocket(t, c, nil)
	clock.Advance(45 * time.Second)

	res, err := c.CheckSolution()
	require.NoError(t, err)
	assert.Equal(t, 100, res.Score)
	assert.Equal(t, 8, res.Total)
	assert.True(t, res.Passed)
	assert.Equal(t, scoring.GradePerfect, res.Grade)
	assert.Zero(t, res.NextLevel)
	assert.ErrorIs(t, c.Advance(), ErrNoNextLevel)
}

func TestSocketAttemptWithMistakesAndHelp(t *testing.T) {
	c, clock := newController(t, Options{StartLevel: Socket, ReferenceSocket: true})
	require.NoError(t, c.StartGame())
	wireSocket(t, c, map[string]standard.CoreID{
		"top-0": standard.Orange,
		"top-1": standard.WhiteOrange,
	})
	require.NoError(t, c.RecordHelpUsed(2))
	require.NoError(t, c.RecordHelpUsed(1))
	clock.Advance(200 * time.Second)

	res, err := c.CheckSolution()
	require.NoError(t, err)
	assert.Equal(t, 6, res.Correct)
	assert.Equal(t, 2, res.HelpLevel)
	assert.Equal(t, 50, res.Score)
	assert.Len(t, res.Errors, 2)
	assert.False(t, res.Passed)
	assert.False(t, c.Passed(Socket))
}

func TestCheckedAttemptRejectsInput(t *testing.T) {
	c, _ := newController(t, Options{StartLevel: Socket, ReferenceSocket: true})
	require.NoError(t, c.StartGame())
	wireSocket(t, c, nil)
	_, err := c.CheckSolution()
	require.NoError(t, err)

	_, err = c.CheckSolution()
	assert.ErrorIs(t, err, ErrAlreadyChecked)
	_, err = c.UndoLast()
	assert.ErrorIs(t, err, ErrAlreadyChecked)
	_, err = c.SelectCore(standard.Blue)
	assert.ErrorIs(t, err, ErrAlreadyChecked)
}

func TestTimerStopsOnCheck(t *testing.T) {
	c, clock := newController(t, Options{StartLevel: Socket, ReferenceSocket: true})
	require.NoError(t, c.StartGame())
	wireSocket(t, c, nil)
	clock.Advance(30 * time.Second)
	_, err := c.CheckSolution()
	require.NoError(t, err)

	clock.Advance(time.Hour)
	st := c.Tick(clock.Now())
	assert.Equal(t, 30, st.Elapsed)
	assert.Equal(t, "00:30", st.Clock)
}

func TestBothCablesPlayable(t *testing.T) {
	c, _ := newController(t, Options{StartLevel: Socket})
	require.NoError(t, c.StartGame())
	wireSocket(t, c, nil)
	assert.False(t, c.Status().CheckEnabled)

	require.NoError(t, c.SetActiveCable(2))
	wireSocket(t, c, nil)
	assert.True(t, c.Status().CheckEnabled)

	res, err := c.CheckSolution()
	require.NoError(t, err)
	assert.Equal(t, 16, res.Total)
}

func TestUndoThroughController(t *testing.T) {
	c, _ := newController(t, Options{StartLevel: Socket, ReferenceSocket: true})
	require.NoError(t, c.StartGame())

	_, err := c.UndoLast()
	assert.ErrorIs(t, err, placement.ErrNothingToUndo)

	before := c.Snapshot()
	_, err = c.SelectCore(standard.Green)
	require.NoError(t, err)
	_, err = c.AssignCore("bottom-1")
	require.NoError(t, err)
	assert.True(t, c.Status().CanUndo)

	p, err := c.UndoLast()
	require.NoError(t, err)
	assert.Equal(t, standard.Green, p.Core)
	if diff := cmp.Diff(before, c.Snapshot()); diff != "" {
		t.Errorf("undo did not restore state (-before +after):\n%s", diff)
	}
}

func TestResetReplacesAttempt(t *testing.T) {
	c, clock := newController(t, Options{StartLevel: Socket, ReferenceSocket: true})
	require.NoError(t, c.StartGame())
	_, _ = c.SelectCore(standard.Blue)
	_, err := c.AssignCore("top-2")
	require.NoError(t, err)
	require.NoError(t, c.RecordHelpUsed(3))
	clock.Advance(10 * time.Second)
	old := c.Status()

	c.ResetLevel()
	st := c.Status()
	assert.NotEqual(t, old.Session, st.Session)
	assert.False(t, st.Started)
	assert.Equal(t, 3, st.HelpLevel)
	assert.Zero(t, st.Elapsed)
	assert.False(t, st.CanUndo)
	assert.Equal(t, 0, st.Game.UndoDepth)
}

func TestResetKeepsHelpPenalty(t *testing.T) {
	c, _ := newController(t, Options{StartLevel: Socket, ReferenceSocket: true})
	require.NoError(t, c.RecordHelpUsed(3))

	c.ResetLevel()
	require.NoError(t, c.StartGame())
	wireSocket(t, c, nil)
	res, err := c.CheckSolution()
	require.NoError(t, err)
	assert.Equal(t, 3, res.HelpLevel)
	assert.Equal(t, 85, res.Score)

	require.NoError(t, c.SelectLevel(Socket))
	assert.Zero(t, c.Status().HelpLevel)
}

func TestRetiredTickersArePruned(t *testing.T) {
	defer goleak.VerifyNone(t)

	c, _ := newController(t, Options{TickInterval: time.Hour})
	defer c.Close()
	for i := 0; i < 5; i++ {
		require.NoError(t, c.StartGame())
		c.ResetLevel()

		c.mu.Lock()
		retired := append([]*Ticker(nil), c.retired...)
		c.mu.Unlock()
		for _, tk := range retired {
			tk.Wait()
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.Len(t, c.retired, 1)
}

func TestCategoryLoggers(t *testing.T) {
	core, levelLogs := observer.New(zapcore.DebugLevel)
	placeCore, placeLogs := observer.New(zapcore.DebugLevel)
	scoreCore, scoreLogs := observer.New(zapcore.DebugLevel)
	c, _ := newController(t, Options{
		Logger:          zap.New(core),
		PlacementLogger: zap.New(placeCore),
		ScoringLogger:   zap.New(scoreCore),
	})

	require.NoError(t, c.StartGame())
	_, err := c.PlaceSegment(2)
	require.ErrorIs(t, err, placement.ErrCableNotInHand)
	routeDuct(t, c)
	_, err = c.CheckSolution()
	require.NoError(t, err)

	assert.Equal(t, 1, placeLogs.FilterMessage("input rejected").Len())
	assert.Equal(t, 1, scoreLogs.FilterMessage("attempt checked").Len())
	assert.Zero(t, levelLogs.FilterMessage("attempt checked").Len())
	// Session events fall back to the level logger.
	assert.Equal(t, 1, levelLogs.FilterMessage("session created").Len())
}

func TestSelectLevelValidation(t *testing.T) {
	c, _ := newController(t, Options{})
	assert.ErrorIs(t, c.SelectLevel(9), ErrUnknownLevel)
	assert.ErrorIs(t, c.SelectLevel(PatchPanel), ErrLevelUnavailable)
	assert.NoError(t, c.SelectLevel(Socket))
}

func TestStrictProgression(t *testing.T) {
	c, _ := newController(t, Options{StrictProgression: true})
	assert.ErrorIs(t, c.SelectLevel(Socket), ErrLevelLocked)

	_, err := NewController(Options{StartLevel: Socket, StrictProgression: true})
	assert.ErrorIs(t, err, ErrLevelLocked)

	require.NoError(t, c.StartGame())
	routeDuct(t, c)
	_, err = c.CheckSolution()
	require.NoError(t, err)
	assert.NoError(t, c.SelectLevel(Socket))
}

func TestRecordHelpRange(t *testing.T) {
	c, _ := newController(t, Options{})
	assert.Error(t, c.RecordHelpUsed(0))
	assert.Error(t, c.RecordHelpUsed(4))
	assert.Zero(t, c.Status().HelpLevel)
}

func TestHints(t *testing.T) {
	c, _ := newController(t, Options{})
	hs := c.Hints()
	require.Len(t, hs, 3)
	for i, h := range hs {
		assert.Equal(t, i+1, h.Tier)
	}
}

func TestMessageCoversBothLayers(t *testing.T) {
	assert.Equal(t, "Press start first.", Message(ErrNotStarted))
	assert.NotEmpty(t, Message(placement.ErrOutOfOrder))
}

func TestBackgroundTicker(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := newFakeClock()
	clock.Advance(-24 * time.Hour)
	ticks := make(chan Status, 16)
	c, err := NewController(Options{
		Clock:        clock,
		TickInterval: time.Millisecond,
		OnTick: func(st Status) {
			select {
			case ticks <- st:
			default:
			}
		},
	})
	require.NoError(t, err)
	defer c.Close()
	require.NoError(t, c.StartGame())
	clock.Advance(3 * time.Second)

	deadline := time.After(time.Second)
	for seen := false; !seen; {
		select {
		case st := <-ticks:
			seen = st.Elapsed == 3
		case <-deadline:
			t.Fatal("no tick delivered")
		}
	}

	c.ResetLevel()
}
