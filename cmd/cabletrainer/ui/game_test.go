package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cabletrainer/internal/level"
	"cabletrainer/internal/standard"
)

type stoppedClock struct{ now time.Time }

func (c stoppedClock) Now() time.Time { return c.now }

func newTestModel(t *testing.T, start level.ID) GameModel {
	t.Helper()
	ctrl, err := level.NewController(level.Options{
		StartLevel:      start,
		ReferenceSocket: true,
		Clock:           stoppedClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)
	t.Cleanup(ctrl.Close)
	return NewGameModel(GameConfig{Controller: ctrl, Styles: NewStyles(LightTheme())})
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m GameModel, msgs ...tea.Msg) GameModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(GameModel)
	}
	return m
}

func TestSocketKeysPunchCore(t *testing.T) {
	m := newTestModel(t, level.Socket)
	m = press(t, m, runes("s"), runes("1"), tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})

	cable := m.status.Game.Cables[0]
	assert.Equal(t, standard.WhiteGreen, cable.Assignments["1:bottom-0"])
	assert.True(t, m.status.CanUndo)

	m = press(t, m, runes("u"))
	assert.Empty(t, m.status.Game.Cables[0].Assignments)
}

func TestRejectionShowsMessage(t *testing.T) {
	m := newTestModel(t, level.Socket)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.feedbackIsError)
	assert.Equal(t, level.Message(level.ErrNotStarted), m.feedback)
	assert.Contains(t, m.View(), m.feedback)
}

func TestFeedbackClearsOnlyForLatestMessage(t *testing.T) {
	m := newTestModel(t, level.Socket)
	m = press(t, m, runes("s"))
	first := m.feedbackSeq
	m = press(t, m, runes("3"))
	require.NotEmpty(t, m.feedback)

	m = press(t, m, feedbackTimeoutMsg{seq: first})
	assert.NotEmpty(t, m.feedback)

	m = press(t, m, feedbackTimeoutMsg{seq: m.feedbackSeq})
	assert.Empty(t, m.feedback)
}

func TestHintRevealRaisesHelpLevel(t *testing.T) {
	m := newTestModel(t, level.Socket)
	m = press(t, m, runes("?"), runes("?"))

	assert.Equal(t, 2, m.hintsShown)
	assert.Equal(t, 2, m.status.HelpLevel)

	m = press(t, m, runes("?"), runes("?"))
	assert.Equal(t, 3, m.hintsShown)
	assert.Equal(t, "No more hints.", m.feedback)
}

func TestResetKeepsRevealedHints(t *testing.T) {
	m := newTestModel(t, level.Socket)
	m = press(t, m, runes("?"), runes("?"), runes("r"))

	assert.Equal(t, 2, m.hintsShown)
	assert.Equal(t, 2, m.status.HelpLevel)

	m = press(t, m, runes("L"))
	assert.Zero(t, m.hintsShown)
	assert.Zero(t, m.status.HelpLevel)
}

func TestDuctKeysRouteAndClose(t *testing.T) {
	m := newTestModel(t, level.Duct)
	m = press(t, m, runes("s"), runes("p"))
	for i := 0; i < 6; i++ {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	}
	require.True(t, m.status.CanClose)

	m = press(t, m, runes("c"))
	require.NotNil(t, m.status.Result)
	assert.Equal(t, 100, m.status.Result.Score)
	assert.Equal(t, 2, m.status.Result.NextLevel)
	assert.Contains(t, m.View(), "Level 2 unlocked")

	m = press(t, m, runes("n"))
	assert.Equal(t, level.Socket, m.status.Level.ID)
}

func TestCycleLevelSkipsUnavailable(t *testing.T) {
	m := newTestModel(t, level.Socket)
	m = press(t, m, runes("L"))
	assert.Equal(t, level.Duct, m.status.Level.ID)
	m = press(t, m, runes("L"))
	assert.Equal(t, level.Socket, m.status.Level.ID)
}

func TestTickMsgUpdatesClock(t *testing.T) {
	m := newTestModel(t, level.Duct)
	st := m.status
	st.Clock = "01:05"
	m = press(t, m, TickMsg(st))
	assert.True(t, strings.Contains(m.View(), "01:05"))
}

func TestSimpleTable(t *testing.T) {
	table := NewSimpleTable("Mistakes", "Terminal", "Placed")
	assert.Empty(t, table.View(DefaultStyles()))

	table.AddRow("top-0", "Orange")
	table.AddRow("top-1")
	view := table.View(DefaultStyles())

	assert.Contains(t, view, "Mistakes")
	assert.Contains(t, view, "top-0")
	assert.Contains(t, view, "Orange")
	assert.Equal(t, 5, strings.Count(view, "\n"))
}

func TestThemeFor(t *testing.T) {
	assert.True(t, ThemeFor("dark").IsDark)
	assert.False(t, ThemeFor("light").IsDark)

	t.Setenv("COLORFGBG", "15;0")
	assert.True(t, ThemeFor("auto").IsDark)
	t.Setenv("COLORFGBG", "0;15")
	assert.False(t, ThemeFor("auto").IsDark)
}

func TestSwatch(t *testing.T) {
	assert.NotEmpty(t, Swatch(standard.Orange))
	assert.Equal(t, "  ", Swatch("zz"))
}
