package placement

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cabletrainer/internal/session"
	"cabletrainer/internal/standard"
)

func newSocketGame() *session.Game {
	return session.New(session.Options{Level: 2, Cables: []int{1, 2}, ReferenceCables: []int{2}})
}

func key(socket int, row standard.Row, index int) session.TerminalKey {
	return session.TerminalKey{Socket: socket, Row: row, Index: index}
}

// wireCorrectly punches every core onto its expected terminal of cable 1.
func wireCorrectly(t *testing.T, a *Assigner) {
	t.Helper()
	for _, row := range standard.Rows() {
		for i, id := range standard.Layout(row) {
			_, err := a.SelectCore(id)
			require.NoError(t, err)
			_, err = a.AssignCore(key(1, row, i))
			require.NoError(t, err)
		}
	}
}

func TestSelectCoreToggles(t *testing.T) {
	g := newSocketGame()
	a := NewAssigner(g)

	sel, err := a.SelectCore(standard.Blue)
	require.NoError(t, err)
	assert.Equal(t, standard.Blue, sel.Core)

	sel, _ = a.SelectCore(standard.Brown)
	assert.Equal(t, standard.Brown, sel.Core)

	sel, _ = a.SelectCore(standard.Brown)
	assert.Empty(t, sel.Core)
	assert.Empty(t, g.Selected)
}

func TestSelectUsedCoreIsNoOp(t *testing.T) {
	g := newSocketGame()
	a := NewAssigner(g)

	_, _ = a.SelectCore(standard.Blue)
	_, err := a.AssignCore(key(1, standard.RowTop, 2))
	require.NoError(t, err)

	_, _ = a.SelectCore(standard.Brown)
	before := g.Snapshot()
	sel, err := a.SelectCore(standard.Blue)
	require.NoError(t, err)
	assert.True(t, sel.Ignored)
	assert.Equal(t, standard.Brown, sel.Core)
	if diff := cmp.Diff(before, g.Snapshot()); diff != "" {
		t.Errorf("selecting a used core changed state (-want +got):\n%s", diff)
	}
}

func TestSelectUnknownCore(t *testing.T) {
	a := NewAssigner(newSocketGame())
	_, err := a.SelectCore("purple")
	assert.ErrorIs(t, err, ErrUnknownCore)
}

func TestAssignCore(t *testing.T) {
	g := newSocketGame()
	a := NewAssigner(g)

	_, _ = a.SelectCore(standard.WhiteOrange)
	p, err := a.AssignCore(key(1, standard.RowTop, 0))
	require.NoError(t, err)

	assert.Equal(t, Placement{Target: "top-0", Cable: 1, Core: standard.WhiteOrange}, p)
	assert.Empty(t, g.Selected)
	assert.True(t, g.Cable(1).Used(standard.WhiteOrange))
	assert.Equal(t, standard.WhiteOrange, g.Terminal(key(1, standard.RowTop, 0)).Assigned)
	assert.Equal(t, 1, g.UndoDepth())
	assert.True(t, a.CanUndo())
	require.NoError(t, g.Verify())
}

func TestAssignRejections(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(a *Assigner)
		target  session.TerminalKey
		want    error
	}{
		{
			name:    "no core selected",
			prepare: func(a *Assigner) {},
			target:  key(1, standard.RowTop, 0),
			want:    ErrNoCoreSelected,
		},
		{
			name: "terminal occupied",
			prepare: func(a *Assigner) {
				_, _ = a.SelectCore(standard.Blue)
				_, _ = a.AssignCore(key(1, standard.RowTop, 0))
				_, _ = a.SelectCore(standard.Brown)
			},
			target: key(1, standard.RowTop, 0),
			want:   ErrTerminalOccupied,
		},
		{
			name:    "reference socket",
			prepare: func(a *Assigner) { _, _ = a.SelectCore(standard.Blue) },
			target:  key(2, standard.RowTop, 0),
			want:    ErrForeignTerminal,
		},
		{
			name:    "missing socket",
			prepare: func(a *Assigner) { _, _ = a.SelectCore(standard.Blue) },
			target:  key(5, standard.RowTop, 0),
			want:    ErrUnknownTerminal,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newSocketGame()
			a := NewAssigner(g)
			tt.prepare(a)

			before := g.Snapshot()
			_, err := a.AssignCore(tt.target)
			assert.ErrorIs(t, err, tt.want)
			if diff := cmp.Diff(before, g.Snapshot()); diff != "" {
				t.Errorf("rejection mutated state (-want +got):\n%s", diff)
			}
			require.NoError(t, g.Verify())
		})
	}
}

func TestRejectedTerminalKeepsCoreArmed(t *testing.T) {
	g := newSocketGame()
	a := NewAssigner(g)
	_, _ = a.SelectCore(standard.Blue)
	_, _ = a.AssignCore(key(1, standard.RowTop, 0))
	_, _ = a.SelectCore(standard.Brown)

	_, err := a.AssignCore(key(1, standard.RowTop, 0))
	require.ErrorIs(t, err, ErrTerminalOccupied)
	assert.Equal(t, standard.Brown, g.Selected)
}

func TestAssignThenUndoRoundTrip(t *testing.T) {
	g := newSocketGame()
	a := NewAssigner(g)
	before := g.Snapshot()

	_, _ = a.SelectCore(standard.Green)
	_, err := a.AssignCore(key(1, standard.RowBottom, 1))
	require.NoError(t, err)

	p, err := a.UndoLast()
	require.NoError(t, err)
	assert.Equal(t, standard.Green, p.Core)
	assert.Equal(t, "bottom-1", p.Target)

	assert.True(t, g.Terminal(key(1, standard.RowBottom, 1)).Empty())
	assert.False(t, g.Cable(1).Used(standard.Green))
	assert.NotContains(t, g.Cable(1).Assignments, key(1, standard.RowBottom, 1))
	if diff := cmp.Diff(before, g.Snapshot()); diff != "" {
		t.Errorf("undo did not restore state (-want +got):\n%s", diff)
	}
}

func TestUndoOnEmptyStack(t *testing.T) {
	g := newSocketGame()
	a := NewAssigner(g)
	before := g.Snapshot()

	_, err := a.UndoLast()
	assert.ErrorIs(t, err, ErrNothingToUndo)
	assert.False(t, a.CanUndo())
	assert.Empty(t, cmp.Diff(before, g.Snapshot()))
}

func TestUndoIsLIFOAcrossCables(t *testing.T) {
	g := session.New(session.Options{Level: 2, Cables: []int{1, 2}})
	a := NewAssigner(g)

	_, _ = a.SelectCore(standard.Blue)
	_, err := a.AssignCore(key(1, standard.RowTop, 2))
	require.NoError(t, err)

	require.NoError(t, g.SetActiveCable(2))
	_, _ = a.SelectCore(standard.Blue)
	_, err = a.AssignCore(key(2, standard.RowTop, 2))
	require.NoError(t, err)

	require.NoError(t, g.SetActiveCable(1))
	p, err := a.UndoLast()
	require.NoError(t, err)
	assert.Equal(t, 2, p.Cable)
	assert.True(t, g.Cable(1).Used(standard.Blue))
	assert.False(t, g.Cable(2).Used(standard.Blue))

	p, err = a.UndoLast()
	require.NoError(t, err)
	assert.Equal(t, 1, p.Cable)
	require.NoError(t, g.Verify())
}

func TestCompletionAndReady(t *testing.T) {
	g := newSocketGame()
	a := NewAssigner(g)
	assert.False(t, a.Ready())
	assert.True(t, a.IsComplete(2), "reference cable starts complete")

	wireCorrectly(t, a)
	assert.True(t, a.IsComplete(1))
	assert.True(t, a.Ready())
	assert.Equal(t, []Progress{
		{Label: "Cable 1", Done: 8, Total: 8},
		{Label: "Cable 2", Done: 8, Total: 8},
	}, a.Progress())
	require.NoError(t, g.Verify())
}

func TestLastAssignmentReportsCompletion(t *testing.T) {
	g := newSocketGame()
	a := NewAssigner(g)
	var last Placement
	for _, row := range standard.Rows() {
		for i, id := range standard.Layout(row) {
			_, _ = a.SelectCore(id)
			p, err := a.AssignCore(key(1, row, i))
			require.NoError(t, err)
			last = p
		}
	}
	assert.True(t, last.Completed)
}

func TestPlaceParsesShortKeys(t *testing.T) {
	g := newSocketGame()
	a := NewAssigner(g)

	_, err := a.Place("top-0")
	assert.ErrorIs(t, err, ErrNoCoreSelected)

	_, _ = a.SelectCore(standard.WhiteOrange)
	_, err = a.Place("middle-9")
	assert.ErrorIs(t, err, session.ErrInvalidTerminalKey)
	assert.Equal(t, standard.WhiteOrange, g.Selected)

	p, err := a.Place("top-0")
	require.NoError(t, err)
	assert.Equal(t, 1, p.Cable)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "This terminal is already occupied!", Message(ErrTerminalOccupied))
	_, err := NewAssigner(newSocketGame()).UndoLast()
	assert.Equal(t, "Nothing to undo.", Message(err))
	assert.Empty(t, Message(nil))
}
