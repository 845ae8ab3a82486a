package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"cabletrainer/internal/level"
	"cabletrainer/internal/scoring"
	"cabletrainer/internal/session"
	"cabletrainer/internal/standard"
)

// TickMsg carries a status pushed by the controller's background ticker.
type TickMsg level.Status

type feedbackTimeoutMsg struct{ seq int }

// GameConfig configures a GameModel.
type GameConfig struct {
	Controller      *level.Controller
	Styles          Styles
	FeedbackTimeout time.Duration
	Logger          *zap.Logger
}

// GameModel is the interactive trainer.
type GameModel struct {
	ctrl   *level.Controller
	log    *zap.Logger
	styles Styles
	keys   KeyMap

	help     help.Model
	progress progress.Model
	result   viewport.Model
	renderer *glamour.TermRenderer

	status level.Status

	// Socket cursor: row 0 top, 1 bottom; col 0-3.
	row, col int
	// Duct cursor.
	slot int

	hintsShown int

	feedback        string
	feedbackIsError bool
	feedbackSeq     int
	feedbackTimeout time.Duration

	width, height int
}

// NewGameModel builds the model around a controller.
func NewGameModel(cfg GameConfig) GameModel {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.FeedbackTimeout <= 0 {
		cfg.FeedbackTimeout = 2 * time.Second
	}
	m := GameModel{
		ctrl:            cfg.Controller,
		log:             cfg.Logger,
		styles:          cfg.Styles,
		keys:            DefaultKeyMap(),
		help:            help.New(),
		progress:        progress.New(progress.WithDefaultGradient()),
		result:          viewport.New(80, 12),
		feedbackTimeout: cfg.FeedbackTimeout,
		width:           80,
		height:          24,
	}
	m.progress.Width = 30
	m.status = m.ctrl.Status()
	m.setRenderer(76)
	return m
}

func (m *GameModel) setRenderer(width int) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.log.Warn("markdown renderer unavailable", zap.Error(err))
		r = nil
	}
	m.renderer = r
}

// Init implements tea.Model.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.progress.Width = min(40, max(10, msg.Width/3))
		m.result.Width = msg.Width - 4
		m.result.Height = max(6, msg.Height/3)
		m.setRenderer(max(20, msg.Width-6))
		return m, nil

	case TickMsg:
		m.status = level.Status(msg)
		return m, nil

	case feedbackTimeoutMsg:
		if msg.seq == m.feedbackSeq {
			m.feedback = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.result, cmd = m.result.Update(msg)
	return m, cmd
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Start):
		cmd = m.report(m.ctrl.StartGame(), "Timer started. Good luck!")

	case key.Matches(msg, m.keys.Reset):
		m.ctrl.ResetLevel()
		m.row, m.col, m.slot = 0, 0, 0
		cmd = m.report(nil, "Level reset.")

	case key.Matches(msg, m.keys.Level):
		cmd = m.cycleLevel()

	case key.Matches(msg, m.keys.Next):
		err := m.ctrl.Advance()
		if err == nil {
			m.hintsShown = 0
		}
		cmd = m.report(err, "On to the next level.")

	case key.Matches(msg, m.keys.Hint):
		cmd = m.revealHint()

	case key.Matches(msg, m.keys.Check):
		res, err := m.ctrl.CheckSolution()
		cmd = m.reportResult(res, err)

	case m.status.Level.ID == level.Socket:
		cmd = m.handleSocketKey(msg)

	case m.status.Level.ID == level.Duct:
		cmd = m.handleDuctKey(msg)
	}

	m.status = m.ctrl.Status()
	if m.status.Result != nil {
		m.result.SetContent(m.renderResult(*m.status.Result))
	}
	return m, cmd
}

func (m *GameModel) handleSocketKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Core):
		idx := int(msg.String()[0] - '1')
		core := standard.Cores()[idx]
		sel, err := m.ctrl.SelectCore(core.ID)
		switch {
		case err != nil:
			return m.report(err, "")
		case sel.Ignored:
			return m.report(nil, core.Name+" is already punched down.")
		case sel.Core == "":
			return m.report(nil, "Selection cleared.")
		}
		return m.report(nil, core.Name+" selected.")

	case key.Matches(msg, m.keys.Move):
		switch msg.String() {
		case "up", "k":
			m.row = 0
		case "down", "j":
			m.row = 1
		case "left", "h":
			m.col = max(0, m.col-1)
		case "right", "l":
			m.col = min(standard.TerminalsPerRow-1, m.col+1)
		}

	case key.Matches(msg, m.keys.Punch):
		target := fmt.Sprintf("%s-%d", standard.Rows()[m.row], m.col)
		p, err := m.ctrl.AssignCore(target)
		if err == nil && p.Completed {
			return m.report(nil, "Cable complete. Press x to check.")
		}
		return m.report(err, "")

	case key.Matches(msg, m.keys.Undo):
		p, err := m.ctrl.UndoLast()
		return m.report(err, fmt.Sprintf("Removed %s from %s.", standard.CoreName(p.Core), p.Target))

	case key.Matches(msg, m.keys.Cable):
		ids := m.playableCables()
		if len(ids) < 2 {
			return m.report(nil, "Cable 2 is the wired reference.")
		}
		next := ids[0]
		for i, id := range ids {
			if id == m.status.Game.ActiveCable {
				next = ids[(i+1)%len(ids)]
			}
		}
		return m.report(m.ctrl.SetActiveCable(next), fmt.Sprintf("Wiring cable %d.", next))
	}
	return nil
}

func (m *GameModel) handleDuctKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.PickUp):
		return m.report(m.ctrl.PickUp(), "Cable in hand.")

	case key.Matches(msg, m.keys.Move):
		switch msg.String() {
		case "left", "h":
			m.slot = max(0, m.slot-1)
		case "right", "l":
			m.slot = min(session.TotalSegments-1, m.slot+1)
		}

	case key.Matches(msg, m.keys.Punch):
		p, err := m.ctrl.PlaceSegment(m.slot)
		if err == nil {
			m.slot = min(session.TotalSegments-1, m.slot+1)
			if p.Completed {
				return m.report(nil, "Cable routed. Close the cover with c.")
			}
		}
		return m.report(err, "")

	case key.Matches(msg, m.keys.Close):
		res, err := m.ctrl.CloseCover()
		return m.reportResult(res, err)

	case key.Matches(msg, m.keys.Undo):
		_, err := m.ctrl.UndoLast()
		return m.report(err, "")
	}
	return nil
}

func (m *GameModel) playableCables() []int {
	var ids []int
	for _, c := range m.status.Game.Cables {
		if !c.Reference {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

func (m *GameModel) cycleLevel() tea.Cmd {
	cat := level.Catalogue()
	cur := m.status.Level.ID
	for i, info := range cat {
		if info.ID != cur {
			continue
		}
		for j := 1; j < len(cat); j++ {
			next := cat[(i+j)%len(cat)]
			if !next.Available {
				continue
			}
			err := m.ctrl.SelectLevel(next.ID)
			if err == nil {
				m.hintsShown = 0
				m.row, m.col, m.slot = 0, 0, 0
			}
			return m.report(err, "Level: "+next.Name)
		}
	}
	return nil
}

func (m *GameModel) revealHint() tea.Cmd {
	hints := m.ctrl.Hints()
	if m.hintsShown >= len(hints) {
		return m.report(nil, "No more hints.")
	}
	tier := hints[m.hintsShown].Tier
	if err := m.ctrl.RecordHelpUsed(tier); err != nil {
		return m.report(err, "")
	}
	m.hintsShown++
	return m.report(nil, fmt.Sprintf("Hint %d revealed, penalty now %d points.", tier, scoring.HelpPenalty(m.ctrl.Status().HelpLevel)))
}

// report sets the feedback line from err, or ok when err is nil, and
// schedules it to clear.
func (m *GameModel) report(err error, ok string) tea.Cmd {
	if err != nil {
		m.feedback = level.Message(err)
		m.feedbackIsError = true
		m.log.Debug("input rejected", zap.Error(err))
	} else {
		m.feedback = ok
		m.feedbackIsError = false
	}
	if m.feedback == "" {
		return nil
	}
	m.feedbackSeq++
	seq := m.feedbackSeq
	return tea.Tick(m.feedbackTimeout, func(time.Time) tea.Msg {
		return feedbackTimeoutMsg{seq: seq}
	})
}

func (m *GameModel) reportResult(res scoring.Result, err error) tea.Cmd {
	if err != nil {
		return m.report(err, "")
	}
	m.log.Info("attempt checked", zap.Int("level", res.Level), zap.Int("score", res.Score))
	return m.report(nil, fmt.Sprintf("%d points. %s", res.Score, res.Grade.Message()))
}

// View implements tea.Model.
func (m GameModel) View() string {
	st := m.status
	var sections []string

	sections = append(sections, m.viewHeader(st))

	switch st.Level.ID {
	case level.Socket:
		sections = append(sections, m.viewSocket(st))
	case level.Duct:
		sections = append(sections, m.viewDuct(st))
	}

	var bars []string
	for _, p := range st.Progress {
		pct := 0.0
		if p.Total > 0 {
			pct = float64(p.Done) / float64(p.Total)
		}
		bars = append(bars, fmt.Sprintf("%-12s %s %d/%d", p.Label, m.progress.ViewAs(pct), p.Done, p.Total))
	}
	sections = append(sections, strings.Join(bars, "\n"))

	if hints := m.viewHints(); hints != "" {
		sections = append(sections, hints)
	}
	if st.Result != nil {
		sections = append(sections, m.styles.Panel.Render(m.result.View()))
	}

	if m.feedback != "" {
		style := m.styles.Info
		if m.feedbackIsError {
			style = m.styles.Error
		}
		sections = append(sections, style.Render(m.feedback))
	}

	sections = append(sections, m.styles.Footer.Render(m.help.View(m.keys)))
	return m.styles.Content.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m GameModel) viewHeader(st level.Status) string {
	title := m.styles.Header.Render(fmt.Sprintf("Level %d: %s", st.Level.ID, st.Level.Name))
	clock := m.styles.Badge.Render(st.Clock)
	state := m.styles.Muted.Render("press s to start")
	switch {
	case st.Checked:
		state = m.styles.Success.Render("checked")
	case st.Started:
		state = m.styles.Info.Render("running")
	}
	hints := m.styles.Muted.Render(fmt.Sprintf("help %d/%d", st.HelpLevel, session.MaxHelpTier))
	return lipgloss.JoinHorizontal(lipgloss.Center, title, " ", clock, "  ", state, "  ", hints)
}

func (m GameModel) viewSocket(st level.Status) string {
	var palette []string
	var active session.CableSnapshot
	var reference *session.CableSnapshot
	for i, c := range st.Game.Cables {
		if c.ID == st.Game.ActiveCable {
			active = c
		}
		if c.Reference {
			reference = &st.Game.Cables[i]
		}
	}
	used := make(map[standard.CoreID]bool, len(active.Used))
	for _, id := range active.Used {
		used[id] = true
	}
	for i, c := range standard.Cores() {
		label := fmt.Sprintf("%d %s %s", i+1, Swatch(c.ID), c.Name)
		switch {
		case used[c.ID]:
			label = m.styles.Muted.Render(fmt.Sprintf("%d ✓ %s", i+1, c.Name))
		case c.ID == st.Game.Selected:
			label = m.styles.Selected.Render(label)
		}
		palette = append(palette, label)
	}
	cores := m.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Left,
		append([]string{m.styles.Title.Render(fmt.Sprintf("Cable %d", active.ID))}, palette...)...))

	board := m.viewTerminals(active, true)
	parts := []string{cores, " ", board}
	if reference != nil {
		ref := lipgloss.JoinVertical(lipgloss.Left,
			m.styles.Subtitle.Render(fmt.Sprintf("Socket %d (reference)", reference.ID)),
			m.viewTerminals(*reference, false))
		parts = append(parts, " ", ref)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m GameModel) viewTerminals(c session.CableSnapshot, cursor bool) string {
	var rows []string
	for r, row := range standard.Rows() {
		var cells []string
		for i, expected := range standard.Layout(row) {
			k := session.TerminalKey{Socket: c.ID, Row: row, Index: i}
			content := "·"
			if id, ok := c.Assignments[k.String()]; ok {
				content = standard.CoreName(id)
			}
			style := m.styles.Terminal
			if cursor && r == m.row && i == m.col {
				style = m.styles.TerminalCursor
			}
			// Colour code printed on the terminal block.
			cells = append(cells, lipgloss.JoinVertical(lipgloss.Center, Swatch(expected), style.Render(content)))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m GameModel) viewDuct(st level.Status) string {
	d := st.Game.Duct
	if d == nil {
		return ""
	}
	var slots []string
	for i, filled := range d.Filled {
		style := m.styles.Slot
		if filled {
			style = m.styles.SlotFilled
		}
		label := fmt.Sprintf("%d", i+1)
		if i == m.slot && !d.CoverClosed {
			label = "▼" + label
		}
		slots = append(slots, style.Render(label))
	}
	duct := lipgloss.JoinHorizontal(lipgloss.Top, slots...)

	hand := m.styles.Muted.Render("cable on the floor (p to pick up)")
	switch {
	case d.CableInHand:
		hand = m.styles.Info.Render("cable in hand")
	case d.Placed == len(d.Filled):
		hand = m.styles.Success.Render("cable routed")
	}
	cover := "cover open"
	if d.CoverClosed {
		cover = "cover closed"
	}
	return lipgloss.JoinVertical(lipgloss.Left, duct, hand+"  "+m.styles.Muted.Render(cover))
}

func (m GameModel) viewHints() string {
	if m.hintsShown == 0 {
		return ""
	}
	var sb strings.Builder
	for _, h := range m.ctrl.Hints()[:m.hintsShown] {
		fmt.Fprintf(&sb, "### %s\n\n%s\n\n", h.Title, h.Markdown)
	}
	return m.renderMarkdown(sb.String())
}

func (m GameModel) renderMarkdown(md string) string {
	if m.renderer == nil {
		return md
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func (m GameModel) renderResult(res scoring.Result) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s  %s\n", m.styles.Title.Render(fmt.Sprintf("Score: %d/%d", res.Score, scoring.MaxScore)), res.Grade.Message())
	fmt.Fprintf(&sb, "Correct: %d/%d   Time: %s   Help: %d\n", res.Correct, res.Total, scoring.FormatClock(res.Elapsed), res.HelpLevel)
	if len(res.Errors) > 0 {
		t := NewSimpleTable("Mistakes", "Cable", "Terminal", "Placed", "Expected")
		for _, e := range res.Errors {
			t.AddRow(fmt.Sprint(e.Cable), e.Terminal, e.PlacedName, e.ExpectedName)
		}
		sb.WriteString("\n" + t.View(m.styles))
	}
	if res.NextLevel != 0 {
		sb.WriteString("\n" + m.styles.Success.Render(fmt.Sprintf("Level %d unlocked. Press n to continue.", res.NextLevel)))
	}
	return sb.String()
}
