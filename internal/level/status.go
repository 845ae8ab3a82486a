package level

import (
	"cabletrainer/internal/placement"
	"cabletrainer/internal/scoring"
	"cabletrainer/internal/session"
)

// Status is everything a front end needs to render the current attempt.
type Status struct {
	Session string `json:"session" yaml:"session"`
	Level   Info   `json:"level" yaml:"level"`

	Started   bool   `json:"started" yaml:"started"`
	Checked   bool   `json:"checked" yaml:"checked"`
	Elapsed   int    `json:"elapsed" yaml:"elapsed"`
	Clock     string `json:"clock" yaml:"clock"`
	HelpLevel int    `json:"help_level" yaml:"help_level"`

	Progress     []placement.Progress `json:"progress" yaml:"progress"`
	CheckEnabled bool                 `json:"check_enabled" yaml:"check_enabled"`
	CanUndo      bool                 `json:"can_undo" yaml:"can_undo"`
	CanClose     bool                 `json:"can_close" yaml:"can_close"`

	Result *scoring.Result  `json:"result,omitempty" yaml:"result,omitempty"`
	Game   session.Snapshot `json:"game" yaml:"game"`
}

// Status reports the current attempt.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status()
}

func (c *Controller) status() Status {
	playing := c.game.Started && c.result == nil
	st := Status{
		Session:      c.game.ID.String(),
		Level:        c.level,
		Started:      c.game.Started,
		Checked:      c.result != nil,
		Elapsed:      c.game.Elapsed,
		Clock:        scoring.FormatClock(c.game.Elapsed),
		HelpLevel:    c.game.HelpLevel,
		Progress:     c.engine.Progress(),
		CheckEnabled: playing && c.engine.Ready(),
		CanUndo:      playing && c.engine.CanUndo(),
		Game:         c.game.Snapshot(),
	}
	if c.ducter != nil {
		st.CanClose = playing && c.ducter.CanClose()
	}
	if c.result != nil {
		r := *c.result
		st.Result = &r
	}
	return st
}
