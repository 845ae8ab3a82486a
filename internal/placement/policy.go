package placement

import (
	"cabletrainer/internal/scoring"
	"cabletrainer/internal/session"
	"cabletrainer/internal/standard"
)

// Evaluation is the correctness verdict of a finished attempt.
type Evaluation struct {
	Passed  bool
	Correct int
	Total   int
	Errors  []scoring.Mismatch
}

// Policy decides what counts as correct on a level and how it is scored.
type Policy interface {
	Evaluate(g *session.Game) Evaluation
	Score(ev Evaluation, elapsed, helpLevel int) int
}

// SocketPolicy compares every terminal of the playable cables with the
// standard. Empty terminals never count as correct.
type SocketPolicy struct{}

// Evaluate implements Policy.
func (SocketPolicy) Evaluate(g *session.Game) Evaluation {
	var ev Evaluation
	for _, id := range g.PlayableCables() {
		c := g.Cable(id)
		ev.Total += standard.CoreCount
		for _, key := range c.SortedKeys() {
			a := c.Assignments[key]
			if a.Correct() {
				ev.Correct++
				continue
			}
			ev.Errors = append(ev.Errors, scoring.Mismatch{
				Cable:        id,
				Terminal:     key.Short(),
				PlacedName:   standard.CoreName(a.CoreID),
				ExpectedName: standard.CoreName(a.Expected),
			})
		}
	}
	ev.Passed = ev.Total > 0 && ev.Correct == ev.Total
	return ev
}

// Score implements Policy.
func (SocketPolicy) Score(ev Evaluation, elapsed, helpLevel int) int {
	return scoring.Socket(ev.Correct, ev.Total, elapsed, helpLevel)
}

// DuctPolicy passes when every segment is routed. There is only one kind of
// conductor, so there is no partial credit.
type DuctPolicy struct{}

// Evaluate implements Policy.
func (DuctPolicy) Evaluate(g *session.Game) Evaluation {
	d := g.Duct
	return Evaluation{
		Passed:  d.Full(),
		Correct: d.Placed,
		Total:   d.Total(),
	}
}

// Score implements Policy.
func (DuctPolicy) Score(ev Evaluation, elapsed, helpLevel int) int {
	return scoring.Duct(ev.Passed, elapsed, helpLevel)
}
