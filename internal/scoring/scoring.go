// Package scoring turns a checked attempt into points. Scores reward
// accuracy, decay stepwise with elapsed time and lose five points per
// revealed hint tier.
package scoring

import "math"

// PenaltyPerHelpTier is subtracted for the highest hint tier revealed.
const PenaltyPerHelpTier = 5

// MaxScore is the score of a perfect, fast, unaided attempt.
const MaxScore = 100

type bonusStep struct {
	upTo  int // seconds, inclusive
	bonus float64
}

var bonusSteps = []bonusStep{
	{60, 1.00},
	{120, 0.95},
	{180, 0.90},
	{240, 0.80},
	{300, 0.70},
}

// MinTimeBonus applies to every attempt slower than five minutes.
const MinTimeBonus = 0.50

// TimeBonus returns the multiplier for an attempt that took elapsed seconds.
func TimeBonus(elapsed int) float64 {
	for _, s := range bonusSteps {
		if elapsed <= s.upTo {
			return s.bonus
		}
	}
	return MinTimeBonus
}

// HelpPenalty returns the points lost for the highest hint tier used.
func HelpPenalty(helpLevel int) int {
	return helpLevel * PenaltyPerHelpTier
}

// Socket scores a terminal wiring attempt:
// max(0, round(correct/total * 100 * timeBonus - penalty)).
func Socket(correct, total, elapsed, helpLevel int) int {
	if total <= 0 {
		return 0
	}
	accuracy := float64(correct) / float64(total)
	raw := accuracy*MaxScore*TimeBonus(elapsed) - float64(HelpPenalty(helpLevel))
	return clamp(raw)
}

// Duct scores the pass/fail duct routing attempt:
// round((100 - penalty) * timeBonus) when passed, 0 otherwise.
func Duct(passed bool, elapsed, helpLevel int) int {
	if !passed {
		return 0
	}
	base := MaxScore - HelpPenalty(helpLevel)
	return clamp(float64(base) * TimeBonus(elapsed))
}

func clamp(v float64) int {
	r := int(math.Round(v))
	if r < 0 {
		return 0
	}
	return r
}
