package scoring

// Grade buckets a score for the result screen.
type Grade string

const (
	GradePerfect  Grade = "perfect"
	GradeGood     Grade = "good"
	GradeFair     Grade = "fair"
	GradePractice Grade = "practice"
)

// GradeFor returns the grade of score.
func GradeFor(score int) Grade {
	switch {
	case score >= 95:
		return GradePerfect
	case score >= 80:
		return GradeGood
	case score >= 60:
		return GradeFair
	default:
		return GradePractice
	}
}

// Message is the line shown under the score.
func (g Grade) Message() string {
	switch g {
	case GradePerfect:
		return "Excellent! Perfect work!"
	case GradeGood:
		return "Very good! Almost perfect!"
	case GradeFair:
		return "Well done! A little more practice needed."
	default:
		return "Keep practising! Have a look at the hints."
	}
}
