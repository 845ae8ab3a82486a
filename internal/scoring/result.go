package scoring

import "fmt"

// Mismatch is one terminal holding the wrong core.
type Mismatch struct {
	Cable        int    `json:"cable" yaml:"cable"`
	Terminal     string `json:"terminal" yaml:"terminal"`
	PlacedName   string `json:"placed" yaml:"placed"`
	ExpectedName string `json:"expected" yaml:"expected"`
}

// String renders the mismatch the way the result screen lists it.
func (m Mismatch) String() string {
	return fmt.Sprintf("Cable %d, %s: %s placed, %s expected", m.Cable, m.Terminal, m.PlacedName, m.ExpectedName)
}

// Result is the payload handed to the presentation layer after a check.
type Result struct {
	Level     int        `json:"level" yaml:"level"`
	Score     int        `json:"score" yaml:"score"`
	Correct   int        `json:"correct" yaml:"correct"`
	Total     int        `json:"total" yaml:"total"`
	Errors    []Mismatch `json:"errors,omitempty" yaml:"errors,omitempty"`
	Elapsed   int        `json:"elapsed_seconds" yaml:"elapsed_seconds"`
	HelpLevel int        `json:"help_level" yaml:"help_level"`
	Passed    bool       `json:"passed" yaml:"passed"`
	Grade     Grade      `json:"grade" yaml:"grade"`
	NextLevel int        `json:"next_level,omitempty" yaml:"next_level,omitempty"`
}

// FormatClock renders seconds as mm:ss.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
