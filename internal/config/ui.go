package config

// UIConfig holds terminal user interface configuration.
type UIConfig struct {
	// Theme selects the colour palette: auto, light or dark.
	Theme string `yaml:"theme" json:"theme"`

	// FeedbackTimeout is how long a status line stays before it clears.
	FeedbackTimeout string `yaml:"feedback_timeout" json:"feedback_timeout"`

	// AltScreen runs the trainer in the alternate screen buffer.
	AltScreen bool `yaml:"alt_screen" json:"alt_screen"`
}

// DefaultUIConfig returns sensible UI defaults.
func DefaultUIConfig() *UIConfig {
	return &UIConfig{
		Theme:           "auto",
		FeedbackTimeout: "2s",
		AltScreen:       true,
	}
}
