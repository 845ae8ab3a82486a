package level

// Hint is one tier of help. Revealing a tier costs points.
type Hint struct {
	Tier     int    `json:"tier" yaml:"tier"`
	Title    string `json:"title" yaml:"title"`
	Markdown string `json:"markdown" yaml:"markdown"`
}

var hints = map[ID][]Hint{
	Duct: {
		{1, "Tip", "Pick up the cable first, then click the free positions in the duct."},
		{2, "Order", "The cable enters the duct on the **left**. Start at position **1** and work to the right."},
		{3, "Solution", "Place segments **1 → 2 → 3 → 4 → 5 → 6**, then close the cover."},
	},
	Socket: {
		{1, "Tip", "The colour markings above the terminals show the T568A layout. Socket B is already wired and can be used as a reference."},
		{2, "Pairs", "Pairs sit next to each other. Top row: the **orange** pair, then the **blue** pair. Bottom row: the **green** pair, then the **brown** pair."},
		{3, "Solution", "| Row | 1 | 2 | 3 | 4 |\n|---|---|---|---|---|\n| top | White-Orange | Orange | Blue | White-Blue |\n| bottom | White-Green | Green | White-Brown | Brown |\n"},
	},
}

// HintsFor returns the hint tiers of a level in order.
func HintsFor(id ID) []Hint {
	hs := hints[id]
	out := make([]Hint, len(hs))
	copy(out, hs)
	return out
}
