// Package level runs the trainer: it owns the active attempt, swaps in a
// fresh session on every level switch or reset, keeps the attempt timer and
// decides progression from one level to the next.
package level

// ID numbers a level.
type ID int

const (
	Duct       ID = 1
	Socket     ID = 2
	PatchPanel ID = 3
)

// Info describes a level for level selection.
type Info struct {
	ID          ID     `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Available   bool   `json:"available" yaml:"available"`

	// Requires is the level that must be passed first under strict progression.
	Requires ID `json:"requires,omitempty" yaml:"requires,omitempty"`
}

var catalogue = []Info{
	{
		ID:          Duct,
		Name:        "Cable duct",
		Description: "Route the installation cable through the cable duct.",
		Available:   true,
	},
	{
		ID:          Socket,
		Name:        "Network socket",
		Description: "Punch the cores onto the LSA terminals of the socket (T568A).",
		Available:   true,
		Requires:    Duct,
	},
	{
		ID:          PatchPanel,
		Name:        "Patch panel",
		Description: "Wire a port on the patch panel (T568A).",
		Requires:    Socket,
	},
}

// Catalogue returns every level in order.
func Catalogue() []Info {
	out := make([]Info, len(catalogue))
	copy(out, catalogue)
	return out
}

// Lookup returns the level with the given id.
func Lookup(id ID) (Info, bool) {
	for _, l := range catalogue {
		if l.ID == id {
			return l, true
		}
	}
	return Info{}, false
}

// next returns the level unlocked by passing id, if it can be played.
func next(id ID) (ID, bool) {
	for _, l := range catalogue {
		if l.Requires == id && l.Available {
			return l.ID, true
		}
	}
	return 0, false
}
