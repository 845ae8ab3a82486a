// Package standard holds the T568A reference the trainer checks against:
// the eight cores of a twisted-pair cable and the LSA terminal layout of a
// network socket. Everything here is immutable for the process lifetime.
package standard

// Name identifies the wiring standard used as ground truth.
const Name = "T568A"

// CoreID is the stable key of a wire core.
type CoreID string

const (
	WhiteGreen  CoreID = "wg"
	Green       CoreID = "g"
	WhiteOrange CoreID = "wo"
	Blue        CoreID = "bl"
	WhiteBlue   CoreID = "wbl"
	Orange      CoreID = "o"
	WhiteBrown  CoreID = "wbr"
	Brown       CoreID = "br"
)

// CoreCount is the number of conductors in the cable.
const CoreCount = 8

// Core describes one insulated conductor.
type Core struct {
	ID        CoreID
	Name      string
	Primary   string // hex colour of the insulation
	Secondary string // stripe colour, equal to Primary for solid cores
	Pin       int    // 1-8
	Pair      int    // 1-4
}

// Striped reports whether the core carries a stripe.
func (c Core) Striped() bool {
	return c.Primary != c.Secondary
}

// Ordered by pin.
var cores = [CoreCount]Core{
	{ID: WhiteGreen, Name: "White-Green", Primary: "#FFFFFF", Secondary: "#2E8B57", Pin: 1, Pair: 3},
	{ID: Green, Name: "Green", Primary: "#2E8B57", Secondary: "#2E8B57", Pin: 2, Pair: 3},
	{ID: WhiteOrange, Name: "White-Orange", Primary: "#FFFFFF", Secondary: "#FF8C00", Pin: 3, Pair: 2},
	{ID: Blue, Name: "Blue", Primary: "#4169E1", Secondary: "#4169E1", Pin: 4, Pair: 1},
	{ID: WhiteBlue, Name: "White-Blue", Primary: "#FFFFFF", Secondary: "#4169E1", Pin: 5, Pair: 1},
	{ID: Orange, Name: "Orange", Primary: "#FF8C00", Secondary: "#FF8C00", Pin: 6, Pair: 2},
	{ID: WhiteBrown, Name: "White-Brown", Primary: "#FFFFFF", Secondary: "#8B4513", Pin: 7, Pair: 4},
	{ID: Brown, Name: "Brown", Primary: "#8B4513", Secondary: "#8B4513", Pin: 8, Pair: 4},
}

// Cores returns the eight cores ordered by pin.
func Cores() []Core {
	out := make([]Core, CoreCount)
	copy(out, cores[:])
	return out
}

// Lookup returns the core with the given id.
func Lookup(id CoreID) (Core, bool) {
	for _, c := range cores {
		if c.ID == id {
			return c, true
		}
	}
	return Core{}, false
}

// CoreName returns the display name of id, or the raw id if it is unknown.
func CoreName(id CoreID) string {
	if c, ok := Lookup(id); ok {
		return c.Name
	}
	return string(id)
}
