package standard

// Row is one of the two terminal rows of an LSA block.
type Row string

const (
	RowTop    Row = "top"
	RowBottom Row = "bottom"
)

// TerminalsPerRow is the number of LSA terminals in each row.
const TerminalsPerRow = 4

// Pairs sit next to each other on the block: orange and blue on top,
// green and brown below.
var layout = map[Row][TerminalsPerRow]CoreID{
	RowTop:    {WhiteOrange, Orange, Blue, WhiteBlue},
	RowBottom: {WhiteGreen, Green, WhiteBrown, Brown},
}

// Rows returns the rows in display order.
func Rows() []Row {
	return []Row{RowTop, RowBottom}
}

// Valid reports whether r names a known row.
func (r Row) Valid() bool {
	_, ok := layout[r]
	return ok
}

// Layout returns the expected cores of a row, left to right.
func Layout(r Row) []CoreID {
	l, ok := layout[r]
	if !ok {
		return nil
	}
	out := make([]CoreID, TerminalsPerRow)
	copy(out, l[:])
	return out
}

// Expected returns the core that must occupy terminal index of row r.
func Expected(r Row, index int) (CoreID, bool) {
	l, ok := layout[r]
	if !ok || index < 0 || index >= TerminalsPerRow {
		return "", false
	}
	return l[index], true
}
