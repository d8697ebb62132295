package editor

// Geometry is the per-frame layout derived from the terminal size.
//
// A row on screen is laid out as
//
//	oooo xx xx xx ... xx |  aaaa...a
//
// i.e. a 4 digit offset, one space, three cells per byte, the separator,
// a gap, and one ASCII cell per byte: 4*Columns + 7 cells in total.
type Geometry struct {
	Width   int
	Height  int
	Columns int // bytes per row
	Rows    int // terminal rows; the last one is the status row
}

const (
	hexColumnX = 5 // first hex cell
	labelWidth = hexColumnX - 1
	minRows    = 2
)

func ComputeGeometry(width, height int) Geometry {
	cols := (width - 7) / 4
	if cols < 1 {
		cols = 1
	}
	if height < minRows {
		height = minRows
	}
	return Geometry{Width: width, Height: height, Columns: cols, Rows: height}
}

// PageSize is the number of bytes a viewport window spans, including the
// row hidden under the status line.
func (g Geometry) PageSize() int {
	return g.Columns * g.Rows
}

// CursorRows is the number of rows the cursor may occupy.
func (g Geometry) CursorRows() int {
	return g.Rows - 1
}

func (g Geometry) separatorX() int {
	return g.Columns*3 + hexColumnX
}

func (g Geometry) asciiX() int {
	return g.Columns*3 + hexColumnX + 2
}

// HexX is the screen column of the hex cell for a 1-based column.
func (g Geometry) HexX(col int) int {
	return hexColumnX + (col-1)*3
}

// AsciiX is the screen column of the ASCII cell for a 1-based column.
func (g Geometry) AsciiX(col int) int {
	return g.asciiX() + col - 1
}

// ColumnAt maps a screen x back to a 1-based byte column. It accepts
// positions in both the hex and the ASCII area.
func (g Geometry) ColumnAt(x int) (int, bool) {
	if x >= hexColumnX && x < g.separatorX() {
		return (x-hexColumnX)/3 + 1, true
	}
	if x >= g.asciiX() && x < g.asciiX()+g.Columns {
		return x - g.asciiX() + 1, true
	}
	return 0, false
}
