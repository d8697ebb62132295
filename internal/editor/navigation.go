package editor

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/vex/internal/logger"
)

// pageStart is the absolute offset of the viewport window.
func (e *Editor) pageStart() int {
	return e.page * e.geo.Columns
}

// absolute converts a window-relative index to a file offset.
func (e *Editor) absolute(index int) int {
	return e.pageStart() + index
}

// windowLen is the number of valid bytes inside the current window.
func (e *Editor) windowLen() int {
	return e.buf.WindowLen(e.pageStart(), e.geo.PageSize())
}

// lastPage is the highest page whose first row still holds data.
func (e *Editor) lastPage() int {
	n := e.buf.Len()
	if n == 0 {
		return 0
	}
	return (n - 1) / e.geo.Columns
}

func (e *Editor) setPage(page int) {
	if page < 0 {
		page = 0
	}
	if last := e.lastPage(); page > last {
		page = last
	}
	if page != e.page {
		logger.Debug("page changed", "from", e.page, "to", page)
	}
	e.page = page
	e.clampCursor()
	e.request(RedrawFull)
}

// clampCursor keeps the cursor on a visible row and on valid data,
// recomputing Row and Col from Index.
func (e *Editor) clampCursor() {
	w := e.geo.Columns
	if maxIndex := e.geo.CursorRows()*w - 1; e.cur.Index > maxIndex {
		e.cur.Index = maxIndex
	}
	if wl := e.windowLen(); e.cur.Index >= wl && e.cur.Index > 0 {
		e.cur.Index = wl - 1
		if e.cur.Index < 0 {
			e.cur.Index = 0
		}
	}
	e.cur.Row = e.cur.Index/w + 1
	e.cur.Col = e.cur.Index%w + 1
}

func (e *Editor) moveLeft() {
	if e.cur.Col > 1 && e.cur.Index > 0 {
		e.cur.Col--
		e.cur.Index--
	}
}

func (e *Editor) moveRight() {
	if e.cur.Col < e.geo.Columns && e.cur.Index+1 < e.windowLen() {
		e.cur.Col++
		e.cur.Index++
	}
}

func (e *Editor) moveUp() {
	if e.cur.Row > 1 {
		e.cur.Row--
		e.cur.Index -= e.geo.Columns
		return
	}
	if e.page > 0 {
		e.page--
		logger.Debug("page changed", "to", e.page)
		e.request(RedrawFull)
	}
}

// moveDown refuses to step onto a row with no data under the cursor.
func (e *Editor) moveDown() {
	w := e.geo.Columns
	if e.absolute(e.cur.Index)+w >= e.buf.Len() {
		return
	}
	if e.cur.Row+1 < e.geo.Rows {
		e.cur.Row++
		e.cur.Index += w
		return
	}
	e.page++
	logger.Debug("page changed", "to", e.page)
	e.request(RedrawFull)
}

func (e *Editor) halfScreen() int {
	return e.geo.Rows / 2
}

func (e *Editor) pageUp() {
	e.setPage(e.page - e.halfScreen())
}

func (e *Editor) pageDown() {
	e.setPage(e.page + e.halfScreen())
}

func (e *Editor) handleMouse(ev *tcell.EventMouse) {
	switch ev.Buttons() {
	case tcell.WheelUp:
		e.nibble.reset()
		e.setPage(e.page - e.scrollPages)
	case tcell.WheelDown:
		e.nibble.reset()
		e.setPage(e.page + e.scrollPages)
	case tcell.Button1:
		x, y := ev.Position()
		e.click(x, y)
	}
}

// click puts the cursor on the byte under a hex or ASCII cell. Clicks on
// the gutter, the status row or past the data are ignored.
func (e *Editor) click(x, y int) {
	if y < 0 || y >= e.geo.CursorRows() {
		return
	}
	col, ok := e.geo.ColumnAt(x)
	if !ok {
		return
	}
	index := y*e.geo.Columns + col - 1
	if index >= e.windowLen() && index != 0 {
		return
	}
	e.nibble.reset()
	e.cur = Cursor{Index: index, Row: y + 1, Col: col}
	e.request(RedrawLine)
}

// gotoAddress places the cursor at addr taken as an offset into the
// current window. The page is left alone, so on any page but the first
// the cursor lands addr bytes past the window start rather than at file
// offset addr.
func (e *Editor) gotoAddress(addr int64) {
	w := int64(e.geo.Columns)
	row := addr/w + 1
	if addr < 0 || row > int64(e.geo.CursorRows()) || (addr >= int64(e.windowLen()) && addr != 0) {
		e.setError(fmt.Sprintf("Address out of range: %x", addr))
		return
	}
	e.nibble.reset()
	e.cur = Cursor{Index: int(addr), Row: int(row), Col: int(addr%w) + 1}
	e.request(RedrawLine)
}
