package editor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/vex/internal/config"
)

// RedrawLevel is how much of the screen an event invalidated. The cursor
// indicator and the status row are repainted at every level.
type RedrawLevel int

const (
	RedrawNone RedrawLevel = iota
	RedrawCell             // the byte under the cursor
	RedrawLine             // the cursor's row
	RedrawFull
)

func (l RedrawLevel) String() string {
	switch l {
	case RedrawCell:
		return "cell"
	case RedrawLine:
		return "line"
	case RedrawFull:
		return "full"
	default:
		return "none"
	}
}

// DrawOp puts Text at (X, Y) in Style.
type DrawOp struct {
	X, Y  int
	Text  string
	Style tcell.Style
}

// Frame is everything one Render call paints. Building it does not touch
// the screen, so it can be inspected directly.
type Frame struct {
	Clear       bool
	Ops         []DrawOp
	CursorX     int
	CursorY     int
	CursorStyle tcell.CursorStyle
}

type styles struct {
	plain           tcell.Style
	offset          tcell.Style
	offsetActive    tcell.Style
	separator       tcell.Style
	ascii           tcell.Style
	cursorNormal    tcell.Style
	cursorInsert    tcell.Style
	statusName      tcell.Style
	statusSize      tcell.Style
	insertIndicator tcell.Style
	errorText       tcell.Style
}

func newStyles(t config.Theme) styles {
	fg := func(name string, fallback tcell.Color) tcell.Style {
		return tcell.StyleDefault.Foreground(parseColor(name, fallback))
	}
	cursorFg := parseColor(t.CursorForeground, tcell.ColorBlack)
	return styles{
		plain:           tcell.StyleDefault,
		offset:          fg(t.OffsetForeground, tcell.ColorGray),
		offsetActive:    fg(t.OffsetActiveForeground, tcell.ColorWhite),
		separator:       fg(t.SeparatorForeground, tcell.ColorDefault),
		ascii:           fg(t.AsciiForeground, tcell.ColorGray),
		cursorNormal:    tcell.StyleDefault.Foreground(cursorFg).Background(parseColor(t.CursorNormalBackground, tcell.ColorGray)),
		cursorInsert:    tcell.StyleDefault.Foreground(cursorFg).Background(parseColor(t.CursorInsertBackground, tcell.ColorWhite)),
		statusName:      fg(t.StatusFilenameForeground, tcell.ColorSilver),
		statusSize:      fg(t.StatusSizeForeground, tcell.ColorOlive),
		insertIndicator: fg(t.InsertIndicatorForeground, tcell.ColorOrange),
		errorText:       fg(t.ErrorForeground, tcell.ColorRed),
	}
}

// byteStyle colours a hex cell by value: low bytes lean red, high bytes
// lean blue.
func byteStyle(b byte) tcell.Style {
	v := int32(b)
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(255-v, v/2+64, v))
}

func printable(b byte) string {
	if b >= ' ' && b <= '~' {
		return string(rune(b))
	}
	return " "
}

// Render paints what changed since the previous call.
func (e *Editor) Render(s tcell.Screen) {
	e.Plan().Paint(s)
	e.pending = RedrawNone
	e.drawn = e.cur
	e.dirtyCells = e.dirtyCells[:0]
}

// Plan builds the frame for the pending redraw level.
func (e *Editor) Plan() Frame {
	var f Frame
	switch e.pending {
	case RedrawFull:
		f.Clear = true
		for y := 0; y < e.geo.CursorRows(); y++ {
			f.Ops = append(f.Ops, e.rowOps(y)...)
		}
	case RedrawLine:
		f.Ops = append(f.Ops, e.rowOps(e.cur.Row-1)...)
	case RedrawCell:
		f.Ops = append(f.Ops, e.cellOps(e.cur.Index)...)
	}
	if e.pending != RedrawFull {
		for _, i := range e.dirtyCells {
			f.Ops = append(f.Ops, e.cellOps(i)...)
		}
		f.Ops = append(f.Ops, e.undrawOps(e.drawn)...)
	}
	f.Ops = append(f.Ops, e.cursorOps()...)
	f.Ops = append(f.Ops, e.statusOps()...)

	switch e.mode {
	case ModeCommand:
		f.CursorX = 1 + e.cmd.Cursor()
		if f.CursorX >= e.geo.Width {
			f.CursorX = e.geo.Width - 1
		}
		f.CursorY = e.geo.Rows - 1
		f.CursorStyle = tcell.CursorStyleSteadyBar
	case ModeInsert:
		f.CursorX = e.geo.HexX(e.cur.Col)
		f.CursorY = e.cur.Row - 1
		f.CursorStyle = tcell.CursorStyleSteadyBar
	default:
		f.CursorX = e.geo.HexX(e.cur.Col)
		f.CursorY = e.cur.Row - 1
		f.CursorStyle = tcell.CursorStyleSteadyBlock
	}
	return f
}

// offsetLabel renders an offset for the gutter. Offsets of 0x10000 and
// above keep only their low digits so the label never reaches the hex
// cells.
func offsetLabel(off int) string {
	l := fmt.Sprintf("%04x", off)
	return l[len(l)-labelWidth:]
}

func (e *Editor) rowOps(y int) []DrawOp {
	w := e.geo.Columns
	ops := []DrawOp{
		{X: 0, Y: y, Text: strings.Repeat(" ", e.geo.Width), Style: e.styles.plain},
		{X: 0, Y: y, Text: offsetLabel((e.page + y) * w), Style: e.styles.offset},
		{X: e.geo.separatorX(), Y: y, Text: "|", Style: e.styles.separator},
	}
	wl := e.windowLen()
	for i := y * w; i < (y+1)*w && i < wl; i++ {
		ops = append(ops, e.cellOps(i)...)
	}
	return ops
}

// cellOps draws the hex and ASCII cells of a window-relative index.
func (e *Editor) cellOps(index int) []DrawOp {
	w := e.geo.Columns
	y := index / w
	col := index%w + 1
	b, ok := e.buf.At(e.absolute(index))
	if !ok {
		return []DrawOp{
			{X: e.geo.HexX(col), Y: y, Text: "  ", Style: e.styles.plain},
			{X: e.geo.AsciiX(col), Y: y, Text: " ", Style: e.styles.ascii},
		}
	}
	return []DrawOp{
		{X: e.geo.HexX(col), Y: y, Text: fmt.Sprintf("%02x", b), Style: byteStyle(b)},
		{X: e.geo.AsciiX(col), Y: y, Text: printable(b), Style: e.styles.ascii},
	}
}

// undrawOps restores the offset label and ASCII cell a cursor left behind.
func (e *Editor) undrawOps(c Cursor) []DrawOp {
	y := c.Row - 1
	if y < 0 || y >= e.geo.CursorRows() || c.Col < 1 || c.Col > e.geo.Columns {
		return nil
	}
	ops := []DrawOp{{X: 0, Y: y, Text: offsetLabel((e.page+y)*e.geo.Columns) + " ", Style: e.styles.offset}}
	return append(ops, e.cellOps(c.Index)[1])
}

// cursorOps highlights the cursor's ASCII cell and shows the absolute
// cursor offset in the row's gutter.
func (e *Editor) cursorOps() []DrawOp {
	y := e.cur.Row - 1
	ch := " "
	if b, ok := e.buf.At(e.absolute(e.cur.Index)); ok {
		ch = printable(b)
	}
	style := e.styles.cursorNormal
	if e.mode == ModeInsert {
		style = e.styles.cursorInsert
	}
	return []DrawOp{
		{X: 0, Y: y, Text: offsetLabel(e.absolute(e.cur.Index)), Style: e.styles.offsetActive},
		{X: e.geo.AsciiX(e.cur.Col), Y: y, Text: ch, Style: style},
	}
}

func (e *Editor) statusOps() []DrawOp {
	y := e.geo.Rows - 1
	ops := []DrawOp{{X: 0, Y: y, Text: strings.Repeat(" ", e.geo.Width), Style: e.styles.plain}}
	switch {
	case e.mode == ModeCommand:
		ops = append(ops, DrawOp{X: 0, Y: y, Text: ":" + e.cmd.String(), Style: e.styles.plain})
	case e.mode == ModeInsert:
		ops = append(ops, DrawOp{X: 0, Y: y, Text: "-- INSERT --", Style: e.styles.insertIndicator})
	case e.statusMessage != "":
		style := e.styles.plain
		if e.statusIsError {
			style = e.styles.errorText
		}
		ops = append(ops, DrawOp{X: 0, Y: y, Text: e.statusMessage, Style: style})
	default:
		name := strconv.Quote(e.filename) + " "
		ops = append(ops,
			DrawOp{X: 0, Y: y, Text: name, Style: e.styles.statusName},
			DrawOp{X: runewidth.StringWidth(name), Y: y, Text: fmt.Sprintf("(%db)", e.buf.Len()), Style: e.styles.statusSize},
		)
	}
	return ops
}

// Paint applies the frame to a screen and shows it.
func (f Frame) Paint(s tcell.Screen) {
	if f.Clear {
		s.Clear()
	}
	for _, op := range f.Ops {
		drawString(s, op.X, op.Y, op.Style, op.Text)
	}
	s.SetCursorStyle(f.CursorStyle)
	s.ShowCursor(f.CursorX, f.CursorY)
	s.Show()
}

func drawString(s tcell.Screen, x, y int, style tcell.Style, str string) {
	for _, c := range str {
		var comb []rune
		w := runewidth.RuneWidth(c)
		if w == 0 {
			comb = []rune{c}
			c = ' '
			w = 1
		}
		s.SetContent(x, y, c, comb, style)
		x += w
	}
}

func parseColor(name string, fallback tcell.Color) tcell.Color {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	if strings.HasPrefix(name, "#") && len(name) == 7 {
		r, err1 := strconv.ParseInt(name[1:3], 16, 32)
		g, err2 := strconv.ParseInt(name[3:5], 16, 32)
		b, err3 := strconv.ParseInt(name[5:7], 16, 32)
		if err1 == nil && err2 == nil && err3 == nil {
			return tcell.NewRGBColor(int32(r), int32(g), int32(b))
		}
		return fallback
	}
	name = strings.ToLower(name)
	if name == "default" {
		return tcell.ColorDefault
	}
	c := tcell.GetColor(name)
	if c == tcell.ColorDefault {
		return fallback
	}
	return c
}
