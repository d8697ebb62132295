package editor

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/vex/internal/config"
	"github.com/kobzarvs/vex/internal/logger"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeCommand
)

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "insert"
	case ModeCommand:
		return "command"
	default:
		return "normal"
	}
}

const (
	actionMoveLeft     = "move_left"
	actionMoveRight    = "move_right"
	actionMoveUp       = "move_up"
	actionMoveDown     = "move_down"
	actionPageUp       = "page_up"
	actionPageDown     = "page_down"
	actionEnterInsert  = "enter_insert"
	actionEnterNormal  = "enter_normal"
	actionEnterCommand = "enter_command"
)

const (
	msgNoWrite = "No write since last change (use :w to save, and :q! to force)"
	msgUnknown = "Not an editor command: "
)

// Persister writes a region of the file back to storage.
type Persister interface {
	WriteRegion(offset int64, data []byte) error
}

// Cursor is the byte under the cursor. Index is relative to the start of
// the current viewport window; Row and Col are 1-based screen positions.
type Cursor struct {
	Index int
	Row   int
	Col   int
}

type keymapSet struct {
	normal map[string]string
	insert map[string]string
}

// Editor is one editing session. All state lives here and is touched only
// from the goroutine running the event loop.
type Editor struct {
	buf       *Buffer
	persister Persister
	filename  string

	geo  Geometry
	page int
	cur  Cursor
	mode Mode

	nibble   nibbleAssembler
	cmd      CommandLine
	history  *History
	histPath string

	keymap      keymapSet
	scrollPages int
	styles      styles

	statusMessage string
	statusIsError bool

	// redraw bookkeeping: step is the decision for the event being
	// handled, pending accumulates until the next Render.
	step       RedrawLevel
	pending    RedrawLevel
	drawn      Cursor
	dirtyCells []int
}

func New(cfg config.Config) *Editor {
	normal := make(map[string]string, len(cfg.Keymap.Normal))
	for k, v := range cfg.Keymap.Normal {
		normal[k] = v
	}
	insert := make(map[string]string, len(cfg.Keymap.Insert))
	for k, v := range cfg.Keymap.Insert {
		insert[k] = v
	}
	scrollPages := cfg.Editor.ScrollPages
	if scrollPages < 1 {
		scrollPages = 1
	}
	return &Editor{
		buf:         NewBuffer(nil),
		geo:         ComputeGeometry(80, 24),
		cur:         Cursor{Row: 1, Col: 1},
		mode:        ModeNormal,
		history:     NewHistory(cfg.Editor.HistorySize),
		keymap:      keymapSet{normal: normal, insert: insert},
		scrollPages: scrollPages,
		styles:      newStyles(cfg.Theme),
		pending:     RedrawFull,
		drawn:       Cursor{Row: 1, Col: 1},
	}
}

// Load installs the file contents. p receives the region writes issued
// by :w and may be nil for a read-only session.
func (e *Editor) Load(name string, data []byte, p Persister) {
	e.buf = NewBuffer(data)
	e.persister = p
	e.filename = name
	e.page = 0
	e.cur = Cursor{Row: 1, Col: 1}
	e.mode = ModeNormal
	e.nibble.reset()
	e.cmd.Reset()
	e.statusMessage = ""
	e.pending = RedrawFull
	logger.Info("file loaded", "path", name, "size", len(data))
}

func (e *Editor) Buffer() *Buffer    { return e.buf }
func (e *Editor) Geometry() Geometry { return e.geo }
func (e *Editor) Page() int          { return e.page }
func (e *Editor) Cursor() Cursor     { return e.cur }
func (e *Editor) Mode() Mode         { return e.mode }
func (e *Editor) Filename() string   { return e.filename }

func (e *Editor) StatusMessage() string { return e.statusMessage }

// Resize recomputes the geometry. The page index is kept unless wider rows
// leave it past the data, and the cursor is pulled back inside the new
// bounds.
func (e *Editor) Resize(width, height int) {
	g := ComputeGeometry(width, height)
	if g == e.geo {
		return
	}
	e.geo = g
	if last := e.lastPage(); e.page > last {
		e.page = last
	}
	e.clampCursor()
	e.request(RedrawFull)
}

// SetPosition moves to a saved page and window-relative index. Positions
// that no longer fall inside the data are ignored.
func (e *Editor) SetPosition(page, index int) bool {
	if page < 0 || index < 0 || page > e.lastPage() {
		return false
	}
	start := page * e.geo.Columns
	wl := e.buf.WindowLen(start, e.geo.PageSize())
	if index >= wl && index != 0 {
		return false
	}
	if index/e.geo.Columns+1 > e.geo.CursorRows() {
		return false
	}
	e.page = page
	e.cur = Cursor{Index: index, Row: index/e.geo.Columns + 1, Col: index%e.geo.Columns + 1}
	e.request(RedrawFull)
	return true
}

// Step applies one input event and returns the redraw it requires, and
// whether the session should end.
func (e *Editor) Step(ev tcell.Event) (RedrawLevel, bool) {
	e.step = RedrawNone
	quit := false
	switch ev := ev.(type) {
	case *tcell.EventKey:
		quit = e.handleKey(ev)
	case *tcell.EventMouse:
		e.handleMouse(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		e.Resize(w, h)
	}
	return e.step, quit
}

func (e *Editor) request(level RedrawLevel) {
	if level > e.step {
		e.step = level
	}
	if level > e.pending {
		e.pending = level
	}
}

func (e *Editor) handleKey(ev *tcell.EventKey) bool {
	if e.mode != ModeCommand {
		e.statusMessage = ""
		e.statusIsError = false
	}
	switch e.mode {
	case ModeInsert:
		return e.handleInsert(ev)
	case ModeCommand:
		return e.handleCommand(ev)
	default:
		return e.handleNormal(ev)
	}
}

func (e *Editor) handleNormal(ev *tcell.EventKey) bool {
	key := keyString(ev)
	if key == "" {
		return false
	}
	action, ok := e.keymap.normal[key]
	if !ok {
		return false
	}
	return e.execAction(action)
}

func (e *Editor) handleInsert(ev *tcell.EventKey) bool {
	if ev.Key() == tcell.KeyRune {
		if digit, ok := hexValue(ev.Rune()); ok {
			e.insertDigit(digit)
			return false
		}
	}
	key := keyString(ev)
	if key == "" {
		return false
	}
	if action, ok := e.keymap.insert[key]; ok {
		return e.execAction(action)
	}
	return false
}

func (e *Editor) execAction(action string) bool {
	switch action {
	case actionMoveLeft:
		e.nibble.reset()
		e.moveLeft()
	case actionMoveRight:
		e.nibble.reset()
		e.moveRight()
	case actionMoveUp:
		e.nibble.reset()
		e.moveUp()
	case actionMoveDown:
		e.nibble.reset()
		e.moveDown()
	case actionPageUp:
		e.nibble.reset()
		e.pageUp()
	case actionPageDown:
		e.nibble.reset()
		e.pageDown()
	case actionEnterInsert:
		if e.mode == ModeNormal {
			e.mode = ModeInsert
		}
	case actionEnterNormal:
		e.mode = ModeNormal
		e.nibble.reset()
	case actionEnterCommand:
		if e.mode == ModeNormal {
			e.mode = ModeCommand
			e.cmd.Reset()
			e.history.Reset()
		}
	default:
		logger.Warn("unknown keymap action", "action", action)
	}
	return false
}

// insertDigit feeds one hex digit to the nibble assembler at the cursor.
func (e *Editor) insertDigit(digit byte) {
	off := e.absolute(e.cur.Index)
	if !e.buf.Writable(off) {
		logger.Warn("edit refused", "offset", off, "length", e.buf.Len())
		e.nibble.reset()
		return
	}
	if !e.nibble.feed(e.buf, off, digit) {
		e.request(RedrawCell)
		return
	}
	logger.Debug("byte committed", "offset", off, "value", fmt.Sprintf("%02x", e.buf.raw(off)))
	e.dirtyCells = append(e.dirtyCells, e.cur.Index)
	// No wrap at the row end: the cursor stays on the last column.
	if e.cur.Col < e.geo.Columns {
		e.cur.Col++
		e.cur.Index++
	}
}

func (e *Editor) handleCommand(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		e.leaveCommand()
		return false
	case tcell.KeyEnter:
		text := e.cmd.String()
		e.history.Add(text)
		e.saveCmdHistory()
		e.leaveCommand()
		return e.execCommand(ParseCommand(text))
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.cmd.Backspace()
		e.history.Reset()
	case tcell.KeyDelete:
		e.cmd.Delete()
		e.history.Reset()
	case tcell.KeyLeft:
		e.cmd.Left()
	case tcell.KeyRight:
		e.cmd.Right()
	case tcell.KeyUp:
		if s, ok := e.history.Prev(e.cmd.String()); ok {
			e.cmd.Set(s)
		}
	case tcell.KeyDown:
		if s, ok := e.history.Next(); ok {
			e.cmd.Set(s)
		}
	case tcell.KeyRune:
		e.cmd.Insert(ev.Rune())
		e.history.Reset()
	}
	return false
}

func (e *Editor) leaveCommand() {
	e.mode = ModeNormal
	e.cmd.Reset()
	e.history.Reset()
}

func (e *Editor) execCommand(cmd Command) bool {
	switch cmd.Kind {
	case CmdNone:
		return false
	case CmdGoto:
		e.gotoAddress(cmd.Addr)
		return false
	case CmdQuit:
		if e.buf.Dirty() && !e.buf.Persisted() {
			logger.Info("quit refused", "reason", "unsaved changes")
			e.setError(msgNoWrite)
			return false
		}
		return true
	case CmdForceQuit:
		return true
	case CmdWrite:
		e.save()
		return false
	case CmdWriteQuit:
		return e.save()
	default:
		logger.Info("unknown command", "cmd", cmd.Text)
		e.setError(msgUnknown + cmd.Text)
		return false
	}
}

// save writes the bytes of the current window back at the window's file
// offset and reports whether the write went through. Bytes outside the
// window are not written. Failures are reported on the status row and leave
// the buffer dirty.
func (e *Editor) save() bool {
	start := e.pageStart()
	data := e.buf.Window(start, e.geo.PageSize())
	if e.persister == nil {
		e.setError("no file to write")
		return false
	}
	if err := e.persister.WriteRegion(int64(start), data); err != nil {
		logger.Error("write failed", "path", e.filename, "offset", start, "err", err)
		e.setError(err.Error())
		return false
	}
	e.buf.markPersisted()
	logger.Info("region written", "path", e.filename, "offset", start, "length", len(data))
	e.setStatus(fmt.Sprintf("%q %db written", e.filename, len(data)))
	return true
}

func (e *Editor) setStatus(msg string) {
	e.statusMessage = msg
	e.statusIsError = false
}

func (e *Editor) setError(msg string) {
	e.statusMessage = msg
	e.statusIsError = true
}

// Position reports the page and window-relative index for the session file.
func (e *Editor) Position() (page, index int) {
	return e.page, e.cur.Index
}

// LoadCmdHistory reads the command history and remembers where to write
// it back. Without this call history stays in memory only.
func (e *Editor) LoadCmdHistory() {
	path, err := historyFilePath()
	if err != nil {
		return
	}
	e.histPath = path
	if err := e.history.load(path); err != nil {
		logger.Warn("load history", "path", path, "err", err)
	}
}

func (e *Editor) saveCmdHistory() {
	if e.histPath == "" {
		return
	}
	if err := e.history.save(e.histPath); err != nil {
		logger.Warn("save history", "path", e.histPath, "err", err)
	}
}
