package editor

import (
	"bufio"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kobzarvs/vex/internal/config"
)

// CommandLine is the ':' prompt: a single line of text with an
// insertion point in [0, len(text)].
type CommandLine struct {
	text   []rune
	cursor int
}

func (c *CommandLine) String() string { return string(c.text) }
func (c *CommandLine) Cursor() int    { return c.cursor }
func (c *CommandLine) Len() int       { return len(c.text) }

func (c *CommandLine) Reset() {
	c.text = c.text[:0]
	c.cursor = 0
}

func (c *CommandLine) Set(s string) {
	c.text = []rune(s)
	c.cursor = len(c.text)
}

func (c *CommandLine) Insert(r rune) {
	c.text = append(c.text, 0)
	copy(c.text[c.cursor+1:], c.text[c.cursor:])
	c.text[c.cursor] = r
	c.cursor++
}

// Backspace removes the rune left of the insertion point.
func (c *CommandLine) Backspace() bool {
	if c.cursor == 0 {
		return false
	}
	c.text = append(c.text[:c.cursor-1], c.text[c.cursor:]...)
	c.cursor--
	return true
}

// Delete removes the rune under the insertion point.
func (c *CommandLine) Delete() bool {
	if c.cursor >= len(c.text) {
		return false
	}
	c.text = append(c.text[:c.cursor], c.text[c.cursor+1:]...)
	return true
}

func (c *CommandLine) Left() {
	if c.cursor > 0 {
		c.cursor--
	}
}

func (c *CommandLine) Right() {
	if c.cursor < len(c.text) {
		c.cursor++
	}
}

type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdGoto
	CmdWrite
	CmdQuit
	CmdWriteQuit
	CmdForceQuit
	CmdUnknown
)

type Command struct {
	Kind CommandKind
	Addr int64 // CmdGoto only
	Text string
}

// ParseCommand classifies submitted command text. A leading hex digit
// always means goto; otherwise the first character decides and only the
// second one is looked at for '!' or 'q'.
func ParseCommand(text string) Command {
	cmd := Command{Kind: CmdUnknown, Text: text}
	if text == "" {
		cmd.Kind = CmdNone
		return cmd
	}
	if _, ok := hexValue(rune(text[0])); ok {
		cmd.Kind = CmdGoto
		cmd.Addr = parseHexPrefix(text)
		return cmd
	}
	switch text[0] {
	case 'q':
		cmd.Kind = CmdQuit
		if len(text) > 1 && text[1] == '!' {
			cmd.Kind = CmdForceQuit
		}
	case 'w':
		cmd.Kind = CmdWrite
		if len(text) > 1 && text[1] == 'q' {
			cmd.Kind = CmdWriteQuit
		}
	}
	return cmd
}

// parseHexPrefix reads the leading run of hex digits. Values that do not
// fit saturate to MaxInt64.
func parseHexPrefix(text string) int64 {
	end := 0
	for end < len(text) {
		if _, ok := hexValue(rune(text[end])); !ok {
			break
		}
		end++
	}
	v, err := strconv.ParseInt(text[:end], 16, 64)
	if err != nil {
		return math.MaxInt64
	}
	return v
}

// History keeps submitted commands, oldest first. Browsing is filtered
// by the text that was on the line when browsing started.
type History struct {
	entries []string
	limit   int
	index   int // -1 when not browsing
	prefix  string
}

func NewHistory(limit int) *History {
	if limit < 1 {
		limit = 1
	}
	return &History{limit: limit, index: -1}
}

func (h *History) Entries() []string { return h.entries }

// Add records cmd unless it repeats the newest entry.
func (h *History) Add(cmd string) {
	h.index = -1
	if cmd == "" {
		return
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == cmd {
		return
	}
	h.entries = append(h.entries, cmd)
	if len(h.entries) > h.limit {
		h.entries = h.entries[len(h.entries)-h.limit:]
	}
}

func (h *History) Reset() {
	h.index = -1
}

// Prev steps to an older matching entry.
func (h *History) Prev(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.index == -1 {
		h.prefix = current
		h.index = len(h.entries)
	}
	for i := h.index - 1; i >= 0; i-- {
		if strings.HasPrefix(h.entries[i], h.prefix) {
			h.index = i
			return h.entries[i], true
		}
	}
	return "", false
}

// Next steps to a newer matching entry. Past the newest one it hands
// back the text browsing started from.
func (h *History) Next() (string, bool) {
	if h.index == -1 {
		return "", false
	}
	for i := h.index + 1; i < len(h.entries); i++ {
		if strings.HasPrefix(h.entries[i], h.prefix) {
			h.index = i
			return h.entries[i], true
		}
	}
	h.index = -1
	return h.prefix, true
}

func historyFilePath() (string, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history"), nil
}

func (h *History) load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			h.Add(line)
		}
	}
	return sc.Err()
}

func (h *History) save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data := strings.Join(h.entries, "\n")
	if data != "" {
		data += "\n"
	}
	return os.WriteFile(path, []byte(data), 0o644)
}
