package editor

// nibbleAssembler turns two hex keystrokes into one byte. The first digit
// is written as the whole byte so the cell shows progress immediately;
// the second shifts it into the high nibble.
type nibbleAssembler struct {
	pending int
}

// feed applies one digit at the absolute offset and reports whether the
// byte is complete.
func (n *nibbleAssembler) feed(b *Buffer, off int, digit byte) bool {
	if n.pending == 0 {
		b.Set(off, digit)
		b.markDirty()
		n.pending = 1
		return false
	}
	b.Set(off, b.raw(off)<<4|digit)
	b.markDirty()
	n.pending = 0
	return true
}

func (n *nibbleAssembler) reset() {
	n.pending = 0
}

func hexValue(r rune) (byte, bool) {
	switch {
	case r >= '0' && r <= '9':
		return byte(r - '0'), true
	case r >= 'a' && r <= 'f':
		return byte(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return byte(r-'A') + 10, true
	}
	return 0, false
}
