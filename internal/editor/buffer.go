package editor

// Buffer is the whole file held in memory.
//
// validLength starts at the on-disk length and grows by exactly one each
// time a byte is written right at it. It never shrinks, and writes further
// out are refused so the valid bytes stay contiguous.
type Buffer struct {
	data        []byte
	fileLength  int
	validLength int
	dirty       bool
	persisted   bool
}

func NewBuffer(data []byte) *Buffer {
	return &Buffer{
		data:        data,
		fileLength:  len(data),
		validLength: len(data),
	}
}

func (b *Buffer) Len() int        { return b.validLength }
func (b *Buffer) FileLength() int { return b.fileLength }
func (b *Buffer) Dirty() bool     { return b.dirty }
func (b *Buffer) Persisted() bool { return b.persisted }

// At returns the byte at an absolute offset if it lies inside the valid data.
func (b *Buffer) At(off int) (byte, bool) {
	if off < 0 || off >= b.validLength {
		return 0, false
	}
	return b.data[off], true
}

// raw reads the backing array without the valid-length check. Bytes
// beyond validLength read as zero.
func (b *Buffer) raw(off int) byte {
	if off < 0 || off >= len(b.data) {
		return 0
	}
	return b.data[off]
}

// Writable reports whether off is inside the valid data or directly
// after it.
func (b *Buffer) Writable(off int) bool {
	return off >= 0 && off <= b.validLength
}

// Set stores v at an absolute offset, growing the backing array when
// needed. It reports whether the valid length grew. Offsets that are not
// Writable are ignored.
func (b *Buffer) Set(off int, v byte) bool {
	if !b.Writable(off) {
		return false
	}
	if off >= len(b.data) {
		b.data = append(b.data, make([]byte, off+1-len(b.data))...)
	}
	b.data[off] = v
	if off == b.validLength {
		b.validLength++
		return true
	}
	return false
}

func (b *Buffer) markDirty() {
	b.dirty = true
	b.persisted = false
}

func (b *Buffer) markPersisted() {
	b.dirty = false
	b.persisted = true
}

// WindowLen is the number of valid bytes in the window starting at
// start and spanning at most size bytes.
func (b *Buffer) WindowLen(start, size int) int {
	n := b.validLength - start
	if n < 0 {
		return 0
	}
	if n > size {
		return size
	}
	return n
}

// Window returns the valid bytes of a window. The slice aliases the
// buffer and must not be kept across edits.
func (b *Buffer) Window(start, size int) []byte {
	n := b.WindowLen(start, size)
	if n == 0 {
		return nil
	}
	return b.data[start : start+n]
}
