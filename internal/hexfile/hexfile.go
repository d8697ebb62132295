// Package hexfile owns the on-disk side of an editing session: the whole
// file is read into memory once, and later writes are in-place overwrites
// of a region. The file is never truncated.
package hexfile

import (
	"fmt"
	"io"
	"os"
)

// OpenError reports that the target file could not be opened for
// reading and writing.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("Failed to open file \"%s\" for reading.", e.Path)
}

func (e *OpenError) Unwrap() error { return e.Err }

type File struct {
	path string
	f    *os.File
	data []byte
}

// Open opens path read-write and loads its full contents.
func Open(path string) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	data, err := io.ReadAll(f)
	if err != nil {
		_ = f.Close()
		return nil, &OpenError{Path: path, Err: err}
	}
	return &File{path: path, f: f, data: data}, nil
}

func (f *File) Path() string { return f.path }

// Data returns the bytes loaded at open time. The caller owns them.
func (f *File) Data() []byte { return f.data }

// WriteRegion overwrites len(data) bytes at offset. Writing past the
// current end extends the file.
func (f *File) WriteRegion(offset int64, data []byte) error {
	if offset < 0 {
		return fmt.Errorf("write %s: negative offset %d", f.path, offset)
	}
	if _, err := f.f.WriteAt(data, offset); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return f.f.Sync()
}

func (f *File) Close() error {
	if f.f == nil {
		return nil
	}
	err := f.f.Close()
	f.f = nil
	return err
}
