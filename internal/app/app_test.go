package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/vex/internal/config"
	"github.com/kobzarvs/vex/internal/editor"
	"github.com/kobzarvs/vex/internal/hexfile"
)

func isolate(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("VEX_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("VEX_LOG_FILE", filepath.Join(dir, "vex.log"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
}

func TestRunWithoutArgs(t *testing.T) {
	isolate(t)
	if err := New(nil).Run(); !errors.Is(err, ErrUsage) {
		t.Fatalf("Run() error = %v, want ErrUsage", err)
	}
}

func TestRunMissingFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "missing.bin")
	err := New([]string{path}).Run()
	var openErr *hexfile.OpenError
	if !errors.As(err, &openErr) {
		t.Fatalf("Run() error = %v, want *hexfile.OpenError", err)
	}
	if openErr.Path != path {
		t.Fatalf("OpenError.Path = %q, want %q", openErr.Path, path)
	}
}

func TestRunScreenFailure(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "a.bin")
	if err := os.WriteFile(path, []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := errors.New("no terminal")
	a := New([]string{path})
	a.newScreen = func() (tcell.Screen, error) { return nil, want }
	if err := a.Run(); !errors.Is(err, want) {
		t.Fatalf("Run() error = %v, want %v", err, want)
	}
}

func TestLoopEditsAndQuits(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "a.bin")
	if err := os.WriteFile(path, make([]byte, 10), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := hexfile.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	defer s.Fini()
	s.SetSize(80, 24)

	ed := editor.New(config.Default())
	ed.Resize(s.Size())
	ed.Load(path, f.Data(), f)

	for _, r := range "iff" {
		s.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	for _, r := range ":wq" {
		s.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
	s.InjectKey(tcell.KeyEnter, 0, tcell.ModNone)

	loop(s, ed)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) != 10 || data[0] != 0xff {
		t.Fatalf("file = % x, want ff followed by nine zeros", data)
	}
}
