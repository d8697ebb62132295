package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPathEnv(t *testing.T) {
	t.Setenv("VEX_LOG_FILE", "/tmp/custom.log")
	p, err := Path()
	if err != nil {
		t.Fatalf("Path error: %v", err)
	}
	if p != "/tmp/custom.log" {
		t.Fatalf("Path = %q, want %q", p, "/tmp/custom.log")
	}

	t.Setenv("VEX_LOG_FILE", "")
	t.Setenv("VEX_CONFIG_HOME", "/tmp/vexcfg")
	p, err = Path()
	if err != nil {
		t.Fatalf("Path error: %v", err)
	}
	if p != "/tmp/vexcfg/vex.log" {
		t.Fatalf("Path = %q, want %q", p, "/tmp/vexcfg/vex.log")
	}
}

func TestHelpersBeforeInitAreNoops(t *testing.T) {
	Close()
	Debug("ignored", "k", 1)
	Info("ignored")
	Warn("ignored")
	Error("ignored")
}

func TestInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "vex.log")
	t.Setenv("VEX_LOG_FILE", path)
	if err := Init(true); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	Debug("page changed", "page", 3)
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "page changed") {
		t.Fatalf("log missing debug entry:\n%s", data)
	}
}

func TestSetDebugTogglesLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vex.log")
	t.Setenv("VEX_LOG_FILE", path)
	if err := Init(false); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	Debug("hidden record")
	SetDebug(true)
	Debug("visible record")
	Close()
	SetDebug(false)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "hidden record") {
		t.Fatalf("debug record written at info level:\n%s", data)
	}
	if !strings.Contains(string(data), "visible record") {
		t.Fatalf("debug record missing after SetDebug:\n%s", data)
	}
}
