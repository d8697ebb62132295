package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileState is the viewport a file was left at.
type FileState struct {
	Page  int `json:"page"`
	Index int `json:"index"`
	Row   int `json:"row"`
	Col   int `json:"col"`
}

type Session struct {
	Files     map[string]FileState `json:"files"`
	LastSaved time.Time            `json:"last_saved"`
}

// Manager handles session persistence. It is used from the single
// editor goroutine only.
type Manager struct {
	session Session
	path    string
	dirty   bool
}

func NewManager() (*Manager, error) {
	path, err := sessionPath()
	if err != nil {
		return nil, err
	}
	m := &Manager{
		session: Session{Files: make(map[string]FileState)},
		path:    path,
	}
	m.load()
	return m, nil
}

func sessionPath() (string, error) {
	stateDir := os.Getenv("XDG_STATE_HOME")
	if stateDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateDir = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateDir, "vex", "session.json"), nil
}

func (m *Manager) load() {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return // no session yet
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return
	}
	if s.Files == nil {
		s.Files = make(map[string]FileState)
	}
	m.session = s
}

// Save writes the session if anything changed since the last save.
func (m *Manager) Save() error {
	if !m.dirty {
		return nil
	}
	m.session.LastSaved = time.Now()
	data, err := json.MarshalIndent(m.session, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return err
	}
	m.dirty = false
	return nil
}

func (m *Manager) GetFileState(absPath string) (FileState, bool) {
	state, ok := m.session.Files[absPath]
	return state, ok
}

func (m *Manager) SetFileState(absPath string, state FileState) {
	if prev, ok := m.session.Files[absPath]; ok && prev == state {
		return
	}
	m.session.Files[absPath] = state
	m.dirty = true
}
