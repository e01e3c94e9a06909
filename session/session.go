// Package session tracks navigation history and persists it between runs.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// History is a back stack of visited locations. The last entry is the
// current page.
type History struct {
	entries []string
}

// NewHistory returns a history seeded with entries (oldest first).
func NewHistory(entries ...string) *History {
	return &History{entries: append([]string(nil), entries...)}
}

// Push records a visit to loc.
func (h *History) Push(loc string) {
	h.entries = append(h.entries, loc)
}

// Back drops the current page and returns the previous one. It reports
// false, leaving the history unchanged, when there is nothing to go back to.
func (h *History) Back() (string, bool) {
	if len(h.entries) < 2 {
		return "", false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return h.entries[len(h.entries)-1], true
}

// Current returns the current location.
func (h *History) Current() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	return h.entries[len(h.entries)-1], true
}

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Entries returns a copy of the entries, oldest first.
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

// Session represents the persisted browser state.
type Session struct {
	History []string `json:"history"`
}

// Path returns the session file path.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tuibrowse", "session.json"), nil
}

// Load reads the session from disk.
func Load() (*Session, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads a session file.
func LoadFrom(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}

	return &s, nil
}

// Save writes the session to disk.
func Save(s *Session) error {
	path, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(path, s)
}

// SaveTo writes a session file, creating its directory.
func SaveTo(path string, s *Session) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
