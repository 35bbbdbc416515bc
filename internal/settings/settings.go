// Package settings persists view preferences as a single JSON blob.
// The core never holds settings in process state; every consumer loads
// an explicit snapshot.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Settings is the stored preference snapshot.
type Settings struct {
	ShowDone    bool   `json:"show_done"`
	ShowDueOnly bool   `json:"show_due_only"`
	SortMode    string `json:"sort_mode"`
}

// Default returns the settings used when nothing has been saved yet.
func Default() Settings {
	return Settings{SortMode: "topic"}
}

// Store reads and writes the settings file.
type Store struct {
	path string
}

// NewStore creates a settings store at path. The file and its parent
// directory are created on first save.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the saved settings. A missing or unreadable file yields
// the defaults rather than an error.
func (s *Store) Load() Settings {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Default()
	}
	out := Default()
	if err := json.Unmarshal(data, &out); err != nil {
		return Default()
	}
	if out.SortMode == "" {
		out.SortMode = "topic"
	}
	return out
}

// Save writes the settings atomically: tmp file → rename.
func (s *Store) Save(v Settings) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("settings: mkdir: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("settings: marshal: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".settings-tmp-*")
	if err != nil {
		return fmt.Errorf("settings: create temp: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("settings: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("settings: close temp: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("settings: rename: %w", err)
	}
	return nil
}
