// Package preferences stores the dashboard's UI preferences. The store is
// created once at startup, initialized from its file, and injected where
// needed; there is no global instance.
package preferences

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"modboard/domain/core"
)

// ThemeMode is the dashboard color scheme
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

// Valid reports whether m is a known mode
func (m ThemeMode) Valid() bool {
	return m == ThemeLight || m == ThemeDark
}

// Preferences is the persisted document
type Preferences struct {
	Theme ThemeMode `yaml:"theme" json:"theme"`
}

func defaults() Preferences {
	return Preferences{Theme: ThemeLight}
}

// Store keeps preferences in memory and mirrors every change to a YAML file
type Store struct {
	mu    sync.RWMutex
	path  string
	prefs Preferences
}

// Open loads preferences from path. A missing file or unknown theme yields
// defaults; a malformed file is an error.
func Open(path string) (*Store, error) {
	s := &Store{path: path, prefs: defaults()}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read preferences %s: %w", path, err)
	}

	var stored Preferences
	if err := yaml.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("parse preferences %s: %w", path, err)
	}
	if stored.Theme.Valid() {
		s.prefs.Theme = stored.Theme
	}
	return s, nil
}

// Theme returns the current mode
func (s *Store) Theme() ThemeMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs.Theme
}

// SetTheme changes and persists the mode
func (s *Store) SetTheme(mode ThemeMode) error {
	if !mode.Valid() {
		return core.NewValidationError("theme", fmt.Sprintf("unknown mode %q", mode))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setLocked(mode)
}

// ToggleTheme flips light and dark and returns the new mode
func (s *Store) ToggleTheme() (ThemeMode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := ThemeDark
	if s.prefs.Theme == ThemeDark {
		next = ThemeLight
	}
	if err := s.setLocked(next); err != nil {
		return "", err
	}
	return next, nil
}

func (s *Store) setLocked(mode ThemeMode) error {
	next := s.prefs
	next.Theme = mode
	if err := s.save(next); err != nil {
		return err
	}
	s.prefs = next
	return nil
}

// save writes atomically: temp file in the same directory, then rename.
func (s *Store) save(p Preferences) error {
	if s.path == "" {
		return nil
	}
	raw, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".preferences-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp preferences: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close preferences: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace preferences: %w", err)
	}
	return nil
}
