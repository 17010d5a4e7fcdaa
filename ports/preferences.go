package ports

import "modboard/internal/preferences"

// ThemeStore holds the dashboard theme preference
type ThemeStore interface {
	Theme() preferences.ThemeMode
	SetTheme(mode preferences.ThemeMode) error
	ToggleTheme() (preferences.ThemeMode, error)
}
