// Package config provides configuration loading for tuibrowse using TOML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// HTTP fetching settings
type Fetcher struct {
	UserAgent      string `toml:"userAgent"`
	TimeoutSeconds int    `toml:"timeoutSeconds"`
	ChromePath     string `toml:"chromePath"`
	UseBrowser     bool   `toml:"useBrowser"` // render pages with headless Chrome
}

// Rendering settings
type Rendering struct {
	DefaultWidth int     `toml:"defaultWidth"` // used when stdout is not a terminal
	ImageWidth   int     `toml:"imageWidth"`   // max image width in cells
	CharAspect   float64 `toml:"charAspect"`   // character cell width/height
	MaxDepth     int     `toml:"maxDepth"`     // deepest HTML nesting mapped to elements
}

// Session settings
type Session struct {
	RestoreSession bool `toml:"restoreSession"`
}

// Editor settings
type Editor struct {
	HistoryFile string `toml:"historyFile"` // empty = history in the config directory
}

// Config is the main configuration struct
type Config struct {
	Fetcher   Fetcher   `toml:"fetcher"`
	Rendering Rendering `toml:"rendering"`
	Session   Session   `toml:"session"`
	Editor    Editor    `toml:"editor"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Fetcher: Fetcher{
			UserAgent:      "tuibrowse/1.0 (Terminal Browser)",
			TimeoutSeconds: 10,
		},
		Rendering: Rendering{
			DefaultWidth: 80,
			ImageWidth:   80,
			CharAspect:   0.5,
			MaxDepth:     256,
		},
		Session: Session{
			RestoreSession: false,
		},
	}
}

// Dir returns the configuration directory path.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "tuibrowse"), nil
}

// ConfigPath returns the path to the user's config file.
func ConfigPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// HistoryPath returns the prompt history file for cfg.
func (c *Config) HistoryPath() string {
	if c.Editor.HistoryFile != "" {
		return c.Editor.HistoryFile
	}
	dir, err := Dir()
	if err != nil {
		return filepath.Join(os.TempDir(), "tuibrowse_history")
	}
	return filepath.Join(dir, "history")
}

// Load loads configuration, layering user config on top of defaults.
// Returns the default config if no user config exists.
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return Default(), nil // Return defaults if we can't determine path
	}
	return LoadFile(configPath)
}

// LoadFile layers the TOML file at path over the defaults. A missing file
// yields the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	var user Config
	md, err := toml.DecodeFile(path, &user)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("loading config from %s: unknown key %q", path, undecoded[0].String())
	}

	return merge(cfg, &user, md), nil
}

// merge layers user config on top of defaults. Strings and numbers override
// when non-zero; booleans override when the key is present in the file.
func merge(defaults, user *Config, md toml.MetaData) *Config {
	result := *defaults

	// Fetcher
	if user.Fetcher.UserAgent != "" {
		result.Fetcher.UserAgent = user.Fetcher.UserAgent
	}
	if user.Fetcher.TimeoutSeconds > 0 {
		result.Fetcher.TimeoutSeconds = user.Fetcher.TimeoutSeconds
	}
	if user.Fetcher.ChromePath != "" {
		result.Fetcher.ChromePath = user.Fetcher.ChromePath
	}
	if md.IsDefined("fetcher", "useBrowser") {
		result.Fetcher.UseBrowser = user.Fetcher.UseBrowser
	}

	// Rendering
	if user.Rendering.DefaultWidth > 0 {
		result.Rendering.DefaultWidth = user.Rendering.DefaultWidth
	}
	if user.Rendering.ImageWidth > 0 {
		result.Rendering.ImageWidth = user.Rendering.ImageWidth
	}
	if user.Rendering.CharAspect > 0 {
		result.Rendering.CharAspect = user.Rendering.CharAspect
	}
	if user.Rendering.MaxDepth > 0 {
		result.Rendering.MaxDepth = user.Rendering.MaxDepth
	}

	// Session
	if md.IsDefined("session", "restoreSession") {
		result.Session.RestoreSession = user.Session.RestoreSession
	}

	// Editor
	if user.Editor.HistoryFile != "" {
		result.Editor.HistoryFile = user.Editor.HistoryFile
	}

	return &result
}

// DefaultTOML returns the default configuration as a TOML string.
// Used for --init-config to generate a user config file.
func DefaultTOML() string {
	return `# tuibrowse configuration
# Save to ~/.config/tuibrowse/config.toml and customize
# Only include settings you want to change from defaults

# HTTP fetching settings
[fetcher]
userAgent = "tuibrowse/1.0 (Terminal Browser)"
timeoutSeconds = 10
chromePath = ""               # Path to Chrome/Chromium for JS rendering (empty = auto-detect)
useBrowser = false            # Render pages with headless Chrome

# Rendering settings
[rendering]
defaultWidth = 80             # Width when piping output (not in terminal)
imageWidth = 80               # Maximum image width in character cells
charAspect = 0.5              # Character cell width / height
maxDepth = 256                # Deeper HTML nesting is flattened to text

# Session settings
[session]
restoreSession = false        # Reopen the last page on startup

# Editor settings
[editor]
historyFile = ""              # Prompt history (empty = ~/.config/tuibrowse/history)
`
}

// FormatError formats a configuration error for user display.
func FormatError(err error) string {
	var perr toml.ParseError
	if errors.As(err, &perr) {
		return fmt.Sprintf("Configuration error:\n\n%s", perr.ErrorWithPosition())
	}
	return fmt.Sprintf("Configuration error:\n\n%s", err.Error())
}
