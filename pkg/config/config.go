// Package config loads glint's configuration. Values are layered: embedded
// defaults first, then the user config file, then GLINT_* environment
// variables. Later layers override earlier ones key by key.
package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Config is the fully merged configuration.
type Config struct {
	Rules  RulesConfig            `koanf:"rules" toml:"rules"`
	Output OutputConfig           `koanf:"output" toml:"output"`
	Theme  map[string]StyleConfig `koanf:"theme" toml:"theme"`
}

// RulesConfig controls which rule definitions are loaded.
type RulesConfig struct {
	// Builtin enables the embedded rule sets for common languages.
	Builtin bool `koanf:"builtin" toml:"builtin"`
	// Files are extra rule files, applied after the built-ins so they win
	// when selectors overlap. Relative paths resolve against the config
	// file's directory.
	Files []string `koanf:"files" toml:"files"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	// Color is "auto", "always" or "never".
	Color    string `koanf:"color" toml:"color"`
	Gutter   bool   `koanf:"gutter" toml:"gutter"`
	TabWidth int    `koanf:"tab_width" toml:"tab_width"`
}

// StyleConfig is the theme entry for one token category. Colors are ANSI
// palette indexes or hex strings, as accepted by lipgloss.
type StyleConfig struct {
	Foreground string `koanf:"foreground" toml:"foreground,omitempty"`
	Background string `koanf:"background" toml:"background,omitempty"`
	Bold       bool   `koanf:"bold" toml:"bold,omitempty"`
	Italic     bool   `koanf:"italic" toml:"italic,omitempty"`
	Underline  bool   `koanf:"underline" toml:"underline,omitempty"`
}

// DefaultConfigPath returns the user config file location under the XDG
// config directory, honoring XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "glint", "glint.toml")
}
