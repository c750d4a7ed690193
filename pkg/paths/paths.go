// Package paths provides centralized path handling for pipetint.
// It implements XDG Base Directory specification compliance for the
// user configuration file, theme files and the state log.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for pipetint
	EnvConfigDir = "PIPETINT_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for pipetint
	EnvStateDir = "PIPETINT_STATE_DIR"
)

const appDirName = "pipetint"

// ConfigDir returns the directory holding the user configuration.
func ConfigDir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.ConfigHome, appDirName)
}

// ConfigFile returns the path of the user configuration file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// ThemesDir returns the directory scanned for theme files (*.toml).
func ThemesDir() string {
	return filepath.Join(ConfigDir(), "themes")
}

// StateDir returns the directory for mutable state such as logs.
func StateDir() string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return dir
	}
	return filepath.Join(xdg.StateHome, appDirName)
}

// LogFile returns the path of the log file.
func LogFile() string {
	return filepath.Join(StateDir(), "pipetint.log")
}
