package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/pipetint/pkg/errors"
	"github.com/arthur-debert/pipetint/pkg/paths"
)

// Theme is a named, reusable highlight rule stored as a TOML file in
// the themes directory ($XDG_CONFIG_HOME/pipetint/themes/NAME.toml).
type Theme struct {
	Pattern       string   `toml:"pattern"`
	Colors        []string `toml:"colors"`
	CaseSensitive bool     `toml:"case_sensitive"`
}

// LoadTheme reads and validates a theme by name.
func LoadTheme(name string) (*Theme, error) {
	path := filepath.Join(paths.ThemesDir(), name+".toml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrThemeNotFound, "theme %q not found", name).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrThemeNotFound, "failed to read theme %q", name)
	}

	var theme Theme
	if err := gotoml.Unmarshal(data, &theme); err != nil {
		return nil, errors.Wrapf(err, errors.ErrThemeInvalid, "failed to parse theme %q", name)
	}

	if theme.Pattern == "" {
		return nil, errors.Newf(errors.ErrThemeInvalid, "theme %q has no pattern", name)
	}
	if len(theme.Colors) == 0 {
		return nil, errors.Newf(errors.ErrThemeInvalid, "theme %q has no colors", name)
	}

	return &theme, nil
}

// ListThemes returns the names of all theme files, sorted.
func ListThemes() ([]string, error) {
	entries, err := os.ReadDir(paths.ThemesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to read themes directory")
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), ".toml"))
	}
	sort.Strings(names)
	return names, nil
}
