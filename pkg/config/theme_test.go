package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/pipetint/pkg/errors"
	"github.com/arthur-debert/pipetint/pkg/paths"
)

func writeTheme(t *testing.T, dir, name, content string) {
	t.Helper()
	themesDir := filepath.Join(dir, "themes")
	require.NoError(t, os.MkdirAll(themesDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(themesDir, name+".toml"), []byte(content), 0o644))
}

func TestLoadTheme(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, dir)

	writeTheme(t, dir, "loglevels", `pattern = "(ERROR)|(WARN)|(INFO)"
colors = ["red,bold", "yellow", "green"]
case_sensitive = true
`)

	theme, err := LoadTheme("loglevels")
	require.NoError(t, err)
	assert.Equal(t, "(ERROR)|(WARN)|(INFO)", theme.Pattern)
	assert.Equal(t, []string{"red,bold", "yellow", "green"}, theme.Colors)
	assert.True(t, theme.CaseSensitive)
}

func TestLoadThemeNotFound(t *testing.T) {
	t.Setenv(paths.EnvConfigDir, t.TempDir())

	_, err := LoadTheme("missing")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrThemeNotFound))
}

func TestLoadThemeInvalid(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, dir)

	writeTheme(t, dir, "broken", "pattern = [not toml")
	_, err := LoadTheme("broken")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrThemeInvalid))

	writeTheme(t, dir, "nopattern", `colors = ["red"]`)
	_, err = LoadTheme("nopattern")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrThemeInvalid))

	writeTheme(t, dir, "nocolors", `pattern = "x"`)
	_, err = LoadTheme("nocolors")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrThemeInvalid))
}

func TestListThemes(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, dir)

	// No themes dir at all: empty, not an error.
	names, err := ListThemes()
	require.NoError(t, err)
	assert.Empty(t, names)

	writeTheme(t, dir, "zebra", `pattern = "z"`)
	writeTheme(t, dir, "alpha", `pattern = "a"`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "themes", "notes.txt"), []byte("ignored"), 0o644))

	names, err = ListThemes()
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zebra"}, names)
}
