// Package config loads pipetint's layered configuration: embedded
// defaults, then the user configuration file, then PIPETINT_*
// environment variables. Named themes are separate TOML files under
// the themes directory.
package config

import (
	_ "embed"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/pipetint/pkg/errors"
	"github.com/arthur-debert/pipetint/pkg/logging"
	"github.com/arthur-debert/pipetint/pkg/paths"
)

//go:embed defaults.toml
var defaultConfig []byte

// envPrefix namespaces pipetint's environment overrides.
const envPrefix = "PIPETINT_"

// Settings holds the effective configuration after all layers merge.
type Settings struct {
	// Pattern is the default pattern when none is given on the CLI.
	Pattern string
	// Colors are the default color assignments, one per capture group.
	Colors []string
	// CaseSensitive disables the default case-insensitive matching.
	CaseSensitive bool
	// Format names the output format (auto, styled, plain, markup).
	Format string
	// Unbuffered flushes output after every line.
	Unbuffered bool
}

// Load merges all configuration layers. A missing user file is not an
// error; an unreadable or unparsable one is.
func Load() (*Settings, error) {
	logger := logging.GetLogger("config")

	k := koanf.New(".")

	if err := k.Load(rawbytes.Provider(defaultConfig), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load built-in defaults")
	}

	userFile := paths.ConfigFile()
	if _, err := os.Stat(userFile); err == nil {
		if err := k.Load(file.Provider(userFile), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse,
				"failed to parse config file %s", userFile)
		}
		logger.Debug().Str("path", userFile).Msg("Loaded user config")
	}

	if err := k.Load(env.Provider(envPrefix, ".", envToKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	settings := &Settings{
		Pattern:       k.String("pattern"),
		Colors:        k.Strings("colors"),
		CaseSensitive: k.Bool("case_sensitive"),
		Format:        k.String("format"),
		Unbuffered:    k.Bool("unbuffered"),
	}

	if settings.Pattern == "" {
		return nil, errors.New(errors.ErrConfigValid, "configured default pattern is empty")
	}

	return settings, nil
}

// envToKey maps PIPETINT_CASE_SENSITIVE to case_sensitive.
func envToKey(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, envPrefix))
}
