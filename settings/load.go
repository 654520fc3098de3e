package settings

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Token environment variables, in lookup order.
const (
	EnvGitHubToken = "GITHUB_TOKEN"
	EnvGHToken     = "GH_TOKEN"
)

// Default returns settings with only defaults applied.
func Default() *Settings {
	settings := &Settings{}
	settings.applyEnv(os.Getenv)
	settings.SetDefaults()

	return settings
}

// Load reads filename, decodes the section at path, applies environment
// overrides and defaults, and validates the result.
// An empty filename yields the defaults.
func Load(filename, path string) (*Settings, error) {
	if filename == "" {
		settings := Default()

		return settings, settings.Validate()
	}

	decoder, err := DecoderFor(filename)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Clean(filename)) // #nosec G304 -- operator-supplied settings file
	if err != nil {
		return nil, fmt.Errorf("reading data error: %w", err)
	}

	return decode(decoder, data, path, os.Getenv)
}

func decode(decoder Decoder, data []byte, path string, getenv func(string) string) (*Settings, error) {
	settings := &Settings{}

	err := decoder.Decode(data, settings, path)
	if err != nil {
		return nil, fmt.Errorf("parsing error: %w", err)
	}

	settings.applyEnv(getenv)

	if settings.SetDefaults() {
		slog.Debug("defaults applied", slog.String("path", path))
	}

	err = settings.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating error: %w", err)
	}

	return settings, nil
}

// applyEnv fills an empty GitHub token from the environment.
func (s *Settings) applyEnv(getenv func(string) string) {
	if s.Source.GitHub.Token != "" {
		return
	}

	for _, name := range []string{EnvGitHubToken, EnvGHToken} {
		if token := getenv(name); token != "" {
			s.Source.GitHub.Token = token

			return
		}
	}
}
