package settings

import (
	"errors"
	"fmt"
	"time"

	"github.com/0xalexb/bluecommit/config"
	"github.com/0xalexb/bluecommit/config/schema"
	"github.com/0xalexb/bluecommit/logging"
)

// Source kinds.
const (
	SourceGitHub = "github"
	SourceGit    = "git"
	SourceFile   = "file"
)

// Defaults applied by SetDefaults.
const (
	DefaultListen        = ":8080"
	DefaultSourceKind    = SourceGitHub
	DefaultGitHubTimeout = 10 * time.Second
)

// Validation errors.
var (
	ErrInvalidLogLevel  = errors.New("invalid log level")
	ErrInvalidLogFormat = errors.New("invalid log format")
	ErrEmptyListen      = errors.New("listen address is empty")
	ErrUnknownSource    = errors.New("unknown source kind")
	ErrEmptySourceRoot  = errors.New("source root is empty")
	ErrNegativeTimeout  = errors.New("timeout must not be negative")
)

// Settings are the runtime settings of the service.
type Settings struct {
	LogLevel   string `toml:"log_level" yaml:"log_level"`
	LogFormat  string `toml:"log_format" yaml:"log_format"`
	Listen     string `toml:"listen" yaml:"listen"`
	ConfigPath string `toml:"config_path" yaml:"config_path"`
	Policy     string `toml:"policy" yaml:"policy"`
	Source     Source `toml:"source" yaml:"source"`
}

// Source selects where repository configuration files are read from.
type Source struct {
	Kind   string       `toml:"kind" yaml:"kind"`
	GitHub GitHubSource `toml:"github" yaml:"github"`
	Git    GitSource    `toml:"git" yaml:"git"`
	File   FileSource   `toml:"file" yaml:"file"`
}

// GitHubSource configures the GitHub contents API fetcher.
type GitHubSource struct {
	APIURL  string   `toml:"api_url" yaml:"api_url"`
	Token   string   `toml:"token" yaml:"token"`
	Ref     string   `toml:"ref" yaml:"ref"`
	Timeout Duration `toml:"timeout" yaml:"timeout"`
}

// GitSource configures the local clone fetcher.
type GitSource struct {
	Root string `toml:"root" yaml:"root"`
	Ref  string `toml:"ref" yaml:"ref"`
}

// FileSource configures the plain checkout fetcher.
type FileSource struct {
	Root string `toml:"root" yaml:"root"`
}

// Duration is a time.Duration written as "10s" in settings files.
type Duration time.Duration

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parsing duration: %w", err)
	}

	*d = Duration(parsed)

	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// SetDefaults fills unset fields. It reports whether anything changed.
func (s *Settings) SetDefaults() bool {
	changed := false

	if s.Listen == "" {
		s.Listen = DefaultListen
		changed = true
	}

	if s.ConfigPath == "" {
		s.ConfigPath = config.DefaultPath
		changed = true
	}

	if s.Policy == "" {
		s.Policy = schema.PolicyPartial.String()
		changed = true
	}

	if s.Source.Kind == "" {
		s.Source.Kind = DefaultSourceKind
		changed = true
	}

	if s.Source.GitHub.Timeout == 0 {
		s.Source.GitHub.Timeout = Duration(DefaultGitHubTimeout)
		changed = true
	}

	return changed
}

// Validate checks the settings after defaults are applied.
func (s *Settings) Validate() error {
	if !logging.ValidLevel(s.LogLevel) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, s.LogLevel)
	}

	if !logging.ValidFormat(s.LogFormat) {
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, s.LogFormat)
	}

	if s.Listen == "" {
		return ErrEmptyListen
	}

	_, err := schema.ParsePolicy(s.Policy)
	if err != nil {
		return fmt.Errorf("policy: %w", err)
	}

	switch s.Source.Kind {
	case SourceGitHub:
		if s.Source.GitHub.Timeout < 0 {
			return fmt.Errorf("source.github.timeout: %w", ErrNegativeTimeout)
		}
	case SourceGit:
		if s.Source.Git.Root == "" {
			return fmt.Errorf("source.git.root: %w", ErrEmptySourceRoot)
		}
	case SourceFile:
		if s.Source.File.Root == "" {
			return fmt.Errorf("source.file.root: %w", ErrEmptySourceRoot)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSource, s.Source.Kind)
	}

	return nil
}

// ValidationPolicy returns the parsed policy. Call after Validate.
func (s *Settings) ValidationPolicy() schema.Policy {
	policy, err := schema.ParsePolicy(s.Policy)
	if err != nil {
		return schema.PolicyPartial
	}

	return policy
}
