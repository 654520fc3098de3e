package config

import (
	"fmt"

	"github.com/0xalexb/bluecommit/config/schema"
	"github.com/0xalexb/bluecommit/config/tree"
)

// Declared field paths.
const (
	FieldPostToBluesky = "github.commits.postToBluesky"
	FieldStatsEnable   = "stats.enable"
)

// DefaultPath is where the configuration file lives inside a repository.
const DefaultPath = ".github/bluecommit.conf"

//nolint:gochecknoglobals // immutable after package initialization.
var (
	configSchema = schema.MustNew(
		schema.Field{
			Path:        FieldPostToBluesky,
			Kind:        tree.KindBool,
			Default:     tree.Bool(true),
			Description: "post a rendered summary of pushed commits",
		},
		schema.Field{
			Path:        FieldStatsEnable,
			Kind:        tree.KindBool,
			Default:     tree.Bool(true),
			Description: "publish repository statistics",
		},
	)

	defaultConfig = mustDefault()
)

// Config is the validated configuration of one repository.
type Config struct {
	GitHub GitHubConfig `json:"github" toml:"github" yaml:"github"`
	Stats  StatsConfig  `json:"stats" toml:"stats" yaml:"stats"`
}

// GitHubConfig holds settings for reacting to GitHub events.
type GitHubConfig struct {
	Commits CommitsConfig `json:"commits" toml:"commits" yaml:"commits"`
}

// CommitsConfig holds settings for push events.
type CommitsConfig struct {
	PostToBluesky bool `json:"postToBluesky" toml:"postToBluesky" yaml:"postToBluesky"`
}

// StatsConfig holds settings for repository statistics.
type StatsConfig struct {
	Enable bool `json:"enable" toml:"enable" yaml:"enable"`
}

// Schema returns the closed schema every repository configuration is validated against.
func Schema() *schema.Schema {
	return configSchema
}

// Default returns the default configuration. Each call returns an independent copy.
func Default() Config {
	return defaultConfig
}

func mustDefault() Config {
	result, err := configSchema.Validate(configSchema.Defaults(), schema.PolicyStrict)
	if err != nil {
		panic(fmt.Sprintf("config: schema defaults do not validate: %v", err))
	}

	cfg, err := project(result)
	if err != nil {
		panic(fmt.Sprintf("config: schema defaults do not project: %v", err))
	}

	return cfg
}

// project copies each validated field into the typed Config.
func project(result *schema.Result) (Config, error) {
	var (
		cfg Config
		err error
	)

	cfg.GitHub.Commits.PostToBluesky, err = result.Bool(FieldPostToBluesky)
	if err != nil {
		return Config{}, err
	}

	cfg.Stats.Enable, err = result.Bool(FieldStatsEnable)
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}
