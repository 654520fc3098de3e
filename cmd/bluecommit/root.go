package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/0xalexb/bluecommit/logging"
	"github.com/0xalexb/bluecommit/settings"
)

// cli carries state shared by the subcommands.
type cli struct {
	stdout io.Writer
	stderr io.Writer

	settingsFile string
	section      string
	logLevel     string
	logFormat    string

	settings *settings.Settings
	logger   *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	state := &cli{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "bluecommit",
		Short: "Per-repository configuration for the bluecommit bot",
		Long: "bluecommit reads .github/bluecommit.conf from repositories, validates it against\n" +
			"the bot's schema and falls back to defaults whenever the file is missing or unusable.",
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}

			return state.load()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&state.settingsFile, "settings", "", "settings file (.yaml, .yml or .toml); defaults apply when empty")
	flags.StringVar(&state.section, "section", "", `section of the settings file, e.g. "services:bluecommit"`)
	flags.StringVar(&state.logLevel, "log-level", "", "log level: debug, info, warn or error (overrides settings)")
	flags.StringVar(&state.logFormat, "log-format", "", "log format: json or text (overrides settings)")

	root.AddCommand(
		newResolveCmd(state),
		newCheckCmd(state),
		newServeCmd(state),
		newVersionCmd(state),
	)

	return root
}

// load reads settings, applies flag overrides and builds the command logger.
func (c *cli) load() error {
	loaded, err := settings.Load(c.settingsFile, c.section)
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	if c.logLevel != "" {
		loaded.LogLevel = c.logLevel
	}

	if c.logFormat != "" {
		loaded.LogFormat = c.logFormat
	}

	err = loaded.Validate()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	c.settings = loaded
	c.logger = logging.NewLogger(logging.LoggerConfig{Level: loaded.LogLevel, Format: loaded.LogFormat}, c.stderr)

	return nil
}
