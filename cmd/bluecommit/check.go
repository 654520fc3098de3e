package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/0xalexb/bluecommit/config"
	"github.com/0xalexb/bluecommit/config/schema"
)

var errCheckFailed = errors.New("configuration is not usable")

func newCheckCmd(state *cli) *cobra.Command {
	var (
		output string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Validate a local configuration file",
		Long: "Parse FILE with the configuration dialect and report skipped lines, fields that fell\n" +
			"back to their default, unknown keys and the resulting configuration.\n" +
			"Exits non-zero when the file as a whole would be replaced by the defaults.",
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			format, err := config.ParseFormat(output)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(filepath.Clean(args[0])) // #nosec G304 -- user-selected file
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			policy := state.settings.ValidationPolicy()
			if strict {
				policy = schema.PolicyStrict
			}

			resolver := config.NewResolver(nil, config.WithPolicy(policy), config.WithLogger(state.logger))
			result := resolver.ResolveText(args[0], data)

			err = printReports(state, []config.Report{config.NewReport(result)}, format)
			if err != nil {
				return err
			}

			if result.Outcome == config.OutcomeFallback {
				return fmt.Errorf("%w: %w", errCheckFailed, result.Reason)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(config.FormatYAML), "output format: json, yaml or toml")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on any mistyped field instead of falling back per field")

	return cmd
}
