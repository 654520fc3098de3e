package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/0xalexb/bluecommit"
	"github.com/0xalexb/bluecommit/config"
)

var errNoRepositories = errors.New("at least one OWNER/NAME is required")

func newResolveCmd(state *cli) *cobra.Command {
	var (
		output string
		jobs   int
		path   string
	)

	cmd := &cobra.Command{
		Use:   "resolve OWNER/NAME...",
		Short: "Resolve the configuration of one or more repositories",
		Long: "Fetch, parse and validate the configuration of each repository and print the result.\n" +
			"Repositories without a usable file resolve to the defaults; the exit status stays 0.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errNoRepositories
			}

			format, err := config.ParseFormat(output)
			if err != nil {
				return err
			}

			fetcher, err := bluecommit.NewFetcher(state.settings.Source)
			if err != nil {
				return fmt.Errorf("creating fetcher: %w", err)
			}

			if path != "" {
				state.settings.ConfigPath = path
			}

			resolver := bluecommit.NewResolver(state.settings, fetcher, nil, state.logger)
			reports := resolveAll(cmd.Context(), resolver, args, jobs)

			return printReports(state, reports, format)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", string(config.FormatJSON), "output format: json, yaml or toml")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "repositories resolved concurrently")
	cmd.Flags().StringVar(&path, "path", "", "configuration file path inside each repository (overrides settings)")

	return cmd
}

// resolveAll resolves repositories with at most jobs in flight, keeping argument order.
func resolveAll(ctx context.Context, resolver *config.Resolver, repositories []string, jobs int) []config.Report {
	if ctx == nil {
		ctx = context.Background()
	}

	reports := make([]config.Report, len(repositories))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(max(jobs, 1))

	for i, repository := range repositories {
		group.Go(func() error {
			reports[i] = config.NewReport(resolver.Resolve(ctx, repository))

			return nil
		})
	}

	_ = group.Wait()

	return reports
}

func printReports(state *cli, reports []config.Report, format config.Format) error {
	for i, report := range reports {
		out, err := config.Marshal(report, format)
		if err != nil {
			return err
		}

		if i > 0 {
			separator := "\n"
			if format == config.FormatYAML {
				separator = "---\n"
			}

			_, _ = fmt.Fprint(state.stdout, separator)
		}

		_, err = state.stdout.Write(out)
		if err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	return nil
}
