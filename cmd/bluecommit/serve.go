package main

import (
	"github.com/spf13/cobra"

	"github.com/0xalexb/bluecommit"
)

func newServeCmd(state *cli) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve resolved configuration over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if listen != "" {
				state.settings.Listen = listen
			}

			app := bluecommit.NewApp(
				bluecommit.WithLogLevel(state.settings.LogLevel),
				bluecommit.WithLogFormat(state.settings.LogFormat),
				bluecommit.WithLogOutput(state.stderr),
				bluecommit.WithModules(bluecommit.ServiceModule(state.settings)),
			)

			err := app.Err()
			if err != nil {
				return err //nolint:wrapcheck
			}

			app.Run()

			return nil
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (overrides settings)")

	return cmd
}
