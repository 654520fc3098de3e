package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0xalexb/bluecommit"
)

func newVersionCmd(state *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(state.stdout, bluecommit.VersionString())
		},
	}
}
