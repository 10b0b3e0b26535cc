package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jouerflux/jouerflux/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", version.Name, version.Full())
		},
	}
}
