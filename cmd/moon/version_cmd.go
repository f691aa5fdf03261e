package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := map[string]string{
				"version": version,
				"commit":  commit,
				"date":    date,
			}
			return writeOutput(cmd.OutOrStdout(), info, func() string {
				return fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
			})
		},
	}
}
