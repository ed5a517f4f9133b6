package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/fragments/internal/buildinfo"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			commit := buildinfo.Commit
			if commit == "" {
				commit = "none"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "fragments %s\ncommit: %s\n", buildinfo.Version, commit)
			return nil
		},
	}

	return cmd
}
