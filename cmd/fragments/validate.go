package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newValidateCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check every component and override without rendering",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(cmd, root, nil)
			if err != nil {
				return err
			}
			svc, err := env.newService(nil)
			if err != nil {
				return err
			}
			if err := svc.Validate(); err != nil {
				return newCommandError("validate components", root.configPath, err, "fix the reported placeholders before generating")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "All %d components are valid\n", env.registry.Len())
			return nil
		},
	}

	return cmd
}
