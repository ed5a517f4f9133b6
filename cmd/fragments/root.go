package main

import (
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/fragments/internal/config"
)

type rootFlags struct {
	configPath string
	verbose    bool
	jsonLogs   bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	genOpts := &generateOptions{}

	cmd := &cobra.Command{
		Use:           "fragments",
		Short:         "Fragments renders the marketing component library into CMS-ready HTML fragments",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, flags, *genOpts)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", config.DefaultPath, "Path to configuration file")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVar(&flags.jsonLogs, "json-logs", false, "Write logs as JSON even on a terminal")
	addGenerateFlags(cmd, genOpts)

	cmd.AddCommand(newGenerateCmd(flags))
	cmd.AddCommand(newListCmd(flags))
	cmd.AddCommand(newValidateCmd(flags))
	cmd.AddCommand(newCheckCmd(flags))
	cmd.AddCommand(newThemesCmd())
	cmd.AddCommand(newPublishCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
