package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/fragments/internal/ui"
)

func newListCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the components that will be generated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(cmd, root, nil)
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(writer, "ID\tNAME\tSTRATEGY\tPLACEHOLDERS\tSTYLESHEET")
			for _, d := range env.registry.List() {
				fmt.Fprintf(writer, "%s\t%s\t%s\t%d\t%s\n",
					d.ID,
					d.Name,
					ui.Title(string(d.Strategy())),
					len(d.Placeholders),
					valueOrFallback(d.Stylesheet, "(none)"),
				)
			}
			return writer.Flush()
		},
	}

	return cmd
}

func valueOrFallback(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
