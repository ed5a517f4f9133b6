package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/fragments/internal/theme"
)

type themesOptions struct {
	file         string
	importLegacy string
	output       string
}

func newThemesCmd() *cobra.Command {
	opts := &themesOptions{}

	cmd := &cobra.Command{
		Use:   "themes [name]",
		Short: "Print theme variable blocks or convert legacy token files",
		Long: "Without arguments themes lists the shipped themes. With a name, or --file, it prints the " +
			":root block the host page can use. --import-legacy converts a flat token file into the nested schema.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case opts.importLegacy != "":
				return runImportLegacy(cmd, *opts)
			case opts.file != "":
				t, err := theme.LoadFile(opts.file)
				if err != nil {
					return newCommandError("load theme", opts.file, err, "check the file against the nested theme schema")
				}
				fmt.Fprint(cmd.OutOrStdout(), t.RootBlock())
				return nil
			case len(args) == 1:
				return printTheme(cmd, args[0])
			}

			for _, name := range theme.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "Print the variables of a nested theme JSON file")
	cmd.Flags().StringVar(&opts.importLegacy, "import-legacy", "", "Convert a flat legacy token file to the nested schema")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the converted theme to this file instead of stdout")

	return cmd
}

func printTheme(cmd *cobra.Command, raw string) error {
	name, err := theme.ParseName(raw)
	if err != nil {
		return newCommandError("print theme", raw, err, "run 'fragments themes' to list theme names")
	}
	set, err := theme.LoadBuiltin()
	if err != nil {
		return err
	}
	t, err := set.Get(name)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), t.RootBlock())
	return nil
}

func runImportLegacy(cmd *cobra.Command, opts themesOptions) error {
	f, err := os.Open(opts.importLegacy)
	if err != nil {
		return newCommandError("import legacy theme", opts.importLegacy, err, "check the file path")
	}
	defer f.Close()

	t, unmapped, err := theme.ImportLegacy(opts.importLegacy, f)
	if err != nil {
		return newCommandError("import legacy theme", opts.importLegacy, err, "every core token of the nested schema must be present")
	}
	for _, token := range unmapped {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: token %s has no place in the nested schema and was dropped\n", token)
	}

	data, err := theme.MarshalIndent(t)
	if err != nil {
		return err
	}
	if opts.output == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return newCommandError("write theme", opts.output, err, "check that the destination is writable")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", opts.output)
	return nil
}
