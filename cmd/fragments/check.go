package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/fragments/internal/config"
	"github.com/alexisbeaulieu97/fragments/internal/fragment"
)

func newCheckCmd(root *rootFlags) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report fragments that differ from a fresh generation",
		Long: "Check generates the tree in memory and compares it with the output directory. " +
			"Generation timestamps are ignored. The command exits non-zero when anything differs.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(cmd, root, func(cfg *config.Config) error {
				if output != "" {
					cfg.OutputDir = output
				}
				return nil
			})
			if err != nil {
				return err
			}
			svc, err := env.newService(nil)
			if err != nil {
				return err
			}

			drifts, err := svc.Check(cmd.Context(), fragment.NewDirWriter(env.cfg.OutputDir))
			if err != nil {
				return generateError(env.cfg.OutputDir, err)
			}

			out := cmd.OutOrStdout()
			if len(drifts) == 0 {
				fmt.Fprintf(out, "Output tree in %s is up to date\n", env.cfg.OutputDir)
				return nil
			}
			for _, d := range drifts {
				if d.Missing {
					fmt.Fprintf(out, "missing: %s\n", d.Path)
					continue
				}
				fmt.Fprintf(out, "changed: %s\n%s", d.Path, d.Diff)
			}
			fmt.Fprintf(out, "%d file(s) out of date; run 'fragments generate'\n", len(drifts))
			return errDrift
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output directory to check (overrides output_dir)")

	return cmd
}
