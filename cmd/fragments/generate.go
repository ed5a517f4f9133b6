package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/fragments/internal/config"
	"github.com/alexisbeaulieu97/fragments/internal/generator"
	"github.com/alexisbeaulieu97/fragments/internal/theme"
	"github.com/alexisbeaulieu97/fragments/internal/ui"
	fragerrors "github.com/alexisbeaulieu97/fragments/pkg/errors"
)

type generateOptions struct {
	output string
	theme  string
	minify bool
	watch  bool
}

func newGenerateCmd(root *rootFlags) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Regenerate every fragment and the root manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, root, *opts)
		},
	}
	addGenerateFlags(cmd, opts)

	return cmd
}

func addGenerateFlags(cmd *cobra.Command, opts *generateOptions) {
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory (overrides output_dir)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "Theme applied to every component without its own override")
	cmd.Flags().BoolVar(&opts.minify, "minify", false, "Minify stylesheets and the fragment script")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Rebuild when the configuration or stylesheets change")
}

// applyTo copies the flags that were set onto cfg.
func (o generateOptions) applyTo(cmd *cobra.Command) func(*config.Config) error {
	return func(cfg *config.Config) error {
		if o.output != "" {
			cfg.OutputDir = o.output
		}
		if o.theme != "" {
			name, err := theme.ParseName(o.theme)
			if err != nil {
				return err
			}
			cfg.Theme = string(name)
		}
		if cmd.Flags().Changed("minify") {
			cfg.Minify = o.minify
		}
		return nil
	}
}

func runGenerate(cmd *cobra.Command, root *rootFlags, opts generateOptions) error {
	ctx := cmd.Context()
	build := func(ctx context.Context) error {
		env, err := loadEnvironment(cmd, root, opts.applyTo(cmd))
		if err != nil {
			return err
		}
		svc, err := env.newService(ui.NewReporter(cmd.OutOrStdout()))
		if err != nil {
			return err
		}
		if _, err := svc.Generate(ctx); err != nil {
			return generateError(env.cfg.OutputDir, err)
		}
		return nil
	}

	if !opts.watch {
		return build(ctx)
	}

	if err := build(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
	}
	env, err := loadEnvironment(cmd, root, opts.applyTo(cmd))
	if err != nil {
		return err
	}
	paths := []string{root.configPath}
	if env.cfg.StylesDir != "" {
		paths = append(paths, env.cfg.StylesDir)
	}
	return generator.Watch(ctx, generator.WatchOptions{
		Paths:   paths,
		Logger:  env.log,
		Rebuild: build,
	})
}

func generateError(outputDir string, err error) error {
	subject := fmt.Sprintf("output directory %s", outputDir)
	if id := fragerrors.ComponentID(err); id != "" {
		subject = fmt.Sprintf("component '%s'", id)
	}

	suggestion := "run 'fragments validate' for the full list of problems"
	switch {
	case errors.Is(err, fragerrors.ErrUnknownPlaceholder):
		suggestion = "compare the overrides in the configuration with 'fragments list'"
	case errors.Is(err, fragerrors.ErrWriteFailed):
		suggestion = "check that the output directory is writable"
	case errors.Is(err, context.Canceled):
		suggestion = "generation was interrupted; run it again"
	}
	return newCommandError("generate fragments", subject, err, suggestion)
}
