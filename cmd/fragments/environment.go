package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/fragments/internal/buildinfo"
	"github.com/alexisbeaulieu97/fragments/internal/catalog"
	"github.com/alexisbeaulieu97/fragments/internal/config"
	"github.com/alexisbeaulieu97/fragments/internal/fragment"
	"github.com/alexisbeaulieu97/fragments/internal/generator"
	"github.com/alexisbeaulieu97/fragments/internal/logger"
	"github.com/alexisbeaulieu97/fragments/internal/registry"
	"github.com/alexisbeaulieu97/fragments/internal/render"
	"github.com/alexisbeaulieu97/fragments/internal/stylesheet"
	"github.com/alexisbeaulieu97/fragments/internal/theme"
	"github.com/alexisbeaulieu97/fragments/internal/ui"
)

// environment bundles what a command needs once configuration is loaded.
type environment struct {
	cfg      *config.Config
	log      *logger.Logger
	registry *registry.Registry
	themes   *theme.Set
	styles   *stylesheet.Source
}

// loadEnvironment reads the configuration, lets the command apply its flag
// overrides, and validates the result against the component library.
func loadEnvironment(cmd *cobra.Command, root *rootFlags, apply func(*config.Config) error) (*environment, error) {
	cfg, err := loadConfig(cmd, root)
	if err != nil {
		return nil, newCommandError("load configuration", root.configPath, err, "fix the reported field in the configuration file")
	}
	if apply != nil {
		if err := apply(cfg); err != nil {
			return nil, newCommandError("apply flags", root.configPath, err, "check the flag values")
		}
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, newCommandError("validate configuration", root.configPath, err, "check the flag values and configuration file")
	}

	level := cfg.LogLevel
	if root.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{
		Level:         level,
		HumanReadable: !root.jsonLogs && ui.IsTerminal(cmd.ErrOrStderr()),
		Writer:        cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	library, err := catalog.Registry()
	if err != nil {
		return nil, fmt.Errorf("load component library: %w", err)
	}
	if err := cfg.ValidateAgainst(library); err != nil {
		return nil, newCommandError("validate configuration", root.configPath, err, "run 'fragments list' to see component ids and placeholders")
	}
	reg := library
	if len(cfg.Components) > 0 {
		if reg, err = library.Subset(cfg.Components); err != nil {
			return nil, err
		}
	}

	themes, err := theme.LoadBuiltin()
	if err != nil {
		return nil, fmt.Errorf("load themes: %w", err)
	}

	styles := stylesheet.NewSource(catalog.Styles())
	if cfg.StylesDir != "" {
		info, err := os.Stat(cfg.StylesDir)
		if err != nil || !info.IsDir() {
			return nil, newCommandError("load stylesheets", cfg.StylesDir, fmt.Errorf("styles_dir is not a directory"), "point styles_dir at a directory of component stylesheets")
		}
		styles = stylesheet.NewSource(os.DirFS(cfg.StylesDir))
	}

	return &environment{cfg: cfg, log: log, registry: reg, themes: themes, styles: styles}, nil
}

// loadConfig falls back to defaults when the default file is absent. A path
// given explicitly must exist.
func loadConfig(cmd *cobra.Command, root *rootFlags) (*config.Config, error) {
	if cmd.Flags().Changed("config") {
		return config.ParseConfig(root.configPath)
	}
	return config.LoadOrDefault(root.configPath)
}

// newService wires a generator writing into the configured output dir.
func (env *environment) newService(reporter generator.Reporter) (*generator.Service, error) {
	rev, err := buildinfo.SourceRevision(".")
	if err != nil {
		env.log.Warn(fmt.Sprintf("source revision unavailable: %v", err))
	}
	return generator.New(generator.Options{
		Registry:  env.registry,
		Writer:    fragment.NewDirWriter(env.cfg.OutputDir),
		Themes:    env.themes,
		Styles:    env.styles,
		Overrides: env.cfg.OverridesFor,
		Render:    render.Options{PreserveTokens: env.cfg.PreserveTokens},
		Minify:    env.cfg.Minify,
		OutputDir: env.cfg.OutputDir,
		Source:    rev.String(),
		Logger:    env.log,
		Reporter:  reporter,
	})
}
