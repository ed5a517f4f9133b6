package config

import (
	"strings"

	"github.com/alexisbeaulieu97/fragments/internal/registry"
)

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = "fragments.yaml"

// DefaultOutputDir is where fragments are written when no output is
// configured.
const DefaultOutputDir = "public/fragments"

// Config represents the fragments.yaml document.
type Config struct {
	OutputDir      string `yaml:"output_dir" validate:"required"`
	Theme          string `yaml:"theme,omitempty" validate:"omitempty,theme_name"`
	Minify         bool   `yaml:"minify,omitempty"`
	PreserveTokens bool   `yaml:"preserve_tokens,omitempty"`
	LogLevel       string `yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	StylesDir      string `yaml:"styles_dir,omitempty"`

	// Components restricts and orders the generated components. Empty means
	// the whole library in library order.
	Components []string `yaml:"components,omitempty" validate:"omitempty,unique,dive,component_id"`

	// Overrides maps a component id to placeholder values replacing the
	// defaults.
	Overrides map[string]map[string]any `yaml:"overrides,omitempty" validate:"omitempty,dive,keys,component_id,endkeys"`

	Publish Publish `yaml:"publish,omitempty"`
}

// Publish configures the upload of a generated tree to S3.
type Publish struct {
	Bucket   string `yaml:"bucket,omitempty" validate:"omitempty,bucket_name"`
	Prefix   string `yaml:"prefix,omitempty"`
	Region   string `yaml:"region,omitempty"`
	Endpoint string `yaml:"endpoint,omitempty" validate:"omitempty,http_url"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	cfg.Theme = strings.ToLower(strings.TrimSpace(cfg.Theme))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// OverridesFor returns the placeholder overrides of d. When a global theme
// is configured it applies to every component that declares a theme
// selector and does not set its own.
func (c *Config) OverridesFor(d registry.Descriptor) map[string]any {
	out := make(map[string]any, len(c.Overrides[d.ID])+1)
	for key, value := range c.Overrides[d.ID] {
		out[key] = value
	}
	if c.Theme == "" {
		return out
	}
	if _, declared := d.Placeholders.Lookup(themeKey); !declared {
		return out
	}
	if _, ok := out[themeKey]; !ok {
		out[themeKey] = c.Theme
	}
	return out
}
