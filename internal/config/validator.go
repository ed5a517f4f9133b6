package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/alexisbeaulieu97/fragments/internal/registry"
	fragerrors "github.com/alexisbeaulieu97/fragments/pkg/errors"
)

const themeKey = "theme"

// ValidateConfig checks the structure of cfg.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fragerrors.NewValidationError("config", "configuration is required", nil)
	}
	return convertValidationError(validatorInstance().Struct(cfg))
}

// ValidateAgainst checks that every component named by cfg is registered and
// that every override names a declared placeholder with a value of the right
// type. All problems are reported.
func (c *Config) ValidateAgainst(reg *registry.Registry) error {
	var errs []error
	for _, id := range c.Components {
		if _, err := reg.Get(id); err != nil {
			errs = append(errs, fragerrors.NewValidationError("components", err.Error(), err))
		}
	}
	for _, id := range sortedComponentIDs(c.Overrides) {
		d, err := reg.Get(id)
		if err != nil {
			errs = append(errs, fragerrors.NewValidationError("overrides."+id, err.Error(), err))
			continue
		}
		if _, err := d.Placeholders.Bind(c.OverridesFor(d)); err != nil {
			errs = append(errs, fragerrors.AttachComponent(err, id))
		}
	}
	return errors.Join(errs...)
}

// convertValidationError normalizes validator errors into validation errors.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		if ve.Param() != "" {
			msg = fmt.Sprintf("%s (%s)", msg, ve.Param())
		}
		return fragerrors.NewValidationError(field, msg, err)
	}

	return fragerrors.NewValidationError("config", err.Error(), err)
}

// yamlishFieldName drops the root struct from the namespace; names are the
// yaml keys registered on the validator.
func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}
