// Package render produces the canonical markup of a component, either by
// calling its live render function or by expanding its static template.
package render

import (
	"fmt"

	"github.com/alexisbeaulieu97/fragments/internal/markup"
	"github.com/alexisbeaulieu97/fragments/internal/placeholder"
	"github.com/alexisbeaulieu97/fragments/internal/registry"
	fragerrors "github.com/alexisbeaulieu97/fragments/pkg/errors"
)

// Options tune rendering.
type Options struct {
	// PreserveTokens emits static templates with their {{tokens}} left in
	// place for the host to substitute. Live components are unaffected.
	PreserveTokens bool
}

// Result is the rendered markup of one component.
type Result struct {
	Markup   string
	Values   placeholder.Values
	Strategy registry.Strategy
}

// Renderer renders descriptors with fixed options.
type Renderer struct {
	opts Options
}

// New constructs a Renderer.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render binds overrides onto the descriptor defaults and renders the
// component. The markup is formatted and cleaned before it is returned.
func (r *Renderer) Render(d registry.Descriptor, overrides map[string]any) (Result, error) {
	values, err := d.Placeholders.Bind(overrides)
	if err != nil {
		return Result{}, fragerrors.AttachComponent(err, d.ID)
	}

	var raw string
	switch d.Strategy() {
	case registry.Static:
		raw, err = r.static(d, values)
	default:
		raw, err = renderLive(d, values)
	}
	if err != nil {
		return Result{}, err
	}

	formatted, err := markup.Format(raw)
	if err != nil {
		return Result{}, fragerrors.NewRenderError(d.ID, fmt.Errorf("malformed markup: %w", err))
	}
	return Result{Markup: formatted, Values: values, Strategy: d.Strategy()}, nil
}

func (r *Renderer) static(d registry.Descriptor, values placeholder.Values) (string, error) {
	if r.opts.PreserveTokens {
		return d.Template.Source(), nil
	}
	out, err := d.Template.Execute(d.Placeholders, values)
	if err != nil {
		return "", fragerrors.AttachComponent(err, d.ID)
	}
	return out, nil
}

// renderLive calls the render function, turning both returned errors and
// panics into a RenderError.
func renderLive(d registry.Descriptor, values placeholder.Values) (out string, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fragerrors.NewRenderError(d.ID, fmt.Errorf("panic: %v", recovered))
		}
	}()
	out, err = d.Render(values.Clone())
	if err != nil {
		return "", fragerrors.NewRenderError(d.ID, err)
	}
	return out, nil
}
