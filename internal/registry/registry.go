// Package registry holds the immutable set of component descriptors the
// generator renders.
package registry

import (
	"errors"
	"fmt"
	"slices"

	fragerrors "github.com/alexisbeaulieu97/fragments/pkg/errors"
)

// NotFoundError is returned when a component id is not registered.
type NotFoundError struct {
	ID string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("component '%s' not found in registry\nHint: run 'fragments list' to see registered components", e.ID)
}

// Is matches fragerrors.ErrComponentNotFound.
func (e NotFoundError) Is(target error) bool {
	return target == fragerrors.ErrComponentNotFound
}

// Registry is an ordered, read-only collection of descriptors. It is built
// once per run and passed to the generator.
type Registry struct {
	order []string
	byID  map[string]Descriptor
}

// New builds a registry in the given order. It rejects malformed descriptors
// and duplicate ids; placeholder checks are left to Validate.
func New(descriptors ...Descriptor) (*Registry, error) {
	r := &Registry{
		order: make([]string, 0, len(descriptors)),
		byID:  make(map[string]Descriptor, len(descriptors)),
	}
	for _, d := range descriptors {
		if err := d.checkShape(); err != nil {
			return nil, err
		}
		if _, exists := r.byID[d.ID]; exists {
			return nil, fmt.Errorf("component '%s' already registered", d.ID)
		}
		r.order = append(r.order, d.ID)
		r.byID[d.ID] = d
	}
	return r, nil
}

// Get returns the descriptor registered under id.
func (r *Registry) Get(id string) (Descriptor, error) {
	d, ok := r.byID[id]
	if !ok {
		return Descriptor{}, NotFoundError{ID: id}
	}
	return d, nil
}

// List returns every descriptor in registration order.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// IDs returns the registered ids in order.
func (r *Registry) IDs() []string {
	return slices.Clone(r.order)
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	return len(r.order)
}

// Subset returns a registry restricted to ids, in the order given.
func (r *Registry) Subset(ids []string) (*Registry, error) {
	descriptors := make([]Descriptor, 0, len(ids))
	for _, id := range ids {
		d, err := r.Get(id)
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, d)
	}
	return New(descriptors...)
}

// Validate checks every descriptor: placeholder specs must be well formed
// and every template token must resolve to a declared placeholder. All
// components are checked; the failures are joined.
func (r *Registry) Validate() error {
	var errs []error
	for _, d := range r.List() {
		if err := ValidateDescriptor(d); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ValidateDescriptor runs the checks of Validate on a single descriptor.
func ValidateDescriptor(d Descriptor) error {
	if err := d.Placeholders.Validate(); err != nil {
		return fragerrors.AttachComponent(err, d.ID)
	}
	if d.Template != nil {
		if err := d.Template.Check(d.Placeholders); err != nil {
			return fragerrors.AttachComponent(err, d.ID)
		}
	}
	return nil
}
