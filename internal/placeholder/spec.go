// Package placeholder models the typed, editor-facing slots of a fragment and
// the small template language that references them.
package placeholder

import (
	"fmt"
	"regexp"
	"slices"
	"unicode/utf8"

	fragerrors "github.com/alexisbeaulieu97/fragments/pkg/errors"
)

// Type enumerates the kinds of content a placeholder accepts.
type Type string

const (
	Text     Type = "text"
	RichText Type = "richtext"
	Image    Type = "image"
	URL      Type = "url"
	Choice   Type = "choice"
	Boolean  Type = "boolean"
	Repeater Type = "repeater"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsValid reports whether t is a known placeholder type.
func (t Type) IsValid() bool {
	switch t {
	case Text, RichText, Image, URL, Choice, Boolean, Repeater:
		return true
	default:
		return false
	}
}

// IsString reports whether values of t are substituted as strings.
func (t Type) IsString() bool {
	switch t {
	case Text, RichText, Image, URL, Choice:
		return true
	default:
		return false
	}
}

// Spec describes one placeholder of a component. Default holds a string for
// string-like types, a bool for Boolean and a []Values for Repeater.
type Spec struct {
	ID      string   `json:"id"`
	Type    Type     `json:"type"`
	Label   string   `json:"label,omitempty"`
	Default any      `json:"default,omitempty"`
	Options []string `json:"options,omitempty"`
	Fields  Specs    `json:"fields,omitempty"`
}

// Specs is an ordered placeholder list.
type Specs []Spec

// Lookup returns the spec with the given id.
func (s Specs) Lookup(id string) (Spec, bool) {
	for _, spec := range s {
		if spec.ID == id {
			return spec, true
		}
	}
	return Spec{}, false
}

// IDs returns the placeholder ids in declaration order.
func (s Specs) IDs() []string {
	ids := make([]string, 0, len(s))
	for _, spec := range s {
		ids = append(ids, spec.ID)
	}
	return ids
}

// Validate checks ids, types and defaults of every spec, recursing into
// repeater fields.
func (s Specs) Validate() error {
	return s.validate("")
}

func (s Specs) validate(prefix string) error {
	seen := make(map[string]struct{}, len(s))
	for _, spec := range s {
		field := prefix + spec.ID
		if _, dup := seen[spec.ID]; dup {
			return fragerrors.NewValidationError(field, "duplicate placeholder id", nil)
		}
		seen[spec.ID] = struct{}{}
		if err := spec.validate(field); err != nil {
			return err
		}
	}
	return nil
}

func (s Spec) validate(field string) error {
	if !identPattern.MatchString(s.ID) {
		return fragerrors.NewValidationError(field, fmt.Sprintf("invalid placeholder id %q", s.ID), nil)
	}
	if !s.Type.IsValid() {
		return fragerrors.NewValidationError(field, fmt.Sprintf("unknown placeholder type %q", s.Type), nil)
	}

	switch s.Type {
	case Repeater:
		if len(s.Fields) == 0 {
			return fragerrors.NewValidationError(field, "repeater declares no fields", nil)
		}
		if err := s.Fields.validate(field + "."); err != nil {
			return err
		}
		if s.Default == nil {
			return nil
		}
		items, ok := s.Default.([]Values)
		if !ok {
			return fragerrors.NewValidationError(field, fmt.Sprintf("repeater default must be a list of items, got %T", s.Default), nil)
		}
		for i, item := range items {
			if err := s.Fields.checkItem(fmt.Sprintf("%s[%d]", field, i), item); err != nil {
				return err
			}
		}
		return nil
	case Choice:
		if len(s.Options) == 0 {
			return fragerrors.NewValidationError(field, "choice declares no options", nil)
		}
	}

	return s.checkValue(field, s.Default)
}

// checkValue verifies that value is an acceptable bound value for s.
func (s Spec) checkValue(field string, value any) error {
	if value == nil {
		return nil
	}
	switch s.Type {
	case Boolean:
		if _, ok := value.(bool); !ok {
			return fragerrors.NewValidationError(field, fmt.Sprintf("boolean value expected, got %T", value), nil)
		}
	case Repeater:
		items, ok := value.([]Values)
		if !ok {
			return fragerrors.NewValidationError(field, fmt.Sprintf("list of items expected, got %T", value), nil)
		}
		for i, item := range items {
			if err := s.Fields.checkItem(fmt.Sprintf("%s[%d]", field, i), item); err != nil {
				return err
			}
		}
	default:
		str, ok := value.(string)
		if !ok {
			return fragerrors.NewValidationError(field, fmt.Sprintf("string value expected, got %T", value), nil)
		}
		if !utf8.ValidString(str) {
			return fragerrors.NewValidationError(field, "value is not valid UTF-8", nil)
		}
		if s.Type == Choice && !slices.Contains(s.Options, str) {
			return fragerrors.NewValidationError(field, fmt.Sprintf("%q is not one of %v", str, s.Options), nil)
		}
		if (s.Type == URL || s.Type == Image) && unsafeURL(str) {
			return fragerrors.NewValidationError(field, fmt.Sprintf("unsafe url %q", str), nil)
		}
	}
	return nil
}

func (s Specs) checkItem(field string, item Values) error {
	for key, value := range item {
		spec, ok := s.Lookup(key)
		if !ok {
			return fragerrors.NewUnknownPlaceholderError("", field+"."+key)
		}
		if err := spec.checkValue(field+"."+key, value); err != nil {
			return err
		}
	}
	return nil
}
