package theme

import (
	"fmt"
	"strings"
)

// Variable is one CSS custom property projected from a theme.
type Variable struct {
	Name  string
	Value string
}

type binding struct {
	name  string
	field func(*Theme) *string
}

// bindings fixes the projection order and the legacy flat token names.
var bindings = []binding{
	{"color-primary", func(t *Theme) *string { return &t.Colors.Primary }},
	{"color-secondary", func(t *Theme) *string { return &t.Colors.Secondary }},
	{"color-accent", func(t *Theme) *string { return &t.Colors.Accent }},
	{"color-text-primary", func(t *Theme) *string { return &t.Colors.Text.Primary }},
	{"color-text-secondary", func(t *Theme) *string { return &t.Colors.Text.Secondary }},
	{"color-text-inverse", func(t *Theme) *string { return &t.Colors.Text.Inverse }},
	{"color-bg-primary", func(t *Theme) *string { return &t.Colors.Background.Primary }},
	{"color-bg-secondary", func(t *Theme) *string { return &t.Colors.Background.Secondary }},
	{"color-bg-section", func(t *Theme) *string { return &t.Colors.Background.Section }},
	{"color-bg-dark", func(t *Theme) *string { return &t.Colors.Background.Dark }},
	{"color-border-light", func(t *Theme) *string { return &t.Colors.Border.Light }},
	{"color-border-medium", func(t *Theme) *string { return &t.Colors.Border.Medium }},
	{"font-heading", func(t *Theme) *string { return &t.Typography.FontFamily.Heading }},
	{"font-body", func(t *Theme) *string { return &t.Typography.FontFamily.Body }},
	{"font-weight-regular", func(t *Theme) *string { return &t.Typography.FontWeight.Regular }},
	{"font-weight-medium", func(t *Theme) *string { return &t.Typography.FontWeight.Medium }},
	{"font-weight-bold", func(t *Theme) *string { return &t.Typography.FontWeight.Bold }},
	{"spacing-xs", func(t *Theme) *string { return &t.Spacing.XS }},
	{"spacing-sm", func(t *Theme) *string { return &t.Spacing.SM }},
	{"spacing-md", func(t *Theme) *string { return &t.Spacing.MD }},
	{"spacing-lg", func(t *Theme) *string { return &t.Spacing.LG }},
	{"spacing-xl", func(t *Theme) *string { return &t.Spacing.XL }},
	{"spacing-xxl", func(t *Theme) *string { return &t.Spacing.XXL }},
	{"radius-sm", func(t *Theme) *string { return &t.Radius.SM }},
	{"radius-md", func(t *Theme) *string { return &t.Radius.MD }},
	{"radius-lg", func(t *Theme) *string { return &t.Radius.LG }},
	{"radius-full", func(t *Theme) *string { return &t.Radius.Full }},
	{"shadow-sm", func(t *Theme) *string { return &t.Shadows.SM }},
	{"shadow-md", func(t *Theme) *string { return &t.Shadows.MD }},
	{"shadow-lg", func(t *Theme) *string { return &t.Shadows.LG }},
	{"breakpoint-tablet", func(t *Theme) *string { return &t.Breakpoints.Tablet }},
	{"breakpoint-desktop", func(t *Theme) *string { return &t.Breakpoints.Desktop }},
	{"breakpoint-wide", func(t *Theme) *string { return &t.Breakpoints.Wide }},
}

// Variables projects t onto CSS custom properties in a fixed order. Empty
// optional tokens are skipped.
func (t Theme) Variables() []Variable {
	vars := make([]Variable, 0, len(bindings))
	for _, b := range bindings {
		value := *b.field(&t)
		if value == "" {
			continue
		}
		vars = append(vars, Variable{Name: "--" + b.name, Value: value})
	}
	return vars
}

// RootBlock renders the variables as a :root rule, preceded by a comment
// naming the theme.
func (t Theme) RootBlock() string {
	var b strings.Builder
	fmt.Fprintf(&b, "/* Theme variables (%s); the host page may override them */\n", t.Name)
	b.WriteString(":root {\n")
	for _, v := range t.Variables() {
		fmt.Fprintf(&b, "  %s: %s;\n", v.Name, v.Value)
	}
	b.WriteString("}\n")
	return b.String()
}
