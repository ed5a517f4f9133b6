// Package components implements the live components of the library. Each
// component is a pure function from an explicit config struct to markup; its
// placeholder specs are derived from the default config so the manifest and
// the rendered output never disagree.
package components

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/alexisbeaulieu97/fragments/internal/placeholder"
	"github.com/alexisbeaulieu97/fragments/internal/registry"
	"github.com/alexisbeaulieu97/fragments/internal/stylesheet"
	"github.com/alexisbeaulieu97/fragments/internal/theme"
)

// ThemePlaceholder is the id of the theme selector every component declares.
const ThemePlaceholder = "theme"

// Descriptors returns the live components in library order.
func Descriptors() []registry.Descriptor {
	return []registry.Descriptor{
		NavigationDescriptor(),
		HeroBlockDescriptor(),
		ButtonMultiVariantDescriptor(),
		FocusAreasDescriptor(),
		Grid2x2CardImageDescriptor(),
		WhyUsSectionDescriptor(),
		LocationsCarouselDescriptor(),
	}
}

// newTemplate parses markup for componentID. The template gets a `cls`
// function that maps local class names to their namespaced form.
func newTemplate(componentID, markup string) *template.Template {
	prefix := stylesheet.ClassPrefix(componentID)
	funcs := template.FuncMap{
		"cls": func(names ...string) string {
			out := make([]string, 0, len(names))
			for _, name := range names {
				if name == "" {
					continue
				}
				out = append(out, prefix+name)
			}
			return strings.Join(out, " ")
		},
	}
	return template.Must(template.New(componentID).Funcs(funcs).Parse(markup))
}

func execute(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute %s template: %w", t.Name(), err)
	}
	return buf.String(), nil
}

func themeSpec(def theme.Name) placeholder.Spec {
	return placeholder.Spec{
		ID:      ThemePlaceholder,
		Type:    placeholder.Choice,
		Label:   "Theme",
		Default: string(def),
		Options: theme.Strings(),
	}
}

// themeFrom reads the theme selector, falling back to def when unset.
func themeFrom(values placeholder.Values, def theme.Name) theme.Name {
	name, err := theme.ParseName(values.String(ThemePlaceholder))
	if err != nil {
		return def
	}
	return name
}

// choiceSpec declares a choice placeholder with its options.
func choiceSpec(id, label, def string, options ...string) placeholder.Spec {
	return placeholder.Spec{ID: id, Type: placeholder.Choice, Label: label, Default: def, Options: options}
}

// Card is an image card shared by the card grid components.
type Card struct {
	Title       string
	Description string
	ImageURL    string
	LinkURL     string
}

func cardFields() placeholder.Specs {
	return placeholder.Specs{
		{ID: "title", Type: placeholder.Text, Label: "Title", Default: "Card title"},
		{ID: "description", Type: placeholder.Text, Label: "Description", Default: ""},
		{ID: "image_url", Type: placeholder.Image, Label: "Image", Default: ""},
		{ID: "link_url", Type: placeholder.URL, Label: "Link", Default: "#"},
	}
}

func cardValues(cards []Card) []placeholder.Values {
	out := make([]placeholder.Values, len(cards))
	for i, card := range cards {
		out[i] = placeholder.Values{
			"title":       card.Title,
			"description": card.Description,
			"image_url":   card.ImageURL,
			"link_url":    card.LinkURL,
		}
	}
	return out
}

func cardsFrom(items []placeholder.Values) []Card {
	out := make([]Card, len(items))
	for i, item := range items {
		out[i] = Card{
			Title:       item.String("title"),
			Description: item.String("description"),
			ImageURL:    item.String("image_url"),
			LinkURL:     item.String("link_url"),
		}
	}
	return out
}

func liveDescriptor(id, name, description string, specs placeholder.Specs, render registry.RenderFunc) registry.Descriptor {
	return registry.Descriptor{
		ID:           id,
		Name:         name,
		Description:  description,
		Render:       render,
		Stylesheet:   id + ".css",
		Placeholders: specs,
	}
}
