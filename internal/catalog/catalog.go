// Package catalog assembles the component library: the live components, the
// static templates and the stylesheets shipped with them.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/alexisbeaulieu97/fragments/internal/components"
	"github.com/alexisbeaulieu97/fragments/internal/placeholder"
	"github.com/alexisbeaulieu97/fragments/internal/registry"
	"github.com/alexisbeaulieu97/fragments/internal/theme"
)

//go:embed styles/*.css
var styles embed.FS

//go:embed templates/*.html
var templates embed.FS

// Styles returns the embedded stylesheet sources keyed by file name.
func Styles() fs.FS {
	sub, err := fs.Sub(styles, "styles")
	if err != nil {
		panic(fmt.Sprintf("catalog: styles directory: %v", err))
	}
	return sub
}

type staticComponent struct {
	id           string
	name         string
	description  string
	placeholders placeholder.Specs
}

// Static components render from templates/<id>.html.
var staticComponents = []staticComponent{
	{id: "footer", name: "Footer", description: "Site footer with link columns and contact details", placeholders: footerPlaceholders()},
	{id: "content-section", name: "Content Section", description: "Title, subtitle and expandable content cards", placeholders: contentSectionPlaceholders()},
	{id: "button", name: "Button", description: "Call-to-action button", placeholders: buttonPlaceholders()},
}

// Descriptors returns every component in library order: live components
// first, then static templates.
func Descriptors() ([]registry.Descriptor, error) {
	descriptors := components.Descriptors()
	for _, sc := range staticComponents {
		src, err := fs.ReadFile(templates, "templates/"+sc.id+".html")
		if err != nil {
			return nil, fmt.Errorf("read template for %s: %w", sc.id, err)
		}
		tmpl, err := placeholder.Parse(sc.id, string(src))
		if err != nil {
			return nil, err
		}
		descriptors = append(descriptors, registry.Descriptor{
			ID:           sc.id,
			Name:         sc.name,
			Description:  sc.description,
			Template:     tmpl,
			Stylesheet:   sc.id + ".css",
			Placeholders: sc.placeholders,
		})
	}
	return descriptors, nil
}

// Registry builds the registry of the full library.
func Registry() (*registry.Registry, error) {
	descriptors, err := Descriptors()
	if err != nil {
		return nil, err
	}
	return registry.New(descriptors...)
}

func links(pairs ...string) []placeholder.Values {
	out := make([]placeholder.Values, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, placeholder.Values{"label": pairs[i], "href": pairs[i+1]})
	}
	return out
}

func footerPlaceholders() placeholder.Specs {
	sections := []placeholder.Values{
		{"title": "Product", "links": links("Stem cells", "#stem-cells", "Trials", "#trials", "Clinics", "#clinics", "Consultation", "#consultation")},
		{"title": "Company", "links": links("About", "#about", "FAQ", "#faq", "Partnerships", "#partnerships", "Career", "#career", "Privacy policy", "#privacy")},
		{"title": "Support", "links": links("Contact us", "#contact")},
		{"title": "Social", "links": links("Instagram", "#instagram", "Facebook", "#facebook", "LinkedIn", "#linkedin", "LINE", "#line")},
	}
	return placeholder.Specs{
		{ID: "brand_text", Type: placeholder.Text, Label: "Brand text", Default: "Cellcolabs Clinical"},
		{ID: "brand_description", Type: placeholder.RichText, Label: "Brand description", Default: "World-leading stem cell research and clinical trials using GMP-certified, donor-derived mesenchymal stem cells."},
		{
			ID:      "sections",
			Type:    placeholder.Repeater,
			Label:   "Footer sections",
			Default: sections,
			Fields: placeholder.Specs{
				{ID: "title", Type: placeholder.Text, Label: "Section title", Default: "Section title"},
				{
					ID:    "links",
					Type:  placeholder.Repeater,
					Label: "Links",
					Fields: placeholder.Specs{
						{ID: "label", Type: placeholder.Text, Label: "Label", Default: "Link"},
						{ID: "href", Type: placeholder.URL, Label: "Link", Default: "#"},
					},
				},
			},
		},
		{ID: "contact_title", Type: placeholder.Text, Label: "Contact title", Default: "Contact"},
		{ID: "contact_address", Type: placeholder.RichText, Label: "Contact address", Default: "Registered office Dominion<br>House, 60 Montrose Avenue<br>P.O. Box N-9932<br>Nassau, New Providence, The Bahamas"},
		{ID: "copyright_text", Type: placeholder.Text, Label: "Copyright text", Default: "© 2025 Cellcolabs Clinical"},
		{ID: components.ThemePlaceholder, Type: placeholder.Choice, Label: "Theme", Default: string(theme.CellcolabsClinical), Options: theme.Strings()},
	}
}

func contentSectionPlaceholders() placeholder.Specs {
	const (
		offer  = "If the trial is a good fit, you'll receive an offer with the participation details. Once you're ready, a date is booked and arrangements confirmed."
		signUp = "Begin with a simple sign-up online. This allows us to share more information and see if a trial may be right for you."
	)
	card := func(description string) placeholder.Values {
		return placeholder.Values{
			"headline":    "Headline",
			"description": description,
			"imageUrl":    "https://via.placeholder.com/343x228",
			"imageAlt":    "Clinical research image",
		}
	}
	return placeholder.Specs{
		{ID: "title", Type: placeholder.Text, Label: "Section title", Default: "Our clinical research programs"},
		{ID: "subtitle", Type: placeholder.RichText, Label: "Section subtitle", Default: "We conduct patient-funded clinical trials exploring stem cell treatments with potential to protect your heart, restore mobility, and support healthy aging."},
		{
			ID:      "cards",
			Type:    placeholder.Repeater,
			Label:   "Content cards",
			Default: []placeholder.Values{card(offer), card(signUp), card(offer)},
			Fields: placeholder.Specs{
				{ID: "headline", Type: placeholder.Text, Label: "Headline", Default: "Headline"},
				{ID: "description", Type: placeholder.RichText, Label: "Description", Default: "Description text"},
				{ID: "imageUrl", Type: placeholder.Image, Label: "Image", Default: "https://via.placeholder.com/343x228"},
				{ID: "imageAlt", Type: placeholder.Text, Label: "Image alt text", Default: "Image description"},
			},
		},
		{ID: components.ThemePlaceholder, Type: placeholder.Choice, Label: "Theme", Default: string(theme.Cellcolabs), Options: theme.Strings()},
	}
}

// The static button shares its placeholders with the live multi-variant
// button.
func buttonPlaceholders() placeholder.Specs {
	return components.ButtonPlaceholders(components.DefaultButtonConfig())
}
