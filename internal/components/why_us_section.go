package components

import (
	"github.com/alexisbeaulieu97/fragments/internal/placeholder"
	"github.com/alexisbeaulieu97/fragments/internal/registry"
	"github.com/alexisbeaulieu97/fragments/internal/theme"
)

// WhyUsSectionID is the component id of the benefits checklist.
const WhyUsSectionID = "why-us-section"

// WhyUsItem is one checklist entry.
type WhyUsItem struct {
	Title       string
	Description string
}

// WhyUsSectionConfig configures the benefits checklist.
type WhyUsSectionConfig struct {
	Title string
	Items []WhyUsItem
	Theme theme.Name
}

// DefaultWhyUsSectionConfig returns the checklist shipped with the library.
func DefaultWhyUsSectionConfig() WhyUsSectionConfig {
	return WhyUsSectionConfig{
		Title: "Excellence in every cell",
		Items: []WhyUsItem{
			{Title: "Highest quality stem cells", Description: "GMP-certified and produced under the world's strictest safety standards."},
			{Title: "Personal health insights", Description: "In-depth biomarker testing gives you a clearer picture of your body and wellbeing."},
			{Title: "Continuous health monitoring", Description: "We follow your progress closely, supporting you throughout the journey."},
			{Title: "Expert medical care", Description: "A dedicated team of experienced doctors by your side."},
		},
		Theme: theme.CellcolabsClinical,
	}
}

// The section carries a desktop and a mobile layout; CSS shows one of them.
var whyUsSectionTemplate = newTemplate(WhyUsSectionID, `{{define "items"}}
{{- range .}}
<div class="{{cls "item"}}">
<div class="{{cls "checkmark"}}">✓</div>
<div class="{{cls "itemContent"}}">
<h3 class="{{cls "itemTitle"}}">{{.Title}}</h3>
<p class="{{cls "itemDescription"}}">{{.Description}}</p>
</div>
</div>
{{- end}}
{{- end}}<section class="{{cls "whyUsSection"}}" data-component="why-us-section" data-theme="{{.Theme}}">
<div class="{{cls "container"}}">
<div class="{{cls "content"}}">
<div class="{{cls "desktopLayout"}}">
<div class="{{cls "titleColumn"}}">
<h2 class="{{cls "title"}}" data-placeholder="title">{{.Title}}</h2>
</div>
<div class="{{cls "itemsColumn"}}">
<div class="{{cls "itemsWrapper"}}" data-placeholder="items">
{{- template "items" .Items}}
</div>
</div>
</div>
<div class="{{cls "mobileLayout"}}">
<div class="{{cls "titleContainer"}}">
<h2 class="{{cls "title"}}">{{.Title}}</h2>
</div>
<div class="{{cls "itemsList"}}">
{{- template "items" .Items}}
</div>
</div>
</div>
</div>
</section>`)

// RenderWhyUsSection renders the checklist.
func RenderWhyUsSection(cfg WhyUsSectionConfig) (string, error) {
	return execute(whyUsSectionTemplate, cfg)
}

func whyUsSectionPlaceholders(cfg WhyUsSectionConfig) placeholder.Specs {
	items := make([]placeholder.Values, len(cfg.Items))
	for i, item := range cfg.Items {
		items[i] = placeholder.Values{"title": item.Title, "description": item.Description}
	}
	return placeholder.Specs{
		{ID: "title", Type: placeholder.Text, Label: "Title", Default: cfg.Title},
		{
			ID:      "items",
			Type:    placeholder.Repeater,
			Label:   "Items",
			Default: items,
			Fields: placeholder.Specs{
				{ID: "title", Type: placeholder.Text, Label: "Title", Default: "Benefit"},
				{ID: "description", Type: placeholder.Text, Label: "Description", Default: ""},
			},
		},
		themeSpec(cfg.Theme),
	}
}

func whyUsSectionConfigFrom(values placeholder.Values) WhyUsSectionConfig {
	def := DefaultWhyUsSectionConfig()
	bound := values.Items("items")
	items := make([]WhyUsItem, len(bound))
	for i, item := range bound {
		items[i] = WhyUsItem{Title: item.String("title"), Description: item.String("description")}
	}
	return WhyUsSectionConfig{
		Title: values.String("title"),
		Items: items,
		Theme: themeFrom(values, def.Theme),
	}
}

// WhyUsSectionDescriptor registers the checklist as a live component.
func WhyUsSectionDescriptor() registry.Descriptor {
	return liveDescriptor(WhyUsSectionID, "Why Us Section", "Title beside a checklist of benefits",
		whyUsSectionPlaceholders(DefaultWhyUsSectionConfig()),
		func(values placeholder.Values) (string, error) {
			return RenderWhyUsSection(whyUsSectionConfigFrom(values))
		})
}
