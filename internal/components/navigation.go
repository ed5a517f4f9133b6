package components

import (
	"github.com/alexisbeaulieu97/fragments/internal/placeholder"
	"github.com/alexisbeaulieu97/fragments/internal/registry"
	"github.com/alexisbeaulieu97/fragments/internal/theme"
)

// NavigationID is the component id of the site navigation bar.
const NavigationID = "navigation"

// MenuItem is one navigation link.
type MenuItem struct {
	Label string
	Href  string
}

// NavigationConfig configures the navigation bar. BrandText is rendered
// bold and BrandSubtext, when set, in the regular weight after it.
type NavigationConfig struct {
	BrandText    string
	BrandSubtext string
	MenuItems    []MenuItem
	Theme        theme.Name
}

// DefaultNavigationConfig returns the navigation shipped with the library.
func DefaultNavigationConfig() NavigationConfig {
	return NavigationConfig{
		BrandText:    "Cellcolabs",
		BrandSubtext: "Clinical",
		MenuItems: []MenuItem{
			{Label: "Treatments", Href: "#treatments"},
			{Label: "About", Href: "#about"},
			{Label: "Partners", Href: "#partners"},
			{Label: "Contact", Href: "#contact"},
		},
		Theme: theme.Cellcolabs,
	}
}

// mobileToggleDots is the number of dots drawn in the menu toggle grid.
const mobileToggleDots = 15

var navigationTemplate = newTemplate(NavigationID, `<nav class="{{cls "navigation"}}" data-component="navigation" data-theme="{{.Theme}}">
<div class="{{cls "container"}}">
<div class="{{cls "content"}}">
<div class="{{cls "brand"}}" data-placeholder="brand_text">
<span class="{{cls "brandBold"}}">{{.BrandText}}</span>
{{- if .BrandSubtext}}
<span class="{{cls "brandRegular"}}" data-placeholder="brand_subtext">{{.BrandSubtext}}</span>
{{- end}}
</div>
<button class="{{cls "mobileToggle"}}" type="button" aria-label="Toggle menu" aria-expanded="false">
<div class="{{cls "dotsGrid"}}">
{{- range .Dots}}
<span class="{{cls "dot"}}"></span>
{{- end}}
</div>
</button>
<ul class="{{cls "menu"}}" data-placeholder="menu_items">
{{- range .MenuItems}}
<li class="{{cls "menuItem"}}"><a class="{{cls "menuLink"}}" href="{{.Href}}">{{.Label}}</a></li>
{{- end}}
</ul>
</div>
</div>
</nav>`)

// RenderNavigation renders the navigation bar. The menu is rendered closed;
// the fragment script opens it on mobile.
func RenderNavigation(cfg NavigationConfig) (string, error) {
	data := struct {
		NavigationConfig
		Dots []struct{}
	}{cfg, make([]struct{}, mobileToggleDots)}
	return execute(navigationTemplate, data)
}

func navigationPlaceholders(cfg NavigationConfig) placeholder.Specs {
	items := make([]placeholder.Values, len(cfg.MenuItems))
	for i, item := range cfg.MenuItems {
		items[i] = placeholder.Values{"label": item.Label, "href": item.Href}
	}
	return placeholder.Specs{
		{ID: "brand_text", Type: placeholder.Text, Label: "Brand text (bold)", Default: cfg.BrandText},
		{ID: "brand_subtext", Type: placeholder.Text, Label: "Brand text (regular)", Default: cfg.BrandSubtext},
		{
			ID:      "menu_items",
			Type:    placeholder.Repeater,
			Label:   "Menu items",
			Default: items,
			Fields: placeholder.Specs{
				{ID: "label", Type: placeholder.Text, Label: "Label", Default: "Menu item"},
				{ID: "href", Type: placeholder.URL, Label: "Link", Default: "#"},
			},
		},
		themeSpec(cfg.Theme),
	}
}

func navigationConfigFrom(values placeholder.Values) NavigationConfig {
	def := DefaultNavigationConfig()
	items := values.Items("menu_items")
	menu := make([]MenuItem, len(items))
	for i, item := range items {
		menu[i] = MenuItem{Label: item.String("label"), Href: item.String("href")}
	}
	return NavigationConfig{
		BrandText:    values.String("brand_text"),
		BrandSubtext: values.String("brand_subtext"),
		MenuItems:    menu,
		Theme:        themeFrom(values, def.Theme),
	}
}

// NavigationDescriptor registers the navigation bar as a live component.
func NavigationDescriptor() registry.Descriptor {
	return liveDescriptor(NavigationID, "Navigation", "Site header with brand and collapsible menu",
		navigationPlaceholders(DefaultNavigationConfig()),
		func(values placeholder.Values) (string, error) {
			return RenderNavigation(navigationConfigFrom(values))
		})
}
