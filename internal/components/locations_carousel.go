package components

import (
	"github.com/alexisbeaulieu97/fragments/internal/placeholder"
	"github.com/alexisbeaulieu97/fragments/internal/registry"
	"github.com/alexisbeaulieu97/fragments/internal/theme"
)

// LocationsCarouselID is the component id of the clinic location carousel.
const LocationsCarouselID = "locations-carousel"

// Location is one carousel slide.
type Location struct {
	Name        string
	Title       string
	Description string
	ImageURL    string
	ImageAlt    string
	LinkText    string
	LinkURL     string
}

// LocationsCarouselConfig configures the location carousel.
type LocationsCarouselConfig struct {
	EyebrowText     string
	MainTitle       string
	MainDescription string
	Locations       []Location
	Theme           theme.Name
}

// DefaultLocationsCarouselConfig returns the carousel shipped with the
// library.
func DefaultLocationsCarouselConfig() LocationsCarouselConfig {
	return LocationsCarouselConfig{
		EyebrowText: "Locations",
		MainTitle:   "Stem cell therapy in the Bahamas",
		MainDescription: "At Cellcolabs Clinical, we conduct our patient-funded clinical trials in the Bahamas, a destination recognized both for tourism and for its role as a hub of regenerative medicine. " +
			"All trials are approved by the Bahamas National Stem Cell Ethics Committee and carried out by experienced local physicians, ensuring both safety and expertise.",
		Locations: []Location{
			{
				Name:  "Cellcolabs by Live Well",
				Title: "Cellcolabs by Live Well",
				Description: "Our clinic at The Albany resort is designed to make every participant feel cared for in a calm and private environment. " +
					"Situated within The Albany, one of Nassau's most renowned resort communities, the clinic is surrounded by nearby accommodations, wellness amenities, and convenient travel access.",
				ImageURL: "https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=1136&h=638&fit=crop",
				ImageAlt: "Cellcolabs by Live Well clinic interior",
				LinkText: "Get directions ↗",
				LinkURL:  "#",
			},
			{
				Name:  "The Albany Resort",
				Title: "The Albany Resort",
				Description: "Experience world-class facilities at The Albany Resort, featuring state-of-the-art medical equipment and luxurious accommodations. " +
					"Our partnership with this premier destination ensures you receive exceptional care in an unparalleled setting.",
				ImageURL: "https://images.unsplash.com/photo-1584132967334-10e028bd69f7?w=1136&h=638&fit=crop",
				ImageAlt: "The Albany Resort facilities",
				LinkText: "Learn more ↗",
				LinkURL:  "#",
			},
		},
		Theme: theme.CellcolabsClinical,
	}
}

// The first location is active. Details of the other locations are rendered
// hidden so the fragment script can switch tabs without a round trip.
var locationsCarouselTemplate = newTemplate(LocationsCarouselID, `<section class="{{cls "locationsCarousel"}}" data-component="locations-carousel" data-theme="{{.Theme}}">
<div class="{{cls "container"}}">
<div class="{{cls "header"}}">
<div class="{{cls "headerLeft"}}">
<div class="{{cls "eyebrow"}}" data-placeholder="eyebrow_text">{{.EyebrowText}}</div>
<h2 class="{{cls "mainTitle"}}" data-placeholder="main_title">{{.MainTitle}}</h2>
</div>
<div class="{{cls "headerRight"}}">
<p class="{{cls "mainDescription"}}" data-placeholder="main_description">{{.MainDescription}}</p>
<div class="{{cls "tabNavigation"}}" role="tablist" data-placeholder="locations">
{{- range $i, $loc := .Locations}}
<button class="{{if eq $i 0}}{{cls "tab" "tabActive"}}{{else}}{{cls "tab"}}{{end}}" type="button" role="tab" data-index="{{$i}}" aria-selected="{{eq $i 0}}">{{$loc.Name}}</button>
{{- end}}
</div>
</div>
</div>
<div class="{{cls "carouselContainer"}}">
<div class="{{cls "carouselTrack"}}" style="--slide-index: 0">
{{- range .Locations}}
<div class="{{cls "carouselSlide"}}">
<img class="{{cls "carouselImage"}}" src="{{.ImageURL}}" alt="{{.ImageAlt}}">
</div>
{{- end}}
</div>
</div>
<div class="{{cls "progressIndicators"}}">
{{- range $i, $loc := .Locations}}
<div class="{{if eq $i 0}}{{cls "progressDot" "progressDotActive"}}{{else}}{{cls "progressDot"}}{{end}}"></div>
{{- end}}
</div>
<div class="{{cls "bottomContent"}}">
{{- range $i, $loc := .Locations}}
<div class="{{cls "bottomContentInner"}}" data-index="{{$i}}"{{if ne $i 0}} hidden{{end}}>
<h3 class="{{cls "locationTitle"}}">{{$loc.Title}}</h3>
<p class="{{cls "locationDescription"}}">{{$loc.Description}}</p>
<a class="{{cls "locationLink"}}" href="{{$loc.LinkURL}}">{{$loc.LinkText}}</a>
</div>
{{- end}}
</div>
</div>
</section>`)

// RenderLocationsCarousel renders the carousel with its first location
// active.
func RenderLocationsCarousel(cfg LocationsCarouselConfig) (string, error) {
	return execute(locationsCarouselTemplate, cfg)
}

func locationsCarouselPlaceholders(cfg LocationsCarouselConfig) placeholder.Specs {
	items := make([]placeholder.Values, len(cfg.Locations))
	for i, loc := range cfg.Locations {
		items[i] = placeholder.Values{
			"name":        loc.Name,
			"title":       loc.Title,
			"description": loc.Description,
			"image_url":   loc.ImageURL,
			"image_alt":   loc.ImageAlt,
			"link_text":   loc.LinkText,
			"link_url":    loc.LinkURL,
		}
	}
	return placeholder.Specs{
		{ID: "eyebrow_text", Type: placeholder.Text, Label: "Eyebrow", Default: cfg.EyebrowText},
		{ID: "main_title", Type: placeholder.Text, Label: "Title", Default: cfg.MainTitle},
		{ID: "main_description", Type: placeholder.Text, Label: "Description", Default: cfg.MainDescription},
		{
			ID:      "locations",
			Type:    placeholder.Repeater,
			Label:   "Locations",
			Default: items,
			Fields: placeholder.Specs{
				{ID: "name", Type: placeholder.Text, Label: "Tab label", Default: "Location"},
				{ID: "title", Type: placeholder.Text, Label: "Title", Default: "Location"},
				{ID: "description", Type: placeholder.Text, Label: "Description", Default: ""},
				{ID: "image_url", Type: placeholder.Image, Label: "Image", Default: ""},
				{ID: "image_alt", Type: placeholder.Text, Label: "Image alt text", Default: ""},
				{ID: "link_text", Type: placeholder.Text, Label: "Link text", Default: "Learn more ↗"},
				{ID: "link_url", Type: placeholder.URL, Label: "Link", Default: "#"},
			},
		},
		themeSpec(cfg.Theme),
	}
}

func locationsCarouselConfigFrom(values placeholder.Values) LocationsCarouselConfig {
	def := DefaultLocationsCarouselConfig()
	bound := values.Items("locations")
	locations := make([]Location, len(bound))
	for i, item := range bound {
		locations[i] = Location{
			Name:        item.String("name"),
			Title:       item.String("title"),
			Description: item.String("description"),
			ImageURL:    item.String("image_url"),
			ImageAlt:    item.String("image_alt"),
			LinkText:    item.String("link_text"),
			LinkURL:     item.String("link_url"),
		}
	}
	return LocationsCarouselConfig{
		EyebrowText:     values.String("eyebrow_text"),
		MainTitle:       values.String("main_title"),
		MainDescription: values.String("main_description"),
		Locations:       locations,
		Theme:           themeFrom(values, def.Theme),
	}
}

// LocationsCarouselDescriptor registers the carousel as a live component.
func LocationsCarouselDescriptor() registry.Descriptor {
	return liveDescriptor(LocationsCarouselID, "Locations Carousel", "Tabbed carousel of clinic locations",
		locationsCarouselPlaceholders(DefaultLocationsCarouselConfig()),
		func(values placeholder.Values) (string, error) {
			return RenderLocationsCarousel(locationsCarouselConfigFrom(values))
		})
}
