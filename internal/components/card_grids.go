package components

import (
	"github.com/alexisbeaulieu97/fragments/internal/placeholder"
	"github.com/alexisbeaulieu97/fragments/internal/registry"
	"github.com/alexisbeaulieu97/fragments/internal/theme"
)

const (
	// FocusAreasID is the component id of the focus area card grid.
	FocusAreasID = "focus-areas"
	// Grid2x2CardImageID is the component id of the two by two image grid.
	Grid2x2CardImageID = "grid-2x2-card-image"
)

const (
	chestImage  = "/images/focus-areas/chest.webp"
	muscleImage = "/images/focus-areas/muscle.png"
)

// CardGridConfig configures both image card grids.
type CardGridConfig struct {
	BadgeText string
	LinkText  string
	Cards     []Card
	Theme     theme.Name
}

func defaultCards(images ...string) []Card {
	cards := []Card{
		{Title: "Prevention in heart health", Description: "Exploring how MSCs can lower the risk of cardiovascular disease."},
		{Title: "Rediscovering ease in motion", Description: "Studying how MSCs may support cartilage health and ease joint pain in osteoarthritis."},
		{Title: "Strengthening joint & muscle", Description: "Investigating how MSCs may aid recovery after injury and maintain musculoskeletal strength."},
		{Title: "Staying active as you age", Description: "Researching how MSCs could support performance and promote healthier lives as we grow older."},
	}
	for i := range cards {
		cards[i].ImageURL = images[i%len(images)]
		cards[i].LinkURL = "#"
	}
	return cards
}

// DefaultFocusAreasConfig returns the focus area grid shipped with the
// library.
func DefaultFocusAreasConfig() CardGridConfig {
	return CardGridConfig{
		BadgeText: "Focus areas",
		LinkText:  "Learn more ↗",
		Cards:     defaultCards(chestImage),
		Theme:     theme.CellcolabsClinical,
	}
}

// DefaultGrid2x2CardImageConfig returns the image grid shipped with the
// library: muscle images on the top row, chest images below.
func DefaultGrid2x2CardImageConfig() CardGridConfig {
	return CardGridConfig{
		BadgeText: "Focus areas",
		LinkText:  "Learn more ↗",
		Cards:     defaultCards(muscleImage, muscleImage, chestImage, chestImage),
		Theme:     theme.CellcolabsClinical,
	}
}

const cardGridMarkup = `<section class="{{cls .RootClass}}" data-component="{{.ID}}" data-theme="{{.Theme}}">
<div class="{{cls "container"}}">
<div class="{{cls "grid"}}" data-placeholder="cards">
{{- range .Cards}}
<div class="{{cls "card"}}">
<div class="{{cls "cardImage"}}" style="background-image: url('{{.ImageURL}}')">
<div class="{{cls "cardOverlay"}}">
<div class="{{cls "cardBadge"}}">{{$.BadgeText}}</div>
<h3 class="{{cls "cardTitle"}}">{{.Title}}</h3>
<p class="{{cls "cardDescription"}}">{{.Description}}</p>
<a class="{{cls "cardLink"}}" href="{{.LinkURL}}">{{$.LinkText}}</a>
</div>
</div>
</div>
{{- end}}
</div>
</div>
</section>`

var (
	focusAreasTemplate       = newTemplate(FocusAreasID, cardGridMarkup)
	grid2x2CardImageTemplate = newTemplate(Grid2x2CardImageID, cardGridMarkup)
)

type cardGridData struct {
	CardGridConfig
	ID        string
	RootClass string
}

// RenderFocusAreas renders the focus area grid.
func RenderFocusAreas(cfg CardGridConfig) (string, error) {
	return execute(focusAreasTemplate, cardGridData{cfg, FocusAreasID, "focusAreas"})
}

// RenderGrid2x2CardImage renders the two by two image grid.
func RenderGrid2x2CardImage(cfg CardGridConfig) (string, error) {
	return execute(grid2x2CardImageTemplate, cardGridData{cfg, Grid2x2CardImageID, "grid2x2CardImage"})
}

func cardGridPlaceholders(cfg CardGridConfig) placeholder.Specs {
	return placeholder.Specs{
		{ID: "badge_text", Type: placeholder.Text, Label: "Badge text", Default: cfg.BadgeText},
		{ID: "link_text", Type: placeholder.Text, Label: "Link text", Default: cfg.LinkText},
		{ID: "cards", Type: placeholder.Repeater, Label: "Cards", Default: cardValues(cfg.Cards), Fields: cardFields()},
		themeSpec(cfg.Theme),
	}
}

func cardGridConfigFrom(values placeholder.Values, def theme.Name) CardGridConfig {
	return CardGridConfig{
		BadgeText: values.String("badge_text"),
		LinkText:  values.String("link_text"),
		Cards:     cardsFrom(values.Items("cards")),
		Theme:     themeFrom(values, def),
	}
}

// FocusAreasDescriptor registers the focus area grid as a live component.
func FocusAreasDescriptor() registry.Descriptor {
	def := DefaultFocusAreasConfig()
	return liveDescriptor(FocusAreasID, "Focus Areas", "Grid of image cards with overlay text",
		cardGridPlaceholders(def),
		func(values placeholder.Values) (string, error) {
			return RenderFocusAreas(cardGridConfigFrom(values, def.Theme))
		})
}

// Grid2x2CardImageDescriptor registers the two by two image grid as a live
// component.
func Grid2x2CardImageDescriptor() registry.Descriptor {
	def := DefaultGrid2x2CardImageConfig()
	return liveDescriptor(Grid2x2CardImageID, "Grid 2x2 Card Image", "Two by two grid of image cards",
		cardGridPlaceholders(def),
		func(values placeholder.Values) (string, error) {
			return RenderGrid2x2CardImage(cardGridConfigFrom(values, def.Theme))
		})
}
