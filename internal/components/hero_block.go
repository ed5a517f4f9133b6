package components

import (
	"github.com/alexisbeaulieu97/fragments/internal/placeholder"
	"github.com/alexisbeaulieu97/fragments/internal/registry"
	"github.com/alexisbeaulieu97/fragments/internal/theme"
)

// HeroBlockID is the component id of the hero banner.
const HeroBlockID = "hero-block"

// ImagePosition places the hero image beside the text.
type ImagePosition string

const (
	ImageLeft  ImagePosition = "left"
	ImageRight ImagePosition = "right"
)

// HeroBlockConfig configures the hero banner.
type HeroBlockConfig struct {
	Heading       string
	BodyText      string
	CTAText       string
	CTAURL        string
	ImageURL      string
	ImageAlt      string
	ImagePosition ImagePosition
	Theme         theme.Name
}

// DefaultHeroBlockConfig returns the hero banner shipped with the library.
func DefaultHeroBlockConfig() HeroBlockConfig {
	return HeroBlockConfig{
		Heading:       "Transform Healthcare with Advanced Cell Therapy",
		BodyText:      "Discover cutting-edge cellular treatments that are revolutionizing patient care. Our innovative therapies offer new hope for challenging medical conditions.",
		CTAText:       "Learn More",
		CTAURL:        "#learn-more",
		ImageURL:      "https://via.placeholder.com/600x400",
		ImageAlt:      "Cell therapy illustration",
		ImagePosition: ImageRight,
		Theme:         theme.Cellcolabs,
	}
}

var heroBlockTemplate = newTemplate(HeroBlockID, `<section class="{{cls "heroBlock" .PositionClass}}" data-component="hero-block" data-theme="{{.Theme}}">
<div class="{{cls "container"}}">
<div class="{{cls "content"}}">
<div class="{{cls "textContent"}}">
<h1 class="{{cls "heading"}}" data-placeholder="heading">{{.Heading}}</h1>
<p class="{{cls "bodyText"}}" data-placeholder="body_text">{{.BodyText}}</p>
<div class="{{cls "ctaWrapper"}}">
<a class="{{cls "ctaButton"}}" href="{{.CTAURL}}" data-placeholder="cta">{{.CTAText}}</a>
</div>
</div>
<div class="{{cls "imageContent"}}">
<img class="{{cls "image"}}" src="{{.ImageURL}}" alt="{{.ImageAlt}}" data-placeholder="image">
</div>
</div>
</div>
</section>`)

// RenderHeroBlock renders the hero banner.
func RenderHeroBlock(cfg HeroBlockConfig) (string, error) {
	position := "imageRight"
	if cfg.ImagePosition == ImageLeft {
		position = "imageLeft"
	}
	data := struct {
		HeroBlockConfig
		PositionClass string
	}{cfg, position}
	return execute(heroBlockTemplate, data)
}

func heroBlockPlaceholders(cfg HeroBlockConfig) placeholder.Specs {
	return placeholder.Specs{
		{ID: "heading", Type: placeholder.Text, Label: "Heading", Default: cfg.Heading},
		{ID: "body_text", Type: placeholder.Text, Label: "Body text", Default: cfg.BodyText},
		{ID: "cta_text", Type: placeholder.Text, Label: "Button text", Default: cfg.CTAText},
		{ID: "cta_url", Type: placeholder.URL, Label: "Button link", Default: cfg.CTAURL},
		{ID: "image_url", Type: placeholder.Image, Label: "Image", Default: cfg.ImageURL},
		{ID: "image_alt", Type: placeholder.Text, Label: "Image alt text", Default: cfg.ImageAlt},
		choiceSpec("image_position", "Image position", string(cfg.ImagePosition), string(ImageLeft), string(ImageRight)),
		themeSpec(cfg.Theme),
	}
}

func heroBlockConfigFrom(values placeholder.Values) HeroBlockConfig {
	def := DefaultHeroBlockConfig()
	return HeroBlockConfig{
		Heading:       values.String("heading"),
		BodyText:      values.String("body_text"),
		CTAText:       values.String("cta_text"),
		CTAURL:        values.String("cta_url"),
		ImageURL:      values.String("image_url"),
		ImageAlt:      values.String("image_alt"),
		ImagePosition: ImagePosition(values.String("image_position")),
		Theme:         themeFrom(values, def.Theme),
	}
}

// HeroBlockDescriptor registers the hero banner as a live component.
func HeroBlockDescriptor() registry.Descriptor {
	return liveDescriptor(HeroBlockID, "Hero Block", "Heading, body text and call to action beside an image",
		heroBlockPlaceholders(DefaultHeroBlockConfig()),
		func(values placeholder.Values) (string, error) {
			return RenderHeroBlock(heroBlockConfigFrom(values))
		})
}
