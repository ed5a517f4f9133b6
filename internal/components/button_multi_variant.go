package components

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/alexisbeaulieu97/fragments/internal/placeholder"
	"github.com/alexisbeaulieu97/fragments/internal/registry"
	"github.com/alexisbeaulieu97/fragments/internal/theme"
)

// ButtonMultiVariantID is the component id of the configurable button.
const ButtonMultiVariantID = "button-multi-variant"

// Button option values shared by the live and static button components.
var (
	ButtonStyles     = []string{"primary", "secondary", "outline", "outline-white"}
	ButtonSizes      = []string{"small", "default", "large"}
	ButtonAlignments = []string{"left", "center", "right"}
)

// ButtonConfig configures a call-to-action button.
type ButtonConfig struct {
	Text         string
	URL          string
	Style        string
	Size         string
	Alignment    string
	OpenInNewTab bool
	Theme        theme.Name
}

// DefaultButtonConfig returns the button shipped with the library.
func DefaultButtonConfig() ButtonConfig {
	return ButtonConfig{
		Text:      "Click here",
		URL:       "#",
		Style:     "primary",
		Size:      "default",
		Alignment: "left",
		Theme:     theme.CellcolabsClinical,
	}
}

var buttonMultiVariantTemplate = newTemplate(ButtonMultiVariantID, `<div class="{{cls "buttonWrapper" .AlignClass}}" data-component="button-multi-variant" data-theme="{{.Theme}}">
<a class="{{cls "button" .StyleClass .SizeClass}}" href="{{.URL}}" data-placeholder="text" {{if .OpenInNewTab}}target="_blank" rel="noopener noreferrer"{{else}}target="_self"{{end}}>{{.Text}}</a>
</div>`)

// variantClass turns an option such as "outline-white" into the class
// suffix "OutlineWhite".
func variantClass(option string) string {
	caser := cases.Title(language.Und)
	var b strings.Builder
	for part := range strings.SplitSeq(option, "-") {
		b.WriteString(caser.String(part))
	}
	return b.String()
}

// RenderButtonMultiVariant renders the button. The default size adds no
// size class.
func RenderButtonMultiVariant(cfg ButtonConfig) (string, error) {
	size := ""
	if cfg.Size != "" && cfg.Size != "default" {
		size = "button" + variantClass(cfg.Size)
	}
	alignment := cfg.Alignment
	if alignment == "" {
		alignment = "left"
	}
	style := cfg.Style
	if style == "" {
		style = "primary"
	}
	data := struct {
		ButtonConfig
		AlignClass string
		StyleClass string
		SizeClass  string
	}{cfg, "align" + variantClass(alignment), "button" + variantClass(style), size}
	return execute(buttonMultiVariantTemplate, data)
}

// ButtonPlaceholders declares the button placeholders with cfg as defaults.
func ButtonPlaceholders(cfg ButtonConfig) placeholder.Specs {
	return placeholder.Specs{
		{ID: "text", Type: placeholder.Text, Label: "Button text", Default: cfg.Text},
		{ID: "url", Type: placeholder.URL, Label: "Button URL", Default: cfg.URL},
		choiceSpec("style", "Button style", cfg.Style, ButtonStyles...),
		choiceSpec("size", "Button size", cfg.Size, ButtonSizes...),
		choiceSpec("alignment", "Button alignment", cfg.Alignment, ButtonAlignments...),
		{ID: "open_in_new_tab", Type: placeholder.Boolean, Label: "Open in new tab", Default: cfg.OpenInNewTab},
		themeSpec(cfg.Theme),
	}
}

func buttonConfigFrom(values placeholder.Values) ButtonConfig {
	def := DefaultButtonConfig()
	return ButtonConfig{
		Text:         values.String("text"),
		URL:          values.String("url"),
		Style:        values.String("style"),
		Size:         values.String("size"),
		Alignment:    values.String("alignment"),
		OpenInNewTab: values.Bool("open_in_new_tab"),
		Theme:        themeFrom(values, def.Theme),
	}
}

// ButtonMultiVariantDescriptor registers the configurable button as a live
// component.
func ButtonMultiVariantDescriptor() registry.Descriptor {
	return liveDescriptor(ButtonMultiVariantID, "Button Multi Variant", "Call-to-action button with style, size and alignment variants",
		ButtonPlaceholders(DefaultButtonConfig()),
		func(values placeholder.Values) (string, error) {
			return RenderButtonMultiVariant(buttonConfigFrom(values))
		})
}
