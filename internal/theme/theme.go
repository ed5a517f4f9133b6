// Package theme loads the design-token sets shipped with the component
// library and projects them onto CSS custom properties.
package theme

import (
	"fmt"
	"strings"
)

// Name selects one of the shipped themes.
type Name string

const (
	Cellcolabs         Name = "cellcolabs"
	CellcolabsClinical Name = "cellcolabsclinical"
)

// Names lists every theme name in a stable order.
func Names() []Name {
	return []Name{Cellcolabs, CellcolabsClinical}
}

// Strings returns Names as plain strings.
func Strings() []string {
	names := Names()
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = string(name)
	}
	return out
}

// ParseName validates raw as a theme name.
func ParseName(raw string) (Name, error) {
	candidate := Name(strings.ToLower(strings.TrimSpace(raw)))
	for _, name := range Names() {
		if candidate == name {
			return name, nil
		}
	}
	return "", fmt.Errorf("unknown theme %q (expected one of %s)", raw, strings.Join(Strings(), ", "))
}

// Theme is the canonical nested token schema.
type Theme struct {
	Name        string      `json:"name" validate:"required"`
	Colors      Colors      `json:"colors"`
	Typography  Typography  `json:"typography"`
	Spacing     Spacing     `json:"spacing"`
	Breakpoints Breakpoints `json:"breakpoints"`
	Radius      Radius      `json:"borderRadius"`
	Shadows     Shadows     `json:"shadows"`
}

type Colors struct {
	Primary    string `json:"primary" validate:"required"`
	Secondary  string `json:"secondary" validate:"required"`
	Accent     string `json:"accent"`
	Text       struct {
		Primary   string `json:"primary" validate:"required"`
		Secondary string `json:"secondary" validate:"required"`
		Inverse   string `json:"inverse" validate:"required"`
	} `json:"text"`
	Background struct {
		Primary   string `json:"primary" validate:"required"`
		Secondary string `json:"secondary" validate:"required"`
		Section   string `json:"section" validate:"required"`
		Dark      string `json:"dark"`
	} `json:"background"`
	Border struct {
		Light  string `json:"light"`
		Medium string `json:"medium"`
	} `json:"border"`
}

type FontSizes struct {
	H1    string `json:"h1"`
	H2    string `json:"h2"`
	H3    string `json:"h3"`
	Body  string `json:"body"`
	Small string `json:"small"`
}

type Typography struct {
	FontFamily struct {
		Heading string `json:"heading" validate:"required"`
		Body    string `json:"body" validate:"required"`
	} `json:"fontFamily"`
	FontSize struct {
		Mobile  FontSizes `json:"mobile"`
		Desktop FontSizes `json:"desktop"`
	} `json:"fontSize"`
	FontWeight struct {
		Regular string `json:"regular" validate:"required"`
		Medium  string `json:"medium" validate:"required"`
		Bold    string `json:"bold" validate:"required"`
	} `json:"fontWeight"`
	LineHeight struct {
		Tight   string `json:"tight"`
		Normal  string `json:"normal"`
		Relaxed string `json:"relaxed"`
	} `json:"lineHeight"`
}

type Spacing struct {
	Unit             string `json:"unit"`
	XS               string `json:"xs" validate:"required"`
	SM               string `json:"sm" validate:"required"`
	MD               string `json:"md" validate:"required"`
	LG               string `json:"lg" validate:"required"`
	XL               string `json:"xl" validate:"required"`
	XXL              string `json:"xxl" validate:"required"`
	ContainerPadding struct {
		Mobile  string `json:"mobile"`
		Tablet  string `json:"tablet"`
		Desktop string `json:"desktop"`
	} `json:"containerPadding"`
}

type Breakpoints struct {
	Mobile  string `json:"mobile"`
	Tablet  string `json:"tablet" validate:"required"`
	Desktop string `json:"desktop" validate:"required"`
	Wide    string `json:"wide" validate:"required"`
}

type Radius struct {
	SM   string `json:"sm" validate:"required"`
	MD   string `json:"md" validate:"required"`
	LG   string `json:"lg" validate:"required"`
	Full string `json:"full"`
}

type Shadows struct {
	SM string `json:"sm" validate:"required"`
	MD string `json:"md" validate:"required"`
	LG string `json:"lg" validate:"required"`
}
