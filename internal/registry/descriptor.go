package registry

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alexisbeaulieu97/fragments/internal/placeholder"
)

var componentIDPattern = regexp.MustCompile(`^[a-z][a-z0-9]*(?:-[a-z0-9]+)*$`)

// Strategy names how a component's markup is obtained.
type Strategy string

const (
	// Live components are rendered by a Go function.
	Live Strategy = "live"
	// Static components are expanded from a placeholder template.
	Static Strategy = "static"
)

// RenderFunc renders a live component from fully bound values.
type RenderFunc func(values placeholder.Values) (string, error)

// Descriptor declares one component of the library. Exactly one of Render and
// Template is set.
type Descriptor struct {
	ID           string
	Name         string
	Description  string
	Render       RenderFunc
	Template     *placeholder.Template
	Stylesheet   string
	Placeholders placeholder.Specs
}

// Strategy reports whether the component is live or static.
func (d Descriptor) Strategy() Strategy {
	if d.Template != nil {
		return Static
	}
	return Live
}

// ValidComponentID reports whether id is usable as a component id and
// output directory name.
func ValidComponentID(id string) bool {
	return componentIDPattern.MatchString(id)
}

func (d Descriptor) checkShape() error {
	if !ValidComponentID(d.ID) {
		return fmt.Errorf("invalid component id %q (expected lowercase kebab-case)", d.ID)
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("component '%s' requires a Name", d.ID)
	}
	switch {
	case d.Render == nil && d.Template == nil:
		return fmt.Errorf("component '%s' has neither a render function nor a template", d.ID)
	case d.Render != nil && d.Template != nil:
		return fmt.Errorf("component '%s' declares both a render function and a template", d.ID)
	}
	return nil
}
