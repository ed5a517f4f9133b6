package placeholder

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	fragerrors "github.com/alexisbeaulieu97/fragments/pkg/errors"
)

var tokenPattern = regexp.MustCompile(`\{\{\s*([#/]?)\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Token is one placeholder reference found in a template.
type Token struct {
	Name string
	// Section is true for {{#name}} blocks.
	Section bool
	// Scope lists the enclosing section names, outermost first.
	Scope []string
	Line  int
}

// Template is a parsed fragment template. Templates are immutable after Parse
// and safe to execute repeatedly.
type Template struct {
	name   string
	source string
	nodes  []node
}

type node interface{ isNode() }

type textNode string

type fieldNode struct {
	name string
	line int
}

type sectionNode struct {
	name     string
	line     int
	children []node
}

func (textNode) isNode()    {}
func (fieldNode) isNode()   {}
func (sectionNode) isNode() {}

// Parse compiles src. name identifies the template in error messages.
func Parse(name, src string) (*Template, error) {
	type frame struct {
		section *sectionNode
		nodes   []node
	}

	stack := []*frame{{}}
	cursor := 0
	for _, loc := range tokenPattern.FindAllStringSubmatchIndex(src, -1) {
		top := stack[len(stack)-1]
		if loc[0] > cursor {
			top.nodes = append(top.nodes, textNode(src[cursor:loc[0]]))
		}
		cursor = loc[1]

		line := 1 + strings.Count(src[:loc[0]], "\n")
		sigil := src[loc[2]:loc[3]]
		ident := src[loc[4]:loc[5]]

		switch sigil {
		case "#":
			stack = append(stack, &frame{section: &sectionNode{name: ident, line: line}})
		case "/":
			if top.section == nil {
				return nil, fragerrors.NewParseError(name, line, fmt.Errorf("closing {{/%s}} without an open section", ident))
			}
			if top.section.name != ident {
				return nil, fragerrors.NewParseError(name, line, fmt.Errorf("closing {{/%s}} does not match open section %q", ident, top.section.name))
			}
			top.section.children = top.nodes
			stack = stack[:len(stack)-1]
			parent := stack[len(stack)-1]
			parent.nodes = append(parent.nodes, *top.section)
		default:
			top.nodes = append(top.nodes, fieldNode{name: ident, line: line})
		}
	}

	if len(stack) > 1 {
		open := stack[len(stack)-1].section
		return nil, fragerrors.NewParseError(name, open.line, fmt.Errorf("section %q is never closed", open.name))
	}
	if cursor < len(src) {
		stack[0].nodes = append(stack[0].nodes, textNode(src[cursor:]))
	}

	return &Template{name: name, source: src, nodes: stack[0].nodes}, nil
}

// MustParse is Parse that panics on error, for statically declared templates.
func MustParse(name, src string) *Template {
	tmpl, err := Parse(name, src)
	if err != nil {
		panic(err)
	}
	return tmpl
}

// Name returns the template name.
func (t *Template) Name() string { return t.name }

// Source returns the unparsed template text.
func (t *Template) Source() string { return t.source }

// Tokens lists every placeholder reference in document order.
func (t *Template) Tokens() []Token {
	var tokens []Token
	var walk func(nodes []node, scope []string)
	walk = func(nodes []node, scope []string) {
		for _, n := range nodes {
			switch typed := n.(type) {
			case fieldNode:
				tokens = append(tokens, Token{Name: typed.name, Scope: scope, Line: typed.line})
			case sectionNode:
				tokens = append(tokens, Token{Name: typed.name, Section: true, Scope: scope, Line: typed.line})
				walk(typed.children, append(append([]string(nil), scope...), typed.name))
			}
		}
	}
	walk(t.nodes, nil)
	return tokens
}

// Check resolves every token against specs. Inside a section only the
// repeater's own fields are in scope. Referenced-but-undeclared tokens yield
// an UnknownPlaceholderError; unused specs are allowed.
func (t *Template) Check(specs Specs) error {
	return checkNodes(t.name, t.nodes, specs)
}

func checkNodes(name string, nodes []node, specs Specs) error {
	for _, n := range nodes {
		switch typed := n.(type) {
		case fieldNode:
			spec, ok := specs.Lookup(typed.name)
			if !ok {
				return fragerrors.NewUnknownPlaceholderError("", typed.name)
			}
			if spec.Type == Repeater {
				return fragerrors.NewValidationError(typed.name,
					fmt.Sprintf("%s:%d: repeater must be used as a {{#%s}} section", name, typed.line, typed.name), nil)
			}
		case sectionNode:
			spec, ok := specs.Lookup(typed.name)
			if !ok {
				return fragerrors.NewUnknownPlaceholderError("", typed.name)
			}
			if spec.Type != Repeater {
				return fragerrors.NewValidationError(typed.name,
					fmt.Sprintf("%s:%d: section over non-repeater placeholder of type %s", name, typed.line, spec.Type), nil)
			}
			if err := checkNodes(name, typed.children, spec.Fields); err != nil {
				return err
			}
		}
	}
	return nil
}

// Execute renders the template against values. Strings are HTML-escaped
// except for richtext placeholders, which are emitted verbatim. Each section
// emits one copy of its body per bound item.
func (t *Template) Execute(specs Specs, values Values) (string, error) {
	var b strings.Builder
	if err := execNodes(&b, t.nodes, specs, values); err != nil {
		return "", err
	}
	return b.String(), nil
}

func execNodes(b *strings.Builder, nodes []node, specs Specs, values Values) error {
	for _, n := range nodes {
		switch typed := n.(type) {
		case textNode:
			b.WriteString(string(typed))
		case fieldNode:
			spec, ok := specs.Lookup(typed.name)
			if !ok {
				return fragerrors.NewUnknownPlaceholderError("", typed.name)
			}
			b.WriteString(formatValue(spec, values[typed.name]))
		case sectionNode:
			spec, ok := specs.Lookup(typed.name)
			if !ok || spec.Type != Repeater {
				return fragerrors.NewUnknownPlaceholderError("", typed.name)
			}
			for _, item := range values.Items(typed.name) {
				if err := execNodes(b, typed.children, spec.Fields, item); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func formatValue(spec Spec, value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(typed)
	case string:
		if spec.Type == RichText {
			return typed
		}
		return html.EscapeString(typed)
	default:
		return html.EscapeString(fmt.Sprint(typed))
	}
}
