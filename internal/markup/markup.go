// Package markup parses rendered fragment markup, cleans it up and prints it
// in a canonical form so output is stable across runs.
package markup

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const indentUnit = "  "

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true, "hr": true, "img": true,
	"input": true, "link": true, "meta": true, "source": true, "track": true, "wbr": true,
}

var rawTextElements = map[string]bool{
	"script": true, "style": true,
}

// preformattedElements keep their content byte for byte apart from
// attribute order.
var preformattedElements = map[string]bool{
	"pre": true, "textarea": true,
}

var phrasingElements = map[string]bool{
	"a": true, "abbr": true, "b": true, "bdi": true, "bdo": true, "br": true, "cite": true,
	"code": true, "data": true, "del": true, "dfn": true, "em": true, "i": true, "img": true,
	"ins": true, "kbd": true, "label": true, "mark": true, "q": true, "s": true, "samp": true,
	"small": true, "span": true, "strong": true, "sub": true, "sup": true, "time": true,
	"u": true, "var": true, "wbr": true,
}

// booleanAttributes keep an empty value through cleanup.
var booleanAttributes = map[string]bool{
	"allowfullscreen": true, "async": true, "autofocus": true, "checked": true, "controls": true,
	"defer": true, "disabled": true, "hidden": true, "loop": true, "multiple": true, "muted": true,
	"novalidate": true, "open": true, "playsinline": true, "readonly": true, "required": true,
	"selected": true,
}

// Check verifies that src is balanced: every non-void element that is opened
// is closed in order.
func Check(src string) error {
	z := html.NewTokenizer(strings.NewReader(src))
	var stack []string
	line := 1
	for {
		tt := z.Next()
		raw := z.Raw()
		switch tt {
		case html.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				if len(stack) > 0 {
					return fmt.Errorf("unclosed <%s> at end of markup", stack[len(stack)-1])
				}
				return nil
			}
			return fmt.Errorf("line %d: %w", line, z.Err())
		case html.StartTagToken:
			name, _ := z.TagName()
			if !voidElements[string(name)] {
				stack = append(stack, string(name))
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if voidElements[tag] {
				break
			}
			if len(stack) == 0 {
				return fmt.Errorf("line %d: unexpected </%s>", line, tag)
			}
			if top := stack[len(stack)-1]; top != tag {
				return fmt.Errorf("line %d: </%s> closes <%s>", line, tag, top)
			}
			stack = stack[:len(stack)-1]
		}
		line += strings.Count(string(raw), "\n")
	}
}

// Format checks, parses, cleans and pretty-prints an HTML fragment. Cleanup
// drops inline event handlers and empty attributes (except alt and boolean
// attributes). Elements are printed one per line with two-space indentation,
// attributes sorted by name and void elements never self-closed. Text mixed
// with phrasing elements stays on one line, and pre and textarea content is
// kept verbatim.
func Format(src string) (string, error) {
	if err := Check(src); err != nil {
		return "", err
	}

	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(src), context)
	if err != nil {
		return "", fmt.Errorf("parse markup: %w", err)
	}

	var b strings.Builder
	for _, n := range nodes {
		cleanup(n)
		printNode(&b, n, 0)
	}
	return b.String(), nil
}

func cleanup(n *html.Node) {
	if n.Type == html.ElementNode {
		kept := n.Attr[:0]
		for _, attr := range n.Attr {
			key := strings.ToLower(attr.Key)
			if strings.HasPrefix(key, "on") {
				continue
			}
			if strings.TrimSpace(attr.Val) == "" && key != "alt" && !booleanAttributes[key] {
				continue
			}
			kept = append(kept, attr)
		}
		n.Attr = kept
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		cleanup(c)
	}
}

func printNode(b *strings.Builder, n *html.Node, depth int) {
	indent := strings.Repeat(indentUnit, depth)
	switch n.Type {
	case html.TextNode:
		text := collapseSpace(n.Data)
		if text == "" {
			return
		}
		b.WriteString(indent + escapeText(text) + "\n")
	case html.CommentNode:
		b.WriteString(indent + "<!--" + n.Data + "-->\n")
	case html.ElementNode:
		open := openTag(n)
		switch {
		case voidElements[n.Data]:
			b.WriteString(indent + open + "\n")
		case rawTextElements[n.Data]:
			b.WriteString(indent + open + rawText(n) + "</" + n.Data + ">\n")
		case preformattedElements[n.Data]:
			b.WriteString(indent + open + preformatted(n) + "</" + n.Data + ">\n")
		case isInline(n):
			var line strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				writeInline(&line, c)
			}
			b.WriteString(indent + open + strings.TrimSpace(line.String()) + "</" + n.Data + ">\n")
		default:
			b.WriteString(indent + open + "\n")
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				printNode(b, c, depth+1)
			}
			b.WriteString(indent + "</" + n.Data + ">\n")
		}
	case html.DocumentNode:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			printNode(b, c, depth)
		}
	}
}

// isInline reports whether the content of n fits on one line: it is empty,
// text only, or text mixed with phrasing elements. Elements holding nothing
// but other elements are laid out as blocks.
func isInline(n *html.Node) bool {
	hasText := false
	hasElement := false
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if strings.TrimSpace(c.Data) != "" {
				hasText = true
			}
		case html.CommentNode:
		case html.ElementNode:
			if !isPhrasing(c) {
				return false
			}
			hasElement = true
		default:
			return false
		}
	}
	return hasText || !hasElement
}

func isPhrasing(n *html.Node) bool {
	if !phrasingElements[n.Data] {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && !isPhrasing(c) {
			return false
		}
	}
	return true
}

// writeInline prints n without line breaks. Whitespace runs collapse to one
// space but are never added or dropped between siblings.
func writeInline(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(escapeText(squeezeSpace(n.Data)))
	case html.CommentNode:
		b.WriteString("<!--" + n.Data + "-->")
	case html.ElementNode:
		b.WriteString(openTag(n))
		if voidElements[n.Data] {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			writeInline(b, c)
		}
		b.WriteString("</" + n.Data + ">")
	}
}

// preformatted renders the children of a pre or textarea element with their
// whitespace intact. The parser drops a newline directly after the start tag,
// so a leading newline in the content is doubled to survive a reparse.
func preformatted(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return ""
		}
	}
	out := b.String()
	if strings.HasPrefix(out, "\n") {
		out = "\n" + out
	}
	return out
}

func rawText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func openTag(n *html.Node) string {
	attrs := slices.Clone(n.Attr)
	slices.SortStableFunc(attrs, func(a, b html.Attribute) int {
		return strings.Compare(a.Key, b.Key)
	})

	var b strings.Builder
	b.WriteString("<" + n.Data)
	for _, attr := range attrs {
		b.WriteString(" " + attr.Key)
		if attr.Val == "" && booleanAttributes[attr.Key] {
			continue
		}
		b.WriteString(`="` + escapeAttr(attr.Val) + `"`)
	}
	b.WriteString(">")
	return b.String()
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// squeezeSpace is collapseSpace without trimming the ends.
func squeezeSpace(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	if space {
		b.WriteByte(' ')
	}
	return b.String()
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;")
)

func escapeText(s string) string { return textEscaper.Replace(s) }

func escapeAttr(s string) string { return attrEscaper.Replace(s) }
