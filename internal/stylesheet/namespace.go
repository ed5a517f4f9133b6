// Package stylesheet scopes component stylesheets to their fragment and
// prepends the theme variable block.
package stylesheet

import (
	"regexp"
	"strings"
)

const (
	namespacedMarker = "/*! fragments:namespaced "
	themeMarker      = "/*! fragments:theme "
)

// Block kinds tracked while scanning.
const (
	blockRules  = iota // stylesheet top level, conditional group at-rules, style rules
	blockOpaque        // @keyframes, @font-face and other at-rules copied verbatim
)

var groupingAtRules = map[string]bool{
	"media":     true,
	"supports":  true,
	"container": true,
	"layer":     true,
	"document":  true,
	"scope":     true,
}

var atRuleName = regexp.MustCompile(`^@([A-Za-z-]+)`)

// ClassPrefix returns the prefix applied to local class names of componentID.
func ClassPrefix(componentID string) string {
	return componentID + "__"
}

// IsNamespaced reports whether src already carries the namespacing marker
// for componentID.
func IsNamespaced(src, componentID string) bool {
	return strings.Contains(src, namespacedMarker+componentID+" */")
}

// Namespace rewrites every local class selector `.name` in src into
// `.{componentID}__name` and unwraps `:global(...)` without prefixing its
// contents. Only selector preludes are rewritten: declarations, comments,
// strings and at-rule preludes pass through, and the bodies of at-rules such
// as @keyframes are copied verbatim. The output starts with a marker comment,
// and input that already carries it is returned unchanged.
func Namespace(src, componentID string) string {
	if IsNamespaced(src, componentID) {
		return src
	}

	var out strings.Builder
	out.Grow(len(src) + len(src)/4)
	out.WriteString(namespacedMarker + componentID + " */\n")

	stack := []int{blockRules}
	var segment strings.Builder
	flush := func() {
		out.WriteString(segment.String())
		segment.Reset()
	}

	for i := 0; i < len(src); {
		c := src[i]
		top := stack[len(stack)-1]

		switch {
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := skipComment(src, i)
			segment.WriteString(src[i:end])
			i = end
			continue
		case c == '"' || c == '\'':
			end := skipString(src, i)
			segment.WriteString(src[i:end])
			i = end
			continue
		}

		switch c {
		case '{':
			prelude := segment.String()
			segment.Reset()
			kind := blockRules
			if top == blockOpaque {
				kind = blockOpaque
				out.WriteString(prelude)
			} else if name, ok := atRule(prelude); ok {
				if !groupingAtRules[name] {
					kind = blockOpaque
				}
				out.WriteString(prelude)
			} else {
				out.WriteString(rewriteSelector(prelude, componentID))
			}
			out.WriteByte('{')
			stack = append(stack, kind)
		case '}':
			flush()
			out.WriteByte('}')
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		case ';':
			segment.WriteByte(';')
			flush()
		default:
			segment.WriteByte(c)
		}
		i++
	}
	flush()

	return out.String()
}

// atRule reports whether prelude (ignoring leading whitespace and comments)
// opens an at-rule, returning its lowercase name.
func atRule(prelude string) (string, bool) {
	trimmed := strings.TrimSpace(stripComments(prelude))
	match := atRuleName.FindStringSubmatch(trimmed)
	if match == nil {
		return "", false
	}
	return strings.ToLower(match[1]), true
}

func rewriteSelector(sel, componentID string) string {
	prefix := ClassPrefix(componentID)

	var b strings.Builder
	for i := 0; i < len(sel); {
		c := sel[i]
		switch {
		case c == '/' && i+1 < len(sel) && sel[i+1] == '*':
			end := skipComment(sel, i)
			b.WriteString(sel[i:end])
			i = end
		case c == '"' || c == '\'':
			end := skipString(sel, i)
			b.WriteString(sel[i:end])
			i = end
		case c == '[':
			end := skipBracket(sel, i)
			b.WriteString(sel[i:end])
			i = end
		case c == '\\' && i+1 < len(sel):
			b.WriteString(sel[i : i+2])
			i += 2
		case strings.HasPrefix(sel[i:], ":global("):
			open := i + len(":global")
			end := matchParen(sel, open)
			b.WriteString(sel[open+1 : end])
			i = end + 1
		case c == '.' && i+1 < len(sel) && isIdentStart(sel[i+1:]):
			end := i + 1
			for end < len(sel) && isIdentChar(sel[end]) {
				end++
			}
			name := sel[i+1 : end]
			b.WriteByte('.')
			if !strings.HasPrefix(name, prefix) {
				b.WriteString(prefix)
			}
			b.WriteString(name)
			i = end
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

func isIdentStart(s string) bool {
	c := s[0]
	if c == '-' {
		return len(s) > 1 && (isLetter(s[1]) || s[1] == '_' || s[1] == '-')
	}
	return isLetter(c) || c == '_' || c >= 0x80
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_' || c == '-' || c >= 0x80
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// skipComment returns the index just past the comment opening at i.
func skipComment(s string, i int) int {
	end := strings.Index(s[i+2:], "*/")
	if end < 0 {
		return len(s)
	}
	return i + 2 + end + 2
}

// skipString returns the index just past the quoted string opening at i.
func skipString(s string, i int) int {
	quote := s[i]
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '\\':
			j++
		case quote, '\n':
			return j + 1
		}
	}
	return len(s)
}

func skipBracket(s string, i int) int {
	for j := i + 1; j < len(s); j++ {
		switch s[j] {
		case '"', '\'':
			j = skipString(s, j) - 1
		case ']':
			return j + 1
		}
	}
	return len(s)
}

// matchParen returns the index of the parenthesis closing the one at open.
func matchParen(s string, open int) int {
	depth := 0
	for j := open; j < len(s); j++ {
		switch s[j] {
		case '"', '\'':
			j = skipString(s, j) - 1
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return len(s) - 1
}

func stripComments(s string) string {
	if !strings.Contains(s, "/*") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		if s[i] == '/' && i+1 < len(s) && s[i+1] == '*' {
			i = skipComment(s, i)
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}
