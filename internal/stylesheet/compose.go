package stylesheet

import (
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/alexisbeaulieu97/fragments/internal/theme"
)

// Options tune Compose.
type Options struct {
	// Minify runs the composed stylesheet through esbuild's CSS minifier.
	Minify bool
}

// Compose builds the final fragment stylesheet: the namespaced rules of src
// preceded by the :root variable block of t. Leading @charset and @import
// statements stay ahead of the block. An empty source yields an empty
// stylesheet. Composing already composed output is a no-op.
func Compose(t theme.Theme, src, componentID string, opts Options) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}

	body := Namespace(src, componentID)
	if !strings.Contains(body, themeMarker) {
		header := namespacedMarker + componentID + " */\n"
		charset, imports, rules := splitPreamble(strings.TrimLeft(strings.TrimPrefix(body, header), "\n"))

		var b strings.Builder
		if charset != "" {
			b.WriteString(charset + "\n")
		}
		b.WriteString(header)
		if imports != "" {
			b.WriteString(imports + "\n")
		}
		b.WriteString(themeMarker + t.Name + " */\n" + t.RootBlock() + "\n" + strings.TrimLeft(rules, "\n"))
		body = b.String()
	}

	if !opts.Minify {
		return body, nil
	}
	return Minify(body)
}

// splitPreamble cuts the @charset rule and the @import statements opening a
// stylesheet from the rules that follow them. Comments between imports stay
// with the imports.
func splitPreamble(css string) (charset, imports, rules string) {
	start := skipSpace(css, 0)
	if hasAtKeyword(css[start:], "charset") {
		end := statementEnd(css, start)
		charset = css[start:end]
		start = end
	}

	end := start
scan:
	for i := start; i < len(css); {
		switch {
		case isSpace(css[i]):
			i++
		case strings.HasPrefix(css[i:], "/*"):
			i = skipComment(css, i)
		case hasAtKeyword(css[i:], "import"):
			i = statementEnd(css, i)
			end = i
		default:
			break scan
		}
	}
	if end == start {
		return charset, "", css[start:]
	}
	return charset, strings.TrimSpace(css[start:end]), css[end:]
}

func hasAtKeyword(s, name string) bool {
	n := len(name) + 1
	if len(s) < n || s[0] != '@' || !strings.EqualFold(s[1:n], name) {
		return false
	}
	return len(s) == n || !isIdentChar(s[n])
}

// statementEnd returns the index just past the semicolon ending the at-rule
// statement starting at i.
func statementEnd(s string, i int) int {
	for j := i; j < len(s); j++ {
		switch s[j] {
		case '"', '\'':
			j = skipString(s, j) - 1
		case '(':
			j = matchParen(s, j)
		case ';':
			return j + 1
		}
	}
	return len(s)
}

func skipSpace(s string, i int) int {
	for i < len(s) && isSpace(s[i]) {
		i++
	}
	return i
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

// Minify compresses CSS with esbuild, keeping the /*! marker comments.
func Minify(css string) (string, error) {
	result := api.Transform(css, api.TransformOptions{
		Loader:           api.LoaderCSS,
		MinifyWhitespace: true,
		MinifySyntax:     true,
		LegalComments:    api.LegalCommentsInline,
		Sourcefile:       "styles.css",
	})
	if len(result.Errors) > 0 {
		return "", fmt.Errorf("minify css: %s", formatMessages(result.Errors))
	}
	return string(result.Code), nil
}

// Check parses css with esbuild and returns its warnings. A syntax error is
// returned as an error.
func Check(css string) ([]string, error) {
	result := api.Transform(css, api.TransformOptions{
		Loader:     api.LoaderCSS,
		Sourcefile: "styles.css",
		LogLevel:   api.LogLevelSilent,
	})
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("invalid css: %s", formatMessages(result.Errors))
	}
	warnings := make([]string, 0, len(result.Warnings))
	for _, msg := range result.Warnings {
		warnings = append(warnings, formatMessage(msg))
	}
	return warnings, nil
}

func formatMessages(msgs []api.Message) string {
	parts := make([]string, 0, len(msgs))
	for _, msg := range msgs {
		parts = append(parts, formatMessage(msg))
	}
	return strings.Join(parts, "; ")
}

func formatMessage(msg api.Message) string {
	if msg.Location == nil {
		return msg.Text
	}
	return fmt.Sprintf("%s:%d:%d: %s", msg.Location.File, msg.Location.Line, msg.Location.Column, msg.Text)
}
