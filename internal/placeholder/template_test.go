package placeholder

import (
	"strings"
	"testing"

	fragerrors "github.com/alexisbeaulieu97/fragments/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func menuSpecs() Specs {
	return Specs{
		{ID: "title", Type: Text, Default: "Menu"},
		{ID: "items", Type: Repeater, Fields: Specs{
			{ID: "label", Type: Text, Default: "Item"},
			{ID: "href", Type: URL, Default: "#"},
		}},
	}
}

func TestParseCollectsTokensWithScope(t *testing.T) {
	t.Parallel()

	tmpl, err := Parse("menu", "<h2>{{title}}</h2>\n<ul>{{#items}}<li><a href=\"{{ href }}\">{{label}}</a></li>{{/items}}</ul>")
	require.NoError(t, err)

	tokens := tmpl.Tokens()
	require.Len(t, tokens, 4)
	assert.Equal(t, Token{Name: "title", Line: 1}, tokens[0])
	assert.Equal(t, Token{Name: "items", Section: true, Line: 2}, tokens[1])
	assert.Equal(t, "href", tokens[2].Name)
	assert.Equal(t, []string{"items"}, tokens[2].Scope)
	assert.Equal(t, "label", tokens[3].Name)
}

func TestParseRejectsUnbalancedSections(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"unclosed":   "{{#items}}<li></li>",
		"stray":      "<li></li>{{/items}}",
		"mismatched": "{{#items}}{{#links}}{{/items}}{{/links}}",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(name, src)
			var parseErr *fragerrors.ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, name, parseErr.Path)
		})
	}
}

func TestCheckReportsUndeclaredToken(t *testing.T) {
	t.Parallel()

	tmpl := MustParse("menu", "<h2>{{title}}</h2><p>{{subtitle}}</p>")
	err := tmpl.Check(menuSpecs())
	require.ErrorIs(t, err, fragerrors.ErrUnknownPlaceholder)

	var unknownErr *fragerrors.UnknownPlaceholderError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "subtitle", unknownErr.Placeholder)
}

func TestCheckScopesRepeaterFields(t *testing.T) {
	t.Parallel()

	// label is only declared inside items.
	err := MustParse("menu", "{{label}}").Check(menuSpecs())
	require.ErrorIs(t, err, fragerrors.ErrUnknownPlaceholder)

	// title is not visible inside the items block.
	err = MustParse("menu", "{{#items}}{{title}}{{/items}}").Check(menuSpecs())
	require.ErrorIs(t, err, fragerrors.ErrUnknownPlaceholder)

	require.NoError(t, MustParse("menu", "{{title}}{{#items}}{{label}}{{/items}}").Check(menuSpecs()))
}

func TestCheckRejectsTypeMisuse(t *testing.T) {
	t.Parallel()

	var validationErr *fragerrors.ValidationError
	require.ErrorAs(t, MustParse("menu", "{{items}}").Check(menuSpecs()), &validationErr)
	require.ErrorAs(t, MustParse("menu", "{{#title}}x{{/title}}").Check(menuSpecs()), &validationErr)
}

func TestExecuteExpandsRepeaterPerItem(t *testing.T) {
	t.Parallel()

	tmpl := MustParse("menu", "{{#items}}<a href=\"{{href}}\">{{label}}</a>{{/items}}")
	values, err := menuSpecs().Bind(map[string]any{
		"items": []any{
			map[string]any{"label": "One", "href": "/one"},
			map[string]any{"label": "Two"},
		},
	})
	require.NoError(t, err)

	out, err := tmpl.Execute(menuSpecs(), values)
	require.NoError(t, err)
	assert.Equal(t, `<a href="/one">One</a><a href="#">Two</a>`, out)
}

func TestExecuteEmptyRepeaterEmitsNothing(t *testing.T) {
	t.Parallel()

	tmpl := MustParse("menu", "<ul>{{#items}}<li>{{label}}</li>{{/items}}</ul>")
	out, err := tmpl.Execute(menuSpecs(), menuSpecs().Defaults())
	require.NoError(t, err)
	assert.Equal(t, "<ul></ul>", out)
}

func TestExecuteNestedRepeaters(t *testing.T) {
	t.Parallel()

	specs := Specs{
		{ID: "sections", Type: Repeater, Fields: Specs{
			{ID: "title", Type: Text},
			{ID: "links", Type: Repeater, Fields: Specs{{ID: "label", Type: Text}}},
		}},
	}
	values, err := specs.Bind(map[string]any{
		"sections": []any{
			map[string]any{"title": "A", "links": []any{map[string]any{"label": "a1"}, map[string]any{"label": "a2"}}},
			map[string]any{"title": "B"},
		},
	})
	require.NoError(t, err)

	tmpl := MustParse("footer", "{{#sections}}[{{title}}:{{#links}}{{label}},{{/links}}]{{/sections}}")
	require.NoError(t, tmpl.Check(specs))
	out, err := tmpl.Execute(specs, values)
	require.NoError(t, err)
	assert.Equal(t, "[A:a1,a2,][B:]", out)
}

func TestExecuteEscapesExceptRichText(t *testing.T) {
	t.Parallel()

	specs := Specs{
		{ID: "plain", Type: Text},
		{ID: "rich", Type: RichText},
		{ID: "flag", Type: Boolean},
	}
	values := Values{"plain": `<b>"x"</b>`, "rich": "<b>x</b>", "flag": true}

	out, err := MustParse("t", "{{plain}}|{{rich}}|{{flag}}").Execute(specs, values)
	require.NoError(t, err)
	assert.Equal(t, "&lt;b&gt;&#34;x&#34;&lt;/b&gt;|<b>x</b>|true", out)
}

func TestSourceIsPreserved(t *testing.T) {
	t.Parallel()

	src := "<p>{{title}}</p>"
	tmpl := MustParse("t", src)
	assert.Equal(t, src, tmpl.Source())
	assert.Equal(t, "t", tmpl.Name())
	assert.True(t, strings.Contains(tmpl.Source(), "{{title}}"))
}
