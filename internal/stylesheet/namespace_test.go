package stylesheet

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/fragments/internal/theme"
)

const navigationCSS = `.navigation { display: flex; }
.menu, .menuItem:hover > a { color: var(--color-primary); }
:global(.is-open) .menu { display: block; }
@media (min-width: 768px) { .menu { gap: 8px; } }
@keyframes fade { from { opacity: 0; } to { opacity: 1; } }
/* .comment { } */
a[href$=".pdf"] { content: ".x"; }`

func TestNamespacePrefixesLocalClasses(t *testing.T) {
	t.Parallel()

	got := Namespace(navigationCSS, "navigation")

	want := `/*! fragments:namespaced navigation */
.navigation__navigation { display: flex; }
.navigation__menu, .navigation__menuItem:hover > a { color: var(--color-primary); }
.is-open .navigation__menu { display: block; }
@media (min-width: 768px) { .navigation__menu { gap: 8px; } }
@keyframes fade { from { opacity: 0; } to { opacity: 1; } }
/* .comment { } */
a[href$=".pdf"] { content: ".x"; }`
	assert.Equal(t, want, got)
}

func TestNamespaceIsIdempotent(t *testing.T) {
	t.Parallel()

	once := Namespace(navigationCSS, "navigation")
	twice := Namespace(once, "navigation")
	assert.Equal(t, once, twice)
	assert.True(t, IsNamespaced(once, "navigation"))
	assert.False(t, IsNamespaced(once, "footer"))
}

func TestNamespaceSkipsAlreadyPrefixedClasses(t *testing.T) {
	t.Parallel()

	got := Namespace(".footer__link, .link { color: red; }", "footer")
	assert.True(t, strings.HasSuffix(got, ".footer__link, .footer__link { color: red; }"))
}

func TestNamespaceHandlesNestedRules(t *testing.T) {
	t.Parallel()

	got := Namespace(".card { color: red; &:hover .title { color: blue; } }", "grid")
	assert.True(t, strings.HasSuffix(got, ".grid__card { color: red; &:hover .grid__title { color: blue; } }"))
}

func TestNamespaceLeavesDeclarationsAlone(t *testing.T) {
	t.Parallel()

	src := ".hero { margin: .5rem; background: url(\"img/a.b.png\"); font: 1.25em/1.5 var(--font-body); }"
	got := Namespace(src, "hero-block")
	assert.True(t, strings.HasSuffix(got, ".hero-block__hero { margin: .5rem; background: url(\"img/a.b.png\"); font: 1.25em/1.5 var(--font-body); }"))
}

func TestNamespaceUnwrapsNestedGlobal(t *testing.T) {
	t.Parallel()

	got := Namespace(".wrap :global(.cms-row .col) > .inner {}", "why-us-section")
	assert.True(t, strings.HasSuffix(got, ".why-us-section__wrap .cms-row .col > .why-us-section__inner {}"))
}

func TestComposePrependsThemeBlock(t *testing.T) {
	t.Parallel()

	th, err := theme.MustLoadBuiltin().Get(theme.Cellcolabs)
	require.NoError(t, err)

	out, err := Compose(th, ".a { color: red; }", "button", Options{})
	require.NoError(t, err)

	want := "/*! fragments:namespaced button */\n" +
		"/*! fragments:theme cellcolabs */\n" +
		th.RootBlock() + "\n" +
		".button__a { color: red; }"
	assert.Equal(t, want, out)

	again, err := Compose(th, out, "button", Options{})
	require.NoError(t, err)
	assert.Equal(t, out, again)
	assert.Equal(t, 1, strings.Count(again, ":root {"))
}

func TestComposeKeepsCharsetAndImportsFirst(t *testing.T) {
	t.Parallel()

	th, err := theme.MustLoadBuiltin().Get(theme.Cellcolabs)
	require.NoError(t, err)

	src := "@charset \"utf-8\";\n@import url(\"fonts.css?a=1;b=2\");\n/* base */\n@import 'grid.css';\n.a { color: red; }\n"
	out, err := Compose(th, src, "hero-block", Options{})
	require.NoError(t, err)

	want := "@charset \"utf-8\";\n" +
		"/*! fragments:namespaced hero-block */\n" +
		"@import url(\"fonts.css?a=1;b=2\");\n/* base */\n@import 'grid.css';\n" +
		"/*! fragments:theme cellcolabs */\n" +
		th.RootBlock() + "\n" +
		".hero-block__a { color: red; }\n"
	assert.Equal(t, want, out)

	warnings, err := Check(out)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	again, err := Compose(th, out, "hero-block", Options{})
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestComposeEmptySourceYieldsEmptyStylesheet(t *testing.T) {
	t.Parallel()

	th, err := theme.MustLoadBuiltin().Get(theme.Cellcolabs)
	require.NoError(t, err)

	out, err := Compose(th, "  \n", "footer", Options{Minify: true})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestComposeMinify(t *testing.T) {
	t.Parallel()

	th, err := theme.MustLoadBuiltin().Get(theme.Cellcolabs)
	require.NoError(t, err)

	plain, err := Compose(th, ".a {\n  color: red;\n}\n", "button", Options{})
	require.NoError(t, err)
	minified, err := Compose(th, ".a {\n  color: red;\n}\n", "button", Options{Minify: true})
	require.NoError(t, err)

	assert.Contains(t, minified, ".button__a{color:red}")
	assert.Less(t, len(minified), len(plain))
}

func TestCheckAcceptsComposedOutput(t *testing.T) {
	t.Parallel()

	th, err := theme.MustLoadBuiltin().Get(theme.CellcolabsClinical)
	require.NoError(t, err)
	out, err := Compose(th, navigationCSS, "navigation", Options{})
	require.NoError(t, err)

	warnings, err := Check(out)
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestSourceLoadToleratesMissingFiles(t *testing.T) {
	t.Parallel()

	src := NewSource(fstest.MapFS{
		"button.css": {Data: []byte(".button {}")},
	})

	content, found, err := src.Load("button.css")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, ".button {}", content)

	content, found, err = src.Load("footer.css")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, content)

	_, found, err = src.Load("")
	require.NoError(t, err)
	assert.False(t, found)
}
