package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/fragments/internal/catalog"
	"github.com/alexisbeaulieu97/fragments/internal/fragment"
	"github.com/alexisbeaulieu97/fragments/internal/logger"
	"github.com/alexisbeaulieu97/fragments/internal/placeholder"
	"github.com/alexisbeaulieu97/fragments/internal/registry"
	"github.com/alexisbeaulieu97/fragments/internal/render"
	"github.com/alexisbeaulieu97/fragments/internal/stylesheet"
	"github.com/alexisbeaulieu97/fragments/internal/ui"
	fragerrors "github.com/alexisbeaulieu97/fragments/pkg/errors"
)

var (
	frozen       = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	menuLinkExpr = regexp.MustCompile(`<a class="navigation__menuLink" href="([^"]*)">([^<]*)</a>`)
)

type recordingReporter struct {
	total    int
	events   []ui.Event
	failures []string
	summary  *ui.Summary
}

func (r *recordingReporter) Start(total int) { r.total = total }

func (r *recordingReporter) Component(e ui.Event) { r.events = append(r.events, e) }

func (r *recordingReporter) Fail(id string, _ error) { r.failures = append(r.failures, id) }

func (r *recordingReporter) Done(s ui.Summary) { r.summary = &s }

func libraryRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg, err := catalog.Registry()
	require.NoError(t, err)
	return reg
}

func newService(t *testing.T, opts Options) *Service {
	t.Helper()
	if opts.Writer == nil {
		opts.Writer = fragment.NewWriter(memfs.New())
	}
	if opts.Styles == nil {
		opts.Styles = stylesheet.NewSource(catalog.Styles())
	}
	opts.Clock = func() time.Time { return frozen }
	opts.NewRunID = func() string { return "run-1" }
	svc, err := New(opts)
	require.NoError(t, err)
	return svc
}

func TestNewRequiresRegistryAndWriter(t *testing.T) {
	t.Parallel()

	_, err := New(Options{Writer: fragment.NewWriter(memfs.New())})
	require.Error(t, err)

	_, err = New(Options{Registry: libraryRegistry(t)})
	require.Error(t, err)
}

func TestGenerateWritesFullTree(t *testing.T) {
	t.Parallel()

	fs := memfs.New()
	reg := libraryRegistry(t)
	reporter := &recordingReporter{}
	svc := newService(t, Options{Registry: reg, Writer: fragment.NewWriter(fs), Reporter: reporter, Source: "abc123", OutputDir: "out"})

	result, err := svc.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "run-1", result.RunID)

	data, err := util.ReadFile(fs, fragment.ManifestFile)
	require.NoError(t, err)
	var index fragment.Index
	require.NoError(t, json.Unmarshal(data, &index))

	require.Len(t, index.Components, reg.Len())
	for i, d := range reg.List() {
		entry := index.Components[i]
		assert.Equal(t, d.ID, entry.ID)
		assert.Equal(t, d.Name, entry.Name)
		for _, p := range []string{entry.Path, fragment.Dir(d.ID) + "/" + fragment.HTMLFile, fragment.Dir(d.ID) + "/" + fragment.CSSFile} {
			_, err := fs.Stat(p)
			assert.NoError(t, err, p)
		}
	}
	assert.Equal(t, &fragment.Build{ID: "run-1", Source: "abc123"}, index.Build)
	assert.Equal(t, "2025-06-01T12:00:00.000Z", index.Generated)

	assert.Equal(t, reg.Len(), reporter.total)
	assert.Len(t, reporter.events, reg.Len())
	assert.Empty(t, reporter.failures)
	require.NotNil(t, reporter.summary)
	assert.Equal(t, reg.Len(), reporter.summary.Generated)
	assert.Equal(t, "out", reporter.summary.OutputDir)

	html, err := util.ReadFile(fs, "footer/v1/fragment.html")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(html), "<!-- Fragment: Footer -->\n<!-- Generated: 2025-06-01T12:00:00.000Z -->\n"))
	assert.True(t, strings.HasSuffix(string(html), "<!-- End Fragment: Footer -->\n"))
	assert.Contains(t, string(html), "window.__fragmentsBound")

	css, err := util.ReadFile(fs, "footer/v1/styles.css")
	require.NoError(t, err)
	assert.Contains(t, string(css), ":root")
	assert.Contains(t, string(css), ".footer__")
}

func TestGenerateNavigationOverrides(t *testing.T) {
	t.Parallel()

	fs := memfs.New()
	overrides := map[string]any{
		"brand_text": "Acme",
		"theme":      "cellcolabs",
		"menu_items": []any{
			map[string]any{"label": "One", "href": "#one"},
			map[string]any{"label": "Two", "href": "#two"},
			map[string]any{"label": "Three", "href": "#three"},
			map[string]any{"label": "Four", "href": "#four"},
		},
	}
	svc := newService(t, Options{
		Registry: libraryRegistry(t),
		Writer:   fragment.NewWriter(fs),
		Overrides: func(d registry.Descriptor) map[string]any {
			if d.ID == "navigation" {
				return overrides
			}
			return nil
		},
	})

	_, err := svc.Generate(context.Background())
	require.NoError(t, err)

	data, err := util.ReadFile(fs, "navigation/v1/fragment.html")
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, `data-theme="cellcolabs"`)
	assert.Contains(t, html, `<span class="navigation__brandBold">Acme</span>`)
	links := menuLinkExpr.FindAllStringSubmatch(html, -1)
	require.Len(t, links, 4)
	for i, label := range []string{"One", "Two", "Three", "Four"} {
		assert.Equal(t, label, links[i][2])
	}

	manifest, err := util.ReadFile(fs, fragment.ManifestPath("navigation"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), `"default": "Cellcolabs"`, "manifest lists library defaults, not overrides")
}

func TestGenerateIsDeterministic(t *testing.T) {
	t.Parallel()

	run := func() *Result {
		svc := newService(t, Options{Registry: libraryRegistry(t), Minify: true})
		result, err := svc.Generate(context.Background())
		require.NoError(t, err)
		return result
	}

	first, second := run(), run()
	require.Equal(t, len(first.Fragments), len(second.Fragments))
	for i := range first.Fragments {
		assert.Equal(t, first.Fragments[i].HTML, second.Fragments[i].HTML)
		assert.Equal(t, first.Fragments[i].CSS, second.Fragments[i].CSS)
	}
}

func TestGenerateMissingStylesheetWritesEmptyCSS(t *testing.T) {
	t.Parallel()

	fs := memfs.New()
	reg, err := registry.New(registry.Descriptor{
		ID:         "spacer",
		Name:       "Spacer",
		Stylesheet: "spacer.css",
		Render:     func(placeholder.Values) (string, error) { return `<div class="spacer__spacer"></div>`, nil },
	})
	require.NoError(t, err)

	svc := newService(t, Options{Registry: reg, Writer: fragment.NewWriter(fs), Styles: stylesheet.NewSource(fstest.MapFS{})})
	_, err = svc.Generate(context.Background())
	require.NoError(t, err)

	css, err := util.ReadFile(fs, "spacer/v1/styles.css")
	require.NoError(t, err)
	assert.Empty(t, css)
}

func TestGenerateLogsStylesheetWarnings(t *testing.T) {
	t.Parallel()

	reg, err := registry.New(registry.Descriptor{
		ID:         "spacer",
		Name:       "Spacer",
		Stylesheet: "spacer.css",
		Render:     func(placeholder.Values) (string, error) { return `<div class="spacer__spacer"></div>`, nil },
	})
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	log, err := logger.New(logger.Options{Level: "debug", Writer: buf})
	require.NoError(t, err)

	styles := fstest.MapFS{"spacer.css": {Data: []byte(".spacer { height: 2rem; }\n@import \"late.css\";\n")}}
	svc := newService(t, Options{Registry: reg, Styles: stylesheet.NewSource(styles), Logger: log})
	_, err = svc.Generate(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"message":"stylesheet warning"`)
	assert.Contains(t, buf.String(), "rules must come first")
	assert.Contains(t, buf.String(), `"component":"spacer"`)
}

func TestGenerateUsesBoundTheme(t *testing.T) {
	t.Parallel()

	fs := memfs.New()
	svc := newService(t, Options{
		Registry: libraryRegistry(t),
		Writer:   fragment.NewWriter(fs),
		Overrides: func(d registry.Descriptor) map[string]any {
			if d.ID == "footer" {
				return map[string]any{"theme": "cellcolabs"}
			}
			return nil
		},
	})
	_, err := svc.Generate(context.Background())
	require.NoError(t, err)

	css, err := util.ReadFile(fs, "footer/v1/styles.css")
	require.NoError(t, err)
	assert.Contains(t, string(css), "fragments:theme cellcolabs */")
}

func TestGenerateValidatesBeforeRendering(t *testing.T) {
	t.Parallel()

	rendered := 0
	renderFn := func(placeholder.Values) (string, error) {
		rendered++
		return "<div></div>", nil
	}
	bad, err := placeholder.Parse("bad", `<div>{{missing}}</div>`)
	require.NoError(t, err)

	reg, err := registry.New(
		registry.Descriptor{ID: "first", Name: "First", Render: renderFn},
		registry.Descriptor{ID: "broken", Name: "Broken", Template: bad},
	)
	require.NoError(t, err)

	fs := memfs.New()
	reporter := &recordingReporter{}
	svc := newService(t, Options{Registry: reg, Writer: fragment.NewWriter(fs), Reporter: reporter})
	_, err = svc.Generate(context.Background())

	require.ErrorIs(t, err, fragerrors.ErrUnknownPlaceholder)
	assert.Equal(t, "broken", fragerrors.ComponentID(err))
	assert.Zero(t, rendered)
	assert.Equal(t, []string{"broken"}, reporter.failures)
	_, statErr := fs.Stat("first")
	assert.Error(t, statErr)
}

func TestGenerateRejectsUnknownOverride(t *testing.T) {
	t.Parallel()

	svc := newService(t, Options{
		Registry: libraryRegistry(t),
		Overrides: func(d registry.Descriptor) map[string]any {
			if d.ID == "hero-block" {
				return map[string]any{"headline": "typo"}
			}
			return nil
		},
	})
	_, err := svc.Generate(context.Background())
	require.ErrorIs(t, err, fragerrors.ErrUnknownPlaceholder)
	assert.Equal(t, "hero-block", fragerrors.ComponentID(err))
}

func TestGenerateStopsAtFirstRenderFailure(t *testing.T) {
	t.Parallel()

	calls := 0
	ok := func(placeholder.Values) (string, error) {
		calls++
		return "<div></div>", nil
	}
	reg, err := registry.New(
		registry.Descriptor{ID: "alpha", Name: "Alpha", Render: ok},
		registry.Descriptor{ID: "beta", Name: "Beta", Render: func(placeholder.Values) (string, error) {
			return "", errors.New("boom")
		}},
		registry.Descriptor{ID: "gamma", Name: "Gamma", Render: ok},
	)
	require.NoError(t, err)

	fs := memfs.New()
	reporter := &recordingReporter{}
	svc := newService(t, Options{Registry: reg, Writer: fragment.NewWriter(fs), Reporter: reporter})
	_, err = svc.Generate(context.Background())

	require.ErrorIs(t, err, fragerrors.ErrRenderFailed)
	assert.Equal(t, "beta", fragerrors.ComponentID(err))
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"beta"}, reporter.failures)
	assert.Nil(t, reporter.summary)

	_, statErr := fs.Stat("alpha/v1/fragment.html")
	assert.NoError(t, statErr)
	_, statErr = fs.Stat(fragment.ManifestFile)
	assert.Error(t, statErr)
}

func TestGenerateHonoursCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newService(t, Options{Registry: libraryRegistry(t)})
	_, err := svc.Generate(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestGeneratePreserveTokens(t *testing.T) {
	t.Parallel()

	fs := memfs.New()
	reg, err := libraryRegistry(t).Subset([]string{"footer", "navigation"})
	require.NoError(t, err)

	svc := newService(t, Options{Registry: reg, Writer: fragment.NewWriter(fs), Render: render.Options{PreserveTokens: true}})
	_, err = svc.Generate(context.Background())
	require.NoError(t, err)

	footer, err := util.ReadFile(fs, "footer/v1/fragment.html")
	require.NoError(t, err)
	assert.Contains(t, string(footer), "{{brand_text}}")

	nav, err := util.ReadFile(fs, "navigation/v1/fragment.html")
	require.NoError(t, err)
	assert.NotContains(t, string(nav), "{{")
}
