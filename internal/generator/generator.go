// Package generator turns the component registry into the fragment output
// tree.
package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alexisbeaulieu97/fragments/internal/fragment"
	"github.com/alexisbeaulieu97/fragments/internal/logger"
	"github.com/alexisbeaulieu97/fragments/internal/registry"
	"github.com/alexisbeaulieu97/fragments/internal/render"
	"github.com/alexisbeaulieu97/fragments/internal/stylesheet"
	"github.com/alexisbeaulieu97/fragments/internal/theme"
	"github.com/alexisbeaulieu97/fragments/internal/ui"
	fragerrors "github.com/alexisbeaulieu97/fragments/pkg/errors"
)

const themePlaceholder = "theme"

// Reporter receives progress as components are generated.
type Reporter interface {
	Start(total int)
	Component(e ui.Event)
	Fail(id string, err error)
	Done(s ui.Summary)
}

// OverridesFunc returns the placeholder overrides of a descriptor.
type OverridesFunc func(d registry.Descriptor) map[string]any

// Options configures a Service. Registry and Writer are required.
type Options struct {
	Registry  *registry.Registry
	Writer    *fragment.Writer
	Themes    *theme.Set
	Styles    *stylesheet.Source
	Overrides OverridesFunc
	Render    render.Options
	Minify    bool

	// OutputDir labels the output root in the summary line.
	OutputDir string
	// Source is the revision stamped into the root manifest.
	Source string

	Clock    func() time.Time
	NewRunID func() string
	Logger   *logger.Logger
	Reporter Reporter
}

// Service generates fragments.
type Service struct {
	opts     Options
	renderer *render.Renderer
}

// Result describes a completed run.
type Result struct {
	RunID     string
	Index     fragment.Index
	Fragments []fragment.Output
}

// New validates opts and fills in defaults.
func New(opts Options) (*Service, error) {
	if opts.Registry == nil {
		return nil, errors.New("generator: registry is required")
	}
	if opts.Writer == nil {
		return nil, errors.New("generator: writer is required")
	}
	if opts.Themes == nil {
		themes, err := theme.LoadBuiltin()
		if err != nil {
			return nil, fmt.Errorf("load themes: %w", err)
		}
		opts.Themes = themes
	}
	if opts.Overrides == nil {
		opts.Overrides = func(registry.Descriptor) map[string]any { return nil }
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.NewRunID == nil {
		opts.NewRunID = uuid.NewString
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Reporter == nil {
		opts.Reporter = nopReporter{}
	}
	return &Service{opts: opts, renderer: render.New(opts.Render)}, nil
}

// Validate checks every descriptor and the configured overrides without
// rendering anything. All problems are reported together.
func (s *Service) Validate() error {
	errs := []error{s.opts.Registry.Validate()}
	for _, d := range s.opts.Registry.List() {
		if _, err := d.Placeholders.Bind(s.opts.Overrides(d)); err != nil {
			errs = append(errs, fragerrors.AttachComponent(err, d.ID))
		}
	}
	return errors.Join(errs...)
}

// Generate validates the whole registry, then renders and writes every
// component in registry order. The first failure aborts the run; fragments
// already written stay in place and the root manifest is not rewritten.
func (s *Service) Generate(ctx context.Context) (*Result, error) {
	runID := s.opts.NewRunID()
	log := s.opts.Logger.With("run_id", runID)
	started := s.opts.Clock()

	if err := s.Validate(); err != nil {
		s.opts.Reporter.Fail(fragerrors.ComponentID(err), err)
		log.Error(err, "validation failed")
		return nil, err
	}

	script, err := fragment.Script(s.opts.Minify)
	if err != nil {
		return nil, err
	}

	descriptors := s.opts.Registry.List()
	index := fragment.NewIndex(started)
	index.Build = &fragment.Build{ID: runID, Source: s.opts.Source}
	result := &Result{RunID: runID, Fragments: make([]fragment.Output, 0, len(descriptors))}

	log.WithFields(map[string]any{"components": len(descriptors)}).Info("generation started")
	s.opts.Reporter.Start(len(descriptors))

	for _, d := range descriptors {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		begin := s.opts.Clock()
		out, strategy, err := s.build(d, started, script, log)
		if err == nil {
			err = s.opts.Writer.WriteFragment(out)
		}
		if err != nil {
			err = fragerrors.AttachComponent(err, d.ID)
			s.opts.Reporter.Fail(d.ID, err)
			log.With("component", d.ID).Error(err, "component failed")
			return nil, err
		}

		index.Add(d.ID, d.Name)
		result.Fragments = append(result.Fragments, out)
		size := len(out.HTML) + len(out.CSS)
		log.WithFields(map[string]any{
			"component": d.ID,
			"strategy":  string(strategy),
			"bytes":     size,
		}).Debug("component generated")
		s.opts.Reporter.Component(ui.Event{
			ID:       d.ID,
			Name:     d.Name,
			Strategy: string(strategy),
			Bytes:    size,
			Duration: s.opts.Clock().Sub(begin),
		})
	}

	if err := s.opts.Writer.WriteIndex(index); err != nil {
		s.opts.Reporter.Fail("", err)
		log.Error(err, "write root manifest")
		return nil, err
	}
	result.Index = index

	elapsed := s.opts.Clock().Sub(started)
	log.WithFields(map[string]any{"components": len(descriptors), "duration_ms": elapsed.Milliseconds()}).Info("generation finished")
	s.opts.Reporter.Done(ui.Summary{Generated: len(descriptors), OutputDir: s.opts.OutputDir, Duration: elapsed})
	return result, nil
}

// build renders one descriptor into its three output files.
func (s *Service) build(d registry.Descriptor, generated time.Time, script string, log *logger.Logger) (fragment.Output, registry.Strategy, error) {
	rendered, err := s.renderer.Render(d, s.opts.Overrides(d))
	if err != nil {
		return fragment.Output{}, "", err
	}

	t, err := s.themeFor(rendered)
	if err != nil {
		return fragment.Output{}, "", err
	}

	css, err := s.stylesheet(d, t, log)
	if err != nil {
		return fragment.Output{}, "", err
	}

	return fragment.Output{
		ID:       d.ID,
		HTML:     fragment.AssembleHTML(d.Name, generated, rendered.Markup, script),
		CSS:      css,
		Manifest: fragment.NewManifest(d.ID, d.Name, d.Placeholders, generated),
	}, rendered.Strategy, nil
}

// themeFor picks the theme bound to the component, falling back to the
// first shipped theme for components without a selector.
func (s *Service) themeFor(rendered render.Result) (theme.Theme, error) {
	name := theme.Names()[0]
	if raw := rendered.Values.String(themePlaceholder); raw != "" {
		parsed, err := theme.ParseName(raw)
		if err != nil {
			return theme.Theme{}, err
		}
		name = parsed
	}
	return s.opts.Themes.Get(name)
}

func (s *Service) stylesheet(d registry.Descriptor, t theme.Theme, log *logger.Logger) (string, error) {
	src, found, err := s.opts.Styles.Load(d.Stylesheet)
	if err != nil {
		return "", err
	}
	if !found {
		log.WithFields(map[string]any{"component": d.ID, "stylesheet": d.Stylesheet}).Debug("stylesheet missing, writing empty styles")
		return "", nil
	}
	css, err := stylesheet.Compose(t, src, d.ID, stylesheet.Options{Minify: s.opts.Minify})
	if err != nil {
		return "", fmt.Errorf("compose stylesheet %s: %w", d.Stylesheet, err)
	}
	warnings, err := stylesheet.Check(css)
	if err != nil {
		return "", fmt.Errorf("check stylesheet %s: %w", d.Stylesheet, err)
	}
	for _, warning := range warnings {
		log.WithFields(map[string]any{"component": d.ID, "stylesheet": d.Stylesheet, "warning": warning}).Debug("stylesheet warning")
	}
	return css, nil
}

type nopReporter struct{}

func (nopReporter) Start(int)          {}
func (nopReporter) Component(ui.Event) {}
func (nopReporter) Fail(string, error) {}
func (nopReporter) Done(ui.Summary)    {}
