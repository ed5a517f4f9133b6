package theme

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	fragerrors "github.com/alexisbeaulieu97/fragments/pkg/errors"
)

//go:embed themes/*.json
var builtin embed.FS

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New(validator.WithRequiredStructEnabled())
	})
	return validateInst
}

// Set holds every loaded theme. It is immutable once built.
type Set struct {
	themes map[Name]Theme
}

// LoadBuiltin decodes the themes embedded in the binary.
func LoadBuiltin() (*Set, error) {
	set := &Set{themes: make(map[Name]Theme, len(Names()))}
	for _, name := range Names() {
		path := "themes/" + string(name) + ".json"
		data, err := builtin.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read builtin theme %s: %w", name, err)
		}
		t, err := Decode(path, bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		set.themes[name] = t
	}
	return set, nil
}

// MustLoadBuiltin is LoadBuiltin for callers where the embedded files are
// known good, such as tests.
func MustLoadBuiltin() *Set {
	set, err := LoadBuiltin()
	if err != nil {
		panic(err)
	}
	return set
}

// Get returns the theme registered under name.
func (s *Set) Get(name Name) (Theme, error) {
	t, ok := s.themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("theme %q is not loaded", name)
	}
	return t, nil
}

// Names lists the loaded theme names in a stable order.
func (s *Set) Names() []Name {
	return slices.Sorted(maps.Keys(s.themes))
}

// With returns a copy of s where name maps to t.
func (s *Set) With(name Name, t Theme) *Set {
	next := &Set{themes: maps.Clone(s.themes)}
	next.themes[name] = t
	return next
}

// Decode reads and validates a nested theme document.
func Decode(path string, r io.Reader) (Theme, error) {
	var t Theme
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&t); err != nil {
		return Theme{}, fragerrors.NewParseError(path, 0, err)
	}
	if err := validatorInstance().Struct(t); err != nil {
		return Theme{}, convertValidationError(path, err)
	}
	return t, nil
}

// LoadFile reads a nested theme document from disk.
func LoadFile(path string) (Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return Theme{}, fragerrors.NewParseError(path, 0, err)
	}
	defer f.Close()
	return Decode(path, f)
}

func convertValidationError(path string, err error) error {
	if ves, ok := err.(validator.ValidationErrors); ok && len(ves) > 0 {
		ve := ves[0]
		field := strings.ToLower(strings.TrimPrefix(ve.StructNamespace(), "Theme."))
		return fragerrors.NewValidationError(field, fmt.Sprintf("%s: %s failed validation for tag '%s'", path, field, ve.Tag()), err)
	}
	return fragerrors.NewValidationError("theme", err.Error(), err)
}
