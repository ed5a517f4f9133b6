package theme

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	fragerrors "github.com/alexisbeaulieu97/fragments/pkg/errors"
)

// LegacyDocument is the flat token format used before the nested schema.
// Tokens are keyed by CSS variable name with or without the leading "--".
type LegacyDocument struct {
	Name   string            `json:"name"`
	Tokens map[string]string `json:"tokens"`
}

// ImportLegacy converts a flat token document into the nested schema. The
// flat format is read-only: there is no writer for it. Tokens that do not map
// onto the nested schema are returned so callers can report them.
func ImportLegacy(path string, r io.Reader) (Theme, []string, error) {
	var doc LegacyDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Theme{}, nil, fragerrors.NewParseError(path, 0, err)
	}
	if doc.Name == "" {
		return Theme{}, nil, fragerrors.NewValidationError("name", path+": legacy theme has no name", nil)
	}

	t := Theme{Name: doc.Name}
	known := make(map[string]struct{}, len(bindings))
	for _, b := range bindings {
		known[b.name] = struct{}{}
	}

	var unmapped []string
	for key, value := range doc.Tokens {
		name := strings.TrimPrefix(key, "--")
		if _, ok := known[name]; !ok {
			unmapped = append(unmapped, key)
			continue
		}
		for _, b := range bindings {
			if b.name == name {
				*b.field(&t) = value
				break
			}
		}
	}
	slices.Sort(unmapped)

	if err := validatorInstance().Struct(t); err != nil {
		return Theme{}, unmapped, convertValidationError(path, err)
	}
	return t, unmapped, nil
}

// MarshalIndent renders t in the nested schema.
func MarshalIndent(t Theme) ([]byte, error) {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode theme %s: %w", t.Name, err)
	}
	return append(data, '\n'), nil
}
