// Package fragment assembles the files of a generated fragment and writes the
// output tree.
package fragment

import (
	"bytes"
	"encoding/json"
	"path"
	"time"

	"github.com/alexisbeaulieu97/fragments/internal/placeholder"
	"github.com/alexisbeaulieu97/fragments/internal/theme"
)

const (
	// Version is the fragment version every component is generated under.
	// The output layout keeps room for more than one.
	Version = "v1"
	// SchemaVersion is the version written into manifests.
	SchemaVersion = "1.0.0"

	HTMLFile     = "fragment.html"
	CSSFile      = "styles.css"
	ManifestFile = "manifest.json"
)

// Dir returns the directory of a component's fragment relative to the
// output root.
func Dir(componentID string) string {
	return path.Join(componentID, Version)
}

// ManifestPath returns the per-component manifest path relative to the
// output root.
func ManifestPath(componentID string) string {
	return path.Join(Dir(componentID), ManifestFile)
}

// Timestamp formats t the way manifests and header comments carry it:
// UTC with millisecond precision.
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// Files names the artifacts of a fragment relative to its directory.
type Files struct {
	HTML string `json:"html"`
	CSS  string `json:"css"`
}

// Manifest describes one generated fragment.
type Manifest struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Version      string            `json:"version"`
	Generated    string            `json:"generated"`
	Placeholders placeholder.Specs `json:"placeholders"`
	Files        Files             `json:"files"`
	Responsive   bool              `json:"responsive"`
	Themes       []string          `json:"themes"`
}

// NewManifest builds the manifest of a fragment generated at t.
func NewManifest(id, name string, specs placeholder.Specs, t time.Time) Manifest {
	if specs == nil {
		specs = placeholder.Specs{}
	}
	return Manifest{
		ID:           id,
		Name:         name,
		Version:      SchemaVersion,
		Generated:    Timestamp(t),
		Placeholders: specs,
		Files:        Files{HTML: HTMLFile, CSS: CSSFile},
		Responsive:   true,
		Themes:       theme.Strings(),
	}
}

// Entry indexes one fragment in the root manifest.
type Entry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// Build identifies the run that produced the tree.
type Build struct {
	ID     string `json:"id"`
	Source string `json:"source,omitempty"`
}

// Index is the root manifest. It is rebuilt in full on every run.
type Index struct {
	Version    string  `json:"version"`
	Generated  string  `json:"generated"`
	Components []Entry `json:"components"`
	Build      *Build  `json:"build,omitempty"`
}

// NewIndex builds an empty root manifest generated at t.
func NewIndex(t time.Time) Index {
	return Index{
		Version:    SchemaVersion,
		Generated:  Timestamp(t),
		Components: []Entry{},
	}
}

// Add appends the entry of a generated component.
func (idx *Index) Add(id, name string) {
	idx.Components = append(idx.Components, Entry{ID: id, Name: name, Path: ManifestPath(id)})
}

// encodeJSON renders v with two-space indentation and without HTML
// escaping, so rich text defaults stay readable.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
