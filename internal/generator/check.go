package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"regexp"

	"github.com/go-git/go-billy/v5/memfs"

	"github.com/alexisbeaulieu97/fragments/internal/fragment"
	"github.com/alexisbeaulieu97/fragments/pkg/diff"
)

var (
	htmlTimestamp = regexp.MustCompile(`(<!-- Generated: )[^ ]+( -->)`)
	jsonTimestamp = regexp.MustCompile(`("generated": ")[^"]*(")`)
)

// Drift is one output file that no longer matches what generation would
// produce.
type Drift struct {
	Path    string
	Missing bool
	Diff    string
}

// Check generates the tree in memory and compares it with existing.
// Timestamps and build ids are ignored.
func (s *Service) Check(ctx context.Context, existing *fragment.Writer) ([]Drift, error) {
	memory := fragment.NewWriter(memfs.New())
	opts := s.opts
	opts.Writer = memory
	opts.Reporter = nopReporter{}
	shadow := &Service{opts: opts, renderer: s.renderer}

	result, err := shadow.Generate(ctx)
	if err != nil {
		return nil, err
	}

	var drifts []Drift
	for _, out := range result.Fragments {
		for _, name := range []string{fragment.HTMLFile, fragment.CSSFile, fragment.ManifestFile} {
			p := path.Join(fragment.Dir(out.ID), name)
			want, _, err := memory.ReadFile(p)
			if err != nil {
				return nil, err
			}
			drift, err := compareFile(existing, p, want)
			if err != nil {
				return nil, err
			}
			if drift != nil {
				drifts = append(drifts, *drift)
			}
		}
	}

	drift, err := compareIndex(existing, result.Index)
	if err != nil {
		return nil, err
	}
	if drift != nil {
		drifts = append(drifts, *drift)
	}
	return drifts, nil
}

func compareFile(existing *fragment.Writer, p string, want []byte) (*Drift, error) {
	got, found, err := existing.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	if !found {
		return &Drift{Path: p, Missing: true}, nil
	}
	if d := diff.GenerateUnifiedDiff(maskTimestamps(got), maskTimestamps(want), "existing/"+p, "generated/"+p); d != "" {
		return &Drift{Path: p, Diff: d}, nil
	}
	return nil, nil
}

// compareIndex compares only the component entries of the root manifest.
func compareIndex(existing *fragment.Writer, want fragment.Index) (*Drift, error) {
	data, found, err := existing.ReadFile(fragment.ManifestFile)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fragment.ManifestFile, err)
	}
	if !found {
		return &Drift{Path: fragment.ManifestFile, Missing: true}, nil
	}

	var got fragment.Index
	if err := json.Unmarshal(data, &got); err != nil {
		return &Drift{Path: fragment.ManifestFile, Diff: fmt.Sprintf("unreadable manifest: %v\n", err)}, nil
	}

	gotEntries, err := json.MarshalIndent(got.Components, "", "  ")
	if err != nil {
		return nil, err
	}
	wantEntries, err := json.MarshalIndent(want.Components, "", "  ")
	if err != nil {
		return nil, err
	}
	if d := diff.GenerateUnifiedDiff(gotEntries, wantEntries, "existing/"+fragment.ManifestFile, "generated/"+fragment.ManifestFile); d != "" {
		return &Drift{Path: fragment.ManifestFile, Diff: d}, nil
	}
	return nil, nil
}

func maskTimestamps(data []byte) []byte {
	data = htmlTimestamp.ReplaceAll(data, []byte("${1}*${2}"))
	return jsonTimestamp.ReplaceAll(data, []byte("${1}*${2}"))
}
