package generator

import (
	"context"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/fragments/internal/fragment"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	fs := memfs.New()
	existing := fragment.NewWriter(fs)
	reg := libraryRegistry(t)

	svc := newService(t, Options{Registry: reg, Writer: existing})
	_, err := svc.Generate(context.Background())
	require.NoError(t, err)

	t.Run("clean tree has no drift", func(t *testing.T) {
		later := newService(t, Options{Registry: reg, Writer: existing})
		later.opts.Clock = func() time.Time { return frozen.Add(48 * time.Hour) }
		later.opts.NewRunID = func() string { return "run-2" }

		drifts, err := later.Check(context.Background(), existing)
		require.NoError(t, err)
		assert.Empty(t, drifts)
	})

	t.Run("edited and missing files are reported", func(t *testing.T) {
		require.NoError(t, util.WriteFile(fs, "footer/v1/styles.css", []byte(".footer__footer{color:red}\n"), 0o644))
		require.NoError(t, fs.Remove("button/v1/fragment.html"))

		drifts, err := svc.Check(context.Background(), existing)
		require.NoError(t, err)
		require.Len(t, drifts, 2)

		byPath := map[string]Drift{}
		for _, d := range drifts {
			byPath[d.Path] = d
		}
		assert.True(t, byPath["button/v1/fragment.html"].Missing)
		assert.Contains(t, byPath["footer/v1/styles.css"].Diff, "-.footer__footer{color:red}")
		assert.Contains(t, byPath["footer/v1/styles.css"].Diff, "--- existing/footer/v1/styles.css")
	})
}

func TestCheckReportsIndexDrift(t *testing.T) {
	t.Parallel()

	reg := libraryRegistry(t)
	small, err := reg.Subset([]string{"footer"})
	require.NoError(t, err)

	existing := fragment.NewWriter(memfs.New())
	_, err = newService(t, Options{Registry: small, Writer: existing}).Generate(context.Background())
	require.NoError(t, err)

	full, err := reg.Subset([]string{"footer", "button"})
	require.NoError(t, err)
	drifts, err := newService(t, Options{Registry: full}).Check(context.Background(), existing)
	require.NoError(t, err)

	paths := make([]string, 0, len(drifts))
	for _, d := range drifts {
		paths = append(paths, d.Path)
	}
	assert.Contains(t, paths, fragment.ManifestFile)
	assert.Contains(t, paths, "button/v1/manifest.json")
}

func TestMaskTimestamps(t *testing.T) {
	t.Parallel()

	in := "<!-- Generated: 2025-06-01T12:00:00.000Z -->\n  \"generated\": \"2025-06-01T12:00:00.000Z\",\n"
	want := "<!-- Generated: * -->\n  \"generated\": \"*\",\n"
	assert.Equal(t, want, string(maskTimestamps([]byte(in))))
}
