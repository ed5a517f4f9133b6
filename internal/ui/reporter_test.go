package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporterPlainOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.Start(2)
	r.Component(Event{ID: "navigation", Name: "Navigation", Strategy: "live", Bytes: 2048, Duration: 3 * time.Millisecond})
	r.Component(Event{ID: "footer", Name: "Footer", Strategy: "static", Bytes: 512})
	r.Done(Summary{Generated: 2, OutputDir: "public/fragments", Duration: 40 * time.Millisecond})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Generating 2 components", lines[0])
	assert.Equal(t, "[1/2] [ok] navigation (Live, 2 KiB, 3ms)", lines[1])
	assert.Equal(t, "[2/2] [ok] footer (Static, 512 B, 0s)", lines[2])
	assert.Equal(t, "Generated 2 fragments in public/fragments (40ms)", lines[3])
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestReporterFail(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.Fail("hero-block", errors.New("boom"))
	r.Fail("", errors.New("config"))

	assert.Equal(t, "[fail] hero-block: boom\n[fail] generation: config\n", buf.String())
}

func TestReporterInteractiveShowsProgress(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := newReporter(&buf, true)
	r.Start(4)
	r.Component(Event{ID: "button", Strategy: "static", Bytes: 10})

	out := buf.String()
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "1/4")
	assert.Contains(t, out, "button")
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()

	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	cases := map[int]string{
		0:           "0 B",
		1023:        "1023 B",
		1024:        "1 KiB",
		1536:        "1.5 KiB",
		5 * 1 << 20: "5 MiB",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatBytes(in))
	}
}

func TestTitle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Live", Title("live"))
	assert.Equal(t, "Static", Title("static"))
}
