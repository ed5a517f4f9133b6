package generator

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchRebuildsOnChange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "fragments.yaml")
	stylesDir := filepath.Join(dir, "styles")
	require.NoError(t, os.WriteFile(configPath, []byte("output_dir: out\n"), 0o644))
	require.NoError(t, os.Mkdir(stylesDir, 0o755))

	var rebuilds atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, WatchOptions{
			Paths:    []string{configPath, stylesDir},
			Debounce: 20 * time.Millisecond,
			Rebuild: func(context.Context) error {
				rebuilds.Add(1)
				return nil
			},
		})
	}()

	// Give the watcher time to register before touching files.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(stylesDir, "hero-block.css"), []byte(".a{}"), 0o644))
	require.Eventually(t, func() bool { return rebuilds.Load() >= 1 }, 3*time.Second, 10*time.Millisecond)

	before := rebuilds.Load()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o644))
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, before, rebuilds.Load())

	require.NoError(t, os.WriteFile(configPath, []byte("output_dir: dist\n"), 0o644))
	require.Eventually(t, func() bool { return rebuilds.Load() > before }, 3*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}

func TestWatchRequiresRebuild(t *testing.T) {
	t.Parallel()

	require.Error(t, Watch(context.Background(), WatchOptions{}))
}
