package buildinfo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceRevisionOutsideRepository(t *testing.T) {
	t.Parallel()

	rev, err := SourceRevision(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, rev.String())
}

func TestSourceRevision(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	rev, err := SourceRevision(dir)
	require.NoError(t, err)
	assert.Empty(t, rev.Hash, "no commits yet")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "fragments.yaml"), []byte("theme: cellcolabs\n"), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("fragments.yaml")
	require.NoError(t, err)
	hash, err := wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "Fragments", Email: "fragments@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	sub := filepath.Join(dir, "public")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	rev, err = SourceRevision(sub)
	require.NoError(t, err)
	assert.Equal(t, hash.String(), rev.Hash)
	assert.False(t, rev.Dirty)
	assert.Equal(t, hash.String()[:12], rev.String())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "fragments.yaml"), []byte("theme: cellcolabsclinical\n"), 0o644))
	rev, err = SourceRevision(dir)
	require.NoError(t, err)
	assert.True(t, rev.Dirty)
	assert.Equal(t, hash.String()[:12]+"-dirty", rev.String())
}
