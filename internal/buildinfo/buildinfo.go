// Package buildinfo describes the source a fragment tree was generated from.
package buildinfo

import (
	"errors"
	"fmt"

	git "github.com/go-git/go-git/v5"
)

// Set at link time with -ldflags "-X .../buildinfo.Version=...".
var (
	Version = "dev"
	Commit  = ""
)

// Revision is the state of the source repository at generation time.
type Revision struct {
	Hash  string
	Dirty bool
}

// String renders the short hash, suffixed with "-dirty" when the worktree has
// uncommitted changes.
func (r Revision) String() string {
	if r.Hash == "" {
		return ""
	}
	hash := r.Hash
	if len(hash) > 12 {
		hash = hash[:12]
	}
	if r.Dirty {
		return hash + "-dirty"
	}
	return hash
}

// SourceRevision inspects the git repository containing dir. A directory
// outside any repository yields an empty Revision and no error.
func SourceRevision(dir string) (Revision, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return Revision{}, nil
	}
	if err != nil {
		return Revision{}, fmt.Errorf("open repository at %s: %w", dir, err)
	}

	head, err := repo.Head()
	if err != nil {
		// A repository without commits has no HEAD to report.
		return Revision{}, nil
	}

	rev := Revision{Hash: head.Hash().String()}
	wt, err := repo.Worktree()
	if err != nil {
		return rev, nil
	}
	status, err := wt.Status()
	if err != nil {
		return rev, fmt.Errorf("worktree status: %w", err)
	}
	rev.Dirty = !status.IsClean()
	return rev, nil
}
