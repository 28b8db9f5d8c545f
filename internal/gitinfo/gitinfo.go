// Package gitinfo resolves the source checkout a build runs from, so the
// commit can be stamped into build reports and history rows.
package gitinfo

import (
	git "github.com/go-git/go-git/v5"
)

// Info describes the source checkout at build time.
type Info struct {
	Commit string
	Branch string
	Dirty  bool
}

// Resolve inspects the repository containing dir. Best-effort: building
// from an exported tree without git metadata is not an error, so failures
// are reported only through the ok return.
func Resolve(dir string) (Info, bool) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return Info{}, false
	}
	head, err := repo.Head()
	if err != nil {
		return Info{}, false
	}

	info := Info{Commit: head.Hash().String()}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}
	if wt, err := repo.Worktree(); err == nil {
		if status, err := wt.Status(); err == nil {
			info.Dirty = !status.IsClean()
		}
	}
	return info, true
}
