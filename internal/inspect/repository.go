package inspect

import (
	"errors"
	"fmt"
	"os"

	gogit "github.com/go-git/go-git/v6"
)

// DefaultHistoryLimit is the history window size used when the caller does
// not configure one.
const DefaultHistoryLimit = 10

// Options controls how a repository is opened.
type Options struct {
	// SearchParents enables upward .git discovery from the given path,
	// matching conventional repository-discovery behavior.
	SearchParents bool
}

// DefaultOptions returns the options used by Open when none are given.
func DefaultOptions() Options {
	return Options{SearchParents: true}
}

// Repository is the opened handle this package reads through. It wraps the
// go-git repository and is immutable for its lifetime: no reopen, no path
// change. go-git holds no OS handle between reads, so there is nothing to
// close.
type Repository struct {
	path string
	repo *gogit.Repository
}

// Path returns the path the repository was opened from.
func (r *Repository) Path() string {
	return r.path
}

// Branch returns the short name of the branch HEAD points at, or the empty
// string when HEAD is detached or unborn.
func (r *Repository) Branch() string {
	head, err := r.repo.Head()
	if err != nil {
		return ""
	}
	if !head.Name().IsBranch() {
		return ""
	}
	return head.Name().Short()
}

// Open opens the repository at path and returns a RepositoryInfo facade
// over it. It fails with ErrPathNotFound when the path does not exist and
// with ErrNotARepository when no repository can be discovered there.
func Open(path string, opts Options) (*RepositoryInfo, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		return nil, fmt.Errorf("%w: %w", ErrRepositoryUnavailable, err)
	}

	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: opts.SearchParents,
	})
	if err != nil {
		if isNotRepository(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotARepository, path)
		}
		return nil, fmt.Errorf("%w: %w", ErrRepositoryUnavailable, err)
	}

	return &RepositoryInfo{
		handle: &Repository{path: path, repo: repo},
	}, nil
}

func isNotRepository(err error) bool {
	return errors.Is(err, gogit.ErrRepositoryNotExists) ||
		errors.Is(err, gogit.ErrRepositoryIncomplete)
}

// RepositoryInfo is the query facade over one opened repository. The two
// queries are independent and idempotent: each call recomputes its result
// and supersedes the previous one, and the order of chaining never affects
// either outcome.
//
//	info, err := inspect.Open(dir, inspect.DefaultOptions())
//	if err != nil { ... }
//	if _, err := info.StatusInfo(); err != nil { ... }
//	if _, err := info.CommitInfo(10); err != nil { ... }
type RepositoryInfo struct {
	handle *Repository

	status  *StatusSnapshot
	history *CommitHistory
}

// Path returns the path the repository was opened from.
func (i *RepositoryInfo) Path() string {
	return i.handle.Path()
}

// Branch returns the current branch short name, empty when detached or
// unborn.
func (i *RepositoryInfo) Branch() string {
	return i.handle.Branch()
}

// StatusInfo computes a fresh working-tree status snapshot, stores it on
// the facade, and returns the facade for chaining.
func (i *RepositoryInfo) StatusInfo() (*RepositoryInfo, error) {
	snapshot, err := NewStatusInspector().Compute(i.handle)
	if err != nil {
		return nil, err
	}
	i.status = snapshot
	return i, nil
}

// CommitInfo reads a fresh history window of up to limit commits, stores
// it on the facade, and returns the facade for chaining. A negative limit
// requests the default window; a limit of zero is an explicit request for
// an empty history.
func (i *RepositoryInfo) CommitInfo(limit int) (*RepositoryInfo, error) {
	if limit < 0 {
		limit = DefaultHistoryLimit
	}
	history, err := NewHistoryReader().Read(i.handle, limit)
	if err != nil {
		return nil, err
	}
	i.history = history
	return i, nil
}

// Status returns the snapshot from the most recent StatusInfo call, nil
// before the first call.
func (i *RepositoryInfo) Status() *StatusSnapshot {
	return i.status
}

// History returns the window from the most recent CommitInfo call, nil
// before the first call.
func (i *RepositoryInfo) History() *CommitHistory {
	return i.history
}

// Report assembles the serializable report for whatever queries have run.
func (i *RepositoryInfo) Report() *Report {
	return &Report{
		Path:    i.handle.Path(),
		Branch:  i.handle.Branch(),
		Status:  i.status,
		History: i.history,
	}
}
