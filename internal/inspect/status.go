package inspect

import (
	"errors"
	"fmt"
	"io"
	"sort"

	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/format/index"
)

// StatusInspector computes working-tree status relative to the index and
// HEAD. It is stateless and read-only: it never touches the index file or
// the working tree.
type StatusInspector struct{}

// NewStatusInspector creates a new StatusInspector.
func NewStatusInspector() *StatusInspector {
	return &StatusInspector{}
}

// Compute classifies every path that differs between the working tree, the
// index, and HEAD:
//
//   - Modified: tracked files whose content differs between working tree
//     and index, or between index and HEAD. Staged-but-uncommitted changes
//     count as dirty; symlink and mode-only changes count as modified.
//   - Added: files untracked in HEAD but present in the working tree,
//     whether staged or not. Untracked files count toward dirtiness.
//   - Deleted: files tracked in HEAD or the index but absent from the
//     working tree.
//
// On a repository with no commits yet, every working-tree file is Added.
func (s *StatusInspector) Compute(handle *Repository) (*StatusSnapshot, error) {
	worktree, err := handle.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRepositoryUnavailable, err)
	}

	status, err := worktree.Status()
	if err != nil {
		if isCorruptIndex(err) {
			return nil, fmt.Errorf("%w: %w", ErrCorruptIndex, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrRepositoryUnavailable, err)
	}

	snapshot := &StatusSnapshot{
		Modified: []string{},
		Added:    []string{},
		Deleted:  []string{},
	}

	for path, file := range status {
		switch classify(file) {
		case classAdded:
			snapshot.Added = append(snapshot.Added, path)
		case classDeleted:
			snapshot.Deleted = append(snapshot.Deleted, path)
		case classModified:
			snapshot.Modified = append(snapshot.Modified, path)
		}
	}

	sort.Strings(snapshot.Modified)
	sort.Strings(snapshot.Added)
	sort.Strings(snapshot.Deleted)

	snapshot.IsDirty = len(snapshot.Modified) > 0 ||
		len(snapshot.Added) > 0 ||
		len(snapshot.Deleted) > 0

	return snapshot, nil
}

type pathClass int

const (
	classClean pathClass = iota
	classModified
	classAdded
	classDeleted
)

// classify maps a go-git staging/worktree code pair onto exactly one set,
// keeping the sets disjoint. Deleted wins over Added and Modified: a file
// absent from the working tree is deleted no matter what the index says
// about it, including a staged-new file removed before committing.
func classify(file *gogit.FileStatus) pathClass {
	switch {
	case file.Worktree == gogit.Deleted || file.Staging == gogit.Deleted:
		return classDeleted
	case file.Worktree == gogit.Untracked || file.Staging == gogit.Untracked:
		return classAdded
	case file.Staging == gogit.Added:
		return classAdded
	case changed(file.Staging) || changed(file.Worktree):
		return classModified
	default:
		return classClean
	}
}

func changed(code gogit.StatusCode) bool {
	switch code {
	case gogit.Modified, gogit.Renamed, gogit.Copied, gogit.UpdatedButUnmerged:
		return true
	default:
		return false
	}
}

// isCorruptIndex recognizes the decode failures go-git surfaces for an
// unparseable index file: bad magic, unknown version, checksum mismatch,
// and truncation.
func isCorruptIndex(err error) bool {
	return errors.Is(err, index.ErrMalformedSignature) ||
		errors.Is(err, index.ErrUnsupportedVersion) ||
		errors.Is(err, index.ErrInvalidChecksum) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, io.EOF)
}
