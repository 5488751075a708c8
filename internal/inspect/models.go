package inspect

import (
	"time"
)

// StatusSnapshot captures the working-tree state of a repository at one
// point in time. The three path sets are pairwise disjoint; a path appears
// in at most one of them.
type StatusSnapshot struct {
	IsDirty  bool     `json:"is_dirty"` // True iff any set below is non-empty
	Modified []string `json:"modified"` // Tracked files whose content differs from the index or HEAD
	Added    []string `json:"added"`    // Untracked or staged-new files
	Deleted  []string `json:"deleted"`  // Tracked files removed from the working tree
}

// Equal reports whether two snapshots are structurally identical.
func (s *StatusSnapshot) Equal(other *StatusSnapshot) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.IsDirty == other.IsDirty &&
		equalPaths(s.Modified, other.Modified) &&
		equalPaths(s.Added, other.Added) &&
		equalPaths(s.Deleted, other.Deleted)
}

func equalPaths(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// CommitRecord is the immutable metadata of a single commit.
type CommitRecord struct {
	ID             string    `json:"id"`              // Full commit hash, never truncated
	AuthorName     string    `json:"author_name"`     // Author name
	AuthorEmail    string    `json:"author_email"`    // Author email
	CommitterName  string    `json:"committer_name"`  // Committer name (the author is not always the committer)
	CommitterEmail string    `json:"committer_email"` // Committer email
	Timestamp      time.Time `json:"timestamp"`       // Author time, UTC
	Message        string    `json:"message"`         // Full commit message, unparsed
	TreeHash       string    `json:"tree_hash"`       // Root tree hash
	ParentIDs      []string  `json:"parent_ids"`      // Parent hashes; empty for a root commit, two or more for a merge
}

// IsMerge reports whether the commit has more than one parent.
func (r CommitRecord) IsMerge() bool {
	return len(r.ParentIDs) >= 2
}

// CommitHistory is a bounded window over the commit graph, newest first.
type CommitHistory struct {
	Records []CommitRecord `json:"records"`
}

// Len returns the number of records in the window.
func (h *CommitHistory) Len() int {
	if h == nil {
		return 0
	}
	return len(h.Records)
}

// Report combines everything one inspection of a repository produced. It
// is the serializable shape handed to presentation layers.
type Report struct {
	Path    string          `json:"path"`
	Branch  string          `json:"branch,omitempty"`
	Status  *StatusSnapshot `json:"status,omitempty"`
	History *CommitHistory  `json:"history,omitempty"`
}
