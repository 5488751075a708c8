package inspect

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
)

// HistoryReader walks the commit graph from HEAD and materializes a
// bounded window of commit records in commit-date order: committer
// timestamp descending, ties broken by ascending hex hash so the order is
// deterministic. The walk is read-only and never leaves the local object
// store.
type HistoryReader struct{}

// NewHistoryReader creates a new HistoryReader.
func NewHistoryReader() *HistoryReader {
	return &HistoryReader{}
}

// Read returns up to limit commits reachable from HEAD, newest first. A
// limit of zero is an explicit request for an empty history and performs
// no reads. When HEAD does not resolve to any commit the read fails with
// ErrEmptyHistory, so callers can tell "no commits exist" apart from
// "zero requested". Merge parents are all enqueued but a commit reachable
// through several paths is emitted once.
func (r *HistoryReader) Read(handle *Repository, limit int) (*CommitHistory, error) {
	history := &CommitHistory{Records: []CommitRecord{}}
	if limit == 0 {
		return history, nil
	}

	head, err := handle.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, fmt.Errorf("%w: HEAD does not resolve", ErrEmptyHistory)
		}
		return nil, fmt.Errorf("%w: %w", ErrRepositoryUnavailable, err)
	}

	start, err := handle.repo.CommitObject(head.Hash())
	if err != nil {
		if errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil, fmt.Errorf("%w: HEAD does not resolve", ErrEmptyHistory)
		}
		return nil, fmt.Errorf("%w: %w", ErrRepositoryUnavailable, err)
	}

	frontier := &commitQueue{}
	heap.Init(frontier)
	heap.Push(frontier, start)

	queued := map[plumbing.Hash]struct{}{start.Hash: {}}

	for frontier.Len() > 0 && len(history.Records) < limit {
		commit := heap.Pop(frontier).(*object.Commit)
		history.Records = append(history.Records, newCommitRecord(commit))

		for _, parentHash := range commit.ParentHashes {
			if _, seen := queued[parentHash]; seen {
				continue
			}
			queued[parentHash] = struct{}{}

			parent, err := handle.repo.CommitObject(parentHash)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrRepositoryUnavailable, err)
			}
			heap.Push(frontier, parent)
		}
	}

	return history, nil
}

func newCommitRecord(commit *object.Commit) CommitRecord {
	parents := make([]string, len(commit.ParentHashes))
	for i, hash := range commit.ParentHashes {
		parents[i] = hash.String()
	}

	return CommitRecord{
		ID:             commit.Hash.String(),
		AuthorName:     commit.Author.Name,
		AuthorEmail:    commit.Author.Email,
		CommitterName:  commit.Committer.Name,
		CommitterEmail: commit.Committer.Email,
		Timestamp:      commit.Author.When.UTC(),
		Message:        commit.Message,
		TreeHash:       commit.TreeHash.String(),
		ParentIDs:      parents,
	}
}

// commitQueue is a max-heap of traversal candidates: most recent committer
// timestamp first, ascending hash on ties.
type commitQueue []*object.Commit

func (q commitQueue) Len() int { return len(q) }

func (q commitQueue) Less(i, j int) bool {
	ti, tj := q[i].Committer.When, q[j].Committer.When
	if !ti.Equal(tj) {
		return ti.After(tj)
	}
	return q[i].Hash.String() < q[j].Hash.String()
}

func (q commitQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *commitQueue) Push(x any) {
	*q = append(*q, x.(*object.Commit))
}

func (q *commitQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}
