package inspect

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
)

var baseTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// initTestRepo initializes an empty repository in a test temp dir.
func initTestRepo(t *testing.T) (*gogit.Repository, *gogit.Worktree, string) {
	t.Helper()

	repoPath := filepath.Join(t.TempDir(), "repo")
	if err := os.MkdirAll(repoPath, 0o755); err != nil {
		t.Fatal(err)
	}

	repo, err := gogit.PlainInit(repoPath, false)
	if err != nil {
		t.Fatal(err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		t.Fatal(err)
	}

	return repo, worktree, repoPath
}

func writeFile(t *testing.T, repoPath, name, content string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(repoPath, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func signatureAt(when time.Time) *object.Signature {
	return &object.Signature{
		Name:  "Test Author",
		Email: "test@example.com",
		When:  when,
	}
}

// commitFile writes and stages one file and commits it at the given time.
func commitFile(t *testing.T, worktree *gogit.Worktree, repoPath, name, content, message string, when time.Time) plumbing.Hash {
	t.Helper()

	writeFile(t, repoPath, name, content)

	if _, err := worktree.Add(name); err != nil {
		t.Fatal(err)
	}

	hash, err := worktree.Commit(message, &gogit.CommitOptions{
		Author:    signatureAt(when),
		Committer: signatureAt(when),
	})
	if err != nil {
		t.Fatal(err)
	}

	return hash
}

// openInfo opens the repository through the facade with default options.
func openInfo(t *testing.T, repoPath string) *RepositoryInfo {
	t.Helper()

	info, err := Open(repoPath, DefaultOptions())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	return info
}
