package inspect

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v6"
)

func TestStatusInspector_CleanRepo(t *testing.T) {
	_, worktree, repoPath := initTestRepo(t)
	commitFile(t, worktree, repoPath, "a.txt", "content", "initial commit", baseTime)

	info := openInfo(t, repoPath)

	if _, err := info.StatusInfo(); err != nil {
		t.Fatalf("StatusInfo failed: %v", err)
	}

	snapshot := info.Status()
	if snapshot.IsDirty {
		t.Error("expected clean repository to not be dirty")
	}
	if len(snapshot.Modified) != 0 || len(snapshot.Added) != 0 || len(snapshot.Deleted) != 0 {
		t.Errorf("expected empty sets, got modified=%v added=%v deleted=%v",
			snapshot.Modified, snapshot.Added, snapshot.Deleted)
	}
}

func TestStatusInspector_ModifiedTrackedFile(t *testing.T) {
	_, worktree, repoPath := initTestRepo(t)
	commitFile(t, worktree, repoPath, "a.txt", "content", "initial commit", baseTime)

	// Alter the tracked file on disk without staging.
	writeFile(t, repoPath, "a.txt", "changed content")

	info := openInfo(t, repoPath)
	if _, err := info.StatusInfo(); err != nil {
		t.Fatalf("StatusInfo failed: %v", err)
	}

	snapshot := info.Status()
	if !snapshot.IsDirty {
		t.Error("expected dirty repository")
	}
	if len(snapshot.Modified) != 1 || snapshot.Modified[0] != "a.txt" {
		t.Errorf("expected modified=[a.txt], got %v", snapshot.Modified)
	}
	if len(snapshot.Added) != 0 || len(snapshot.Deleted) != 0 {
		t.Errorf("expected path in modified only, got added=%v deleted=%v",
			snapshot.Added, snapshot.Deleted)
	}
}

func TestStatusInspector_UntrackedFileCountsAsAdded(t *testing.T) {
	_, worktree, repoPath := initTestRepo(t)
	commitFile(t, worktree, repoPath, "a.txt", "content", "initial commit", baseTime)

	writeFile(t, repoPath, "new.txt", "untracked")

	info := openInfo(t, repoPath)
	if _, err := info.StatusInfo(); err != nil {
		t.Fatalf("StatusInfo failed: %v", err)
	}

	snapshot := info.Status()
	if !snapshot.IsDirty {
		t.Error("expected untracked file to dirty the tree")
	}
	if len(snapshot.Added) != 1 || snapshot.Added[0] != "new.txt" {
		t.Errorf("expected added=[new.txt], got %v", snapshot.Added)
	}
}

func TestStatusInspector_StagedNewFileCountsAsAdded(t *testing.T) {
	_, worktree, repoPath := initTestRepo(t)
	commitFile(t, worktree, repoPath, "a.txt", "content", "initial commit", baseTime)

	writeFile(t, repoPath, "staged.txt", "staged")
	if _, err := worktree.Add("staged.txt"); err != nil {
		t.Fatal(err)
	}

	info := openInfo(t, repoPath)
	if _, err := info.StatusInfo(); err != nil {
		t.Fatalf("StatusInfo failed: %v", err)
	}

	snapshot := info.Status()
	if len(snapshot.Added) != 1 || snapshot.Added[0] != "staged.txt" {
		t.Errorf("expected added=[staged.txt], got %v", snapshot.Added)
	}
}

func TestStatusInspector_StagedModificationCountsAsModified(t *testing.T) {
	_, worktree, repoPath := initTestRepo(t)
	commitFile(t, worktree, repoPath, "a.txt", "content", "initial commit", baseTime)

	writeFile(t, repoPath, "a.txt", "staged change")
	if _, err := worktree.Add("a.txt"); err != nil {
		t.Fatal(err)
	}

	info := openInfo(t, repoPath)
	if _, err := info.StatusInfo(); err != nil {
		t.Fatalf("StatusInfo failed: %v", err)
	}

	snapshot := info.Status()
	if !snapshot.IsDirty {
		t.Error("expected staged-but-uncommitted change to count as dirty")
	}
	if len(snapshot.Modified) != 1 || snapshot.Modified[0] != "a.txt" {
		t.Errorf("expected modified=[a.txt], got %v", snapshot.Modified)
	}
}

func TestStatusInspector_DeletedTrackedFile(t *testing.T) {
	_, worktree, repoPath := initTestRepo(t)
	commitFile(t, worktree, repoPath, "a.txt", "content", "initial commit", baseTime)
	commitFile(t, worktree, repoPath, "b.txt", "other", "second commit", baseTime.Add(time.Minute))

	if err := os.Remove(filepath.Join(repoPath, "b.txt")); err != nil {
		t.Fatal(err)
	}

	info := openInfo(t, repoPath)
	if _, err := info.StatusInfo(); err != nil {
		t.Fatalf("StatusInfo failed: %v", err)
	}

	snapshot := info.Status()
	if len(snapshot.Deleted) != 1 || snapshot.Deleted[0] != "b.txt" {
		t.Errorf("expected deleted=[b.txt], got %v", snapshot.Deleted)
	}
	if len(snapshot.Modified) != 0 || len(snapshot.Added) != 0 {
		t.Errorf("expected path in deleted only, got modified=%v added=%v",
			snapshot.Modified, snapshot.Added)
	}
}

func TestStatusInspector_EmptyRepository(t *testing.T) {
	_, _, repoPath := initTestRepo(t)
	writeFile(t, repoPath, "first.txt", "not yet committed")

	info := openInfo(t, repoPath)
	if _, err := info.StatusInfo(); err != nil {
		t.Fatalf("StatusInfo failed: %v", err)
	}

	snapshot := info.Status()
	if !snapshot.IsDirty {
		t.Error("expected non-empty working tree of an empty repository to be dirty")
	}
	if len(snapshot.Added) != 1 || snapshot.Added[0] != "first.txt" {
		t.Errorf("expected everything to be added, got %v", snapshot.Added)
	}
}

func TestStatusInspector_Idempotent(t *testing.T) {
	_, worktree, repoPath := initTestRepo(t)
	commitFile(t, worktree, repoPath, "a.txt", "content", "initial commit", baseTime)
	writeFile(t, repoPath, "a.txt", "changed")
	writeFile(t, repoPath, "new.txt", "untracked")

	info := openInfo(t, repoPath)

	if _, err := info.StatusInfo(); err != nil {
		t.Fatalf("first StatusInfo failed: %v", err)
	}
	first := info.Status()

	if _, err := info.StatusInfo(); err != nil {
		t.Fatalf("second StatusInfo failed: %v", err)
	}
	second := info.Status()

	if !first.Equal(second) {
		t.Errorf("expected structurally equal snapshots, got %+v and %+v", first, second)
	}
}

func TestStatusInspector_StagedNewFileRemovedFromDisk(t *testing.T) {
	_, worktree, repoPath := initTestRepo(t)
	commitFile(t, worktree, repoPath, "a.txt", "content", "initial commit", baseTime)

	// Stage a new file, then remove it from the working tree before
	// committing. It is tracked in the index but absent on disk.
	writeFile(t, repoPath, "staged.txt", "staged")
	if _, err := worktree.Add("staged.txt"); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(repoPath, "staged.txt")); err != nil {
		t.Fatal(err)
	}

	info := openInfo(t, repoPath)
	if _, err := info.StatusInfo(); err != nil {
		t.Fatalf("StatusInfo failed: %v", err)
	}

	snapshot := info.Status()
	if len(snapshot.Deleted) != 1 || snapshot.Deleted[0] != "staged.txt" {
		t.Errorf("expected deleted=[staged.txt], got %v", snapshot.Deleted)
	}
	if len(snapshot.Added) != 0 || len(snapshot.Modified) != 0 {
		t.Errorf("expected path in deleted only, got added=%v modified=%v",
			snapshot.Added, snapshot.Modified)
	}
}

func TestStatusInspector_CorruptIndex(t *testing.T) {
	t.Run("bad signature", func(t *testing.T) {
		_, worktree, repoPath := initTestRepo(t)
		commitFile(t, worktree, repoPath, "a.txt", "content", "initial commit", baseTime)

		indexPath := filepath.Join(repoPath, ".git", "index")
		if err := os.WriteFile(indexPath, []byte("garbage, not an index"), 0o644); err != nil {
			t.Fatal(err)
		}

		info := openInfo(t, repoPath)
		if _, err := info.StatusInfo(); !errors.Is(err, ErrCorruptIndex) {
			t.Errorf("expected ErrCorruptIndex, got %v", err)
		}
	})

	t.Run("bad checksum", func(t *testing.T) {
		_, worktree, repoPath := initTestRepo(t)
		commitFile(t, worktree, repoPath, "a.txt", "content", "initial commit", baseTime)

		// Keep the DIRC magic and version intact, flip the final checksum
		// byte.
		indexPath := filepath.Join(repoPath, ".git", "index")
		data, err := os.ReadFile(indexPath)
		if err != nil {
			t.Fatal(err)
		}
		data[len(data)-1] ^= 0xFF
		if err := os.WriteFile(indexPath, data, 0o644); err != nil {
			t.Fatal(err)
		}

		info := openInfo(t, repoPath)
		if _, err := info.StatusInfo(); !errors.Is(err, ErrCorruptIndex) {
			t.Errorf("expected ErrCorruptIndex, got %v", err)
		}
	})

	t.Run("truncated", func(t *testing.T) {
		_, worktree, repoPath := initTestRepo(t)
		commitFile(t, worktree, repoPath, "a.txt", "content", "initial commit", baseTime)

		indexPath := filepath.Join(repoPath, ".git", "index")
		data, err := os.ReadFile(indexPath)
		if err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(indexPath, data[:len(data)/2], 0o644); err != nil {
			t.Fatal(err)
		}

		info := openInfo(t, repoPath)
		if _, err := info.StatusInfo(); !errors.Is(err, ErrCorruptIndex) {
			t.Errorf("expected ErrCorruptIndex, got %v", err)
		}
	})
}

func TestStatusInspector_BareRepositoryUnavailable(t *testing.T) {
	repoPath := t.TempDir()
	if err := os.MkdirAll(repoPath, 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := gogit.PlainInit(repoPath, true); err != nil {
		t.Fatal(err)
	}

	info, err := Open(repoPath, DefaultOptions())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if _, err := info.StatusInfo(); !errors.Is(err, ErrRepositoryUnavailable) {
		t.Errorf("expected ErrRepositoryUnavailable, got %v", err)
	}
}
