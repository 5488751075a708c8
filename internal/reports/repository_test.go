package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/repolens/repolens/internal/inspect"
)

func openTestDB(t *testing.T) *badger.DB {
	t.Helper()

	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLogger(nil))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Error(err)
		}
	})

	return db
}

func testModel(path string) *reportModel {
	return &reportModel{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Path:      path,
		Branch:    "master",
		Commits:   1,
		Status: &inspect.StatusSnapshot{
			IsDirty:  true,
			Modified: []string{"a.txt"},
			Added:    []string{},
			Deleted:  []string{},
		},
		History: &inspect.CommitHistory{
			Records: []inspect.CommitRecord{{
				ID:         "0123456789abcdef0123456789abcdef01234567",
				AuthorName: "Test Author",
				Timestamp:  time.Now().UTC(),
				Message:    "initial commit",
				ParentIDs:  []string{},
			}},
		},
	}
}

func TestRepository_CreateAndGet(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	model := testModel("/tmp/project")
	if err := repo.Create(ctx, model); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	report, err := repo.GetByID(ctx, model.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	if report.Path != "/tmp/project" || report.Branch != "master" {
		t.Errorf("unexpected report %+v", report)
	}
	if report.Status == nil || !report.Status.IsDirty {
		t.Error("expected dirty status to round-trip")
	}
	if report.History == nil || report.History.Len() != 1 {
		t.Error("expected history to round-trip")
	}
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo := NewRepository(openTestDB(t))

	_, err := repo.GetByID(context.Background(), uuid.New())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRepository_LatestByPath(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	first := testModel("/tmp/project")
	second := testModel("/tmp/project")

	if err := repo.Create(ctx, first); err != nil {
		t.Fatal(err)
	}
	if err := repo.Create(ctx, second); err != nil {
		t.Fatal(err)
	}

	latest, err := repo.GetLatestByPath(ctx, "/tmp/project")
	if err != nil {
		t.Fatalf("GetLatestByPath failed: %v", err)
	}
	if latest.ID != second.ID {
		t.Errorf("expected latest report %s, got %s", second.ID, latest.ID)
	}

	if _, err := repo.GetLatestByPath(ctx, "/tmp/other"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown path, got %v", err)
	}
}

func TestRepository_ListAndDelete(t *testing.T) {
	repo := NewRepository(openTestDB(t))
	ctx := context.Background()

	one := testModel("/tmp/one")
	two := testModel("/tmp/two")
	if err := repo.Create(ctx, one); err != nil {
		t.Fatal(err)
	}
	if err := repo.Create(ctx, two); err != nil {
		t.Fatal(err)
	}

	reports, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}

	if err := repo.Delete(ctx, one.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := repo.GetByID(ctx, one.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected deleted report to be gone, got %v", err)
	}
	if _, err := repo.GetLatestByPath(ctx, "/tmp/one"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected path index to be dropped, got %v", err)
	}

	if err := repo.Delete(ctx, one.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on double delete, got %v", err)
	}
}
