package reports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/repolens/repolens/internal/inspect"
)

// Report is a persisted inspection result for one repository path.
type Report struct {
	ID        uuid.UUID
	CreatedAt time.Time

	Path    string // Repository path the inspection ran against
	Branch  string // Branch HEAD pointed at, empty when detached or unborn
	Commits int    // Number of commits captured in the history window
	Status  *inspect.StatusSnapshot
	History *inspect.CommitHistory
}

// Inspector runs repository inspections for this module. Satisfied by
// *inspect.Service.
type Inspector interface {
	Inspect(ctx context.Context, path string, limit int) (*inspect.Report, error)
}
