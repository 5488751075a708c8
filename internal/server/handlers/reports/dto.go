package reports

import (
	"time"

	"github.com/google/uuid"
	"github.com/repolens/repolens/internal/inspect"
	"github.com/repolens/repolens/internal/reports"
)

// CreateRequest is the request payload for running a stored inspection.
type CreateRequest struct {
	Path  string `json:"path"            validate:"required,min=1,max=4096"`
	Limit *int   `json:"limit,omitempty" validate:"omitempty,min=0,max=10000"`
}

// ReportResponse is the serialized form of a stored report.
type ReportResponse struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Path    string                  `json:"path"`
	Branch  string                  `json:"branch,omitempty"`
	Commits int                     `json:"commits"`
	Status  *inspect.StatusSnapshot `json:"status,omitempty"`
	History *inspect.CommitHistory  `json:"history,omitempty"`
}

func toResponse(report *reports.Report) ReportResponse {
	return ReportResponse{
		ID:        report.ID,
		CreatedAt: report.CreatedAt,

		Path:    report.Path,
		Branch:  report.Branch,
		Commits: report.Commits,
		Status:  report.Status,
		History: report.History,
	}
}
