package reports

import (
	"time"

	"github.com/google/uuid"
	"github.com/repolens/repolens/internal/inspect"
)

// reportModel is the badger storage shape of a report.
type reportModel struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Path    string                  `json:"path"`
	Branch  string                  `json:"branch,omitempty"`
	Commits int                     `json:"commits"`
	Status  *inspect.StatusSnapshot `json:"status,omitempty"`
	History *inspect.CommitHistory  `json:"history,omitempty"`
}

func newReportModel(path string, result *inspect.Report) *reportModel {
	return &reportModel{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),

		Path:    path,
		Branch:  result.Branch,
		Commits: result.History.Len(),
		Status:  result.Status,
		History: result.History,
	}
}

func newReport(model *reportModel) *Report {
	if model == nil {
		return nil
	}

	return &Report{
		ID:        model.ID,
		CreatedAt: model.CreatedAt,

		Path:    model.Path,
		Branch:  model.Branch,
		Commits: model.Commits,
		Status:  model.Status,
		History: model.History,
	}
}
