package repos

import (
	"github.com/repolens/repolens/internal/inspect"
)

// StatusQuery is the query payload for a working-tree status request.
type StatusQuery struct {
	Path string `query:"path" validate:"required,min=1"`
}

// HistoryQuery is the query payload for a commit history request.
type HistoryQuery struct {
	Path  string `query:"path"  validate:"required,min=1"`
	Limit *int   `query:"limit" validate:"omitempty,min=0"`
}

// StatusResponse wraps a status snapshot with the repository identity.
type StatusResponse struct {
	Path   string                  `json:"path"`
	Branch string                  `json:"branch,omitempty"`
	Status *inspect.StatusSnapshot `json:"status"`
}

// HistoryResponse wraps a history window with the repository identity.
type HistoryResponse struct {
	Path    string                 `json:"path"`
	Branch  string                 `json:"branch,omitempty"`
	History *inspect.CommitHistory `json:"history"`
}
