package inspect

import (
	"context"

	"go.uber.org/zap"
)

// Service exposes repository inspection with configuration defaults and
// structured logging applied. Every call opens its own handle, so the
// service is safe to share.
type Service struct {
	config Config
	logger *zap.Logger
}

// NewService creates a new inspection service.
func NewService(config Config, logger *zap.Logger) *Service {
	return &Service{
		config: config,
		logger: logger,
	}
}

// DefaultLimit returns the configured default history window size.
func (s *Service) DefaultLimit() int {
	return s.config.DefaultLimit
}

// Open opens the repository at path with the configured discovery options.
func (s *Service) Open(path string) (*RepositoryInfo, error) {
	info, err := Open(path, Options{SearchParents: s.config.SearchParents})
	if err != nil {
		s.logger.Error("failed to open repository",
			zap.String("path", path), zap.Error(err))
		return nil, err
	}
	return info, nil
}

// Status computes a working-tree status snapshot for the repository at
// path.
func (s *Service) Status(_ context.Context, path string) (*StatusSnapshot, error) {
	info, err := s.Open(path)
	if err != nil {
		return nil, err
	}

	if _, err := info.StatusInfo(); err != nil {
		s.logger.Error("failed to compute status",
			zap.String("path", path), zap.Error(err))
		return nil, err
	}

	snapshot := info.Status()
	s.logger.Info("status computed",
		zap.String("path", path),
		zap.Bool("dirty", snapshot.IsDirty),
		zap.Int("modified", len(snapshot.Modified)),
		zap.Int("added", len(snapshot.Added)),
		zap.Int("deleted", len(snapshot.Deleted)))

	return snapshot, nil
}

// History reads up to limit commits from the repository at path. A
// negative limit requests the configured default window.
func (s *Service) History(_ context.Context, path string, limit int) (*CommitHistory, error) {
	if limit < 0 {
		limit = s.config.DefaultLimit
	}

	info, err := s.Open(path)
	if err != nil {
		return nil, err
	}

	if _, err := info.CommitInfo(limit); err != nil {
		s.logger.Error("failed to read history",
			zap.String("path", path), zap.Int("limit", limit), zap.Error(err))
		return nil, err
	}

	history := info.History()
	s.logger.Info("history read",
		zap.String("path", path),
		zap.Int("limit", limit),
		zap.Int("count", history.Len()))

	return history, nil
}

// Inspect runs both queries against one opened handle and returns the
// combined report. The queries short-circuit: a status failure means the
// history is never attempted.
func (s *Service) Inspect(_ context.Context, path string, limit int) (*Report, error) {
	if limit < 0 {
		limit = s.config.DefaultLimit
	}

	info, err := s.Open(path)
	if err != nil {
		return nil, err
	}

	if _, err := info.StatusInfo(); err != nil {
		s.logger.Error("failed to compute status",
			zap.String("path", path), zap.Error(err))
		return nil, err
	}

	if _, err := info.CommitInfo(limit); err != nil {
		s.logger.Error("failed to read history",
			zap.String("path", path), zap.Int("limit", limit), zap.Error(err))
		return nil, err
	}

	s.logger.Info("repository inspected",
		zap.String("path", path),
		zap.String("branch", info.Branch()),
		zap.Bool("dirty", info.Status().IsDirty),
		zap.Int("commits", info.History().Len()))

	return info.Report(), nil
}
