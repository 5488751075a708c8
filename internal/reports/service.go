package reports

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Service runs inspections and persists their results.
type Service struct {
	reports   *Repository
	inspector Inspector

	logger *zap.Logger
}

func NewService(reports *Repository, inspector Inspector, logger *zap.Logger) *Service {
	return &Service{
		reports:   reports,
		inspector: inspector,
		logger:    logger,
	}
}

// Create inspects the repository at path and stores the resulting report.
// A negative limit requests the configured default history window.
func (s *Service) Create(ctx context.Context, path string, limit int) (*Report, error) {
	result, err := s.inspector.Inspect(ctx, path, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect repository: %w", err)
	}

	model := newReportModel(path, result)
	if err := s.reports.Create(ctx, model); err != nil {
		s.logger.Error("failed to store report",
			zap.String("path", path), zap.Error(err))
		return nil, err
	}

	s.logger.Info("report created",
		zap.String("id", model.ID.String()),
		zap.String("path", path),
		zap.Bool("dirty", result.Status.IsDirty),
		zap.Int("commits", result.History.Len()))

	return newReport(model), nil
}

// List returns all stored reports.
func (s *Service) List(ctx context.Context) ([]Report, error) {
	return s.reports.List(ctx)
}

// Get returns a report by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Report, error) {
	return s.reports.GetByID(ctx, id)
}

// GetLatestForPath returns the most recent report for a repository path.
func (s *Service) GetLatestForPath(ctx context.Context, path string) (*Report, error) {
	return s.reports.GetLatestByPath(ctx, path)
}

// Delete removes a report by ID.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.reports.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("report deleted", zap.String("id", id.String()))
	return nil
}

// Paths returns the distinct repository paths reports exist for.
func (s *Service) Paths(ctx context.Context) ([]string, error) {
	reports, err := s.reports.List(ctx)
	if err != nil {
		return nil, err
	}

	paths := lo.Uniq(lo.Map(reports, func(report Report, _ int) string {
		return report.Path
	}))

	return paths, nil
}
