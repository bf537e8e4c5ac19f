package service

import (
	"context"
	"log/slog"

	"github.com/phrazzld/planner/internal/domain"
	"github.com/phrazzld/planner/internal/store"
)

// ProgressService reports aggregate progress over the whole plan.
type ProgressService interface {
	// GetProgress recomputes the metrics from the current subjects.
	GetProgress(ctx context.Context) (domain.Progress, error)
}

type progressServiceImpl struct {
	subjects store.SubjectStore
	logger   *slog.Logger
}

// NewProgressService creates a ProgressService reading from subjects.
func NewProgressService(subjects store.SubjectStore, logger *slog.Logger) (ProgressService, error) {
	if subjects == nil {
		return nil, missingDependency("subjects")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &progressServiceImpl{
		subjects: subjects,
		logger:   logger.With("component", "progress_service"),
	}, nil
}

func (s *progressServiceImpl) GetProgress(ctx context.Context) (domain.Progress, error) {
	subjects, err := s.subjects.List(ctx)
	if err != nil {
		return domain.Progress{}, NewServiceError("get_progress", "failed to list subjects", err)
	}
	return domain.ComputeProgress(subjects), nil
}
