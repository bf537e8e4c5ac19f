package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/planner/internal/domain"
	"github.com/phrazzld/planner/internal/events"
	"github.com/phrazzld/planner/internal/store"
)

// ExamService keeps the exam ledger of each subject.
type ExamService interface {
	// CreateExam records an exam for an existing subject.
	CreateExam(ctx context.Context, subjectID uuid.UUID, details domain.ExamDetails) (*domain.Exam, error)

	// GetExam retrieves an exam by ID.
	GetExam(ctx context.Context, id uuid.UUID) (*domain.Exam, error)

	// ListExams returns the exams of a subject by date then time.
	ListExams(ctx context.Context, subjectID uuid.UUID) ([]*domain.Exam, error)

	// UpdateExam replaces the editable fields of an exam.
	UpdateExam(ctx context.Context, id uuid.UUID, details domain.ExamDetails) (*domain.Exam, error)

	// DeleteExam removes one exam.
	DeleteExam(ctx context.Context, id uuid.UUID) error
}

type examServiceImpl struct {
	backend store.Backend
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewExamService creates an ExamService.
// It returns an error if any of the required dependencies are nil.
func NewExamService(
	backend store.Backend,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (ExamService, error) {
	if backend == nil {
		return nil, missingDependency("backend")
	}
	if emitter == nil {
		return nil, missingDependency("emitter")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &examServiceImpl{
		backend: backend,
		emitter: emitter,
		logger:  logger.With("component", "exam_service"),
	}, nil
}

func (s *examServiceImpl) CreateExam(
	ctx context.Context,
	subjectID uuid.UUID,
	details domain.ExamDetails,
) (*domain.Exam, error) {
	exam, err := domain.NewExam(subjectID, details)
	if err != nil {
		return nil, err
	}

	err = s.backend.RunInTransaction(ctx, func(ctx context.Context, tx store.Stores) error {
		if _, err := tx.Subjects.GetByID(ctx, subjectID); err != nil {
			return err
		}
		return tx.Exams.Create(ctx, exam)
	})
	if err != nil {
		return nil, NewServiceError("create_exam", "failed to create exam", err)
	}

	publish(ctx, s.emitter, s.logger, events.ExamCreated, exam.ID, exam)
	return exam, nil
}

func (s *examServiceImpl) GetExam(ctx context.Context, id uuid.UUID) (*domain.Exam, error) {
	exam, err := s.backend.Stores().Exams.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("get_exam", "failed to retrieve exam", err)
	}
	return exam, nil
}

func (s *examServiceImpl) ListExams(ctx context.Context, subjectID uuid.UUID) ([]*domain.Exam, error) {
	stores := s.backend.Stores()

	if _, err := stores.Subjects.GetByID(ctx, subjectID); err != nil {
		return nil, NewServiceError("list_exams", "failed to retrieve subject", err)
	}

	exams, err := stores.Exams.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, NewServiceError("list_exams", "failed to list exams", err)
	}
	domain.SortExams(exams)
	return exams, nil
}

func (s *examServiceImpl) UpdateExam(
	ctx context.Context,
	id uuid.UUID,
	details domain.ExamDetails,
) (*domain.Exam, error) {
	var updated *domain.Exam
	err := s.backend.RunInTransaction(ctx, func(ctx context.Context, tx store.Stores) error {
		exam, err := tx.Exams.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := exam.Update(details); err != nil {
			return err
		}
		found, err := tx.Exams.Update(ctx, exam)
		if err != nil {
			return err
		}
		if !found {
			return store.ErrExamNotFound
		}
		updated = exam
		return nil
	})
	if err != nil {
		return nil, NewServiceError("update_exam", "failed to update exam", err)
	}

	publish(ctx, s.emitter, s.logger, events.ExamUpdated, updated.ID, updated)
	return updated, nil
}

func (s *examServiceImpl) DeleteExam(ctx context.Context, id uuid.UUID) error {
	err := s.backend.RunInTransaction(ctx, func(ctx context.Context, tx store.Stores) error {
		found, err := tx.Exams.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return store.ErrExamNotFound
		}
		return nil
	})
	if err != nil {
		return NewServiceError("delete_exam", "failed to delete exam", err)
	}

	publish(ctx, s.emitter, s.logger, events.ExamDeleted, id, nil)
	return nil
}
