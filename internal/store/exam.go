package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/planner/internal/domain"
)

// ExamStore defines the interface for exam persistence.
type ExamStore interface {
	// Create saves a new exam, assigning an ID when it has none.
	// The subject reference is not checked.
	Create(ctx context.Context, exam *domain.Exam) error

	// GetByID retrieves an exam by its unique ID.
	// Returns ErrExamNotFound if the exam does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Exam, error)

	// List returns every exam in creation order.
	List(ctx context.Context) ([]*domain.Exam, error)

	// ListBySubject returns the exams of one subject in creation order.
	// Returns an empty slice if the subject has none.
	ListBySubject(ctx context.Context, subjectID uuid.UUID) ([]*domain.Exam, error)

	// Update replaces the stored fields of an existing exam.
	// Returns false without error when no exam has that ID.
	Update(ctx context.Context, exam *domain.Exam) (bool, error)

	// Delete removes an exam and reports whether it existed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// DeleteBySubject removes every exam of the subject and returns how
	// many were removed.
	DeleteBySubject(ctx context.Context, subjectID uuid.UUID) (int, error)
}
