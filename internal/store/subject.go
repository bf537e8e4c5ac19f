package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/planner/internal/domain"
)

// SubjectStore defines the interface for subject persistence.
type SubjectStore interface {
	// Create saves a new subject. A nil ID is replaced with a fresh one and
	// written back to the argument.
	// Returns validation errors from the domain Subject if data is invalid.
	Create(ctx context.Context, subject *domain.Subject) error

	// GetByID retrieves a subject by its unique ID.
	// Returns ErrSubjectNotFound if the subject does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Subject, error)

	// List returns every subject in creation order.
	List(ctx context.Context) ([]*domain.Subject, error)

	// Update replaces the stored fields of an existing subject.
	// Returns false without error when no subject has that ID.
	Update(ctx context.Context, subject *domain.Subject) (bool, error)

	// Delete removes a subject and reports whether it existed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
