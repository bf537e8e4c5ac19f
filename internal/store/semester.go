package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/planner/internal/domain"
)

// SemesterStore defines the interface for semester persistence. The
// ordered subject list is stored together with the semester.
type SemesterStore interface {
	// Create saves a new semester, assigning an ID when it has none.
	Create(ctx context.Context, semester *domain.Semester) error

	// GetByID retrieves a semester by its unique ID.
	// Returns ErrSemesterNotFound if the semester does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Semester, error)

	// List returns every semester in creation order.
	List(ctx context.Context) ([]*domain.Semester, error)

	// Update replaces year, term and subject list of an existing semester.
	// Returns false without error when no semester has that ID.
	Update(ctx context.Context, semester *domain.Semester) (bool, error)

	// Delete removes a semester and reports whether it existed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
