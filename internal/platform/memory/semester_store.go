package memory

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/planner/internal/domain"
	"github.com/phrazzld/planner/internal/platform/logger"
	"github.com/phrazzld/planner/internal/store"
)

// SemesterStore implements store.SemesterStore.
type SemesterStore struct {
	exec   execFn
	logger *slog.Logger
}

var _ store.SemesterStore = (*SemesterStore)(nil)

// Create implements store.SemesterStore.Create.
func (s *SemesterStore) Create(ctx context.Context, semester *domain.Semester) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := semester.Validate(); err != nil {
		log.Warn("semester validation failed during create", slog.String("error", err.Error()))
		return err
	}

	return s.exec(func(st *state) error {
		if semester.ID == uuid.Nil {
			semester.ID = uuid.New()
		} else if _, exists := st.semesters[semester.ID]; exists {
			return store.ErrIDExists
		}
		st.semesters[semester.ID] = semester.Clone()
		st.semesterOrder = append(st.semesterOrder, semester.ID)
		log.Debug("semester created", slog.String("semester_id", semester.ID.String()))
		return nil
	})
}

// GetByID implements store.SemesterStore.GetByID.
func (s *SemesterStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Semester, error) {
	var out *domain.Semester
	err := s.exec(func(st *state) error {
		semester, ok := st.semesters[id]
		if !ok {
			return store.ErrSemesterNotFound
		}
		out = semester.Clone()
		return nil
	})
	return out, err
}

// List implements store.SemesterStore.List.
func (s *SemesterStore) List(ctx context.Context) ([]*domain.Semester, error) {
	var out []*domain.Semester
	err := s.exec(func(st *state) error {
		out = make([]*domain.Semester, 0, len(st.semesterOrder))
		for _, id := range st.semesterOrder {
			out = append(out, st.semesters[id].Clone())
		}
		return nil
	})
	return out, err
}

// Update implements store.SemesterStore.Update.
func (s *SemesterStore) Update(ctx context.Context, semester *domain.Semester) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := semester.Validate(); err != nil {
		log.Warn("semester validation failed during update",
			slog.String("error", err.Error()),
			slog.String("semester_id", semester.ID.String()))
		return false, err
	}

	var found bool
	err := s.exec(func(st *state) error {
		current, ok := st.semesters[semester.ID]
		if !ok {
			return nil
		}
		found = true
		updated := semester.Clone()
		updated.CreatedAt = current.CreatedAt
		st.semesters[semester.ID] = updated
		return nil
	})
	return found, err
}

// Delete implements store.SemesterStore.Delete.
func (s *SemesterStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var found bool
	err := s.exec(func(st *state) error {
		if _, ok := st.semesters[id]; !ok {
			return nil
		}
		found = true
		delete(st.semesters, id)
		st.semesterOrder = removeID(st.semesterOrder, id)
		return nil
	})
	return found, err
}
