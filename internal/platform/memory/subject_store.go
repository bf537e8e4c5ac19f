package memory

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/planner/internal/domain"
	"github.com/phrazzld/planner/internal/platform/logger"
	"github.com/phrazzld/planner/internal/store"
)

// SubjectStore implements store.SubjectStore.
type SubjectStore struct {
	exec   execFn
	logger *slog.Logger
}

var _ store.SubjectStore = (*SubjectStore)(nil)

// Create implements store.SubjectStore.Create.
func (s *SubjectStore) Create(ctx context.Context, subject *domain.Subject) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := subject.Validate(); err != nil {
		log.Warn("subject validation failed during create", slog.String("error", err.Error()))
		return err
	}

	return s.exec(func(st *state) error {
		if subject.ID == uuid.Nil {
			subject.ID = uuid.New()
		} else if _, exists := st.subjects[subject.ID]; exists {
			return store.ErrIDExists
		}
		st.subjects[subject.ID] = subject.Clone()
		st.subjectOrder = append(st.subjectOrder, subject.ID)
		log.Debug("subject created", slog.String("subject_id", subject.ID.String()))
		return nil
	})
}

// GetByID implements store.SubjectStore.GetByID.
func (s *SubjectStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subject, error) {
	var out *domain.Subject
	err := s.exec(func(st *state) error {
		subject, ok := st.subjects[id]
		if !ok {
			return store.ErrSubjectNotFound
		}
		out = subject.Clone()
		return nil
	})
	return out, err
}

// List implements store.SubjectStore.List.
func (s *SubjectStore) List(ctx context.Context) ([]*domain.Subject, error) {
	var out []*domain.Subject
	err := s.exec(func(st *state) error {
		out = make([]*domain.Subject, 0, len(st.subjectOrder))
		for _, id := range st.subjectOrder {
			out = append(out, st.subjects[id].Clone())
		}
		return nil
	})
	return out, err
}

// Update implements store.SubjectStore.Update.
func (s *SubjectStore) Update(ctx context.Context, subject *domain.Subject) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := subject.Validate(); err != nil {
		log.Warn("subject validation failed during update",
			slog.String("error", err.Error()),
			slog.String("subject_id", subject.ID.String()))
		return false, err
	}

	var found bool
	err := s.exec(func(st *state) error {
		current, ok := st.subjects[subject.ID]
		if !ok {
			return nil
		}
		found = true
		updated := subject.Clone()
		updated.CreatedAt = current.CreatedAt
		st.subjects[subject.ID] = updated
		return nil
	})
	return found, err
}

// Delete implements store.SubjectStore.Delete.
func (s *SubjectStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var found bool
	err := s.exec(func(st *state) error {
		if _, ok := st.subjects[id]; !ok {
			return nil
		}
		found = true
		delete(st.subjects, id)
		st.subjectOrder = removeID(st.subjectOrder, id)
		return nil
	})
	return found, err
}
