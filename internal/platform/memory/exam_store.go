package memory

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/planner/internal/domain"
	"github.com/phrazzld/planner/internal/platform/logger"
	"github.com/phrazzld/planner/internal/store"
)

// ExamStore implements store.ExamStore.
type ExamStore struct {
	exec   execFn
	logger *slog.Logger
}

var _ store.ExamStore = (*ExamStore)(nil)

// Create implements store.ExamStore.Create.
func (s *ExamStore) Create(ctx context.Context, exam *domain.Exam) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := exam.Validate(); err != nil {
		log.Warn("exam validation failed during create", slog.String("error", err.Error()))
		return err
	}

	return s.exec(func(st *state) error {
		if exam.ID == uuid.Nil {
			exam.ID = uuid.New()
		} else if _, exists := st.exams[exam.ID]; exists {
			return store.ErrIDExists
		}
		st.exams[exam.ID] = exam.Clone()
		st.examOrder = append(st.examOrder, exam.ID)
		log.Debug("exam created",
			slog.String("exam_id", exam.ID.String()),
			slog.String("subject_id", exam.SubjectID.String()))
		return nil
	})
}

// GetByID implements store.ExamStore.GetByID.
func (s *ExamStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exam, error) {
	var out *domain.Exam
	err := s.exec(func(st *state) error {
		exam, ok := st.exams[id]
		if !ok {
			return store.ErrExamNotFound
		}
		out = exam.Clone()
		return nil
	})
	return out, err
}

// List implements store.ExamStore.List.
func (s *ExamStore) List(ctx context.Context) ([]*domain.Exam, error) {
	return s.filter(func(*domain.Exam) bool { return true })
}

// ListBySubject implements store.ExamStore.ListBySubject.
func (s *ExamStore) ListBySubject(ctx context.Context, subjectID uuid.UUID) ([]*domain.Exam, error) {
	return s.filter(func(e *domain.Exam) bool { return e.SubjectID == subjectID })
}

func (s *ExamStore) filter(keep func(*domain.Exam) bool) ([]*domain.Exam, error) {
	out := []*domain.Exam{}
	err := s.exec(func(st *state) error {
		for _, id := range st.examOrder {
			if e := st.exams[id]; keep(e) {
				out = append(out, e.Clone())
			}
		}
		return nil
	})
	return out, err
}

// Update implements store.ExamStore.Update. The stored subject reference is
// kept even if the argument carries a different one.
func (s *ExamStore) Update(ctx context.Context, exam *domain.Exam) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := exam.Validate(); err != nil {
		log.Warn("exam validation failed during update",
			slog.String("error", err.Error()),
			slog.String("exam_id", exam.ID.String()))
		return false, err
	}

	var found bool
	err := s.exec(func(st *state) error {
		current, ok := st.exams[exam.ID]
		if !ok {
			return nil
		}
		found = true
		updated := exam.Clone()
		updated.SubjectID = current.SubjectID
		updated.CreatedAt = current.CreatedAt
		st.exams[exam.ID] = updated
		return nil
	})
	return found, err
}

// Delete implements store.ExamStore.Delete.
func (s *ExamStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	var found bool
	err := s.exec(func(st *state) error {
		if _, ok := st.exams[id]; !ok {
			return nil
		}
		found = true
		delete(st.exams, id)
		st.examOrder = removeID(st.examOrder, id)
		return nil
	})
	return found, err
}

// DeleteBySubject implements store.ExamStore.DeleteBySubject.
func (s *ExamStore) DeleteBySubject(ctx context.Context, subjectID uuid.UUID) (int, error) {
	var n int
	err := s.exec(func(st *state) error {
		kept := st.examOrder[:0]
		for _, id := range st.examOrder {
			if st.exams[id].SubjectID == subjectID {
				delete(st.exams, id)
				n++
				continue
			}
			kept = append(kept, id)
		}
		st.examOrder = kept
		return nil
	})
	return n, err
}
