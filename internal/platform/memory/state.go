package memory

import (
	"slices"

	"github.com/google/uuid"
	"github.com/phrazzld/planner/internal/domain"
)

// state is the whole plan. The order slices record insertion order so that
// List results are stable across calls.
type state struct {
	subjects      map[uuid.UUID]*domain.Subject
	subjectOrder  []uuid.UUID
	semesters     map[uuid.UUID]*domain.Semester
	semesterOrder []uuid.UUID
	exams         map[uuid.UUID]*domain.Exam
	examOrder     []uuid.UUID
}

func newState() *state {
	return &state{
		subjects:  map[uuid.UUID]*domain.Subject{},
		semesters: map[uuid.UUID]*domain.Semester{},
		exams:     map[uuid.UUID]*domain.Exam{},
	}
}

func (s *state) clone() *state {
	cp := &state{
		subjects:      make(map[uuid.UUID]*domain.Subject, len(s.subjects)),
		subjectOrder:  slices.Clone(s.subjectOrder),
		semesters:     make(map[uuid.UUID]*domain.Semester, len(s.semesters)),
		semesterOrder: slices.Clone(s.semesterOrder),
		exams:         make(map[uuid.UUID]*domain.Exam, len(s.exams)),
		examOrder:     slices.Clone(s.examOrder),
	}
	for id, v := range s.subjects {
		cp.subjects[id] = v.Clone()
	}
	for id, v := range s.semesters {
		cp.semesters[id] = v.Clone()
	}
	for id, v := range s.exams {
		cp.exams[id] = v.Clone()
	}
	return cp
}

func removeID(order []uuid.UUID, id uuid.UUID) []uuid.UUID {
	if i := slices.Index(order, id); i >= 0 {
		return slices.Delete(order, i, i+1)
	}
	return order
}
