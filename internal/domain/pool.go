package domain

import "github.com/google/uuid"

// UnassignedSubjects returns the subjects that no semester lists, keeping
// the order of subjects. The pool is never stored; it is recomputed from
// semester membership on every call.
func UnassignedSubjects(subjects []*Subject, semesters []*Semester) []*Subject {
	scheduled := make(map[uuid.UUID]struct{})
	for _, sem := range semesters {
		for _, id := range sem.SubjectIDs {
			scheduled[id] = struct{}{}
		}
	}

	pool := make([]*Subject, 0, len(subjects))
	for _, s := range subjects {
		if _, ok := scheduled[s.ID]; !ok {
			pool = append(pool, s)
		}
	}
	return pool
}

// FindSemesterOf returns the semester listing subjectID, or nil.
func FindSemesterOf(subjectID uuid.UUID, semesters []*Semester) *Semester {
	for _, sem := range semesters {
		if sem.Contains(subjectID) {
			return sem
		}
	}
	return nil
}
