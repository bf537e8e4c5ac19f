package domain

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Term identifies which part of the academic year a semester covers.
type Term string

// Possible term values, in calendar order.
const (
	TermFirst  Term = "first_term"
	TermSecond Term = "second_term"
	TermAnnual Term = "annual"
	TermSummer Term = "summer"
)

var termOrder = map[Term]int{
	TermFirst:  0,
	TermSecond: 1,
	TermAnnual: 2,
	TermSummer: 3,
}

// IsValid reports whether t is a known term.
func (t Term) IsValid() bool {
	_, ok := termOrder[t]
	return ok
}

// Order returns the position of t within a year, or -1 if t is unknown.
func (t Term) Order() int {
	if o, ok := termOrder[t]; ok {
		return o
	}
	return -1
}

// Semester is a scheduling container for subjects. SubjectIDs keeps the
// order in which subjects were placed.
type Semester struct {
	ID         uuid.UUID   `json:"id"`
	Year       int         `json:"year"`
	Term       Term        `json:"term"`
	SubjectIDs []uuid.UUID `json:"subject_ids"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// NewSemester creates an empty semester for the given year and term.
// Returns an error if validation fails.
func NewSemester(year int, term Term) (*Semester, error) {
	now := time.Now().UTC()
	semester := &Semester{
		Year:       year,
		Term:       term,
		SubjectIDs: []uuid.UUID{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := semester.Validate(); err != nil {
		return nil, err
	}

	return semester, nil
}

// Validate checks if the Semester has valid data.
func (s *Semester) Validate() error {
	if s.Year <= 0 {
		return ErrInvalidSemesterYear
	}

	if !s.Term.IsValid() {
		return ErrInvalidTerm
	}

	return nil
}

// Label returns a short human readable name such as "2024 first_term".
func (s *Semester) Label() string {
	return fmt.Sprintf("%d %s", s.Year, s.Term)
}

// Contains reports whether the subject is scheduled in this semester.
func (s *Semester) Contains(subjectID uuid.UUID) bool {
	return slices.Contains(s.SubjectIDs, subjectID)
}

// AddSubject appends the subject if it is not already listed.
// Returns false when the subject was already present.
func (s *Semester) AddSubject(subjectID uuid.UUID) bool {
	if s.Contains(subjectID) {
		return false
	}
	s.SubjectIDs = append(s.SubjectIDs, subjectID)
	s.UpdatedAt = time.Now().UTC()
	return true
}

// RemoveSubject drops the subject from the list, keeping the order of the
// remaining ones. Returns false when the subject was not listed.
func (s *Semester) RemoveSubject(subjectID uuid.UUID) bool {
	idx := slices.Index(s.SubjectIDs, subjectID)
	if idx < 0 {
		return false
	}
	s.SubjectIDs = slices.Delete(s.SubjectIDs, idx, idx+1)
	s.UpdatedAt = time.Now().UTC()
	return true
}

// Reschedule changes the year and term.
func (s *Semester) Reschedule(year int, term Term) error {
	updated := *s
	updated.Year = year
	updated.Term = term
	if err := updated.Validate(); err != nil {
		return err
	}
	s.Year = year
	s.Term = term
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// Clone returns a deep copy of the semester.
func (s *Semester) Clone() *Semester {
	if s == nil {
		return nil
	}
	cp := *s
	cp.SubjectIDs = slices.Clone(s.SubjectIDs)
	if cp.SubjectIDs == nil {
		cp.SubjectIDs = []uuid.UUID{}
	}
	return &cp
}

// SortSemesters orders semesters chronologically: by year, then term, with
// creation order breaking ties.
func SortSemesters(semesters []*Semester) {
	slices.SortStableFunc(semesters, func(a, b *Semester) int {
		if a.Year != b.Year {
			return a.Year - b.Year
		}
		return a.Term.Order() - b.Term.Order()
	})
}
