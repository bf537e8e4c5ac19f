package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Subject is a course in the study plan. Its ID is assigned by the store on
// creation; semester membership is not recorded here but derived from the
// semesters that list the subject.
type Subject struct {
	ID              uuid.UUID     `json:"id"`
	Name            string        `json:"name"`
	Status          SubjectStatus `json:"status"`
	FinalGrade      *float64      `json:"final_grade,omitempty"`
	PrerequisiteIDs []uuid.UUID   `json:"prerequisite_ids"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// NewSubject creates a pending subject with no grade and no prerequisites.
// Returns an error if validation fails.
func NewSubject(name string) (*Subject, error) {
	now := time.Now().UTC()
	subject := &Subject{
		Name:            strings.TrimSpace(name),
		Status:          SubjectStatusPending,
		PrerequisiteIDs: []uuid.UUID{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := subject.Validate(); err != nil {
		return nil, err
	}

	return subject, nil
}

// Validate checks if the Subject has valid data.
// Returns an error if any field fails validation.
func (s *Subject) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrSubjectNameEmpty
	}

	if !s.Status.IsValid() {
		return ErrInvalidSubjectStatus
	}

	if s.FinalGrade != nil && !s.Status.RequiresGrade() {
		return ErrGradeWithoutApproval
	}

	seen := make(map[uuid.UUID]struct{}, len(s.PrerequisiteIDs))
	for _, id := range s.PrerequisiteIDs {
		if id == uuid.Nil {
			return ErrEmptyPrerequisiteID
		}
		if _, dup := seen[id]; dup {
			return ErrDuplicatePrerequisite
		}
		seen[id] = struct{}{}
	}

	return nil
}

// Rename changes the display name and bumps UpdatedAt.
func (s *Subject) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrSubjectNameEmpty
	}
	s.Name = name
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// SetPrerequisites replaces the prerequisite set. Duplicates are collapsed
// keeping the first occurrence. Graph-level checks (cycles, unknown ids)
// need the whole collection and live in ValidatePrerequisites.
func (s *Subject) SetPrerequisites(ids []uuid.UUID) error {
	deduped := DedupeIDs(ids)
	for _, id := range deduped {
		if id == uuid.Nil {
			return ErrEmptyPrerequisiteID
		}
		if id == s.ID {
			return ErrSelfPrerequisite
		}
	}
	s.PrerequisiteIDs = deduped
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// TransitionTo moves the subject to status, applying the grade rule of the
// target status. Entering approved without a grade returns ErrGradeRequired
// and leaves the subject untouched; entering any other status clears the
// final grade whatever value was supplied. Grade range is not checked here.
func (s *Subject) TransitionTo(status SubjectStatus, grade *float64) error {
	if !status.IsValid() {
		return ErrInvalidSubjectStatus
	}

	if status.RequiresGrade() {
		if grade == nil {
			return ErrGradeRequired
		}
		g := *grade
		s.FinalGrade = &g
	} else {
		s.FinalGrade = nil
	}

	s.Status = status
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// IsApproved reports whether the subject has been passed.
func (s *Subject) IsApproved() bool {
	return s.Status == SubjectStatusApproved
}

// HasPrerequisite reports whether id is listed among the prerequisites.
func (s *Subject) HasPrerequisite(id uuid.UUID) bool {
	return slices.Contains(s.PrerequisiteIDs, id)
}

// Clone returns a deep copy of the subject.
func (s *Subject) Clone() *Subject {
	if s == nil {
		return nil
	}
	cp := *s
	cp.PrerequisiteIDs = slices.Clone(s.PrerequisiteIDs)
	if cp.PrerequisiteIDs == nil {
		cp.PrerequisiteIDs = []uuid.UUID{}
	}
	if s.FinalGrade != nil {
		g := *s.FinalGrade
		cp.FinalGrade = &g
	}
	return &cp
}

// DedupeIDs returns ids with duplicates removed, keeping first occurrences.
func DedupeIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
