package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ExamType distinguishes partial evaluations from finals.
type ExamType string

// Possible exam types
const (
	ExamTypeMidterm ExamType = "midterm"
	ExamTypeFinal   ExamType = "final"
)

// IsValid reports whether t is a known exam type.
func (t ExamType) IsValid() bool {
	return t == ExamTypeMidterm || t == ExamTypeFinal
}

// Layouts used for the calendar date and time-of-day of an exam.
const (
	ExamDateLayout = "2006-01-02"
	ExamTimeLayout = "15:04"
)

// Exam is an evaluation event tied to one subject. Date holds the calendar
// day at UTC midnight; Time is the local time of day as HH:MM.
type Exam struct {
	ID        uuid.UUID `json:"id"`
	SubjectID uuid.UUID `json:"subject_id"`
	Type      ExamType  `json:"type"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	Time      string    `json:"time"`
	Grade     *float64  `json:"grade,omitempty"`
	Topics    string    `json:"topics,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExamDetails carries the editable fields of an exam.
type ExamDetails struct {
	Type   ExamType
	Title  string
	Date   time.Time
	Time   string
	Grade  *float64
	Topics string
}

// NewExam creates an exam for the given subject.
// Returns an error if validation fails.
func NewExam(subjectID uuid.UUID, details ExamDetails) (*Exam, error) {
	now := time.Now().UTC()
	exam := &Exam{
		SubjectID: subjectID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	exam.apply(details)

	if err := exam.Validate(); err != nil {
		return nil, err
	}

	return exam, nil
}

// Validate checks if the Exam has valid data.
func (e *Exam) Validate() error {
	if e.SubjectID == uuid.Nil {
		return ErrExamSubjectIDEmpty
	}

	if strings.TrimSpace(e.Title) == "" {
		return ErrExamTitleEmpty
	}

	if !e.Type.IsValid() {
		return ErrInvalidExamType
	}

	if e.Date.IsZero() {
		return ErrExamDateEmpty
	}

	if _, err := time.Parse(ExamTimeLayout, e.Time); err != nil {
		return ErrInvalidExamTime
	}

	return nil
}

// Update replaces the editable fields. The subject reference never changes.
// On validation failure the exam keeps its previous values.
func (e *Exam) Update(details ExamDetails) error {
	updated := *e
	updated.apply(details)
	if err := updated.Validate(); err != nil {
		return err
	}
	updated.UpdatedAt = time.Now().UTC()
	*e = updated
	return nil
}

func (e *Exam) apply(d ExamDetails) {
	e.Type = d.Type
	e.Title = strings.TrimSpace(d.Title)
	e.Date = TruncateToDate(d.Date)
	e.Time = normalizeExamTime(d.Time)
	e.Topics = d.Topics
	e.Grade = nil
	if d.Grade != nil {
		g := *d.Grade
		e.Grade = &g
	}
}

// Clone returns a deep copy of the exam.
func (e *Exam) Clone() *Exam {
	if e == nil {
		return nil
	}
	cp := *e
	if e.Grade != nil {
		g := *e.Grade
		cp.Grade = &g
	}
	return &cp
}

// TruncateToDate drops the time-of-day and normalises to UTC midnight.
func TruncateToDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseExamDate parses a YYYY-MM-DD calendar date.
func ParseExamDate(s string) (time.Time, error) {
	return time.Parse(ExamDateLayout, s)
}

// normalizeExamTime rewrites a parseable time of day as zero-padded HH:MM,
// so "9:30" is stored as "09:30". Unparseable input is returned unchanged
// for Validate to reject.
func normalizeExamTime(s string) string {
	t, err := time.Parse(ExamTimeLayout, strings.TrimSpace(s))
	if err != nil {
		return s
	}
	return t.Format(ExamTimeLayout)
}

// SortExams orders exams by date then time of day. The sort is stable, so
// exams on the same slot keep their insertion order.
func SortExams(exams []*Exam) {
	slices.SortStableFunc(exams, func(a, b *Exam) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return strings.Compare(normalizeExamTime(a.Time), normalizeExamTime(b.Time))
	})
}
