package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validExamDetails() ExamDetails {
	return ExamDetails{
		Type:   ExamTypeMidterm,
		Title:  "First partial",
		Date:   time.Date(2025, time.May, 12, 15, 30, 0, 0, time.UTC),
		Time:   "09:00",
		Topics: "limits, derivatives",
	}
}

func TestNewExam(t *testing.T) {
	t.Parallel()

	subjectID := uuid.New()
	exam, err := NewExam(subjectID, validExamDetails())
	require.NoError(t, err)

	assert.Equal(t, subjectID, exam.SubjectID)
	assert.Equal(t, ExamTypeMidterm, exam.Type)
	assert.Equal(t, time.Date(2025, time.May, 12, 0, 0, 0, 0, time.UTC), exam.Date, "date is truncated to the day")
	assert.Nil(t, exam.Grade)
}

func TestNewExamValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		subject uuid.UUID
		mutate  func(*ExamDetails)
		wantErr error
	}{
		{"missing subject", uuid.Nil, func(*ExamDetails) {}, ErrExamSubjectIDEmpty},
		{"blank title", uuid.New(), func(d *ExamDetails) { d.Title = "  " }, ErrExamTitleEmpty},
		{"unknown type", uuid.New(), func(d *ExamDetails) { d.Type = "quiz" }, ErrInvalidExamType},
		{"no date", uuid.New(), func(d *ExamDetails) { d.Date = time.Time{} }, ErrExamDateEmpty},
		{"bad time", uuid.New(), func(d *ExamDetails) { d.Time = "9am" }, ErrInvalidExamTime},
		{"time out of range", uuid.New(), func(d *ExamDetails) { d.Time = "25:00" }, ErrInvalidExamTime},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			details := validExamDetails()
			tc.mutate(&details)
			_, err := NewExam(tc.subject, details)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestExamUpdate(t *testing.T) {
	t.Parallel()

	exam, err := NewExam(uuid.New(), validExamDetails())
	require.NoError(t, err)
	subjectID := exam.SubjectID

	grade := 8.5
	details := validExamDetails()
	details.Type = ExamTypeFinal
	details.Title = "Final"
	details.Grade = &grade
	require.NoError(t, exam.Update(details))

	assert.Equal(t, subjectID, exam.SubjectID)
	assert.Equal(t, ExamTypeFinal, exam.Type)
	require.NotNil(t, exam.Grade)
	assert.Equal(t, 8.5, *exam.Grade)

	details.Title = ""
	assert.ErrorIs(t, exam.Update(details), ErrExamTitleEmpty)
	assert.Equal(t, "Final", exam.Title, "failed update keeps previous values")
}

func TestSortExams(t *testing.T) {
	t.Parallel()

	day := func(d int) time.Time { return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC) }
	e1 := &Exam{ID: uuid.New(), Date: day(10), Time: "10:00"}
	e2 := &Exam{ID: uuid.New(), Date: day(3), Time: "18:00"}
	e3 := &Exam{ID: uuid.New(), Date: day(10), Time: "08:00"}
	e4 := &Exam{ID: uuid.New(), Date: day(3), Time: "18:00"}
	e5 := &Exam{ID: uuid.New(), Date: day(10), Time: "9:30"}

	list := []*Exam{e1, e2, e3, e4, e5}
	SortExams(list)

	assert.Equal(t, []*Exam{e2, e4, e3, e5, e1}, list)
}

func TestExamTimeIsZeroPadded(t *testing.T) {
	t.Parallel()

	details := ExamDetails{
		Type:  ExamTypeMidterm,
		Title: "Partial",
		Date:  time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC),
		Time:  "9:05",
	}
	exam, err := NewExam(uuid.New(), details)
	require.NoError(t, err)
	assert.Equal(t, "09:05", exam.Time)

	details.Time = "7:45"
	require.NoError(t, exam.Update(details))
	assert.Equal(t, "07:45", exam.Time)

	details.Time = "25:00"
	assert.ErrorIs(t, exam.Update(details), ErrInvalidExamTime)
	assert.Equal(t, "07:45", exam.Time)
}
