package api

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/planner/internal/domain"
)

// CreateSubjectRequest is the body of POST /subjects.
type CreateSubjectRequest struct {
	Name            string   `json:"name"             validate:"required,max=200"`
	PrerequisiteIDs []string `json:"prerequisite_ids" validate:"omitempty,dive,uuid"`
}

// UpdateSubjectRequest is the body of PUT /subjects/{id}. A present
// prerequisite list replaces the current one; an absent or null list keeps it.
type UpdateSubjectRequest struct {
	Name            string    `json:"name"                       validate:"required,max=200"`
	PrerequisiteIDs *[]string `json:"prerequisite_ids,omitempty" validate:"omitempty,dive,uuid"`
}

// SetStatusRequest is the body of PUT /subjects/{id}/status.
type SetStatusRequest struct {
	Status string   `json:"status" validate:"required,oneof=pending in_progress approved final_pending must_retake"`
	Grade  *float64 `json:"grade"  validate:"omitempty,gte=1,lte=10"`
}

// SemesterRequest is the body of POST and PUT on semesters.
type SemesterRequest struct {
	Year int    `json:"year" validate:"required,gt=0"`
	Term string `json:"term" validate:"required,oneof=first_term second_term annual summer"`
}

// ExamRequest is the body of POST /subjects/{id}/exams and PUT /exams/{id}.
type ExamRequest struct {
	Type   string   `json:"type"   validate:"required,oneof=midterm final"`
	Title  string   `json:"title"  validate:"required,max=200"`
	Date   string   `json:"date"   validate:"required,datetime=2006-01-02"`
	Time   string   `json:"time"   validate:"required,datetime=15:04"`
	Grade  *float64 `json:"grade"  validate:"omitempty,gte=1,lte=10"`
	Topics string   `json:"topics" validate:"max=2000"`
}

// details converts the request into exam fields.
func (r ExamRequest) details() (domain.ExamDetails, error) {
	date, err := domain.ParseExamDate(r.Date)
	if err != nil {
		return domain.ExamDetails{}, domain.ErrExamDateEmpty
	}
	return domain.ExamDetails{
		Type:   domain.ExamType(r.Type),
		Title:  r.Title,
		Date:   date,
		Time:   r.Time,
		Grade:  r.Grade,
		Topics: r.Topics,
	}, nil
}

// SubjectResponse is the JSON form of a subject.
type SubjectResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Status          string    `json:"status"`
	FinalGrade      *float64  `json:"final_grade"`
	PrerequisiteIDs []string  `json:"prerequisite_ids"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// SemesterResponse is the JSON form of a semester.
type SemesterResponse struct {
	ID         string    `json:"id"`
	Year       int       `json:"year"`
	Term       string    `json:"term"`
	Label      string    `json:"label"`
	SubjectIDs []string  `json:"subject_ids"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ExamResponse is the JSON form of an exam.
type ExamResponse struct {
	ID        string    `json:"id"`
	SubjectID string    `json:"subject_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Grade     *float64  `json:"grade"`
	Topics    string    `json:"topics"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DependencyResponse is the dependency view of one subject.
type DependencyResponse struct {
	SubjectID     string            `json:"subject_id"`
	Prerequisites []SubjectResponse `json:"prerequisites"`
	Missing       []string          `json:"missing"`
	Dependents    []SubjectResponse `json:"dependents"`
}

// ProgressResponse carries the plan metrics rounded to two decimals.
type ProgressResponse struct {
	ApprovedCount        int     `json:"approved_count"`
	TotalCount           int     `json:"total_count"`
	CompletionPercentage float64 `json:"completion_percentage"`
	GPA                  float64 `json:"gpa"`
}

func subjectToResponse(s *domain.Subject) SubjectResponse {
	return SubjectResponse{
		ID:              s.ID.String(),
		Name:            s.Name,
		Status:          string(s.Status),
		FinalGrade:      s.FinalGrade,
		PrerequisiteIDs: idStrings(s.PrerequisiteIDs),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func subjectsToResponse(subjects []*domain.Subject) []SubjectResponse {
	out := make([]SubjectResponse, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, subjectToResponse(s))
	}
	return out
}

func semesterToResponse(s *domain.Semester) SemesterResponse {
	return SemesterResponse{
		ID:         s.ID.String(),
		Year:       s.Year,
		Term:       string(s.Term),
		Label:      s.Label(),
		SubjectIDs: idStrings(s.SubjectIDs),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func examToResponse(e *domain.Exam) ExamResponse {
	return ExamResponse{
		ID:        e.ID.String(),
		SubjectID: e.SubjectID.String(),
		Type:      string(e.Type),
		Title:     e.Title,
		Date:      e.Date.Format(domain.ExamDateLayout),
		Time:      e.Time,
		Grade:     e.Grade,
		Topics:    e.Topics,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func progressToResponse(p domain.Progress) ProgressResponse {
	return ProgressResponse{
		ApprovedCount:        p.ApprovedCount,
		TotalCount:           p.TotalCount,
		CompletionPercentage: round2(p.CompletionPercentage),
		GPA:                  round2(p.GPA),
	}
}

// round2 rounds half away from zero to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func idStrings(ids []uuid.UUID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}
