package domain

// SubjectStatus represents where a subject stands in the student's progress.
type SubjectStatus string

// Possible subject status values
const (
	SubjectStatusPending      SubjectStatus = "pending"
	SubjectStatusInProgress   SubjectStatus = "in_progress"
	SubjectStatusApproved     SubjectStatus = "approved"
	SubjectStatusFinalPending SubjectStatus = "final_pending"
	SubjectStatusMustRetake   SubjectStatus = "must_retake"
)

// gradeRule describes whether a final grade may be attached to a status.
type gradeRule int

const (
	// gradeCleared means entering the status wipes any final grade.
	gradeCleared gradeRule = iota
	// gradeRequired means the status can only be entered with a final grade.
	gradeRequired
)

// statusGradeRules is the single source of truth for status side effects.
// Any status may move to any other; only the target status decides what
// happens to the final grade.
var statusGradeRules = map[SubjectStatus]gradeRule{
	SubjectStatusPending:      gradeCleared,
	SubjectStatusInProgress:   gradeCleared,
	SubjectStatusApproved:     gradeRequired,
	SubjectStatusFinalPending: gradeCleared,
	SubjectStatusMustRetake:   gradeCleared,
}

// SubjectStatuses lists every status in display order.
func SubjectStatuses() []SubjectStatus {
	return []SubjectStatus{
		SubjectStatusPending,
		SubjectStatusInProgress,
		SubjectStatusApproved,
		SubjectStatusFinalPending,
		SubjectStatusMustRetake,
	}
}

// IsValid reports whether s is a known status.
func (s SubjectStatus) IsValid() bool {
	_, ok := statusGradeRules[s]
	return ok
}

// RequiresGrade reports whether entering s needs a final grade. It is also
// the only status under which a subject may carry one.
func (s SubjectStatus) RequiresGrade() bool {
	return statusGradeRules[s] == gradeRequired
}
