package domain

// minGPAGrade is the lowest final grade that counts toward the GPA.
const minGPAGrade = 1.0

// Progress is a read-only summary of the plan.
type Progress struct {
	ApprovedCount        int     `json:"approved_count"`
	TotalCount           int     `json:"total_count"`
	CompletionPercentage float64 `json:"completion_percentage"`
	// GPA is 0 when no approved subject carries a qualifying grade.
	GPA float64 `json:"gpa"`
}

// ComputeProgress aggregates the subject collection. Approved subjects
// without a qualifying grade still count as approved but stay out of the GPA.
func ComputeProgress(subjects []*Subject) Progress {
	p := Progress{TotalCount: len(subjects)}

	var gradeSum float64
	var graded int
	for _, s := range subjects {
		if !s.IsApproved() {
			continue
		}
		p.ApprovedCount++
		if s.FinalGrade != nil && *s.FinalGrade >= minGPAGrade {
			gradeSum += *s.FinalGrade
			graded++
		}
	}

	if p.TotalCount > 0 {
		p.CompletionPercentage = float64(p.ApprovedCount) / float64(p.TotalCount) * 100
	}
	if graded > 0 {
		p.GPA = gradeSum / float64(graded)
	}

	return p
}
