package api

import "github.com/go-chi/chi/v5"

// Handlers groups the planner handlers for route registration.
type Handlers struct {
	Subjects  *SubjectHandler
	Semesters *SemesterHandler
	Exams     *ExamHandler
	Progress  *ProgressHandler
}

// Mount registers the planner routes on r.
func (h Handlers) Mount(r chi.Router) {
	r.Route("/subjects", func(r chi.Router) {
		r.Get("/", h.Subjects.ListSubjects)
		r.Post("/", h.Subjects.CreateSubject)
		r.Get("/unassigned", h.Subjects.ListUnassigned)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Subjects.GetSubject)
			r.Put("/", h.Subjects.UpdateSubject)
			r.Delete("/", h.Subjects.DeleteSubject)
			r.Put("/status", h.Subjects.SetStatus)
			r.Get("/dependencies", h.Subjects.GetDependencies)
			r.Get("/exams", h.Exams.ListSubjectExams)
			r.Post("/exams", h.Exams.CreateExam)
		})
	})

	r.Route("/semesters", func(r chi.Router) {
		r.Get("/", h.Semesters.ListSemesters)
		r.Post("/", h.Semesters.CreateSemester)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Semesters.GetSemester)
			r.Put("/", h.Semesters.UpdateSemester)
			r.Delete("/", h.Semesters.DeleteSemester)
			r.Put("/subjects/{subjectID}", h.Semesters.AssignSubject)
			r.Delete("/subjects/{subjectID}", h.Semesters.UnassignSubject)
		})
	})

	r.Route("/exams/{id}", func(r chi.Router) {
		r.Get("/", h.Exams.GetExam)
		r.Put("/", h.Exams.UpdateExam)
		r.Delete("/", h.Exams.DeleteExam)
	})

	r.Get("/progress", h.Progress.GetProgress)
}
