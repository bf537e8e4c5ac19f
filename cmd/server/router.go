package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/planner/internal/api"
	apiMiddleware "github.com/phrazzld/planner/internal/api/middleware"
)

// setupRouter builds the router with middleware, the API routes and the
// health check.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	handlers := api.Handlers{
		Subjects:  api.NewSubjectHandler(app.subjectService, app.logger),
		Semesters: api.NewSemesterHandler(app.semesterService, app.logger),
		Exams:     api.NewExamHandler(app.examService, app.logger),
		Progress:  api.NewProgressHandler(app.progressService, app.logger),
	}

	r.Route("/api", func(r chi.Router) {
		if app.jwtService != nil {
			r.Use(apiMiddleware.NewAuthMiddleware(app.jwtService).Authenticate)
		}
		handlers.Mount(r)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
