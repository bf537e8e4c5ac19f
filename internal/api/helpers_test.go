package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/planner/internal/api"
	"github.com/phrazzld/planner/internal/api/middleware"
	"github.com/phrazzld/planner/internal/events"
	"github.com/phrazzld/planner/internal/platform/memory"
	"github.com/phrazzld/planner/internal/service"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires the handlers to real services over an in-memory plan.
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	backend := memory.NewBackend(log)
	emitter := events.NewInMemoryEventEmitter(log)

	subjects, err := service.NewSubjectService(backend, emitter, log)
	require.NoError(t, err)
	semesters, err := service.NewSemesterService(backend, emitter, log)
	require.NoError(t, err)
	exams, err := service.NewExamService(backend, emitter, log)
	require.NoError(t, err)
	progress, err := service.NewProgressService(backend.Stores().Subjects, log)
	require.NoError(t, err)

	handlers := api.Handlers{
		Subjects:  api.NewSubjectHandler(subjects, log),
		Semesters: api.NewSemesterHandler(semesters, log),
		Exams:     api.NewExamHandler(exams, log),
		Progress:  api.NewProgressHandler(progress, log),
	}

	r := chi.NewRouter()
	r.Use(middleware.NewTraceMiddleware(log))
	r.Route("/api", handlers.Mount)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func createSubject(t *testing.T, h http.Handler, name string, prereqs ...string) api.SubjectResponse {
	t.Helper()
	rec := doRequest(t, h, http.MethodPost, "/api/subjects", api.CreateSubjectRequest{
		Name:            name,
		PrerequisiteIDs: prereqs,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[api.SubjectResponse](t, rec)
}

func createSemester(t *testing.T, h http.Handler, year int, term string) api.SemesterResponse {
	t.Helper()
	rec := doRequest(t, h, http.MethodPost, "/api/semesters", api.SemesterRequest{Year: year, Term: term})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeBody[api.SemesterResponse](t, rec)
}

func approve(t *testing.T, h http.Handler, id string, grade float64) {
	t.Helper()
	rec := doRequest(t, h, http.MethodPut, "/api/subjects/"+id+"/status", api.SetStatusRequest{
		Status: "approved",
		Grade:  &grade,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
