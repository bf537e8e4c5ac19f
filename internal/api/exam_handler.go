package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/planner/internal/api/shared"
	"github.com/phrazzld/planner/internal/service"
)

// ExamHandler handles exam-related HTTP requests
type ExamHandler struct {
	exams  service.ExamService
	logger *slog.Logger
}

// NewExamHandler creates a new ExamHandler
func NewExamHandler(exams service.ExamService, logger *slog.Logger) *ExamHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ExamHandler")
	}

	return &ExamHandler{
		exams:  exams,
		logger: logger.With(slog.String("component", "exam_handler")),
	}
}

// ListSubjectExams handles GET /subjects/{id}/exams
func (h *ExamHandler) ListSubjectExams(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	exams, err := h.exams.ListExams(r.Context(), subjectID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list exams")
		return
	}
	out := make([]ExamResponse, 0, len(exams))
	for _, e := range exams {
		out = append(out, examToResponse(e))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// CreateExam handles POST /subjects/{id}/exams
func (h *ExamHandler) CreateExam(w http.ResponseWriter, r *http.Request) {
	subjectID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req ExamRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	details, err := req.details()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	exam, err := h.exams.CreateExam(r.Context(), subjectID, details)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create exam")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, examToResponse(exam))
}

// GetExam handles GET /exams/{id}
func (h *ExamHandler) GetExam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	exam, err := h.exams.GetExam(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get exam")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, examToResponse(exam))
}

// UpdateExam handles PUT /exams/{id}
func (h *ExamHandler) UpdateExam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req ExamRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	details, err := req.details()
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	exam, err := h.exams.UpdateExam(r.Context(), id, details)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update exam")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, examToResponse(exam))
}

// DeleteExam handles DELETE /exams/{id}
func (h *ExamHandler) DeleteExam(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.exams.DeleteExam(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete exam")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
