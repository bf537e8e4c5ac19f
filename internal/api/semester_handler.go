package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/planner/internal/api/shared"
	"github.com/phrazzld/planner/internal/domain"
	"github.com/phrazzld/planner/internal/platform/logger"
	"github.com/phrazzld/planner/internal/service"
)

// SemesterHandler handles semester and assignment requests
type SemesterHandler struct {
	semesters service.SemesterService
	logger    *slog.Logger
}

// NewSemesterHandler creates a new SemesterHandler
func NewSemesterHandler(semesters service.SemesterService, logger *slog.Logger) *SemesterHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SemesterHandler")
	}

	return &SemesterHandler{
		semesters: semesters,
		logger:    logger.With(slog.String("component", "semester_handler")),
	}
}

// ListSemesters handles GET /semesters
func (h *SemesterHandler) ListSemesters(w http.ResponseWriter, r *http.Request) {
	semesters, err := h.semesters.ListSemesters(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list semesters")
		return
	}
	out := make([]SemesterResponse, 0, len(semesters))
	for _, s := range semesters {
		out = append(out, semesterToResponse(s))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, out)
}

// CreateSemester handles POST /semesters
func (h *SemesterHandler) CreateSemester(w http.ResponseWriter, r *http.Request) {
	var req SemesterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	semester, err := h.semesters.CreateSemester(r.Context(), req.Year, domain.Term(req.Term))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create semester")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, semesterToResponse(semester))
}

// GetSemester handles GET /semesters/{id}
func (h *SemesterHandler) GetSemester(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	semester, err := h.semesters.GetSemester(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get semester")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, semesterToResponse(semester))
}

// UpdateSemester handles PUT /semesters/{id}
func (h *SemesterHandler) UpdateSemester(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req SemesterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	semester, err := h.semesters.UpdateSemester(r.Context(), id, req.Year, domain.Term(req.Term))
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update semester")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, semesterToResponse(semester))
}

// DeleteSemester handles DELETE /semesters/{id}
func (h *SemesterHandler) DeleteSemester(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.semesters.DeleteSemester(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete semester")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AssignSubject handles PUT /semesters/{id}/subjects/{subjectID}
func (h *SemesterHandler) AssignSubject(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	semesterID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	subjectID, ok := pathUUID(w, r, "subjectID")
	if !ok {
		return
	}

	semester, err := h.semesters.AssignSubject(r.Context(), subjectID, semesterID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to assign subject")
		return
	}

	log.Debug("subject assigned via API",
		slog.String("subject_id", subjectID.String()),
		slog.String("semester_id", semesterID.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, semesterToResponse(semester))
}

// UnassignSubject handles DELETE /semesters/{id}/subjects/{subjectID}
func (h *SemesterHandler) UnassignSubject(w http.ResponseWriter, r *http.Request) {
	semesterID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	subjectID, ok := pathUUID(w, r, "subjectID")
	if !ok {
		return
	}

	semester, err := h.semesters.UnassignSubject(r.Context(), subjectID, semesterID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to unassign subject")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, semesterToResponse(semester))
}
