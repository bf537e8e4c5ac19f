package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/planner/internal/api/shared"
	"github.com/phrazzld/planner/internal/domain"
	"github.com/phrazzld/planner/internal/platform/logger"
	"github.com/phrazzld/planner/internal/service"
)

// SubjectHandler handles subject-related HTTP requests
type SubjectHandler struct {
	subjects service.SubjectService
	logger   *slog.Logger
}

// NewSubjectHandler creates a new SubjectHandler
func NewSubjectHandler(subjects service.SubjectService, logger *slog.Logger) *SubjectHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for SubjectHandler")
	}

	return &SubjectHandler{
		subjects: subjects,
		logger:   logger.With(slog.String("component", "subject_handler")),
	}
}

// ListSubjects handles GET /subjects
func (h *SubjectHandler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.subjects.ListSubjects(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list subjects")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, subjectsToResponse(subjects))
}

// ListUnassigned handles GET /subjects/unassigned
func (h *SubjectHandler) ListUnassigned(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.subjects.ListUnassigned(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list unassigned subjects")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, subjectsToResponse(subjects))
}

// CreateSubject handles POST /subjects
func (h *SubjectHandler) CreateSubject(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateSubjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	prereqs, err := parseUUIDs(req.PrerequisiteIDs)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	subject, err := h.subjects.CreateSubject(r.Context(), req.Name, prereqs)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create subject")
		return
	}

	log.Debug("subject created via API", slog.String("subject_id", subject.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, subjectToResponse(subject))
}

// GetSubject handles GET /subjects/{id}
func (h *SubjectHandler) GetSubject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	subject, err := h.subjects.GetSubject(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get subject")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, subjectToResponse(subject))
}

// UpdateSubject handles PUT /subjects/{id}
func (h *SubjectHandler) UpdateSubject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateSubjectRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	var prereqs *[]uuid.UUID
	if req.PrerequisiteIDs != nil {
		ids, err := parseUUIDs(*req.PrerequisiteIDs)
		if err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		prereqs = &ids
	}

	subject, err := h.subjects.UpdateSubject(r.Context(), id, req.Name, prereqs)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update subject")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, subjectToResponse(subject))
}

// DeleteSubject handles DELETE /subjects/{id}
func (h *SubjectHandler) DeleteSubject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := h.subjects.DeleteSubject(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete subject")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetStatus handles PUT /subjects/{id}/status. Approving without a grade
// answers 422 so the caller can ask for one.
func (h *SubjectHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req SetStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	subject, err := h.subjects.SetSubjectStatus(r.Context(), id, domain.SubjectStatus(req.Status), req.Grade)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update subject status")
		return
	}

	log.Debug("subject status set via API",
		slog.String("subject_id", id.String()),
		slog.String("status", req.Status))
	shared.RespondWithJSON(w, r, http.StatusOK, subjectToResponse(subject))
}

// GetDependencies handles GET /subjects/{id}/dependencies
func (h *SubjectHandler) GetDependencies(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	view, err := h.subjects.GetDependencies(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to resolve dependencies")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, DependencyResponse{
		SubjectID:     id.String(),
		Prerequisites: subjectsToResponse(view.Prerequisites),
		Missing:       idStrings(view.Unresolved),
		Dependents:    subjectsToResponse(view.Dependents),
	})
}
