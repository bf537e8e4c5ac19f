package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/planner/internal/api/shared"
	"github.com/phrazzld/planner/internal/service"
)

// ProgressHandler serves the plan metrics.
type ProgressHandler struct {
	progress service.ProgressService
	logger   *slog.Logger
}

// NewProgressHandler creates a new ProgressHandler
func NewProgressHandler(progress service.ProgressService, logger *slog.Logger) *ProgressHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for ProgressHandler")
	}

	return &ProgressHandler{
		progress: progress,
		logger:   logger.With(slog.String("component", "progress_handler")),
	}
}

// GetProgress handles GET /progress
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	p, err := h.progress.GetProgress(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute progress")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, progressToResponse(p))
}
