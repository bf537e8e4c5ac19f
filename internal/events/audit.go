package events

import (
	"context"
	"log/slog"

	"github.com/phrazzld/planner/internal/platform/logger"
)

// AuditLogHandler writes every plan event as a structured log line.
type AuditLogHandler struct {
	logger *slog.Logger
}

var _ EventHandler = (*AuditLogHandler)(nil)

// NewAuditLogHandler creates an audit handler.
// If logger is nil, a default logger will be used.
func NewAuditLogHandler(logger *slog.Logger) *AuditLogHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogHandler{logger: logger.With("component", "audit")}
}

// HandleEvent implements EventHandler.
func (h *AuditLogHandler) HandleEvent(ctx context.Context, event *PlanEvent) error {
	log := logger.FromContextOrDefault(ctx, h.logger)

	attrs := []any{
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", string(event.Type)),
		slog.String("entity_id", event.EntityID.String()),
		slog.Time("occurred_at", event.OccurredAt),
	}
	if len(event.Payload) > 0 {
		attrs = append(attrs, slog.String("payload", string(event.Payload)))
	}

	log.InfoContext(ctx, "plan changed", attrs...)
	return nil
}
