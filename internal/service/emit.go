package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/planner/internal/events"
	"github.com/phrazzld/planner/internal/platform/logger"
)

// publish emits a plan event for a change that is already committed.
// Failures are logged only.
func publish(
	ctx context.Context,
	emitter events.EventEmitter,
	base *slog.Logger,
	eventType events.EventType,
	entityID uuid.UUID,
	payload any,
) {
	log := logger.FromContextOrDefault(ctx, base)

	event, err := events.NewPlanEvent(eventType, entityID, payload)
	if err != nil {
		log.Error("failed to build plan event",
			slog.String("event_type", string(eventType)),
			slog.String("error", err.Error()))
		return
	}

	if err := emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("plan event handler failed",
			slog.String("event_type", string(eventType)),
			slog.String("entity_id", entityID.String()),
			slog.String("error", err.Error()))
	}
}
