package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType names a kind of plan change.
type EventType string

// Plan event types.
const (
	SubjectCreated       EventType = "subject.created"
	SubjectUpdated       EventType = "subject.updated"
	SubjectDeleted       EventType = "subject.deleted"
	SubjectStatusChanged EventType = "subject.status_changed"
	SubjectAssigned      EventType = "subject.assigned"
	SubjectUnassigned    EventType = "subject.unassigned"
	SemesterCreated      EventType = "semester.created"
	SemesterUpdated      EventType = "semester.updated"
	SemesterDeleted      EventType = "semester.deleted"
	ExamCreated          EventType = "exam.created"
	ExamUpdated          EventType = "exam.updated"
	ExamDeleted          EventType = "exam.deleted"
)

// PlanEvent describes one committed change to the plan.
type PlanEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	Type EventType `json:"type"`

	// EntityID is the subject, semester or exam the change is about.
	EntityID uuid.UUID `json:"entity_id"`

	// Payload contains event-specific details serialized as JSON
	Payload json.RawMessage `json:"payload,omitempty"`

	OccurredAt time.Time `json:"occurred_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *PlanEvent) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewPlanEvent creates a PlanEvent. A nil payload leaves Payload empty.
func NewPlanEvent(eventType EventType, entityID uuid.UUID, payload any) (*PlanEvent, error) {
	var raw json.RawMessage
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		raw = b
	}

	return &PlanEvent{
		ID:         uuid.New(),
		Type:       eventType,
		EntityID:   entityID,
		Payload:    raw,
		OccurredAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *PlanEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows services to publish events without direct knowledge of handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *PlanEvent) error
}
