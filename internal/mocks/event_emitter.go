package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/planner/internal/events"
)

// MockEventEmitter implements events.EventEmitter and keeps every event it
// receives.
type MockEventEmitter struct {
	EmitEventFn func(ctx context.Context, event *events.PlanEvent) error

	// Err is returned when EmitEventFn is nil.
	Err error

	mu      sync.Mutex
	emitted []*events.PlanEvent
}

var _ events.EventEmitter = (*MockEventEmitter)(nil)

// EmitEvent implements the events.EventEmitter interface
func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.PlanEvent) error {
	m.mu.Lock()
	m.emitted = append(m.emitted, event)
	m.mu.Unlock()

	if m.EmitEventFn != nil {
		return m.EmitEventFn(ctx, event)
	}
	return m.Err
}

// Emitted returns a copy of the received events in order.
func (m *MockEventEmitter) Emitted() []*events.PlanEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*events.PlanEvent, len(m.emitted))
	copy(out, m.emitted)
	return out
}
