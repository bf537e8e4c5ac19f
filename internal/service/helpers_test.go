package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/phrazzld/planner/internal/events"
	"github.com/phrazzld/planner/internal/platform/memory"
	"github.com/phrazzld/planner/internal/service"
	"github.com/stretchr/testify/require"
)

// recordingHandler captures emitted plan events.
type recordingHandler struct {
	mu     sync.Mutex
	events []*events.PlanEvent
}

func (h *recordingHandler) HandleEvent(_ context.Context, event *events.PlanEvent) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
	return nil
}

func (h *recordingHandler) types() []events.EventType {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]events.EventType, 0, len(h.events))
	for _, e := range h.events {
		out = append(out, e.Type)
	}
	return out
}

func (h *recordingHandler) last() *events.PlanEvent {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.events) == 0 {
		return nil
	}
	return h.events[len(h.events)-1]
}

func (h *recordingHandler) reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = nil
}

type planner struct {
	backend   *memory.Backend
	subjects  service.SubjectService
	semesters service.SemesterService
	exams     service.ExamService
	progress  service.ProgressService
	recorder  *recordingHandler
}

func newPlanner(t *testing.T) *planner {
	t.Helper()

	backend := memory.NewBackend(nil)
	emitter := events.NewInMemoryEventEmitter(nil)
	recorder := &recordingHandler{}
	emitter.RegisterHandler(recorder)

	subjects, err := service.NewSubjectService(backend, emitter, nil)
	require.NoError(t, err)
	semesters, err := service.NewSemesterService(backend, emitter, nil)
	require.NoError(t, err)
	exams, err := service.NewExamService(backend, emitter, nil)
	require.NoError(t, err)
	progress, err := service.NewProgressService(backend.Stores().Subjects, nil)
	require.NoError(t, err)

	return &planner{
		backend:   backend,
		subjects:  subjects,
		semesters: semesters,
		exams:     exams,
		progress:  progress,
		recorder:  recorder,
	}
}

func grade(g float64) *float64 { return &g }
