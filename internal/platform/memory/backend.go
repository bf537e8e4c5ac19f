package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/planner/internal/platform/logger"
	"github.com/phrazzld/planner/internal/store"
)

// execFn runs an operation against some version of the state: the live one
// or a transaction draft.
type execFn func(fn func(*state) error) error

// Backend holds one plan in memory and implements store.Backend.
type Backend struct {
	mu     sync.Mutex
	state  *state
	logger *slog.Logger
}

var _ store.Backend = (*Backend)(nil)

// NewBackend creates an empty in-memory plan.
// If logger is nil, a default logger will be used.
func NewBackend(logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.Default()
	}
	return &Backend{
		state:  newState(),
		logger: logger.With(slog.String("component", "memory_store")),
	}
}

// Stores returns stores that act on the live state, each call under the lock.
// They must not be used from inside RunInTransaction.
func (b *Backend) Stores() store.Stores {
	return b.bind(b.live)
}

func (b *Backend) live(fn func(*state) error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return fn(b.state)
}

func (b *Backend) bind(exec execFn) store.Stores {
	return store.Stores{
		Subjects:  &SubjectStore{exec: exec, logger: b.logger},
		Semesters: &SemesterStore{exec: exec, logger: b.logger},
		Exams:     &ExamStore{exec: exec, logger: b.logger},
	}
}

// RunInTransaction implements store.Transactor. fn sees a private copy of
// the plan; the copy replaces the live state only if fn returns nil. A panic
// in fn discards the copy and is re-raised.
func (b *Backend) RunInTransaction(ctx context.Context, fn store.StoresFn) error {
	log := logger.FromContextOrDefault(ctx, b.logger)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrTransactionFailed, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	draft := b.state.clone()
	exec := func(op func(*state) error) error { return op(draft) }

	if err := fn(ctx, b.bind(exec)); err != nil {
		log.Debug("discarded transaction due to error", slog.String("error", err.Error()))
		return err
	}

	b.state = draft
	log.Debug("transaction committed")
	return nil
}
