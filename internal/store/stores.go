package store

import "context"

// Stores bundles the entity stores that share one transaction.
type Stores struct {
	Subjects  SubjectStore
	Semesters SemesterStore
	Exams     ExamStore
}

// StoresFn is a unit of work executed against a transactional Stores bundle.
type StoresFn func(ctx context.Context, s Stores) error

// Transactor applies a unit of work atomically. Every change made through
// the Stores passed to fn becomes visible only if fn returns nil.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn StoresFn) error
}

// Backend is a complete storage implementation: non-transactional stores
// for reads plus the transaction boundary for writes.
type Backend interface {
	Transactor
	Stores() Stores
}
