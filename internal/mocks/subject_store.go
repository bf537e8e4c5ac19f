package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/planner/internal/domain"
	"github.com/phrazzld/planner/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockSubjectStore is a mock of store.SubjectStore for use with testify/mock
type TestifyMockSubjectStore struct {
	mock.Mock
}

var _ store.SubjectStore = (*TestifyMockSubjectStore)(nil)

// Create is a mock implementation of store.SubjectStore.Create
func (m *TestifyMockSubjectStore) Create(ctx context.Context, subject *domain.Subject) error {
	args := m.Called(ctx, subject)
	return args.Error(0)
}

// GetByID is a mock implementation of store.SubjectStore.GetByID
func (m *TestifyMockSubjectStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subject, error) {
	args := m.Called(ctx, id)
	if subject, ok := args.Get(0).(*domain.Subject); ok {
		return subject, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.SubjectStore.List
func (m *TestifyMockSubjectStore) List(ctx context.Context) ([]*domain.Subject, error) {
	args := m.Called(ctx)
	if subjects, ok := args.Get(0).([]*domain.Subject); ok {
		return subjects, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.SubjectStore.Update
func (m *TestifyMockSubjectStore) Update(ctx context.Context, subject *domain.Subject) (bool, error) {
	args := m.Called(ctx, subject)
	return args.Bool(0), args.Error(1)
}

// Delete is a mock implementation of store.SubjectStore.Delete
func (m *TestifyMockSubjectStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
