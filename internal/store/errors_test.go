package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"nil error", nil, false},
		{"generic error", errors.New("some error"), false},
		{"ErrNotFound", ErrNotFound, true},
		{"ErrSubjectNotFound", ErrSubjectNotFound, true},
		{"wrapped ErrSemesterNotFound", fmt.Errorf("lookup: %w", ErrSemesterNotFound), true},
		{"store error around ErrExamNotFound", NewStoreError("exam", "get", "missing", ErrExamNotFound), true},
		{"duplicate is not not-found", ErrIDExists, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestIsDuplicateError(t *testing.T) {
	assert.False(t, IsDuplicateError(nil))
	assert.False(t, IsDuplicateError(ErrSubjectNotFound))
	assert.True(t, IsDuplicateError(ErrDuplicate))
	assert.True(t, IsDuplicateError(fmt.Errorf("insert: %w", ErrIDExists)))
}

func TestStoreError(t *testing.T) {
	originalErr := errors.New("database connection failed")
	storeErr := NewStoreError("subject", "create", "database error", originalErr)

	assert.Equal(t,
		"create operation on subject failed: database error: database connection failed",
		storeErr.Error())
	assert.ErrorIs(t, storeErr, originalErr)

	bare := NewStoreError("semester", "delete", "nothing to do", nil)
	assert.Equal(t, "delete operation on semester failed: nothing to do", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
