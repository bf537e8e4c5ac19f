package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/planner/internal/domain"
	"github.com/phrazzld/planner/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check them with errors.Is; the API layer maps them to HTTP status
// codes.
//
// Error handling principles:
// 1. Service methods return sentinel errors for expected error conditions
// 2. Domain validation and invariant errors pass through unchanged
// 3. Unexpected errors are wrapped in ServiceError
var (
	// ErrSubjectNotFound indicates that the subject does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrSubjectNotFound = errors.New("subject not found")

	// ErrSemesterNotFound indicates that the semester does not exist.
	ErrSemesterNotFound = errors.New("semester not found")

	// ErrExamNotFound indicates that the exam does not exist.
	ErrExamNotFound = errors.New("exam not found")

	// Invariant violations re-exported from the domain so callers of the
	// service need not import it to classify errors.

	ErrPrerequisitesNotMet = domain.ErrPrerequisitesNotMet
	ErrPrerequisiteCycle   = domain.ErrPrerequisiteCycle
	ErrUnknownPrerequisite = domain.ErrUnknownPrerequisite
	ErrGradeRequired       = domain.ErrGradeRequired
)

// PrerequisitesNotMetError reports which prerequisites blocked an
// assignment. It matches ErrPrerequisitesNotMet with errors.Is.
type PrerequisitesNotMetError struct {
	SubjectID uuid.UUID
	Missing   []uuid.UUID
}

// Error implements the error interface.
func (e *PrerequisitesNotMetError) Error() string {
	return fmt.Sprintf("%v: subject %s is missing %d prerequisite(s)",
		ErrPrerequisitesNotMet, e.SubjectID, len(e.Missing))
}

// Unwrap returns ErrPrerequisitesNotMet.
func (e *PrerequisitesNotMetError) Unwrap() error {
	return ErrPrerequisitesNotMet
}

// ServiceError wraps unexpected failures with the operation that hit them.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "create_subject", "assign_subject")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("planner service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("planner service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError classifies err for the caller. Store not-found errors
// become the matching service sentinel, domain errors and service errors are
// returned as they are, and anything else is wrapped in a ServiceError.
func NewServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrSubjectNotFound), errors.Is(err, store.ErrSubjectNotFound):
		return ErrSubjectNotFound
	case errors.Is(err, ErrSemesterNotFound), errors.Is(err, store.ErrSemesterNotFound):
		return ErrSemesterNotFound
	case errors.Is(err, ErrExamNotFound), errors.Is(err, store.ErrExamNotFound):
		return ErrExamNotFound
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvariant):
		return err
	}

	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return err
	}

	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

func missingDependency(name string) error {
	return &ServiceError{
		Operation: "create_service",
		Message:   name + " cannot be nil",
	}
}
