// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// Entity-specific validation errors wrap it, so callers can classify any
	// of them with errors.Is(err, ErrValidation).
	ErrValidation = errors.New("validation failed")

	// ErrInvariant is the base for errors raised when an operation would
	// break a planning rule rather than carry malformed input.
	ErrInvariant = errors.New("invariant violation")
)

// Subject validation errors
var (
	ErrSubjectNameEmpty      = fmt.Errorf("%w: subject name cannot be empty", ErrValidation)
	ErrInvalidSubjectStatus  = fmt.Errorf("%w: invalid subject status", ErrValidation)
	ErrGradeWithoutApproval  = fmt.Errorf("%w: final grade is only allowed for approved subjects", ErrValidation)
	ErrDuplicatePrerequisite = fmt.Errorf("%w: duplicate prerequisite", ErrValidation)
	ErrEmptyPrerequisiteID   = fmt.Errorf("%w: prerequisite ID cannot be empty", ErrValidation)
	ErrSelfPrerequisite      = fmt.Errorf("%w: subject cannot be its own prerequisite", ErrInvariant)
	ErrPrerequisiteCycle     = fmt.Errorf("%w: prerequisites would form a cycle", ErrInvariant)
	ErrUnknownPrerequisite   = fmt.Errorf("%w: prerequisite subject does not exist", ErrInvariant)
	ErrGradeRequired         = fmt.Errorf("%w: a final grade is required to approve a subject", ErrInvariant)
	ErrPrerequisitesNotMet   = fmt.Errorf("%w: prerequisites are not approved", ErrInvariant)
)

// Semester validation errors
var (
	ErrInvalidTerm         = fmt.Errorf("%w: invalid semester term", ErrValidation)
	ErrInvalidSemesterYear = fmt.Errorf("%w: semester year must be positive", ErrValidation)
)

// Exam validation errors
var (
	ErrExamSubjectIDEmpty = fmt.Errorf("%w: exam subject ID cannot be empty", ErrValidation)
	ErrExamTitleEmpty     = fmt.Errorf("%w: exam title cannot be empty", ErrValidation)
	ErrInvalidExamType    = fmt.Errorf("%w: invalid exam type", ErrValidation)
	ErrExamDateEmpty      = fmt.Errorf("%w: exam date cannot be empty", ErrValidation)
	ErrInvalidExamTime    = fmt.Errorf("%w: exam time must use the HH:MM format", ErrValidation)
)
