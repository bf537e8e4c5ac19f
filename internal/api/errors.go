package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/planner/internal/api/shared"
	"github.com/phrazzld/planner/internal/domain"
	"github.com/phrazzld/planner/internal/service"
	"github.com/phrazzld/planner/internal/service/auth"
	"github.com/phrazzld/planner/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	var validationErrs validator.ValidationErrors

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, service.ErrSubjectNotFound),
		errors.Is(err, service.ErrSemesterNotFound),
		errors.Is(err, service.ErrExamNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Invariant violations that need more input
	case errors.Is(err, service.ErrGradeRequired),
		errors.Is(err, service.ErrUnknownPrerequisite):
		return http.StatusUnprocessableEntity

	// Conflicts with the current plan
	case errors.Is(err, domain.ErrInvariant),
		errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.As(err, &validationErrs):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// safeMessages pairs errors with client-facing messages. The first match wins.
var safeMessages = []struct {
	err error
	msg string
}{
	{auth.ErrExpiredToken, "Token expired"},
	{auth.ErrInvalidToken, "Invalid token"},
	{auth.ErrTokenNotYetValid, "Invalid token"},
	{auth.ErrMissingToken, "Authorization header required"},

	{service.ErrSubjectNotFound, "Subject not found"},
	{service.ErrSemesterNotFound, "Semester not found"},
	{service.ErrExamNotFound, "Exam not found"},

	{service.ErrGradeRequired, "A final grade is required to approve a subject"},
	{service.ErrPrerequisitesNotMet, "Prerequisites are not approved"},
	{service.ErrPrerequisiteCycle, "Prerequisites would form a cycle"},
	{service.ErrUnknownPrerequisite, "Prerequisite subject does not exist"},
	{domain.ErrSelfPrerequisite, "A subject cannot be its own prerequisite"},

	{domain.ErrSubjectNameEmpty, "Subject name cannot be empty"},
	{domain.ErrInvalidSubjectStatus, "Invalid subject status"},
	{domain.ErrGradeWithoutApproval, "Only approved subjects can have a final grade"},
	{domain.ErrDuplicatePrerequisite, "Duplicate prerequisite"},
	{domain.ErrEmptyPrerequisiteID, "Prerequisite ID cannot be empty"},
	{domain.ErrInvalidTerm, "Invalid semester term"},
	{domain.ErrInvalidSemesterYear, "Semester year must be positive"},
	{domain.ErrExamTitleEmpty, "Exam title cannot be empty"},
	{domain.ErrInvalidExamType, "Invalid exam type"},
	{domain.ErrExamDateEmpty, "Exam date cannot be empty"},
	{domain.ErrInvalidExamTime, "Exam time must use the HH:MM format"},

	{store.ErrDuplicate, "Entity already exists"},
	{store.ErrInvalidEntity, "Invalid entity data"},
	{domain.ErrValidation, "Validation error"},
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return SanitizeValidationError(validationErrs)
	}

	for _, m := range safeMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return "An unexpected error occurred"
}

// SanitizeValidationError describes the first failed field of a request
// validation error.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return "Validation error"
	}

	fe := validationErrs[0]
	field := fe.Field()
	if field == "" {
		return "Validation error"
	}
	return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(fe.Tag()))
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "gt", "gte", "lt", "lte":
		return "out of range"
	case "uuid":
		return "invalid ID format"
	case "datetime":
		return "invalid format"
	default:
		return "validation failed"
	}
}

// HandleAPIError writes the status and safe message for err. fallback
// replaces the generic message on 500 responses when non-empty.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
