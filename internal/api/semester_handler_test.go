package api_test

import (
	"net/http"
	"testing"

	"github.com/phrazzld/planner/internal/api"
	"github.com/phrazzld/planner/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemesterEndpoints(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	summer := createSemester(t, h, 2024, "summer")
	first := createSemester(t, h, 2024, "first_term")
	assert.Equal(t, "2024 first_term", first.Label)
	assert.Empty(t, first.SubjectIDs)

	rec := doRequest(t, h, http.MethodGet, "/api/semesters", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[[]api.SemesterResponse](t, rec)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, summer.ID, list[1].ID)

	rec = doRequest(t, h, http.MethodPut, "/api/semesters/"+summer.ID, api.SemesterRequest{Year: 2025, Term: "annual"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2025 annual", decodeBody[api.SemesterResponse](t, rec).Label)

	rec = doRequest(t, h, http.MethodPost, "/api/semesters", api.SemesterRequest{Year: 2024, Term: "winter"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid term: invalid value", decodeBody[shared.ErrorResponse](t, rec).Error)

	rec = doRequest(t, h, http.MethodPost, "/api/semesters", api.SemesterRequest{Term: "annual"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssignmentEndpoints(t *testing.T) {
	t.Parallel()
	h := newTestRouter(t)

	base := createSubject(t, h, "Programming I")
	next := createSubject(t, h, "Programming II", base.ID)
	first := createSemester(t, h, 2024, "first_term")
	second := createSemester(t, h, 2024, "second_term")

	assignPath := func(semesterID, subjectID string) string {
		return "/api/semesters/" + semesterID + "/subjects/" + subjectID
	}

	// Prerequisite not approved yet.
	rec := doRequest(t, h, http.MethodPut, assignPath(second.ID, next.ID), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Prerequisites are not approved", decodeBody[shared.ErrorResponse](t, rec).Error)

	rec = doRequest(t, h, http.MethodPut, assignPath(first.ID, base.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []string{base.ID}, decodeBody[api.SemesterResponse](t, rec).SubjectIDs)

	rec = doRequest(t, h, http.MethodGet, "/api/subjects/unassigned", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	pool := decodeBody[[]api.SubjectResponse](t, rec)
	require.Len(t, pool, 1)
	assert.Equal(t, next.ID, pool[0].ID)

	approve(t, h, base.ID, 7)

	rec = doRequest(t, h, http.MethodPut, assignPath(second.ID, next.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Moving base into the second semester removes it from the first.
	rec = doRequest(t, h, http.MethodPut, assignPath(second.ID, base.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{next.ID, base.ID}, decodeBody[api.SemesterResponse](t, rec).SubjectIDs)

	rec = doRequest(t, h, http.MethodGet, "/api/semesters/"+first.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[api.SemesterResponse](t, rec).SubjectIDs)

	rec = doRequest(t, h, http.MethodDelete, assignPath(second.ID, next.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{base.ID}, decodeBody[api.SemesterResponse](t, rec).SubjectIDs)

	// Deleting the semester returns its subjects to the pool.
	rec = doRequest(t, h, http.MethodDelete, "/api/semesters/"+second.ID, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(t, h, http.MethodGet, "/api/subjects/unassigned", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]api.SubjectResponse](t, rec), 2)

	rec = doRequest(t, h, http.MethodPut, assignPath(second.ID, base.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Semester not found", decodeBody[shared.ErrorResponse](t, rec).Error)
}
