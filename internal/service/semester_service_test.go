package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/planner/internal/domain"
	"github.com/phrazzld/planner/internal/events"
	"github.com/phrazzld/planner/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndListSemesters(t *testing.T) {
	ctx := context.Background()
	p := newPlanner(t)

	summer, err := p.semesters.CreateSemester(ctx, 2025, domain.TermSummer)
	require.NoError(t, err)
	second, err := p.semesters.CreateSemester(ctx, 2024, domain.TermSecond)
	require.NoError(t, err)
	first, err := p.semesters.CreateSemester(ctx, 2025, domain.TermFirst)
	require.NoError(t, err)

	list, err := p.semesters.ListSemesters(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Equal(t, summer.ID, list[2].ID)

	_, err = p.semesters.CreateSemester(ctx, 2025, "winter")
	assert.ErrorIs(t, err, domain.ErrInvalidTerm)
}

func TestUpdateSemesterKeepsSubjects(t *testing.T) {
	ctx := context.Background()
	p := newPlanner(t)

	subject, err := p.subjects.CreateSubject(ctx, "Art", nil)
	require.NoError(t, err)
	sem, err := p.semesters.CreateSemester(ctx, 2024, domain.TermFirst)
	require.NoError(t, err)
	_, err = p.semesters.AssignSubject(ctx, subject.ID, sem.ID)
	require.NoError(t, err)

	updated, err := p.semesters.UpdateSemester(ctx, sem.ID, 2026, domain.TermAnnual)
	require.NoError(t, err)
	assert.Equal(t, 2026, updated.Year)
	assert.Equal(t, domain.TermAnnual, updated.Term)
	assert.Equal(t, []uuid.UUID{subject.ID}, updated.SubjectIDs)

	_, err = p.semesters.UpdateSemester(ctx, uuid.New(), 2026, domain.TermAnnual)
	assert.ErrorIs(t, err, service.ErrSemesterNotFound)
}

func TestAssignSubjectPrerequisiteGating(t *testing.T) {
	ctx := context.Background()
	p := newPlanner(t)

	prereq, err := p.subjects.CreateSubject(ctx, "Programming I", nil)
	require.NoError(t, err)
	subject, err := p.subjects.CreateSubject(ctx, "Programming II", []uuid.UUID{prereq.ID})
	require.NoError(t, err)
	sem, err := p.semesters.CreateSemester(ctx, 2025, domain.TermSecond)
	require.NoError(t, err)
	p.recorder.reset()

	_, err = p.semesters.AssignSubject(ctx, subject.ID, sem.ID)
	require.ErrorIs(t, err, service.ErrPrerequisitesNotMet)
	var notMet *service.PrerequisitesNotMetError
	require.True(t, errors.As(err, &notMet))
	assert.Equal(t, []uuid.UUID{prereq.ID}, notMet.Missing)

	got, err := p.semesters.GetSemester(ctx, sem.ID)
	require.NoError(t, err)
	assert.Empty(t, got.SubjectIDs, "refused assignment changes nothing")
	assert.Empty(t, p.recorder.types())

	_, err = p.subjects.SetSubjectStatus(ctx, prereq.ID, domain.SubjectStatusApproved, grade(7))
	require.NoError(t, err)

	got, err = p.semesters.AssignSubject(ctx, subject.ID, sem.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{subject.ID}, got.SubjectIDs)
	assert.Equal(t, events.SubjectAssigned, p.recorder.last().Type)
}

func TestAssignSubjectMovesBetweenSemesters(t *testing.T) {
	ctx := context.Background()
	p := newPlanner(t)

	a, err := p.subjects.CreateSubject(ctx, "A", nil)
	require.NoError(t, err)
	b, err := p.subjects.CreateSubject(ctx, "B", nil)
	require.NoError(t, err)
	s1, err := p.semesters.CreateSemester(ctx, 2024, domain.TermFirst)
	require.NoError(t, err)
	s2, err := p.semesters.CreateSemester(ctx, 2024, domain.TermSecond)
	require.NoError(t, err)

	_, err = p.semesters.AssignSubject(ctx, a.ID, s1.ID)
	require.NoError(t, err)
	_, err = p.semesters.AssignSubject(ctx, b.ID, s1.ID)
	require.NoError(t, err)

	t.Run("same semester is a no-op keeping position", func(t *testing.T) {
		p.recorder.reset()
		got, err := p.semesters.AssignSubject(ctx, a.ID, s1.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{a.ID, b.ID}, got.SubjectIDs)
		assert.Empty(t, p.recorder.types())
	})

	t.Run("move to another semester", func(t *testing.T) {
		got, err := p.semesters.AssignSubject(ctx, a.ID, s2.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{a.ID}, got.SubjectIDs)

		from, err := p.semesters.GetSemester(ctx, s1.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{b.ID}, from.SubjectIDs)

		var payload map[string]any
		require.NoError(t, p.recorder.last().UnmarshalPayload(&payload))
		assert.Equal(t, s1.ID.String(), payload["previous_semester_id"])
	})

	t.Run("subject is in at most one semester", func(t *testing.T) {
		semesters, err := p.semesters.ListSemesters(ctx)
		require.NoError(t, err)
		seen := map[uuid.UUID]int{}
		for _, sem := range semesters {
			for _, id := range sem.SubjectIDs {
				seen[id]++
			}
		}
		for id, n := range seen {
			assert.Equal(t, 1, n, "subject %s listed %d times", id, n)
		}
	})

	t.Run("unknown ids", func(t *testing.T) {
		_, err := p.semesters.AssignSubject(ctx, uuid.New(), s1.ID)
		assert.ErrorIs(t, err, service.ErrSubjectNotFound)
		_, err = p.semesters.AssignSubject(ctx, a.ID, uuid.New())
		assert.ErrorIs(t, err, service.ErrSemesterNotFound)
	})
}

func TestUnassignSubject(t *testing.T) {
	ctx := context.Background()
	p := newPlanner(t)

	subject, err := p.subjects.CreateSubject(ctx, "Drawing", nil)
	require.NoError(t, err)
	sem, err := p.semesters.CreateSemester(ctx, 2024, domain.TermFirst)
	require.NoError(t, err)
	_, err = p.semesters.AssignSubject(ctx, subject.ID, sem.ID)
	require.NoError(t, err)

	pool, err := p.subjects.ListUnassigned(ctx)
	require.NoError(t, err)
	assert.Empty(t, pool)

	got, err := p.semesters.UnassignSubject(ctx, subject.ID, sem.ID)
	require.NoError(t, err)
	assert.Empty(t, got.SubjectIDs)
	assert.Equal(t, events.SubjectUnassigned, p.recorder.last().Type)

	pool, err = p.subjects.ListUnassigned(ctx)
	require.NoError(t, err)
	require.Len(t, pool, 1)
	assert.Equal(t, subject.ID, pool[0].ID)

	p.recorder.reset()
	_, err = p.semesters.UnassignSubject(ctx, subject.ID, sem.ID)
	require.NoError(t, err, "absent subject is a no-op")
	assert.Empty(t, p.recorder.types())

	_, err = p.semesters.UnassignSubject(ctx, subject.ID, uuid.New())
	assert.ErrorIs(t, err, service.ErrSemesterNotFound)
}

func TestDeleteSemesterReleasesSubjects(t *testing.T) {
	ctx := context.Background()
	p := newPlanner(t)

	subject, err := p.subjects.CreateSubject(ctx, "Chemistry", nil)
	require.NoError(t, err)
	_, err = p.subjects.SetSubjectStatus(ctx, subject.ID, domain.SubjectStatusInProgress, nil)
	require.NoError(t, err)
	sem, err := p.semesters.CreateSemester(ctx, 2024, domain.TermFirst)
	require.NoError(t, err)
	_, err = p.semesters.AssignSubject(ctx, subject.ID, sem.ID)
	require.NoError(t, err)

	require.NoError(t, p.semesters.DeleteSemester(ctx, sem.ID))

	_, err = p.semesters.GetSemester(ctx, sem.ID)
	assert.ErrorIs(t, err, service.ErrSemesterNotFound)

	pool, err := p.subjects.ListUnassigned(ctx)
	require.NoError(t, err)
	require.Len(t, pool, 1)
	assert.Equal(t, subject.ID, pool[0].ID)
	assert.Equal(t, domain.SubjectStatusInProgress, pool[0].Status, "subject fields are untouched")

	assert.ErrorIs(t, p.semesters.DeleteSemester(ctx, sem.ID), service.ErrSemesterNotFound)
}
