package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/planner/internal/domain"
	"github.com/phrazzld/planner/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

func q(s string) string { return regexp.QuoteMeta(s) }

var (
	subjectCols  = []string{"id", "name", "status", "final_grade", "created_at", "updated_at"}
	semesterCols = []string{"id", "year", "term", "created_at", "updated_at"}
	examCols     = []string{"id", "subject_id", "type", "title", "exam_date", "exam_time", "grade", "topics", "created_at", "updated_at"}
	fixedTime    = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
)

func TestSubjectStore_Create(t *testing.T) {
	t.Parallel()

	t.Run("writes subject and prerequisites", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresSubjectStore(db, nil)

		subject, err := domain.NewSubject("Calculus II")
		require.NoError(t, err)
		a, b := uuid.New(), uuid.New()
		subject.PrerequisiteIDs = []uuid.UUID{a, b}

		mock.ExpectExec(q("INSERT INTO subjects")).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(q("INSERT INTO subject_prerequisites")).
			WithArgs(sqlmock.AnyArg(), a.String(), 0).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(q("INSERT INTO subject_prerequisites")).
			WithArgs(sqlmock.AnyArg(), b.String(), 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Create(context.Background(), subject))
		assert.NotEqual(t, uuid.Nil, subject.ID)
	})

	t.Run("duplicate id", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresSubjectStore(db, nil)

		subject, err := domain.NewSubject("Physics")
		require.NoError(t, err)
		subject.ID = uuid.New()

		mock.ExpectExec(q("INSERT INTO subjects")).
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode})

		err = s.Create(context.Background(), subject)
		assert.ErrorIs(t, err, store.ErrIDExists)
		assert.ErrorIs(t, err, store.ErrDuplicate)
	})

	t.Run("invalid subject never reaches the database", func(t *testing.T) {
		t.Parallel()
		db, _ := newMock(t)
		s := NewPostgresSubjectStore(db, nil)

		err := s.Create(context.Background(), &domain.Subject{Status: domain.SubjectStatusPending})
		assert.ErrorIs(t, err, domain.ErrSubjectNameEmpty)
	})
}

func TestSubjectStore_GetByID(t *testing.T) {
	t.Parallel()

	t.Run("found with prerequisites in order", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresSubjectStore(db, nil)
		id, p1, p2 := uuid.New(), uuid.New(), uuid.New()

		mock.ExpectQuery(q("FROM subjects WHERE id = $1")).
			WithArgs(id.String()).
			WillReturnRows(sqlmock.NewRows(subjectCols).
				AddRow(id.String(), "Algebra", "approved", 9.5, fixedTime, fixedTime))
		mock.ExpectQuery(q("FROM subject_prerequisites")).
			WillReturnRows(sqlmock.NewRows([]string{"prerequisite_id"}).
				AddRow(p2.String()).
				AddRow(p1.String()))

		got, err := s.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, domain.SubjectStatusApproved, got.Status)
		require.NotNil(t, got.FinalGrade)
		assert.InDelta(t, 9.5, *got.FinalGrade, 0.0001)
		assert.Equal(t, []uuid.UUID{p2, p1}, got.PrerequisiteIDs)
	})

	t.Run("null grade and no prerequisites", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresSubjectStore(db, nil)
		id := uuid.New()

		mock.ExpectQuery(q("FROM subjects WHERE id = $1")).
			WillReturnRows(sqlmock.NewRows(subjectCols).
				AddRow(id.String(), "Algebra", "pending", nil, fixedTime, fixedTime))
		mock.ExpectQuery(q("FROM subject_prerequisites")).
			WillReturnRows(sqlmock.NewRows([]string{"prerequisite_id"}))

		got, err := s.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Nil(t, got.FinalGrade)
		assert.NotNil(t, got.PrerequisiteIDs)
		assert.Empty(t, got.PrerequisiteIDs)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresSubjectStore(db, nil)

		mock.ExpectQuery(q("FROM subjects WHERE id = $1")).
			WillReturnRows(sqlmock.NewRows(subjectCols))

		_, err := s.GetByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrSubjectNotFound)
		assert.True(t, store.IsNotFoundError(err))
	})

	t.Run("query error", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresSubjectStore(db, nil)

		mock.ExpectQuery(q("FROM subjects WHERE id = $1")).
			WillReturnError(errors.New("connection reset"))

		_, err := s.GetByID(context.Background(), uuid.New())
		var storeErr *store.StoreError
		assert.ErrorAs(t, err, &storeErr)
		assert.False(t, store.IsNotFoundError(err))
	})
}

func TestSubjectStore_List(t *testing.T) {
	t.Parallel()
	db, mock := newMock(t)
	s := NewPostgresSubjectStore(db, nil)
	a, b := uuid.New(), uuid.New()

	mock.ExpectQuery(q("FROM subjects ORDER BY seq")).
		WillReturnRows(sqlmock.NewRows(subjectCols).
			AddRow(a.String(), "First", "approved", 7.0, fixedTime, fixedTime).
			AddRow(b.String(), "Second", "pending", nil, fixedTime, fixedTime))
	mock.ExpectQuery(q("FROM subject_prerequisites")).
		WillReturnRows(sqlmock.NewRows([]string{"subject_id", "prerequisite_id"}).
			AddRow(b.String(), a.String()))

	got, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "First", got[0].Name)
	assert.Empty(t, got[0].PrerequisiteIDs)
	assert.Equal(t, []uuid.UUID{a}, got[1].PrerequisiteIDs)
}

func TestSubjectStore_UpdateAndDelete(t *testing.T) {
	t.Parallel()

	t.Run("missing subject is a no-op", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresSubjectStore(db, nil)

		subject, err := domain.NewSubject("Ghost")
		require.NoError(t, err)
		subject.ID = uuid.New()

		mock.ExpectExec(q("UPDATE subjects")).WillReturnResult(sqlmock.NewResult(0, 0))

		found, err := s.Update(context.Background(), subject)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("rewrites prerequisites", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresSubjectStore(db, nil)

		subject, err := domain.NewSubject("Analysis")
		require.NoError(t, err)
		subject.ID = uuid.New()
		subject.PrerequisiteIDs = []uuid.UUID{uuid.New()}

		mock.ExpectExec(q("UPDATE subjects")).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(q("DELETE FROM subject_prerequisites WHERE subject_id = $1")).
			WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectExec(q("INSERT INTO subject_prerequisites")).
			WillReturnResult(sqlmock.NewResult(0, 1))

		found, err := s.Update(context.Background(), subject)
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("delete reports existence", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresSubjectStore(db, nil)

		mock.ExpectExec(q("DELETE FROM subjects WHERE id = $1")).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(q("DELETE FROM subjects WHERE id = $1")).WillReturnResult(sqlmock.NewResult(0, 0))

		found, err := s.Delete(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.True(t, found)

		found, err = s.Delete(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestSemesterStore(t *testing.T) {
	t.Parallel()

	t.Run("get with ordered subjects", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresSemesterStore(db, nil)
		id, x, y := uuid.New(), uuid.New(), uuid.New()

		mock.ExpectQuery(q("FROM semesters WHERE id = $1")).
			WillReturnRows(sqlmock.NewRows(semesterCols).
				AddRow(id.String(), 2024, "first_term", fixedTime, fixedTime))
		mock.ExpectQuery(q("FROM semester_subjects")).
			WillReturnRows(sqlmock.NewRows([]string{"subject_id"}).
				AddRow(y.String()).
				AddRow(x.String()))

		got, err := s.GetByID(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, 2024, got.Year)
		assert.Equal(t, domain.TermFirst, got.Term)
		assert.Equal(t, []uuid.UUID{y, x}, got.SubjectIDs)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresSemesterStore(db, nil)

		mock.ExpectQuery(q("FROM semesters WHERE id = $1")).
			WillReturnRows(sqlmock.NewRows(semesterCols))

		_, err := s.GetByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrSemesterNotFound)
	})

	t.Run("update rewrites membership", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresSemesterStore(db, nil)

		semester, err := domain.NewSemester(2025, domain.TermSummer)
		require.NoError(t, err)
		semester.ID = uuid.New()
		semester.SubjectIDs = []uuid.UUID{uuid.New(), uuid.New()}

		mock.ExpectExec(q("UPDATE semesters")).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(q("DELETE FROM semester_subjects WHERE semester_id = $1")).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(q("INSERT INTO semester_subjects")).
			WithArgs(semester.ID.String(), semester.SubjectIDs[0].String(), 0).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(q("INSERT INTO semester_subjects")).
			WithArgs(semester.ID.String(), semester.SubjectIDs[1].String(), 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		found, err := s.Update(context.Background(), semester)
		require.NoError(t, err)
		assert.True(t, found)
	})
}

func TestExamStore(t *testing.T) {
	t.Parallel()

	t.Run("list by subject", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresExamStore(db, nil)
		subjectID := uuid.New()
		examDate := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(q("FROM exams WHERE subject_id = $1 ORDER BY seq")).
			WithArgs(subjectID.String()).
			WillReturnRows(sqlmock.NewRows(examCols).
				AddRow(uuid.New().String(), subjectID.String(), "final", "Final", examDate, "09:30", 8.0, "all", fixedTime, fixedTime).
				AddRow(uuid.New().String(), subjectID.String(), "midterm", "Mid", examDate, "14:00", nil, "", fixedTime, fixedTime))

		got, err := s.ListBySubject(context.Background(), subjectID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, domain.ExamTypeFinal, got[0].Type)
		assert.Equal(t, examDate, got[0].Date)
		require.NotNil(t, got[0].Grade)
		assert.Nil(t, got[1].Grade)
	})

	t.Run("list for subject without exams is empty", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresExamStore(db, nil)

		mock.ExpectQuery(q("FROM exams WHERE subject_id = $1")).
			WillReturnRows(sqlmock.NewRows(examCols))

		got, err := s.ListBySubject(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("create with unknown subject", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresExamStore(db, nil)

		exam, err := domain.NewExam(uuid.New(), domain.ExamDetails{
			Type:  domain.ExamTypeMidterm,
			Title: "Midterm",
			Date:  time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
			Time:  "10:00",
		})
		require.NoError(t, err)

		mock.ExpectExec(q("INSERT INTO exams")).
			WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode, ConstraintName: "exams_subject_id_fkey"})

		err = s.Create(context.Background(), exam)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})

	t.Run("delete by subject counts rows", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresExamStore(db, nil)

		mock.ExpectExec(q("DELETE FROM exams WHERE subject_id = $1")).
			WillReturnResult(sqlmock.NewResult(0, 3))

		n, err := s.DeleteBySubject(context.Background(), uuid.New())
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		s := NewPostgresExamStore(db, nil)

		mock.ExpectQuery(q("FROM exams WHERE id = $1")).
			WillReturnRows(sqlmock.NewRows(examCols))

		_, err := s.GetByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrExamNotFound)
	})
}

func TestBackend_RunInTransaction(t *testing.T) {
	t.Parallel()

	t.Run("commits on success", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		b, err := NewBackend(db, nil)
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(q("INSERT INTO semesters")).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = b.RunInTransaction(context.Background(), func(ctx context.Context, tx store.Stores) error {
			semester, err := domain.NewSemester(2024, domain.TermAnnual)
			if err != nil {
				return err
			}
			return tx.Semesters.Create(ctx, semester)
		})
		require.NoError(t, err)
	})

	t.Run("rolls back on error", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		b, err := NewBackend(db, nil)
		require.NoError(t, err)

		boom := errors.New("boom")
		mock.ExpectBegin()
		mock.ExpectExec(q("DELETE FROM exams WHERE subject_id = $1")).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		err = b.RunInTransaction(context.Background(), func(ctx context.Context, tx store.Stores) error {
			if _, err := tx.Exams.DeleteBySubject(ctx, uuid.New()); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("nil db", func(t *testing.T) {
		t.Parallel()
		_, err := NewBackend(nil, nil)
		assert.Error(t, err)
	})
}
