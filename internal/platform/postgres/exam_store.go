package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/planner/internal/domain"
	"github.com/phrazzld/planner/internal/platform/logger"
	"github.com/phrazzld/planner/internal/store"
)

const examColumns = `id, subject_id, type, title, exam_date, exam_time, grade, topics, created_at, updated_at`

// PostgresExamStore implements the store.ExamStore interface
// using a PostgreSQL database as the storage backend.
type PostgresExamStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresExamStore creates a new PostgreSQL implementation of the ExamStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresExamStore(db store.DBTX, logger *slog.Logger) *PostgresExamStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresExamStore{
		db:     db,
		logger: logger.With(slog.String("component", "exam_store")),
	}
}

var _ store.ExamStore = (*PostgresExamStore)(nil)

// Create implements store.ExamStore.Create.
// An unknown subject surfaces as store.ErrInvalidEntity through the foreign key.
func (s *PostgresExamStore) Create(ctx context.Context, exam *domain.Exam) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := exam.Validate(); err != nil {
		log.Warn("exam validation failed during create", slog.String("error", err.Error()))
		return err
	}
	if exam.ID == uuid.Nil {
		exam.ID = uuid.New()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO exams (id, subject_id, type, title, exam_date, exam_time, grade, topics, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		exam.ID,
		exam.SubjectID,
		string(exam.Type),
		exam.Title,
		exam.Date.Format(domain.ExamDateLayout),
		exam.Time,
		exam.Grade,
		exam.Topics,
		exam.CreatedAt,
		exam.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to insert exam",
			slog.String("error", err.Error()),
			slog.String("exam_id", exam.ID.String()),
			slog.String("subject_id", exam.SubjectID.String()))
		return mapInsertError(err, "exam")
	}

	log.Debug("exam created",
		slog.String("exam_id", exam.ID.String()),
		slog.String("subject_id", exam.SubjectID.String()))
	return nil
}

// GetByID implements store.ExamStore.GetByID.
func (s *PostgresExamStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Exam, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+examColumns+` FROM exams WHERE id = $1`, id)

	exam, err := scanExam(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrExamNotFound
		}
		return nil, store.NewStoreError("exam", "get", "query failed", MapError(err))
	}
	return exam, nil
}

// List implements store.ExamStore.List.
func (s *PostgresExamStore) List(ctx context.Context) ([]*domain.Exam, error) {
	return s.query(ctx, "list",
		`SELECT `+examColumns+` FROM exams ORDER BY seq`)
}

// ListBySubject implements store.ExamStore.ListBySubject.
func (s *PostgresExamStore) ListBySubject(ctx context.Context, subjectID uuid.UUID) ([]*domain.Exam, error) {
	return s.query(ctx, "list_by_subject",
		`SELECT `+examColumns+` FROM exams WHERE subject_id = $1 ORDER BY seq`, subjectID)
}

// Update implements store.ExamStore.Update. The subject reference is not
// written.
func (s *PostgresExamStore) Update(ctx context.Context, exam *domain.Exam) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := exam.Validate(); err != nil {
		log.Warn("exam validation failed during update",
			slog.String("error", err.Error()),
			slog.String("exam_id", exam.ID.String()))
		return false, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE exams
		SET type = $2, title = $3, exam_date = $4, exam_time = $5, grade = $6, topics = $7, updated_at = $8
		WHERE id = $1`,
		exam.ID,
		string(exam.Type),
		exam.Title,
		exam.Date.Format(domain.ExamDateLayout),
		exam.Time,
		exam.Grade,
		exam.Topics,
		exam.UpdatedAt,
	)
	if err != nil {
		return false, store.NewStoreError("exam", "update", "update failed", MapError(err))
	}
	return rowsAffected(result)
}

// Delete implements store.ExamStore.Delete.
func (s *PostgresExamStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM exams WHERE id = $1`, id)
	if err != nil {
		return false, store.NewStoreError("exam", "delete", "delete failed", MapError(err))
	}
	return rowsAffected(result)
}

// DeleteBySubject implements store.ExamStore.DeleteBySubject.
func (s *PostgresExamStore) DeleteBySubject(ctx context.Context, subjectID uuid.UUID) (int, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM exams WHERE subject_id = $1`, subjectID)
	if err != nil {
		return 0, store.NewStoreError("exam", "delete_by_subject", "delete failed", MapError(err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, store.NewStoreError("exam", "delete_by_subject", "failed to get rows affected", err)
	}
	return int(n), nil
}

func (s *PostgresExamStore) query(ctx context.Context, op, query string, args ...any) ([]*domain.Exam, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, store.NewStoreError("exam", op, "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	exams := make([]*domain.Exam, 0)
	for rows.Next() {
		exam, err := scanExam(rows)
		if err != nil {
			return nil, store.NewStoreError("exam", op, "scan failed", err)
		}
		exams = append(exams, exam)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("exam", op, "row iteration failed", err)
	}
	return exams, nil
}

func scanExam(row rowScanner) (*domain.Exam, error) {
	var (
		exam     domain.Exam
		examType string
		date     time.Time
		grade    sql.NullFloat64
	)
	if err := row.Scan(
		&exam.ID,
		&exam.SubjectID,
		&examType,
		&exam.Title,
		&date,
		&exam.Time,
		&grade,
		&exam.Topics,
		&exam.CreatedAt,
		&exam.UpdatedAt,
	); err != nil {
		return nil, err
	}
	exam.Type = domain.ExamType(examType)
	exam.Date = domain.TruncateToDate(date)
	if grade.Valid {
		g := grade.Float64
		exam.Grade = &g
	}
	return &exam, nil
}
