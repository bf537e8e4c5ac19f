package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/planner/internal/domain"
	"github.com/phrazzld/planner/internal/platform/logger"
	"github.com/phrazzld/planner/internal/store"
)

const subjectColumns = `id, name, status, final_grade, created_at, updated_at`

// PostgresSubjectStore implements the store.SubjectStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSubjectStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSubjectStore creates a new PostgreSQL implementation of the SubjectStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresSubjectStore(db store.DBTX, logger *slog.Logger) *PostgresSubjectStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSubjectStore{
		db:     db,
		logger: logger.With(slog.String("component", "subject_store")),
	}
}

var _ store.SubjectStore = (*PostgresSubjectStore)(nil)

// Create implements store.SubjectStore.Create.
// The subject row and its prerequisite rows are written with separate
// statements; callers that need atomicity run it inside a transaction.
func (s *PostgresSubjectStore) Create(ctx context.Context, subject *domain.Subject) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := subject.Validate(); err != nil {
		log.Warn("subject validation failed during create", slog.String("error", err.Error()))
		return err
	}
	if subject.ID == uuid.Nil {
		subject.ID = uuid.New()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO subjects (id, name, status, final_grade, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		subject.ID,
		subject.Name,
		string(subject.Status),
		subject.FinalGrade,
		subject.CreatedAt,
		subject.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to insert subject",
			slog.String("error", err.Error()),
			slog.String("subject_id", subject.ID.String()))
		return mapInsertError(err, "subject")
	}

	if err := s.writePrerequisites(ctx, subject.ID, subject.PrerequisiteIDs); err != nil {
		log.Error("failed to insert prerequisites",
			slog.String("error", err.Error()),
			slog.String("subject_id", subject.ID.String()))
		return store.NewStoreError("subject", "create", "failed to write prerequisites", err)
	}

	log.Debug("subject created", slog.String("subject_id", subject.ID.String()))
	return nil
}

// GetByID implements store.SubjectStore.GetByID.
func (s *PostgresSubjectStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subject, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+subjectColumns+` FROM subjects WHERE id = $1`, id)

	subject, err := scanSubject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSubjectNotFound
		}
		return nil, store.NewStoreError("subject", "get", "query failed", MapError(err))
	}

	prereqs, err := s.prerequisitesOf(ctx, id)
	if err != nil {
		return nil, store.NewStoreError("subject", "get", "failed to read prerequisites", err)
	}
	subject.PrerequisiteIDs = prereqs
	return subject, nil
}

// List implements store.SubjectStore.List.
func (s *PostgresSubjectStore) List(ctx context.Context) ([]*domain.Subject, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+subjectColumns+` FROM subjects ORDER BY seq`)
	if err != nil {
		return nil, store.NewStoreError("subject", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	subjects := make([]*domain.Subject, 0)
	byID := make(map[uuid.UUID]*domain.Subject)
	for rows.Next() {
		subject, err := scanSubject(rows)
		if err != nil {
			return nil, store.NewStoreError("subject", "list", "scan failed", err)
		}
		subjects = append(subjects, subject)
		byID[subject.ID] = subject
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("subject", "list", "row iteration failed", err)
	}

	edges, err := s.db.QueryContext(ctx, `
		SELECT subject_id, prerequisite_id
		FROM subject_prerequisites
		ORDER BY subject_id, position`)
	if err != nil {
		return nil, store.NewStoreError("subject", "list", "prerequisite query failed", MapError(err))
	}
	defer func() { _ = edges.Close() }()

	for edges.Next() {
		var subjectID, prereqID uuid.UUID
		if err := edges.Scan(&subjectID, &prereqID); err != nil {
			return nil, store.NewStoreError("subject", "list", "prerequisite scan failed", err)
		}
		if subject, ok := byID[subjectID]; ok {
			subject.PrerequisiteIDs = append(subject.PrerequisiteIDs, prereqID)
		}
	}
	if err := edges.Err(); err != nil {
		return nil, store.NewStoreError("subject", "list", "prerequisite iteration failed", err)
	}

	return subjects, nil
}

// Update implements store.SubjectStore.Update.
func (s *PostgresSubjectStore) Update(ctx context.Context, subject *domain.Subject) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := subject.Validate(); err != nil {
		log.Warn("subject validation failed during update",
			slog.String("error", err.Error()),
			slog.String("subject_id", subject.ID.String()))
		return false, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE subjects
		SET name = $2, status = $3, final_grade = $4, updated_at = $5
		WHERE id = $1`,
		subject.ID,
		subject.Name,
		string(subject.Status),
		subject.FinalGrade,
		subject.UpdatedAt,
	)
	if err != nil {
		return false, store.NewStoreError("subject", "update", "update failed", MapError(err))
	}
	found, err := rowsAffected(result)
	if err != nil || !found {
		return false, err
	}

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM subject_prerequisites WHERE subject_id = $1`, subject.ID); err != nil {
		return false, store.NewStoreError("subject", "update", "failed to clear prerequisites", MapError(err))
	}
	if err := s.writePrerequisites(ctx, subject.ID, subject.PrerequisiteIDs); err != nil {
		return false, store.NewStoreError("subject", "update", "failed to write prerequisites", err)
	}

	log.Debug("subject updated", slog.String("subject_id", subject.ID.String()))
	return true, nil
}

// Delete implements store.SubjectStore.Delete. Prerequisite rows owned by
// the subject go with it; rows naming it as a prerequisite stay.
func (s *PostgresSubjectStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return false, store.NewStoreError("subject", "delete", "delete failed", MapError(err))
	}
	return rowsAffected(result)
}

func (s *PostgresSubjectStore) writePrerequisites(ctx context.Context, subjectID uuid.UUID, ids []uuid.UUID) error {
	for i, prereqID := range ids {
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO subject_prerequisites (subject_id, prerequisite_id, position)
			VALUES ($1, $2, $3)`,
			subjectID, prereqID, i,
		); err != nil {
			return MapError(err)
		}
	}
	return nil
}

func (s *PostgresSubjectStore) prerequisitesOf(ctx context.Context, subjectID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT prerequisite_id
		FROM subject_prerequisites
		WHERE subject_id = $1
		ORDER BY position`, subjectID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubject(row rowScanner) (*domain.Subject, error) {
	var (
		subject domain.Subject
		status  string
		grade   sql.NullFloat64
	)
	if err := row.Scan(
		&subject.ID,
		&subject.Name,
		&status,
		&grade,
		&subject.CreatedAt,
		&subject.UpdatedAt,
	); err != nil {
		return nil, err
	}
	subject.Status = domain.SubjectStatus(status)
	subject.PrerequisiteIDs = []uuid.UUID{}
	if grade.Valid {
		g := grade.Float64
		subject.FinalGrade = &g
	}
	return &subject, nil
}
