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

const semesterColumns = `id, year, term, created_at, updated_at`

// PostgresSemesterStore implements the store.SemesterStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSemesterStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSemesterStore creates a new PostgreSQL implementation of the SemesterStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresSemesterStore(db store.DBTX, logger *slog.Logger) *PostgresSemesterStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresSemesterStore{
		db:     db,
		logger: logger.With(slog.String("component", "semester_store")),
	}
}

var _ store.SemesterStore = (*PostgresSemesterStore)(nil)

// Create implements store.SemesterStore.Create.
func (s *PostgresSemesterStore) Create(ctx context.Context, semester *domain.Semester) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := semester.Validate(); err != nil {
		log.Warn("semester validation failed during create", slog.String("error", err.Error()))
		return err
	}
	if semester.ID == uuid.Nil {
		semester.ID = uuid.New()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO semesters (id, year, term, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`,
		semester.ID,
		semester.Year,
		string(semester.Term),
		semester.CreatedAt,
		semester.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to insert semester",
			slog.String("error", err.Error()),
			slog.String("semester_id", semester.ID.String()))
		return mapInsertError(err, "semester")
	}

	if err := s.writeMembers(ctx, semester.ID, semester.SubjectIDs); err != nil {
		return store.NewStoreError("semester", "create", "failed to write subjects", err)
	}

	log.Debug("semester created",
		slog.String("semester_id", semester.ID.String()),
		slog.String("label", semester.Label()))
	return nil
}

// GetByID implements store.SemesterStore.GetByID.
func (s *PostgresSemesterStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Semester, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+semesterColumns+` FROM semesters WHERE id = $1`, id)

	semester, err := scanSemester(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSemesterNotFound
		}
		return nil, store.NewStoreError("semester", "get", "query failed", MapError(err))
	}

	members, err := s.db.QueryContext(ctx, `
		SELECT subject_id
		FROM semester_subjects
		WHERE semester_id = $1
		ORDER BY position`, id)
	if err != nil {
		return nil, store.NewStoreError("semester", "get", "subject query failed", MapError(err))
	}
	defer func() { _ = members.Close() }()

	for members.Next() {
		var subjectID uuid.UUID
		if err := members.Scan(&subjectID); err != nil {
			return nil, store.NewStoreError("semester", "get", "subject scan failed", err)
		}
		semester.SubjectIDs = append(semester.SubjectIDs, subjectID)
	}
	if err := members.Err(); err != nil {
		return nil, store.NewStoreError("semester", "get", "subject iteration failed", err)
	}
	return semester, nil
}

// List implements store.SemesterStore.List.
func (s *PostgresSemesterStore) List(ctx context.Context) ([]*domain.Semester, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+semesterColumns+` FROM semesters ORDER BY seq`)
	if err != nil {
		return nil, store.NewStoreError("semester", "list", "query failed", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	semesters := make([]*domain.Semester, 0)
	byID := make(map[uuid.UUID]*domain.Semester)
	for rows.Next() {
		semester, err := scanSemester(rows)
		if err != nil {
			return nil, store.NewStoreError("semester", "list", "scan failed", err)
		}
		semesters = append(semesters, semester)
		byID[semester.ID] = semester
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("semester", "list", "row iteration failed", err)
	}

	members, err := s.db.QueryContext(ctx, `
		SELECT semester_id, subject_id
		FROM semester_subjects
		ORDER BY semester_id, position`)
	if err != nil {
		return nil, store.NewStoreError("semester", "list", "subject query failed", MapError(err))
	}
	defer func() { _ = members.Close() }()

	for members.Next() {
		var semesterID, subjectID uuid.UUID
		if err := members.Scan(&semesterID, &subjectID); err != nil {
			return nil, store.NewStoreError("semester", "list", "subject scan failed", err)
		}
		if semester, ok := byID[semesterID]; ok {
			semester.SubjectIDs = append(semester.SubjectIDs, subjectID)
		}
	}
	if err := members.Err(); err != nil {
		return nil, store.NewStoreError("semester", "list", "subject iteration failed", err)
	}

	return semesters, nil
}

// Update implements store.SemesterStore.Update. The subject list is
// rewritten in full.
func (s *PostgresSemesterStore) Update(ctx context.Context, semester *domain.Semester) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := semester.Validate(); err != nil {
		log.Warn("semester validation failed during update",
			slog.String("error", err.Error()),
			slog.String("semester_id", semester.ID.String()))
		return false, err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE semesters
		SET year = $2, term = $3, updated_at = $4
		WHERE id = $1`,
		semester.ID,
		semester.Year,
		string(semester.Term),
		semester.UpdatedAt,
	)
	if err != nil {
		return false, store.NewStoreError("semester", "update", "update failed", MapError(err))
	}
	found, err := rowsAffected(result)
	if err != nil || !found {
		return false, err
	}

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM semester_subjects WHERE semester_id = $1`, semester.ID); err != nil {
		return false, store.NewStoreError("semester", "update", "failed to clear subjects", MapError(err))
	}
	if err := s.writeMembers(ctx, semester.ID, semester.SubjectIDs); err != nil {
		return false, store.NewStoreError("semester", "update", "failed to write subjects", err)
	}
	return true, nil
}

// Delete implements store.SemesterStore.Delete.
func (s *PostgresSemesterStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM semesters WHERE id = $1`, id)
	if err != nil {
		return false, store.NewStoreError("semester", "delete", "delete failed", MapError(err))
	}
	return rowsAffected(result)
}

func (s *PostgresSemesterStore) writeMembers(ctx context.Context, semesterID uuid.UUID, ids []uuid.UUID) error {
	for i, subjectID := range ids {
		if _, err := s.db.ExecContext(ctx, `
			INSERT INTO semester_subjects (semester_id, subject_id, position)
			VALUES ($1, $2, $3)`,
			semesterID, subjectID, i,
		); err != nil {
			return MapError(err)
		}
	}
	return nil
}

func scanSemester(row rowScanner) (*domain.Semester, error) {
	var (
		semester domain.Semester
		term     string
	)
	if err := row.Scan(
		&semester.ID,
		&semester.Year,
		&term,
		&semester.CreatedAt,
		&semester.UpdatedAt,
	); err != nil {
		return nil, err
	}
	semester.Term = domain.Term(term)
	semester.SubjectIDs = []uuid.UUID{}
	return &semester, nil
}
