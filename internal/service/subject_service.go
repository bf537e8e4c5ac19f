package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/planner/internal/domain"
	"github.com/phrazzld/planner/internal/events"
	"github.com/phrazzld/planner/internal/platform/logger"
	"github.com/phrazzld/planner/internal/store"
)

// SubjectService manages subjects, their prerequisites and their status.
type SubjectService interface {
	// CreateSubject adds a pending subject. prerequisiteIDs must name
	// existing subjects.
	CreateSubject(ctx context.Context, name string, prerequisiteIDs []uuid.UUID) (*domain.Subject, error)

	// GetSubject retrieves a subject by ID.
	GetSubject(ctx context.Context, id uuid.UUID) (*domain.Subject, error)

	// ListSubjects returns all subjects in creation order.
	ListSubjects(ctx context.Context) ([]*domain.Subject, error)

	// UpdateSubject renames the subject. When prerequisiteIDs is non-nil it
	// replaces the prerequisite set; self references, cycles and newly added
	// unknown ids are rejected, while kept dangling ids stay. A nil
	// prerequisiteIDs leaves the set untouched.
	UpdateSubject(ctx context.Context, id uuid.UUID, name string, prerequisiteIDs *[]uuid.UUID) (*domain.Subject, error)

	// DeleteSubject removes the subject, drops it from its semester and
	// deletes its exams. Other subjects keep referencing it.
	DeleteSubject(ctx context.Context, id uuid.UUID) error

	// SetSubjectStatus moves the subject to status. Approving requires a
	// grade and returns ErrGradeRequired without changes when grade is nil.
	SetSubjectStatus(ctx context.Context, id uuid.UUID, status domain.SubjectStatus, grade *float64) (*domain.Subject, error)

	// GetDependencies returns the prerequisite neighbourhood of a subject.
	GetDependencies(ctx context.Context, id uuid.UUID) (*domain.DependencyView, error)

	// ListUnassigned returns the subjects no semester lists.
	ListUnassigned(ctx context.Context) ([]*domain.Subject, error)
}

type subjectServiceImpl struct {
	backend store.Backend
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewSubjectService creates a SubjectService.
// It returns an error if any of the required dependencies are nil.
func NewSubjectService(
	backend store.Backend,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (SubjectService, error) {
	if backend == nil {
		return nil, missingDependency("backend")
	}
	if emitter == nil {
		return nil, missingDependency("emitter")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &subjectServiceImpl{
		backend: backend,
		emitter: emitter,
		logger:  logger.With("component", "subject_service"),
	}, nil
}

func (s *subjectServiceImpl) CreateSubject(
	ctx context.Context,
	name string,
	prerequisiteIDs []uuid.UUID,
) (*domain.Subject, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	subject, err := domain.NewSubject(name)
	if err != nil {
		log.Debug("invalid subject", slog.String("error", err.Error()))
		return nil, err
	}
	subject.ID = uuid.New()
	if err := subject.SetPrerequisites(prerequisiteIDs); err != nil {
		return nil, err
	}

	err = s.backend.RunInTransaction(ctx, func(ctx context.Context, tx store.Stores) error {
		all, err := tx.Subjects.List(ctx)
		if err != nil {
			return err
		}
		if err := domain.ValidatePrerequisites(subject.ID, subject.PrerequisiteIDs, all); err != nil {
			return err
		}
		return tx.Subjects.Create(ctx, subject)
	})
	if err != nil {
		return nil, NewServiceError("create_subject", "failed to create subject", err)
	}

	log.Info("subject created",
		slog.String("subject_id", subject.ID.String()),
		slog.Int("prerequisites", len(subject.PrerequisiteIDs)))
	publish(ctx, s.emitter, s.logger, events.SubjectCreated, subject.ID, subject)
	return subject, nil
}

func (s *subjectServiceImpl) GetSubject(ctx context.Context, id uuid.UUID) (*domain.Subject, error) {
	subject, err := s.backend.Stores().Subjects.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("get_subject", "failed to retrieve subject", err)
	}
	return subject, nil
}

func (s *subjectServiceImpl) ListSubjects(ctx context.Context) ([]*domain.Subject, error) {
	subjects, err := s.backend.Stores().Subjects.List(ctx)
	if err != nil {
		return nil, NewServiceError("list_subjects", "failed to list subjects", err)
	}
	return subjects, nil
}

func (s *subjectServiceImpl) UpdateSubject(
	ctx context.Context,
	id uuid.UUID,
	name string,
	prerequisiteIDs *[]uuid.UUID,
) (*domain.Subject, error) {
	var updated *domain.Subject
	err := s.backend.RunInTransaction(ctx, func(ctx context.Context, tx store.Stores) error {
		subject, err := tx.Subjects.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := subject.Rename(name); err != nil {
			return err
		}

		if prerequisiteIDs != nil {
			current := subject.PrerequisiteIDs
			if err := subject.SetPrerequisites(*prerequisiteIDs); err != nil {
				return err
			}

			all, err := tx.Subjects.List(ctx)
			if err != nil {
				return err
			}
			err = domain.ValidatePrerequisiteUpdate(subject.ID, current, subject.PrerequisiteIDs, all)
			if err != nil {
				return err
			}
		}

		found, err := tx.Subjects.Update(ctx, subject)
		if err != nil {
			return err
		}
		if !found {
			return store.ErrSubjectNotFound
		}
		updated = subject
		return nil
	})
	if err != nil {
		return nil, NewServiceError("update_subject", "failed to update subject", err)
	}

	publish(ctx, s.emitter, s.logger, events.SubjectUpdated, updated.ID, updated)
	return updated, nil
}

type subjectDeletedPayload struct {
	SemesterID   *uuid.UUID `json:"semester_id,omitempty"`
	ExamsDeleted int        `json:"exams_deleted"`
}

func (s *subjectServiceImpl) DeleteSubject(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var payload subjectDeletedPayload
	err := s.backend.RunInTransaction(ctx, func(ctx context.Context, tx store.Stores) error {
		if _, err := tx.Subjects.GetByID(ctx, id); err != nil {
			return err
		}

		n, err := tx.Exams.DeleteBySubject(ctx, id)
		if err != nil {
			return err
		}
		payload.ExamsDeleted = n

		semesters, err := tx.Semesters.List(ctx)
		if err != nil {
			return err
		}
		if sem := domain.FindSemesterOf(id, semesters); sem != nil {
			sem.RemoveSubject(id)
			if _, err := tx.Semesters.Update(ctx, sem); err != nil {
				return err
			}
			semID := sem.ID
			payload.SemesterID = &semID
		}

		found, err := tx.Subjects.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return store.ErrSubjectNotFound
		}
		return nil
	})
	if err != nil {
		return NewServiceError("delete_subject", "failed to delete subject", err)
	}

	log.Info("subject deleted",
		slog.String("subject_id", id.String()),
		slog.Int("exams_deleted", payload.ExamsDeleted))
	publish(ctx, s.emitter, s.logger, events.SubjectDeleted, id, payload)
	return nil
}

type statusChangedPayload struct {
	From  domain.SubjectStatus `json:"from"`
	To    domain.SubjectStatus `json:"to"`
	Grade *float64             `json:"grade,omitempty"`
}

func (s *subjectServiceImpl) SetSubjectStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.SubjectStatus,
	grade *float64,
) (*domain.Subject, error) {
	var (
		updated *domain.Subject
		payload statusChangedPayload
	)
	err := s.backend.RunInTransaction(ctx, func(ctx context.Context, tx store.Stores) error {
		subject, err := tx.Subjects.GetByID(ctx, id)
		if err != nil {
			return err
		}
		payload.From = subject.Status

		if err := subject.TransitionTo(status, grade); err != nil {
			return err
		}

		found, err := tx.Subjects.Update(ctx, subject)
		if err != nil {
			return err
		}
		if !found {
			return store.ErrSubjectNotFound
		}
		updated = subject
		return nil
	})
	if err != nil {
		return nil, NewServiceError("set_subject_status", "failed to change subject status", err)
	}

	payload.To = updated.Status
	payload.Grade = updated.FinalGrade
	publish(ctx, s.emitter, s.logger, events.SubjectStatusChanged, updated.ID, payload)
	return updated, nil
}

func (s *subjectServiceImpl) GetDependencies(ctx context.Context, id uuid.UUID) (*domain.DependencyView, error) {
	subjects := s.backend.Stores().Subjects

	subject, err := subjects.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("get_dependencies", "failed to retrieve subject", err)
	}
	all, err := subjects.List(ctx)
	if err != nil {
		return nil, NewServiceError("get_dependencies", "failed to list subjects", err)
	}

	view := domain.ResolveDependencies(subject, all)
	return &view, nil
}

func (s *subjectServiceImpl) ListUnassigned(ctx context.Context) ([]*domain.Subject, error) {
	stores := s.backend.Stores()

	subjects, err := stores.Subjects.List(ctx)
	if err != nil {
		return nil, NewServiceError("list_unassigned", "failed to list subjects", err)
	}
	semesters, err := stores.Semesters.List(ctx)
	if err != nil {
		return nil, NewServiceError("list_unassigned", "failed to list semesters", err)
	}

	return domain.UnassignedSubjects(subjects, semesters), nil
}
