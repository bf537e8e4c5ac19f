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

// SemesterService manages semesters and the placement of subjects in them.
type SemesterService interface {
	// CreateSemester adds an empty semester.
	CreateSemester(ctx context.Context, year int, term domain.Term) (*domain.Semester, error)

	// GetSemester retrieves a semester by ID.
	GetSemester(ctx context.Context, id uuid.UUID) (*domain.Semester, error)

	// ListSemesters returns all semesters ordered by year, then term, then
	// creation.
	ListSemesters(ctx context.Context) ([]*domain.Semester, error)

	// UpdateSemester changes year and term. Scheduled subjects stay.
	UpdateSemester(ctx context.Context, id uuid.UUID, year int, term domain.Term) (*domain.Semester, error)

	// DeleteSemester removes the semester. Its subjects return to the
	// unassigned pool unchanged.
	DeleteSemester(ctx context.Context, id uuid.UUID) error

	// AssignSubject schedules the subject in the semester, moving it out of
	// any other semester. All prerequisites must be approved. Assigning to
	// the semester that already holds the subject changes nothing.
	AssignSubject(ctx context.Context, subjectID, semesterID uuid.UUID) (*domain.Semester, error)

	// UnassignSubject removes the subject from the semester. A subject that
	// is not listed there is ignored.
	UnassignSubject(ctx context.Context, subjectID, semesterID uuid.UUID) (*domain.Semester, error)
}

type semesterServiceImpl struct {
	backend store.Backend
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewSemesterService creates a SemesterService.
// It returns an error if any of the required dependencies are nil.
func NewSemesterService(
	backend store.Backend,
	emitter events.EventEmitter,
	logger *slog.Logger,
) (SemesterService, error) {
	if backend == nil {
		return nil, missingDependency("backend")
	}
	if emitter == nil {
		return nil, missingDependency("emitter")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &semesterServiceImpl{
		backend: backend,
		emitter: emitter,
		logger:  logger.With("component", "semester_service"),
	}, nil
}

func (s *semesterServiceImpl) CreateSemester(ctx context.Context, year int, term domain.Term) (*domain.Semester, error) {
	semester, err := domain.NewSemester(year, term)
	if err != nil {
		return nil, err
	}

	err = s.backend.RunInTransaction(ctx, func(ctx context.Context, tx store.Stores) error {
		return tx.Semesters.Create(ctx, semester)
	})
	if err != nil {
		return nil, NewServiceError("create_semester", "failed to create semester", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("semester created",
		slog.String("semester_id", semester.ID.String()),
		slog.String("label", semester.Label()))
	publish(ctx, s.emitter, s.logger, events.SemesterCreated, semester.ID, semester)
	return semester, nil
}

func (s *semesterServiceImpl) GetSemester(ctx context.Context, id uuid.UUID) (*domain.Semester, error) {
	semester, err := s.backend.Stores().Semesters.GetByID(ctx, id)
	if err != nil {
		return nil, NewServiceError("get_semester", "failed to retrieve semester", err)
	}
	return semester, nil
}

func (s *semesterServiceImpl) ListSemesters(ctx context.Context) ([]*domain.Semester, error) {
	semesters, err := s.backend.Stores().Semesters.List(ctx)
	if err != nil {
		return nil, NewServiceError("list_semesters", "failed to list semesters", err)
	}
	domain.SortSemesters(semesters)
	return semesters, nil
}

func (s *semesterServiceImpl) UpdateSemester(
	ctx context.Context,
	id uuid.UUID,
	year int,
	term domain.Term,
) (*domain.Semester, error) {
	var updated *domain.Semester
	err := s.backend.RunInTransaction(ctx, func(ctx context.Context, tx store.Stores) error {
		semester, err := tx.Semesters.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := semester.Reschedule(year, term); err != nil {
			return err
		}
		found, err := tx.Semesters.Update(ctx, semester)
		if err != nil {
			return err
		}
		if !found {
			return store.ErrSemesterNotFound
		}
		updated = semester
		return nil
	})
	if err != nil {
		return nil, NewServiceError("update_semester", "failed to update semester", err)
	}

	publish(ctx, s.emitter, s.logger, events.SemesterUpdated, updated.ID, updated)
	return updated, nil
}

type semesterDeletedPayload struct {
	ReleasedSubjectIDs []uuid.UUID `json:"released_subject_ids"`
}

func (s *semesterServiceImpl) DeleteSemester(ctx context.Context, id uuid.UUID) error {
	var payload semesterDeletedPayload
	err := s.backend.RunInTransaction(ctx, func(ctx context.Context, tx store.Stores) error {
		semester, err := tx.Semesters.GetByID(ctx, id)
		if err != nil {
			return err
		}
		payload.ReleasedSubjectIDs = semester.SubjectIDs

		found, err := tx.Semesters.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return store.ErrSemesterNotFound
		}
		return nil
	})
	if err != nil {
		return NewServiceError("delete_semester", "failed to delete semester", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("semester deleted",
		slog.String("semester_id", id.String()),
		slog.Int("released_subjects", len(payload.ReleasedSubjectIDs)))
	publish(ctx, s.emitter, s.logger, events.SemesterDeleted, id, payload)
	return nil
}

type assignmentPayload struct {
	SemesterID         uuid.UUID  `json:"semester_id"`
	PreviousSemesterID *uuid.UUID `json:"previous_semester_id,omitempty"`
}

func (s *semesterServiceImpl) AssignSubject(
	ctx context.Context,
	subjectID, semesterID uuid.UUID,
) (*domain.Semester, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var (
		target  *domain.Semester
		changed bool
		payload = assignmentPayload{SemesterID: semesterID}
	)
	err := s.backend.RunInTransaction(ctx, func(ctx context.Context, tx store.Stores) error {
		subject, err := tx.Subjects.GetByID(ctx, subjectID)
		if err != nil {
			return err
		}
		target, err = tx.Semesters.GetByID(ctx, semesterID)
		if err != nil {
			return err
		}
		if target.Contains(subjectID) {
			return nil
		}

		all, err := tx.Subjects.List(ctx)
		if err != nil {
			return err
		}
		if missing := domain.MissingPrerequisites(subject, all); len(missing) > 0 {
			return &PrerequisitesNotMetError{SubjectID: subjectID, Missing: missing}
		}

		semesters, err := tx.Semesters.List(ctx)
		if err != nil {
			return err
		}
		if previous := domain.FindSemesterOf(subjectID, semesters); previous != nil {
			previous.RemoveSubject(subjectID)
			if _, err := tx.Semesters.Update(ctx, previous); err != nil {
				return err
			}
			prevID := previous.ID
			payload.PreviousSemesterID = &prevID
		}

		target.AddSubject(subjectID)
		if _, err := tx.Semesters.Update(ctx, target); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		log.Debug("subject assignment refused",
			slog.String("subject_id", subjectID.String()),
			slog.String("semester_id", semesterID.String()),
			slog.String("error", err.Error()))
		return nil, NewServiceError("assign_subject", "failed to assign subject", err)
	}

	if changed {
		log.Info("subject assigned",
			slog.String("subject_id", subjectID.String()),
			slog.String("semester_id", semesterID.String()))
		publish(ctx, s.emitter, s.logger, events.SubjectAssigned, subjectID, payload)
	}
	return target, nil
}

func (s *semesterServiceImpl) UnassignSubject(
	ctx context.Context,
	subjectID, semesterID uuid.UUID,
) (*domain.Semester, error) {
	var (
		semester *domain.Semester
		changed  bool
	)
	err := s.backend.RunInTransaction(ctx, func(ctx context.Context, tx store.Stores) error {
		var err error
		semester, err = tx.Semesters.GetByID(ctx, semesterID)
		if err != nil {
			return err
		}
		if !semester.RemoveSubject(subjectID) {
			return nil
		}
		if _, err := tx.Semesters.Update(ctx, semester); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		return nil, NewServiceError("unassign_subject", "failed to unassign subject", err)
	}

	if changed {
		publish(ctx, s.emitter, s.logger, events.SubjectUnassigned, subjectID,
			assignmentPayload{SemesterID: semesterID})
	}
	return semester, nil
}
