package domain

import (
	"slices"

	"github.com/google/uuid"
)

// ArePrerequisitesMet reports whether subject may be scheduled given the
// current collection. A subject without prerequisites always passes;
// otherwise every referenced subject must exist and be approved. An id that
// no longer resolves (for example after its subject was deleted) counts as
// unmet. The answer is recomputed on every call since statuses change
// independently of the graph.
func ArePrerequisitesMet(subject *Subject, all []*Subject) bool {
	return len(MissingPrerequisites(subject, all)) == 0
}

// MissingPrerequisites returns the prerequisite ids of subject that are not
// satisfied, in the order they are listed on the subject.
func MissingPrerequisites(subject *Subject, all []*Subject) []uuid.UUID {
	if subject == nil || len(subject.PrerequisiteIDs) == 0 {
		return nil
	}

	byID := indexSubjects(all)
	var missing []uuid.UUID
	for _, id := range subject.PrerequisiteIDs {
		prereq, ok := byID[id]
		if !ok || !prereq.IsApproved() {
			missing = append(missing, id)
		}
	}
	return missing
}

// DependencyView is the neighbourhood of one subject in the prerequisite
// graph.
type DependencyView struct {
	// Prerequisites are the subjects this one requires that still exist.
	Prerequisites []*Subject
	// Unresolved lists prerequisite ids that no longer match any subject.
	Unresolved []uuid.UUID
	// Dependents are the subjects that list this one as a prerequisite.
	Dependents []*Subject
}

// ResolveDependencies builds the dependency view of subject with one scan
// over the collection for each direction.
func ResolveDependencies(subject *Subject, all []*Subject) DependencyView {
	view := DependencyView{
		Prerequisites: []*Subject{},
		Unresolved:    []uuid.UUID{},
		Dependents:    []*Subject{},
	}

	byID := indexSubjects(all)
	for _, id := range subject.PrerequisiteIDs {
		if prereq, ok := byID[id]; ok {
			view.Prerequisites = append(view.Prerequisites, prereq)
		} else {
			view.Unresolved = append(view.Unresolved, id)
		}
	}

	for _, other := range all {
		if other.ID != subject.ID && other.HasPrerequisite(subject.ID) {
			view.Dependents = append(view.Dependents, other)
		}
	}

	return view
}

// ValidatePrerequisites checks a proposed prerequisite set for subjectID
// against the rest of the collection. It rejects self references, ids that
// match no subject and edges that would close a cycle. The stored edges of
// subjectID itself are ignored in favour of prereqIDs.
func ValidatePrerequisites(subjectID uuid.UUID, prereqIDs []uuid.UUID, all []*Subject) error {
	return validatePrerequisites(subjectID, nil, prereqIDs, all)
}

// ValidatePrerequisiteUpdate is ValidatePrerequisites for a subject that
// already has the prerequisite set current. Ids kept from current may point
// at deleted subjects; only newly added ids must exist.
func ValidatePrerequisiteUpdate(subjectID uuid.UUID, current, prereqIDs []uuid.UUID, all []*Subject) error {
	return validatePrerequisites(subjectID, current, prereqIDs, all)
}

func validatePrerequisites(subjectID uuid.UUID, current, prereqIDs []uuid.UUID, all []*Subject) error {
	byID := indexSubjects(all)
	for _, id := range prereqIDs {
		if id == uuid.Nil {
			return ErrEmptyPrerequisiteID
		}
		if id == subjectID {
			return ErrSelfPrerequisite
		}
		if _, ok := byID[id]; !ok && !slices.Contains(current, id) {
			return ErrUnknownPrerequisite
		}
	}

	edges := func(id uuid.UUID) []uuid.UUID {
		if id == subjectID {
			return prereqIDs
		}
		if s, ok := byID[id]; ok {
			return s.PrerequisiteIDs
		}
		return nil
	}

	// A cycle through the new edges exists iff subjectID is reachable from
	// one of its proposed prerequisites.
	visited := make(map[uuid.UUID]bool, len(all))
	stack := append([]uuid.UUID(nil), prereqIDs...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id == subjectID {
			return ErrPrerequisiteCycle
		}
		if visited[id] {
			continue
		}
		visited[id] = true
		stack = append(stack, edges(id)...)
	}

	return nil
}

func indexSubjects(all []*Subject) map[uuid.UUID]*Subject {
	byID := make(map[uuid.UUID]*Subject, len(all))
	for _, s := range all {
		byID[s.ID] = s
	}
	return byID
}
