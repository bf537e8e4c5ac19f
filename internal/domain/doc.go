// Package domain contains the core planning entities (subjects, semesters and
// exams) together with the pure rules that govern them: the subject status
// lifecycle, prerequisite gating, the derived unassigned pool and progress
// aggregation. Nothing in this package performs I/O or holds state beyond the
// values passed to it.
package domain
