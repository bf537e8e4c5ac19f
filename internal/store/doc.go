// Package store defines the persistence contracts of the planner.
//
// The interfaces here describe the three entity collections (subjects,
// semesters and exams) and the transaction boundary the services use to
// apply a command atomically. Implementations live under
// internal/platform: an in-memory backend and a PostgreSQL backend.
//
// Stores perform no referential checks between collections. Keeping a
// subject in at most one semester, cascading deletes and prerequisite
// gating are the job of the service layer.
package store
