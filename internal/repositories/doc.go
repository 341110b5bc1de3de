// Package repositories implements SQLite persistence for the reference task API.
//
// Each repository handles CRUD operations with atomic sequence generation for ordering.
// Deletes are soft, via deleted_at timestamps, and deleted records are excluded from queries.
//
// Key Implementations:
//   - [UserRepository] : accounts, looked up by bearer token
//   - [TaskRepository] : tasks scoped to a user, listed most recent first
//
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
