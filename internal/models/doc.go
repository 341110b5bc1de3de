// Package models defines domain entities and persistence interfaces for todox.
//
// The package contains two categories of types:
//
// 1. Client-side values mirrored from the task API:
//   - [Task] : a to-do item as the API returns it
//   - [Filter] : view selector over the task list (all, active, completed)
//   - [Counts] : total/completed/active summary
//
// 2. Persistent Entities used by the reference API server:
//   - [User] : account authenticated by a bearer token
//   - [PersistedTask] : task row owned by a user, soft deleted
//
// All persistent entities implement the [Model] interface providing ID, timestamps and validation.
// The [Repository] interface defines standard CRUD operations for database access.
package models
