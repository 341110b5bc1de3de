// Package tasks keeps a local mirror of the remote task collection.
//
// # Synchronizer
//
// [Synchronizer] holds the task list and the current [models.Filter]. Every mutating call issues exactly one
// request through [services.TaskAPI] and patches local state from the server's reply:
//
//   - [Synchronizer.Load] replaces the list wholesale; a failed load leaves it empty
//   - [Synchronizer.Create] prepends the created task
//   - [Synchronizer.Toggle] and [Synchronizer.Edit] replace matching entries in place
//   - [Synchronizer.Remove] drops matching entries, preserving order
//
// A failed mutation leaves the list untouched. There are no retries and no optimistic updates.
//
// # Credentials
//
// The bearer credential comes from an [oauth2.TokenSource] passed in [SynchronizerOpts] and is resolved on each
// call. When it is absent every operation returns [shared.ErrNoCredential] without sending a request.
//
// # Failures
//
// Errors keep their sentinel chain; [Classify] reduces one to a [FailureKind] for callers that only care about
// the category. Callers that follow a silent policy, like the terminal view, can discard them.
//
// # Views
//
// [Synchronizer.View] and [Synchronizer.Counts] are pure reads over a snapshot. They never alias internal state.
package tasks
