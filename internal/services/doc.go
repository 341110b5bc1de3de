// Package services defines the [TaskAPI] interface for the remote task collaborator and implements it over HTTP.
//
// # Task API
//
// [TodoService] talks to:
//
//	GET    /todos       → [{id, text, completed, createdAt}]
//	POST   /todos       {text} → {id, text, completed, created_at}
//	PUT    /todos/{id}  {text, completed} → {id, text, completed, created_at}
//	DELETE /todos/{id}  → 2xx
//	GET    /me          → 200 when the token is valid
//
// The bearer credential is an [oauth2.Token] passed on every call and applied with [oauth2.Token.SetAuthHeader].
//
// # Record Mapping
//
// Raw records are mapped into [models.Task]. The decoder is lenient about the collaborator's quirks: ids may be
// strings or numbers, completion flags are coerced truthily, and the timestamp is read from either "createdAt" or
// "created_at" since list and mutation responses disagree on the name.
//
// # Error Handling
//
// Failures are classified with sentinel errors from the shared package:
//   - [shared.ErrNoCredential] : no token was supplied
//   - [shared.ErrAPIRequest] : the request could not be sent or its body read
//   - [shared.ErrUnexpectedStatus] : non-2xx status, as a [*StatusError]
//   - [shared.ErrMalformedResponse] : the body could not be decoded into the expected shape
//
// # Throttling
//
// [WithRateLimit] installs a [rate.Limiter] every request waits on.
package services
