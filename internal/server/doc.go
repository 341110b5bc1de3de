// Package server is the reference implementation of the remote task API.
//
// # Routes
//
//	GET    /todos       list the caller's tasks, most recent first ({id, text, completed, createdAt})
//	POST   /todos       create from {text}; replies 201 with {id, text, completed, created_at}
//	PUT    /todos/{id}  update from {text, completed}; same reply shape as POST
//	DELETE /todos/{id}  replies 204
//	GET    /me          the caller's {id, name}
//
// The timestamp is spelled createdAt on the list and created_at on mutations. Clients must accept both.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
// [BasicRouter] registers "METHOD /path" patterns on an [http.ServeMux].
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// so a handler can keep its route definitions next to its implementation. [TodoHandler] dispatches on
// [http.Request.Pattern].
//
// # Authentication
//
// [Auth] resolves the bearer token through a [UserStore] and stores the user in the request context.
// Missing or unknown tokens get 401 with an {"error": "..."} body, as do all other failures with their status.
//
// Tasks belonging to another user are reported as 404.
package server
