// package services defines the task API client used by the synchronizer and the CLI
package services

import (
	"context"

	"github.com/desertthunder/todox/internal/models"
	"golang.org/x/oauth2"
)

// TaskAPI is the remote collaborator owning canonical task state.
//
// Every call carries the bearer credential explicitly; implementations never read ambient credentials.
type TaskAPI interface {
	// ListTodos fetches the full collection (GET /todos).
	ListTodos(ctx context.Context, tok *oauth2.Token) ([]models.Task, error)

	// CreateTodo creates a task with text as given (POST /todos).
	CreateTodo(ctx context.Context, tok *oauth2.Token, text string) (models.Task, error)

	// UpdateTodo replaces a task's text and completion flag (PUT /todos/{id}).
	UpdateTodo(ctx context.Context, tok *oauth2.Token, id, text string, completed bool) (models.Task, error)

	// DeleteTodo removes a task (DELETE /todos/{id}).
	DeleteTodo(ctx context.Context, tok *oauth2.Token, id string) error

	// Me validates the credential (GET /me).
	Me(ctx context.Context, tok *oauth2.Token) (*Profile, error)
}

// Profile is the account behind a credential, as returned by GET /me.
type Profile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
