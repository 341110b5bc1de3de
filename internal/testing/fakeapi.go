package testing

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/desertthunder/todox/internal/models"
	"github.com/desertthunder/todox/internal/services"
	"github.com/desertthunder/todox/internal/shared"
	"golang.org/x/oauth2"
)

// FakeTaskAPI is an in-memory [services.TaskAPI] with injectable failures.
//
// Tasks are kept most recent first. Set Err to make every call fail, or the per-operation errors to fail one kind.
type FakeTaskAPI struct {
	mu sync.Mutex

	Tasks     []models.Task
	Token     string // accepted access token; empty accepts any
	Err       error
	ListErr   error
	CreateErr error
	UpdateErr error
	DeleteErr error
	Calls     []string

	// BeforeUpdate, when set, runs before an update is applied; tests use it to interleave calls.
	BeforeUpdate func(id string)

	nextID int
	now    time.Time
}

var _ services.TaskAPI = (*FakeTaskAPI)(nil)

// NewFakeTaskAPI creates a fake seeded with tasks.
func NewFakeTaskAPI(tasks ...models.Task) *FakeTaskAPI {
	return &FakeTaskAPI{
		Tasks:  append([]models.Task(nil), tasks...),
		nextID: len(tasks) + 100,
		now:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// CallCount returns how many calls were made to the named operation.
func (f *FakeTaskAPI) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, c := range f.Calls {
		if c == op {
			n++
		}
	}
	return n
}

func (f *FakeTaskAPI) check(tok *oauth2.Token, op string, opErr error) error {
	f.Calls = append(f.Calls, op)
	if tok == nil || tok.AccessToken == "" {
		return shared.ErrNoCredential
	}
	if f.Token != "" && tok.AccessToken != f.Token {
		return &services.StatusError{StatusCode: 401, Message: "invalid token"}
	}
	if f.Err != nil {
		return f.Err
	}
	return opErr
}

func (f *FakeTaskAPI) ListTodos(ctx context.Context, tok *oauth2.Token) ([]models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.check(tok, "list", f.ListErr); err != nil {
		return nil, err
	}
	return append([]models.Task(nil), f.Tasks...), nil
}

func (f *FakeTaskAPI) CreateTodo(ctx context.Context, tok *oauth2.Token, text string) (models.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.check(tok, "create", f.CreateErr); err != nil {
		return models.Task{}, err
	}

	f.nextID++
	f.now = f.now.Add(time.Minute)
	task := models.Task{ID: strconv.Itoa(f.nextID), Text: strings.TrimSpace(text), CreatedAt: f.now}
	f.Tasks = append([]models.Task{task}, f.Tasks...)
	return task, nil
}

func (f *FakeTaskAPI) UpdateTodo(ctx context.Context, tok *oauth2.Token, id, text string, completed bool) (models.Task, error) {
	if f.BeforeUpdate != nil {
		f.BeforeUpdate(id)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.check(tok, "update", f.UpdateErr); err != nil {
		return models.Task{}, err
	}

	for i, t := range f.Tasks {
		if t.ID == id {
			f.Tasks[i].Text = text
			f.Tasks[i].Completed = completed
			return f.Tasks[i], nil
		}
	}
	return models.Task{}, &services.StatusError{StatusCode: 404, Message: fmt.Sprintf("todo %s not found", id)}
}

func (f *FakeTaskAPI) DeleteTodo(ctx context.Context, tok *oauth2.Token, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.check(tok, "delete", f.DeleteErr); err != nil {
		return err
	}

	for i, t := range f.Tasks {
		if t.ID == id {
			f.Tasks = append(f.Tasks[:i], f.Tasks[i+1:]...)
			return nil
		}
	}
	return &services.StatusError{StatusCode: 404, Message: fmt.Sprintf("todo %s not found", id)}
}

func (f *FakeTaskAPI) Me(ctx context.Context, tok *oauth2.Token) (*services.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.check(tok, "me", nil); err != nil {
		return nil, err
	}
	return &services.Profile{ID: "user-1", Name: "tester"}, nil
}

// StaticToken returns a token source that always yields token.
func StaticToken(token string) oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
}
