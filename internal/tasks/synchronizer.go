package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/todox/internal/models"
	"github.com/desertthunder/todox/internal/services"
	"github.com/desertthunder/todox/internal/shared"
	"golang.org/x/oauth2"
)

// FailureKind classifies the error returned by a [Synchronizer] operation.
type FailureKind int

const (
	FailureNone      FailureKind = iota // operation succeeded
	FailureSkipped                      // precondition unmet, no request sent
	FailureTransport                    // request never produced a response
	FailureStatus                       // non-2xx response
	FailurePayload                      // response body could not be decoded
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureSkipped:
		return "skipped"
	case FailureTransport:
		return "transport"
	case FailureStatus:
		return "status"
	case FailurePayload:
		return "payload"
	default:
		return fmt.Sprintf("FailureKind(%d)", int(k))
	}
}

// Classify maps an error from a [Synchronizer] operation to its [FailureKind].
//
// Errors that match none of the known sentinels are treated as transport failures.
func Classify(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, shared.ErrNoCredential),
		errors.Is(err, shared.ErrEmptyText),
		errors.Is(err, shared.ErrTaskNotFound):
		return FailureSkipped
	case errors.Is(err, shared.ErrUnexpectedStatus):
		return FailureStatus
	case errors.Is(err, shared.ErrMalformedResponse):
		return FailurePayload
	default:
		return FailureTransport
	}
}

// SynchronizerOpts holds the dependencies of a [Synchronizer].
type SynchronizerOpts struct {
	API    services.TaskAPI
	Tokens oauth2.TokenSource // nil means no credential
	Logger *log.Logger        // optional
	Filter models.Filter      // initial filter, defaults to all
}

// Synchronizer mirrors the remote task collection in memory.
//
// The mutex guards tasks and filter only; it is never held across a request, so overlapping calls are allowed
// and whichever response arrives last wins.
type Synchronizer struct {
	api    services.TaskAPI
	tokens oauth2.TokenSource
	logger *log.Logger

	mu     sync.RWMutex
	tasks  []models.Task
	filter models.Filter
}

// NewSynchronizer creates an empty [Synchronizer]. Call [Synchronizer.Load] to populate it.
func NewSynchronizer(opts SynchronizerOpts) *Synchronizer {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	filter := opts.Filter
	if filter == "" {
		filter = models.FilterAll
	}

	return &Synchronizer{
		api:    opts.API,
		tokens: opts.Tokens,
		logger: logger,
		tasks:  []models.Task{},
		filter: filter,
	}
}

// token resolves the credential. A nil source, a failing source or an empty access token all yield
// [shared.ErrNoCredential].
func (s *Synchronizer) token() (*oauth2.Token, error) {
	if s.tokens == nil {
		return nil, shared.ErrNoCredential
	}

	tok, err := s.tokens.Token()
	if err != nil {
		if errors.Is(err, shared.ErrNoCredential) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", shared.ErrNoCredential, err)
	}
	if tok == nil || tok.AccessToken == "" {
		return nil, shared.ErrNoCredential
	}
	return tok, nil
}

func (s *Synchronizer) fail(op string, err error) error {
	s.logger.Debug("task operation failed", "op", op, "kind", Classify(err), "err", err)
	return err
}

// Load replaces the local list with the remote collection.
//
// Without a credential the list is left as is. Any request failure empties the list.
func (s *Synchronizer) Load(ctx context.Context) error {
	tok, err := s.token()
	if err != nil {
		return s.fail("load", err)
	}

	tasks, err := s.api.ListTodos(ctx, tok)

	s.mu.Lock()
	if err != nil {
		s.tasks = []models.Task{}
	} else {
		s.tasks = slices.Clone(tasks)
		if s.tasks == nil {
			s.tasks = []models.Task{}
		}
	}
	s.mu.Unlock()

	if err != nil {
		return s.fail("load", err)
	}
	s.logger.Debug("loaded tasks", "count", len(tasks))
	return nil
}

// Create sends text unmodified and puts the created task at the head of the list.
//
// Blank text is rejected with [shared.ErrEmptyText] before any request is made.
func (s *Synchronizer) Create(ctx context.Context, text string) (models.Task, error) {
	tok, err := s.token()
	if err != nil {
		return models.Task{}, s.fail("create", err)
	}
	if strings.TrimSpace(text) == "" {
		return models.Task{}, s.fail("create", shared.ErrEmptyText)
	}

	task, err := s.api.CreateTodo(ctx, tok, text)
	if err != nil {
		return models.Task{}, s.fail("create", err)
	}

	s.mu.Lock()
	s.tasks = slices.Insert(s.tasks, 0, task)
	s.mu.Unlock()
	return task, nil
}

// Toggle flips the completed flag of the task with id.
func (s *Synchronizer) Toggle(ctx context.Context, id string) (models.Task, error) {
	tok, err := s.token()
	if err != nil {
		return models.Task{}, s.fail("toggle", err)
	}

	current, ok := s.Find(id)
	if !ok {
		return models.Task{}, s.fail("toggle", fmt.Errorf("%w: %s", shared.ErrTaskNotFound, id))
	}

	task, err := s.api.UpdateTodo(ctx, tok, id, current.Text, !current.Completed)
	if err != nil {
		return models.Task{}, s.fail("toggle", err)
	}

	s.replace(id, task)
	return task, nil
}

// Edit replaces the text of the task with id, keeping its completed flag. text is trimmed before sending.
func (s *Synchronizer) Edit(ctx context.Context, id, text string) (models.Task, error) {
	tok, err := s.token()
	if err != nil {
		return models.Task{}, s.fail("edit", err)
	}

	current, ok := s.Find(id)
	if !ok {
		return models.Task{}, s.fail("edit", fmt.Errorf("%w: %s", shared.ErrTaskNotFound, id))
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return models.Task{}, s.fail("edit", shared.ErrEmptyText)
	}

	task, err := s.api.UpdateTodo(ctx, tok, id, text, current.Completed)
	if err != nil {
		return models.Task{}, s.fail("edit", err)
	}

	s.replace(id, task)
	return task, nil
}

// Remove deletes the task with id remotely, then drops every local entry with that id.
//
// The request is sent even when no local entry matches.
func (s *Synchronizer) Remove(ctx context.Context, id string) error {
	tok, err := s.token()
	if err != nil {
		return s.fail("remove", err)
	}

	if err := s.api.DeleteTodo(ctx, tok, id); err != nil {
		return s.fail("remove", err)
	}

	s.mu.Lock()
	s.tasks = slices.DeleteFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
	s.mu.Unlock()
	return nil
}

// replace swaps every entry with id for task.
func (s *Synchronizer) replace(id string, task models.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i] = task
		}
	}
}

// View returns the tasks matching the current filter in list order.
func (s *Synchronizer) View() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.FilterTasks(s.tasks, s.filter)
}

// Counts summarises the full list regardless of filter.
func (s *Synchronizer) Counts() models.Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CountTasks(s.tasks)
}

// Tasks returns a copy of the unfiltered list.
func (s *Synchronizer) Tasks() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tasks)
}

// Find returns the first task with id.
func (s *Synchronizer) Find(id string) (models.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.tasks, func(t models.Task) bool { return t.ID == id })
	if i < 0 {
		return models.Task{}, false
	}
	return s.tasks[i], true
}

func (s *Synchronizer) Filter() models.Filter {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter
}

// SetFilter changes the view filter. Only [models.Filters] are accepted.
func (s *Synchronizer) SetFilter(f models.Filter) error {
	if !slices.Contains(models.Filters, f) {
		return fmt.Errorf("%w: %q", shared.ErrInvalidFilter, f)
	}

	s.mu.Lock()
	s.filter = f
	s.mu.Unlock()
	return nil
}
