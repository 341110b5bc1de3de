// Task API [TaskAPI] implementation
//
// Talks JSON over HTTP to the endpoints under /todos and /me, authenticating every request with the bearer token
// passed by the caller.
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/todox/internal/models"
	"github.com/desertthunder/todox/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const defaultBaseURL string = "http://localhost:3001"

// StatusError reports a non-2xx response.
//
// It matches [shared.ErrUnexpectedStatus], and also [shared.ErrNotAuthenticated] for 401 and 403.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("task API error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("task API error: status %d", e.StatusCode)
}

func (e *StatusError) Unwrap() []error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return []error{shared.ErrUnexpectedStatus, shared.ErrNotAuthenticated}
	}
	return []error{shared.ErrUnexpectedStatus}
}

// Option configures a [TodoService].
type Option func(*TodoService)

// WithRateLimit throttles outgoing requests to rps per second. Zero or negative disables throttling.
func WithRateLimit(rps float64) Option {
	return func(s *TodoService) {
		if rps > 0 {
			s.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// TodoService implements [TaskAPI] over HTTP.
type TodoService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

var _ TaskAPI = (*TodoService)(nil)

// NewTodoService creates a client for the task API at baseURL.
func NewTodoService(baseURL string, client *http.Client, opts ...Option) *TodoService {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	s := &TodoService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BaseURL returns the API root without a trailing slash.
func (s *TodoService) BaseURL() string {
	return s.baseURL
}

// ListTodos calls GET /todos.
func (s *TodoService) ListTodos(ctx context.Context, tok *oauth2.Token) ([]models.Task, error) {
	var records []todoRecord
	if err := s.doRequest(ctx, tok, http.MethodGet, "/todos", nil, &records); err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(records))
	for _, r := range records {
		task, err := r.Task()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// CreateTodo calls POST /todos with text unmodified.
func (s *TodoService) CreateTodo(ctx context.Context, tok *oauth2.Token, text string) (models.Task, error) {
	body := struct {
		Text string `json:"text"`
	}{text}

	var record todoRecord
	if err := s.doRequest(ctx, tok, http.MethodPost, "/todos", body, &record); err != nil {
		return models.Task{}, err
	}
	return record.Task()
}

// UpdateTodo calls PUT /todos/{id}.
func (s *TodoService) UpdateTodo(ctx context.Context, tok *oauth2.Token, id, text string, completed bool) (models.Task, error) {
	body := struct {
		Text      string `json:"text"`
		Completed bool   `json:"completed"`
	}{text, completed}

	var record todoRecord
	if err := s.doRequest(ctx, tok, http.MethodPut, todoPath(id), body, &record); err != nil {
		return models.Task{}, err
	}
	return record.Task()
}

// DeleteTodo calls DELETE /todos/{id}. Only the status is inspected.
func (s *TodoService) DeleteTodo(ctx context.Context, tok *oauth2.Token, id string) error {
	return s.doRequest(ctx, tok, http.MethodDelete, todoPath(id), nil, nil)
}

// Me calls GET /me. A body that isn't a profile is tolerated; only the status decides validity.
func (s *TodoService) Me(ctx context.Context, tok *oauth2.Token) (*Profile, error) {
	var raw json.RawMessage
	if err := s.doRequest(ctx, tok, http.MethodGet, "/me", nil, &raw); err != nil {
		return nil, err
	}

	var profile Profile
	_ = json.Unmarshal(raw, &profile)
	return &profile, nil
}

func todoPath(id string) string {
	return "/todos/" + url.PathEscape(id)
}

// doRequest performs an authenticated JSON request and decodes a 2xx response into result when non-nil.
//
// Errors wrap [shared.ErrAPIRequest] for transport failures, [*StatusError] for non-2xx responses and
// [shared.ErrMalformedResponse] for undecodable bodies.
func (s *TodoService) doRequest(ctx context.Context, tok *oauth2.Token, method, endpoint string, body, result any) error {
	if tok == nil || tok.AccessToken == "" {
		return shared.ErrNoCredential
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %w", shared.ErrAPIRequest, err)
	}

	tok.SetAuthHeader(req)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
		}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: failed to read response: %w", shared.ErrAPIRequest, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}

	switch r := result.(type) {
	case nil:
		return nil
	case *json.RawMessage:
		*r = data
		return nil
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrMalformedResponse, err)
	}
	return nil
}

// errorMessage extracts {"error": "..."} or {"message": "..."} from an error body.
func errorMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}
