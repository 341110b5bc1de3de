package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/todox/internal/models"
	"github.com/desertthunder/todox/internal/shared"
)

// mutationRecord is the body of POST and PUT replies.
//
// These endpoints name the timestamp created_at while GET /todos uses createdAt. Clients in the wild depend on
// both spellings, so the split is kept.
type mutationRecord struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

func newMutationRecord(t *models.PersistedTask) mutationRecord {
	return mutationRecord{ID: t.ID(), Text: t.Text(), Completed: t.Completed(), CreatedAt: t.CreatedAt()}
}

// TodoHandler serves the /todos collection for the authenticated user.
type TodoHandler struct {
	tasks  models.Repository[*models.PersistedTask]
	logger *log.Logger
}

// NewTodoHandler creates a [TodoHandler] backed by tasks.
func NewTodoHandler(tasks models.Repository[*models.PersistedTask], logger *log.Logger) *TodoHandler {
	return &TodoHandler{tasks: tasks, logger: logger}
}

func (h *TodoHandler) Routes() []string {
	return []string{"GET /todos", "POST /todos", "PUT /todos/{id}", "DELETE /todos/{id}"}
}

func (h *TodoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	switch r.Pattern {
	case "GET /todos":
		h.list(w, user)
	case "POST /todos":
		h.create(w, r, user)
	case "PUT /todos/{id}":
		h.update(w, r, user)
	case "DELETE /todos/{id}":
		h.delete(w, r, user)
	default:
		writeError(w, http.StatusNotFound, "not found")
	}
}

func (h *TodoHandler) list(w http.ResponseWriter, user *models.User) {
	rows, err := h.tasks.List(map[string]any{"user_id": user.ID()})
	if err != nil {
		h.internalError(w, "list", err)
		return
	}

	out := make([]models.Task, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.Task())
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *TodoHandler) create(w http.ResponseWriter, r *http.Request, user *models.User) {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(body.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	task := models.NewPersistedTask(0, user.ID(), body.Text)
	if err := h.tasks.Create(task); err != nil {
		h.internalError(w, "create", err)
		return
	}
	writeJSON(w, http.StatusCreated, newMutationRecord(task))
}

func (h *TodoHandler) update(w http.ResponseWriter, r *http.Request, user *models.User) {
	var body struct {
		Text      *string `json:"text"`
		Completed *bool   `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	task, ok := h.owned(w, r.PathValue("id"), user)
	if !ok {
		return
	}

	if body.Text != nil {
		if strings.TrimSpace(*body.Text) == "" {
			writeError(w, http.StatusBadRequest, "text must not be blank")
			return
		}
		task.SetText(*body.Text)
	}
	if body.Completed != nil {
		task.SetCompleted(*body.Completed)
	}

	if err := h.tasks.Update(task); err != nil {
		h.internalError(w, "update", err)
		return
	}
	writeJSON(w, http.StatusOK, newMutationRecord(task))
}

func (h *TodoHandler) delete(w http.ResponseWriter, r *http.Request, user *models.User) {
	task, ok := h.owned(w, r.PathValue("id"), user)
	if !ok {
		return
	}

	if err := h.tasks.Delete(task.ID()); err != nil {
		h.internalError(w, "delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// owned loads the task with id, answering 404 when it is missing or belongs to someone else.
func (h *TodoHandler) owned(w http.ResponseWriter, id string, user *models.User) (*models.PersistedTask, bool) {
	task, err := h.tasks.Get(id)
	if errors.Is(err, shared.ErrTaskNotFound) || (err == nil && task.UserID() != user.ID()) {
		writeError(w, http.StatusNotFound, "todo not found")
		return nil, false
	}
	if err != nil {
		h.internalError(w, "get", err)
		return nil, false
	}
	return task, true
}

func (h *TodoHandler) internalError(w http.ResponseWriter, op string, err error) {
	h.logger.Error("todo handler failed", "op", op, "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

// MeHandler answers GET /me with the authenticated user's profile.
type MeHandler struct{}

func NewMeHandler() *MeHandler { return &MeHandler{} }

func (h *MeHandler) Routes() []string { return []string{"GET /me"} }

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": user.ID(), "name": user.Name()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
