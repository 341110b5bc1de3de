package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/todox/internal/shared"
)

// PersistedTask is a task row owned by a [User].
type PersistedTask struct {
	base
	userID    string
	text      string
	completed bool
}

var _ Model = (*PersistedTask)(nil)

// NewPersistedTask creates an incomplete task for userID. Text is stored trimmed.
func NewPersistedTask(sequence int, userID, text string) *PersistedTask {
	return &PersistedTask{base: newBase(sequence), userID: userID, text: strings.TrimSpace(text)}
}

func (t *PersistedTask) UserID() string  { return t.userID }
func (t *PersistedTask) Text() string    { return t.text }
func (t *PersistedTask) Completed() bool { return t.completed }

func (t *PersistedTask) SetText(text string)     { t.text = strings.TrimSpace(text) }
func (t *PersistedTask) SetCompleted(done bool)  { t.completed = done }
func (t *PersistedTask) SetUserID(userID string) { t.userID = userID }

// Validate requires an owner and non-blank text.
func (t *PersistedTask) Validate() error {
	if t.userID == "" {
		return fmt.Errorf("%w: task owner is required", shared.ErrInvalidInput)
	}
	if t.text == "" {
		return fmt.Errorf("%w: %w", shared.ErrInvalidInput, shared.ErrEmptyText)
	}
	return nil
}

// Task converts the row into the API representation.
func (t *PersistedTask) Task() Task {
	return Task{ID: t.id, Text: t.text, Completed: t.completed, CreatedAt: t.createdAt}
}
