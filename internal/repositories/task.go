package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/todox/internal/models"
	"github.com/desertthunder/todox/internal/shared"
)

const taskColumns = `id, sequence, user_id, text, completed, created_at, updated_at, deleted_at`

// TaskRepository implements [models.Repository] for [models.PersistedTask] persistence.
type TaskRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.PersistedTask] = (*TaskRepository)(nil)

// NewTaskRepository creates a new [TaskRepository] with the given database connection
func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create inserts a task with a generated ID and sequence
func (r *TaskRepository) Create(task *models.PersistedTask) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "tasks")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	task.SetID(id)
	task.SetSequence(sequence)

	query := `
		INSERT INTO tasks (id, sequence, user_id, text, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, task.UserID(), task.Text(), task.Completed(), task.CreatedAt(), task.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	return nil
}

// Get retrieves a task by ID, excluding soft-deleted tasks
func (r *TaskRepository) Get(id string) (*models.PersistedTask, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ? AND deleted_at IS NULL`

	task, err := scanTask(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrTaskNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query task: %w", err)
	}
	return task, nil
}

// Update writes the task's text and completed flag
func (r *TaskRepository) Update(task *models.PersistedTask) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now().UTC()
	task.SetUpdatedAt(now)

	query := `
		UPDATE tasks
		SET text = ?, completed = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, task.Text(), task.Completed(), now, task.ID())
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	return expectAffected(result, shared.ErrTaskNotFound, task.ID())
}

// Delete soft-deletes a task by ID
func (r *TaskRepository) Delete(id string) error {
	query := `
		UPDATE tasks
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return expectAffected(result, shared.ErrTaskNotFound, id)
}

// List retrieves tasks matching criteria, most recent first.
//
// Supported criteria: "user_id" (string) and "completed" (bool).
func (r *TaskRepository) List(criteria map[string]any) ([]*models.PersistedTask, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE deleted_at IS NULL`
	args := []any{}

	if userID, ok := criteria["user_id"].(string); ok && userID != "" {
		query += " AND user_id = ?"
		args = append(args, userID)
	}
	if completed, ok := criteria["completed"].(bool); ok {
		query += " AND completed = ?"
		args = append(args, completed)
	}

	query += " ORDER BY sequence DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	tasks := []*models.PersistedTask{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return tasks, nil
}

func scanTask(row scanner) (*models.PersistedTask, error) {
	var (
		taskID    string
		sequence  int
		userID    string
		text      string
		completed bool
		createdAt time.Time
		updatedAt time.Time
		deletedAt sql.NullTime
	)

	err := row.Scan(&taskID, &sequence, &userID, &text, &completed, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, err
	}

	task := models.NewPersistedTask(sequence, userID, text)
	task.SetID(taskID)
	task.SetCompleted(completed)
	task.SetCreatedAt(createdAt)
	task.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		task.SetDeletedAt(&deletedAt.Time)
	}
	return task, nil
}
