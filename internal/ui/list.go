package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/todox/internal/formatter"
	"github.com/desertthunder/todox/internal/models"
)

var (
	_ list.Item = taskItem{}
)

// taskItem wraps [models.Task] to implement [list.Item].
type taskItem struct {
	task models.Task
}

func (i taskItem) FilterValue() string { return i.task.Text }
func (i taskItem) Title() string       { return formatter.FormatTask(i.task) }
func (i taskItem) Description() string {
	if i.task.CreatedAt.IsZero() {
		return fmt.Sprintf("#%s", i.task.ID)
	}
	return fmt.Sprintf("#%s • %s", i.task.ID, i.task.CreatedAt.Local().Format("Jan 2 15:04"))
}

func toItems(tasks []models.Task) []list.Item {
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = taskItem{task: t}
	}
	return items
}
