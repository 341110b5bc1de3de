package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/todox/internal/shared"
)

// Task is a to-do item mirrored from the task API.
type Task struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

// Filter selects which tasks a view shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists every filter in display order.
var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

// ParseFilter converts s to a [Filter]; an empty string means [FilterAll].
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterActive, FilterCompleted:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (want all, active or completed)", shared.ErrInvalidFilter, s)
	}
}

// Match reports whether t belongs in a view using this filter.
func (f Filter) Match(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Next cycles to the following filter, wrapping around.
func (f Filter) Next() Filter {
	for i, v := range Filters {
		if v == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

func (f Filter) String() string { return string(f) }

// Counts summarises a task list.
type Counts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Active    int `json:"active"`
}

// CountTasks computes [Counts] for tasks; Active is always Total - Completed.
func CountTasks(tasks []Task) Counts {
	c := Counts{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			c.Completed++
		}
	}
	c.Active = c.Total - c.Completed
	return c
}

// FilterTasks returns the subsequence of tasks matching f, preserving order.
//
// The result never aliases tasks.
func FilterTasks(tasks []Task, f Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}
