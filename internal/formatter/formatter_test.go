package formatter

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/todox/internal/models"
	"github.com/desertthunder/todox/internal/shared"
	th "github.com/desertthunder/todox/internal/testing"
)

func sampleExport() *Export {
	tasks := []models.Task{
		{ID: "2", Text: "write, with comma", Completed: true, CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
		{ID: "1", Text: "read", Completed: false},
	}
	return NewExport("Inbox", models.FilterAll, tasks, models.CountTasks(tasks))
}

func TestExporters(t *testing.T) {
	t.Run("ExportToCSV", func(t *testing.T) {
		data, err := ExportToCSV(sampleExport())
		if err != nil {
			t.Fatalf("ExportToCSV failed: %v", err)
		}

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 3 {
			t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
		}
		if lines[0] != "ID,Text,Completed,Created At" {
			t.Errorf("CSV missing headers, got: %s", lines[0])
		}
		if lines[1] != `2,"write, with comma",true,2024-01-02T03:04:05Z` {
			t.Errorf("unexpected first row: %s", lines[1])
		}
		if lines[2] != "1,read,false,-" {
			t.Errorf("unexpected second row: %s", lines[2])
		}
	})

	t.Run("ExportToMarkdown", func(t *testing.T) {
		data, err := ExportToMarkdown(sampleExport())
		if err != nil {
			t.Fatalf("ExportToMarkdown failed: %v", err)
		}

		output := string(data)
		for _, want := range []string{
			"# Inbox",
			"**Filter**: all",
			"**Counts**: 2 total, 1 completed, 1 active",
			"- [x] write, with comma",
			"- [ ] read",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("ExportToMarkdown Empty", func(t *testing.T) {
		data, _ := ExportToMarkdown(NewExport("Empty", models.FilterCompleted, nil, models.Counts{}))
		if !strings.Contains(string(data), "_Nothing to show._") {
			t.Errorf("expected placeholder, got:\n%s", data)
		}
	})

	t.Run("ExportToText", func(t *testing.T) {
		data, err := ExportToText(sampleExport())
		if err != nil {
			t.Fatalf("ExportToText failed: %v", err)
		}

		output := string(data)
		if !strings.HasPrefix(output, "Inbox (all)\n") {
			t.Errorf("unexpected header:\n%s", output)
		}
		if !strings.Contains(output, "1. [x] write, with comma\n2. [ ] read\n") {
			t.Errorf("unexpected task lines:\n%s", output)
		}
	})

	t.Run("ExportToJSON", func(t *testing.T) {
		data, err := ExportToJSON(sampleExport())
		if err != nil {
			t.Fatalf("ExportToJSON failed: %v", err)
		}

		var decoded struct {
			Title  string        `json:"title"`
			Counts models.Counts `json:"counts"`
			Tasks  []models.Task `json:"tasks"`
		}
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if decoded.Title != "Inbox" || decoded.Counts.Total != 2 || len(decoded.Tasks) != 2 {
			t.Errorf("unexpected decoded export %+v", decoded)
		}
		if !strings.Contains(string(data), `"createdAt"`) {
			t.Error("expected tasks to use createdAt")
		}
	})

	t.Run("NewExport Nil Tasks", func(t *testing.T) {
		data, _ := ExportToJSON(NewExport("x", models.FilterAll, nil, models.Counts{}))
		if !strings.Contains(string(data), `"tasks": []`) {
			t.Errorf("expected empty array, got %s", data)
		}
	})
}

func TestParseFormat(t *testing.T) {
	tt := []struct {
		in   string
		want Format
	}{
		{in: "csv", want: FormatCSV},
		{in: "CSV", want: FormatCSV},
		{in: "md", want: FormatMarkdown},
		{in: "markdown", want: FormatMarkdown},
		{in: "text", want: FormatText},
		{in: "", want: FormatText},
		{in: " json ", want: FormatJSON},
	}

	for _, tc := range tt {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseFormat(tc.in)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}

	if _, err := ParseFormat("xml"); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if _, err := Encode(sampleExport(), Format("xml")); !errors.Is(err, shared.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument from Encode, got %v", err)
	}
}

func TestWriteExport(t *testing.T) {
	t.Run("Nested Path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out", "inbox.md")

		got, err := WriteExport(sampleExport(), FormatMarkdown, path)
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if got != path {
			t.Errorf("expected %s, got %s", path, got)
		}

		th.AssertFileExists(t, path)
		if content := th.MustReadFile(t, path); !strings.HasPrefix(content, "# Inbox") {
			t.Errorf("unexpected content:\n%s", content)
		}
	})

	t.Run("Default Filename", func(t *testing.T) {
		dir := t.TempDir()
		t.Chdir(dir)

		got, err := WriteExport(sampleExport(), FormatCSV, "")
		if err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		if got != "todos.csv" {
			t.Errorf("expected todos.csv, got %s", got)
		}
		th.AssertFileExists(t, filepath.Join(dir, "todos.csv"))
	})

	t.Run("Unwritable Path", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "file")
		if err := os.WriteFile(blocker, nil, 0644); err != nil {
			t.Fatalf("failed to create file: %v", err)
		}

		if _, err := WriteExport(sampleExport(), FormatText, filepath.Join(blocker, "out.txt")); err == nil {
			t.Error("expected error writing beneath a regular file")
		}
	})
}

func TestFormatHelpers(t *testing.T) {
	if got := FormatTask(models.Task{Text: "a", Completed: true}); got != "[x] a" {
		t.Errorf("expected [x] a, got %s", got)
	}
	if got := FormatTask(models.Task{Text: "b"}); got != "[ ] b" {
		t.Errorf("expected [ ] b, got %s", got)
	}
	if got := FormatCounts(models.Counts{Total: 3, Completed: 1, Active: 2}); got != "3 total, 1 completed, 2 active" {
		t.Errorf("unexpected counts line %s", got)
	}
	if got := FormatTime(time.Time{}); got != "-" {
		t.Errorf("expected - for zero time, got %s", got)
	}
}
