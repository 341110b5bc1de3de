// package formatter renders task lists for export (CSV, Markdown, plain text, JSON) and terminal output
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/todox/internal/models"
	"github.com/desertthunder/todox/internal/shared"
)

// Format names an export encoding.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
	FormatJSON     Format = "json"
)

// ParseFormat accepts a format name or common alias ("markdown", "text").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "txt", "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, s)
	}
}

// Export is a snapshot of a filtered task view.
type Export struct {
	Title      string        `json:"title"`
	Filter     models.Filter `json:"filter"`
	Counts     models.Counts `json:"counts"`
	Tasks      []models.Task `json:"tasks"`
	ExportedAt time.Time     `json:"exported_at"`
}

// NewExport builds an [Export] of tasks, as shown under filter, with counts taken from the full list.
func NewExport(title string, filter models.Filter, tasks []models.Task, counts models.Counts) *Export {
	if tasks == nil {
		tasks = []models.Task{}
	}
	return &Export{Title: title, Filter: filter, Counts: counts, Tasks: tasks, ExportedAt: time.Now().UTC()}
}

// ExportToCSV converts an Export to CSV format with columns: ID, Text, Completed, Created At
func ExportToCSV(export *Export) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Text", "Completed", "Created At"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, task := range export.Tasks {
		record := []string{
			task.ID,
			task.Text,
			strconv.FormatBool(task.Completed),
			FormatTime(task.CreatedAt),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts an Export to a Markdown checklist
func ExportToMarkdown(export *Export) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "# %s\n\n", export.Title)
	fmt.Fprintf(&buf, "**Filter**: %s\n", export.Filter)
	fmt.Fprintf(&buf, "**Counts**: %s\n\n", FormatCounts(export.Counts))

	buf.WriteString("## Tasks\n\n")
	if len(export.Tasks) == 0 {
		buf.WriteString("_Nothing to show._\n")
	}
	for _, task := range export.Tasks {
		box := " "
		if task.Completed {
			box = "x"
		}
		fmt.Fprintf(&buf, "- [%s] %s\n", box, task.Text)
	}

	return buf.Bytes(), nil
}

// ExportToText converts an Export to plain text format
func ExportToText(export *Export) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s (%s)\n", export.Title, export.Filter)
	fmt.Fprintf(&buf, "%s\n\n", FormatCounts(export.Counts))

	for i, task := range export.Tasks {
		fmt.Fprintf(&buf, "%d. %s\n", i+1, FormatTask(task))
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts an Export to indented JSON
func ExportToJSON(export *Export) ([]byte, error) {
	return shared.MarshalJSON(export, true)
}

// Encode renders export in format.
func Encode(export *Export, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(export)
	case FormatMarkdown:
		return ExportToMarkdown(export)
	case FormatText:
		return ExportToText(export)
	case FormatJSON:
		return ExportToJSON(export)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
	}
}

// WriteExport writes export to path in format, creating parent directories.
//
// Defaults to todos.{format} in the working directory.
func WriteExport(export *Export, format Format, path string) (string, error) {
	if path == "" {
		path = "todos." + string(format)
	}

	data, err := Encode(export, format)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", format, err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}

// FormatTask renders a task as a checklist line: "[x] text".
func FormatTask(task models.Task) string {
	if task.Completed {
		return "[x] " + task.Text
	}
	return "[ ] " + task.Text
}

// FormatCounts renders counts as "3 total, 1 completed, 2 active".
func FormatCounts(c models.Counts) string {
	return fmt.Sprintf("%d total, %d completed, %d active", c.Total, c.Completed, c.Active)
}

// FormatTime renders t as RFC 3339, or "-" for the zero time.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}
