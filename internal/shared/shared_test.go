package shared

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func TestLogger(t *testing.T) {
	t.Run("NewLogger writes to the given writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello", "key", "value")

		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output to contain message, got %q", buf.String())
		}
		if !strings.Contains(buf.String(), "key=value") {
			t.Errorf("expected log output to contain key-value pair, got %q", buf.String())
		}
	})

	t.Run("WithLogger adds fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger := WithLogger(NewLogger(&buf), "component", "sync")
		logger.Info("loaded")

		if !strings.Contains(buf.String(), "component=sync") {
			t.Errorf("expected child logger field, got %q", buf.String())
		}
	})

	t.Run("SetLogLevel filters messages", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.WarnLevel)
		logger.Info("quiet")

		if buf.Len() != 0 {
			t.Errorf("expected info to be filtered, got %q", buf.String())
		}
	})

	t.Run("NewFileLogger creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "todox.log")
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("failed to create file logger: %v", err)
		}
		logger.Info("written")

		data := readFile(t, path)
		if !strings.Contains(data, "written") {
			t.Errorf("expected log file to contain message, got %q", data)
		}
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected unique IDs")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("expected a valid uuid, got %s: %v", a, err)
	}
}

func TestMarshalJSON(t *testing.T) {
	data := map[string]int{"total": 1}

	compact, err := MarshalJSON(data, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(compact) != `{"total":1}` {
		t.Errorf("expected compact JSON, got %s", compact)
	}

	pretty, err := MarshalJSON(data, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(pretty), "\n  \"total\": 1") {
		t.Errorf("expected indented JSON, got %s", pretty)
	}
}
