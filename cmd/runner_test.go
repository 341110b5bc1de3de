package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/todox/internal/models"
	"github.com/desertthunder/todox/internal/services"
	"github.com/desertthunder/todox/internal/shared"
	tu "github.com/desertthunder/todox/internal/testing"
)

type harness struct {
	runner     *Runner
	api        *tu.FakeTaskAPI
	out        *bytes.Buffer
	dir        string
	configPath string
	tokenPath  string
}

func seedTasks() []models.Task {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.Task{
		{ID: "1", Text: "write report", Completed: false, CreatedAt: at},
		{ID: "2", Text: "buy milk", Completed: true, CreatedAt: at},
		{ID: "3", Text: "call mom", Completed: false, CreatedAt: at},
	}
}

// newHarness builds a runner over a fake API that accepts the token "good", with config and token files in a
// temporary directory.
func newHarness(t *testing.T, baseURL string, tasks ...models.Task) *harness {
	t.Helper()
	t.Setenv(shared.TokenEnv, "")

	dir := t.TempDir()
	h := &harness{
		api:        tu.NewFakeTaskAPI(tasks...),
		out:        &bytes.Buffer{},
		dir:        dir,
		configPath: filepath.Join(dir, "config.toml"),
		tokenPath:  filepath.Join(dir, "token"),
	}
	h.api.Token = "good"

	if baseURL == "" {
		baseURL = "http://localhost:3001"
	}
	config := fmt.Sprintf(`
[api]
base_url = %q

[credentials]
token_path = %q

[database]
path = %q

[ui]
default_filter = "all"
`, baseURL, h.tokenPath, filepath.Join(dir, "todox.db"))
	if err := os.WriteFile(h.configPath, []byte(config), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	h.runner = NewRunner(RunnerOpts{
		API:    h.api,
		Logger: shared.NewLogger(io.Discard),
		Output: h.out,
	})
	return h
}

func (h *harness) login(t *testing.T, token string) {
	t.Helper()
	if err := shared.NewTokenFile(h.tokenPath).Write(token); err != nil {
		t.Fatalf("failed to write token: %v", err)
	}
}

func (h *harness) run(args ...string) error {
	h.out.Reset()
	return newApp(h.runner).Run(context.Background(), append([]string{"todox", "--config", h.configPath}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			api := tu.NewFakeTaskAPI()
			tokens := tu.StaticToken("abc")

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				API:        api,
				Tokens:     tokens,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.api != api {
				t.Error("expected api to be set")
			}
			if runner.tokens != tokens {
				t.Error("expected tokens to be set")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Fatal("expected default config to be set")
			}
			if runner.config.API.BaseURL != "http://localhost:3001" {
				t.Errorf("expected default base URL, got %s", runner.config.API.BaseURL)
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("builds API client and token source from config", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.API.BaseURL = "http://example.test"
			config.API.TimeoutSeconds = 7

			runner := NewRunner(RunnerOpts{Config: config})

			client, ok := runner.api.(*services.TodoService)
			if !ok {
				t.Fatalf("expected *services.TodoService, got %T", runner.api)
			}
			if client.BaseURL() != "http://example.test" {
				t.Errorf("expected base URL from config, got %s", client.BaseURL())
			}
			if runner.httpClient.Timeout != 7*time.Second {
				t.Errorf("expected 7s timeout, got %v", runner.httpClient.Timeout)
			}
			if runner.tokens == nil {
				t.Error("expected token source to be set")
			}
		})

		t.Run("with configPath sets field", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				ConfigPath: "/test/path/config.toml",
			})

			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})
		names := map[string]bool{}
		for _, cmd := range runner.register() {
			names[cmd.Name] = true
		}

		for _, want := range []string{"setup", "serve", "auth", "todos", "api", "tui"} {
			if !names[want] {
				t.Errorf("expected %s command to be registered", want)
			}
		}
	})

	t.Run("before", func(t *testing.T) {
		t.Run("loads config file", func(t *testing.T) {
			h := newHarness(t, "http://api.test")
			h.login(t, "good")

			if err := h.run("todos", "counts"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if h.runner.config.API.BaseURL != "http://api.test" {
				t.Errorf("expected base URL from file, got %s", h.runner.config.API.BaseURL)
			}
			if h.runner.tokenFile.Path() != h.tokenPath {
				t.Errorf("expected token path %s, got %s", h.tokenPath, h.runner.tokenFile.Path())
			}
		})

		t.Run("missing config file uses defaults", func(t *testing.T) {
			h := newHarness(t, "")
			h.configPath = filepath.Join(h.dir, "missing.toml")

			if err := h.run("auth", "logout"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if h.runner.config.API.BaseURL != "http://localhost:3001" {
				t.Errorf("expected default base URL, got %s", h.runner.config.API.BaseURL)
			}
		})

		t.Run("invalid config file", func(t *testing.T) {
			h := newHarness(t, "")
			os.WriteFile(h.configPath, []byte("[ui]\ndefault_filter = \"someday\"\n"), 0644)

			err := h.run("todos", "counts")
			if !errors.Is(err, shared.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("compact", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(models.Counts{Total: 2, Completed: 1, Active: 1}, false); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			expected := `{"total":2,"completed":1,"active":1}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("marshal error", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			if err := runner.writeJSON(make(chan int), false); err == nil {
				t.Error("expected marshal error")
			}
		})

		t.Run("write error", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			if err := runner.writeJSON(map[string]string{"a": "b"}, false); err == nil {
				t.Error("expected write error")
			}
		})

		t.Run("newline write error", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: tu.NewLimitedWriter(1, &bytes.Buffer{})})

			err := runner.writeJSON(map[string]string{"a": "b"}, false)
			if err == nil || !strings.Contains(err.Error(), "newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		output := &bytes.Buffer{}
		runner := NewRunner(RunnerOpts{Output: output})

		runner.writePlain("%d %s", 3, "tasks")
		if output.String() != "3 tasks" {
			t.Errorf("expected %q, got %q", "3 tasks", output.String())
		}

		output.Reset()
		runner.writePlainln("done")
		if output.String() != "\ndone\n" {
			t.Errorf("expected %q, got %q", "\ndone\n", output.String())
		}

		failing := NewRunner(RunnerOpts{Output: &tu.FWriter{}})
		if err := failing.writePlain("x"); err == nil {
			t.Error("expected write error")
		}
		if err := failing.writePlainln("x"); err == nil {
			t.Error("expected write error")
		}
	})
}

func TestTodosCommands(t *testing.T) {
	t.Run("list", func(t *testing.T) {
		t.Run("prints view and counts", func(t *testing.T) {
			h := newHarness(t, "", seedTasks()...)
			h.login(t, "good")

			if err := h.run("todos", "list"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			out := h.out.String()
			for _, want := range []string{"[ ] write report", "[x] buy milk", "[ ] call mom", "3 total, 1 completed, 2 active"} {
				if !strings.Contains(out, want) {
					t.Errorf("expected output to contain %q, got:\n%s", want, out)
				}
			}
			if strings.Index(out, "write report") > strings.Index(out, "call mom") {
				t.Error("expected server order to be preserved")
			}
		})

		t.Run("filter active", func(t *testing.T) {
			h := newHarness(t, "", seedTasks()...)
			h.login(t, "good")

			if err := h.run("todos", "list", "--filter", "active"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			out := h.out.String()
			if strings.Contains(out, "buy milk") {
				t.Errorf("expected completed task to be hidden, got:\n%s", out)
			}
			if !strings.Contains(out, "3 total, 1 completed, 2 active") {
				t.Errorf("expected counts over the full list, got:\n%s", out)
			}
		})

		t.Run("json", func(t *testing.T) {
			h := newHarness(t, "", seedTasks()...)
			h.login(t, "good")

			if err := h.run("todos", "list", "--filter", "completed", "--json"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var got []models.Task
			if err := json.Unmarshal(h.out.Bytes(), &got); err != nil {
				t.Fatalf("expected JSON output, got %v: %s", err, h.out.String())
			}
			if len(got) != 1 || got[0].ID != "2" {
				t.Errorf("expected only task 2, got %+v", got)
			}
		})

		t.Run("empty list", func(t *testing.T) {
			h := newHarness(t, "")
			h.login(t, "good")

			if err := h.run("todos", "list"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(h.out.String(), "Nothing to show.") {
				t.Errorf("expected empty message, got:\n%s", h.out.String())
			}
		})

		t.Run("invalid filter", func(t *testing.T) {
			h := newHarness(t, "", seedTasks()...)
			h.login(t, "good")

			err := h.run("todos", "list", "--filter", "someday")
			if !errors.Is(err, shared.ErrInvalidFilter) {
				t.Errorf("expected ErrInvalidFilter, got %v", err)
			}
			if h.api.CallCount("list") != 0 {
				t.Error("expected no request for an invalid filter")
			}
		})

		t.Run("without credential", func(t *testing.T) {
			h := newHarness(t, "", seedTasks()...)

			err := h.run("todos", "list")
			if !errors.Is(err, shared.ErrNoCredential) {
				t.Errorf("expected ErrNoCredential, got %v", err)
			}
			if len(h.api.Calls) != 0 {
				t.Errorf("expected no requests, got %v", h.api.Calls)
			}
		})

		t.Run("load failure", func(t *testing.T) {
			h := newHarness(t, "", seedTasks()...)
			h.login(t, "good")
			h.api.ListErr = &services.StatusError{StatusCode: 500}

			err := h.run("todos", "list")
			if !errors.Is(err, shared.ErrUnexpectedStatus) {
				t.Errorf("expected ErrUnexpectedStatus, got %v", err)
			}
		})
	})

	t.Run("add", func(t *testing.T) {
		t.Run("joins arguments", func(t *testing.T) {
			h := newHarness(t, "", seedTasks()...)
			h.login(t, "good")

			if err := h.run("todos", "add", "water", "the", "plants"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if h.api.Tasks[0].Text != "water the plants" {
				t.Errorf("expected new task at head, got %+v", h.api.Tasks[0])
			}
			if !strings.Contains(h.out.String(), "Created") {
				t.Errorf("expected confirmation, got %q", h.out.String())
			}
		})

		t.Run("blank text", func(t *testing.T) {
			h := newHarness(t, "")
			h.login(t, "good")

			err := h.run("todos", "add", "  ")
			if !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
			if h.api.CallCount("create") != 0 {
				t.Error("expected no create request")
			}
		})
	})

	t.Run("toggle", func(t *testing.T) {
		t.Run("flips completion", func(t *testing.T) {
			h := newHarness(t, "", seedTasks()...)
			h.login(t, "good")

			if err := h.run("todos", "toggle", "1"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !h.api.Tasks[0].Completed {
				t.Error("expected task 1 to be completed")
			}
			if !strings.Contains(h.out.String(), "[x] write report") {
				t.Errorf("expected toggled task, got %q", h.out.String())
			}
		})

		t.Run("unknown id", func(t *testing.T) {
			h := newHarness(t, "", seedTasks()...)
			h.login(t, "good")

			err := h.run("todos", "toggle", "99")
			if !errors.Is(err, shared.ErrTaskNotFound) {
				t.Errorf("expected ErrTaskNotFound, got %v", err)
			}
			if h.api.CallCount("update") != 0 {
				t.Error("expected no update request")
			}
		})

		t.Run("missing id", func(t *testing.T) {
			h := newHarness(t, "")
			h.login(t, "good")

			if err := h.run("todos", "toggle"); !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
		})
	})

	t.Run("edit", func(t *testing.T) {
		t.Run("replaces text", func(t *testing.T) {
			h := newHarness(t, "", seedTasks()...)
			h.login(t, "good")

			if err := h.run("todos", "edit", "3", "call", "dad"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if h.api.Tasks[2].Text != "call dad" {
				t.Errorf("expected text to be replaced, got %q", h.api.Tasks[2].Text)
			}
		})

		t.Run("missing text", func(t *testing.T) {
			h := newHarness(t, "", seedTasks()...)
			h.login(t, "good")

			if err := h.run("todos", "edit", "3"); !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
			if h.api.CallCount("update") != 0 {
				t.Error("expected no update request")
			}
		})
	})

	t.Run("rm", func(t *testing.T) {
		t.Run("removes task", func(t *testing.T) {
			h := newHarness(t, "", seedTasks()...)
			h.login(t, "good")

			if err := h.run("todos", "rm", "2"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(h.api.Tasks) != 2 {
				t.Errorf("expected 2 tasks left, got %d", len(h.api.Tasks))
			}
		})

		t.Run("server rejects", func(t *testing.T) {
			h := newHarness(t, "", seedTasks()...)
			h.login(t, "good")

			err := h.run("todos", "rm", "99")
			if !errors.Is(err, shared.ErrUnexpectedStatus) {
				t.Errorf("expected ErrUnexpectedStatus, got %v", err)
			}
		})
	})

	t.Run("counts", func(t *testing.T) {
		h := newHarness(t, "", seedTasks()...)
		h.login(t, "good")

		if err := h.run("todos", "counts", "--json"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		var counts models.Counts
		if err := json.Unmarshal(h.out.Bytes(), &counts); err != nil {
			t.Fatalf("expected JSON output, got %v", err)
		}
		if counts != (models.Counts{Total: 3, Completed: 1, Active: 2}) {
			t.Errorf("expected {3 1 2}, got %+v", counts)
		}
	})

	t.Run("export", func(t *testing.T) {
		t.Run("to stdout", func(t *testing.T) {
			h := newHarness(t, "", seedTasks()...)
			h.login(t, "good")

			if err := h.run("todos", "export", "--format", "md", "--output", "-"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(h.out.String(), "- [x] buy milk") {
				t.Errorf("expected markdown checklist, got:\n%s", h.out.String())
			}
		})

		t.Run("to file", func(t *testing.T) {
			h := newHarness(t, "", seedTasks()...)
			h.login(t, "good")
			path := filepath.Join(h.dir, "out", "active.csv")

			if err := h.run("todos", "export", "--format", "csv", "--filter", "active", "--output", path); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			tu.AssertFileExists(t, path)
			content := tu.MustReadFile(t, path)
			if !strings.Contains(content, "write report") || strings.Contains(content, "buy milk") {
				t.Errorf("expected only active tasks, got:\n%s", content)
			}
		})

		t.Run("invalid format", func(t *testing.T) {
			h := newHarness(t, "", seedTasks()...)
			h.login(t, "good")

			err := h.run("todos", "export", "--format", "pdf")
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	})
}

func TestAuthCommands(t *testing.T) {
	t.Run("login", func(t *testing.T) {
		t.Run("stores accepted token", func(t *testing.T) {
			h := newHarness(t, "")

			if err := h.run("auth", "login", "good"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := strings.TrimSpace(tu.MustReadFile(t, h.tokenPath)); got != "good" {
				t.Errorf("expected stored token, got %q", got)
			}
			if !strings.Contains(h.out.String(), "Logged in as tester") {
				t.Errorf("expected greeting, got %q", h.out.String())
			}
		})

		t.Run("rejected token is not stored", func(t *testing.T) {
			h := newHarness(t, "")

			err := h.run("auth", "login", "bad")
			if !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
			if _, err := os.Stat(h.tokenPath); !os.IsNotExist(err) {
				t.Error("expected no token file")
			}
		})

		t.Run("missing token", func(t *testing.T) {
			h := newHarness(t, "")

			if err := h.run("auth", "login"); !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
		})
	})

	t.Run("logout", func(t *testing.T) {
		h := newHarness(t, "")
		h.login(t, "good")

		if err := h.run("auth", "logout"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := os.Stat(h.tokenPath); !os.IsNotExist(err) {
			t.Error("expected token file to be removed")
		}
	})

	t.Run("status", func(t *testing.T) {
		t.Run("not logged in", func(t *testing.T) {
			h := newHarness(t, "")

			if err := h.run("auth", "status"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(h.out.String(), "Not logged in") {
				t.Errorf("expected not logged in, got %q", h.out.String())
			}
		})

		t.Run("logged in", func(t *testing.T) {
			h := newHarness(t, "")
			h.login(t, "good")

			if err := h.run("auth", "status", "--json"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var profile services.Profile
			if err := json.Unmarshal(h.out.Bytes(), &profile); err != nil {
				t.Fatalf("expected JSON output, got %v", err)
			}
			if profile.Name != "tester" {
				t.Errorf("expected tester, got %q", profile.Name)
			}
		})

		t.Run("rejected token is cleared", func(t *testing.T) {
			h := newHarness(t, "")
			h.login(t, "stale")

			if err := h.run("auth", "status"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(h.out.String(), "rejected") {
				t.Errorf("expected rejection message, got %q", h.out.String())
			}
			if _, err := os.Stat(h.tokenPath); !os.IsNotExist(err) {
				t.Error("expected token file to be removed")
			}
		})
	})
}

func TestAPICommands(t *testing.T) {
	var gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		switch r.URL.Path {
		case "/todos":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"id":"1","text":"a","completed":false}]`))
		case "/health":
			w.Write([]byte("ok"))
		default:
			http.Error(w, "nope", http.StatusNotFound)
		}
	}))
	defer srv.Close()

	t.Run("get with credential", func(t *testing.T) {
		h := newHarness(t, srv.URL)
		h.login(t, "good")

		if err := h.run("api", "get", "--json", "/todos"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotAuth != "Bearer good" {
			t.Errorf("expected bearer header, got %q", gotAuth)
		}
		if !strings.Contains(h.out.String(), `"text":"a"`) {
			t.Errorf("expected compact JSON, got %q", h.out.String())
		}
	})

	t.Run("get plain text without credential", func(t *testing.T) {
		h := newHarness(t, srv.URL)

		if err := h.run("api", "get", "/health"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotAuth != "" {
			t.Errorf("expected no auth header, got %q", gotAuth)
		}
		if h.out.String() != "ok\n" {
			t.Errorf("expected body, got %q", h.out.String())
		}
	})

	t.Run("post sends data", func(t *testing.T) {
		h := newHarness(t, srv.URL)

		if err := h.run("api", "post", "--data", `{"text":"b"}`, "/todos"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotBody != `{"text":"b"}` {
			t.Errorf("expected request body, got %q", gotBody)
		}
	})

	t.Run("post rejects invalid JSON", func(t *testing.T) {
		h := newHarness(t, srv.URL)

		err := h.run("api", "post", "--data", "{", "/todos")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("error status", func(t *testing.T) {
		h := newHarness(t, srv.URL)

		err := h.run("api", "get", "/missing")
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}

func TestSetupCommands(t *testing.T) {
	t.Run("config", func(t *testing.T) {
		h := newHarness(t, "")
		h.configPath = filepath.Join(h.dir, "fresh.toml")

		if err := h.run("setup", "config"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tu.AssertFileExists(t, h.configPath)

		if err := h.run("setup", "config"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(h.out.String(), "already exists") {
			t.Errorf("expected existing config notice, got %q", h.out.String())
		}
	})

	t.Run("database", func(t *testing.T) {
		h := newHarness(t, "")

		if err := h.run("setup", "database"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(h.out.String(), "002  applied") {
			t.Errorf("expected applied migrations, got:\n%s", h.out.String())
		}

		if err := h.run("setup", "database", "--rollback"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := h.run("setup", "database", "--status"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out := h.out.String()
		if !strings.Contains(out, "001  applied") || strings.Contains(out, "002  applied") {
			t.Errorf("expected only the first migration after rollback, got:\n%s", out)
		}
	})

	t.Run("user with login", func(t *testing.T) {
		h := newHarness(t, "")

		if err := h.run("setup", "user", "--login", "alice"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		token := strings.TrimSpace(tu.MustReadFile(t, h.tokenPath))
		if token == "" || !strings.Contains(h.out.String(), token) {
			t.Errorf("expected printed token to be stored, got %q and %q", h.out.String(), token)
		}
	})

	t.Run("user requires name", func(t *testing.T) {
		h := newHarness(t, "")

		if err := h.run("setup", "user"); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}
