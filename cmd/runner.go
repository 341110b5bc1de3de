package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/todox/internal/models"
	"github.com/desertthunder/todox/internal/services"
	"github.com/desertthunder/todox/internal/shared"
	"github.com/desertthunder/todox/internal/tasks"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	api        services.TaskAPI
	tokens     oauth2.TokenSource
	tokenFile  *shared.TokenFile
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	opts       RunnerOpts
}

// RunnerOpts contains configuration options for creating a Runner.
//
// API and Tokens, when set, take precedence over what the loaded config describes.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	API        services.TaskAPI
	Tokens     oauth2.TokenSource
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		configPath: opts.ConfigPath,
		logger:     opts.Logger,
		output:     opts.Output,
		opts:       opts,
	}
	r.configure(opts.Config)
	return r
}

// configure rebuilds the config-derived dependencies.
func (r *Runner) configure(config *shared.Config) {
	r.config = config

	r.httpClient = r.opts.HTTPClient
	if r.httpClient == nil {
		r.httpClient = &http.Client{Timeout: config.API.Timeout()}
	}

	r.api = r.opts.API
	if r.api == nil {
		r.api = services.NewTodoService(config.API.BaseURL, r.httpClient, services.WithRateLimit(config.API.RequestsPerSecond))
	}

	r.tokenFile = shared.NewTokenFile(config.Credentials.TokenPath)
	r.tokens = r.opts.Tokens
	if r.tokens == nil {
		r.tokens = shared.NewTokenSource(config.Credentials)
	}
}

// before loads --config and applies --verbose ahead of any command.
//
// A missing config file is not an error; defaults apply.
func (r *Runner) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	path := cmd.String("config")
	r.configPath = path

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		r.logger.Debug("config file not found, using defaults", "path", path)
		r.configure(r.config)
		return ctx, nil
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		return ctx, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	r.logger.Debug("loaded config", "path", path)
	r.configure(config)
	return ctx, nil
}

// SetLogger replaces the logger, e.g. with a file logger while the TUI owns the terminal.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, serveCommand, authCommand, todosCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// synchronizer creates a [tasks.Synchronizer] over the runner's API and credential.
func (r *Runner) synchronizer(filter models.Filter) *tasks.Synchronizer {
	return tasks.NewSynchronizer(tasks.SynchronizerOpts{
		API:    r.api,
		Tokens: r.tokens,
		Logger: r.logger,
		Filter: filter,
	})
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
