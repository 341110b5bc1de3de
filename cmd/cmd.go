// submodule cmd contains command definitions
package main

import (
	"net/http"

	"github.com/urfave/cli/v3"
)

// setupCommand handles local configuration and reference server storage.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Create configuration and prepare the server database",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write a config file from the example template",
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Run database migrations",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "rollback",
						Usage: "Roll back the most recent migration",
					},
					&cli.BoolFlag{
						Name:  "status",
						Usage: "List applied migrations without migrating",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:  "user",
				Usage: "Create a server account and print its token",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name:      "name",
						UsageText: "Display name of the account",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "login",
						Usage: "Store the new token as the current credential",
					},
				},
				Action: r.SetupUser,
			},
		},
	}
}

// serveCommand runs the reference task API.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the task API server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to bind (overrides config)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to bind (overrides config)",
			},
		},
		Action: r.Serve,
	}
}

// authCommand handles the stored credential.
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the API credential",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Validate a token and store it",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name:      "token",
						UsageText: "Bearer token issued by the task API",
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Remove the stored token",
				Action: r.AuthLogout,
			},
			{
				Name:  "status",
				Usage: "Check the current credential against the API",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.AuthStatus,
			},
		},
	}
}

// todosCommand handles one-shot task operations.
func todosCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "todos",
		Aliases: []string{"t"},
		Usage:   "Task operations",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List tasks",
				Flags: []cli.Flag{
					filterFlag(),
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print JSON output",
					},
				},
				Action: r.TodosList,
			},
			{
				Name:      "add",
				Usage:     "Create a task",
				ArgsUsage: "<text>",
				Action:    r.TodosAdd,
			},
			{
				Name:  "toggle",
				Usage: "Flip a task's completion",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name:      "id",
						UsageText: "Task ID",
					},
				},
				Action: r.TodosToggle,
			},
			{
				Name:      "edit",
				Usage:     "Replace a task's text",
				ArgsUsage: "<id> <text>",
				Action:    r.TodosEdit,
			},
			{
				Name:    "rm",
				Aliases: []string{"remove"},
				Usage:   "Delete a task",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name:      "id",
						UsageText: "Task ID",
					},
				},
				Action: r.TodosRemove,
			},
			{
				Name:  "counts",
				Usage: "Show total, completed and active counts",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.TodosCounts,
			},
			{
				Name:  "export",
				Usage: "Export the filtered view",
				Flags: []cli.Flag{
					filterFlag(),
					&cli.StringFlag{
						Name:  "format",
						Usage: "Output format: csv, markdown, text or json",
						Value: "markdown",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path, or - for stdout",
					},
				},
				Action: r.TodosExport,
			},
		},
	}
}

// apiCommand makes raw requests against the task API.
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API access",
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "Make a GET request",
				Arguments: pathArg(),
				Flags:     []cli.Flag{compactFlag()},
				Action:    r.APIRequest(http.MethodGet),
			},
			{
				Name:      "post",
				Usage:     "Make a POST request",
				Arguments: pathArg(),
				Flags:     []cli.Flag{compactFlag(), dataFlag()},
				Action:    r.APIRequest(http.MethodPost),
			},
			{
				Name:      "put",
				Usage:     "Make a PUT request",
				Arguments: pathArg(),
				Flags:     []cli.Flag{compactFlag(), dataFlag()},
				Action:    r.APIRequest(http.MethodPut),
			},
			{
				Name:      "delete",
				Usage:     "Make a DELETE request",
				Arguments: pathArg(),
				Flags:     []cli.Flag{compactFlag()},
				Action:    r.APIRequest(http.MethodDelete),
			},
		},
	}
}

// tuiCommand launches the interactive view.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Launch the interactive task view",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "filter",
				Usage: "Initial filter (overrides config)",
			},
		},
		Action: r.TUI,
	}
}

// Flags and arguments hold parsed state, so each command gets its own instance.

func filterFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "filter",
		Aliases: []string{"f"},
		Usage:   "Filter to apply: all, active or completed",
	}
}

func pathArg() []cli.Argument {
	return []cli.Argument{
		&cli.StringArg{
			Name:      "path",
			UsageText: "API path, e.g. /todos",
		},
	}
}

func compactFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:  "json",
		Usage: "Output compact JSON",
	}
}

func dataFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "data",
		Aliases: []string{"d"},
		Usage:   "JSON request body",
	}
}
