package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/todox/internal/services"
	"github.com/desertthunder/todox/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// APIRequest returns an action making a direct request with method against the task API.
//
// The stored credential is sent when one is available; its absence is not an error.
func (r *Runner) APIRequest(method string) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		path := cmd.StringArg("path")
		if path == "" {
			return fmt.Errorf("%w: path", shared.ErrMissingArgument)
		}

		var body []byte
		if data := cmd.String("data"); data != "" {
			var jsonTest any
			if err := json.Unmarshal([]byte(data), &jsonTest); err != nil {
				return fmt.Errorf("%w: data is not valid JSON: %v", shared.ErrInvalidInput, err)
			}
			body = []byte(data)
		}

		var tok *oauth2.Token
		if t, err := r.tokens.Token(); err == nil {
			tok = t
		}

		r.logger.Info("API request", "method", method, "path", path)

		client := services.NewTodoService(r.config.API.BaseURL, r.httpClient)
		resp, err := client.Raw(ctx, tok, method, path, body)
		if err != nil {
			return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
		}

		if resp.IsJSON {
			return r.writeJSON(resp.JSONData, !cmd.Bool("json"))
		}

		r.output.Write(resp.Body)
		r.output.Write([]byte("\n"))
		return nil
	}
}
