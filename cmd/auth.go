package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/todox/internal/services"
	"github.com/desertthunder/todox/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

// AuthLogin validates a token against GET /me and stores it in the token file.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	token := strings.TrimSpace(cmd.StringArg("token"))
	if token == "" {
		return fmt.Errorf("%w: token", shared.ErrMissingArgument)
	}

	r.logger.Info("validating token")
	profile, err := r.api.Me(ctx, &oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	if errors.Is(err, shared.ErrNotAuthenticated) {
		return fmt.Errorf("%w: token rejected", shared.ErrAuthFailed)
	} else if err != nil {
		return fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}

	if err := r.tokenFile.Write(token); err != nil {
		return err
	}
	r.logger.Info("token stored", "path", r.tokenFile.Path())

	return r.writePlain("✓ Logged in as %v\n", profile.Name)
}

// AuthLogout removes the stored token.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.tokenFile.Clear(); err != nil {
		return err
	}
	r.logger.Info("token removed", "path", r.tokenFile.Path())
	return r.writePlain("✓ Logged out\n")
}

// AuthStatus reports whether the current credential is accepted.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	profile, err := r.authenticate(ctx)
	if errors.Is(err, shared.ErrNoCredential) {
		return r.writePlain("✗ Not logged in\n")
	}
	if errors.Is(err, shared.ErrNotAuthenticated) {
		return r.writePlain("✗ Stored token was rejected and has been removed\n")
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(profile, false)
	}
	return r.writePlain("✓ Logged in as %v (%v)\n", profile.Name, profile.ID)
}

// authenticate resolves the current credential and confirms it with GET /me.
//
// A rejected credential is cleared from the token file so the next run starts logged out.
func (r *Runner) authenticate(ctx context.Context) (*services.Profile, error) {
	tok, err := r.tokens.Token()
	if err != nil || tok == nil || tok.AccessToken == "" {
		r.logger.Debug("no credential", "error", err)
		return nil, shared.ErrNoCredential
	}

	profile, err := r.api.Me(ctx, tok)
	if errors.Is(err, shared.ErrNotAuthenticated) {
		r.logger.Warn("credential rejected, clearing token file", "path", r.tokenFile.Path())
		if clearErr := r.tokenFile.Clear(); clearErr != nil {
			r.logger.Error("failed to clear token file", "error", clearErr)
		}
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrAPIRequest, err)
	}

	r.logger.Debug("authenticated", "user", profile.Name)
	return profile, nil
}
