package shared

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
)

// TokenEnv names the environment variable that overrides stored credentials.
const TokenEnv = "TODOX_TOKEN"

// TokenFile stores the bearer credential on disk, one token per file.
//
// It implements [oauth2.TokenSource] and re-reads the file on every call, so a login or logout in another
// process is picked up by the next operation.
type TokenFile struct {
	path string
}

var _ oauth2.TokenSource = (*TokenFile)(nil)

// NewTokenFile creates a [TokenFile] at path, expanding a leading "~".
func NewTokenFile(path string) *TokenFile {
	return &TokenFile{path: ExpandHome(path)}
}

// Path returns the expanded file path.
func (f *TokenFile) Path() string {
	return f.path
}

// Read returns the stored token, or [ErrNoCredential] when the file is missing or blank.
func (f *TokenFile) Read() (string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoCredential
	}
	if err != nil {
		return "", fmt.Errorf("failed to read token file: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoCredential
	}
	return token, nil
}

// Write stores token with owner-only permissions.
func (f *TokenFile) Write(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: empty token", ErrInvalidInput)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(f.path, []byte(token+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Clear removes the stored token. Clearing a missing file is not an error.
func (f *TokenFile) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// Token implements [oauth2.TokenSource].
func (f *TokenFile) Token() (*oauth2.Token, error) {
	token, err := f.Read()
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer"}, nil
}

// NewTokenSource picks the credential source from the environment, then the static config token, then the
// token file.
func NewTokenSource(c CredentialsConfig) oauth2.TokenSource {
	if token := strings.TrimSpace(os.Getenv(TokenEnv)); token != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	}
	if token := strings.TrimSpace(c.Token); token != "" {
		return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	}
	return NewTokenFile(c.TokenPath)
}
