package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/todox/internal/shared"
)

// User is an account of the reference task API, identified by its bearer token.
type User struct {
	base
	name  string
	token string
}

var _ Model = (*User)(nil)

// NewUser creates a user with the given sequence, name and token.
func NewUser(sequence int, name, token string) *User {
	return &User{base: newBase(sequence), name: name, token: token}
}

func (u *User) Name() string  { return u.name }
func (u *User) Token() string { return u.token }

// Validate requires a non-blank name and token.
func (u *User) Validate() error {
	if strings.TrimSpace(u.name) == "" {
		return fmt.Errorf("%w: user name is required", shared.ErrInvalidInput)
	}
	if strings.TrimSpace(u.token) == "" {
		return fmt.Errorf("%w: user token is required", shared.ErrInvalidInput)
	}
	return nil
}
