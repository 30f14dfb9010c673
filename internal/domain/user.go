// Package domain contains entities without logic, just meta-data
package domain

import "errors"

const (
	MaxUserIDLen   = 36
	MaxUserNameLen = 64
)

var (
	ErrUserNameTooLong = errors.New("user name too long")
	ErrUserNameEmpty   = errors.New("user name empty")
)

type UserID string

// User is the durable identity attached to rooms and messages.
// Credentials never live here; the token issuer is an external service.
type User struct {
	ID    UserID `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// NewUser is a tiny helper to avoid ad-hoc struct literals in adapters.
func NewUser(id UserID, name, email string) (*User, error) {
	if len(name) == 0 {
		return nil, ErrUserNameEmpty
	}
	if len(name) > MaxUserNameLen {
		return nil, ErrUserNameTooLong
	}
	return &User{ID: id, Name: name, Email: email}, nil
}
