// Package storage provides the service-user store. The catalog integration
// makes its upstream requests as a configured service account; this package
// answers lookups for that account and manages user credentials.
package storage

import (
	"context"
	"time"
)

// User represents a platform user account
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Storage defines the user store operations the service depends on
type Storage interface {
	// GetUserByUsername returns the user with the given username, or a
	// not_found typed error when no such user exists.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// CreateUser creates a user with a bcrypt-hashed password.
	CreateUser(ctx context.Context, username, email, password string) (*User, error)

	// ValidateUser checks a username/password pair and returns the user on success.
	ValidateUser(ctx context.Context, username, password string) (*User, error)

	Health() error
	Close() error
}
