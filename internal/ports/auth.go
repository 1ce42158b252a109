package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/newsboard/newsboard/internal/domain/auth"
)

// AuthGateway submits credentials to the external auth endpoint.
type AuthGateway interface {
	// Login posts credentials to {auth}/login.
	Login(ctx context.Context, creds domainauth.Credentials) (domainauth.Reply, error)
	// Signup posts credentials (with name) to {auth}.
	Signup(ctx context.Context, creds domainauth.Credentials) (domainauth.Reply, error)
}

// ErrSessionNotFound is returned by session stores for unknown or expired IDs.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}
