package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Mode selects which gateway auth operation a form submission performs.
type Mode string

const (
	ModeLogin  Mode = "login"
	ModeSignup Mode = "signup"
)

// ParseMode normalizes a mode string, defaulting to login.
func ParseMode(v string) Mode {
	if strings.EqualFold(strings.TrimSpace(v), string(ModeSignup)) {
		return ModeSignup
	}
	return ModeLogin
}

// Credentials are posted to the auth endpoint. Name is only sent on signup.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// Reply is the gateway's auth response: the HTTP status plus its message field.
type Reply struct {
	StatusCode int
	Message    string
}

// Succeeded reports whether the gateway accepted the credentials: a 2xx status
// and a message containing "success" in any letter case.
func (r Reply) Succeeded() bool {
	if r.StatusCode < 200 || r.StatusCode > 299 {
		return false
	}
	return strings.Contains(strings.ToLower(r.Message), "success")
}

// Identity is the signed-in user as far as this client knows. It is a
// convenience label, not a verified credential.
type Identity struct {
	Email string
}

// Session is the server-side record we persist for a signed-in identity.
// ID is an opaque session identifier (random URL-safe string).
type Session struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Identity returns the session's identity.
func (s Session) Identity() Identity { return Identity{Email: s.Email} }

// Expired reports whether the session is past its expiry at now.
func (s Session) Expired(now time.Time) bool { return now.After(s.ExpiresAt) }
