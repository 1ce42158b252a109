// Package redis persists sessions in Redis so several newsboard instances can
// share sign-ins.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainauth "github.com/newsboard/newsboard/internal/domain/auth"
	"github.com/newsboard/newsboard/internal/ports"
)

// DefaultKeyPrefix namespaces session keys when no prefix is configured.
const DefaultKeyPrefix = "newsboard:session:"

var (
	// ErrEmptySessionID is returned by Save for a session without an ID.
	ErrEmptySessionID = errors.New("session ID cannot be empty")
	// ErrSessionExpired is returned by Save for a session already past ExpiresAt.
	ErrSessionExpired = errors.New("session is expired")
)

var _ ports.SessionStore = (*SessionStore)(nil)

// SessionStoreOptions configures a SessionStore.
type SessionStoreOptions struct {
	Client redis.UniversalClient
	Prefix string
	Now    func() time.Time
}

// SessionStore keeps one JSON document per session under {prefix}{id}. The
// key TTL tracks ExpiresAt, so Redis evicts stale sign-ins on its own.
type SessionStore struct {
	client redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewSessionStore builds a store from opts, filling in the default prefix and clock.
func NewSessionStore(opts SessionStoreOptions) *SessionStore {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &SessionStore{client: opts.Client, prefix: prefix, now: now}
}

func (s *SessionStore) key(id string) string { return s.prefix + id }

// Save writes the session with a TTL of ExpiresAt minus now.
func (s *SessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return ErrEmptySessionID
	}
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return ErrSessionExpired
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(sess.ID), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

// Get returns ports.ErrSessionNotFound for unknown, empty or expired IDs.
func (s *SessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}

	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return domainauth.Session{}, ports.ErrSessionNotFound
	case err != nil:
		return domainauth.Session{}, fmt.Errorf("redis get session: %w", err)
	}

	var sess domainauth.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return domainauth.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}

	// The key TTL normally wins; this covers clock skew between hosts.
	if sess.Expired(s.now()) {
		if err := s.Delete(ctx, id); err != nil {
			return domainauth.Session{}, fmt.Errorf("drop expired session: %w", err)
		}
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

// Delete removes the session. Unknown and empty IDs are not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

// Ping reports whether Redis answers; used as the session health check.
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
