package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/newsboard/newsboard/internal/domain/auth"
	"github.com/newsboard/newsboard/internal/ports"
	"github.com/newsboard/newsboard/internal/testutil"
)

func newTestStore(t *testing.T, opts SessionStoreOptions) *SessionStore {
	t.Helper()
	opts.Client = testutil.SetupTestRedis(t)
	return NewSessionStore(opts)
}

func testSession(id string, ttl time.Duration) domainauth.Session {
	now := time.Now()
	return domainauth.Session{ID: id, Email: "reader@example.com", CreatedAt: now, ExpiresAt: now.Add(ttl)}
}

func TestSessionStore_SaveGetDelete(t *testing.T) {
	store := newTestStore(t, SessionStoreOptions{})
	ctx := context.Background()
	sess := testSession("s-1", 30*time.Minute)

	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, sess.Email, got.Email)
	assert.WithinDuration(t, sess.ExpiresAt, got.ExpiresAt, time.Second)

	require.NoError(t, store.Delete(ctx, "s-1"))
	_, err = store.Get(ctx, "s-1")
	require.ErrorIs(t, err, ports.ErrSessionNotFound)

	require.NoError(t, store.Delete(ctx, "s-1"), "deleting twice is fine")
}

func TestSessionStore_UnknownAndEmptyIDs(t *testing.T) {
	store := newTestStore(t, SessionStoreOptions{})
	ctx := context.Background()

	for _, id := range []string{"", "missing"} {
		_, err := store.Get(ctx, id)
		require.ErrorIs(t, err, ports.ErrSessionNotFound, "id %q", id)
	}
	require.NoError(t, store.Delete(ctx, ""))
}

func TestSessionStore_KeyTTLFollowsExpiry(t *testing.T) {
	store := newTestStore(t, SessionStoreOptions{Prefix: "test-prefix:"})
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("ttl", 10*time.Minute)))

	ttl := store.client.TTL(ctx, "test-prefix:ttl").Val()
	assert.Greater(t, ttl, 9*time.Minute)
	assert.LessOrEqual(t, ttl, 10*time.Minute)
	assert.Equal(t, int64(0), store.client.Exists(ctx, DefaultKeyPrefix+"ttl").Val())
}

func TestSessionStore_ExpiresWithRedisTTL(t *testing.T) {
	store := newTestStore(t, SessionStoreOptions{})
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("short", 100*time.Millisecond)))
	time.Sleep(200 * time.Millisecond)

	_, err := store.Get(ctx, "short")
	require.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSessionStore_ClockSkewDropsSession(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	store := newTestStore(t, SessionStoreOptions{Now: func() time.Time { return clock() }})
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("skew", time.Hour)))

	// Redis still holds the key, but this host's clock is past ExpiresAt.
	clock = func() time.Time { return now.Add(2 * time.Hour) }
	_, err := store.Get(ctx, "skew")
	require.ErrorIs(t, err, ports.ErrSessionNotFound)
	assert.Equal(t, int64(0), store.client.Exists(ctx, DefaultKeyPrefix+"skew").Val())
}

func TestSessionStore_SaveRejectsInvalidSessions(t *testing.T) {
	store := newTestStore(t, SessionStoreOptions{})
	ctx := context.Background()

	require.ErrorIs(t, store.Save(ctx, testSession("", time.Hour)), ErrEmptySessionID)
	require.ErrorIs(t, store.Save(ctx, testSession("old", -time.Hour)), ErrSessionExpired)
}

func TestSessionStore_Ping(t *testing.T) {
	store := newTestStore(t, SessionStoreOptions{})
	require.NoError(t, store.Ping(context.Background()))
}
