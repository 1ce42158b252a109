package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	domainauth "github.com/newsboard/newsboard/internal/domain/auth"
	"github.com/newsboard/newsboard/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestSessionStore_SaveGetDelete(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	sess := domainauth.Session{ID: "s1", Email: "user@example.com", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", got.Email)

	require.NoError(t, store.Delete(ctx, "s1"))
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
}

func TestSessionStore_Validation(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	err := store.Save(ctx, domainauth.Session{ExpiresAt: time.Now().Add(time.Hour)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session ID cannot be empty")

	err = store.Save(ctx, domainauth.Session{ID: "old", ExpiresAt: time.Now().Add(-time.Hour)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "session is expired")

	_, err = store.Get(ctx, "")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
	assert.NoError(t, store.Delete(ctx, ""))
}

func TestSessionStore_ExpiryAndSweep(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := NewSessionStoreWithClock(clock.Now)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domainauth.Session{ID: "short", Email: "a@example.com", ExpiresAt: clock.Now().Add(time.Minute)}))
	require.NoError(t, store.Save(ctx, domainauth.Session{ID: "long", Email: "b@example.com", ExpiresAt: clock.Now().Add(time.Hour)}))
	require.NoError(t, store.Save(ctx, domainauth.Session{ID: "short2", Email: "c@example.com", ExpiresAt: clock.Now().Add(time.Minute)}))

	clock.Advance(2 * time.Minute)

	_, err := store.Get(ctx, "short")
	assert.ErrorIs(t, err, ports.ErrSessionNotFound)
	assert.Equal(t, 2, store.Len())

	assert.Equal(t, 1, store.Sweep())
	assert.Equal(t, 1, store.Len())

	got, err := store.Get(ctx, "long")
	require.NoError(t, err)
	assert.Equal(t, "b@example.com", got.Email)
}

func TestSessionStore_RunSweeperStopsOnCancel(t *testing.T) {
	store := NewSessionStore()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- store.RunSweeper(ctx, 5*time.Millisecond) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestSessionStore_ConcurrentAccess(t *testing.T) {
	store := NewSessionStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := string(rune('a' + i%26))
			_ = store.Save(ctx, domainauth.Session{ID: id, Email: "x@example.com", ExpiresAt: time.Now().Add(time.Hour)})
			_, _ = store.Get(ctx, id)
			if i%3 == 0 {
				_ = store.Delete(ctx, id)
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, store.Len(), 26)
}
