// Package testutil holds shared test fixtures: a fake API gateway and a
// throwaway Redis database.
package testutil

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisDialTimeout = 2 * time.Second
	redisLockTTL     = 30 * time.Minute
	redisLockPrefix  = "newsboard:testutil:db_lock:"
	// DB 0 holds the reservation locks; tests get one of 1..15.
	redisFirstTestDB = 1
	redisLastTestDB  = 15
)

// redisCandidates is $REDIS_ADDR when set, otherwise the compose service, a
// default local server and the dev compose port.
func redisCandidates() []string {
	if env := os.Getenv("REDIS_ADDR"); env != "" {
		return []string{env}
	}
	return []string{"redis:6379", "localhost:6379", "localhost:56379"}
}

// redisRequired makes a missing Redis fail the test instead of skipping it.
func redisRequired() bool {
	return slices.ContainsFunc([]string{"TEST_REQUIRE_REDIS", "TEST_REQUIRE_INFRA"}, func(key string) bool {
		switch strings.ToLower(os.Getenv(key)) {
		case "1", "true", "yes", "y":
			return true
		}
		return false
	})
}

func pingRedis(addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db, DialTimeout: redisDialTimeout})
	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

// FindTestRedis returns the first reachable Redis address, or "" if none answers.
func FindTestRedis(tb testing.TB) string {
	tb.Helper()
	for _, addr := range redisCandidates() {
		client, err := pingRedis(addr, 0)
		if err != nil {
			tb.Logf("redis not reachable at %s: %v", addr, err)
			continue
		}
		_ = client.Close()
		return addr
	}
	return ""
}

// reserveRedisDB claims a database index so parallel packages do not flush
// each other's data. TEST_REDIS_DB pins the index and skips reservation.
func reserveRedisDB(tb testing.TB, meta *redis.Client) int {
	tb.Helper()
	if v := os.Getenv("TEST_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil && db >= 0 {
			return db
		}
		tb.Logf("ignoring invalid TEST_REDIS_DB=%q", v)
	}

	owner := fmt.Sprintf("%d:%d", os.Getpid(), time.Now().UnixNano())
	for db := redisFirstTestDB; db <= redisLastTestDB; db++ {
		key := redisLockPrefix + strconv.Itoa(db)
		ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
		ok, err := meta.SetNX(ctx, key, owner, redisLockTTL).Result()
		cancel()
		if err != nil || !ok {
			continue
		}
		tb.Cleanup(func() {
			ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
			defer cancel()
			if err := meta.Del(ctx, key).Err(); err != nil {
				tb.Logf("release redis db %d: %v", db, err)
			}
		})
		return db
	}

	tb.Logf("every redis test db is reserved, sharing db %d", redisFirstTestDB)
	return redisFirstTestDB
}

// SetupTestRedis returns a client on an empty, reserved database. The test
// is skipped when no Redis is reachable unless TEST_REQUIRE_REDIS is set.
// The client is flushed and closed when the test ends.
func SetupTestRedis(tb testing.TB) *redis.Client {
	tb.Helper()

	addr := FindTestRedis(tb)
	if addr == "" {
		if redisRequired() {
			tb.Fatal("redis not available for testing")
		}
		tb.Skip("redis not available for testing")
	}

	meta, err := pingRedis(addr, 0)
	if err != nil {
		tb.Fatalf("connect redis meta db at %s: %v", addr, err)
	}
	// Registered first so it runs after the lock release.
	tb.Cleanup(func() { _ = meta.Close() })

	db := reserveRedisDB(tb, meta)
	client, err := pingRedis(addr, db)
	if err != nil {
		tb.Fatalf("connect redis db %d at %s: %v", db, addr, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
	defer cancel()
	if err := client.FlushDB(ctx).Err(); err != nil {
		_ = client.Close()
		tb.Fatalf("flush redis db %d: %v", db, err)
	}

	tb.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), redisDialTimeout)
		defer cancel()
		_ = client.FlushDB(ctx).Err()
		_ = client.Close()
	})
	tb.Logf("using redis db %d at %s", db, addr)
	return client
}
