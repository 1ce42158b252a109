package config

import (
	"fmt"
	"strings"
	"time"
)

// SessionStoreKind selects the session persistence backend.
type SessionStoreKind string

const (
	// SessionStoreMemory keeps sessions in process memory (single instance, lost on restart).
	SessionStoreMemory SessionStoreKind = "memory"
	// SessionStoreRedis keeps sessions in Redis.
	SessionStoreRedis SessionStoreKind = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionStoreKind.
func (k *SessionStoreKind) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "memory", "redis":
		*k = SessionStoreKind(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionStoreKind: %q (valid options: memory, redis)", v)
	}
}

const defaultSessionTTL = 30 * 24 * time.Hour

// SessionConfig controls how the signed-in identity is persisted.
type SessionConfig struct {
	Store     SessionStoreKind `env:"SESSION_STORE"      envDefault:"memory"`
	TTL       time.Duration    `env:"SESSION_TTL"        envDefault:"720h"`
	KeyPrefix string           `env:"SESSION_KEY_PREFIX" envDefault:"newsboard:session:"`
}

// Sanitize applies defaults for zero values.
func (s *SessionConfig) Sanitize() {
	if s.Store == "" {
		s.Store = SessionStoreMemory
	}
	if s.TTL <= 0 {
		s.TTL = defaultSessionTTL
	}
	if s.KeyPrefix == "" {
		s.KeyPrefix = "newsboard:session:"
	}
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	DB                 int      `env:"DB"                   envDefault:"0"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}
