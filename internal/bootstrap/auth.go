package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/newsboard/newsboard/config"
	"github.com/newsboard/newsboard/internal/adapters/gateway"
	"github.com/newsboard/newsboard/internal/adapters/memory"
	redisadapter "github.com/newsboard/newsboard/internal/adapters/redis"
	httpx "github.com/newsboard/newsboard/internal/http"
	"github.com/newsboard/newsboard/internal/ports"
	"github.com/newsboard/newsboard/internal/service"
	"github.com/redis/go-redis/v9"
)

const sessionSweepInterval = 5 * time.Minute

// GatewayConfig contains configuration for the outbound API clients.
type GatewayConfig struct {
	API config.APIConfig
	// Client overrides the default HTTP client (the admin CLI passes a cookie-jar client).
	Client *http.Client
	Logger *slog.Logger
}

// Gateways bundles the auth and news ports backed by the API gateway.
type Gateways struct {
	Auth ports.AuthGateway
	News ports.NewsGateway
}

// BuildGateways creates the gateway clients. An invalid list query fails
// startup; empty endpoints do not, they fail per request instead.
func BuildGateways(cfg GatewayConfig) (Gateways, error) {
	clientCfg := gateway.Config{Timeout: cfg.API.Timeout, Client: cfg.Client}

	opts := gateway.NewsClientOptions{Endpoint: cfg.API.Endpoint, Config: clientCfg}
	if cfg.API.NewsListQuery != "" {
		dec, err := gateway.NewQueryDecoder(cfg.API.NewsListQuery)
		if err != nil {
			return Gateways{}, err
		}
		opts.Decoder = dec
		if cfg.Logger != nil {
			cfg.Logger.Info("news list query enabled", "query", cfg.API.NewsListQuery)
		}
	}

	return Gateways{
		Auth: gateway.NewAuthClient(cfg.API.AuthEndpoint, clientCfg),
		News: gateway.NewNewsClient(opts),
	}, nil
}

// SessionConfig contains configuration for the session store.
type SessionConfig struct {
	Session     config.SessionConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// SessionBackend is the selected store plus what it needs at runtime.
type SessionBackend struct {
	Store      ports.SessionStore
	Health     []httpx.HealthCheck
	Background []backgroundService
}

// BuildSessionStore selects the configured session store. The memory store
// gets a sweeper; the redis store gets a health check and relies on key TTLs.
func BuildSessionStore(cfg SessionConfig) (SessionBackend, error) {
	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		if cfg.RedisClient == nil {
			return SessionBackend{}, errors.New("redis session store selected but redis client not configured")
		}
		store := redisadapter.NewSessionStore(redisadapter.SessionStoreOptions{
			Client: cfg.RedisClient,
			Prefix: cfg.Session.KeyPrefix,
		})
		return SessionBackend{
			Store:  store,
			Health: []httpx.HealthCheck{{Name: "redis", Check: store.Ping}},
		}, nil

	default:
		store := memory.NewSessionStore()
		return SessionBackend{
			Store: store,
			Background: []backgroundService{{
				name: "session sweeper",
				start: func(ctx context.Context) error {
					return store.RunSweeper(ctx, sessionSweepInterval)
				},
			}},
		}, nil
	}
}

// BuildAuthService wires the auth service to the gateway and session store.
func BuildAuthService(gw ports.AuthGateway, sessions ports.SessionStore, cfg config.SessionConfig, logger *slog.Logger) *service.AuthService {
	return service.NewAuthService(service.AuthServiceOptions{
		Gateway:  gw,
		Sessions: sessions,
		TTL:      cfg.TTL,
		Logger:   logger,
	})
}
