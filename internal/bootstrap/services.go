package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/newsboard/newsboard/config"
	httpx "github.com/newsboard/newsboard/internal/http"
	"github.com/newsboard/newsboard/internal/service"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// ServiceContainer holds the wired application services.
type ServiceContainer struct {
	Auth         *service.AuthService
	News         *service.NewsService
	HealthChecks []httpx.HealthCheck
	Background   []backgroundService
}

// backgroundService describes a startable background component.
type backgroundService struct {
	name  string
	start func(context.Context) error
}

// ServiceDeps contains dependencies for building services.
type ServiceDeps struct {
	Config      *config.AppConfig
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires gateways, the session store and the domain services.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps with config are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	gateways, err := BuildGateways(GatewayConfig{API: cfg.API, Logger: logger})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build gateways: %w", err)
	}

	sessions, err := BuildSessionStore(SessionConfig{
		Session:     cfg.Session,
		RedisClient: deps.RedisClient,
		Logger:      logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build session store: %w", err)
	}
	logger.Info("session store selected", "store", cfg.Session.Store, "ttl", cfg.Session.TTL)

	return ServiceContainer{
		Auth:         BuildAuthService(gateways.Auth, sessions.Store, cfg.Session, logger),
		News:         service.NewNewsService(service.NewsServiceOptions{Gateway: gateways.News, Logger: logger}),
		HealthChecks: sessions.Health,
		Background:   sessions.Background,
	}, nil
}

// ServiceOrchestrationConfig contains everything RunServicesWithShutdown needs.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunServicesWithShutdown starts the HTTP server and background services and
// blocks until ctx is canceled, SIGINT/SIGTERM arrives, or a service fails.
func RunServicesWithShutdown(ctx context.Context, cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	server, err := NewHTTPServer(&HTTPServerConfig{Config: cfg.Config, Services: cfg.Services, Logger: logger})
	if err != nil {
		return err
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(sigCtx)

	g.Go(func() error { return serveHTTP(server, logger) })

	for _, bg := range cfg.Services.Background {
		bg := bg
		g.Go(func() error {
			logger.InfoContext(gctx, "background service started", "service", bg.name)
			if err := bg.start(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("%s failed: %w", bg.name, err)
			}
			logger.InfoContext(gctx, bg.name+" stopped")
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down services...")
		return ShutdownHTTPServer(ShutdownConfig{
			Context: context.WithoutCancel(gctx),
			Server:  server,
			Logger:  logger,
		})
	})

	if err := g.Wait(); err != nil {
		logger.Error("service error", "error", err)
		return err
	}
	return nil
}
