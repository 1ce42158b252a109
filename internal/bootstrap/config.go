package bootstrap

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/newsboard/newsboard/config"
)

// InitLogger initializes the structured logger.
func InitLogger() *slog.Logger {
	return NewLogger(os.Stdout, slog.LevelInfo)
}

// NewLogger builds a JSON logger at level and installs it as the default.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
	return logger
}

// LoadConfig loads configuration from environment variables.
func LoadConfig() (config.AppConfig, error) {
	// Load .env file if it exists (development)
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return config.AppConfig{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	var cfg config.AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	cfg.Sanitize()
	return cfg, nil
}

// LogStartupWarnings reports configuration that will make pages fail at request time.
func LogStartupWarnings(logger *slog.Logger, cfg *config.AppConfig) {
	if cfg == nil || logger == nil {
		return
	}
	if cfg.API.Endpoint == "" {
		logger.Warn("API_ENDPOINT is not set; news list and upload requests will fail")
	}
	if cfg.API.AuthEndpoint == "" {
		logger.Warn("API_ENDPOINT_AUTH is not set; login and signup requests will fail")
	}
}
