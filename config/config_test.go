package config

import (
	"log/slog"
	"reflect"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfig_ParseAPIEnv(t *testing.T) {
	t.Setenv("API_ENDPOINT", " https://api.example.com/news ")
	t.Setenv("API_ENDPOINT_AUTH", "https://api.example.com/auth/")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("API_NEWS_LIST_QUERY", "data.items")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	expected := APIConfig{
		Endpoint:      "https://api.example.com/news",
		AuthEndpoint:  "https://api.example.com/auth",
		Timeout:       5 * time.Second,
		NewsListQuery: "data.items",
	}
	if !reflect.DeepEqual(cfg.API, expected) {
		t.Fatalf("unexpected api configuration:\nexpected: %#v\ngot:      %#v", expected, cfg.API)
	}
}

func TestAppConfig_Defaults(t *testing.T) {
	t.Setenv("NODE_ENV", "")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.IsDev {
		t.Errorf("expected IsDev=false by default")
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.HTTP.Addr)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %v", cfg.API.Timeout)
	}
	if cfg.Session.Store != SessionStoreMemory {
		t.Errorf("expected memory session store, got %q", cfg.Session.Store)
	}
	if cfg.Session.TTL != 720*time.Hour {
		t.Errorf("expected session TTL 720h, got %v", cfg.Session.TTL)
	}
	if cfg.Upload.MaxBytes != 10<<20 {
		t.Errorf("expected 10MiB upload limit, got %d", cfg.Upload.MaxBytes)
	}
	if cfg.Redis.URI != "localhost:6379" {
		t.Errorf("expected default redis uri, got %q", cfg.Redis.URI)
	}
}

func TestAppConfig_ParseSessionEnv(t *testing.T) {
	t.Setenv("SESSION_STORE", "Redis")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("REDIS_URI", "redis:6379")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REDIS_CLUSTER_NODES", "a:7000,b:7001")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Session.Store != SessionStoreRedis {
		t.Errorf("expected redis store, got %q", cfg.Session.Store)
	}
	if cfg.Session.TTL != 2*time.Hour {
		t.Errorf("expected TTL 2h, got %v", cfg.Session.TTL)
	}
	if cfg.Redis.URI != "redis:6379" || cfg.Redis.DB != 3 {
		t.Errorf("unexpected redis config: %#v", cfg.Redis)
	}
	if !reflect.DeepEqual(cfg.Redis.ClusterNodes, []string{"a:7000", "b:7001"}) {
		t.Errorf("unexpected cluster nodes: %#v", cfg.Redis.ClusterNodes)
	}
}

func TestAppConfig_InvalidSessionStore(t *testing.T) {
	t.Setenv("SESSION_STORE", "postgres")

	var cfg AppConfig
	if err := env.Parse(&cfg); err == nil {
		t.Fatal("expected error for invalid session store")
	}
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	tests := []struct {
		name     string
		in       HTTPConfig
		expected HTTPConfig
	}{
		{
			name:     "clamps low compression level",
			in:       HTTPConfig{Addr: ":9000", CompressionLevel: 0},
			expected: HTTPConfig{Addr: ":9000", CompressionLevel: 1},
		},
		{
			name:     "clamps high compression level",
			in:       HTTPConfig{Addr: ":9000", CompressionLevel: 12},
			expected: HTTPConfig{Addr: ":9000", CompressionLevel: 9},
		},
		{
			name:     "fills empty addr",
			in:       HTTPConfig{CompressionLevel: 6},
			expected: HTTPConfig{Addr: ":8080", CompressionLevel: 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in
			got.Sanitize()
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %#v, got %#v", tt.expected, got)
			}
		})
	}
}

func TestUploadConfig_Sanitize(t *testing.T) {
	u := UploadConfig{MaxBytes: -1}
	u.Sanitize()
	if u.MaxBytes != defaultUploadMaxBytes {
		t.Errorf("expected default, got %d", u.MaxBytes)
	}

	u = UploadConfig{MaxBytes: 10}
	u.Sanitize()
	if u.MaxBytes != minUploadMaxBytes {
		t.Errorf("expected floor %d, got %d", minUploadMaxBytes, u.MaxBytes)
	}
}

func TestAppConfig_DevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	cfg := AppConfig{}
	cfg.Sanitize()
	if !cfg.IsDev {
		t.Error("expected NODE_ENV=development to enable dev mode")
	}
}

func TestAppConfig_SlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		cfg := AppConfig{LogLevel: in}
		if got := cfg.SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
