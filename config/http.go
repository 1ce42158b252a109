package config

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":8080"`

	// CookieDomain is the domain for session cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`

	// CompressionEnabled enables gzip compression for text-based responses.
	CompressionEnabled bool `env:"HTTP_COMPRESSION_ENABLED" envDefault:"false"`

	// CompressionLevel is the gzip compression level (1-9).
	// Default is 6 (standard gzip default).
	CompressionLevel int `env:"HTTP_COMPRESSION_LEVEL" envDefault:"6"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	if h.Addr == "" {
		h.Addr = ":8080"
	}
	// Clamp compression level to valid gzip range (1-9)
	if h.CompressionLevel < 1 {
		h.CompressionLevel = 1
	}
	if h.CompressionLevel > 9 {
		h.CompressionLevel = 9
	}
}

const (
	defaultUploadMaxBytes = 10 << 20
	minUploadMaxBytes     = 1 << 10
)

// UploadConfig limits multipart news submissions.
type UploadConfig struct {
	MaxBytes int64 `env:"UPLOAD_MAX_BYTES" envDefault:"10485760"`
}

// Sanitize keeps MaxBytes within a usable range.
func (u *UploadConfig) Sanitize() {
	if u.MaxBytes <= 0 {
		u.MaxBytes = defaultUploadMaxBytes
	}
	if u.MaxBytes < minUploadMaxBytes {
		u.MaxBytes = minUploadMaxBytes
	}
}
