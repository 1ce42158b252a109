package config

import (
	"strings"
	"time"
)

const defaultAPITimeout = 30 * time.Second

// APIConfig contains the external API gateway endpoints.
//
// Neither endpoint is required at startup. A missing endpoint surfaces as a
// request failure on the page that needs it.
type APIConfig struct {
	// Endpoint is the news list/create URL.
	Endpoint string `env:"API_ENDPOINT"`

	// AuthEndpoint is the auth base URL. Login posts to {AuthEndpoint}/login.
	AuthEndpoint string `env:"API_ENDPOINT_AUTH"`

	// Timeout bounds every outbound gateway call.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"30s"`

	// NewsListQuery is an optional JMESPath expression that selects the item
	// array from the list response. Empty means the built-in array/envelope decoding.
	NewsListQuery string `env:"API_NEWS_LIST_QUERY"`
}

// Sanitize trims endpoints and enforces a positive timeout.
func (a *APIConfig) Sanitize() {
	a.Endpoint = strings.TrimSpace(a.Endpoint)
	a.AuthEndpoint = strings.TrimRight(strings.TrimSpace(a.AuthEndpoint), "/")
	a.NewsListQuery = strings.TrimSpace(a.NewsListQuery)
	if a.Timeout <= 0 {
		a.Timeout = defaultAPITimeout
	}
}
