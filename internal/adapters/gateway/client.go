// Package gateway talks to the external news API gateway over HTTP.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	apperrors "github.com/newsboard/newsboard/internal/errors"
	"golang.org/x/net/publicsuffix"
)

const (
	defaultTimeout   = 30 * time.Second
	maxResponseBytes = 64 << 20
)

// ErrEndpointNotConfigured is returned when a call is made without a configured URL.
var ErrEndpointNotConfigured = errors.New("API endpoint is not configured")

// Config captures what the gateway clients need.
type Config struct {
	Timeout time.Duration
	Client  *http.Client
}

// NewCookieJarClient builds an http.Client that keeps cookies the gateway sets,
// scoped by the public suffix list. Used by the admin CLI, never by the shared server.
func NewCookieJarClient(timeout time.Duration) (*http.Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &http.Client{Jar: jar, Timeout: timeout}, nil
}

type transport struct {
	client  *http.Client
	timeout time.Duration
}

func newTransport(cfg Config) transport {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{}
	}
	return transport{client: hc, timeout: timeout}
}

type reply struct {
	StatusCode int
	Body       []byte
}

func (r reply) ok() bool { return r.StatusCode >= 200 && r.StatusCode <= 299 }

// do sends one request. A nil payload sends no body. Transport failures are
// classified with apperrors.WrapTransport; HTTP statuses are left to callers.
func (t transport) do(ctx context.Context, method, url string, payload any) (reply, error) {
	if url == "" {
		return reply{}, apperrors.Wrap(ErrEndpointNotConfigured, apperrors.ErrCodeUpstream, "call gateway")
	}

	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return reply{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode gateway payload")
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return reply{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "create gateway request")
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return reply{}, apperrors.WrapTransport(err, fmt.Sprintf("%s %s", method, url))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return reply{}, apperrors.WrapTransport(err, "read gateway response")
	}

	return reply{StatusCode: resp.StatusCode, Body: data}, nil
}
