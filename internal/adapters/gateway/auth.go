package gateway

import (
	"context"
	"encoding/json"
	"net/http"

	domainauth "github.com/newsboard/newsboard/internal/domain/auth"
	"github.com/newsboard/newsboard/internal/domain/model"
	"github.com/newsboard/newsboard/internal/ports"
)

var _ ports.AuthGateway = (*AuthClient)(nil)

// AuthClient posts credentials to the auth endpoint.
type AuthClient struct {
	base string
	t    transport
}

// NewAuthClient constructs an AuthClient. base is the auth endpoint without a trailing slash.
func NewAuthClient(base string, cfg Config) *AuthClient {
	return &AuthClient{base: base, t: newTransport(cfg)}
}

// Login posts {email, password} to {base}/login.
func (c *AuthClient) Login(ctx context.Context, creds domainauth.Credentials) (domainauth.Reply, error) {
	url := ""
	if c.base != "" {
		url = c.base + "/login"
	}
	creds.Name = ""
	return c.post(ctx, url, creds)
}

// Signup posts {email, password, name} to {base}.
func (c *AuthClient) Signup(ctx context.Context, creds domainauth.Credentials) (domainauth.Reply, error) {
	return c.post(ctx, c.base, creds)
}

func (c *AuthClient) post(ctx context.Context, url string, creds domainauth.Credentials) (domainauth.Reply, error) {
	r, err := c.t.do(ctx, http.MethodPost, url, creds)
	if err != nil {
		return domainauth.Reply{}, err
	}

	var body struct {
		Message model.Text `json:"message"`
	}
	// A body without a readable message is a failed reply, not a transport error.
	_ = json.Unmarshal(r.Body, &body)

	return domainauth.Reply{StatusCode: r.StatusCode, Message: body.Message.String()}, nil
}
