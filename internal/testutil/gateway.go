package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// RecordedRequest is one call received by a GatewayServer.
type RecordedRequest struct {
	Method      string
	Path        string
	RawQuery    string
	ContentType string
	Body        []byte
}

// DecodeBody unmarshals the recorded JSON body into dst.
func (r RecordedRequest) DecodeBody(t *testing.T, dst any) {
	t.Helper()
	if err := json.Unmarshal(r.Body, dst); err != nil {
		t.Fatalf("decode recorded body %q: %v", r.Body, err)
	}
}

// GatewayResponse is a canned reply.
type GatewayResponse struct {
	Status int
	Body   string
}

// GatewayServer is an httptest server standing in for the external API gateway.
// Routes are keyed by "METHOD /path"; unknown routes answer 404.
type GatewayServer struct {
	*httptest.Server

	mu       sync.Mutex
	routes   map[string]GatewayResponse
	requests []RecordedRequest
}

// NewGatewayServer starts a fake gateway that is closed with the test.
func NewGatewayServer(t *testing.T) *GatewayServer {
	t.Helper()
	g := &GatewayServer{routes: make(map[string]GatewayResponse)}
	g.Server = httptest.NewServer(http.HandlerFunc(g.serve))
	t.Cleanup(g.Close)
	return g
}

// Handle registers a canned response for method and path.
func (g *GatewayServer) Handle(method, path string, status int, body string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.routes[method+" "+path] = GatewayResponse{Status: status, Body: body}
}

// Requests returns a copy of everything received so far.
func (g *GatewayServer) Requests() []RecordedRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]RecordedRequest(nil), g.requests...)
}

// URLFor returns the server URL joined with path.
func (g *GatewayServer) URLFor(path string) string {
	return g.Server.URL + path
}

func (g *GatewayServer) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	g.mu.Lock()
	g.requests = append(g.requests, RecordedRequest{
		Method:      r.Method,
		Path:        r.URL.Path,
		RawQuery:    r.URL.RawQuery,
		ContentType: r.Header.Get("Content-Type"),
		Body:        body,
	})
	resp, ok := g.routes[r.Method+" "+r.URL.Path]
	g.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	_, _ = io.WriteString(w, resp.Body)
}
