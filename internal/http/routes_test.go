package httpx

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsboard/newsboard/internal/adapters/memory"
	fakes "github.com/newsboard/newsboard/internal/mocks/auth"
	"github.com/newsboard/newsboard/internal/service"
)

func TestNewRouter_RequiresServices(t *testing.T) {
	_, err := NewRouter(RouterServices{})
	require.Error(t, err)
}

func TestNewRouter_EmbeddedAssets(t *testing.T) {
	h, err := NewRouter(RouterServices{
		Auth: service.NewAuthService(service.AuthServiceOptions{Gateway: fakes.NewFakeAuthGateway(), Sessions: memory.NewSessionStore()}),
		News: service.NewNewsService(service.NewsServiceOptions{Gateway: &fakes.FakeNewsGateway{}}),
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, getPage("/"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/auth/login"`)
}

func TestRoutes_Healthz(t *testing.T) {
	app := newTestApp(t)

	rec := app.serve(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	head := app.serve(httptest.NewRequest(http.MethodHead, "/healthz", nil))
	assert.Equal(t, http.StatusOK, head.Code)
	assert.Empty(t, head.Body.String())
}

func TestRoutes_StaticAssets(t *testing.T) {
	app := newTestApp(t)

	rec := app.serve(httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
	assert.Equal(t, "public, max-age=3600", rec.Header().Get("Cache-Control"))
}

func TestRoutes_NotFound(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{name: "unknown page", method: http.MethodGet, path: "/does-not-exist"},
		{name: "get on upload", method: http.MethodGet, path: "/upload"},
		{name: "missing static file", method: http.MethodGet, path: "/static/missing.js"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Accept", "text/html")
			rec := app.serve(req)
			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}

func TestRoutes_NotFoundPage(t *testing.T) {
	app := newTestApp(t)

	rec := app.serve(getPage("/nowhere"))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, ContainsAll(rec.Body.String(), []string{"Page not found", "The page you requested does not exist."}))
}

func TestRoutes_OversizedUploadRejected(t *testing.T) {
	tests := []struct {
		name      string
		formToken bool
	}{
		{name: "token in header", formToken: false},
		{name: "token only in form field", formToken: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			h, err := NewRouter(RouterServices{
				Auth:           service.NewAuthService(service.AuthServiceOptions{Gateway: app.AuthGW, Sessions: app.Sessions}),
				News:           service.NewNewsService(service.NewsServiceOptions{Gateway: app.NewsGW}),
				UploadMaxBytes: 1024,
				TemplateFS:     os.DirFS(TemplatePathFromTest),
				StaticFS:       os.DirFS("../../frontend/static"),
			})
			require.NoError(t, err)
			app.Handler = h
			cookie := app.login(t, "reader@example.com")

			fields := validUploadFields()
			if tt.formToken {
				fields[DefaultCSRFCookieName] = testCSRFToken
			}
			big := make([]byte, 4096)
			copy(big, pngBytes)
			req := newUploadRequest(t, fields, &uploadFile{Name: "big.png", ContentType: "image/png", Content: big}, cookie)
			if tt.formToken {
				req.Header.Del(DefaultCSRFHeaderName)
			}
			rec := app.serve(req)

			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			assert.True(t, ContainsAll(body, []string{"Image is too large", `role="alert"`, "Upload News"}))
			assert.Empty(t, app.NewsGW.Created())
		})
	}
}

func TestRoutes_OversizedFormWithoutSessionShowsLogin(t *testing.T) {
	app := newTestApp(t)
	h, err := NewRouter(RouterServices{
		Auth:           service.NewAuthService(service.AuthServiceOptions{Gateway: app.AuthGW, Sessions: app.Sessions}),
		News:           service.NewNewsService(service.NewsServiceOptions{Gateway: app.NewsGW}),
		UploadMaxBytes: 64,
		TemplateFS:     os.DirFS(TemplatePathFromTest),
		StaticFS:       os.DirFS("../../frontend/static"),
	})
	require.NoError(t, err)
	app.Handler = h

	req := newUploadRequest(t, map[string]string{DefaultCSRFCookieName: testCSRFToken, "title": strings.Repeat("x", 512)}, nil)
	req.Header.Del(DefaultCSRFHeaderName)
	rec := app.serve(req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ContainsAll(rec.Body.String(), []string{"Image is too large", `action="/auth/login"`}))
}

func TestRoutes_NotFoundJSONForAPIClients(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	req.Header.Set("Accept", "application/json")
	rec := app.serve(req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found","message":"not found"}`, rec.Body.String())
}
