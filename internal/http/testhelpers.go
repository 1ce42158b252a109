package httpx

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/newsboard/newsboard/internal/adapters/memory"
	fakes "github.com/newsboard/newsboard/internal/mocks/auth"
	"github.com/newsboard/newsboard/internal/ports"
	"github.com/newsboard/newsboard/internal/service"
)

const testCSRFToken = "test-csrf-token"

// RequireTemplateRenderer creates a TemplateRenderer for tests, skipping the test if templates are not available.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}

// ContainsAll checks if a string contains all the given substrings.
func ContainsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

// testApp wires the real services to in-process fakes behind the full router.
type testApp struct {
	Handler  http.Handler
	AuthGW   *fakes.FakeAuthGateway
	NewsGW   *fakes.FakeNewsGateway
	Sessions *memory.SessionStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWithNews(t, nil)
}

// newTestAppWithNews swaps the fake news gateway for a real one, e.g. a
// gateway.NewsClient pointed at a testutil.GatewayServer.
func newTestAppWithNews(t *testing.T, news ports.NewsGateway) *testApp {
	t.Helper()
	if _, err := os.Stat(TemplatePathFromTest); os.IsNotExist(err) {
		t.Skip("Templates not available, skipping")
	}

	app := &testApp{
		AuthGW:   fakes.NewFakeAuthGateway(),
		NewsGW:   &fakes.FakeNewsGateway{},
		Sessions: memory.NewSessionStore(),
	}
	authSvc := service.NewAuthService(service.AuthServiceOptions{Gateway: app.AuthGW, Sessions: app.Sessions})
	if news == nil {
		news = app.NewsGW
	}
	newsSvc := service.NewNewsService(service.NewsServiceOptions{Gateway: news})

	h, err := NewRouter(RouterServices{
		Auth:       authSvc,
		News:       newsSvc,
		TemplateFS: os.DirFS(TemplatePathFromTest),
		StaticFS:   os.DirFS("../../frontend/static"),
	})
	if err != nil {
		t.Fatalf("create router: %v", err)
	}
	app.Handler = h
	return app
}

func (a *testApp) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Handler.ServeHTTP(rec, req)
	return rec
}

// login posts valid credentials and returns the issued session cookie.
func (a *testApp) login(t *testing.T, email string) *http.Cookie {
	t.Helper()
	rec := a.serve(postForm("/auth/login", url.Values{"email": {email}, "password": {"pw"}}))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body.String())
	}
	c := findCookie(rec.Result().Cookies(), sessionCookieName)
	if c == nil {
		t.Fatal("login did not set a session cookie")
	}
	return c
}

// withCSRF attaches a matching CSRF cookie and form-independent header.
func withCSRF(req *http.Request) *http.Request {
	req.AddCookie(&http.Cookie{Name: DefaultCSRFCookieName, Value: testCSRFToken})
	req.Header.Set(DefaultCSRFHeaderName, testCSRFToken)
	return req
}

func postForm(path string, values url.Values, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return withCSRF(req)
}

func getPage(path string, cookies ...*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Accept", "text/html")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

// uploadFile describes the image part of a multipart upload.
type uploadFile struct {
	Name        string
	ContentType string
	Content     []byte
}

func newUploadRequest(t *testing.T, fields map[string]string, file *uploadFile, cookies ...*http.Cookie) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if file != nil {
		hdr := make(textproto.MIMEHeader)
		hdr.Set("Content-Disposition", `form-data; name="image"; filename="`+file.Name+`"`)
		if file.ContentType != "" {
			hdr.Set("Content-Type", file.ContentType)
		}
		part, err := mw.CreatePart(hdr)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write(file.Content); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "text/html")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return withCSRF(req)
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}
