package httpx

import (
	"context"
	"html"
	"log/slog"
	"net/http"

	domainauth "github.com/newsboard/newsboard/internal/domain/auth"
	"github.com/newsboard/newsboard/internal/domain/model"
	"github.com/newsboard/newsboard/internal/http/ui/viewmodel"
	"github.com/newsboard/newsboard/internal/service"
)

// AuthServiceInterface defines the auth operations the HTTP layer needs.
type AuthServiceInterface interface {
	SessionLookup
	Authenticate(
		ctx context.Context,
		mode domainauth.Mode,
		creds domainauth.Credentials,
	) (*service.LoginResult, string, error)
	Logout(ctx context.Context, sessionID string) error
}

// NewsServiceInterface defines the news operations the HTTP layer needs.
type NewsServiceInterface interface {
	List(ctx context.Context) (model.NewsList, error)
	Upload(ctx context.Context, sub model.NewsSubmission) error
}

// Compile-time interface assertions.
var (
	_ AuthServiceInterface = (*service.AuthService)(nil)
	_ NewsServiceInterface = (*service.NewsService)(nil)
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T      *TemplateRenderer
	News   NewsServiceInterface
	IsDev  bool // Development mode flag for enhanced error reporting
	Logger *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// buildLayout constructs shared layout metadata from the request/session context.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
		Nav:         viewmodel.Navbar(meta.CurrentPage),
	}

	if session := GetSessionFromContext(r.Context()); session != nil {
		layout.User = &viewmodel.User{Email: session.Email}
		layout.IsAuthenticated = true
	}

	return layout
}

// basePageData constructs the common page data map with user context.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := buildLayout(r, meta)
	data := map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
		"Nav":             layout.Nav,
	}

	if layout.CSRFToken != "" {
		data["CSRFToken"] = layout.CSRFToken
	}
	if layout.User != nil {
		data["User"] = layout.User
	}

	return data
}

// renderPage renders a page with htmx partial support: htmx navigations get
// the content template plus a <title>, everything else gets the full layout.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if !WantsPartial(r) {
		if err := h.T.RenderFull(w, r, data); err != nil {
			h.logAndRenderTemplateError(w, r, err, "full page render")
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	SetHXTrigger(w, "nav:activate", map[string]string{"path": r.URL.Path})

	layout := extractLayoutInfo(data)
	if _, err := w.Write([]byte(`<title>` + html.EscapeString(layout.Title) + `</title>`)); err != nil {
		h.logger().Error("failed to write partial document title", "error", err)
		return
	}
	if err := h.T.RenderPartial(w, r, data); err != nil {
		h.logAndRenderTemplateError(w, r, err, "partial content render")
	}
}

func extractLayoutInfo(data any) viewmodel.Layout {
	if provider, ok := data.(viewmodel.LayoutProvider); ok {
		if layout := provider.LayoutData(); layout != nil {
			return *layout
		}
	}

	m, ok := data.(map[string]any)
	if !ok {
		return viewmodel.Layout{}
	}
	layout := viewmodel.Layout{}
	if v, titleOK := m["Title"].(string); titleOK {
		layout.Title = v
	}
	if v, pageTitleOK := m["PageTitle"].(string); pageTitleOK {
		layout.PageTitle = v
	}
	if v, currentPageOK := m["CurrentPage"].(string); currentPageOK {
		layout.CurrentPage = v
	}
	return layout
}

// logAndRenderTemplateError logs template errors and renders them in dev mode.
func (h *UIHandlers) logAndRenderTemplateError(w http.ResponseWriter, r *http.Request, err error, context string) {
	h.logger().Error("template rendering failed",
		"error", err,
		"context", context,
		"path", r.URL.Path,
		"method", r.Method,
	)

	if h.IsDev {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		body := `<pre class="template-error">` + html.EscapeString(context+": "+err.Error()) + `</pre>`
		if _, writeErr := w.Write([]byte(body)); writeErr != nil {
			h.logger().Error("failed to write template error response", "error", writeErr)
		}
		return
	}

	http.Error(w, "internal server error", http.StatusInternalServerError)
}
