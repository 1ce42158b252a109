package httpx

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	newsboard "github.com/newsboard/newsboard"
)

// RouterServices holds everything the HTTP router needs.
type RouterServices struct {
	Auth           AuthServiceInterface
	News           NewsServiceInterface
	CookieDomain   string
	UploadMaxBytes int64
	HealthChecks   []HealthCheck
	IsDev          bool         // Serve templates and static files from disk
	Logger         *slog.Logger // Logger for template and HTTP errors (optional)
	// TemplateFS and StaticFS override the embedded or on-disk trees (tests).
	TemplateFS fs.FS
	StaticFS   fs.FS
}

// NewRouter creates the HTTP handler for every page, form and JSON route.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.Auth == nil || services.News == nil {
		return nil, errors.New("router requires auth and news services")
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	templateFS, staticFS, err := resolveAssetFS(services)
	if err != nil {
		return nil, err
	}

	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		DevMode:    services.IsDev,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create template renderer: %w", err)
	}

	ui := &UIHandlers{T: tr, News: services.News, IsDev: services.IsDev, Logger: logger}
	auth := &AuthHandlers{Svc: services.Auth, UI: ui, CookieDomain: services.CookieDomain, Logger: logger}

	mux := http.NewServeMux()
	registerUIRoutes(mux, ui)
	registerAuthRoutes(mux, auth)

	health := healthHandler(services.HealthChecks, logger)
	mux.Handle("GET /healthz", health)
	mux.Handle("HEAD /healthz", health)
	mux.Handle("GET /static/", staticHandler(staticFS, services.IsDev))
	mux.HandleFunc("/", ui.NotFound)

	maxBody := services.UploadMaxBytes
	if maxBody <= 0 {
		maxBody = defaultUploadMax
	}

	// Order: BrowserDetection -> LimitBody -> CSRF -> OptionalAuth -> mux
	var h http.Handler = mux
	h = OptionalAuth(services.Auth)(h)
	h = CSRFProtection(CSRFConfig{
		CookieDomain: services.CookieDomain,
		BodyTooLarge: OptionalAuth(services.Auth)(http.HandlerFunc(ui.BodyTooLarge)),
	})(h)
	h = LimitBody(maxBody)(h)
	h = BrowserDetection()(h)
	return h, nil
}

func registerUIRoutes(mux *http.ServeMux, ui *UIHandlers) {
	mux.HandleFunc("GET /{$}", ui.Home)
	mux.Handle("POST /upload", RequireAuthBrowser()(http.HandlerFunc(ui.Upload)))
	mux.HandleFunc("GET /news", ui.NewsPage)
	mux.HandleFunc("GET /api/news", ui.APINews)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("POST /auth/login", h.Login)
	mux.HandleFunc("POST /auth/signup", h.Signup)
	mux.HandleFunc("POST /auth/logout", h.Logout)
	mux.HandleFunc("GET /auth/status", h.Status)
}

// resolveAssetFS picks template and static trees: explicit overrides first,
// then disk in dev mode, then the embedded copies.
func resolveAssetFS(services RouterServices) (fs.FS, fs.FS, error) {
	templateFS, staticFS := services.TemplateFS, services.StaticFS

	if services.IsDev {
		if templateFS == nil {
			templateFS = os.DirFS(TemplatePathFromRoot)
		}
		if staticFS == nil {
			staticFS = os.DirFS("frontend/static")
		}
		return templateFS, staticFS, nil
	}

	if templateFS == nil {
		sub, err := fs.Sub(newsboard.TemplateFS, TemplatePathFromRoot)
		if err != nil {
			return nil, nil, fmt.Errorf("open embedded templates: %w", err)
		}
		templateFS = sub
	}
	if staticFS == nil {
		sub, err := fs.Sub(newsboard.StaticFS, "frontend/static")
		if err != nil {
			return nil, nil, fmt.Errorf("open embedded static files: %w", err)
		}
		staticFS = sub
	}
	return templateFS, staticFS, nil
}

// staticHandler serves /static/*. Embedded assets change only with a deploy,
// so they get a short public cache; dev assets are never cached.
func staticHandler(fsys fs.FS, isDev bool) http.Handler {
	files := http.StripPrefix("/static/", http.FileServer(http.FS(fsys)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isDev {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		files.ServeHTTP(w, r)
	})
}
