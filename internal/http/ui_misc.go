package httpx

import "net/http"

// NotFound answers unmatched routes. Browsers get the HTML error page,
// API clients a JSON error.
func (h *UIHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if IsBrowserRequest(r) {
		h.renderBrowserNotFound(w, r)
		return
	}
	WriteError(w, APIError{Status: http.StatusNotFound, Code: "not_found", Message: "not found"})
}

func (h *UIHandlers) renderBrowserNotFound(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(r, PageMeta{Title: "Not found", PageTitle: "Page not found", CurrentPage: PageError}).
		WithError("The page you requested does not exist.").
		Build()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if h.T == nil {
		_, _ = w.Write([]byte("Page not found"))
		return
	}
	if err := h.T.RenderError(w, r, data); err != nil {
		h.logger().Error("failed to render not found page", "error", err, "path", r.URL.Path)
	}
}
