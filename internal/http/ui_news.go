package httpx

import (
	"net/http"

	"github.com/newsboard/newsboard/internal/http/ui/viewmodel"
	"github.com/newsboard/newsboard/internal/service"
)

var newsMeta = PageMeta{Title: "News", PageTitle: "News", CurrentPage: PageNews}

// NewsPage handles GET /news: one fetch per load, rendered as error, empty or cards.
func (h *UIHandlers) NewsPage(w http.ResponseWriter, r *http.Request) {
	b := NewTemplateData(r, newsMeta)

	list, err := h.News.List(r.Context())
	if err != nil {
		b.WithError(service.ListFailureMessage(err)).With("Cards", []viewmodel.NewsCard{})
	} else {
		b.With("Cards", viewmodel.NewsCards(list.Items))
	}

	h.renderPage(w, r, b.Build())
}

// APINews handles GET /api/news with the normalized item list as JSON.
func (h *UIHandlers) APINews(w http.ResponseWriter, r *http.Request) {
	list, err := h.News.List(r.Context())
	if err != nil {
		WriteError(w, APIError{
			Status:  http.StatusBadGateway,
			Code:    "news_unavailable",
			Message: service.ListFailureMessage(err),
		})
		return
	}
	WriteJSON(w, http.StatusOK, viewmodel.NewsListResponse(list))
}
