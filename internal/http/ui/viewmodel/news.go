package viewmodel

import (
	"html/template"

	"github.com/newsboard/newsboard/internal/domain/model"
)

// NewsCard is the display form of one news item.
type NewsCard struct {
	Index       int
	Title       string
	Description string
	FileName    string
	ImageKind   model.ImageKind
	ImageSrc    string
}

// HasImage reports whether the card renders an img element.
func (c NewsCard) HasImage() bool { return c.ImageKind != model.ImageNone }

// Src is the img src value. Inline sources are data URIs built by
// model.ResolveImage and are emitted verbatim whatever their media type;
// remote sources still pass through the template URL filter.
func (c NewsCard) Src() any {
	if c.ImageKind == model.ImageInline {
		// #nosec G203 - a data URI in an img src is never executed.
		return template.URL(c.ImageSrc)
	}
	return c.ImageSrc
}

// NewsCards converts items in order. Cards are keyed by position since items carry no ID.
func NewsCards(items []model.NewsItem) []NewsCard {
	cards := make([]NewsCard, 0, len(items))
	for i, item := range items {
		img := item.ImageSource()
		cards = append(cards, NewsCard{
			Index:       i,
			Title:       item.Title.String(),
			Description: item.Description.String(),
			FileName:    item.FileName.String(),
			ImageKind:   img.Kind,
			ImageSrc:    img.Src,
		})
	}
	return cards
}

// NewsJSON is the flattened JSON form of one item served by /api/news.
type NewsJSON struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	FileName    string          `json:"fileName"`
	FileType    string          `json:"fileType"`
	ImageKind   model.ImageKind `json:"imageKind"`
	ImageSrc    string          `json:"imageSrc,omitempty"`
}

// NewsListJSON is the /api/news response body.
type NewsListJSON struct {
	News  []NewsJSON          `json:"news"`
	Shape model.NewsListShape `json:"shape"`
}

// NewsListResponse flattens a decoded list for JSON output.
func NewsListResponse(list model.NewsList) NewsListJSON {
	out := NewsListJSON{News: make([]NewsJSON, 0, len(list.Items)), Shape: list.Shape}
	for _, item := range list.Items {
		img := item.ImageSource()
		out.News = append(out.News, NewsJSON{
			Title:       item.Title.String(),
			Description: item.Description.String(),
			Image:       item.Image.String(),
			FileName:    item.FileName.String(),
			FileType:    item.FileType.String(),
			ImageKind:   img.Kind,
			ImageSrc:    img.Src,
		})
	}
	return out
}
