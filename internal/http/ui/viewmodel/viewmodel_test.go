package viewmodel

import (
	"html/template"
	"testing"

	"github.com/newsboard/newsboard/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavbar_MarksCurrentPage(t *testing.T) {
	items := Navbar("news")
	require.Len(t, items, 2)
	assert.Equal(t, "Upload", items[0].Label)
	assert.False(t, items[0].Active)
	assert.Equal(t, "/news", items[1].URL)
	assert.True(t, items[1].Active)

	// Navbar must not leak state between calls.
	assert.False(t, Navbar("upload")[1].Active)
}

func TestNewsCards(t *testing.T) {
	items := []model.NewsItem{
		{Title: "Remote", Image: "https://cdn/x.png", FileType: "image/png"},
		{Title: "Inline", Image: "AAAA", FileType: "image/jpeg"},
		{Title: "None"},
	}

	cards := NewsCards(items)
	require.Len(t, cards, 3)

	assert.Equal(t, "https://cdn/x.png", cards[0].ImageSrc)
	assert.True(t, cards[0].HasImage())
	assert.Equal(t, "data:image/jpeg;base64,AAAA", cards[1].ImageSrc)
	assert.False(t, cards[2].HasImage())
	assert.Equal(t, 2, cards[2].Index)
}

func TestNewsListResponse(t *testing.T) {
	resp := NewsListResponse(model.NewsList{
		Shape: model.NewsListShapeEnvelope,
		Items: []model.NewsItem{{Title: "A", Image: "BBBB", FileType: "image/gif"}},
	})
	assert.Equal(t, model.NewsListShapeEnvelope, resp.Shape)
	require.Len(t, resp.News, 1)
	assert.Equal(t, "data:image/gif;base64,BBBB", resp.News[0].ImageSrc)
	assert.Equal(t, model.ImageInline, resp.News[0].ImageKind)

	empty := NewsListResponse(model.NewsList{})
	assert.NotNil(t, empty.News)
}

func TestNewsCard_Src(t *testing.T) {
	inline := NewsCards([]model.NewsItem{{Image: "QUJD", FileType: "application/octet-stream"}})[0]
	assert.Equal(t, template.URL("data:application/octet-stream;base64,QUJD"), inline.Src())

	remote := NewsCards([]model.NewsItem{{Image: "https://cdn/x.png"}})[0]
	assert.Equal(t, "https://cdn/x.png", remote.Src())
}
