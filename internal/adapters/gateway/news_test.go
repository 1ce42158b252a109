package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/newsboard/newsboard/internal/domain/model"
	apperrors "github.com/newsboard/newsboard/internal/errors"
	"github.com/newsboard/newsboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewsClient_List_Array(t *testing.T) {
	g := testutil.NewGatewayServer(t)
	g.Handle(http.MethodGet, "/news", http.StatusOK,
		`[{"title":"A","description":"d","image":"https://x/a.png","fileType":"image/png"}]`)

	c := NewNewsClient(NewsClientOptions{Endpoint: g.URLFor("/news")})
	list, err := c.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.NewsListShapeArray, list.Shape)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "A", list.Items[0].Title.String())

	reqs := g.Requests()
	require.Len(t, reqs, 1)
	assert.Empty(t, reqs[0].RawQuery)
	assert.Empty(t, reqs[0].Body)
}

func TestNewsClient_List_Envelope(t *testing.T) {
	g := testutil.NewGatewayServer(t)
	g.Handle(http.MethodGet, "/news", http.StatusOK, `{"news":[{"title":{"S":"Wrapped"}}]}`)

	c := NewNewsClient(NewsClientOptions{Endpoint: g.URLFor("/news")})
	list, err := c.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.NewsListShapeEnvelope, list.Shape)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Wrapped", list.Items[0].Title.String())
}

func TestNewsClient_List_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{}`, check: apperrors.IsUpstream},
		{name: "not json", status: http.StatusOK, body: `<html>`, check: apperrors.IsMalformed},
		{name: "object without news", status: http.StatusOK, body: `{"items":[]}`, check: apperrors.IsMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.NewGatewayServer(t)
			g.Handle(http.MethodGet, "/news", tt.status, tt.body)

			c := NewNewsClient(NewsClientOptions{Endpoint: g.URLFor("/news")})
			_, err := c.List(context.Background())
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error class: %v", err)
		})
	}
}

func TestNewsClient_List_WithQueryDecoder(t *testing.T) {
	g := testutil.NewGatewayServer(t)
	g.Handle(http.MethodGet, "/news", http.StatusOK, `{"data":{"items":[{"title":"Q"}]}}`)

	dec, err := NewQueryDecoder("data.items")
	require.NoError(t, err)

	c := NewNewsClient(NewsClientOptions{Endpoint: g.URLFor("/news"), Decoder: dec})
	list, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.NewsListShapeQuery, list.Shape)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Q", list.Items[0].Title.String())
}

func TestNewsClient_Create(t *testing.T) {
	g := testutil.NewGatewayServer(t)
	g.Handle(http.MethodPost, "/news", http.StatusCreated, `{"message":"created"}`)

	c := NewNewsClient(NewsClientOptions{Endpoint: g.URLFor("/news")})
	err := c.Create(context.Background(), model.CreateNewsRequest{
		Title:       "T",
		Description: "D",
		Image:       "AAEC",
		FileName:    "a.png",
		FileType:    "image/png",
		Email:       "a@b.c",
	})
	require.NoError(t, err)

	reqs := g.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, "application/json", reqs[0].ContentType)

	var body map[string]string
	reqs[0].DecodeBody(t, &body)
	assert.Equal(t, map[string]string{
		"title":       "T",
		"description": "D",
		"image":       "AAEC",
		"fileName":    "a.png",
		"fileType":    "image/png",
		"email":       "a@b.c",
	}, body)
}

func TestNewsClient_Create_Rejected(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		reason string
	}{
		{name: "with error text", body: `{"error":"Image too large"}`, reason: "Image too large"},
		{name: "without error text", body: `{}`, reason: ""},
		{name: "non json", body: `oops`, reason: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.NewGatewayServer(t)
			g.Handle(http.MethodPost, "/news", http.StatusBadRequest, tt.body)

			c := NewNewsClient(NewsClientOptions{Endpoint: g.URLFor("/news")})
			err := c.Create(context.Background(), model.CreateNewsRequest{Title: "T"})
			require.Error(t, err)
			assert.True(t, apperrors.IsUpstream(err))

			var rej *model.GatewayRejection
			require.True(t, errors.As(err, &rej))
			assert.Equal(t, http.StatusBadRequest, rej.StatusCode)
			assert.Equal(t, tt.reason, rej.Reason)
		})
	}
}

func TestNewsClient_EndpointNotConfigured(t *testing.T) {
	c := NewNewsClient(NewsClientOptions{})

	_, err := c.List(context.Background())
	require.ErrorIs(t, err, ErrEndpointNotConfigured)

	err = c.Create(context.Background(), model.CreateNewsRequest{})
	require.ErrorIs(t, err, ErrEndpointNotConfigured)
	assert.Contains(t, err.Error(), "API endpoint is not configured")
}

func TestNewsClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	c := NewNewsClient(NewsClientOptions{Endpoint: srv.URL, Config: Config{Timeout: 20 * time.Millisecond}})
	_, err := c.List(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsTimeout(err), "expected timeout, got %v", err)
}

func TestNewsClient_Canceled(t *testing.T) {
	g := testutil.NewGatewayServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewNewsClient(NewsClientOptions{Endpoint: g.URLFor("/news")})
	_, err := c.List(ctx)
	require.Error(t, err)
	assert.True(t, apperrors.IsCanceled(err))
}
