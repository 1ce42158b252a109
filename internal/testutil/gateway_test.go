package testutil

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayServer_RecordsAndReplies(t *testing.T) {
	g := NewGatewayServer(t)
	g.Handle(http.MethodPost, "/news", http.StatusCreated, `{"ok":true}`)

	resp, err := http.Post(g.URLFor("/news"), "application/json", strings.NewReader(`{"title":"x"}`))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.JSONEq(t, `{"ok":true}`, string(body))

	reqs := g.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/news", reqs[0].Path)
	assert.Equal(t, "application/json", reqs[0].ContentType)

	var decoded map[string]string
	reqs[0].DecodeBody(t, &decoded)
	assert.Equal(t, "x", decoded["title"])
}

func TestGatewayServer_UnknownRoute(t *testing.T) {
	g := NewGatewayServer(t)

	resp, err := http.Get(g.URLFor("/missing"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestEnvBool(t *testing.T) {
	t.Setenv("NEWSBOARD_TEST_FLAG", "Yes")
	assert.True(t, envBool("NEWSBOARD_TEST_FLAG"))
	t.Setenv("NEWSBOARD_TEST_FLAG", "0")
	assert.False(t, envBool("NEWSBOARD_TEST_FLAG"))
}
