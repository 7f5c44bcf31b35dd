package clip

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sharePage = `<!doctype html>
<html><head>
<title>ignored when og:title is set</title>
<meta property="og:title" content="  Best   movie scene ever ">
<meta property="og:description" content="#movie #cinema">
<meta property="og:image" content="https://cdn.example.com/cover.jpg">
</head><body></body></html>`

func TestParse_OpenGraph(t *testing.T) {
	p, err := Parse([]byte(sharePage), "https://tiktok.com/@u/video/1")
	require.NoError(t, err)

	assert.Equal(t, "https://tiktok.com/@u/video/1", p.URL)
	assert.Equal(t, "Best movie scene ever", p.Title)
	assert.Equal(t, "#movie #cinema", p.Description)
	assert.Equal(t, "https://cdn.example.com/cover.jpg", p.Image)
	assert.False(t, p.IsEmpty())
}

func TestParse_Fallbacks(t *testing.T) {
	html := `<html><head><title>Clip
	title</title><meta name="description" content="plain description"></head></html>`

	p, err := Parse([]byte(html), "u")
	require.NoError(t, err)

	assert.Equal(t, "Clip title", p.Title)
	assert.Equal(t, "plain description", p.Description)
	assert.Empty(t, p.Image)
}

func TestParse_NothingUseful(t *testing.T) {
	p, err := Parse([]byte(`<html><body>hi</body></html>`), "u")
	require.NoError(t, err)
	assert.True(t, p.IsEmpty())
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(sharePage))
	}))
	defer srv.Close()

	p, err := NewPreviewer(srv.Client(), nil).Fetch(context.Background(), srv.URL+"/@u/video/1")
	require.NoError(t, err)
	assert.Equal(t, "Best movie scene ever", p.Title)
	assert.Equal(t, srv.URL+"/@u/video/1", p.URL)
}

func TestFetch_NonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewPreviewer(srv.Client(), nil).Fetch(context.Background(), srv.URL)
	assert.Error(t, err)
}
