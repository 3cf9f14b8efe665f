package contentserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kahaaniverse/kahaani/internal/content"
	"github.com/kahaaniverse/kahaani/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := New(content.NewSampleProvider(), "", nil)
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestServer_Routes(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		path   string
		status int
	}{
		{content.CatalogPath, http.StatusOK},
		{content.BookPath("1"), http.StatusOK},
		{content.BookPath("404"), http.StatusNotFound},
		{"/books/book-1.yaml", http.StatusNotFound},
		{"/books/other.json", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tt.path)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestServer_RoundTripsThroughHTTPProvider(t *testing.T) {
	srv := newTestServer(t)
	p := content.NewHTTPProvider(srv.URL, nil)
	ctx := context.Background()

	catalog := p.GetCatalog(ctx)
	require.Len(t, catalog, 3)
	assert.Equal(t, "The Enchanted Chronicles", catalog[0].Title)

	want := content.SampleBooks()[2]
	got, ok := p.GetBookByID(ctx, want.ID)
	require.True(t, ok)
	assert.Equal(t, want.Title, got.Title)
	for _, lang := range domain.Languages() {
		assert.Equal(t, want.Bundle(lang).Pages, got.Bundle(lang).Pages, lang)
	}

	_, ok = p.GetBookByID(ctx, "missing")
	assert.False(t, ok)
}
