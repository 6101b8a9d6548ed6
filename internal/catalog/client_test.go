package catalog

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverURL string) *Client {
	return NewClient(serverURL, slog.New(slog.DiscardHandler))
}

func TestFetchGenres(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/genres", r.URL.Path)
		assert.Equal(t, "genre", r.URL.Query().Get("orderBy"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"abc123","genre":"Biography"},
			{"id":"def456","genre":"Mystery"}
		]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	genres, err := c.FetchGenres(context.Background())
	require.NoError(t, err)
	require.Len(t, genres, 2)
	assert.Equal(t, "abc123", genres[0].RemoteID)
	assert.Equal(t, "Biography", genres[0].Label)
	assert.Equal(t, "def456", genres[1].RemoteID)
	assert.Equal(t, "Mystery", genres[1].Label)
}

func TestFetchGenresSkipsEmptyIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[
			{"id":"","genre":"Orphaned"},
			{"id":"abc123","genre":"Mystery"}
		]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	genres, err := c.FetchGenres(context.Background())
	require.NoError(t, err)
	require.Len(t, genres, 1)
	assert.Equal(t, "abc123", genres[0].RemoteID)
}

func TestFetchGenresEmptyCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	genres, err := c.FetchGenres(context.Background())
	require.NoError(t, err)
	assert.Empty(t, genres)
}

func TestFetchGenresServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.FetchGenres(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestFetchGenresMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not":"a list"`))
	}))
	defer srv.Close()

	c := newTestClient(srv.URL)
	_, err := c.FetchGenres(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse response")
}

func TestFetchGenresCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newTestClient(srv.URL)
	_, err := c.FetchGenres(ctx)
	require.Error(t, err)
}
