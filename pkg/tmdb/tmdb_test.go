package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("rejects a uri without scheme", func(t *testing.T) {
		_, err := New("api.themoviedb.org", "key")
		assert.Error(t, err)
	})

	t.Run("accepts a full uri", func(t *testing.T) {
		c, err := New("https://api.themoviedb.org", "key")
		require.NoError(t, err)
		assert.NotNil(t, c)
	})
}

func TestClient_SearchTV(t *testing.T) {
	t.Run("decodes results and sends auth", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/3/search/tv", r.URL.Path)
			assert.Equal(t, "game of thrones", r.URL.Query().Get("query"))
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

			w.Write([]byte(`{"page":1,"results":[{"id":1399,"name":"Game of Thrones","first_air_date":"2011-04-17"}],"total_results":1}`))
		}))
		defer server.Close()

		c, err := New(server.URL, "test-key", WithHTTPClient(server.Client()))
		require.NoError(t, err)

		res, err := c.SearchTV(context.Background(), "game of thrones")
		require.NoError(t, err)
		require.Len(t, res.Results, 1)
		assert.Equal(t, 1399, *res.Results[0].ID)
		assert.Equal(t, "Game of Thrones", *res.Results[0].Name)
	})

	t.Run("empty query is rejected without a request", func(t *testing.T) {
		c, err := New("https://api.themoviedb.org", "key")
		require.NoError(t, err)

		_, err = c.SearchTV(context.Background(), "")
		assert.Error(t, err)
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusUnauthorized)
		}))
		defer server.Close()

		c, err := New(server.URL, "bad-key", WithHTTPClient(server.Client()))
		require.NoError(t, err)

		_, err = c.SearchTV(context.Background(), "anything")
		assert.Error(t, err)
	})
}

func TestClient_Details(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/3/tv/1399":
			w.Write([]byte(`{"id":1399,"name":"Game of Thrones","number_of_seasons":8}`))
		case "/3/tv/1399/season/1":
			w.Write([]byte(`{"season_number":1,"episodes":[{"episode_number":1,"name":"Winter Is Coming","air_date":"2011-04-17"}]}`))
		case "/3/tv/1399/season/1/episode/1":
			w.Write([]byte(`{"name":"Winter Is Coming","episode_number":1,"season_number":1,"air_date":"2011-04-17"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c, err := New(server.URL, "test-key", WithHTTPClient(server.Client()))
	require.NoError(t, err)

	ctx := context.Background()

	series, err := c.SeriesDetails(ctx, 1399)
	require.NoError(t, err)
	assert.Equal(t, "Game of Thrones", *series.Name)
	assert.Equal(t, 8, *series.NumberOfSeasons)

	season, err := c.SeasonDetails(ctx, 1399, 1)
	require.NoError(t, err)
	require.Len(t, season.Episodes, 1)
	assert.Equal(t, 1, *season.Episodes[0].EpisodeNumber)

	episode, err := c.EpisodeDetails(ctx, 1399, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "Winter Is Coming", *episode.Name)

	_, err = c.EpisodeDetails(ctx, 1399, 1, 99)
	assert.Error(t, err)
}
