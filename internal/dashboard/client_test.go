package dashboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/favorites/games", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"date":"2024-03-12","games":[{"id":"g1","league":"nfl","status":"IN_PROGRESS"}],"races":[],"partial":true}`))
	})
	mux.HandleFunc("/leagues", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"leagues":[{"key":"nfl","name":"NFL","sport":"football","kind":"team","provider":"espn"}]}`))
	})
	mux.HandleFunc("/leagues/nfl/scoreboard", func(w http.ResponseWriter, r *http.Request) {
		date := r.URL.Query().Get("date")
		_, _ = w.Write([]byte(`{"league":"nfl","range":{"start":"` + date + `","end":"` + date + `"},"games":[]}`))
	})
	mux.HandleFunc("/leagues/xfl/scoreboard", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"unknown league","requestId":"abc"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientFavoriteGames(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL+"/", nil)

	res, err := c.FavoriteGames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2024-03-12", res.Date)
	assert.True(t, res.Partial)
	require.Len(t, res.Games, 1)
	assert.True(t, res.Games[0].Status.IsLive())
}

func TestClientLeaguesAndScoreboard(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL, srv.Client())

	ls, err := c.Leagues(context.Background())
	require.NoError(t, err)
	require.Len(t, ls, 1)
	assert.Equal(t, "nfl", ls[0].Key)

	sb, err := c.Scoreboard(context.Background(), "nfl", "2024-03-12")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-12", sb.Range.Start)
	assert.Empty(t, sb.Games)
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	srv := newTestServer(t)
	c := NewClient(srv.URL, nil)

	_, err := c.Scoreboard(context.Background(), "xfl", "")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "unknown league", apiErr.Message)
	assert.Contains(t, err.Error(), "status 404")
}

func TestClientUnreachable(t *testing.T) {
	srv := newTestServer(t)
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, nil).Leagues(context.Background())
	require.Error(t, err)
}
