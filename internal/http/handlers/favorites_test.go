package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/preston-bernstein/sports-scores-service/internal/app/favorites"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/testutil"
)

func TestAddListDeleteFavorites(t *testing.T) {
	f := newFixture(nil)
	f.store.SetLatest(favorites.Result{Date: "2024-03-12"})

	rr := serve(f.handler.AddFavorite, http.MethodPost, "/favorites", "/favorites",
		strings.NewReader(`{"league":"NFL","teamId":"12","name":"Chiefs"}`))
	testutil.AssertStatus(t, rr, http.StatusCreated)
	var added favorites.Favorite
	testutil.DecodeJSON(t, rr, &added)
	if added.League != "nfl" {
		t.Fatalf("expected normalized league, got %+v", added)
	}
	if _, ok := f.store.Latest(); ok {
		t.Fatalf("expected latest aggregation invalidated")
	}

	rr = serve(f.handler.ListFavorites, http.MethodGet, "/favorites", "/favorites", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var list favoritesResponse
	testutil.DecodeJSON(t, rr, &list)
	if len(list.Favorites) != 1 || list.Favorites[0].TeamID != "12" {
		t.Fatalf("unexpected favorites %+v", list)
	}

	rr = serve(f.handler.DeleteFavorite, http.MethodDelete, "/favorites/{league}/{teamID}", "/favorites/nfl/12", nil)
	testutil.AssertStatus(t, rr, http.StatusNoContent)

	rr = serve(f.handler.DeleteFavorite, http.MethodDelete, "/favorites/{league}/{teamID}", "/favorites/nfl/12", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestListFavoritesEmptyIsArray(t *testing.T) {
	f := newFixture(nil)
	rr := serve(f.handler.ListFavorites, http.MethodGet, "/favorites", "/favorites", nil)
	if !strings.Contains(rr.Body.String(), `"favorites":[]`) {
		t.Fatalf("expected empty array, got %s", rr.Body.String())
	}
}

func TestAddFavoriteRejectsBadInput(t *testing.T) {
	f := newFixture(nil)
	cases := []string{
		`not json`,
		`{"league":"xfl","teamId":"1"}`,
		`{"league":"nfl","teamId":"a b"}`,
		`{"league":"nfl","teamId":"1","extra":true}`,
	}
	for _, body := range cases {
		rr := serve(f.handler.AddFavorite, http.MethodPost, "/favorites", "/favorites", strings.NewReader(body))
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, rr.Code)
		}
	}
}

func TestReplaceFavorites(t *testing.T) {
	f := newFixture(nil)
	body := `[{"league":"eng.1","teamId":"359"},{"league":"nhl","teamId":"1"},{"league":"eng.1","teamId":"359","name":"Arsenal"}]`
	rr := serve(f.handler.ReplaceFavorites, http.MethodPut, "/favorites", "/favorites", strings.NewReader(body))
	testutil.AssertStatus(t, rr, http.StatusOK)

	favs, _ := f.store.List()
	if len(favs) != 2 || favs[0].Name != "Arsenal" {
		t.Fatalf("expected deduped favorites, got %+v", favs)
	}

	rr = serve(f.handler.ReplaceFavorites, http.MethodPut, "/favorites", "/favorites", strings.NewReader(`[{"league":""}]`))
	testutil.AssertStatus(t, rr, http.StatusBadRequest)
}

func TestFavoriteGames(t *testing.T) {
	f := newFixture(nil)
	rr := serve(f.handler.FavoriteGames, http.MethodGet, "/favorites/games", "/favorites/games", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	if !strings.Contains(rr.Body.String(), `"games":[]`) {
		t.Fatalf("expected empty games array, got %s", rr.Body.String())
	}

	f.store.SetLatest(favorites.Result{Date: "2024-03-12", Games: []games.Game{{ID: "g1", League: "nfl"}}})
	rr = serve(f.handler.FavoriteGames, http.MethodGet, "/favorites/games", "/favorites/games", nil)
	var res favorites.Result
	testutil.DecodeJSON(t, rr, &res)
	if res.Date != "2024-03-12" || len(res.Games) != 1 {
		t.Fatalf("unexpected result %+v", res)
	}

	rr = serve(f.handler.FavoriteGame, http.MethodGet, "/favorites/games/{gameID}", "/favorites/games/g1", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	rr = serve(f.handler.FavoriteGame, http.MethodGet, "/favorites/games/{gameID}", "/favorites/games/g2", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}
