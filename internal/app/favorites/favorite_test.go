package favorites

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
)

func TestValidateNormalizes(t *testing.T) {
	f, err := Validate(Favorite{League: " ENG.1 ", TeamID: " 359 ", Name: "Arsenal"})
	require.NoError(t, err)
	assert.Equal(t, Favorite{League: "eng.1", TeamID: "359", Name: "Arsenal"}, f)
}

func TestValidateRejectsBadInput(t *testing.T) {
	cases := []Favorite{
		{League: "xfl", TeamID: "1"},
		{League: "nfl"},
		{League: "nfl", TeamID: "a b"},
		{League: "nfl", TeamID: "../etc"},
	}
	for _, f := range cases {
		_, err := Validate(f)
		assert.ErrorIs(t, err, ErrInvalidFavorite, "%+v", f)
	}
}

func TestValidateAllDedupesKeepingLast(t *testing.T) {
	out, err := ValidateAll([]Favorite{
		{League: "nfl", TeamID: "12", Name: "old"},
		{League: "nhl", TeamID: "1"},
		{League: "NFL", TeamID: "12", Name: "new"},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "new", out[0].Name)

	_, err = ValidateAll([]Favorite{{League: "nfl", TeamID: "1"}, {League: "?", TeamID: "2"}})
	assert.ErrorIs(t, err, ErrInvalidFavorite)
}

func TestLiveLeagues(t *testing.T) {
	r := Result{Games: []games.Game{
		{League: "nfl", Status: games.StatusInProgress},
		{League: "nfl", Status: games.StatusInProgress},
		{League: "eng.1", Status: games.StatusFinal},
		{League: "uefa.champions", Status: games.StatusInProgress},
	}}
	assert.Equal(t, []string{"nfl", "uefa.champions"}, r.LiveLeagues())
}

func TestUpsertAndWithout(t *testing.T) {
	favs := Upsert(nil, Favorite{League: "nfl", TeamID: "12"})
	favs = Upsert(favs, Favorite{League: "nfl", TeamID: "12", Name: "Chiefs"})
	require.Len(t, favs, 1)
	assert.Equal(t, "Chiefs", favs[0].Name)

	out, ok := Without(favs, "NFL", "12")
	assert.True(t, ok)
	assert.Empty(t, out)

	_, ok = Without(favs, "nfl", "99")
	assert.False(t, ok)
}
