package leagues

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupIsCaseInsensitive(t *testing.T) {
	l, ok := Lookup(" NFL ")
	require.True(t, ok)
	assert.Equal(t, "football", l.Sport)
	assert.Equal(t, "football/nfl", l.Path(""))

	_, ok = Lookup("nba")
	assert.False(t, ok)
}

func TestUEFACompetitionsTryQualifyingFirst(t *testing.T) {
	l, ok := Lookup("uefa.champions")
	require.True(t, ok)
	assert.True(t, l.UEFA)
	assert.Equal(t, []string{"uefa.champions_qual", "uefa.champions"}, l.Codes())
	assert.Equal(t, "soccer/uefa.champions_qual", l.Path("uefa.champions_qual"))
}

func TestCompetitionsForSoccerLeague(t *testing.T) {
	comps := Competitions("eng.1")
	keys := make([]string, 0, len(comps))
	for _, c := range comps {
		keys = append(keys, c.Key)
	}
	assert.Equal(t, []string{
		"eng.1", "eng.fa", "eng.league_cup",
		"uefa.champions", "uefa.europa", "uefa.europa.conf",
	}, keys)
}

func TestCompetitionsForNonSoccer(t *testing.T) {
	comps := Competitions("mlb")
	require.Len(t, comps, 1)
	assert.Equal(t, ProviderMLBStats, comps[0].Provider)

	assert.Len(t, Competitions("uefa.europa"), 1)
	assert.Nil(t, Competitions("unknown"))
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0].Key = "mutated"
	l, ok := Lookup("nfl")
	require.True(t, ok)
	assert.Equal(t, "nfl", l.Key)
	assert.Equal(t, "soccer", SportFamily("usa.1"))
	assert.Equal(t, "", SportFamily("nope"))
}

func TestResolveUnknownLeague(t *testing.T) {
	_, err := Resolve("xfl")
	require.ErrorIs(t, err, ErrUnknownLeague)

	l, err := Resolve(" NHL ")
	require.NoError(t, err)
	assert.Equal(t, "nhl", l.Key)
}
