package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
	"github.com/preston-bernstein/sports-scores-service/internal/teststubs"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

func ucl(t *testing.T) leagues.League {
	t.Helper()
	l, ok := leagues.Lookup("uefa.champions")
	require.True(t, ok)
	return l
}

func TestFallbackPrefersQualifyingCodeWhenItHasGames(t *testing.T) {
	stub := &teststubs.StubProvider{Scoreboards: map[string][]games.Game{
		"uefa.champions_qual": {{ID: "q1", League: "uefa.champions_qual"}},
		"uefa.champions":      {{ID: "m1"}},
	}}
	rec := metrics.NewRecorder()
	p := NewFallbackProvider(stub, rec, nil)

	gs, err := p.FetchScoreboard(context.Background(), ucl(t), timeutil.DateRange{})
	require.NoError(t, err)
	require.Len(t, gs, 1)
	assert.Equal(t, "q1", gs[0].ID)
	assert.Equal(t, "uefa.champions", gs[0].League, "alternate results keep the main league key")
	assert.Equal(t, 1, rec.Fallbacks("uefa.champions"))
	assert.Equal(t, []string{"uefa.champions_qual"}, stub.Requested())
}

func TestFallbackMovesOnFromEmptyAndErrors(t *testing.T) {
	stub := &teststubs.StubProvider{
		ScoreboardErr: map[string]error{"uefa.champions_qual": errors.New("boom")},
		Scoreboards:   map[string][]games.Game{"uefa.champions": {{ID: "m1"}}},
	}
	rec := metrics.NewRecorder()
	gs, err := NewFallbackProvider(stub, rec, nil).FetchScoreboard(context.Background(), ucl(t), timeutil.DateRange{})
	require.NoError(t, err)
	require.Len(t, gs, 1)
	assert.Equal(t, "m1", gs[0].ID)
	assert.Zero(t, rec.Fallbacks("uefa.champions"))
}

func TestFallbackAllEmptyReturnsEmptySlice(t *testing.T) {
	stub := &teststubs.StubProvider{
		ScoreboardErr: map[string]error{"uefa.champions_qual": errors.New("boom")},
		Scoreboards:   map[string][]games.Game{"uefa.champions": {}},
	}
	gs, err := NewFallbackProvider(stub, nil, nil).FetchScoreboard(context.Background(), ucl(t), timeutil.DateRange{})
	require.NoError(t, err)
	assert.NotNil(t, gs)
	assert.Empty(t, gs)
}

func TestFallbackAllErrorsReturnsLastError(t *testing.T) {
	last := errors.New("main down")
	stub := &teststubs.StubProvider{ScoreboardErr: map[string]error{
		"uefa.champions_qual": errors.New("qual down"),
		"uefa.champions":      last,
	}}
	_, err := NewFallbackProvider(stub, nil, nil).FetchScoreboard(context.Background(), ucl(t), timeutil.DateRange{})
	assert.ErrorIs(t, err, last)
}

func TestFallbackSingleCodePassesThrough(t *testing.T) {
	stub := &teststubs.StubProvider{Games: []games.Game{{ID: "n1"}}}
	gs, err := NewFallbackProvider(stub, nil, nil).FetchScoreboard(context.Background(), nfl, timeutil.DateRange{})
	require.NoError(t, err)
	assert.Len(t, gs, 1)
	assert.Equal(t, []string{"nfl"}, stub.Requested())
}
