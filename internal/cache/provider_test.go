package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/preston-bernstein/sports-scores-service/internal/config"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/teams"
	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
	"github.com/preston-bernstein/sports-scores-service/internal/teststubs"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

var testTTL = config.CacheConfig{
	ScoreboardLiveTTL: 15 * time.Second,
	ScoreboardTTL:     5 * time.Minute,
	StandingsTTL:      30 * time.Minute,
	TeamTTL:           time.Hour,
	RosterTTL:         time.Hour,
}

func nfl(t *testing.T) leagues.League {
	t.Helper()
	l, ok := leagues.Lookup("nfl")
	require.True(t, ok)
	return l
}

func TestProviderScoreboardUsesLiveTTLWhileLive(t *testing.T) {
	clock := newClock()
	stub := &teststubs.StubProvider{Games: []games.Game{{ID: "1", Status: games.StatusInProgress}}}
	p := NewProvider(stub, testTTL, metrics.NewRecorder(), WithClock(clock.Now))
	day := timeutil.Day(clock.Now())

	_, err := p.FetchScoreboard(context.Background(), nfl(t), day)
	require.NoError(t, err)
	_, _ = p.FetchScoreboard(context.Background(), nfl(t), day)
	assert.Equal(t, int32(1), stub.Calls.Load())

	clock.Advance(16 * time.Second)
	_, _ = p.FetchScoreboard(context.Background(), nfl(t), day)
	assert.Equal(t, int32(2), stub.Calls.Load(), "live scoreboards refresh after the live ttl")
}

func TestProviderScoreboardLongTTLWhenQuiet(t *testing.T) {
	clock := newClock()
	stub := &teststubs.StubProvider{Games: []games.Game{
		{ID: "1", Status: games.StatusFinal},
		{ID: "2", Status: games.StatusScheduled, StartTime: clock.Now().Add(3 * time.Hour)},
	}}
	p := NewProvider(stub, testTTL, nil, WithClock(clock.Now))
	day := timeutil.Day(clock.Now())

	_, _ = p.FetchScoreboard(context.Background(), nfl(t), day)
	clock.Advance(time.Minute)
	_, _ = p.FetchScoreboard(context.Background(), nfl(t), day)
	assert.Equal(t, int32(1), stub.Calls.Load())
}

func TestProviderScoreboardShortTTLBeforeKickoff(t *testing.T) {
	clock := newClock()
	stub := &teststubs.StubProvider{Games: []games.Game{
		{ID: "2", Status: games.StatusScheduled, StartTime: clock.Now().Add(2 * time.Minute)},
	}}
	p := NewProvider(stub, testTTL, nil, WithClock(clock.Now))
	day := timeutil.Day(clock.Now())

	_, _ = p.FetchScoreboard(context.Background(), nfl(t), day)
	clock.Advance(20 * time.Second)
	_, _ = p.FetchScoreboard(context.Background(), nfl(t), day)
	assert.Equal(t, int32(2), stub.Calls.Load())
}

func TestProviderReturnsCopies(t *testing.T) {
	stub := &teststubs.StubProvider{Games: []games.Game{{ID: "1"}, {ID: "2"}}}
	p := NewProvider(stub, testTTL, nil)
	day := timeutil.Day(time.Now())

	first, err := p.FetchScoreboard(context.Background(), nfl(t), day)
	require.NoError(t, err)
	first[0].ID = "mutated"

	second, _ := p.FetchScoreboard(context.Background(), nfl(t), day)
	assert.Equal(t, "1", second[0].ID)
}

func TestProviderInvalidateAndErrors(t *testing.T) {
	stub := &teststubs.StubProvider{Games: []games.Game{{ID: "1"}}}
	p := NewProvider(stub, testTTL, nil)
	day := timeutil.Day(time.Now())

	_, _ = p.FetchScoreboard(context.Background(), nfl(t), day)
	p.Invalidate("nfl", day)
	_, _ = p.FetchScoreboard(context.Background(), nfl(t), day)
	assert.Equal(t, int32(2), stub.Calls.Load())

	stub.TableErr = teststubs.ErrStubNotFound
	_, err := p.FetchStandings(context.Background(), nfl(t), "")
	require.ErrorIs(t, err, teststubs.ErrStubNotFound)
}

func TestProviderCachesTeamResources(t *testing.T) {
	stub := &teststubs.StubProvider{Team: teams.Team{ID: "12"}}
	p := NewProvider(stub, testTTL, nil)

	for i := 0; i < 2; i++ {
		_, err := p.FetchTeam(context.Background(), nfl(t), "12")
		require.NoError(t, err)
		_, err = p.FetchRoster(context.Background(), nfl(t), "12")
		require.NoError(t, err)
	}
	assert.Equal(t, int32(2), stub.Calls.Load())
}
