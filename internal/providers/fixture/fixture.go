package fixture

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/players"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/racing"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/teams"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

const providerName = "fixture"

// Provider serves deterministic data for every league, for local development
// and tests. Days before today are final, today's early game is live and
// later days are scheduled.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

var _ providers.DataProvider = (*Provider)(nil)

var teamsBySport = map[string][]teams.Team{
	"football": {
		{ID: "12", Name: "Chiefs", FullName: "Kansas City Chiefs", Abbreviation: "KC", Location: "Kansas City"},
		{ID: "2", Name: "Bills", FullName: "Buffalo Bills", Abbreviation: "BUF", Location: "Buffalo"},
		{ID: "21", Name: "Eagles", FullName: "Philadelphia Eagles", Abbreviation: "PHI", Location: "Philadelphia"},
		{ID: "9", Name: "Packers", FullName: "Green Bay Packers", Abbreviation: "GB", Location: "Green Bay"},
	},
	"baseball": {
		{ID: "10", Name: "Yankees", FullName: "New York Yankees", Abbreviation: "NYY", Location: "New York"},
		{ID: "2", Name: "Red Sox", FullName: "Boston Red Sox", Abbreviation: "BOS", Location: "Boston"},
		{ID: "19", Name: "Dodgers", FullName: "Los Angeles Dodgers", Abbreviation: "LAD", Location: "Los Angeles"},
		{ID: "26", Name: "Giants", FullName: "San Francisco Giants", Abbreviation: "SF", Location: "San Francisco"},
	},
	"hockey": {
		{ID: "1", Name: "Bruins", FullName: "Boston Bruins", Abbreviation: "BOS", Location: "Boston"},
		{ID: "10", Name: "Rangers", FullName: "New York Rangers", Abbreviation: "NYR", Location: "New York"},
		{ID: "21", Name: "Maple Leafs", FullName: "Toronto Maple Leafs", Abbreviation: "TOR", Location: "Toronto"},
		{ID: "6", Name: "Oilers", FullName: "Edmonton Oilers", Abbreviation: "EDM", Location: "Edmonton"},
	},
	"soccer": {
		{ID: "359", Name: "Arsenal", FullName: "Arsenal", Abbreviation: "ARS", Location: "London"},
		{ID: "364", Name: "Liverpool", FullName: "Liverpool", Abbreviation: "LIV", Location: "Liverpool"},
		{ID: "86", Name: "Real Madrid", FullName: "Real Madrid", Abbreviation: "RMA", Location: "Madrid"},
		{ID: "83", Name: "Barcelona", FullName: "Barcelona", Abbreviation: "BAR", Location: "Barcelona"},
	},
}

func (p *Provider) teamsFor(league leagues.League) []teams.Team {
	base := teamsBySport[league.Sport]
	out := make([]teams.Team, len(base))
	for i, t := range base {
		t.League = league.Key
		out[i] = t
	}
	return out
}

func (p *Provider) today() time.Time {
	y, m, d := p.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FetchScoreboard returns two games per day in r.
func (p *Provider) FetchScoreboard(ctx context.Context, league leagues.League, r timeutil.DateRange) ([]games.Game, error) {
	_ = ctx
	if league.IsRacing() {
		return nil, fmt.Errorf("fixture: scoreboard for %s: %w", league.Key, providers.ErrUnsupported)
	}
	var out []games.Game
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		out = append(out, p.gamesOn(league, d)...)
	}
	return out, nil
}

func (p *Provider) gamesOn(league leagues.League, day time.Time) []games.Game {
	ts := p.teamsFor(league)
	if len(ts) < 4 {
		return nil
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	seed := day.YearDay()

	first := p.game(league, day, "a", ts[0], ts[1], day.Add(18*time.Hour), seed)
	second := p.game(league, day, "b", ts[2], ts[3], day.Add(21*time.Hour), seed+1)
	if league.UEFA {
		first.Meta.Round, first.Meta.Leg = "Round of 16", 1
		second = p.game(league, day, "b", ts[1], ts[0], day.Add(21*time.Hour), seed+2)
		second.Meta.Round, second.Meta.Leg = "Round of 16", 2
	}
	return []games.Game{first, second}
}

func (p *Provider) game(league leagues.League, day time.Time, slot string, home, away teams.Team, start time.Time, seed int) games.Game {
	g := games.Game{
		ID:        fmt.Sprintf("fixture-%s-%s-%s", strings.ReplaceAll(league.Key, ".", "_"), timeutil.ESPNDate(day), slot),
		League:    league.Key,
		Provider:  providerName,
		Name:      away.FullName + " at " + home.FullName,
		HomeTeam:  home,
		AwayTeam:  away,
		StartTime: start,
		Status:    games.StatusScheduled,
		Meta:      games.GameMeta{Season: fmt.Sprint(day.Year())},
	}
	today := p.today()
	switch {
	case day.Before(today):
		g.Status = games.StatusFinal
		g.Score = games.Score{Home: seed % 4, Away: (seed / 4) % 3}
		g.Detail.Description = "Final"
	case day.Equal(today) && slot == "a":
		g.Status = games.StatusInProgress
		g.Score = games.Score{Home: 1, Away: 0}
		g.Detail = games.Detail{Clock: "12:00", Period: 2, Description: "12:00 - 2nd"}
	}
	return g
}

// FetchStandings returns a single table of the league's fixture teams.
func (p *Provider) FetchStandings(ctx context.Context, league leagues.League, season string) (standings.Table, error) {
	_ = ctx
	if league.IsRacing() {
		return standings.Table{}, fmt.Errorf("fixture: standings for %s: %w", league.Key, providers.ErrUnsupported)
	}
	if season == "" {
		season = fmt.Sprint(p.today().Year())
	}
	group := standings.Group{Name: league.Name}
	for i, t := range p.teamsFor(league) {
		wins := 10 - 2*i
		group.Entries = append(group.Entries, standings.Entry{
			Rank:        i + 1,
			Team:        t,
			Wins:        wins,
			Losses:      2 * i,
			GamesPlayed: 10,
			Points:      3 * wins,
		})
	}
	return standings.Table{League: league.Key, Season: season, Groups: []standings.Group{group}}, nil
}

// FetchTeam returns a fixture team by ID.
func (p *Provider) FetchTeam(ctx context.Context, league leagues.League, teamID string) (teams.Team, error) {
	_ = ctx
	for _, t := range p.teamsFor(league) {
		if t.ID == teamID {
			t.Logos = []teams.Logo{{Href: "https://example.test/" + teamID + ".png", Rel: []string{"default"}}}
			return t, nil
		}
	}
	return teams.Team{}, fmt.Errorf("fixture: team %s: %w", teamID, providers.ErrNotFound)
}

// FetchTeamSchedule returns the team's games from a week ago to a week ahead.
func (p *Provider) FetchTeamSchedule(ctx context.Context, league leagues.League, teamID string) ([]games.Game, error) {
	if _, err := p.FetchTeam(ctx, league, teamID); err != nil {
		return nil, err
	}
	today := p.today()
	all, err := p.FetchScoreboard(ctx, league, timeutil.DateRange{Start: today.AddDate(0, 0, -7), End: today.AddDate(0, 0, 7)})
	if err != nil {
		return nil, err
	}
	out := make([]games.Game, 0, len(all))
	for _, g := range all {
		if g.Involves(teamID) {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

// FetchRoster returns three players for any known team.
func (p *Provider) FetchRoster(ctx context.Context, league leagues.League, teamID string) ([]players.Player, error) {
	team, err := p.FetchTeam(ctx, league, teamID)
	if err != nil {
		return nil, err
	}
	names := []string{"Jane Doe", "John Smith", "Alex Rivera"}
	out := make([]players.Player, 0, len(names))
	for i, n := range names {
		out = append(out, players.Player{
			ID:       fmt.Sprintf("%s-%d", teamID, i+1),
			FullName: n,
			Jersey:   fmt.Sprint(i + 1),
			Team:     team,
		})
	}
	return out, nil
}

// FetchGame finds a game generated within a week of today.
func (p *Provider) FetchGame(ctx context.Context, league leagues.League, gameID string) (games.Game, error) {
	today := p.today()
	all, err := p.FetchScoreboard(ctx, league, timeutil.DateRange{Start: today.AddDate(0, 0, -7), End: today.AddDate(0, 0, 7)})
	if err != nil {
		return games.Game{}, err
	}
	for _, g := range all {
		if g.ID == gameID {
			return g, nil
		}
	}
	return games.Game{}, fmt.Errorf("fixture: game %s: %w", gameID, providers.ErrNotFound)
}

// FetchRaces returns one race weekend for every Sunday in r.
func (p *Provider) FetchRaces(ctx context.Context, r timeutil.DateRange) ([]racing.Event, error) {
	_ = ctx
	var out []racing.Event
	today := p.today()
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Sunday {
			continue
		}
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		status := string(games.StatusScheduled)
		if day.Before(today) {
			status = string(games.StatusFinal)
		}
		race := racing.Session{Name: "Race", StartTime: day.Add(13 * time.Hour), Status: status}
		if status == string(games.StatusFinal) {
			race.Results = []racing.Result{
				{Position: 1, Driver: "Max Verstappen", Team: "Red Bull"},
				{Position: 2, Driver: "Lando Norris", Team: "McLaren"},
			}
		}
		out = append(out, racing.Event{
			ID:        "fixture-f1-" + timeutil.ESPNDate(day),
			Name:      "Fixture Grand Prix",
			Season:    fmt.Sprint(day.Year()),
			Circuit:   "Fixture Circuit",
			StartTime: day.AddDate(0, 0, -2).Add(11 * time.Hour),
			Status:    status,
			Sessions: []racing.Session{
				{Name: "Qual", StartTime: day.AddDate(0, 0, -1).Add(14 * time.Hour), Status: status},
				race,
			},
		})
	}
	return out, nil
}
