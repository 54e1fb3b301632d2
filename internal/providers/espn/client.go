package espn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
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

// Config controls how the ESPN client reaches the upstream API.
type Config struct {
	SiteBaseURL      string
	StandingsBaseURL string
	HTTPClient       *http.Client
	Limit            int
}

// Client fetches scoreboards, standings, teams and races from ESPN's public
// JSON API and maps them to domain models.
type Client struct {
	siteURL      string
	standingsURL string
	httpClient   httpDoer
	limit        int
	now          func() time.Time
}

// NewClient constructs an ESPN client with the provided configuration.
func NewClient(cfg Config) *Client {
	limit := cfg.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	return &Client{
		siteURL:      normalizeBaseURL(cfg.SiteBaseURL, defaultSiteBaseURL),
		standingsURL: normalizeBaseURL(cfg.StandingsBaseURL, defaultStandingsBaseURL),
		httpClient:   resolveHTTPClient(cfg.HTTPClient),
		limit:        limit,
		now:          time.Now,
	}
}

var _ providers.DataProvider = (*Client)(nil)

// FetchScoreboard retrieves the games of league.Key within r.
func (c *Client) FetchScoreboard(ctx context.Context, league leagues.League, r timeutil.DateRange) ([]games.Game, error) {
	if league.IsRacing() {
		return nil, fmt.Errorf("espn: scoreboard for %s: %w", league.Key, providers.ErrUnsupported)
	}
	q := url.Values{}
	q.Set("dates", r.ESPNParam())
	q.Set("limit", strconv.Itoa(c.limit))

	var payload scoreboardResponse
	if err := c.getJSON(ctx, c.siteURL+"/"+league.Path("")+"/scoreboard", q, &payload); err != nil {
		return nil, err
	}
	return mapEvents(payload.Events, league.Key), nil
}

// FetchStandings retrieves the league table. An empty season asks ESPN for the current one.
func (c *Client) FetchStandings(ctx context.Context, league leagues.League, season string) (standings.Table, error) {
	if league.IsRacing() {
		return standings.Table{}, fmt.Errorf("espn: standings for %s: %w", league.Key, providers.ErrUnsupported)
	}
	q := url.Values{}
	if season != "" {
		q.Set("season", season)
	}
	var payload standingsResponse
	if err := c.getJSON(ctx, c.standingsURL+"/"+league.Path("")+"/standings", q, &payload); err != nil {
		return standings.Table{}, err
	}
	return mapStandings(payload, league.Key, season), nil
}

// FetchTeam retrieves team details including logos and record.
func (c *Client) FetchTeam(ctx context.Context, league leagues.League, teamID string) (teams.Team, error) {
	var payload teamResponse
	if err := c.getJSON(ctx, c.teamURL(league, teamID, ""), nil, &payload); err != nil {
		return teams.Team{}, err
	}
	if payload.Team.ID == "" {
		return teams.Team{}, fmt.Errorf("espn: team %s: %w", teamID, providers.ErrNotFound)
	}
	return mapTeam(payload.Team, league.Key), nil
}

// FetchTeamSchedule retrieves a team's season schedule ordered by start time.
func (c *Client) FetchTeamSchedule(ctx context.Context, league leagues.League, teamID string) ([]games.Game, error) {
	var payload scheduleResponse
	if err := c.getJSON(ctx, c.teamURL(league, teamID, "/schedule"), nil, &payload); err != nil {
		return nil, err
	}
	gs := mapEvents(payload.Events, league.Key)
	sort.SliceStable(gs, func(i, j int) bool { return gs[i].StartTime.Before(gs[j].StartTime) })
	return gs, nil
}

// FetchRoster retrieves the team's players.
func (c *Client) FetchRoster(ctx context.Context, league leagues.League, teamID string) ([]players.Player, error) {
	var payload rosterResponse
	if err := c.getJSON(ctx, c.teamURL(league, teamID, "/roster"), nil, &payload); err != nil {
		return nil, err
	}
	return mapRoster(payload, teams.Team{ID: teamID, League: league.Key}), nil
}

// FetchGame retrieves a single event via the summary endpoint.
func (c *Client) FetchGame(ctx context.Context, league leagues.League, gameID string) (games.Game, error) {
	q := url.Values{}
	q.Set("event", gameID)
	var payload summaryResponse
	if err := c.getJSON(ctx, c.siteURL+"/"+league.Path("")+"/summary", q, &payload); err != nil {
		return games.Game{}, err
	}
	ev := event{
		ID:           firstNonEmpty(payload.Header.ID, gameID),
		Season:       payload.Header.Season,
		Competitions: payload.Header.Competitions,
	}
	if len(ev.Competitions) > 0 {
		ev.Date = ev.Competitions[0].Date
		if st := ev.Competitions[0].Status; st != nil {
			ev.Status = *st
		}
	}
	g, ok := mapEvent(ev, league.Key)
	if !ok {
		return games.Game{}, fmt.Errorf("espn: game %s: %w", gameID, providers.ErrNotFound)
	}
	if g.Meta.Venue == "" {
		g.Meta.Venue = payload.GameInfo.Venue.FullName
	}
	return g, nil
}

// FetchRaces retrieves F1 race weekends within r.
func (c *Client) FetchRaces(ctx context.Context, r timeutil.DateRange) ([]racing.Event, error) {
	q := url.Values{}
	q.Set("dates", r.ESPNParam())
	var payload scoreboardResponse
	if err := c.getJSON(ctx, c.siteURL+"/"+racingPath+"/scoreboard", q, &payload); err != nil {
		return nil, err
	}
	out := make([]racing.Event, 0, len(payload.Events))
	for _, ev := range payload.Events {
		out = append(out, mapRaceEvent(ev))
	}
	return out, nil
}

func (c *Client) teamURL(league leagues.League, teamID, suffix string) string {
	return c.siteURL + "/" + league.Path("") + "/teams/" + url.PathEscape(teamID) + suffix
}

func (c *Client) getJSON(ctx context.Context, endpoint string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	if len(q) > 0 {
		req.URL.RawQuery = q.Encode()
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("espn: %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp, req.URL.Path); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("espn: decode %s: %w", req.URL.Path, err)
	}
	return nil
}

func (c *Client) checkStatus(resp *http.Response, path string) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusTooManyRequests:
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get("X-RateLimit-Remaining"),
			Message:    "espn rate limited",
		}
	case http.StatusNotFound:
		return fmt.Errorf("espn: %s: %w", path, providers.ErrNotFound)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}
}
