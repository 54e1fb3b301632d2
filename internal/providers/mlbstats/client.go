package mlbstats

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

// Config controls how the MLB Stats client reaches the upstream API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
}

// Client serves MLB scoreboards, standings and live game feeds from the MLB
// Stats API. Team pages and rosters are left to ESPN.
type Client struct {
	baseURL    string
	httpClient httpDoer
	now        func() time.Time
}

// NewClient constructs an MLB Stats client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		now:        time.Now,
	}
}

var _ providers.DataProvider = (*Client)(nil)

// FetchScoreboard retrieves MLB games within r.
func (c *Client) FetchScoreboard(ctx context.Context, league leagues.League, r timeutil.DateRange) ([]games.Game, error) {
	if err := supports(league, "scoreboard"); err != nil {
		return nil, err
	}
	q := url.Values{}
	q.Set("sportId", sportIDMLB)
	q.Set("startDate", timeutil.MLBDate(r.Start))
	q.Set("endDate", timeutil.MLBDate(r.End))
	q.Set("hydrate", scheduleHydrate)

	var payload scheduleResponse
	if err := c.getJSON(ctx, "/api/v1/schedule", q, &payload); err != nil {
		return nil, err
	}
	gs := mapSchedule(payload)
	sort.SliceStable(gs, func(i, j int) bool { return gs[i].StartTime.Before(gs[j].StartTime) })
	return gs, nil
}

// FetchStandings retrieves both leagues' division standings. An empty
// season means the current year.
func (c *Client) FetchStandings(ctx context.Context, league leagues.League, season string) (standings.Table, error) {
	if err := supports(league, "standings"); err != nil {
		return standings.Table{}, err
	}
	if season == "" {
		season = strconv.Itoa(c.now().Year())
	}
	q := url.Values{}
	q.Set("leagueId", standingsLeagueIDs)
	q.Set("season", season)
	q.Set("hydrate", "division")

	var payload standingsResponse
	if err := c.getJSON(ctx, "/api/v1/standings", q, &payload); err != nil {
		return standings.Table{}, err
	}
	return mapStandings(payload, season), nil
}

// FetchGame retrieves the live feed of a game by gamePk. Non-numeric ids
// belong to another provider and report ErrNotFound.
func (c *Client) FetchGame(ctx context.Context, league leagues.League, gameID string) (games.Game, error) {
	if err := supports(league, "game"); err != nil {
		return games.Game{}, err
	}
	if _, err := strconv.Atoi(gameID); err != nil {
		return games.Game{}, fmt.Errorf("mlbstats: game %q: %w", gameID, providers.ErrNotFound)
	}
	var payload liveFeed
	if err := c.getJSON(ctx, "/api/v1.1/game/"+gameID+"/feed/live", nil, &payload); err != nil {
		return games.Game{}, err
	}
	if payload.GamePk == 0 {
		return games.Game{}, fmt.Errorf("mlbstats: game %s: %w", gameID, providers.ErrNotFound)
	}
	return mapLiveFeed(payload), nil
}

// FetchTeam is served by ESPN.
func (c *Client) FetchTeam(context.Context, leagues.League, string) (teams.Team, error) {
	return teams.Team{}, unsupported("team")
}

// FetchTeamSchedule is served by ESPN.
func (c *Client) FetchTeamSchedule(context.Context, leagues.League, string) ([]games.Game, error) {
	return nil, unsupported("schedule")
}

// FetchRoster is served by ESPN.
func (c *Client) FetchRoster(context.Context, leagues.League, string) ([]players.Player, error) {
	return nil, unsupported("roster")
}

// FetchRaces is served by ESPN.
func (c *Client) FetchRaces(context.Context, timeutil.DateRange) ([]racing.Event, error) {
	return nil, unsupported("races")
}

func supports(league leagues.League, op string) error {
	if league.Key != leagueKey {
		return fmt.Errorf("mlbstats: %s for %s: %w", op, league.Key, providers.ErrUnsupported)
	}
	return nil
}

func unsupported(op string) error {
	return fmt.Errorf("mlbstats: %s: %w", op, providers.ErrUnsupported)
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	if len(q) > 0 {
		req.URL.RawQuery = q.Encode()
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mlbstats: %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(strings.TrimSpace(resp.Header.Get("Retry-After")))
		if retryAfter < 0 {
			retryAfter = 0
		}
		return &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: time.Duration(retryAfter) * time.Second,
			Message:    "mlbstats rate limited",
		}
	case http.StatusNotFound:
		return fmt.Errorf("mlbstats: %s: %w", path, providers.ErrNotFound)
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &providers.StatusError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("mlbstats: decode %s: %w", path, err)
	}
	return nil
}
