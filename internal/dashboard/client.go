// Package dashboard is a terminal client for the scores API.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/app/favorites"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 4 << 10
)

// Client calls the scores HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds a Client for baseURL. A nil httpClient gets a 10s timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// APIError is a non-2xx answer from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("scores api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("scores api: %s (status %d)", e.Message, e.StatusCode)
}

// FavoriteGames returns the latest favorites aggregation.
func (c *Client) FavoriteGames(ctx context.Context) (favorites.Result, error) {
	var res favorites.Result
	err := c.get(ctx, "/favorites/games", nil, &res)
	return res, err
}

// Leagues returns the league catalog.
func (c *Client) Leagues(ctx context.Context) ([]leagues.League, error) {
	var body struct {
		Leagues []leagues.League `json:"leagues"`
	}
	if err := c.get(ctx, "/leagues", nil, &body); err != nil {
		return nil, err
	}
	return body.Leagues, nil
}

// Scoreboard returns one league's games on date (YYYY-MM-DD, empty for today).
func (c *Client) Scoreboard(ctx context.Context, league, date string) (games.ScoreboardResponse, error) {
	q := url.Values{}
	if date != "" {
		q.Set("date", date)
	}
	var sb games.ScoreboardResponse
	err := c.get(ctx, "/leagues/"+url.PathEscape(league)+"/scoreboard", q, &sb)
	return sb, err
}

func (c *Client) get(ctx context.Context, path string, q url.Values, dest any) error {
	target := c.baseURL + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("scores api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("scores api: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var body struct {
			Error string `json:"error"`
		}
		if data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)); readErr == nil {
			if json.Unmarshal(data, &body) == nil {
				apiErr.Message = body.Error
			}
		}
		return apiErr
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("scores api: decode %s: %w", path, err)
	}
	return nil
}
