package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/sports-scores-service/internal/app/favorites"
	appteams "github.com/preston-bernstein/sports-scores-service/internal/app/teams"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/brackets"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/players"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/racing"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/teams"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/poller"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

// ScoresService serves scoreboards, game details and races.
type ScoresService interface {
	Scoreboard(ctx context.Context, leagueKey string, r timeutil.DateRange) (games.ScoreboardResponse, error)
	Game(ctx context.Context, leagueKey, gameID string) (games.Game, error)
	Races(ctx context.Context, r timeutil.DateRange) (racing.RacesResponse, error)
}

// StandingsService serves league tables.
type StandingsService interface {
	Standings(ctx context.Context, leagueKey, season string) (standings.Table, error)
}

// TeamsService serves team pages and rosters.
type TeamsService interface {
	TeamPage(ctx context.Context, leagueKey, teamID string, theme teams.Theme) (appteams.Page, error)
	Roster(ctx context.Context, leagueKey, teamID string) (players.Roster, error)
}

// BracketService serves knockout brackets.
type BracketService interface {
	Bracket(ctx context.Context, leagueKey, season string) (brackets.Bracket, error)
}

// FavoriteGamesService serves the favorites board.
type FavoriteGamesService interface {
	Favorites(ctx context.Context) (favorites.Result, error)
	GameByID(id string) (games.Game, bool)
	Invalidate()
}

// Services groups the application services the handlers call.
type Services struct {
	Scores        ScoresService
	Standings     StandingsService
	Teams         TeamsService
	Brackets      BracketService
	Favorites     favorites.Store
	FavoriteGames FavoriteGamesService
}

type nowFunc func() time.Time

// Handler wires HTTP routes to the application services.
type Handler struct {
	svc      Services
	logger   *slog.Logger
	now      nowFunc
	loc      *time.Location
	statusFn func() poller.Status
}

// NewHandler constructs a Handler. loc decides "today" when a request names
// no date or timezone.
func NewHandler(svc Services, logger *slog.Logger, loc *time.Location, statusFn func() poller.Status) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		svc:      svc,
		logger:   logger,
		now:      time.Now,
		loc:      loc,
		statusFn: statusFn,
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// NotFound is the JSON 404 for unmatched routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusNotFound, "not found", h.logger)
}

// MethodNotAllowed is the JSON 405 for known paths with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", h.logger)
}

// Leagues lists the league catalog.
func (h *Handler) Leagues(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"leagues": leagues.All()}, h.logger)
}

// Scoreboard returns a league's games for ?date= (default today) through ?end=.
func (h *Handler) Scoreboard(w http.ResponseWriter, r *http.Request) {
	rng, err := h.dateRange(r)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	resp, err := h.svc.Scores.Scoreboard(r.Context(), chi.URLParam(r, "league"), rng)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	logging.Debug(loggerFromContext(r, h.logger), "served scoreboard",
		logging.FieldLeague, resp.League, logging.FieldDate, rng.Key(), logging.FieldCount, len(resp.Games))
	writeJSON(w, http.StatusOK, resp, h.logger)
}

// Races returns Formula 1 events for ?date= through ?end=.
func (h *Handler) Races(w http.ResponseWriter, r *http.Request) {
	rng, err := h.dateRange(r)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	resp, err := h.svc.Scores.Races(r.Context(), rng)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, resp, h.logger)
}

// Game returns one game's detail.
func (h *Handler) Game(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "gameID")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid game id", h.logger)
		return
	}
	g, err := h.svc.Scores.Game(r.Context(), chi.URLParam(r, "league"), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, g, h.logger)
}

// Standings returns a league table for ?season= (default current).
func (h *Handler) Standings(w http.ResponseWriter, r *http.Request) {
	season := strings.TrimSpace(r.URL.Query().Get("season"))
	table, err := h.svc.Standings.Standings(r.Context(), chi.URLParam(r, "league"), season)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, table, h.logger)
}

// Team returns the team page, with logos picked for ?theme=.
func (h *Handler) Team(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "teamID")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid team id", h.logger)
		return
	}
	theme := teams.ParseTheme(r.URL.Query().Get("theme"))
	page, err := h.svc.Teams.TeamPage(r.Context(), chi.URLParam(r, "league"), id, theme)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, page, h.logger)
}

// Roster returns a team's players.
func (h *Handler) Roster(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "teamID")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid team id", h.logger)
		return
	}
	roster, err := h.svc.Teams.Roster(r.Context(), chi.URLParam(r, "league"), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, roster, h.logger)
}

// Bracket returns a UEFA competition's knockout bracket for ?season=.
func (h *Handler) Bracket(w http.ResponseWriter, r *http.Request) {
	season := strings.TrimSpace(r.URL.Query().Get("season"))
	b, err := h.svc.Brackets.Bracket(r.Context(), chi.URLParam(r, "league"), season)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, b, h.logger)
}

// dateRange reads ?date=, ?end= and ?tz=. A missing date means today in tz,
// or in the handler's default zone when tz is absent or unknown.
func (h *Handler) dateRange(r *http.Request) (timeutil.DateRange, error) {
	q := r.URL.Query()
	date := strings.TrimSpace(q.Get("date"))
	if date == "" {
		loc := timeutil.LoadZone(strings.TrimSpace(q.Get("tz")), h.loc)
		date = timeutil.FormatDate(h.now().In(loc))
	}
	rng, err := timeutil.ParseRange(date, strings.TrimSpace(q.Get("end")))
	if err != nil {
		if isInvalidInput(err) {
			return timeutil.DateRange{}, err
		}
		return timeutil.DateRange{}, fmt.Errorf("%w: date must be YYYY-MM-DD", errInvalidInput)
	}
	return rng, nil
}

// pathID unescapes a path parameter and rejects empty or whitespace ids.
func pathID(r *http.Request, name string) (string, bool) {
	id, err := url.PathUnescape(chi.URLParam(r, name))
	if err != nil || id == "" || strings.ContainsAny(id, " \t/") {
		return "", false
	}
	return id, true
}
