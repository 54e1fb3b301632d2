package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/http/requestutil"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

// SnapshotRefresher writes one league scoreboard snapshot.
type SnapshotRefresher interface {
	RefreshDate(ctx context.Context, leagueKey, date string) error
}

// AdminHandler exposes admin-only endpoints (e.g., snapshot refresh).
type AdminHandler struct {
	refresher SnapshotRefresher
	leagues   []string
	token     string
	logger    *slog.Logger
	now       nowFunc
}

// NewAdminHandler constructs an AdminHandler. defaultLeagues are refreshed
// when a request names no league.
func NewAdminHandler(refresher SnapshotRefresher, defaultLeagues []string, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		leagues:   defaultLeagues,
		token:     token,
		logger:    logger,
		now:       time.Now,
	}
}

// RefreshSnapshots writes scoreboard snapshots for ?league= (default: every
// configured league) on ?date= (default today, UTC). Guarded by ADMIN_TOKEN.
func (h *AdminHandler) RefreshSnapshots(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "snapshot writer not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	q := r.URL.Query()
	date := strings.TrimSpace(q.Get("date"))
	if date == "" {
		date = timeutil.FormatDate(h.now().UTC())
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		logging.Warn(logger, "admin snapshot invalid date", slog.String(logging.FieldDate, date))
		writeError(w, r, http.StatusBadRequest, "invalid date format", logger)
		return
	}

	targets := h.leagues
	if league := strings.TrimSpace(q.Get("league")); league != "" {
		l, err := leagues.Resolve(league)
		if err != nil {
			writeServiceError(w, r, err, logger)
			return
		}
		targets = []string{l.Key}
	}
	if len(targets) == 0 {
		writeError(w, r, http.StatusBadRequest, "no leagues to snapshot", logger)
		return
	}

	for _, league := range targets {
		if l, ok := leagues.Lookup(league); ok && l.IsRacing() {
			continue
		}
		if err := h.refresher.RefreshDate(r.Context(), league, date); err != nil {
			logging.Warn(logger, "admin snapshot failed",
				slog.String(logging.FieldLeague, league),
				slog.String(logging.FieldDate, date),
				slog.Any(logging.FieldError, err),
			)
			writeServiceError(w, r, err, logger)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"date":    date,
		"leagues": targets,
		"status":  "ok",
	}, logger)
	logging.Info(logger, "admin snapshots written",
		slog.String(logging.FieldDate, date),
		slog.Int(logging.FieldCount, len(targets)),
	)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got, ok := requestutil.BearerToken(r)
	return ok && subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1
}
