package handlers

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	appbrackets "github.com/preston-bernstein/sports-scores-service/internal/app/brackets"
	"github.com/preston-bernstein/sports-scores-service/internal/app/favorites"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

// errInvalidInput marks request validation failures raised by handlers.
var errInvalidInput = errors.New("invalid input")

func isInvalidInput(err error) bool {
	for _, target := range []error{
		errInvalidInput,
		favorites.ErrInvalidFavorite,
		appbrackets.ErrInvalidSeason,
		timeutil.ErrRangeInverted,
		timeutil.ErrRangeTooLong,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// writeServiceError maps service and provider errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	logger = loggerFromContext(r, logger)
	switch {
	case isInvalidInput(err):
		writeError(w, r, http.StatusBadRequest, err.Error(), logger)
	case errors.Is(err, leagues.ErrUnknownLeague):
		writeError(w, r, http.StatusNotFound, err.Error(), logger)
	case errors.Is(err, favorites.ErrFavoriteNotFound):
		writeError(w, r, http.StatusNotFound, "favorite not found", logger)
	case errors.Is(err, providers.ErrNotFound):
		writeError(w, r, http.StatusNotFound, "not found", logger)
	case errors.Is(err, providers.ErrUnsupported):
		writeError(w, r, http.StatusNotImplemented, err.Error(), logger)
	case errors.Is(err, providers.ErrProviderUnavailable):
		writeError(w, r, http.StatusServiceUnavailable, "provider unavailable", logger)
	case errors.Is(err, context.DeadlineExceeded):
		logging.Warn(logger, "upstream timed out", logging.FieldError, err)
		writeError(w, r, http.StatusGatewayTimeout, "upstream timed out", logger)
	default:
		if rl, ok := providers.AsRateLimitError(err); ok {
			if rl.RetryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(rl.RetryAfter.Seconds()))))
			}
			logging.Warn(logger, "upstream rate limited", logging.FieldProvider, rl.Provider, logging.FieldError, err)
			writeError(w, r, http.StatusServiceUnavailable, "upstream rate limited", logger)
			return
		}
		logging.Error(logger, "upstream request failed", err)
		writeError(w, r, http.StatusBadGateway, "upstream unavailable", logger)
	}
}
