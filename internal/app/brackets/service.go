package brackets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	domainbrackets "github.com/preston-bernstein/sports-scores-service/internal/domain/brackets"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

// Provider is what the bracket service needs from upstream.
type Provider interface {
	providers.ScoreboardProvider
	providers.StandingsProvider
}

// Service assembles knockout brackets for UEFA competitions.
type Service struct {
	provider Provider
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs a Service backed by provider.
func NewService(provider Provider, logger *slog.Logger) *Service {
	return &Service{provider: provider, logger: logger, now: time.Now}
}

// Bracket builds the knockout bracket of leagueKey for season, the year the
// season starts in. An empty season means the one in progress. Knockout
// games are played between Feb 1 and Jun 15 of the following year.
func (s *Service) Bracket(ctx context.Context, leagueKey, season string) (domainbrackets.Bracket, error) {
	league, err := leagues.Resolve(leagueKey)
	if err != nil {
		return domainbrackets.Bracket{}, err
	}
	if !league.UEFA {
		return domainbrackets.Bracket{}, fmt.Errorf("bracket for %s: %w", league.Key, providers.ErrUnsupported)
	}
	year, err := s.seasonYear(season)
	if err != nil {
		return domainbrackets.Bracket{}, err
	}
	season = strconv.Itoa(year)

	seeds := s.seeds(ctx, league, season)
	gs, err := s.knockoutGames(ctx, league, year)
	if err != nil {
		return domainbrackets.Bracket{}, err
	}
	return domainbrackets.Build(league.Key, season, gs, seeds), nil
}

// ErrInvalidSeason is returned for seasons that are not a four-digit year.
var ErrInvalidSeason = errors.New("season must be a year")

func (s *Service) seasonYear(season string) (int, error) {
	if season == "" {
		now := s.now().UTC()
		if now.Month() >= time.July {
			return now.Year(), nil
		}
		return now.Year() - 1, nil
	}
	year, err := strconv.Atoi(season)
	if err != nil || year < 1955 || year > 9999 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeason, season)
	}
	return year, nil
}

// seeds reads league-phase ranks. Failures leave the bracket unseeded.
func (s *Service) seeds(ctx context.Context, league leagues.League, season string) map[string]int {
	table, err := s.provider.FetchStandings(ctx, league, season)
	if err != nil {
		logging.Warn(logging.FromContext(ctx, s.logger), "bracket seeds unavailable",
			logging.FieldLeague, league.Key, "season", season, logging.FieldError, err)
		return nil
	}
	return table.Seeds()
}

func (s *Service) knockoutGames(ctx context.Context, league leagues.League, year int) ([]games.Game, error) {
	window := timeutil.DateRange{
		Start: time.Date(year+1, time.February, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(year+1, time.June, 15, 0, 0, 0, 0, time.UTC),
	}

	var (
		mu  sync.Mutex
		out []games.Game
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, chunk := range window.Chunks(timeutil.MaxRangeDays) {
		chunk := chunk
		g.Go(func() error {
			gs, err := s.provider.FetchScoreboard(gctx, league, chunk)
			if err != nil {
				return err
			}
			mu.Lock()
			out = append(out, gs...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return games.Dedupe(out), nil
}
