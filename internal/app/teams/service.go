package teams

import (
	"context"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/players"
	domainteams "github.com/preston-bernstein/sports-scores-service/internal/domain/teams"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
)

const pageListLimit = 5

// ResultRow is a finished game seen from the team's side.
type ResultRow struct {
	Game    games.Game `json:"game"`
	Outcome string     `json:"outcome"`
}

// Page is the team screen: details, recent results and upcoming games.
type Page struct {
	Team     domainteams.Team `json:"team"`
	Logo     string           `json:"logo,omitempty"`
	Recent   []ResultRow      `json:"recent"`
	Upcoming []games.Game     `json:"upcoming"`
}

// Service serves team pages and rosters.
type Service struct {
	provider providers.TeamProvider
	logger   *slog.Logger
}

// NewService constructs a Service backed by provider.
func NewService(provider providers.TeamProvider, logger *slog.Logger) *Service {
	return &Service{provider: provider, logger: logger}
}

// TeamPage loads a team and its schedule concurrently. A schedule failure
// leaves Recent and Upcoming empty rather than failing the page.
func (s *Service) TeamPage(ctx context.Context, leagueKey, teamID string, theme domainteams.Theme) (Page, error) {
	league, err := leagues.Resolve(leagueKey)
	if err != nil {
		return Page{}, err
	}

	var (
		team     domainteams.Team
		schedule []games.Game
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		team, err = s.provider.FetchTeam(gctx, league, teamID)
		return err
	})
	g.Go(func() error {
		var err error
		schedule, err = s.provider.FetchTeamSchedule(gctx, league, teamID)
		if err != nil {
			logging.Warn(logging.FromContext(ctx, s.logger), "team schedule unavailable",
				logging.FieldLeague, league.Key, logging.FieldTeamID, teamID, logging.FieldError, err)
			schedule = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Page{}, err
	}

	recent, upcoming := splitSchedule(schedule, teamID)
	return Page{
		Team:     team,
		Logo:     team.LogoFor(theme),
		Recent:   recent,
		Upcoming: upcoming,
	}, nil
}

// splitSchedule returns up to five finals newest first and up to five
// unfinished games soonest first.
func splitSchedule(schedule []games.Game, teamID string) ([]ResultRow, []games.Game) {
	sorted := make([]games.Game, len(schedule))
	copy(sorted, schedule)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].StartTime.Before(sorted[j].StartTime) })

	recent := []ResultRow{}
	for i := len(sorted) - 1; i >= 0 && len(recent) < pageListLimit; i-- {
		g := sorted[i]
		if g.Status != games.StatusFinal {
			continue
		}
		recent = append(recent, ResultRow{Game: g, Outcome: games.Outcome(g, teamID)})
	}

	upcoming := []games.Game{}
	for _, g := range sorted {
		if len(upcoming) == pageListLimit {
			break
		}
		if g.Status == games.StatusFinal || g.Status == games.StatusCanceled {
			continue
		}
		upcoming = append(upcoming, g)
	}
	return recent, upcoming
}

// Roster returns the team's players.
func (s *Service) Roster(ctx context.Context, leagueKey, teamID string) (players.Roster, error) {
	league, err := leagues.Resolve(leagueKey)
	if err != nil {
		return players.Roster{}, err
	}
	list, err := s.provider.FetchRoster(ctx, league, teamID)
	if err != nil {
		return players.Roster{}, err
	}
	if list == nil {
		list = []players.Player{}
	}
	return players.Roster{League: league.Key, TeamID: teamID, Players: list}, nil
}
