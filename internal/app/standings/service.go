package standings

import (
	"context"
	"fmt"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	domainstandings "github.com/preston-bernstein/sports-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
)

// Service serves league tables.
type Service struct {
	provider providers.StandingsProvider
}

// NewService constructs a Service backed by provider.
func NewService(provider providers.StandingsProvider) *Service {
	return &Service{provider: provider}
}

// Standings returns the table for leagueKey. An empty season means current.
func (s *Service) Standings(ctx context.Context, leagueKey, season string) (domainstandings.Table, error) {
	league, err := leagues.Resolve(leagueKey)
	if err != nil {
		return domainstandings.Table{}, err
	}
	if league.IsRacing() {
		return domainstandings.Table{}, fmt.Errorf("standings for %s: %w", league.Key, providers.ErrUnsupported)
	}
	table, err := s.provider.FetchStandings(ctx, league, season)
	if err != nil {
		return domainstandings.Table{}, err
	}
	if table.League == "" {
		table.League = league.Key
	}
	if table.Groups == nil {
		table.Groups = []domainstandings.Group{}
	}
	return table, nil
}
