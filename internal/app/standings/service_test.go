package standings

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	domainstandings "github.com/preston-bernstein/sports-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
	"github.com/preston-bernstein/sports-scores-service/internal/teststubs"
)

func TestStandingsReturnsTable(t *testing.T) {
	stub := &teststubs.StubProvider{Table: domainstandings.Table{
		Season: "2024",
		Groups: []domainstandings.Group{{Name: "Atlantic"}},
	}}
	svc := NewService(stub)

	table, err := svc.Standings(context.Background(), "nhl", "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if table.League != "nhl" || len(table.Groups) != 1 {
		t.Fatalf("unexpected table %+v", table)
	}
}

func TestStandingsEmptyGroupsNotNil(t *testing.T) {
	svc := NewService(&teststubs.StubProvider{})
	table, err := svc.Standings(context.Background(), "eng.1", "2023")
	if err != nil || table.Groups == nil {
		t.Fatalf("expected empty groups slice, got %+v err %v", table, err)
	}
}

func TestStandingsRejectsRacingAndUnknown(t *testing.T) {
	svc := NewService(&teststubs.StubProvider{})
	if _, err := svc.Standings(context.Background(), "f1", ""); !errors.Is(err, providers.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if _, err := svc.Standings(context.Background(), "cfl", ""); !errors.Is(err, leagues.ErrUnknownLeague) {
		t.Fatalf("expected ErrUnknownLeague, got %v", err)
	}
}

func TestStandingsPropagatesError(t *testing.T) {
	svc := NewService(&teststubs.StubProvider{TableErr: teststubs.ErrStubNotFound})
	if _, err := svc.Standings(context.Background(), "nfl", ""); !errors.Is(err, teststubs.ErrStubNotFound) {
		t.Fatalf("expected stub error, got %v", err)
	}
}
