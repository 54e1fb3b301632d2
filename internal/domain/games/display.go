package games

import (
	"sort"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
)

// Outcome labels from one team's point of view.
const (
	OutcomeWin  = "W"
	OutcomeLoss = "L"
	OutcomeDraw = "D"
	OutcomeTie  = "T"
)

// Outcome returns W/L/D/T for teamID in a final game, or "" when the game is
// not final or the team did not play. Level soccer scores are settled by the
// shootout when one was played.
func Outcome(g Game, teamID string) string {
	if g.Status != StatusFinal || !g.Involves(teamID) {
		return ""
	}
	mine, theirs := g.Score.Home, g.Score.Away
	mineSO, theirsSO := g.Score.HomeShootout, g.Score.AwayShootout
	if g.AwayTeam.ID == teamID {
		mine, theirs = theirs, mine
		mineSO, theirsSO = theirsSO, mineSO
	}

	soccer := false
	if l, ok := leagues.Lookup(g.League); ok {
		soccer = l.IsSoccer()
	}

	switch {
	case mine > theirs:
		return OutcomeWin
	case mine < theirs:
		return OutcomeLoss
	case soccer && mineSO != theirsSO:
		if mineSO > theirsSO {
			return OutcomeWin
		}
		return OutcomeLoss
	case soccer:
		return OutcomeDraw
	default:
		return OutcomeTie
	}
}

// Priority ranks statuses for display: live, scheduled, final, then the rest.
func Priority(s GameStatus) int {
	switch s {
	case StatusInProgress:
		return 0
	case StatusScheduled:
		return 1
	case StatusFinal:
		return 2
	default:
		return 3
	}
}

// SortForDisplay orders games in place: live then scheduled (soonest first),
// finals (most recent first), and postponed/canceled last.
func SortForDisplay(gs []Game) {
	sort.SliceStable(gs, func(i, j int) bool {
		a, b := gs[i], gs[j]
		pa, pb := Priority(a.Status), Priority(b.Status)
		if pa != pb {
			return pa < pb
		}
		if !a.StartTime.Equal(b.StartTime) {
			if a.Status == StatusFinal {
				return a.StartTime.After(b.StartTime)
			}
			return a.StartTime.Before(b.StartTime)
		}
		return a.ID < b.ID
	})
}

func progress(s GameStatus) int {
	switch s {
	case StatusFinal:
		return 3
	case StatusInProgress:
		return 2
	case StatusPostponed, StatusCanceled:
		return 1
	default:
		return 0
	}
}

// Dedupe keeps one game per ID, preferring the entry with the more advanced
// status, then the higher combined score. First-seen order is preserved.
func Dedupe(gs []Game) []Game {
	if len(gs) == 0 {
		return gs
	}
	index := make(map[string]int, len(gs))
	out := make([]Game, 0, len(gs))
	for _, g := range gs {
		i, ok := index[g.ID]
		if !ok {
			index[g.ID] = len(out)
			out = append(out, g)
			continue
		}
		if fresher(g, out[i]) {
			out[i] = g
		}
	}
	return out
}

func fresher(candidate, current Game) bool {
	pc, pk := progress(candidate.Status), progress(current.Status)
	if pc != pk {
		return pc > pk
	}
	return candidate.Score.Total() > current.Score.Total()
}

// AnyLive reports whether at least one game is in progress.
func AnyLive(gs []Game) bool {
	for _, g := range gs {
		if g.Status.IsLive() {
			return true
		}
	}
	return false
}

// AllSettled reports whether gs is non-empty and every game in it is settled.
func AllSettled(gs []Game) bool {
	if len(gs) == 0 {
		return false
	}
	for _, g := range gs {
		if !g.Status.IsSettled() {
			return false
		}
	}
	return true
}
