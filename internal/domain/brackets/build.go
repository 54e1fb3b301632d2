package brackets

import (
	"fmt"
	"sort"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
)

// BuildTies groups knockout games into ties by round and unordered team pair.
// Games whose round cannot be parsed are skipped. seeds maps team ID to seed
// and may be nil.
func BuildTies(gs []games.Game, seeds map[string]int) []Tie {
	byID := make(map[string]*Tie)
	var order []string

	for _, g := range gs {
		round, ok := ParseRound(g.Meta.Round)
		if !ok || g.HomeTeam.ID == "" || g.AwayTeam.ID == "" {
			continue
		}
		id := tieID(round, g.HomeTeam.ID, g.AwayTeam.ID)
		tie, exists := byID[id]
		if !exists {
			tie = &Tie{ID: id, Round: round, TeamA: g.HomeTeam, TeamB: g.AwayTeam}
			byID[id] = tie
			order = append(order, id)
		}
		tie.Legs = append(tie.Legs, Leg{
			GameID:       g.ID,
			StartTime:    g.StartTime,
			Status:       g.Status,
			HomeTeamID:   g.HomeTeam.ID,
			HomeScore:    g.Score.Home,
			AwayScore:    g.Score.Away,
			HomeShootout: g.Score.HomeShootout,
			AwayShootout: g.Score.AwayShootout,
		})
	}

	out := make([]Tie, 0, len(order))
	for _, id := range order {
		tie := byID[id]
		settle(tie, seeds)
		out = append(out, *tie)
	}
	return out
}

func tieID(round RoundKey, a, b string) string {
	if b < a {
		a, b = b, a
	}
	return fmt.Sprintf("%s:%s-%s", round, a, b)
}

// settle orders legs, orients the tie so TeamA hosted the first leg, and
// computes aggregates, completion and the winner.
func settle(t *Tie, seeds map[string]int) {
	sort.SliceStable(t.Legs, func(i, j int) bool {
		return t.Legs[i].StartTime.Before(t.Legs[j].StartTime)
	})
	if first := t.Legs[0]; first.HomeTeamID != t.TeamA.ID {
		t.TeamA, t.TeamB = t.TeamB, t.TeamA
	}
	t.SeedA = seeds[t.TeamA.ID]
	t.SeedB = seeds[t.TeamB.ID]

	t.AggregateA, t.AggregateB = 0, 0
	complete := true
	for _, leg := range t.Legs {
		if leg.Status != games.StatusFinal {
			complete = false
		}
		if leg.Status != games.StatusFinal && leg.Status != games.StatusInProgress {
			continue
		}
		if leg.HomeTeamID == t.TeamA.ID {
			t.AggregateA += leg.HomeScore
			t.AggregateB += leg.AwayScore
		} else {
			t.AggregateA += leg.AwayScore
			t.AggregateB += leg.HomeScore
		}
	}

	last := t.Legs[len(t.Legs)-1]
	if last.HomeTeamID == t.TeamA.ID {
		t.ShootoutA, t.ShootoutB = last.HomeShootout, last.AwayShootout
	} else {
		t.ShootoutA, t.ShootoutB = last.AwayShootout, last.HomeShootout
	}

	wantLegs := 2
	if t.Round == RoundFinal {
		wantLegs = 1
	}
	t.Complete = complete && len(t.Legs) >= wantLegs
	t.Winner = ""
	if !t.Complete {
		return
	}
	switch {
	case t.AggregateA > t.AggregateB:
		t.Winner = t.TeamA.ID
	case t.AggregateB > t.AggregateA:
		t.Winner = t.TeamB.ID
	case t.ShootoutA > t.ShootoutB:
		t.Winner = t.TeamA.ID
	case t.ShootoutB > t.ShootoutA:
		t.Winner = t.TeamB.ID
	}
}

// PairingFor returns the pod (1..4) a tie belongs to, computed from its
// better seed. Knockout playoffs pair seeds 9-24, the round of 16 seeds 1-8.
// Other rounds and out-of-range seeds return false.
func PairingFor(round RoundKey, seedA, seedB int) (int, bool) {
	best := bestSeed(seedA, seedB)
	switch round {
	case RoundPlayoff:
		if best < 9 || best > 24 {
			return 0, false
		}
		k := (17 - best + 1) / 2
		if k < 1 {
			return 0, false
		}
		return k, true
	case RoundOf16:
		if best < 1 || best > 8 {
			return 0, false
		}
		return (best + 1) / 2, true
	default:
		return 0, false
	}
}

func bestSeed(a, b int) int {
	switch {
	case a <= 0:
		return b
	case b <= 0:
		return a
	case a < b:
		return a
	default:
		return b
	}
}

// Build assembles a bracket: rounds ordered playoff through final, ties
// bucketed into pairings and ordered by pairing index then seed sum, with
// unseeded ties last. Rounds after the round of 16 take their pairing index
// from kickoff order.
func Build(league, season string, gs []games.Game, seeds map[string]int) Bracket {
	ties := BuildTies(gs, seeds)

	byRound := make(map[RoundKey][]Tie)
	for _, t := range ties {
		byRound[t.Round] = append(byRound[t.Round], t)
	}

	keys := make([]RoundKey, 0, len(byRound))
	for k := range byRound {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Order() < keys[j].Order() })

	b := Bracket{League: league, Season: season, Rounds: make([]Round, 0, len(keys))}
	for _, k := range keys {
		b.Rounds = append(b.Rounds, buildRound(k, byRound[k]))
	}
	return b
}

type placed struct {
	tie   Tie
	index int
}

func buildRound(key RoundKey, ties []Tie) Round {
	items := make([]placed, len(ties))
	if key == RoundPlayoff || key == RoundOf16 {
		for i, t := range ties {
			k, _ := PairingFor(key, t.SeedA, t.SeedB)
			items[i] = placed{tie: t, index: k}
		}
	} else {
		sort.SliceStable(ties, func(i, j int) bool {
			return firstKickoff(ties[i]).Before(firstKickoff(ties[j]))
		})
		for i, t := range ties {
			items[i] = placed{tie: t, index: i + 1}
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if (a.index == 0) != (b.index == 0) {
			return b.index == 0
		}
		if a.index != b.index {
			return a.index < b.index
		}
		if a.tie.Seeded() != b.tie.Seeded() {
			return a.tie.Seeded()
		}
		return a.tie.SeedA+a.tie.SeedB < b.tie.SeedA+b.tie.SeedB
	})

	round := Round{Key: key, Name: key.Name(), Order: key.Order()}
	for _, it := range items {
		round.Ties = append(round.Ties, it.tie)
		if it.index == 0 {
			continue
		}
		n := len(round.Pairings)
		if n == 0 || round.Pairings[n-1].Index != it.index {
			round.Pairings = append(round.Pairings, Pairing{
				Name:  fmt.Sprintf("Pairing %d", it.index),
				Index: it.index,
			})
			n++
		}
		round.Pairings[n-1].Ties = append(round.Pairings[n-1].Ties, it.tie)
	}
	return round
}

func firstKickoff(t Tie) time.Time {
	if len(t.Legs) == 0 {
		return time.Time{}
	}
	return t.Legs[0].StartTime
}
