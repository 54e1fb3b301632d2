package espn

import (
	"strconv"
	"strings"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/players"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/teams"
)

func mapStatus(st status) games.GameStatus {
	switch strings.ToUpper(st.Type.Name) {
	case "STATUS_POSTPONED", "STATUS_SUSPENDED", "STATUS_DELAYED":
		return games.StatusPostponed
	case "STATUS_CANCELED", "STATUS_CANCELLED", "STATUS_ABANDONED", "STATUS_FORFEIT":
		return games.StatusCanceled
	}
	switch strings.ToLower(st.Type.State) {
	case "in":
		return games.StatusInProgress
	case "post":
		return games.StatusFinal
	default:
		if st.Type.Completed {
			return games.StatusFinal
		}
		return games.StatusScheduled
	}
}

func mapTeam(t teamPayload, league string) teams.Team {
	out := teams.Team{
		ID:           t.ID,
		Name:         firstNonEmpty(t.Name, t.ShortDisplayName, t.DisplayName),
		FullName:     firstNonEmpty(t.DisplayName, strings.TrimSpace(t.Location+" "+t.Name)),
		Abbreviation: t.Abbreviation,
		Location:     t.Location,
		League:       league,
		Color:        t.Color,
	}
	for _, l := range t.Logos {
		out.Logos = append(out.Logos, teams.Logo{Href: l.Href, Rel: l.Rel})
	}
	if len(out.Logos) == 0 && t.Logo != "" {
		out.Logos = []teams.Logo{{Href: t.Logo, Rel: []string{"default"}}}
	}
	for _, item := range t.Record.Items {
		if item.Summary != "" {
			out.Record = item.Summary
			break
		}
	}
	return out
}

// mapEvent converts an ESPN event into a game. ok is false for events
// without two competitors (racing or malformed payloads).
func mapEvent(ev event, league string) (games.Game, bool) {
	if len(ev.Competitions) == 0 {
		return games.Game{}, false
	}
	comp := ev.Competitions[0]
	var home, away *competitor
	for i := range comp.Competitors {
		c := &comp.Competitors[i]
		switch strings.ToLower(c.HomeAway) {
		case "home":
			home = c
		case "away":
			away = c
		}
	}
	if home == nil || away == nil {
		return games.Game{}, false
	}

	st := ev.Status
	if comp.Status != nil && comp.Status.Type.State != "" {
		st = *comp.Status
	}
	start := ev.Date.Time
	if start.IsZero() {
		start = comp.Date.Time
	}

	g := games.Game{
		ID:        ev.ID,
		League:    league,
		Provider:  providerName,
		Name:      ev.Name,
		HomeTeam:  mapTeam(home.Team, league),
		AwayTeam:  mapTeam(away.Team, league),
		StartTime: start,
		Status:    mapStatus(st),
		Score: games.Score{
			Home:         home.Score.Value,
			Away:         away.Score.Value,
			HomeShootout: home.ShootoutScore.Value,
			AwayShootout: away.ShootoutScore.Value,
		},
		Detail: games.Detail{
			Clock:       st.DisplayClock,
			Period:      st.Period,
			Description: firstNonEmpty(st.Type.ShortDetail, st.Type.Detail, st.Type.Description),
		},
		Meta: games.GameMeta{
			Round:      roundLabel(ev, comp),
			UpstreamID: ev.ID,
		},
	}
	if ev.Season.Year > 0 {
		g.Meta.Season = strconv.Itoa(ev.Season.Year)
	}
	if comp.Leg != nil {
		g.Meta.Leg = comp.Leg.Value
	}
	if comp.Venue != nil {
		g.Meta.Venue = comp.Venue.FullName
	}
	if home.Records != nil && g.HomeTeam.Record == "" {
		g.HomeTeam.Record = overallRecord(home.Records)
	}
	if away.Records != nil && g.AwayTeam.Record == "" {
		g.AwayTeam.Record = overallRecord(away.Records)
	}
	return g, true
}

func mapEvents(evs []event, league string) []games.Game {
	out := make([]games.Game, 0, len(evs))
	for _, ev := range evs {
		if g, ok := mapEvent(ev, league); ok {
			out = append(out, g)
		}
	}
	return out
}

// roundLabel prefers the season slug ("round-of-16") and falls back to the
// first note headline ("Round of 16 - 1st Leg").
func roundLabel(ev event, comp competition) string {
	slug := ev.Season.Slug
	if slug != "" && !strings.Contains(slug, "season") && !strings.Contains(slug, "league") {
		return slug
	}
	for _, n := range comp.Notes {
		if h := strings.TrimSpace(n.Headline); h != "" {
			if i := strings.Index(h, " - "); i > 0 {
				return h[:i]
			}
			return h
		}
	}
	return slug
}

func overallRecord(rs []record) string {
	for _, r := range rs {
		if r.Type == "total" || strings.EqualFold(r.Name, "overall") || r.Name == "All Splits" {
			return r.Summary
		}
	}
	if len(rs) > 0 {
		return rs[0].Summary
	}
	return ""
}

func mapRoster(resp rosterResponse, team teams.Team) []players.Player {
	out := make([]players.Player, 0, len(resp.Athletes))
	add := func(a athlete) {
		if a.ID == "" {
			return
		}
		out = append(out, players.Player{
			ID:       a.ID,
			FullName: firstNonEmpty(a.FullName, a.DisplayName),
			Position: a.Position.Abbreviation,
			Jersey:   a.Jersey,
			Age:      a.Age,
			Headshot: a.Headshot.Href,
			Team:     team,
		})
	}
	for _, entry := range resp.Athletes {
		if len(entry.Items) > 0 {
			for _, a := range entry.Items {
				add(a)
			}
			continue
		}
		add(entry.athlete)
	}
	return out
}

func mapStandings(resp standingsResponse, league, season string) standings.Table {
	table := standings.Table{League: league, Season: season}
	var walk func(name string, children []standingsGroup, block standingsBlock)
	walk = func(name string, children []standingsGroup, block standingsBlock) {
		if len(block.Entries) > 0 {
			if table.Season == "" && block.Season > 0 {
				table.Season = strconv.Itoa(block.Season)
			}
			table.Groups = append(table.Groups, mapGroup(name, block.Entries, league))
		}
		for _, child := range children {
			walk(child.Name, child.Children, child.Standings)
		}
	}
	walk(resp.Name, resp.Children, resp.Standings)
	return table
}

func mapGroup(name string, entries []standingEntry, league string) standings.Group {
	g := standings.Group{Name: name, Entries: make([]standings.Entry, 0, len(entries))}
	for i, e := range entries {
		stats := make(map[string]string, len(e.Stats))
		values := make(map[string]float64, len(e.Stats))
		for _, s := range e.Stats {
			stats[s.Name] = s.DisplayValue
			values[s.Name] = s.Value
		}
		rank := int(values["rank"])
		if rank == 0 {
			rank = int(values["playoffSeed"])
		}
		if rank == 0 {
			rank = i + 1
		}
		g.Entries = append(g.Entries, standings.Entry{
			Rank:        rank,
			Team:        mapTeam(e.Team, league),
			Wins:        int(values["wins"]),
			Losses:      int(values["losses"]),
			Ties:        int(values["ties"]),
			Points:      int(values["points"]),
			GamesPlayed: int(values["gamesPlayed"]),
			GoalDiff:    int(values["pointDifferential"]),
			Stats:       stats,
		})
	}
	return g
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
