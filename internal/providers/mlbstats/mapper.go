package mlbstats

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/standings"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/teams"
)

func mapStatus(st gameStatus) games.GameStatus {
	detailed := strings.ToLower(st.DetailedState)
	switch {
	case strings.Contains(detailed, "postponed"), strings.Contains(detailed, "suspended"):
		return games.StatusPostponed
	case strings.Contains(detailed, "cancelled"), strings.Contains(detailed, "canceled"):
		return games.StatusCanceled
	}
	switch st.AbstractGameState {
	case "Live":
		return games.StatusInProgress
	case "Final":
		return games.StatusFinal
	default:
		return games.StatusScheduled
	}
}

func mapTeam(t teamRef, rec *leagueRecord) teams.Team {
	out := teams.Team{
		ID:           teamID(t.ID),
		Name:         firstNonEmpty(t.TeamName, t.Name),
		FullName:     t.Name,
		Abbreviation: t.Abbreviation,
		Location:     t.LocationName,
		League:       leagueKey,
	}
	if rec != nil && rec.Wins+rec.Losses > 0 {
		out.Record = fmt.Sprintf("%d-%d", rec.Wins, rec.Losses)
	}
	return out
}

func mapScheduleGame(sg scheduleGame) games.Game {
	home, away := sg.Teams.Home, sg.Teams.Away
	g := games.Game{
		ID:        strconv.Itoa(sg.GamePk),
		League:    leagueKey,
		Provider:  providerName,
		HomeTeam:  mapTeam(home.Team, &home.LeagueRecord),
		AwayTeam:  mapTeam(away.Team, &away.LeagueRecord),
		StartTime: sg.GameDate.UTC(),
		Status:    mapStatus(sg.Status),
		Meta: games.GameMeta{
			Season:     sg.Season,
			Round:      sg.SeriesDescription,
			UpstreamID: strconv.Itoa(sg.GamePk),
			Venue:      sg.Venue.Name,
		},
	}
	g.Name = g.AwayTeam.FullName + " at " + g.HomeTeam.FullName
	if home.Score != nil {
		g.Score.Home = *home.Score
	}
	if away.Score != nil {
		g.Score.Away = *away.Score
	}
	if sg.Linescore != nil {
		if home.Score == nil {
			g.Score.Home = sg.Linescore.Teams.Home.Runs
		}
		if away.Score == nil {
			g.Score.Away = sg.Linescore.Teams.Away.Runs
		}
		g.Detail = mapDetail(g.Status, sg.Status, *sg.Linescore)
	} else {
		g.Detail = games.Detail{Description: sg.Status.DetailedState}
	}
	return g
}

func mapSchedule(resp scheduleResponse) []games.Game {
	out := make([]games.Game, 0, resp.TotalGames)
	for _, d := range resp.Dates {
		for _, sg := range d.Games {
			out = append(out, mapScheduleGame(sg))
		}
	}
	return out
}

func mapLiveFeed(feed liveFeed) games.Game {
	gd := feed.GameData
	ls := feed.LiveData.Linescore
	g := games.Game{
		ID:        strconv.Itoa(feed.GamePk),
		League:    leagueKey,
		Provider:  providerName,
		HomeTeam:  mapTeam(gd.Teams.Home, nil),
		AwayTeam:  mapTeam(gd.Teams.Away, nil),
		StartTime: gd.Datetime.DateTime.UTC(),
		Status:    mapStatus(gd.Status),
		Score: games.Score{
			Home: ls.Teams.Home.Runs,
			Away: ls.Teams.Away.Runs,
		},
		Meta: games.GameMeta{
			Season:     gd.Game.Season,
			UpstreamID: strconv.Itoa(feed.GamePk),
			Venue:      gd.Venue.Name,
		},
	}
	g.Name = g.AwayTeam.FullName + " at " + g.HomeTeam.FullName
	g.Detail = mapDetail(g.Status, gd.Status, ls)
	return g
}

// mapDetail renders the inning ("Top 5th"), outs and occupied bases while a
// game is live, and the upstream detailed state otherwise.
func mapDetail(status games.GameStatus, st gameStatus, ls linescore) games.Detail {
	d := games.Detail{Period: ls.CurrentInning, Description: st.DetailedState}
	if status != games.StatusInProgress || ls.CurrentInning == 0 {
		if status == games.StatusFinal && ls.CurrentInning > 9 {
			d.Description = fmt.Sprintf("Final/%d", ls.CurrentInning)
		}
		return d
	}

	inning := firstNonEmpty(ls.CurrentInningOrdinal, ordinal(ls.CurrentInning))
	half := firstNonEmpty(ls.InningState, ls.InningHalf)
	parts := []string{strings.TrimSpace(half + " " + inning)}
	if ls.Outs == 1 {
		parts = append(parts, "1 out")
	} else {
		parts = append(parts, strconv.Itoa(ls.Outs)+" outs")
	}
	if bases := occupiedBases(ls.Offense); len(bases) > 0 {
		parts = append(parts, "on "+strings.Join(bases, ", "))
	}
	d.Description = strings.Join(parts, " · ")
	return d
}

func occupiedBases(o offense) []string {
	var out []string
	if o.First != nil && o.First.ID != 0 {
		out = append(out, "1st")
	}
	if o.Second != nil && o.Second.ID != 0 {
		out = append(out, "2nd")
	}
	if o.Third != nil && o.Third.ID != 0 {
		out = append(out, "3rd")
	}
	return out
}

func ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}

func mapStandings(resp standingsResponse, season string) standings.Table {
	table := standings.Table{League: leagueKey, Season: season}
	for _, rec := range resp.Records {
		group := standings.Group{
			Name:    divisionName(rec.Division.ID, rec.Division.Name),
			Entries: make([]standings.Entry, 0, len(rec.TeamRecords)),
		}
		for i, tr := range rec.TeamRecords {
			rank, err := strconv.Atoi(tr.DivisionRank)
			if err != nil || rank <= 0 {
				rank = i + 1
			}
			if table.Season == "" {
				table.Season = tr.Season
			}
			group.Entries = append(group.Entries, standings.Entry{
				Rank:        rank,
				Team:        mapTeam(tr.Team, &leagueRecord{Wins: tr.Wins, Losses: tr.Losses}),
				Wins:        tr.Wins,
				Losses:      tr.Losses,
				GamesPlayed: tr.GamesPlayed,
				GoalDiff:    tr.RunDifferential,
				Stats: map[string]string{
					"gamesBack":         tr.GamesBack,
					"winningPercentage": tr.WinningPercentage,
					"streak":            tr.Streak.StreakCode,
				},
			})
		}
		sort.SliceStable(group.Entries, func(i, j int) bool { return group.Entries[i].Rank < group.Entries[j].Rank })
		table.Groups = append(table.Groups, group)
	}
	sort.SliceStable(table.Groups, func(i, j int) bool { return table.Groups[i].Name < table.Groups[j].Name })
	return table
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
