package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
)

var gameHeaders = []string{"LEAGUE", "AWAY", "SCORE", "HOME", "STATUS"}

// GameRow renders one game as table cells matching gameHeaders.
func GameRow(g games.Game, loc *time.Location) []string {
	return []string{
		strings.ToUpper(g.League),
		g.AwayTeam.DisplayName(),
		scoreText(g),
		g.HomeTeam.DisplayName(),
		statusText(g, loc),
	}
}

func scoreText(g games.Game) string {
	if g.Status == games.StatusScheduled || g.Status == games.StatusPostponed || g.Status == games.StatusCanceled {
		return "-"
	}
	s := fmt.Sprintf("%d - %d", g.Score.Away, g.Score.Home)
	if g.Score.HomeShootout > 0 || g.Score.AwayShootout > 0 {
		s += fmt.Sprintf(" (%d - %d pens)", g.Score.AwayShootout, g.Score.HomeShootout)
	}
	return s
}

func statusText(g games.Game, loc *time.Location) string {
	switch g.Status {
	case games.StatusScheduled:
		if g.StartTime.IsZero() {
			return "SCHEDULED"
		}
		if loc == nil {
			loc = time.Local
		}
		return g.StartTime.In(loc).Format("Mon 3:04 PM")
	case games.StatusInProgress:
		switch {
		case g.Detail.Description != "":
			return g.Detail.Description
		case g.Detail.Clock != "" && g.Detail.Period > 0:
			return fmt.Sprintf("P%d %s", g.Detail.Period, g.Detail.Clock)
		default:
			return "LIVE"
		}
	default:
		return string(g.Status)
	}
}

func statusColor(s games.GameStatus) tcell.Color {
	switch s {
	case games.StatusInProgress:
		return tcell.ColorGreen
	case games.StatusScheduled:
		return tcell.ColorYellow
	case games.StatusPostponed, games.StatusCanceled:
		return tcell.ColorRed
	default:
		return tcell.ColorWhite
	}
}

// FillGames replaces table's contents with a header row and one row per game,
// live games first.
func FillGames(table *tview.Table, gs []games.Game, loc *time.Location) {
	table.Clear()
	for col, h := range gameHeaders {
		table.SetCell(0, col, tview.NewTableCell(h).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false))
	}

	sorted := make([]games.Game, len(gs))
	copy(sorted, gs)
	games.SortForDisplay(sorted)

	if len(sorted) == 0 {
		table.SetCell(1, 0, tview.NewTableCell("No games").
			SetTextColor(tcell.ColorGray).
			SetSelectable(false))
		return
	}
	for i, g := range sorted {
		color := statusColor(g.Status)
		for col, text := range GameRow(g, loc) {
			cell := tview.NewTableCell(text).SetExpansion(1)
			if col == len(gameHeaders)-1 {
				cell.SetTextColor(color)
			}
			table.SetCell(i+1, col, cell)
		}
	}
}
