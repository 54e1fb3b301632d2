package espn

import (
	"strconv"
	"strings"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/racing"
)

func mapRaceEvent(ev event) racing.Event {
	out := racing.Event{
		ID:        ev.ID,
		Name:      ev.Name,
		StartTime: ev.Date.Time,
		Status:    string(mapStatus(ev.Status)),
	}
	if ev.Season.Year > 0 {
		out.Season = strconv.Itoa(ev.Season.Year)
	}
	if ev.Circuit != nil {
		out.Circuit = ev.Circuit.FullName
	}
	for _, comp := range ev.Competitions {
		session := racing.Session{
			Name:      firstNonEmpty(comp.Type.Abbreviation, comp.Type.Text, "Session"),
			StartTime: comp.Date.Time,
			Status:    out.Status,
		}
		if comp.Status != nil {
			session.Status = string(mapStatus(*comp.Status))
		}
		for _, c := range comp.Competitors {
			if c.Athlete == nil {
				continue
			}
			session.Results = append(session.Results, racing.Result{
				Position: c.Order,
				Driver:   firstNonEmpty(c.Athlete.DisplayName, c.Athlete.ShortName),
				Team:     strings.TrimSpace(c.Team.DisplayName),
			})
		}
		out.Sessions = append(out.Sessions, session)
	}
	return out
}
