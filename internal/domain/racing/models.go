package racing

import "time"

// Event is one race weekend.
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Season    string    `json:"season,omitempty"`
	Circuit   string    `json:"circuit,omitempty"`
	StartTime time.Time `json:"startTime"`
	Status    string    `json:"status"`
	Sessions  []Session `json:"sessions"`
}

// Session is a practice, qualifying, sprint or race session.
type Session struct {
	Name      string    `json:"name"`
	StartTime time.Time `json:"startTime"`
	Status    string    `json:"status"`
	Results   []Result  `json:"results,omitempty"`
}

// Result is one driver's classification in a session.
type Result struct {
	Position int    `json:"position"`
	Driver   string `json:"driver"`
	Team     string `json:"team,omitempty"`
	Time     string `json:"time,omitempty"`
}

// RacesResponse is the payload returned by /leagues/f1/races.
type RacesResponse struct {
	Start  string  `json:"start"`
	End    string  `json:"end"`
	Events []Event `json:"events"`
}

// OnDay reports whether any session of the event starts on day in loc.
func (e Event) OnDay(day time.Time, loc *time.Location) bool {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := day.In(loc).Date()
	match := func(t time.Time) bool {
		ty, tm, td := t.In(loc).Date()
		return ty == y && tm == m && td == d
	}
	if match(e.StartTime) {
		return true
	}
	for _, s := range e.Sessions {
		if match(s.StartTime) {
			return true
		}
	}
	return false
}
