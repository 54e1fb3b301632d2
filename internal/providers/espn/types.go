package espn

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

type scoreboardResponse struct {
	Events []event `json:"events"`
}

type scheduleResponse struct {
	Events []event `json:"events"`
}

type event struct {
	ID           string        `json:"id"`
	Date         espnTime      `json:"date"`
	Name         string        `json:"name"`
	ShortName    string        `json:"shortName"`
	Season       seasonRef     `json:"season"`
	Status       status        `json:"status"`
	Circuit      *venueRef     `json:"circuit,omitempty"`
	Competitions []competition `json:"competitions"`
}

type seasonRef struct {
	Year int    `json:"year"`
	Type int    `json:"type"`
	Slug string `json:"slug"`
}

type status struct {
	DisplayClock string     `json:"displayClock"`
	Period       int        `json:"period"`
	Type         statusType `json:"type"`
}

type statusType struct {
	Name        string `json:"name"`
	State       string `json:"state"`
	Completed   bool   `json:"completed"`
	Description string `json:"description"`
	Detail      string `json:"detail"`
	ShortDetail string `json:"shortDetail"`
}

type venueRef struct {
	FullName string `json:"fullName"`
}

type note struct {
	Headline string `json:"headline"`
}

type legRef struct {
	Value int `json:"value"`
}

type competitionType struct {
	Abbreviation string `json:"abbreviation"`
	Text         string `json:"text"`
}

type competition struct {
	ID          string          `json:"id"`
	Date        espnTime        `json:"date"`
	Venue       *venueRef       `json:"venue,omitempty"`
	Status      *status         `json:"status,omitempty"`
	Notes       []note          `json:"notes"`
	Leg         *legRef         `json:"leg,omitempty"`
	Type        competitionType `json:"type"`
	Competitors []competitor    `json:"competitors"`
}

type competitor struct {
	ID            string      `json:"id"`
	HomeAway      string      `json:"homeAway"`
	Order         int         `json:"order"`
	Score         flexScore   `json:"score"`
	ShootoutScore flexScore   `json:"shootoutScore"`
	Winner        bool        `json:"winner"`
	Team          teamPayload `json:"team"`
	Athlete       *athleteRef `json:"athlete,omitempty"`
	Records       []record    `json:"records"`
}

type athleteRef struct {
	DisplayName string `json:"displayName"`
	ShortName   string `json:"shortName"`
}

type record struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Summary string `json:"summary"`
}

type logoPayload struct {
	Href string   `json:"href"`
	Rel  []string `json:"rel"`
}

type teamPayload struct {
	ID               string        `json:"id"`
	Location         string        `json:"location"`
	Name             string        `json:"name"`
	Abbreviation     string        `json:"abbreviation"`
	DisplayName      string        `json:"displayName"`
	ShortDisplayName string        `json:"shortDisplayName"`
	Color            string        `json:"color"`
	Logo             string        `json:"logo"`
	Logos            []logoPayload `json:"logos"`
	Record           struct {
		Items []record `json:"items"`
	} `json:"record"`
}

type teamResponse struct {
	Team teamPayload `json:"team"`
}

type rosterResponse struct {
	Athletes []rosterEntry `json:"athletes"`
}

// rosterEntry is either an athlete or a position group holding athletes in
// Items, depending on the sport.
type rosterEntry struct {
	athlete
	Items []athlete `json:"items"`
}

type athlete struct {
	ID          string `json:"id"`
	FullName    string `json:"fullName"`
	DisplayName string `json:"displayName"`
	Jersey      string `json:"jersey"`
	Age         int    `json:"age"`
	Position    positionRef `json:"position"`
	Headshot struct {
		Href string `json:"href"`
	} `json:"headshot"`
}

type summaryResponse struct {
	Header struct {
		ID           string        `json:"id"`
		Season       seasonRef     `json:"season"`
		Competitions []competition `json:"competitions"`
	} `json:"header"`
	GameInfo struct {
		Venue venueRef `json:"venue"`
	} `json:"gameInfo"`
}

type standingsResponse struct {
	Name      string           `json:"name"`
	Children  []standingsGroup `json:"children"`
	Standings standingsBlock   `json:"standings"`
}

type standingsGroup struct {
	Name      string           `json:"name"`
	Children  []standingsGroup `json:"children"`
	Standings standingsBlock   `json:"standings"`
}

type standingsBlock struct {
	Season  int             `json:"season"`
	Entries []standingEntry `json:"entries"`
}

type standingEntry struct {
	Team  teamPayload `json:"team"`
	Stats []statValue `json:"stats"`
}

type statValue struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Value        float64 `json:"value"`
	DisplayValue string  `json:"displayValue"`
}

// positionRef is an object on athletes and a bare group label ("offense")
// on roster groups.
type positionRef struct {
	Abbreviation string
}

func (p *positionRef) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	var obj struct {
		Abbreviation string `json:"abbreviation"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	p.Abbreviation = obj.Abbreviation
	return nil
}

// espnTime parses ESPN timestamps, which are RFC3339 or minute-precision
// ("2024-03-10T18:00Z").
type espnTime struct {
	time.Time
}

var espnTimeLayouts = []string{time.RFC3339, "2006-01-02T15:04Z07:00", "2006-01-02T15:04Z"}

func (t *espnTime) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil || raw == "" {
		return nil
	}
	for _, layout := range espnTimeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return nil
}

// flexScore accepts "3", 3, or {"value":3,"displayValue":"3"}.
type flexScore struct {
	Value int
	Set   bool
}

func (s *flexScore) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	switch b[0] {
	case '"':
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		return s.setString(raw)
	case '{':
		var obj struct {
			Value        *float64 `json:"value"`
			DisplayValue string   `json:"displayValue"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		if obj.Value != nil {
			s.Value, s.Set = int(*obj.Value), true
			return nil
		}
		return s.setString(obj.DisplayValue)
	default:
		var f float64
		if err := json.Unmarshal(b, &f); err != nil {
			return err
		}
		s.Value, s.Set = int(f), true
		return nil
	}
}

func (s *flexScore) setString(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	s.Value, s.Set = int(f), true
	return nil
}
