package timeutil

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

const (
	espnLayout = "20060102"
	mlbLayout  = "01/02/2006"
)

// MaxRangeDays caps how many days a single scoreboard query may span.
const MaxRangeDays = 62

var (
	ErrRangeInverted = errors.New("end date before start date")
	ErrRangeTooLong  = fmt.Errorf("date range exceeds %d days", MaxRangeDays)
)

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ESPNDate formats a time the way ESPN's dates query parameter expects.
func ESPNDate(t time.Time) string {
	return t.Format(espnLayout)
}

// MLBDate formats a time as MM/DD/YYYY for the MLB Stats API.
func MLBDate(t time.Time) string {
	return t.Format(mlbLayout)
}

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Day returns a single-day range.
func Day(t time.Time) DateRange {
	d := truncateDay(t)
	return DateRange{Start: d, End: d}
}

// NewDateRange validates and normalizes an inclusive range of days.
func NewDateRange(start, end time.Time) (DateRange, error) {
	s, e := truncateDay(start), truncateDay(end)
	if e.Before(s) {
		return DateRange{}, ErrRangeInverted
	}
	r := DateRange{Start: s, End: e}
	if r.Days() > MaxRangeDays {
		return DateRange{}, ErrRangeTooLong
	}
	return r, nil
}

// ParseRange builds a range from YYYY-MM-DD strings; an empty end means a single day.
func ParseRange(start, end string) (DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	if end == "" {
		return Day(s), nil
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, err
	}
	return NewDateRange(s, e)
}

// Days reports the number of calendar days in the range.
func (r DateRange) Days() int {
	return int(math.Round(r.End.Sub(r.Start).Hours()/24)) + 1
}

// Single reports whether the range covers exactly one day.
func (r DateRange) Single() bool {
	return r.Start.Equal(r.End)
}

// ESPNParam renders the range as YYYYMMDD or YYYYMMDD-YYYYMMDD.
func (r DateRange) ESPNParam() string {
	if r.Single() {
		return ESPNDate(r.Start)
	}
	return ESPNDate(r.Start) + "-" + ESPNDate(r.End)
}

// Key renders the range for cache keys and logs.
func (r DateRange) Key() string {
	if r.Single() {
		return FormatDate(r.Start)
	}
	return FormatDate(r.Start) + ".." + FormatDate(r.End)
}

// Contains reports whether t falls on one of the range's days.
func (r DateRange) Contains(t time.Time) bool {
	d := truncateDay(t.In(r.Start.Location()))
	return !d.Before(r.Start) && !d.After(r.End)
}

// EachDay returns every date in the range as YYYY-MM-DD.
func (r DateRange) EachDay() []string {
	out := make([]string, 0, r.Days())
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		out = append(out, FormatDate(d))
	}
	return out
}

// Chunks splits the range into consecutive ranges of at most days days.
func (r DateRange) Chunks(days int) []DateRange {
	if days <= 0 {
		return []DateRange{r}
	}
	var out []DateRange
	for start := r.Start; !start.After(r.End); start = start.AddDate(0, 0, days) {
		end := start.AddDate(0, 0, days-1)
		if end.After(r.End) {
			end = r.End
		}
		out = append(out, DateRange{Start: start, End: end})
	}
	return out
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// LoadZone resolves an IANA zone name. Empty or unknown names yield fallback.
func LoadZone(name string, fallback *time.Location) *time.Location {
	if name == "" {
		return fallback
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fallback
	}
	return loc
}
