package racing

import (
	"testing"
	"time"
)

func TestOnDayMatchesAnySession(t *testing.T) {
	ev := Event{
		StartTime: time.Date(2024, 5, 24, 11, 30, 0, 0, time.UTC),
		Sessions: []Session{
			{Name: "Race", StartTime: time.Date(2024, 5, 26, 13, 0, 0, 0, time.UTC)},
		},
	}
	if !ev.OnDay(time.Date(2024, 5, 26, 0, 0, 0, 0, time.UTC), time.UTC) {
		t.Fatalf("expected race day match")
	}
	if ev.OnDay(time.Date(2024, 5, 25, 0, 0, 0, 0, time.UTC), nil) {
		t.Fatalf("expected no match on saturday")
	}
}
