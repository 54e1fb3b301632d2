package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestWithCommon(t *testing.T) {
	attrs := WithCommon(nil, "scores", "v2")
	if len(attrs) != 2 || attrs[0].Key != FieldService || attrs[1].Value.String() != "v2" {
		t.Fatalf("unexpected attrs %+v", attrs)
	}

	base := []slog.Attr{slog.String("existing", "x")}
	if got := WithCommon(base, "", ""); len(got) != 1 {
		t.Fatalf("blank values should be skipped, got %+v", got)
	}
	if got := WithCommon(nil, "", "v1"); len(got) != 1 || got[0].Key != FieldVersion {
		t.Fatalf("expected only version, got %+v", got)
	}
}

func TestHelpersRespectLevelAndNil(t *testing.T) {
	Info(nil, "ignored")
	Warn(nil, "ignored")
	Debug(nil, "ignored")
	Error(nil, "ignored", errors.New("x"))

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))

	Debug(logger, "hidden")
	Warn(logger, "careful", FieldGameID, "g1")
	Error(logger, "broke", errors.New("boom"), FieldLeague, "nfl")
	Error(logger, "no cause", nil)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered: %s", out)
	}
	for _, want := range []string{"level=WARN", "game_id=g1", "error=boom", "league=nfl", "no cause"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %s", want, out)
		}
	}
	if strings.Count(out, "error=") != 1 {
		t.Fatalf("nil error should not be logged: %s", out)
	}
}
