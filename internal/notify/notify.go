package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/slack-go/slack"

	"github.com/preston-bernstein/sports-scores-service/internal/config"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
)

const webhookTimeout = 5 * time.Second

// Notifier is told about games whose score or status moved.
type Notifier interface {
	ScoreChanged(ctx context.Context, before, after games.Game) error
}

// New returns a SlackNotifier when a webhook is configured and a
// NopNotifier otherwise.
func New(cfg config.SlackConfig) Notifier {
	if cfg.WebhookURL == "" {
		return NopNotifier{}
	}
	return NewSlackNotifier(cfg.WebhookURL, cfg.Channel, nil)
}

// NopNotifier drops every notification.
type NopNotifier struct{}

func (NopNotifier) ScoreChanged(context.Context, games.Game, games.Game) error { return nil }

// SlackNotifier posts score changes to a Slack incoming webhook. Failures
// are returned to the caller, which owns logging them.
type SlackNotifier struct {
	url     string
	channel string
	client  *http.Client
}

func NewSlackNotifier(url, channel string, client *http.Client) *SlackNotifier {
	if client == nil {
		client = &http.Client{Timeout: webhookTimeout}
	}
	return &SlackNotifier{url: url, channel: channel, client: client}
}

// ScoreChanged posts a one-line summary of after.
func (n *SlackNotifier) ScoreChanged(ctx context.Context, before, after games.Game) error {
	msg := &slack.WebhookMessage{
		Channel: n.channel,
		Text:    Message(before, after),
	}
	if err := slack.PostWebhookCustomHTTPContext(ctx, n.url, n.client, msg); err != nil {
		return fmt.Errorf("slack webhook %s: %w", after.ID, err)
	}
	return nil
}

// Message renders a score change, e.g. "FINAL · nfl · Bills 17 - 24 Chiefs".
func Message(before, after games.Game) string {
	prefix := string(after.Status)
	if before.Status == after.Status && after.Status.IsLive() {
		prefix = "SCORE"
	}
	line := fmt.Sprintf("%s · %s · %s %d - %d %s", prefix, after.League,
		after.AwayTeam.DisplayName(), after.Score.Away,
		after.Score.Home, after.HomeTeam.DisplayName())
	if d := after.Detail.Description; d != "" {
		line += " (" + d + ")"
	}
	return line
}

// Change is a game before and after an update.
type Change struct {
	Before games.Game
	After  games.Game
}

// DiffScores pairs games in next with their previous version and returns
// those whose score or status changed. Games new to next are not reported.
func DiffScores(prev, next []games.Game) []Change {
	byID := make(map[string]games.Game, len(prev))
	for _, g := range prev {
		byID[g.ID] = g
	}
	var out []Change
	for _, g := range next {
		old, ok := byID[g.ID]
		if !ok {
			continue
		}
		if old.Score != g.Score || old.Status != g.Status {
			out = append(out, Change{Before: old, After: g})
		}
	}
	return out
}
