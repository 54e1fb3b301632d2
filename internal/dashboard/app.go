package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
)

const (
	pageFavorites = "favorites"
	pageLeagues   = "leagues"
	pageBoard     = "board"

	defaultRefresh = 30 * time.Second
	footerKeys     = "[gray]f[-] favorites  [gray]l[-] leagues  [gray]r[-] refresh  [gray]q[-] quit"
)

// Dashboard is the two-screen terminal UI: a favorites table refreshed on an
// interval, and a league scoreboard chosen from the league list.
type Dashboard struct {
	client   *Client
	interval time.Duration
	loc      *time.Location
	logger   *slog.Logger

	app       *tview.Application
	pages     *tview.Pages
	favorites *tview.Table
	leagues   *tview.List
	board     *tview.Table
	footer    *tview.TextView

	ctx context.Context

	mu     sync.Mutex
	screen string
	league string
}

// New builds the UI. interval defaults to 30s.
func New(client *Client, interval time.Duration, loc *time.Location, logger *slog.Logger) *Dashboard {
	if interval <= 0 {
		interval = defaultRefresh
	}
	if loc == nil {
		loc = time.Local
	}
	d := &Dashboard{
		client:    client,
		interval:  interval,
		loc:       loc,
		logger:    logger,
		app:       tview.NewApplication(),
		pages:     tview.NewPages(),
		favorites: tview.NewTable().SetFixed(1, 0).SetSelectable(true, false),
		leagues:   tview.NewList().ShowSecondaryText(true),
		board:     tview.NewTable().SetFixed(1, 0).SetSelectable(true, false),
		footer:    tview.NewTextView().SetDynamicColors(true),
		ctx:       context.Background(),
		screen:    pageFavorites,
	}

	d.favorites.SetBorder(true).SetTitle(" Favorites ")
	d.leagues.SetBorder(true).SetTitle(" Leagues ")
	d.board.SetBorder(true).SetTitle(" Scoreboard ")

	d.pages.AddPage(pageFavorites, d.favorites, true, true)
	d.pages.AddPage(pageLeagues, d.leagues, true, false)
	d.pages.AddPage(pageBoard, d.board, true, false)

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(d.pages, 0, 1, true).
		AddItem(d.footer, 1, 0, false)
	d.app.SetRoot(layout, true).SetInputCapture(d.handleKey)
	return d
}

// Run loads the first screen, refreshes on the interval and blocks until
// the user quits or ctx ends.
func (d *Dashboard) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	d.ctx = ctx

	go d.loadLeagues(ctx)
	go d.refreshLoop(ctx)
	go func() {
		<-ctx.Done()
		d.app.Stop()
	}()
	return d.app.Run()
}

func (d *Dashboard) refreshLoop(ctx context.Context) {
	d.refresh(ctx)
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.refresh(ctx)
		}
	}
}

// refresh reloads whichever data screen is showing.
func (d *Dashboard) refresh(ctx context.Context) {
	d.mu.Lock()
	screen, league := d.screen, d.league
	d.mu.Unlock()

	if screen == pageBoard && league != "" {
		d.loadBoard(ctx, league)
		return
	}
	d.loadFavorites(ctx)
}

func (d *Dashboard) loadFavorites(ctx context.Context) {
	res, err := d.client.FavoriteGames(ctx)
	d.app.QueueUpdateDraw(func() {
		if err != nil {
			d.showError("favorites", err)
			return
		}
		FillGames(d.favorites, res.Games, d.loc)
		title := fmt.Sprintf(" Favorites · %s ", res.Date)
		if res.Partial {
			title = fmt.Sprintf(" Favorites · %s (partial) ", res.Date)
		}
		d.favorites.SetTitle(title)
		d.setFooter(liveCount(res.Games))
	})
}

func (d *Dashboard) loadBoard(ctx context.Context, league string) {
	sb, err := d.client.Scoreboard(ctx, league, "")
	d.app.QueueUpdateDraw(func() {
		if err != nil {
			d.showError(league, err)
			return
		}
		FillGames(d.board, sb.Games, d.loc)
		d.board.SetTitle(fmt.Sprintf(" %s · %s ", league, sb.Range.Start))
		d.setFooter(liveCount(sb.Games))
	})
}

func (d *Dashboard) loadLeagues(ctx context.Context) {
	ls, err := d.client.Leagues(ctx)
	d.app.QueueUpdateDraw(func() {
		if err != nil {
			d.showError("leagues", err)
			return
		}
		d.leagues.Clear()
		for _, l := range ls {
			if l.IsRacing() {
				continue
			}
			key := l.Key
			d.leagues.AddItem(l.Name, key, 0, func() {
				d.mu.Lock()
				d.league = key
				d.mu.Unlock()
				d.show(pageBoard)
				go d.loadBoard(ctx, key)
			})
		}
	})
}

func (d *Dashboard) handleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyCtrlC:
		d.app.Stop()
		return nil
	case tcell.KeyEscape:
		d.show(pageLeagues)
		return nil
	}

	switch event.Rune() {
	case 'q', 'Q':
		d.app.Stop()
		return nil
	case 'f', 'F':
		d.show(pageFavorites)
		go d.loadFavorites(d.ctx)
		return nil
	case 'l', 'L':
		d.show(pageLeagues)
		return nil
	case 'r', 'R':
		go d.refresh(d.ctx)
		return nil
	}
	return event
}

// show switches screens. Call from the UI goroutine.
func (d *Dashboard) show(page string) {
	d.mu.Lock()
	d.screen = page
	d.mu.Unlock()
	d.pages.SwitchToPage(page)
}

func (d *Dashboard) showError(what string, err error) {
	logging.Warn(d.logger, "dashboard load failed", "screen", what, logging.FieldError, err)
	d.footer.SetText(fmt.Sprintf("[red]%s: %v[-]  %s", what, err, footerKeys))
}

func (d *Dashboard) setFooter(live int) {
	status := fmt.Sprintf("[gray]updated %s[-]", time.Now().In(d.loc).Format("3:04:05 PM"))
	if live > 0 {
		status = fmt.Sprintf("[green]● %d LIVE[-]  %s", live, status)
	}
	d.footer.SetText(status + "  " + footerKeys)
}

func liveCount(gs []games.Game) int {
	n := 0
	for _, g := range gs {
		if g.Status.IsLive() {
			n++
		}
	}
	return n
}
