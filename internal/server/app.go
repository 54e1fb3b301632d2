package server

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/app/brackets"
	"github.com/preston-bernstein/sports-scores-service/internal/app/favorites"
	appgames "github.com/preston-bernstein/sports-scores-service/internal/app/games"
	"github.com/preston-bernstein/sports-scores-service/internal/app/scores"
	"github.com/preston-bernstein/sports-scores-service/internal/app/standings"
	"github.com/preston-bernstein/sports-scores-service/internal/app/teams"
	"github.com/preston-bernstein/sports-scores-service/internal/config"
	httpserver "github.com/preston-bernstein/sports-scores-service/internal/http"
	"github.com/preston-bernstein/sports-scores-service/internal/http/handlers"
	"github.com/preston-bernstein/sports-scores-service/internal/live"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
	"github.com/preston-bernstein/sports-scores-service/internal/notify"
	"github.com/preston-bernstein/sports-scores-service/internal/poller"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
	"github.com/preston-bernstein/sports-scores-service/internal/store"
	"github.com/preston-bernstein/sports-scores-service/internal/timeutil"
)

// components is the wired object graph behind one Server.
type components struct {
	store       *store.MemoryStore
	favorites   favorites.Store
	broadcaster *live.Broadcaster
	poller      *poller.Poller
	snapshots   snapshotComponents
	handler     http.Handler
}

func buildComponents(cfg config.Config, provider providers.DataProvider, logger *slog.Logger, recorder *metrics.Recorder) components {
	loc := resolveLocation(cfg.Timezone, logger)
	memoryStore := store.NewMemoryStore()
	favStore := buildFavoritesStore(cfg, memoryStore, logger)
	broadcaster := live.NewBroadcaster(0, recorder)

	aggregator := favorites.NewAggregator(provider, favStore, logger, cfg.Favorites.Concurrency)
	plr := poller.New(aggregator, memoryStore, logger, recorder, cfg.Poller.Interval,
		poller.WithPublisher(broadcaster),
		poller.WithNotifier(notify.New(cfg.Slack)),
		poller.WithLocation(loc),
		poller.WithFullEvery(cfg.Poller.FullEvery),
	)

	snaps := buildSnapshots(cfg, provider, loc, logger)
	var snapStore scores.SnapshotStore
	if snaps.store != nil {
		snapStore = snaps.store
	}

	var statusFn func() poller.Status
	if cfg.Poller.Enabled {
		statusFn = plr.Status
	}
	h := handlers.NewHandler(handlers.Services{
		Scores:        scores.NewService(provider, snapStore, logger),
		Standings:     standings.NewService(provider),
		Teams:         teams.NewService(provider, logger),
		Brackets:      brackets.NewService(provider, logger),
		Favorites:     favStore,
		FavoriteGames: appgames.NewService(memoryStore, plr),
	}, logger, loc, statusFn)

	var admin *handlers.AdminHandler
	if cfg.Snapshots.AdminToken != "" {
		var refresher handlers.SnapshotRefresher
		if snaps.syncer != nil {
			refresher = snaps.syncer
		}
		admin = handlers.NewAdminHandler(refresher, cfg.Snapshots.Leagues, cfg.Snapshots.AdminToken, logger)
	}

	liveHandler := live.NewHandler(broadcaster, memoryStore, logger, originChecker(cfg.CORS.AllowedOrigins))
	router := httpserver.NewRouter(h, admin, liveHandler, httpserver.Options{
		Logger:         logger,
		Metrics:        recorder,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	return components{
		store:       memoryStore,
		favorites:   favStore,
		broadcaster: broadcaster,
		poller:      plr,
		snapshots:   snaps,
		handler:     router,
	}
}

// buildFavoritesStore persists favorites to FAVORITES_FILE. Without a file,
// or when it cannot be read, favorites live in memory only.
func buildFavoritesStore(cfg config.Config, memoryStore *store.MemoryStore, logger *slog.Logger) favorites.Store {
	if cfg.Favorites.File == "" {
		return memoryStore
	}
	fs, err := favorites.NewFileStore(cfg.Favorites.File)
	if err != nil {
		logging.Warn(logger, "favorites file unreadable, keeping favorites in memory",
			slog.String("path", cfg.Favorites.File),
			slog.Any(logging.FieldError, err),
		)
		return memoryStore
	}
	return fs
}

// resolveLocation loads the zone that decides "today". An unknown zone
// falls back to UTC.
func resolveLocation(tz string, logger *slog.Logger) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc := timeutil.LoadZone(tz, nil)
	if loc == nil {
		logging.Warn(logger, "invalid timezone, using UTC", slog.String("timezone", tz))
		return time.UTC
	}
	return loc
}

// originChecker limits websocket upgrades to the CORS allow-list. A
// wildcard (or an empty list) accepts every origin.
func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 || slices.Contains(allowed, "*") {
		return nil
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(allowed, origin)
	}
}
