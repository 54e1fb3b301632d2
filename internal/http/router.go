package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/preston-bernstein/sports-scores-service/internal/http/handlers"
	"github.com/preston-bernstein/sports-scores-service/internal/http/middleware"
	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
)

// Options configures cross-cutting router behavior.
type Options struct {
	Logger         *slog.Logger
	Metrics        *metrics.Recorder
	AllowedOrigins []string
}

// NewRouter registers HTTP routes on a chi router. admin and live may be nil
// to leave those routes out.
func NewRouter(h *handlers.Handler, admin *handlers.AdminHandler, live nethttp.Handler, opts Options) nethttp.Handler {
	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(func(next nethttp.Handler) nethttp.Handler {
		return middleware.LoggingMiddleware(opts.Logger, opts.Metrics, next)
	})
	r.Use(chimw.Recoverer)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{nethttp.MethodGet, nethttp.MethodPost, nethttp.MethodPut, nethttp.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID", "Retry-After"},
		MaxAge:         300,
	}).Handler)

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)

	r.Route("/leagues", func(r chi.Router) {
		r.Get("/", h.Leagues)
		r.Get("/f1/races", h.Races)
		r.Route("/{league}", func(r chi.Router) {
			r.Get("/scoreboard", h.Scoreboard)
			r.Get("/standings", h.Standings)
			r.Get("/bracket", h.Bracket)
			r.Get("/games/{gameID}", h.Game)
			r.Get("/teams/{teamID}", h.Team)
			r.Get("/teams/{teamID}/roster", h.Roster)
		})
	})

	r.Route("/favorites", func(r chi.Router) {
		r.Get("/", h.ListFavorites)
		r.Post("/", h.AddFavorite)
		r.Put("/", h.ReplaceFavorites)
		r.Delete("/{league}/{teamID}", h.DeleteFavorite)
		r.Get("/games", h.FavoriteGames)
		r.Get("/games/{gameID}", h.FavoriteGame)
	})

	if live != nil {
		r.Get("/live/ws", live.ServeHTTP)
	}
	if admin != nil {
		r.Post("/admin/snapshots/refresh", admin.RefreshSnapshots)
	}
	return r
}
