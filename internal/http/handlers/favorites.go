package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/sports-scores-service/internal/app/favorites"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
)

type favoritesResponse struct {
	Favorites []favorites.Favorite `json:"favorites"`
}

// ListFavorites returns the starred teams.
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	favs, err := h.svc.Favorites.List()
	if err != nil {
		logging.Error(loggerFromContext(r, h.logger), "favorites list failed", err)
		writeError(w, r, http.StatusInternalServerError, "favorites unavailable", h.logger)
		return
	}
	if favs == nil {
		favs = []favorites.Favorite{}
	}
	writeJSON(w, http.StatusOK, favoritesResponse{Favorites: favs}, h.logger)
}

// AddFavorite stars one team.
func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var in favorites.Favorite
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body", h.logger)
		return
	}
	f, err := favorites.Validate(in)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if err := h.svc.Favorites.Add(f); err != nil {
		h.storeFailed(w, r, err)
		return
	}
	h.favoritesChanged(r, "added", f)
	writeJSON(w, http.StatusCreated, f, h.logger)
}

// ReplaceFavorites swaps the whole favorites list.
func (h *Handler) ReplaceFavorites(w http.ResponseWriter, r *http.Request) {
	var in []favorites.Favorite
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body", h.logger)
		return
	}
	favs, err := favorites.ValidateAll(in)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if err := h.svc.Favorites.Replace(favs); err != nil {
		h.storeFailed(w, r, err)
		return
	}
	h.favoritesChanged(r, "replaced", favorites.Favorite{})
	writeJSON(w, http.StatusOK, favoritesResponse{Favorites: favs}, h.logger)
}

// DeleteFavorite un-stars one team.
func (h *Handler) DeleteFavorite(w http.ResponseWriter, r *http.Request) {
	teamID, ok := pathID(r, "teamID")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid team id", h.logger)
		return
	}
	key := favorites.Favorite{League: chi.URLParam(r, "league"), TeamID: teamID}.Normalize()
	if err := h.svc.Favorites.Remove(key.League, key.TeamID); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	h.favoritesChanged(r, "removed", key)
	w.WriteHeader(http.StatusNoContent)
}

// FavoriteGames returns the latest favorites aggregation.
func (h *Handler) FavoriteGames(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.FavoriteGames.Favorites(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, res, h.logger)
}

// FavoriteGame returns one game from the latest favorites aggregation.
func (h *Handler) FavoriteGame(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "gameID")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid game id", h.logger)
		return
	}
	g, found := h.svc.FavoriteGames.GameByID(id)
	if !found {
		writeError(w, r, http.StatusNotFound, "game not found", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, g, h.logger)
}

func (h *Handler) storeFailed(w http.ResponseWriter, r *http.Request, err error) {
	logging.Error(loggerFromContext(r, h.logger), "favorites write failed", err)
	writeError(w, r, http.StatusInternalServerError, "favorites not saved", h.logger)
}

func (h *Handler) favoritesChanged(r *http.Request, action string, f favorites.Favorite) {
	if h.svc.FavoriteGames != nil {
		h.svc.FavoriteGames.Invalidate()
	}
	attrs := []any{"action", action}
	if f.League != "" {
		attrs = append(attrs, logging.FieldLeague, f.League, logging.FieldTeamID, f.TeamID)
	}
	logging.Info(loggerFromContext(r, h.logger), "favorites changed", attrs...)
}
