// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package api

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/playdex/playdex/internal/catalog"
	"github.com/playdex/playdex/internal/metrics"
	"github.com/playdex/playdex/internal/playlist"
)

// Arranged-view ordering modes.
const (
	orderAlpha   = "alpha"
	orderRelease = "release"
	orderTime    = "time"
	orderSpecial = "special"
)

// createPlaylistRequest is the POST /api/v1/playlists body.
type createPlaylistRequest struct {
	Name string `json:"name" validate:"required,min=1,max=120"`
}

// addGameRequest is the POST /api/v1/playlists/{id}/games body.
type addGameRequest struct {
	GameID int `json:"game_id" validate:"gte=0"`
}

// playlistResponse is a list plus its membership.
type playlistResponse struct {
	List  playlist.List `json:"list"`
	Games []int         `json:"games"`
}

func (h *Handler) listPlaylists(w http.ResponseWriter, r *http.Request) {
	lists, err := h.lists.Lists(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("list playlists failed")
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "could not list playlists")
		return
	}
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"results": lists,
		"count":   len(lists),
	})
}

func (h *Handler) createPlaylist(w http.ResponseWriter, r *http.Request) {
	var req createPlaylistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "malformed JSON body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "name is required (max 120 chars)")
		return
	}

	created, err := h.lists.CreateList(r.Context(), req.Name)
	if err != nil {
		h.logger.Error().Err(err).Msg("create playlist failed")
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "could not create playlist")
		return
	}
	respondSuccess(w, http.StatusCreated, created)
}

func (h *Handler) getPlaylist(w http.ResponseWriter, r *http.Request) {
	listID, ok := h.listID(w, r)
	if !ok {
		return
	}

	list, err := h.lists.GetList(r.Context(), listID)
	if h.respondListError(w, err, "load playlist") {
		return
	}
	games, err := h.lists.GameIDs(r.Context(), listID)
	if h.respondListError(w, err, "load playlist games") {
		return
	}

	respondSuccess(w, http.StatusOK, playlistResponse{List: list, Games: games})
}

func (h *Handler) deletePlaylist(w http.ResponseWriter, r *http.Request) {
	listID, ok := h.listID(w, r)
	if !ok {
		return
	}
	if h.respondListError(w, h.lists.DeleteList(r.Context(), listID), "delete playlist") {
		return
	}
	respondSuccess(w, http.StatusOK, map[string]interface{}{"deleted": listID})
}

func (h *Handler) addPlaylistGame(w http.ResponseWriter, r *http.Request) {
	listID, ok := h.listID(w, r)
	if !ok {
		return
	}

	var req addGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "game_id must be non-negative")
		return
	}
	if _, found := h.store.ByID(req.GameID); !found {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "unknown game")
		return
	}

	if h.respondListError(w, h.lists.AddGame(r.Context(), listID, req.GameID), "add game") {
		return
	}
	respondSuccess(w, http.StatusCreated, map[string]interface{}{
		"list_id": listID,
		"game_id": req.GameID,
	})
}

func (h *Handler) removePlaylistGame(w http.ResponseWriter, r *http.Request) {
	listID, ok := h.listID(w, r)
	if !ok {
		return
	}
	gameID, ok := h.gameID(w, r, "gameID")
	if !ok {
		return
	}

	if h.respondListError(w, h.lists.RemoveGame(r.Context(), listID, gameID), "remove game") {
		return
	}
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"list_id": listID,
		"game_id": gameID,
	})
}

// getArranged serves one ordered view of a playlist, through the
// arranged-view cache.
func (h *Handler) getArranged(w http.ResponseWriter, r *http.Request) {
	listID, ok := h.listID(w, r)
	if !ok {
		return
	}

	mode := r.URL.Query().Get("order")
	if mode == "" {
		mode = orderSpecial
	}
	switch mode {
	case orderAlpha, orderRelease, orderTime, orderSpecial:
	default:
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"order must be one of alpha, release, time, special")
		return
	}

	ids, err := h.lists.GameIDs(r.Context(), listID)
	if h.respondListError(w, err, "load playlist games") {
		return
	}

	if arranged, hit := h.orderCache.Get(listID, mode, ids); hit {
		metrics.RecordCacheAccess("arranged_view", true)
		respondCached(w, map[string]interface{}{
			"order":   mode,
			"results": arranged,
			"count":   len(arranged),
		})
		return
	}
	metrics.RecordCacheAccess("arranged_view", false)

	arranged := h.arrange(r, mode, ids)
	h.orderCache.Put(listID, mode, ids, arranged)

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"order":   mode,
		"results": arranged,
		"count":   len(arranged),
	})
}

// arrange computes one ordered view. Unknown IDs are dropped.
func (h *Handler) arrange(r *http.Request, mode string, ids []int) []catalog.Item {
	if mode == orderSpecial {
		start := time.Now()
		arranged := h.orch.BuildPlaySequence(r.Context(), ids)
		metrics.RecordSequenceBuild(time.Since(start))
		return arranged
	}

	items := make([]catalog.Item, 0, len(ids))
	for _, id := range ids {
		if item, found := h.store.ByID(id); found {
			items = append(items, item)
		}
	}

	switch mode {
	case orderAlpha:
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		})
	case orderRelease:
		// Unknown years (0) sort last.
		sort.SliceStable(items, func(i, j int) bool {
			yi, yj := items[i].ReleaseYear, items[j].ReleaseYear
			if yi == 0 {
				return false
			}
			if yj == 0 {
				return true
			}
			return yi < yj
		})
	case orderTime:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Playtime < items[j].Playtime
		})
	}
	return items
}

// listID parses the playlist ID path parameter.
func (h *Handler) listID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "playlist ID must be an integer")
		return 0, false
	}
	return id, true
}

// respondListError maps store errors to responses; reports whether an
// error was handled.
func (h *Handler) respondListError(w http.ResponseWriter, err error, op string) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, playlist.ErrNotFound) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "no such playlist or membership")
		return true
	}
	h.logger.Error().Err(err).Str("op", op).Msg("playlist store error")
	respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "playlist storage failed")
	return true
}
