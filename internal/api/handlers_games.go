// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/playdex/playdex/internal/catalog"
	"github.com/playdex/playdex/internal/enrich"
)

// similarDefault is the similar-games count when the client does not
// ask for one.
const similarDefault = 10

// gameResponse is the payload of GET /api/v1/games/{id}.
type gameResponse struct {
	Game    enrich.Detail    `json:"game"`
	Similar []catalog.Scored `json:"similar"`
}

// getGame serves a game detail page: the enriched record plus its
// closest neighbours.
func (h *Handler) getGame(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r, "id")
	if !ok {
		return
	}

	item, found := h.store.ByID(id)
	if !found {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "unknown game")
		return
	}

	respondSuccess(w, http.StatusOK, gameResponse{
		Game:    h.enricher.Enrich(item),
		Similar: h.engine.Similar(r.Context(), id, similarDefault),
	})
}

// getSimilar serves just the similarity neighbours of one game.
func (h *Handler) getSimilar(w http.ResponseWriter, r *http.Request) {
	id, ok := h.gameID(w, r, "id")
	if !ok {
		return
	}
	if _, found := h.store.ByID(id); !found {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "unknown game")
		return
	}

	limit, err := queryInt(r, "limit", similarDefault)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be an integer")
		return
	}

	results := h.engine.Similar(r.Context(), id, limit)
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"results": results,
		"count":   len(results),
	})
}

// listGenres returns the sorted set of genres across the catalog, for
// onboarding pickers.
func (h *Handler) listGenres(w http.ResponseWriter, r *http.Request) {
	genres := h.store.Genres()
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"results": genres,
		"count":   len(genres),
	})
}

// topByGenre serves the most popular games of one genre, the fan-out
// used before any profile signal exists.
func (h *Handler) topByGenre(w http.ResponseWriter, r *http.Request) {
	genre := chi.URLParam(r, "genre")

	limit, err := queryInt(r, "limit", similarDefault)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be an integer")
		return
	}

	results := h.engine.TopByGenre(genre, limit)
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"genre":   genre,
		"results": results,
		"count":   len(results),
	})
}

// gameID parses an integer game ID path parameter, responding with a
// validation error itself on failure.
func (h *Handler) gameID(w http.ResponseWriter, r *http.Request, param string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, param))
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "game ID must be an integer")
		return 0, false
	}
	return id, true
}
