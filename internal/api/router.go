// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

// Package api exposes the HTTP surface: the recommendation feed, game
// detail and similarity lookups, playlist CRUD with arranged views, and
// the operational endpoints.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/playdex/playdex/internal/catalog"
	"github.com/playdex/playdex/internal/enrich"
	"github.com/playdex/playdex/internal/playlist"
	"github.com/playdex/playdex/internal/rank"
	"github.com/playdex/playdex/internal/sequence"
)

// RouterConfig holds the HTTP-surface knobs.
type RouterConfig struct {
	// RateLimit is the per-IP requests-per-minute ceiling; 0 disables
	// limiting.
	RateLimit int

	// CORSOrigins lists allowed origins; empty allows any.
	CORSOrigins []string
}

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	store      *catalog.Store
	engine     *rank.Engine
	weights    rank.Weights
	orch       *sequence.Orchestrator
	orderCache *sequence.OrderCache[catalog.Item]
	lists      *playlist.Store
	enricher   *enrich.Enricher
	validate   *validator.Validate
	logger     zerolog.Logger
}

// NewHandler creates the handler set.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewHandler(
	store *catalog.Store,
	engine *rank.Engine,
	weights rank.Weights,
	orch *sequence.Orchestrator,
	orderCache *sequence.OrderCache[catalog.Item],
	lists *playlist.Store,
	enricher *enrich.Enricher,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		store:      store,
		engine:     engine,
		weights:    weights,
		orch:       orch,
		orderCache: orderCache,
		lists:      lists,
		enricher:   enricher,
		validate:   validator.New(),
		logger:     logger.With().Str("component", "api").Logger(),
	}
}

// NewRouter assembles the chi router with the full middleware chain.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(requestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(h.logger))
	r.Use(corsHandler(cfg.CORSOrigins))
	if cfg.RateLimit > 0 {
		r.Use(rateLimit(cfg.RateLimit))
	}

	r.Get("/healthz", h.healthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/feed", h.getFeed)

		r.Get("/genres", h.listGenres)
		r.Get("/genres/{genre}/top", h.topByGenre)

		r.Route("/games/{id}", func(r chi.Router) {
			r.Get("/", h.getGame)
			r.Get("/similar", h.getSimilar)
		})

		r.Route("/playlists", func(r chi.Router) {
			r.Get("/", h.listPlaylists)
			r.Post("/", h.createPlaylist)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.getPlaylist)
				r.Delete("/", h.deletePlaylist)
				r.Post("/games", h.addPlaylistGame)
				r.Delete("/games/{gameID}", h.removePlaylistGame)
				r.Get("/arranged", h.getArranged)
			})
		})

		r.Route("/profile/{user}", func(r chi.Router) {
			r.Get("/", h.getProfile)
			r.Put("/", h.putProfile)
		})
	})

	return r
}

// healthz reports liveness and basic catalog state.
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"games":  h.store.Len(),
	})
}
