// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/playdex/playdex/internal/catalog"
	"github.com/playdex/playdex/internal/metrics"
	"github.com/playdex/playdex/internal/rank"
)

// feedResponse is the payload of GET /api/v1/feed.
type feedResponse struct {
	Results []catalog.Scored `json:"results"`
	Count   int              `json:"count"`

	// Path is "profile" when user signals drove the ranking, "fallback"
	// for the no-signal random sample.
	Path string `json:"path"`
}

// getFeed serves the personalized feed. A user with no stored signals
// (or no user at all) gets the seeded diverse sample instead of an
// empty or purely popular page.
func (h *Handler) getFeed(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "limit must be an integer")
		return
	}
	diversify, err := queryBool(r, "diversify", true)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "diversify must be a boolean")
		return
	}
	weights, err := h.feedWeights(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	var profile rank.Profile
	if user := r.URL.Query().Get("user"); user != "" {
		profile, err = h.lists.GetProfile(r.Context(), user)
		if err != nil {
			h.logger.Error().Err(err).Msg("profile load failed")
			respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "could not load profile")
			return
		}
	}

	start := time.Now()
	var results []catalog.Scored
	path := "profile"
	if profile.Empty() {
		path = "fallback"
		results = h.engine.DiverseSample(limit)
	} else {
		results = h.engine.Rank(r.Context(), profile, limit, weights, diversify)
	}
	metrics.RecordRank(path, time.Since(start))

	respondSuccess(w, http.StatusOK, feedResponse{
		Results: results,
		Count:   len(results),
		Path:    path,
	})
}

// feedWeights applies per-request weight overrides on top of the
// configured defaults.
func (h *Handler) feedWeights(r *http.Request) (rank.Weights, error) {
	w := h.weights
	overrides := []struct {
		param  string
		target *float64
	}{
		{"content_weight", &w.Content},
		{"franchise_weight", &w.Franchise},
		{"popularity_weight", &w.Popularity},
		{"rating_weight", &w.Rating},
	}
	for _, o := range overrides {
		raw := r.URL.Query().Get(o.param)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			return rank.Weights{}, &weightError{param: o.param}
		}
		*o.target = v
	}
	return w, nil
}

type weightError struct{ param string }

func (e *weightError) Error() string {
	return e.param + " must be a non-negative number"
}

// profileRequest is the PUT /api/v1/profile/{user} body.
type profileRequest struct {
	Clicked []int       `json:"clicked" validate:"omitempty,dive,gte=0"`
	Played  []int       `json:"played" validate:"omitempty,dive,gte=0"`
	Ratings map[int]int `json:"ratings" validate:"omitempty,dive,gte=1,lte=5"`
}

// getProfile returns a user's stored interaction profile.
func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "user")

	profile, err := h.lists.GetProfile(r.Context(), user)
	if err != nil {
		h.logger.Error().Err(err).Msg("profile load failed")
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "could not load profile")
		return
	}
	respondSuccess(w, http.StatusOK, profile)
}

// putProfile replaces a user's interaction profile wholesale.
func (h *Handler) putProfile(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "user")

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "malformed JSON body")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "ratings must be between 1 and 5 and IDs non-negative")
		return
	}

	profile := rank.Profile{Clicked: req.Clicked, Played: req.Played, Ratings: req.Ratings}
	if err := h.lists.SaveProfile(r.Context(), user, profile); err != nil {
		h.logger.Error().Err(err).Msg("profile save failed")
		respondError(w, http.StatusInternalServerError, "STORAGE_ERROR", "could not save profile")
		return
	}
	respondSuccess(w, http.StatusOK, profile)
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

// queryBool parses an optional boolean query parameter.
func queryBool(r *http.Request, name string, def bool) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.ParseBool(raw)
}
