// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

// Package rank implements the hybrid scoring engine. It blends four weak
// signals - content similarity to clicked games, franchise affinity of
// played games, the popularity prior, and explicit ratings - into one
// ranked, optionally diversified result set.
//
// The engine reads only immutable catalog state and is safe for
// concurrent use; the seeded random source behind the diverse-sample
// fallback is the sole guarded mutable member.
package rank

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/playdex/playdex/internal/catalog"
	"github.com/playdex/playdex/internal/franchise"
)

// Profile carries the per-request user signals. The engine consumes it
// by value and never persists it. Item IDs referencing games no longer
// in the catalog are ignored, never an error: profiles routinely outlive
// catalog snapshots.
type Profile struct {
	// Clicked is recency-ordered, most recent click last.
	Clicked []int `json:"clicked,omitempty"`

	// Played has set semantics.
	Played []int `json:"played,omitempty"`

	// Ratings maps item ID to an explicit score within the configured
	// rating range. The API boundary validates the range; the engine
	// assumes it.
	Ratings map[int]int `json:"ratings,omitempty"`
}

// Empty reports whether the profile carries no clicked or played
// signal. Callers should fall back to DiverseSample in that case.
func (p Profile) Empty() bool {
	return len(p.Clicked) == 0 && len(p.Played) == 0
}

// Engine is the hybrid scoring engine.
type Engine struct {
	cfg    Config
	store  *catalog.Store
	index  *franchise.Index
	logger zerolog.Logger

	rng   *rand.Rand
	rngMu sync.Mutex
}

// NewEngine creates an engine over an immutable catalog store and
// franchise index.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(cfg Config, store *catalog.Store, index *franchise.Index, logger zerolog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rank config: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = 42
	}

	return &Engine{
		cfg:    cfg,
		store:  store,
		index:  index,
		logger: logger.With().Str("component", "rank").Logger(),
		rng:    rand.New(rand.NewSource(seed)), //nolint:gosec // sampling, not crypto
	}, nil
}

// Rank scores the whole catalog against a profile and returns the top n
// games. Output is deterministic for fixed catalog state and inputs:
// equal scores break ties by catalog position.
func (e *Engine) Rank(ctx context.Context, p Profile, n int, w Weights, diversify bool) []catalog.Scored {
	n = e.clampK(n)

	content := contentSignal(e.store, p.Clicked, e.cfg.ClickDecay)
	fran := franchiseSignal(e.store, e.index, p.Played, e.cfg.FranchiseBoost)
	popularity := e.store.PopularityVector()
	rating := ratingSignal(e.store, p.Ratings, e.cfg.RatingMin, e.cfg.RatingMax)

	combined := make([]float64, e.store.Len())
	for i := range combined {
		combined[i] = w.Content*content[i] +
			w.Franchise*fran[i] +
			w.Popularity*popularity[i] +
			w.Rating*rating[i]
	}

	e.dampPlayed(combined, p.Played)

	order := e.sortedPositions(combined)
	if diversify {
		order = e.diversify(order, n)
	} else if len(order) > n {
		order = order[:n]
	}

	return e.buildScored(order, combined, content, fran, popularity, rating)
}

// Similar returns the n games most similar to one game, by its
// similarity row. Used for detail pages. An unknown ID yields an empty
// result.
func (e *Engine) Similar(ctx context.Context, itemID, n int) []catalog.Scored {
	n = e.clampK(n)

	pos, ok := e.store.Position(itemID)
	if !ok {
		return []catalog.Scored{}
	}

	row := e.store.SimilarityRow(pos)
	order := e.sortedPositions(row)

	out := make([]catalog.Scored, 0, n)
	for _, p := range order {
		if p == pos {
			continue
		}
		out = append(out, catalog.Scored{Item: e.store.At(p), Score: row[p]})
		if len(out) == n {
			break
		}
	}
	return out
}

// DiverseSample returns a uniform random sample of n games. This is the
// caller's no-signal fallback and the only intentionally random path in
// the engine.
func (e *Engine) DiverseSample(n int) []catalog.Scored {
	n = e.clampK(n)
	if n > e.store.Len() {
		n = e.store.Len()
	}

	e.rngMu.Lock()
	perm := e.rng.Perm(e.store.Len())
	e.rngMu.Unlock()

	out := make([]catalog.Scored, n)
	for i := 0; i < n; i++ {
		out[i] = catalog.Scored{Item: e.store.At(perm[i])}
	}
	return out
}

// TopByGenre returns the n most popular games carrying a genre,
// popularity-prior ordered. Used for onboarding fan-out before any
// profile signal exists.
func (e *Engine) TopByGenre(genre string, n int) []catalog.Scored {
	n = e.clampK(n)

	var matched []catalog.Scored
	for _, it := range e.store.Items() {
		for _, g := range it.Genres {
			if g == genre {
				matched = append(matched, catalog.Scored{Item: it, Score: it.Popularity})
				break
			}
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Score > matched[j].Score
	})

	if len(matched) > n {
		matched = matched[:n]
	}
	return matched
}

// clampK applies the default and maximum result counts.
func (e *Engine) clampK(n int) int {
	if n <= 0 {
		return e.cfg.DefaultK
	}
	if n > e.cfg.MaxK {
		return e.cfg.MaxK
	}
	return n
}

// dampPlayed attenuates played games in place on the combined vector.
// Attenuation, not removal: a played game may resurface at low rank.
func (e *Engine) dampPlayed(combined []float64, played []int) {
	for _, id := range played {
		if pos, ok := e.store.Position(id); ok {
			combined[pos] *= e.cfg.PlayedDamping
		}
	}
}

// sortedPositions returns all catalog positions ordered by descending
// score, ties broken by ascending position so equal scores keep catalog
// order.
func (e *Engine) sortedPositions(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if scores[order[a]] != scores[order[b]] {
			return scores[order[a]] > scores[order[b]]
		}
		return order[a] < order[b]
	})
	return order
}

// diversify walks the ranked positions and admits a game only while its
// franchise has fewer than FranchiseCap admissions, preserving relative
// rank order within and across franchises.
func (e *Engine) diversify(order []int, n int) []int {
	perKey := make(map[string]int)
	out := make([]int, 0, n)

	for _, pos := range order {
		key, _ := e.index.KeyOf(e.store.At(pos).ID)
		if perKey[key] >= e.cfg.FranchiseCap {
			continue
		}
		perKey[key]++
		out = append(out, pos)
		if len(out) == n {
			break
		}
	}
	return out
}

// buildScored materializes result records with the per-signal breakdown
// for the selected positions only.
func (e *Engine) buildScored(order []int, combined, content, fran, popularity, rating []float64) []catalog.Scored {
	out := make([]catalog.Scored, len(order))
	for i, pos := range order {
		out[i] = catalog.Scored{
			Item:  e.store.At(pos),
			Score: combined[pos],
			Signals: map[string]float64{
				"content":    content[pos],
				"franchise":  fran[pos],
				"popularity": popularity[pos],
				"rating":     rating[pos],
			},
		}
	}
	return out
}
