// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package rank

import (
	"math"

	"github.com/playdex/playdex/internal/catalog"
	"github.com/playdex/playdex/internal/franchise"
)

// Each signal is a pure function returning a fresh vector indexed by
// catalog position. Signals never mutate shared buffers; the engine
// combines them by explicit weighted addition.

// contentSignal is the recency-decayed mean of the similarity rows of
// the known clicked games. clicked is recency-ordered with the most
// recent click last; decay^age weights it, age 0 being the most recent.
// Unknown IDs are skipped; no known clicks yields the zero vector.
func contentSignal(store *catalog.Store, clicked []int, decay float64) []float64 {
	out := make([]float64, store.Len())

	var weightSum float64
	age := 0
	for i := len(clicked) - 1; i >= 0; i-- {
		pos, ok := store.Position(clicked[i])
		if !ok {
			continue
		}

		w := math.Pow(decay, float64(age))
		age++
		weightSum += w

		row := store.SimilarityRow(pos)
		for j, sim := range row {
			out[j] += w * sim
		}
	}

	if weightSum > 0 {
		for j := range out {
			out[j] /= weightSum
		}
	}
	return out
}

// franchiseSignal assigns a flat boost to every member of any played
// game's franchise. The boost is a constant, not similarity-scaled:
// owning one entry of a series is treated as interest in the whole
// series regardless of how alike the entries look.
func franchiseSignal(store *catalog.Store, index *franchise.Index, played []int, boost float64) []float64 {
	out := make([]float64, store.Len())

	seen := make(map[string]struct{})
	for _, id := range played {
		key, ok := index.KeyOf(id)
		if !ok {
			continue
		}
		if _, done := seen[key]; done {
			continue
		}
		seen[key] = struct{}{}

		for _, member := range index.Members(key) {
			if pos, ok := store.Position(member); ok {
				out[pos] = boost
			}
		}
	}
	return out
}

// ratingSignal maps each explicit rating to a signed scale centered at
// the range midpoint and sums the correspondingly scaled similarity
// rows. A neutral rating contributes ~0; below-midpoint ratings push
// similar games down.
func ratingSignal(store *catalog.Store, ratings map[int]int, lo, hi int) []float64 {
	out := make([]float64, store.Len())
	if len(ratings) == 0 {
		return out
	}

	mid := float64(lo+hi) / 2
	halfRange := float64(hi-lo) / 2

	// Map iteration order must not leak into scores: addition is
	// commutative, so summing is order-independent.
	for id, score := range ratings {
		pos, ok := store.Position(id)
		if !ok {
			continue
		}

		signed := (float64(score) - mid) / halfRange
		row := store.SimilarityRow(pos)
		for j, sim := range row {
			out[j] += signed * sim
		}
	}
	return out
}
