// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package catalog

import "math"

// popularityEpsilon guards min-max denominators when every item ties.
const popularityEpsilon = 1e-9

// applyPopularityPrior computes the normalized popularity prior over the
// quality and critic-score columns and writes it onto each item.
//
// Per column: missing values are imputed with the column mean, then the
// column is z-scored. The per-item average of the z-scores is min-max
// rescaled to [0,1]. With zero variance everywhere the epsilon keeps the
// division defined and all items land on 0.
func applyPopularityPrior(items []Item) {
	n := len(items)
	if n == 0 {
		return
	}

	ratings := column(items, func(it Item) *float64 { return it.Rating })
	critics := column(items, func(it Item) *float64 { return it.Metacritic })

	zRating := zScore(ratings)
	zCritic := zScore(critics)

	avg := make([]float64, n)
	for i := range avg {
		avg[i] = (zRating[i] + zCritic[i]) / 2
	}

	lo, hi := avg[0], avg[0]
	for _, v := range avg[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	span := hi - lo + popularityEpsilon
	for i := range items {
		items[i].Popularity = (avg[i] - lo) / span
	}
}

// column extracts a numeric column with mean imputation for nil values.
func column(items []Item, get func(Item) *float64) []float64 {
	var sum float64
	var known int
	for _, it := range items {
		if v := get(it); v != nil {
			sum += *v
			known++
		}
	}

	mean := 0.0
	if known > 0 {
		mean = sum / float64(known)
	}

	out := make([]float64, len(items))
	for i, it := range items {
		if v := get(it); v != nil {
			out[i] = *v
		} else {
			out[i] = mean
		}
	}
	return out
}

// zScore standardizes a column. Zero-variance columns map to all zeros.
func zScore(col []float64) []float64 {
	n := float64(len(col))

	var sum float64
	for _, v := range col {
		sum += v
	}
	mean := sum / n

	var ss float64
	for _, v := range col {
		d := v - mean
		ss += d * d
	}
	std := math.Sqrt(ss / n)

	out := make([]float64, len(col))
	if std < popularityEpsilon {
		return out
	}
	for i, v := range col {
		out[i] = (v - mean) / std
	}
	return out
}
