// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package catalog

// Item is one catalog game. Items are constructed once at snapshot load
// and never mutated at request time; ID and Slug are immutable.
type Item struct {
	// ID is the stable integer identifier.
	ID int `json:"id"`

	// Slug is the unique URL-safe identifier.
	Slug string `json:"slug"`

	// Name is the display name.
	Name string `json:"name"`

	// Genres and Tags are the textual metadata the offline model was
	// trained on.
	Genres []string `json:"genres,omitempty"`
	Tags   []string `json:"tags,omitempty"`

	// Rating is the user quality rating (0-5). Nil when missing.
	Rating *float64 `json:"rating,omitempty"`

	// Metacritic is the critic score (0-100). Nil when missing.
	Metacritic *float64 `json:"metacritic,omitempty"`

	// ReleaseYear is the release year, 0 when unknown.
	ReleaseYear int `json:"release_year,omitempty"`

	// Playtime is the estimated playtime in hours.
	Playtime int `json:"playtime,omitempty"`

	// Vector is the reduced feature vector. All items share one
	// dimensionality; vectors are unit-normalized offline.
	Vector []float64 `json:"vector"`

	// Cluster is the offline KMeans cluster label.
	Cluster int `json:"cluster"`

	// Popularity is the normalized popularity prior in [0,1]. Derived at
	// load; always set.
	Popularity float64 `json:"-"`
}

// Scored pairs an item with its combined recommendation score.
type Scored struct {
	Item Item `json:"item"`

	// Score is the combined weighted score. Comparable only within one
	// ranking call.
	Score float64 `json:"score"`

	// Signals is the per-signal breakdown for explainability.
	Signals map[string]float64 `json:"signals,omitempty"`
}
