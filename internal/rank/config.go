// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package rank

import "fmt"

// Weights defines the relative contribution of each scoring signal.
// Weights are used as supplied; they need not sum to 1.
type Weights struct {
	// Content weighs similarity to recently clicked games.
	Content float64 `json:"content"`

	// Franchise weighs membership in a played game's franchise.
	Franchise float64 `json:"franchise"`

	// Popularity weighs the precomputed popularity prior.
	Popularity float64 `json:"popularity"`

	// Rating weighs similarity to explicitly rated games, signed by the
	// rating.
	Rating float64 `json:"rating"`
}

// Config contains hybrid scoring engine parameters.
type Config struct {
	// Weights is the default signal weighting, used when a request does
	// not supply its own.
	Weights Weights

	// ClickDecay is the per-step recency decay for clicked games,
	// applied as decay^age with age 0 = most recent click. Must be in
	// (0, 1].
	ClickDecay float64

	// FranchiseBoost is the flat additive score for members of a played
	// game's franchise.
	FranchiseBoost float64

	// PlayedDamping multiplies the combined score of already-played
	// games. Damping, not exclusion: a played game may resurface at low
	// rank but is never hard-removed.
	PlayedDamping float64

	// FranchiseCap is the max results per franchise key when
	// diversification is enabled.
	FranchiseCap int

	// DefaultK and MaxK bound requested result counts.
	DefaultK int
	MaxK     int

	// RatingMin and RatingMax define the explicit rating range. Ratings
	// are recentred on the midpoint so a neutral rating contributes ~0.
	RatingMin int
	RatingMax int

	// Seed fixes the random source used only by the diverse-sample
	// fallback.
	Seed int64
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Content:    1.0,
			Franchise:  0.4,
			Popularity: 0.3,
			Rating:     0.5,
		},
		ClickDecay:     0.9,
		FranchiseBoost: 1.0,
		PlayedDamping:  0.25,
		FranchiseCap:   3,
		DefaultK:       54,
		MaxK:           200,
		RatingMin:      1,
		RatingMax:      5,
		Seed:           42,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.ClickDecay <= 0 || c.ClickDecay > 1 {
		return fmt.Errorf("click decay %f outside (0,1]", c.ClickDecay)
	}
	if c.PlayedDamping <= 0 || c.PlayedDamping > 1 {
		return fmt.Errorf("played damping %f outside (0,1]", c.PlayedDamping)
	}
	if c.FranchiseCap < 1 {
		return fmt.Errorf("franchise cap %d < 1", c.FranchiseCap)
	}
	if c.DefaultK < 1 || c.MaxK < c.DefaultK {
		return fmt.Errorf("invalid k bounds: default %d, max %d", c.DefaultK, c.MaxK)
	}
	if c.RatingMax <= c.RatingMin {
		return fmt.Errorf("invalid rating range [%d,%d]", c.RatingMin, c.RatingMax)
	}
	if c.Weights.Content < 0 || c.Weights.Franchise < 0 || c.Weights.Popularity < 0 || c.Weights.Rating < 0 {
		return fmt.Errorf("signal weights must be non-negative")
	}
	return nil
}
