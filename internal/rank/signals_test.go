// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package rank

import (
	"math"
	"testing"
)

const signalTolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < signalTolerance
}

func TestContentSignalNoClicks(t *testing.T) {
	store, _ := testFixture(t)

	got := contentSignal(store, nil, 0.9)
	for i, v := range got {
		if v != 0 {
			t.Errorf("position %d = %f, want 0", i, v)
		}
	}
}

func TestContentSignalSingleClick(t *testing.T) {
	store, _ := testFixture(t)

	// One click reproduces that game's similarity row exactly.
	got := contentSignal(store, []int{10}, 0.9)
	row := store.SimilarityRow(0)
	for i := range got {
		if !almostEqual(got[i], row[i]) {
			t.Errorf("position %d = %f, want %f", i, got[i], row[i])
		}
	}
}

func TestContentSignalRecencyWeighting(t *testing.T) {
	store, _ := testFixture(t)

	// Most recent click is last: clicking Alpha Quest then Beta Saga
	// must weight Beta Saga's row higher than the reverse order does.
	alphaLast := contentSignal(store, []int{20, 10}, 0.5)
	betaLast := contentSignal(store, []int{10, 20}, 0.5)

	betaPos, _ := store.Position(21)
	if betaLast[betaPos] <= alphaLast[betaPos] {
		t.Errorf("beta affinity %f not above %f when beta clicked last",
			betaLast[betaPos], alphaLast[betaPos])
	}

	// Hand-check one value: weights 1 and 0.5, normalized by 1.5.
	row0 := store.SimilarityRow(0)
	row4 := store.SimilarityRow(4)
	want := (1*row4[5] + 0.5*row0[5]) / 1.5
	if !almostEqual(betaLast[5], want) {
		t.Errorf("position 5 = %f, want %f", betaLast[5], want)
	}
}

func TestContentSignalSkipsUnknownClicks(t *testing.T) {
	store, _ := testFixture(t)

	// An unknown trailing click must not consume a decay step.
	got := contentSignal(store, []int{10, 999999}, 0.5)
	row := store.SimilarityRow(0)
	for i := range got {
		if !almostEqual(got[i], row[i]) {
			t.Errorf("position %d = %f, want %f", i, got[i], row[i])
		}
	}
}

func TestFranchiseSignalFlatBoost(t *testing.T) {
	store, index := testFixture(t)

	got := franchiseSignal(store, index, []int{11}, 1.5)

	// Every Alpha Quest entry gets the flat boost, including the played
	// one; everything else stays zero.
	want := []float64{1.5, 1.5, 1.5, 1.5, 0, 0, 0}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("position %d = %f, want %f", i, got[i], want[i])
		}
	}

	// Two games of the same franchise boost once, not twice.
	double := franchiseSignal(store, index, []int{10, 11}, 1.5)
	for i := range double {
		if double[i] != want[i] {
			t.Errorf("double-play position %d = %f, want %f", i, double[i], want[i])
		}
	}
}

func TestFranchiseSignalUnknownPlayed(t *testing.T) {
	store, index := testFixture(t)

	got := franchiseSignal(store, index, []int{999999}, 1.0)
	for i, v := range got {
		if v != 0 {
			t.Errorf("position %d = %f, want 0", i, v)
		}
	}
}

func TestRatingSignal(t *testing.T) {
	store, _ := testFixture(t)

	tests := []struct {
		name    string
		ratings map[int]int
		check   func(t *testing.T, got []float64)
	}{
		{
			name:    "neutral rating contributes nothing",
			ratings: map[int]int{10: 3},
			check: func(t *testing.T, got []float64) {
				for i, v := range got {
					if !almostEqual(v, 0) {
						t.Errorf("position %d = %f, want 0", i, v)
					}
				}
			},
		},
		{
			name:    "max rating reproduces similarity row",
			ratings: map[int]int{10: 5},
			check: func(t *testing.T, got []float64) {
				row := store.SimilarityRow(0)
				for i := range got {
					if !almostEqual(got[i], row[i]) {
						t.Errorf("position %d = %f, want %f", i, got[i], row[i])
					}
				}
			},
		},
		{
			name:    "min rating negates similarity row",
			ratings: map[int]int{10: 1},
			check: func(t *testing.T, got []float64) {
				row := store.SimilarityRow(0)
				for i := range got {
					if !almostEqual(got[i], -row[i]) {
						t.Errorf("position %d = %f, want %f", i, got[i], -row[i])
					}
				}
			},
		},
		{
			name:    "unknown rated game ignored",
			ratings: map[int]int{999999: 5},
			check: func(t *testing.T, got []float64) {
				for i, v := range got {
					if v != 0 {
						t.Errorf("position %d = %f, want 0", i, v)
					}
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, ratingSignal(store, tt.ratings, 1, 5))
		})
	}
}
