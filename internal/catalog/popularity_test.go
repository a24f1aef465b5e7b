// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package catalog

import "testing"

func TestPopularityDefinedForEveryItem(t *testing.T) {
	// Item 3 has no rating, item 2 has no metacritic; both must still get
	// a prior via mean imputation.
	s, err := New(testItems(), testSimilarity())
	if err != nil {
		t.Fatal(err)
	}

	for _, it := range s.Items() {
		if it.Popularity < 0 || it.Popularity > 1 {
			t.Errorf("item %d: popularity %f outside [0,1]", it.ID, it.Popularity)
		}
	}
}

func TestPopularityOrdersByQuality(t *testing.T) {
	s, err := New(testItems(), testSimilarity())
	if err != nil {
		t.Fatal(err)
	}

	best, _ := s.ByID(1)  // top rating and top critic score
	worst, _ := s.ByID(3) // no rating, lowest critic score
	if best.Popularity <= worst.Popularity {
		t.Errorf("popularity(best)=%f should exceed popularity(worst)=%f", best.Popularity, worst.Popularity)
	}
	if best.Popularity < 0.999 {
		t.Errorf("max popularity should rescale near 1, got %f", best.Popularity)
	}
}

func TestPopularityZeroVarianceDoesNotDivideByZero(t *testing.T) {
	items := []Item{
		{ID: 1, Slug: "a", Name: "A", Vector: []float64{1}, Rating: f(3), Metacritic: f(70)},
		{ID: 2, Slug: "b", Name: "B", Vector: []float64{1}, Rating: f(3), Metacritic: f(70)},
	}
	sim := [][]float64{{1, 1}, {1, 1}}

	s, err := New(items, sim)
	if err != nil {
		t.Fatal(err)
	}

	for _, it := range s.Items() {
		if it.Popularity != 0 {
			t.Errorf("all-equal inputs should yield 0, got %f", it.Popularity)
		}
	}
}

func TestZScoreZeroVariance(t *testing.T) {
	out := zScore([]float64{5, 5, 5})
	for i, v := range out {
		if v != 0 {
			t.Errorf("zScore[%d] = %f, want 0", i, v)
		}
	}
}

func TestColumnMeanImputation(t *testing.T) {
	items := []Item{
		{Rating: f(2)},
		{Rating: nil},
		{Rating: f(4)},
	}
	col := column(items, func(it Item) *float64 { return it.Rating })
	if col[1] != 3 {
		t.Errorf("imputed value = %f, want column mean 3", col[1])
	}
}
