// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package sequence

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/playdex/playdex/internal/catalog"
	"github.com/playdex/playdex/internal/franchise"
)

func testStore(t *testing.T) (*catalog.Store, *franchise.Index) {
	t.Helper()

	items := []catalog.Item{
		{ID: 1, Slug: "alpha-quest", Name: "Alpha Quest", ReleaseYear: 2003, Vector: []float64{1}},
		{ID: 2, Slug: "alpha-quest-2", Name: "Alpha Quest 2", ReleaseYear: 1999, Vector: []float64{1}},
		{ID: 3, Slug: "alpha-quest-3", Name: "Alpha Quest 3", ReleaseYear: 2001, Vector: []float64{1}},
		{ID: 4, Slug: "beta-saga", Name: "Beta Saga", ReleaseYear: 2005, Vector: []float64{1}},
		{ID: 5, Slug: "beta-saga-ii", Name: "Beta Saga II", ReleaseYear: 2002, Vector: []float64{1}},
		{ID: 6, Slug: "gamma-tale", Name: "Gamma Tale", ReleaseYear: 2010, Vector: []float64{1}},
	}

	sim := make([][]float64, len(items))
	for i := range sim {
		sim[i] = make([]float64, len(items))
		sim[i][i] = 1
	}

	store, err := catalog.New(items, sim)
	if err != nil {
		t.Fatalf("fixture catalog: %v", err)
	}
	return store, franchise.BuildIndex(items)
}

func newOrchestrator(t *testing.T, overrides map[string][]string) *Orchestrator {
	t.Helper()
	store, index := testStore(t)
	resolver := franchise.NewResolver(nil, overrides, zerolog.Nop())
	return NewOrchestrator(store, index, resolver, zerolog.Nop())
}

func sequenceIDs(items []catalog.Item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestBuildPlaySequenceInterleaves(t *testing.T) {
	o := newOrchestrator(t, nil)

	// Three franchises in first-encounter order alpha, beta, gamma.
	// Within each, release year orders the entries; the rounds then
	// interleave one entry per franchise.
	got := sequenceIDs(o.BuildPlaySequence(context.Background(), []int{1, 4, 2, 5, 3, 6}))
	want := []int{2, 5, 6, 3, 4, 1}
	if !equalIDs(got, want) {
		t.Errorf("sequence = %v, want %v", got, want)
	}
}

func TestBuildPlaySequenceAlternatesTwoFranchises(t *testing.T) {
	o := newOrchestrator(t, nil)

	// Three Alpha Quests and two Beta Sagas with no external order data
	// fall back to release years and come out strictly alternating.
	got := sequenceIDs(o.BuildPlaySequence(context.Background(), []int{1, 4, 2, 5, 3}))
	want := []int{2, 5, 3, 4, 1}
	if !equalIDs(got, want) {
		t.Fatalf("sequence = %v, want %v", got, want)
	}

	keys := []string{"a", "b", "a", "b", "a"}
	for i, id := range got {
		wantKey := keys[i]
		gotKey := "a"
		if id == 4 || id == 5 {
			gotKey = "b"
		}
		if gotKey != wantKey {
			t.Errorf("position %d: franchise %q, want %q (sequence %v)", i, gotKey, wantKey, got)
		}
	}
}

func TestBuildPlaySequenceEmpty(t *testing.T) {
	o := newOrchestrator(t, nil)

	got := o.BuildPlaySequence(context.Background(), nil)
	if len(got) != 0 {
		t.Errorf("empty input produced %d items", len(got))
	}
}

func TestBuildPlaySequenceDropsUnknownAndDuplicates(t *testing.T) {
	o := newOrchestrator(t, nil)

	got := sequenceIDs(o.BuildPlaySequence(context.Background(), []int{6, 999, 6, 4, 4}))
	want := []int{6, 4}
	if !equalIDs(got, want) {
		t.Errorf("sequence = %v, want %v", got, want)
	}
}

func TestBuildPlaySequenceSingleFranchise(t *testing.T) {
	o := newOrchestrator(t, nil)

	got := sequenceIDs(o.BuildPlaySequence(context.Background(), []int{1, 2, 3}))
	want := []int{2, 3, 1}
	if !equalIDs(got, want) {
		t.Errorf("sequence = %v, want %v", got, want)
	}
}

func TestBuildPlaySequenceHonorsOverrides(t *testing.T) {
	o := newOrchestrator(t, map[string][]string{
		"alpha-quest": {"alpha quest 3", "alpha quest", "alpha quest 2"},
	})

	// The override order beats the release-year order for alpha while
	// beta still falls back to years.
	got := sequenceIDs(o.BuildPlaySequence(context.Background(), []int{1, 2, 3, 4, 5}))
	want := []int{3, 5, 1, 4, 2}
	if !equalIDs(got, want) {
		t.Errorf("sequence = %v, want %v", got, want)
	}
}

func TestBuildPlaySequenceDeterministic(t *testing.T) {
	o := newOrchestrator(t, nil)
	in := []int{5, 3, 6, 1, 2, 4}

	first := sequenceIDs(o.BuildPlaySequence(context.Background(), in))
	for i := 0; i < 5; i++ {
		again := sequenceIDs(o.BuildPlaySequence(context.Background(), in))
		if !equalIDs(first, again) {
			t.Fatalf("run %d: sequence changed from %v to %v", i, first, again)
		}
	}
}
