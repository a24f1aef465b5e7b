// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

// Package catalog holds the read-only game feature store: item metadata,
// the precomputed item-by-item similarity matrix, and the popularity
// prior. Everything is built once at process start from a snapshot
// artifact and is safe for unsynchronized concurrent reads afterwards.
package catalog

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/goccy/go-json"
)

// Store is the immutable catalog feature store.
type Store struct {
	items      []Item
	similarity [][]float64
	idToPos    map[int]int
	posToID    []int
	slugToPos  map[string]int
	dim        int
}

// snapshot is the on-disk artifact layout. The artifact is one atomic
// unit: any inconsistency aborts the load.
type snapshot struct {
	Items      []Item      `json:"items"`
	Similarity [][]float64 `json:"similarity"`
}

// Load reads and validates a snapshot artifact from path. A missing,
// unreadable, or internally inconsistent snapshot is a fatal error for
// the caller; there is no partial load.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog snapshot: %w", err)
	}
	defer f.Close()

	return LoadFrom(f)
}

// LoadFrom builds a Store from a snapshot stream.
func LoadFrom(r io.Reader) (*Store, error) {
	var snap snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decode catalog snapshot: %w", err)
	}
	return New(snap.Items, snap.Similarity)
}

// New validates items and similarity and assembles the store. The
// similarity matrix rows must follow the item order.
func New(items []Item, similarity [][]float64) (*Store, error) {
	n := len(items)
	if n == 0 {
		return nil, fmt.Errorf("catalog snapshot contains no items")
	}
	if len(similarity) != n {
		return nil, fmt.Errorf("similarity matrix has %d rows, catalog has %d items", len(similarity), n)
	}

	s := &Store{
		items:      items,
		similarity: similarity,
		idToPos:    make(map[int]int, n),
		posToID:    make([]int, n),
		slugToPos:  make(map[string]int, n),
		dim:        len(items[0].Vector),
	}

	for pos, it := range items {
		if len(it.Vector) != s.dim {
			return nil, fmt.Errorf("item %d: vector dimensionality %d, expected %d", it.ID, len(it.Vector), s.dim)
		}
		if len(similarity[pos]) != n {
			return nil, fmt.Errorf("similarity row %d has %d columns, expected %d", pos, len(similarity[pos]), n)
		}
		if _, dup := s.idToPos[it.ID]; dup {
			return nil, fmt.Errorf("duplicate item ID %d", it.ID)
		}
		if _, dup := s.slugToPos[it.Slug]; dup {
			return nil, fmt.Errorf("duplicate slug %q", it.Slug)
		}
		s.idToPos[it.ID] = pos
		s.posToID[pos] = it.ID
		s.slugToPos[it.Slug] = pos
	}

	applyPopularityPrior(s.items)
	return s, nil
}

// Len returns the number of catalog items.
func (s *Store) Len() int {
	return len(s.items)
}

// Dim returns the feature vector dimensionality.
func (s *Store) Dim() int {
	return s.dim
}

// Items returns the items in snapshot row order. Callers must not
// mutate the returned slice.
func (s *Store) Items() []Item {
	return s.items
}

// At returns the item at a matrix position.
func (s *Store) At(pos int) Item {
	return s.items[pos]
}

// Position returns the matrix position for an item ID.
func (s *Store) Position(id int) (int, bool) {
	pos, ok := s.idToPos[id]
	return pos, ok
}

// ByID returns the item with the given ID.
func (s *Store) ByID(id int) (Item, bool) {
	pos, ok := s.idToPos[id]
	if !ok {
		return Item{}, false
	}
	return s.items[pos], true
}

// BySlug returns the item with the given slug.
func (s *Store) BySlug(slug string) (Item, bool) {
	pos, ok := s.slugToPos[slug]
	if !ok {
		return Item{}, false
	}
	return s.items[pos], true
}

// SimilarityRow returns the similarity row for a matrix position.
// Callers must not mutate the returned slice.
func (s *Store) SimilarityRow(pos int) []float64 {
	return s.similarity[pos]
}

// PopularityVector returns the popularity prior indexed by position.
func (s *Store) PopularityVector() []float64 {
	v := make([]float64, len(s.items))
	for i, it := range s.items {
		v[i] = it.Popularity
	}
	return v
}

// Genres returns the sorted set of all genres in the catalog.
func (s *Store) Genres() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, it := range s.items {
		for _, g := range it.Genres {
			if _, ok := seen[g]; !ok {
				seen[g] = struct{}{}
				out = append(out, g)
			}
		}
	}
	sort.Strings(out)
	return out
}
