// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package franchise

import "github.com/playdex/playdex/internal/catalog"

// Index is the reverse franchise index: key -> member item IDs. It is
// built once over the full catalog at load and is read-only afterwards,
// so unsynchronized concurrent reads are safe.
type Index struct {
	byKey map[string][]int
	keyOf map[int]string
}

// BuildIndex groups every catalog item by its franchise key in one pass.
// Member ID slices follow catalog order.
func BuildIndex(items []catalog.Item) *Index {
	ix := &Index{
		byKey: make(map[string][]int),
		keyOf: make(map[int]string, len(items)),
	}
	for _, it := range items {
		key := ExtractKey(it.Name, it.Slug)
		ix.byKey[key] = append(ix.byKey[key], it.ID)
		ix.keyOf[it.ID] = key
	}
	return ix
}

// Members returns the item IDs sharing a franchise key. Callers must not
// mutate the returned slice.
func (ix *Index) Members(key string) []int {
	return ix.byKey[key]
}

// KeyOf returns the cached franchise key for a catalog item ID.
func (ix *Index) KeyOf(id int) (string, bool) {
	key, ok := ix.keyOf[id]
	return key, ok
}

// Size returns the number of distinct franchise keys.
func (ix *Index) Size() int {
	return len(ix.byKey)
}
