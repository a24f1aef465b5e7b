// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package sequence

import (
	"encoding/binary"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// OrderCache memoizes arranged views of playlists. Entries are keyed by
// list, ordering mode, and the membership set; they never expire on
// their own and are dropped only by LRU pressure or explicit
// invalidation when a list's membership changes.
type OrderCache[T any] struct {
	mu      sync.Mutex
	entries *lru.Cache[uint64, []T]

	// keysByList tracks live keys per list so InvalidateList can drop
	// every mode/membership variant at once.
	keysByList map[int64]map[uint64]struct{}
}

// NewOrderCache creates a cache holding at most size arranged views.
func NewOrderCache[T any](size int) (*OrderCache[T], error) {
	entries, err := lru.New[uint64, []T](size)
	if err != nil {
		return nil, err
	}
	return &OrderCache[T]{
		entries:    entries,
		keysByList: make(map[int64]map[uint64]struct{}),
	}, nil
}

// Get returns the cached arrangement for (listID, mode, ids), if any.
// The membership set is order-insensitive: permutations of ids hit the
// same entry.
func (c *OrderCache[T]) Get(listID int64, mode string, ids []int) ([]T, bool) {
	key := cacheKey(listID, mode, ids)

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Get(key)
}

// Put stores an arrangement, replacing any previous entry wholesale.
func (c *OrderCache[T]) Put(listID int64, mode string, ids []int, arranged []T) {
	key := cacheKey(listID, mode, ids)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries.Add(key, arranged)
	keys, ok := c.keysByList[listID]
	if !ok {
		keys = make(map[uint64]struct{})
		c.keysByList[listID] = keys
	}
	keys[key] = struct{}{}
}

// InvalidateList drops every cached arrangement of one list, across all
// modes and membership variants. Callers invoke it on any membership
// mutation before the mutation is acknowledged.
func (c *OrderCache[T]) InvalidateList(listID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.keysByList[listID] {
		c.entries.Remove(key)
	}
	delete(c.keysByList, listID)
}

// Len returns the number of live entries.
func (c *OrderCache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}

// cacheKey hashes (listID, mode, membership set). IDs are deduplicated
// and sorted first so input order cannot produce distinct keys.
func cacheKey(listID int64, mode string, ids []int) uint64 {
	unique := make([]int, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	sort.Ints(unique)

	var buf [8]byte
	h := xxhash.New()

	binary.LittleEndian.PutUint64(buf[:], uint64(listID))
	_, _ = h.Write(buf[:])
	_, _ = h.WriteString(mode)
	for _, id := range unique {
		binary.LittleEndian.PutUint64(buf[:], uint64(id))
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}
