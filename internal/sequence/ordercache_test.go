// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package sequence

import (
	"sync"
	"testing"
)

func newTestCache(t *testing.T) *OrderCache[int] {
	t.Helper()
	c, err := NewOrderCache[int](16)
	if err != nil {
		t.Fatalf("NewOrderCache: %v", err)
	}
	return c
}

func TestOrderCachePutGet(t *testing.T) {
	c := newTestCache(t)

	if _, ok := c.Get(1, "special", []int{3, 1, 2}); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	c.Put(1, "special", []int{3, 1, 2}, []int{1, 2, 3})

	got, ok := c.Get(1, "special", []int{3, 1, 2})
	if !ok {
		t.Fatal("expected hit")
	}
	if len(got) != 3 || got[0] != 1 {
		t.Errorf("got %v, want [1 2 3]", got)
	}
}

func TestOrderCacheKeyIgnoresInputOrder(t *testing.T) {
	c := newTestCache(t)
	c.Put(1, "special", []int{3, 1, 2}, []int{42})

	tests := []struct {
		name string
		ids  []int
		want bool
	}{
		{"same order", []int{3, 1, 2}, true},
		{"sorted", []int{1, 2, 3}, true},
		{"reversed", []int{2, 1, 3}, true},
		{"with duplicates", []int{3, 3, 1, 2, 2}, true},
		{"different membership", []int{1, 2, 4}, false},
		{"subset", []int{1, 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := c.Get(1, "special", tt.ids); ok != tt.want {
				t.Errorf("Get(%v) hit = %v, want %v", tt.ids, ok, tt.want)
			}
		})
	}
}

func TestOrderCacheKeyDiscriminates(t *testing.T) {
	c := newTestCache(t)
	c.Put(1, "special", []int{1, 2}, []int{42})

	if _, ok := c.Get(1, "alpha", []int{1, 2}); ok {
		t.Error("different mode hit the same entry")
	}
	if _, ok := c.Get(2, "special", []int{1, 2}); ok {
		t.Error("different list hit the same entry")
	}
}

func TestOrderCacheInvalidateList(t *testing.T) {
	c := newTestCache(t)
	c.Put(1, "special", []int{1, 2}, []int{1})
	c.Put(1, "alpha", []int{1, 2}, []int{2})
	c.Put(2, "special", []int{1, 2}, []int{3})

	c.InvalidateList(1)

	if _, ok := c.Get(1, "special", []int{1, 2}); ok {
		t.Error("special view of list 1 survived invalidation")
	}
	if _, ok := c.Get(1, "alpha", []int{1, 2}); ok {
		t.Error("alpha view of list 1 survived invalidation")
	}
	if _, ok := c.Get(2, "special", []int{1, 2}); !ok {
		t.Error("list 2 entry was invalidated collaterally")
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestOrderCacheReplaceWholesale(t *testing.T) {
	c := newTestCache(t)
	c.Put(1, "special", []int{1, 2}, []int{1, 2})
	c.Put(1, "special", []int{1, 2}, []int{2, 1})

	got, ok := c.Get(1, "special", []int{1, 2})
	if !ok || got[0] != 2 {
		t.Errorf("got %v, %v; want replaced entry [2 1]", got, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestOrderCacheConcurrentAccess(t *testing.T) {
	c := newTestCache(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			listID := int64(n % 4)
			c.Put(listID, "special", []int{n}, []int{n})
			c.Get(listID, "special", []int{n})
			c.InvalidateList(listID)
		}(i)
	}
	wg.Wait()
}
