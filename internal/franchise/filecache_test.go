// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package franchise

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/goccy/go-json"
)

func TestFileCacheMissOnEmpty(t *testing.T) {
	c := NewFileCache(filepath.Join(t.TempDir(), "cache.json"))
	if _, ok := c.Get("anything"); ok {
		t.Error("expected miss on fresh cache")
	}
}

func TestFileCachePutGetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	c := NewFileCache(path)

	order := []string{"game one", "game two"}
	if err := c.Put("series", order); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, ok := c.Get("series")
	if !ok || len(got) != 2 || got[0] != "game one" {
		t.Errorf("Get() = %v, %v", got, ok)
	}

	// A separate instance reads the persisted file.
	c2 := NewFileCache(path)
	got, ok = c2.Get("series")
	if !ok || len(got) != 2 || got[1] != "game two" {
		t.Errorf("reloaded Get() = %v, %v", got, ok)
	}
}

func TestFileCacheRewritesWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	c := NewFileCache(path)

	if err := c.Put("a", []string{"one"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Put("b", []string{"two"}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	entries := map[string][]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("cache file is not valid JSON: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("cache file has %d entries, want 2", len(entries))
	}
}

func TestFileCacheCorruptFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte("{truncated"), 0o600); err != nil {
		t.Fatal(err)
	}

	c := NewFileCache(path)
	if err := c.Put("x", []string{"y"}); err == nil {
		t.Error("expected error writing over corrupt cache")
	}
}

func TestFileCacheConcurrentWriters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	c := NewFileCache(path)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("series-%d", n)
			if err := c.Put(key, []string{key}); err != nil {
				t.Errorf("Put(%s): %v", key, err)
			}
		}(i)
	}
	wg.Wait()

	c2 := NewFileCache(path)
	for i := 0; i < 16; i++ {
		key := fmt.Sprintf("series-%d", i)
		if _, ok := c2.Get(key); !ok {
			t.Errorf("entry %s lost", key)
		}
	}
}
