// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package franchise

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

// FileCache persists lookup results in a single JSON file mapping query
// title -> ordered matched titles. The file is read fully on first use
// and rewritten fully (temp file + rename) on every new entry, so
// concurrent writers can never leave a torn file behind. Entries never
// expire: an ordering only becomes stale if the franchise itself
// changes, which a manual cache wipe handles.
type FileCache struct {
	path string

	mu      sync.Mutex
	entries map[string][]string
	loaded  bool
}

// NewFileCache creates a cache backed by path. The file is created on
// the first Put.
func NewFileCache(path string) *FileCache {
	return &FileCache{path: path}
}

// Get returns the cached ordering for a query title.
func (c *FileCache) Get(title string) ([]string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.loadLocked(); err != nil {
		return nil, false
	}
	order, ok := c.entries[title]
	return order, ok
}

// Put stores an ordering and rewrites the backing file.
func (c *FileCache) Put(title string, order []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.loadLocked(); err != nil {
		return err
	}

	c.entries[title] = order
	return c.flushLocked()
}

// loadLocked reads the backing file once. A missing file is an empty
// cache; a corrupt file is an error so a bad cache never poisons
// lookups silently.
func (c *FileCache) loadLocked() error {
	if c.loaded {
		return nil
	}

	data, err := os.ReadFile(c.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		c.entries = make(map[string][]string)
	case err != nil:
		return fmt.Errorf("read lookup cache: %w", err)
	default:
		entries := make(map[string][]string)
		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("decode lookup cache %s: %w", c.path, err)
		}
		c.entries = entries
	}

	c.loaded = true
	return nil
}

// flushLocked writes the full cache to a temp file and renames it over
// the target, keeping the rewrite atomic for concurrent readers.
func (c *FileCache) flushLocked() error {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode lookup cache: %w", err)
	}

	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, ".franchise-cache-*")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write lookup cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close lookup cache: %w", err)
	}

	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace lookup cache: %w", err)
	}
	return nil
}
