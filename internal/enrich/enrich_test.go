// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package enrich

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/playdex/playdex/internal/catalog"
)

func TestEnrichMergesByName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "details.json")
	payload := `[
		{"name": "Alpha Quest", "description": "A long quest.", "image_url": "https://img.example/aq.jpg", "website": "https://alphaquest.example"}
	]`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	e, err := New(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Matching is case-insensitive on name.
	got := e.Enrich(catalog.Item{ID: 1, Name: "alpha quest"})
	if got.Description != "A long quest." || got.ImageURL != "https://img.example/aq.jpg" {
		t.Errorf("enriched = %+v", got)
	}
	if got.ID != 1 {
		t.Errorf("item fields lost: %+v", got.Item)
	}

	// No detail row: bare record unchanged.
	bare := e.Enrich(catalog.Item{ID: 2, Name: "Beta Saga"})
	if bare.Description != "" || bare.ImageURL != "" || bare.Website != "" {
		t.Errorf("unmatched item gained metadata: %+v", bare)
	}
}

func TestEnrichMissingFile(t *testing.T) {
	e, err := New(filepath.Join(t.TempDir(), "absent.json"), zerolog.Nop())
	if err != nil {
		t.Fatalf("missing file should not error, got %v", err)
	}

	got := e.Enrich(catalog.Item{ID: 1, Name: "Alpha Quest"})
	if got.Description != "" {
		t.Errorf("got metadata from absent file: %+v", got)
	}
}

func TestEnrichDisabled(t *testing.T) {
	e, err := New("", zerolog.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := e.Enrich(catalog.Item{Name: "Alpha Quest"}); got.Description != "" {
		t.Errorf("disabled enricher returned metadata: %+v", got)
	}
}

func TestEnrichCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "details.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := New(path, zerolog.Nop()); err == nil {
		t.Error("expected error for corrupt details file")
	}
}
