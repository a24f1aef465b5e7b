// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

// Package enrich merges optional presentation metadata into catalog
// records. The detail file is a best-effort sidecar of the model
// snapshot; its absence degrades detail pages, never requests.
package enrich

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/playdex/playdex/internal/catalog"
)

// Detail is a catalog item with presentation metadata attached.
type Detail struct {
	catalog.Item

	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Website     string `json:"website,omitempty"`
}

// record is one row of the details sidecar file.
type record struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Website     string `json:"website"`
}

// Enricher resolves presentation metadata by game name.
type Enricher struct {
	byName map[string]record
	logger zerolog.Logger
}

// New loads the details sidecar at path. A missing file is not an
// error: every lookup then yields the bare record. An empty path
// disables enrichment outright.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func New(path string, logger zerolog.Logger) (*Enricher, error) {
	e := &Enricher{
		byName: map[string]record{},
		logger: logger.With().Str("component", "enrich").Logger(),
	}
	if path == "" {
		return e, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		e.logger.Info().Str("path", path).Msg("details file absent, serving bare records")
		return e, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read details file: %w", err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode details file %s: %w", path, err)
	}

	for _, r := range records {
		e.byName[strings.ToLower(r.Name)] = r
	}
	e.logger.Info().Int("records", len(e.byName)).Msg("details loaded")
	return e, nil
}

// Enrich attaches any known presentation metadata to an item. Items
// without a matching detail row pass through unchanged.
func (e *Enricher) Enrich(item catalog.Item) Detail {
	d := Detail{Item: item}
	if r, ok := e.byName[strings.ToLower(item.Name)]; ok {
		d.Description = r.Description
		d.ImageURL = r.ImageURL
		d.Website = r.Website
	}
	return d
}
