// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

// Package sequence arranges a set of games into a play order. Games are
// grouped by franchise, each franchise is internally ordered by the
// resolver's source chain, and the groups are interleaved round-robin so
// no single series monopolizes the front of the queue.
package sequence

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/playdex/playdex/internal/catalog"
	"github.com/playdex/playdex/internal/franchise"
)

// Orchestrator builds play sequences over the loaded catalog.
type Orchestrator struct {
	store    *catalog.Store
	index    *franchise.Index
	resolver *franchise.Resolver
	logger   zerolog.Logger
}

// NewOrchestrator creates an orchestrator.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewOrchestrator(store *catalog.Store, index *franchise.Index, resolver *franchise.Resolver, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		store:    store,
		index:    index,
		resolver: resolver,
		logger:   logger.With().Str("component", "sequence").Logger(),
	}
}

// BuildPlaySequence arranges ids into a play order. Duplicate IDs are
// collapsed to their first occurrence and unknown IDs dropped; franchise
// groups form in first-encounter order, are ordered internally by the
// resolver, and are interleaved round-robin. Deterministic for fixed
// catalog and resolver state; empty input yields an empty sequence.
func (o *Orchestrator) BuildPlaySequence(ctx context.Context, ids []int) []catalog.Item {
	items := o.canonicalize(ids)
	if len(items) == 0 {
		return []catalog.Item{}
	}

	keys, groups := o.group(items)

	ordered := make([][]catalog.Item, len(keys))
	for i, key := range keys {
		ordered[i] = o.resolver.ResolveOrder(ctx, groups[key], key)
	}

	return interleave(ordered, len(items))
}

// canonicalize maps ids to catalog items, dropping unknowns and
// collapsing duplicates to their first occurrence.
func (o *Orchestrator) canonicalize(ids []int) []catalog.Item {
	seen := make(map[int]struct{}, len(ids))
	items := make([]catalog.Item, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		pos, ok := o.store.Position(id)
		if !ok {
			o.logger.Debug().Int("game_id", id).Msg("dropping unknown game from sequence")
			continue
		}
		items = append(items, o.store.At(pos))
	}
	return items
}

// group partitions items by franchise key, keys listed in
// first-encounter order.
func (o *Orchestrator) group(items []catalog.Item) ([]string, map[string][]catalog.Item) {
	var keys []string
	groups := make(map[string][]catalog.Item)

	for _, it := range items {
		key, ok := o.index.KeyOf(it.ID)
		if !ok {
			key = franchise.ExtractKey(it.Name, it.Slug)
		}
		if _, exists := groups[key]; !exists {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], it)
	}
	return keys, groups
}

// interleave merges the ordered groups round-robin: the first entry of
// every group, then the second of every group still holding one, and so
// on. Groups stay in their given order within each round.
func interleave(groups [][]catalog.Item, total int) []catalog.Item {
	out := make([]catalog.Item, 0, total)
	for round := 0; len(out) < total; round++ {
		for _, g := range groups {
			if round < len(g) {
				out = append(out, g[round])
			}
		}
	}
	return out
}
