// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package franchise

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/playdex/playdex/internal/catalog"
)

// orderSentinel places items with no resolved position after all known
// positions.
const orderSentinel = 1 << 30

// LookupSource resolves an external title ordering for a franchise. A
// failed lookup returns an error; the resolver treats it as no data and
// falls through to the next source, never aborting the request.
type LookupSource interface {
	Lookup(ctx context.Context, title string) ([]string, error)
}

// Resolver resolves the within-franchise play order for one franchise's
// item subset. Sources are tried in precedence order; the first source
// yielding a non-empty ordering wins:
//
//  1. manual override table
//  2. external lookup (memoized on disk by the LookupSource)
//  3. release year, ascending, unknown years last
//  4. trailing numeral heuristic, unmatched titles last
type Resolver struct {
	overrides map[string][]string
	lookup    LookupSource
	logger    zerolog.Logger
}

// NewResolver creates a resolver. lookup may be nil to disable the
// external source; overrides may be nil.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewResolver(lookup LookupSource, overrides map[string][]string, logger zerolog.Logger) *Resolver {
	if overrides == nil {
		overrides = map[string][]string{}
	}
	return &Resolver{
		overrides: overrides,
		lookup:    lookup,
		logger:    logger.With().Str("component", "franchise").Logger(),
	}
}

// ResolveOrder orders the items of one franchise. The input slice is not
// modified; a newly ordered slice is returned. Every item receives a
// position: items unmatched by the chosen source sort after all matched
// ones, and the sort is stable so unmatched items keep their input order.
func (r *Resolver) ResolveOrder(ctx context.Context, items []catalog.Item, key string) []catalog.Item {
	if len(items) <= 1 {
		return append([]catalog.Item(nil), items...)
	}

	positions := r.titleListPositions(ctx, items, key)
	if positions == nil {
		positions = releaseYearPositions(items)
	}
	if positions == nil {
		positions = numeralPositions(items)
	}

	ordered := append([]catalog.Item(nil), items...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return positions[ordered[i].ID] < positions[ordered[j].ID]
	})
	return ordered
}

// titleListPositions tries the override table and then the external
// lookup, mapping items to their index in the resolved title list.
// Returns nil when neither source yields an ordering.
func (r *Resolver) titleListPositions(ctx context.Context, items []catalog.Item, key string) map[int]int {
	order := r.overrides[key]

	if len(order) == 0 && r.lookup != nil {
		found, err := r.lookup.Lookup(ctx, lookupTitle(key))
		if err != nil {
			r.logger.Warn().Err(err).Str("franchise", key).Msg("external order lookup failed, falling through")
		} else {
			order = found
		}
	}

	if len(order) == 0 {
		return nil
	}

	rankByTitle := make(map[string]int, len(order))
	for i, title := range order {
		title = strings.ToLower(title)
		if _, seen := rankByTitle[title]; !seen {
			rankByTitle[title] = i
		}
	}

	positions := make(map[int]int, len(items))
	for _, it := range items {
		if pos, ok := rankByTitle[strings.ToLower(it.Name)]; ok {
			positions[it.ID] = pos
		} else {
			positions[it.ID] = orderSentinel
		}
	}
	return positions
}

// lookupTitle derives the external query title for a franchise key,
// e.g. "final-fantasy" -> "List_of_final_fantasy_video_games".
func lookupTitle(key string) string {
	return "List_of_" + strings.ReplaceAll(key, "-", "_") + "_video_games"
}

// releaseYearPositions orders by release year ascending. Returns nil
// when no item in the subset has a known year.
func releaseYearPositions(items []catalog.Item) map[int]int {
	any := false
	positions := make(map[int]int, len(items))
	for _, it := range items {
		if it.ReleaseYear > 0 {
			positions[it.ID] = it.ReleaseYear
			any = true
		} else {
			positions[it.ID] = orderSentinel
		}
	}
	if !any {
		return nil
	}
	return positions
}

// numeralToken matches an arabic or roman (i-x) numeral word.
var numeralToken = regexp.MustCompile(`\b([0-9]+|ii|iii|iv|v|vi|vii|viii|ix|x|i)\b`)

// numeralPositions is the last-resort disambiguator: each title is
// scanned for a numeral token, romans mapped to their value, no match
// sorting last.
func numeralPositions(items []catalog.Item) map[int]int {
	positions := make(map[int]int, len(items))
	for _, it := range items {
		positions[it.ID] = titleNumeral(it.Name)
	}
	return positions
}

// titleNumeral extracts the sequence number from a title, or the
// sentinel when the title carries none.
func titleNumeral(name string) int {
	m := numeralToken.FindString(strings.ToLower(name))
	if m == "" {
		return orderSentinel
	}
	if v, ok := romanNumerals[m]; ok {
		return v
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return orderSentinel
	}
	return v
}
