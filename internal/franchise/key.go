// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

// Package franchise canonicalizes games into franchise families and
// resolves canonical within-franchise play order from layered sources:
// curated overrides, an external list lookup with a persistent cache,
// release metadata, and a textual numeral heuristic.
package franchise

import (
	"regexp"
	"strings"
)

// editionSuffixes are edition markers stripped from the end of a slug
// when deriving the franchise key. Order does not matter; stripping
// repeats until no suffix remains.
var editionSuffixes = map[string]struct{}{
	"remastered":  {},
	"remaster":    {},
	"remake":      {},
	"definitive":  {},
	"complete":    {},
	"goty":        {},
	"ultimate":    {},
	"hd":          {},
	"vr":          {},
	"redux":       {},
	"edition":     {},
	"enhanced":    {},
	"anniversary": {},
	"deluxe":      {},
}

// romanNumerals maps roman numeral tokens I-X to their values.
var romanNumerals = map[string]int{
	"i": 1, "ii": 2, "iii": 3, "iv": 4, "v": 5,
	"vi": 6, "vii": 7, "viii": 8, "ix": 9, "x": 10,
}

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9\- ]+`)
	arabicToken  = regexp.MustCompile(`^[0-9]+$`)
)

// ExtractKey derives the franchise key for a game from its display name
// and optional slug. It is a pure function: the same inputs always yield
// the same key.
//
// The key is the slug (or the normalized name when the slug is empty)
// with trailing edition suffixes and one trailing numeral token removed.
// Titles with no discernible base after stripping degrade to the short
// normalized name; the collision risk there is a known heuristic
// limitation, not a defect.
func ExtractKey(name, slug string) string {
	base := strings.ToLower(strings.TrimSpace(slug))
	if base == "" {
		base = normalizeName(name)
	}

	tokens := splitSlug(base)

	// Strip edition suffixes anchored at the end.
	for len(tokens) > 1 {
		if _, ok := editionSuffixes[tokens[len(tokens)-1]]; !ok {
			break
		}
		tokens = tokens[:len(tokens)-1]
	}

	// Strip one trailing numeral token, arabic or roman.
	if len(tokens) > 1 {
		last := tokens[len(tokens)-1]
		if _, roman := romanNumerals[last]; roman || arabicToken.MatchString(last) {
			tokens = tokens[:len(tokens)-1]
		}
	}

	key := strings.Join(tokens, "-")
	if key == "" {
		key = shortName(name)
	}
	return key
}

// normalizeName lowercases a display name and strips punctuation outside
// alphanumerics, hyphens, and spaces, producing a slug-shaped token.
func normalizeName(name string) string {
	n := strings.ToLower(name)
	n = nonSlugChars.ReplaceAllString(n, "")
	return strings.Join(strings.Fields(n), "-")
}

// splitSlug splits a slug on hyphens, dropping empty segments so that
// repeated separators collapse.
func splitSlug(s string) []string {
	parts := strings.Split(s, "-")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// shortName is the fallback key: the first three whitespace tokens of
// the normalized name.
func shortName(name string) string {
	n := strings.ToLower(name)
	n = nonSlugChars.ReplaceAllString(n, "")
	fields := strings.Fields(n)
	if len(fields) > 3 {
		fields = fields[:3]
	}
	return strings.Join(fields, "-")
}
