// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package franchise

// DefaultOverrides is the curated override table for franchises whose
// chronological or narrative order is unreliable from release metadata
// or external lists. Titles are lowercased canonical names in play
// order.
var DefaultOverrides = map[string][]string{
	"final-fantasy": {
		"final fantasy vii",
		"final fantasy vii remake",
		"final fantasy viii",
		"final fantasy ix",
	},
	"zelda": {
		"the legend of zelda: ocarina of time",
		"the legend of zelda: majora's mask",
		"the legend of zelda: twilight princess",
	},
}
