// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package franchise

import "testing"

func TestExtractKey(t *testing.T) {
	tests := []struct {
		name string
		slug string
		want string
	}{
		{"Final Fantasy VII", "final-fantasy-vii", "final-fantasy"},
		{"Final Fantasy VII Remake", "final-fantasy-vii-remake", "final-fantasy"},
		{"Final Fantasy VIII", "final-fantasy-viii", "final-fantasy"},
		{"Dark Souls Remastered", "dark-souls-remastered", "dark-souls"},
		{"The Witcher 3", "the-witcher-3", "the-witcher"},
		{"Skyrim Special", "skyrim-anniversary-edition", "skyrim"},
		{"Half-Life 2", "half-life-2", "half-life"},
		{"DOOM", "doom", "doom"},
		{"Grand Theft Auto V", "grand-theft-auto-v", "grand-theft-auto"},
		// Repeated separators collapse.
		{"Odd Slug", "odd--slug---2", "odd-slug"},
		// Slug absent: normalized from name.
		{"The Legend of Zelda: Ocarina of Time", "", "the-legend-of-zelda-ocarina-of-time"},
		{"Portal 2", "", "portal"},
		// Edition suffix then numeral both stripped.
		{"Mass Effect 2 Deluxe", "mass-effect-2-deluxe", "mass-effect"},
		// Single-token titles never strip to empty.
		{"V", "v", "v"},
		{"X HD", "x-hd", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.slug+"/"+tt.name, func(t *testing.T) {
			if got := ExtractKey(tt.name, tt.slug); got != tt.want {
				t.Errorf("ExtractKey(%q, %q) = %q, want %q", tt.name, tt.slug, got, tt.want)
			}
		})
	}
}

func TestExtractKeyStability(t *testing.T) {
	// Editions and sequels of one series share a key.
	a := ExtractKey("Final Fantasy VII Remake", "final-fantasy-vii-remake")
	b := ExtractKey("Final Fantasy VII", "final-fantasy-vii")
	if a != b {
		t.Errorf("keys differ: %q vs %q", a, b)
	}

	// Pure: repeated calls agree.
	for i := 0; i < 10; i++ {
		if got := ExtractKey("Final Fantasy VII", "final-fantasy-vii"); got != b {
			t.Fatalf("call %d: key changed to %q", i, got)
		}
	}
}

func TestExtractKeyFallbackShortName(t *testing.T) {
	// A name that is nothing but punctuation degrades to the short
	// normalized name, which may be empty for pathological input.
	if got := ExtractKey("!!!", ""); got != "" {
		t.Errorf("ExtractKey(!!!) = %q, want empty", got)
	}

	// Long names fall back to at most three tokens.
	got := ExtractKey("Some Very Long Game Name Here", "---")
	if got != "some-very-long" {
		t.Errorf("fallback key = %q, want some-very-long", got)
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Baldur's Gate", "baldurs-gate"},
		{"NieR:Automata", "nierautomata"},
		{"Tom Clancy's  Splinter   Cell", "tom-clancys-splinter-cell"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := normalizeName(tt.input); got != tt.want {
				t.Errorf("normalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
