// Playdex - Game Discovery and Play Sequencing
// Copyright 2026 Playdex contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playdex/playdex

package franchise

import (
	"testing"

	"github.com/playdex/playdex/internal/catalog"
)

func TestBuildIndexGroupsByKey(t *testing.T) {
	items := []catalog.Item{
		{ID: 1, Slug: "final-fantasy-vii", Name: "Final Fantasy VII"},
		{ID: 2, Slug: "final-fantasy-viii", Name: "Final Fantasy VIII"},
		{ID: 3, Slug: "dark-souls", Name: "Dark Souls"},
		{ID: 4, Slug: "dark-souls-remastered", Name: "Dark Souls Remastered"},
		{ID: 5, Slug: "stardew-valley", Name: "Stardew Valley"},
	}

	ix := BuildIndex(items)

	if ix.Size() != 3 {
		t.Errorf("Size() = %d, want 3", ix.Size())
	}

	ff := ix.Members("final-fantasy")
	if len(ff) != 2 || ff[0] != 1 || ff[1] != 2 {
		t.Errorf("Members(final-fantasy) = %v, want [1 2]", ff)
	}

	ds := ix.Members("dark-souls")
	if len(ds) != 2 {
		t.Errorf("Members(dark-souls) = %v, want 2 members", ds)
	}

	key, ok := ix.KeyOf(4)
	if !ok || key != "dark-souls" {
		t.Errorf("KeyOf(4) = %q, %v, want dark-souls", key, ok)
	}

	if _, ok := ix.KeyOf(999); ok {
		t.Error("KeyOf(999) should miss")
	}

	if got := ix.Members("unknown"); got != nil {
		t.Errorf("Members(unknown) = %v, want nil", got)
	}
}
