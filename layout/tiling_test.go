// Copyright © 2026 Wavy contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/tiling_test.go
// Summary: Placement policies: coverage, remainders and the fibonacci
//          reference sequence.

package layout

import (
	"testing"

	"wavy/canvas"
	"wavy/config"
)

func views(n int) []View {
	out := make([]View, n)
	for i := range out {
		out[i] = View(i + 1)
	}
	return out
}

// coverArea sums placement areas; exact cover means it equals the inner
// rectangle's area and no placement escapes it.
func coverArea(t *testing.T, inner canvas.Rect, ps []Placement) {
	t.Helper()
	area := 0
	for _, p := range ps {
		if !p.Visible {
			continue
		}
		r := p.Rect
		if r.X < inner.X || r.Y < inner.Y ||
			r.X+r.W > inner.X+inner.W || r.Y+r.H > inner.Y+inner.H {
			t.Fatalf("placement %+v escapes %+v", r, inner)
		}
		area += r.W * r.H
	}
	if area != inner.W*inner.H {
		t.Fatalf("covered area = %d, want %d", area, inner.W*inner.H)
	}
}

func TestVerticalStackAbsorbsRemainder(t *testing.T) {
	inner := canvas.Rect{X: 5, Y: 5, W: 790, H: 592}
	ps := tilePlacements(config.TileVertical, inner, views(3), 3)

	if len(ps) != 3 {
		t.Fatalf("got %d placements", len(ps))
	}
	want := []canvas.Rect{
		{X: 5, Y: 5, W: 790, H: 197},
		{X: 5, Y: 202, W: 790, H: 197},
		{X: 5, Y: 399, W: 790, H: 198},
	}
	for i, p := range ps {
		if p.Rect != want[i] {
			t.Fatalf("placement %d = %+v, want %+v", i, p.Rect, want[i])
		}
	}
	coverArea(t, inner, ps)
}

func TestHorizontalRowAbsorbsRemainder(t *testing.T) {
	inner := canvas.Rect{X: 5, Y: 5, W: 790, H: 591}
	ps := tilePlacements(config.TileHorizontal, inner, views(3), 1)

	want := []canvas.Rect{
		{X: 5, Y: 5, W: 263, H: 591},
		{X: 268, Y: 5, W: 263, H: 591},
		{X: 531, Y: 5, W: 264, H: 591},
	}
	for i, p := range ps {
		if p.Rect != want[i] {
			t.Fatalf("placement %d = %+v, want %+v", i, p.Rect, want[i])
		}
	}
	coverArea(t, inner, ps)
}

func TestGridThreeViews(t *testing.T) {
	inner := canvas.Rect{X: 0, Y: 0, W: 100, H: 90}
	ps := tilePlacements(config.TileGrid, inner, views(3), 1)

	// cols=2, rows=2; the final short row hands its full width to the
	// last view.
	want := []canvas.Rect{
		{X: 0, Y: 0, W: 50, H: 45},
		{X: 50, Y: 0, W: 50, H: 45},
		{X: 0, Y: 45, W: 100, H: 45},
	}
	for i, p := range ps {
		if p.Rect != want[i] {
			t.Fatalf("placement %d = %+v, want %+v", i, p.Rect, want[i])
		}
	}
	coverArea(t, inner, ps)
}

func TestGridFourViews(t *testing.T) {
	inner := canvas.Rect{X: 0, Y: 0, W: 101, H: 91}
	ps := tilePlacements(config.TileGrid, inner, views(4), 1)
	coverArea(t, inner, ps)
}

func TestFullscreenHidesInactive(t *testing.T) {
	inner := canvas.Rect{X: 10, Y: 10, W: 300, H: 200}
	ps := tilePlacements(config.TileFullscreen, inner, views(3), 2)

	for _, p := range ps {
		if p.View == 2 {
			if !p.Visible || p.Rect != inner {
				t.Fatalf("active placement = %+v", p)
			}
			continue
		}
		if p.Visible {
			t.Fatalf("view %d should be hidden", p.View)
		}
	}
}

func TestFibonacciReferenceSequence(t *testing.T) {
	inner := canvas.Rect{X: 0, Y: 0, W: 100, H: 100}
	ps := tilePlacements(config.TileFibonacci, inner, views(4), 4)

	want := []canvas.Rect{
		{X: 0, Y: 0, W: 50, H: 100},
		{X: 50, Y: 0, W: 50, H: 50},
		{X: 50, Y: 50, W: 25, H: 50},
		{X: 75, Y: 50, W: 25, H: 50},
	}
	for i, p := range ps {
		if p.Rect != want[i] {
			t.Fatalf("placement %d = %+v, want %+v", i, p.Rect, want[i])
		}
	}
	coverArea(t, inner, ps)
}

func TestFibonacciSingleViewFillsRect(t *testing.T) {
	inner := canvas.Rect{X: 3, Y: 4, W: 120, H: 80}
	ps := tilePlacements(config.TileFibonacci, inner, views(1), 1)
	if len(ps) != 1 || ps[0].Rect != inner {
		t.Fatalf("placements = %+v", ps)
	}
}

func TestEmptyLeafYieldsNoPlacements(t *testing.T) {
	if ps := tilePlacements(config.TileVertical, canvas.Rect{W: 10, H: 10}, nil, 0); ps != nil {
		t.Fatalf("placements = %+v, want none", ps)
	}
}
