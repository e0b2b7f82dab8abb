// Copyright © 2026 Wavy contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/adjacency_test.go
// Summary: View-local and frame-level directional resolution.

package layout

import (
	"testing"

	"wavy/canvas"
	"wavy/config"
)

func leafWithViews(vs []View, active View) *Frame {
	fr := newFrame(canvas.Rect{W: 100, H: 100})
	fr.views = vs
	fr.activeView = active
	return fr
}

func TestVerticalViewAdjacency(t *testing.T) {
	fr := leafWithViews([]View{1, 2, 3}, 2)

	if got := fr.adjacentView(config.TileVertical, DirUp); got != 1 {
		t.Fatalf("up = %d, want 1", got)
	}
	if got := fr.adjacentView(config.TileVertical, DirDown); got != 3 {
		t.Fatalf("down = %d, want 3", got)
	}
	if got := fr.adjacentView(config.TileVertical, DirLeft); got != 0 {
		t.Fatalf("left = %d, want none", got)
	}

	fr.activeView = 1
	if got := fr.adjacentView(config.TileVertical, DirUp); got != 0 {
		t.Fatalf("up at edge = %d, want none", got)
	}
}

func TestAdjacencySymmetry(t *testing.T) {
	fr := leafWithViews([]View{1, 2, 3, 4}, 2)

	for _, mode := range []config.TileMode{config.TileVertical, config.TileHorizontal, config.TileGrid} {
		var fwd, back Direction
		switch mode {
		case config.TileVertical:
			fwd, back = DirDown, DirUp
		default:
			fwd, back = DirRight, DirLeft
		}
		for _, v := range fr.views {
			fr.activeView = v
			next := fr.adjacentView(mode, fwd)
			if next == 0 {
				continue
			}
			fr.activeView = next
			if got := fr.adjacentView(mode, back); got != v {
				t.Fatalf("%v: adjacent(%d, fwd)=%d but adjacent(%d, back)=%d",
					mode, v, next, next, got)
			}
		}
	}
}

func TestGridViewAdjacency(t *testing.T) {
	// Five views: cols=3, layout rows [1 2 3] / [4 5].
	fr := leafWithViews([]View{1, 2, 3, 4, 5}, 2)

	if got := fr.adjacentView(config.TileGrid, DirDown); got != 5 {
		t.Fatalf("down from 2 = %d, want 5", got)
	}
	fr.activeView = 3
	// Down from the last column of a short final row snaps to the last view.
	if got := fr.adjacentView(config.TileGrid, DirDown); got != 5 {
		t.Fatalf("down from 3 = %d, want 5", got)
	}
	fr.activeView = 4
	if got := fr.adjacentView(config.TileGrid, DirUp); got != 1 {
		t.Fatalf("up from 4 = %d, want 1", got)
	}
	if got := fr.adjacentView(config.TileGrid, DirLeft); got != 0 {
		t.Fatalf("left at row start = %d, want none", got)
	}
	fr.activeView = 1
	if got := fr.adjacentView(config.TileGrid, DirRight); got != 2 {
		t.Fatalf("right from 1 = %d, want 2", got)
	}
}

func TestFullscreenAdmitsNoLocalNeighbors(t *testing.T) {
	fr := leafWithViews([]View{1, 2, 3}, 2)
	for _, dir := range []Direction{DirUp, DirDown, DirLeft, DirRight} {
		if got := fr.adjacentView(config.TileFullscreen, dir); got != 0 {
			t.Fatalf("fullscreen neighbor in %v = %d", dir, got)
		}
	}
}

func TestFrameAdjacencyAcrossSplit(t *testing.T) {
	m, _ := newTestManager(nil)
	addOutputWithViews(m, 1)
	m.NewFrame(DirRight)

	root := m.ActiveWorkspace().Root()
	left, right := root.Children()

	if got := left.findAdjacentFrame(DirRight); got != right {
		t.Fatalf("adjacent right = %p, want right leaf", got)
	}
	if got := right.findAdjacentFrame(DirLeft); got != left {
		t.Fatalf("adjacent left = %p, want left leaf", got)
	}
	if got := left.findAdjacentFrame(DirLeft); got != nil {
		t.Fatalf("adjacent off the edge = %p, want nil", got)
	}
	if got := left.findAdjacentFrame(DirUp); got != nil {
		t.Fatalf("no vertical ancestor but got %p", got)
	}
}

func TestFrameAdjacencyFollowsLastFocused(t *testing.T) {
	m, _ := newTestManager(nil)
	addOutputWithViews(m, 1)

	// Left leaf plus a right column of two leaves; focus the bottom one so
	// the history leads there.
	m.NewFrame(DirRight)
	m.FocusDirection(DirRight)
	m.NewFrame(DirDown)
	m.FocusDirection(DirDown)
	bottom := m.ActiveFrame()

	m.FocusDirection(DirLeft)
	left := m.ActiveFrame()

	if got := left.findAdjacentFrame(DirRight); got != bottom {
		t.Fatalf("descent ignored focus history")
	}
}

func TestViewLocalWinsOverFrameLevel(t *testing.T) {
	m, _ := newTestManager(nil)
	addOutputWithViews(m, 2)
	m.NewFrame(DirDown)
	m.FocusView(1)

	// Active leaf stacks [1 2] vertically with 1 focused; DirDown must stay
	// inside the leaf even though the empty frame below is also adjacent.
	m.FocusDirection(DirDown)
	if m.ActiveView() != 2 {
		t.Fatalf("active = %d, want 2", m.ActiveView())
	}
	if !m.ActiveFrame().IsLeaf() || len(m.ActiveFrame().Views()) != 2 {
		t.Fatalf("focus left the leaf")
	}
}
