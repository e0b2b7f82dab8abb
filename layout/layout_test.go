// Copyright © 2026 Wavy contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/layout_test.go
// Summary: Shared test fixtures: the fake host and invariant checks.

package layout

import (
	"fmt"
	"math"
	"testing"

	"wavy/canvas"
	"wavy/config"
)

type fakeHost struct {
	masks      map[View]uint32
	geoms      map[View]canvas.Rect
	focused    View
	closed     []View
	renders    int
	terminated bool
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		masks: make(map[View]uint32),
		geoms: make(map[View]canvas.Rect),
	}
}

func (h *fakeHost) ViewSetMask(v View, mask uint32)          { h.masks[v] = mask }
func (h *fakeHost) ViewSetGeometry(v View, g canvas.Rect)    { h.geoms[v] = g }
func (h *fakeHost) ViewFocus(v View)                         { h.focused = v }
func (h *fakeHost) ViewClose(v View)                         { h.closed = append(h.closed, v) }
func (h *fakeHost) ViewTitle(v View) string                  { return fmt.Sprintf("title-%d", v) }
func (h *fakeHost) ScheduleRender(output uint64)             { h.renders++ }
func (h *fakeHost) Terminate()                               { h.terminated = true }

// testConfig zeroes the view border so host geometries equal placements.
func testConfig() *config.Config {
	cfg := config.Default()
	cfg.ViewBorderSize = 0
	return cfg
}

func newTestManager(cfg *config.Config) (*Manager, *fakeHost) {
	if cfg == nil {
		cfg = testConfig()
	}
	host := newFakeHost()
	return NewManager(cfg, host, nil), host
}

// addOutputWithViews sets up the usual single 800x600 output with n views.
func addOutputWithViews(m *Manager, n int) {
	m.AddOutput(1, 800, 600)
	for i := 1; i <= n; i++ {
		m.ViewCreated(View(i))
	}
}

func checkFrameInvariants(t *testing.T, fr *Frame, seen map[View]bool) {
	t.Helper()
	if fr.split == SplitNone {
		if fr.left != nil || fr.right != nil {
			t.Fatalf("leaf frame has children")
		}
		if len(fr.views) == 0 && fr.activeView != 0 {
			t.Fatalf("empty leaf has active view %d", fr.activeView)
		}
		if len(fr.views) > 0 && fr.indexOfView(fr.activeView) < 0 {
			t.Fatalf("active view %d not in leaf views %v", fr.activeView, fr.views)
		}
		for _, v := range fr.views {
			if seen[v] {
				t.Fatalf("view %d appears in more than one leaf", v)
			}
			seen[v] = true
		}
		return
	}

	if fr.left == nil || fr.right == nil {
		t.Fatalf("internal frame missing a child")
	}
	if fr.views != nil {
		t.Fatalf("internal frame holds views")
	}
	sum := fr.left.relSize + fr.right.relSize
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("sibling rel sizes sum to %v", sum)
	}
	if fr.left.parent != fr || fr.right.parent != fr {
		t.Fatalf("child parent pointer broken")
	}
	checkFrameInvariants(t, fr.left, seen)
	checkFrameInvariants(t, fr.right, seen)
}

func checkInvariants(t *testing.T, m *Manager) {
	t.Helper()
	seen := make(map[View]bool)
	visiblePerOutput := make(map[*Output]int)

	for _, ws := range m.workspaces {
		if ws.root == nil {
			t.Fatalf("workspace %d has no root", ws.number)
		}
		checkFrameInvariants(t, ws.root, seen)

		// The active frame must be a leaf reachable from the root.
		found := false
		ws.root.eachLeaf(func(fr *Frame) {
			if fr == ws.active {
				found = true
			}
		})
		if !found {
			t.Fatalf("workspace %d active frame unreachable or not a leaf", ws.number)
		}

		if ws.visible {
			if ws.output == nil {
				t.Fatalf("visible workspace %d has no output", ws.number)
			}
			visiblePerOutput[ws.output]++
		}
	}
	for out, n := range visiblePerOutput {
		if n > 1 {
			t.Fatalf("output %d shows %d workspaces", out.id, n)
		}
	}
}
