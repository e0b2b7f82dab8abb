// Copyright © 2026 Wavy contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/tiling.go
// Summary: The five leaf tiling policies.
// Usage: Pure geometry; the Manager turns placements into host calls.

package layout

import (
	"math"

	"wavy/canvas"
	"wavy/config"
)

// Placement assigns one view its rectangle. A hidden placement masks the
// view instead (fullscreen mode hides everything but the active view).
type Placement struct {
	View    View
	Rect    canvas.Rect
	Visible bool
}

// tilePlacements lays out views inside the leaf's inner rectangle under
// the given policy. Division remainders always go to the last view, last
// column or last row so the inner rectangle is covered exactly.
func tilePlacements(mode config.TileMode, inner canvas.Rect, views []View, active View) []Placement {
	n := len(views)
	if n == 0 {
		return nil
	}

	out := make([]Placement, 0, n)

	switch mode {
	case config.TileVertical:
		hDiv := inner.H / n
		for i, v := range views {
			h := hDiv
			if i == n-1 {
				h = inner.H - i*hDiv
			}
			out = append(out, Placement{
				View:    v,
				Rect:    canvas.Rect{X: inner.X, Y: inner.Y + i*hDiv, W: inner.W, H: h},
				Visible: true,
			})
		}

	case config.TileHorizontal:
		wDiv := inner.W / n
		for i, v := range views {
			w := wDiv
			if i == n-1 {
				w = inner.W - i*wDiv
			}
			out = append(out, Placement{
				View:    v,
				Rect:    canvas.Rect{X: inner.X + i*wDiv, Y: inner.Y, W: w, H: inner.H},
				Visible: true,
			})
		}

	case config.TileGrid:
		cols := int(math.Ceil(math.Sqrt(float64(n))))
		rows := n / cols
		if n%cols != 0 {
			rows++
		}
		wDiv := inner.W / cols
		hDiv := inner.H / rows

		c := 0
		for i := 0; i < rows; i++ {
			for j := 0; j < cols && c < n; j++ {
				h := hDiv
				if i == rows-1 {
					h = inner.H - i*hDiv
				}
				var w int
				switch {
				case c == n-1:
					// last view absorbs the rest of its row
					w = inner.W - j*wDiv
				case (j+1)%cols == 0:
					w = inner.W - (cols-1)*wDiv
				default:
					w = wDiv
				}
				out = append(out, Placement{
					View:    views[c],
					Rect:    canvas.Rect{X: inner.X + j*wDiv, Y: inner.Y + i*hDiv, W: w, H: h},
					Visible: true,
				})
				c++
			}
		}

	case config.TileFullscreen:
		for _, v := range views {
			if v == active {
				out = append(out, Placement{View: v, Rect: inner, Visible: true})
			} else {
				out = append(out, Placement{View: v, Visible: false})
			}
		}

	case config.TileFibonacci:
		// Halve the remaining rectangle per view, alternating the cut axis;
		// the last view absorbs whatever is left.
		rem := inner
		for i, v := range views {
			if i == n-1 {
				out = append(out, Placement{View: v, Rect: rem, Visible: true})
				break
			}
			if i%2 == 0 {
				half := rem.W / 2
				out = append(out, Placement{
					View:    v,
					Rect:    canvas.Rect{X: rem.X, Y: rem.Y, W: half, H: rem.H},
					Visible: true,
				})
				rem = canvas.Rect{X: rem.X + half, Y: rem.Y, W: rem.W - half, H: rem.H}
			} else {
				half := rem.H / 2
				out = append(out, Placement{
					View:    v,
					Rect:    canvas.Rect{X: rem.X, Y: rem.Y, W: rem.W, H: half},
					Visible: true,
				})
				rem = canvas.Rect{X: rem.X, Y: rem.Y + half, W: rem.W, H: rem.H - half}
			}
		}
	}

	return out
}

// gridCols returns the column count the grid policy would use, shared with
// the directional adjacency resolver.
func gridCols(n int) int {
	if n == 0 {
		return 1
	}
	return int(math.Ceil(math.Sqrt(float64(n))))
}
