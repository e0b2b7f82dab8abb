// Copyright © 2026 Wavy contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/adjacency.go
// Summary: Directional adjacency: view-local within a leaf, then
//          frame-level across the tree. Shared by focus and move.

package layout

import "wavy/config"

// adjacentView resolves a neighbor inside the leaf's own view sequence
// under its tiling mode. Zero means the mode admits no neighbor in dir and
// the frame-level resolver should run.
func (fr *Frame) adjacentView(mode config.TileMode, dir Direction) View {
	if fr == nil || len(fr.views) == 0 {
		return 0
	}
	i := fr.indexOfView(fr.activeView)
	if i < 0 {
		return 0
	}
	n := len(fr.views)

	switch mode {
	case config.TileVertical:
		switch dir {
		case DirUp:
			if i > 0 {
				return fr.views[i-1]
			}
		case DirDown:
			if i < n-1 {
				return fr.views[i+1]
			}
		}

	case config.TileHorizontal:
		switch dir {
		case DirLeft:
			if i > 0 {
				return fr.views[i-1]
			}
		case DirRight:
			if i < n-1 {
				return fr.views[i+1]
			}
		}

	case config.TileGrid:
		cols := gridCols(n)
		switch dir {
		case DirUp:
			if i >= cols {
				return fr.views[i-cols]
			}
		case DirDown:
			if i <= n-cols {
				if i+cols < n {
					return fr.views[i+cols]
				}
				return fr.views[n-1]
			}
		case DirLeft:
			if i%cols > 0 {
				return fr.views[i-1]
			}
		case DirRight:
			if i%cols < cols-1 && i < n-1 {
				return fr.views[i+1]
			}
		}
	}

	// Fullscreen and fibonacci admit no view-local neighbors.
	return 0
}

// findAdjacentFrame resolves the leaf reached by leaving fr in direction
// dir: walk up to an ancestor whose split axis matches and whose far side
// lies in that direction, then descend the opposite subtree along the
// focus history.
func (fr *Frame) findAdjacentFrame(dir Direction) *Frame {
	if fr == nil {
		return nil
	}

	var sp Split
	var side Direction
	switch dir {
	case DirUp:
		sp, side = SplitVertical, DirLeft
	case DirDown:
		sp, side = SplitVertical, DirRight
	case DirLeft:
		sp, side = SplitHorizontal, DirLeft
	case DirRight:
		sp, side = SplitHorizontal, DirRight
	default:
		return nil
	}

	ancestor := fr.findParentBySplitDir(sp, side)
	return ancestor.frameSelection(side)
}
