// Copyright © 2026 Wavy contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/frame.go
// Summary: The binary frame tree: nodes, gaps and geometry recomputation.
// Usage: Frames are owned by workspaces; all mutation goes through the
//        Manager so invariants hold after every public operation.

package layout

import (
	"wavy/canvas"
)

// Direction is a user-facing movement direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Split is the axis of an internal frame. SplitNone marks a leaf.
type Split int

const (
	SplitNone Split = iota
	SplitHorizontal // children side by side
	SplitVertical   // children stacked
)

// Frame is a node of the layout tree. A leaf hosts an ordered view list
// placed by a tiling policy; an internal frame divides its rectangle
// between exactly two children along its split axis.
type Frame struct {
	parent      *Frame
	left, right *Frame

	// lastFocused remembers which subtree held focus most recently and
	// steers descent during directional navigation and frame deletion.
	lastFocused *Frame

	split Split

	// relSize is this frame's share of the parent along the split axis.
	// The root is always 1.0 and siblings sum to 1.0.
	relSize float64

	// Leaf state. tile indexes the configured tiling cycle.
	tile       int
	views      []View
	activeView View

	geo     canvas.Rect // assigned rectangle
	geoGaps canvas.Rect // rectangle after gap insets

	border borderBuffer
}

func newFrame(g canvas.Rect) *Frame {
	return &Frame{
		split:   SplitNone,
		relSize: 1.0,
		geo:     g,
		geoGaps: g,
	}
}

// IsLeaf reports whether the frame hosts views directly.
func (fr *Frame) IsLeaf() bool {
	return fr.split == SplitNone
}

// Parent returns the enclosing frame, nil for a workspace root.
func (fr *Frame) Parent() *Frame { return fr.parent }

// Children returns the two subtrees of an internal frame, nil for leaves.
func (fr *Frame) Children() (left, right *Frame) { return fr.left, fr.right }

// SplitAxis returns the split of the frame.
func (fr *Frame) SplitAxis() Split { return fr.split }

// RelSize returns the frame's share of its parent along the split axis.
func (fr *Frame) RelSize() float64 { return fr.relSize }

// Views returns the leaf's view list in layout order.
func (fr *Frame) Views() []View { return fr.views }

// ActiveView returns the leaf's focused view, zero when empty.
func (fr *Frame) ActiveView() View { return fr.activeView }

// Tile returns the index into the configured tiling cycle.
func (fr *Frame) Tile() int { return fr.tile }

// Geometry returns the frame's assigned rectangle.
func (fr *Frame) Geometry() canvas.Rect { return fr.geo }

// GapGeometry returns the rectangle after gap insets.
func (fr *Frame) GapGeometry() canvas.Rect { return fr.geoGaps }

func (fr *Frame) indexOfView(v View) int {
	for i, cur := range fr.views {
		if cur == v {
			return i
		}
	}
	return -1
}

// applyGaps computes geoGaps from geo with g1 = gap/2 and
// g2 = 2*gap - gap/2. Side by side, the left child is inset g1 on its left
// and top edges and gap-g1 at the bottom, the right child g2 on its left,
// g1 on top and gap-g1 at the bottom; neither is inset on its right edge.
// Stacked, the top child is inset g1 on its left and top edges and gap-g1
// on its right, not at the bottom; the bottom child is inset gap on its
// left, g2 on top and gap at the bottom, not on its right. The root frame
// is not inset at all.
func (fr *Frame) applyGaps(gap int) {
	g1 := gap / 2
	g2 := 2*gap - gap/2
	fr.geoGaps = fr.geo
	if fr.parent == nil {
		return
	}

	isLeft := fr.parent.left == fr
	switch fr.parent.split {
	case SplitHorizontal:
		if isLeft {
			fr.geoGaps.X += g1
			fr.geoGaps.Y += g1
			fr.geoGaps.H -= gap
			fr.geoGaps.W -= g1
		} else {
			fr.geoGaps.X += g2
			fr.geoGaps.Y += g1
			fr.geoGaps.H -= gap
			fr.geoGaps.W -= g2
		}
	case SplitVertical:
		if isLeft { // top
			fr.geoGaps.X += g1
			fr.geoGaps.Y += g1
			fr.geoGaps.H -= g1
			fr.geoGaps.W -= gap
		} else { // bottom
			fr.geoGaps.X += gap
			fr.geoGaps.Y += g2
			fr.geoGaps.H -= g2 + gap
			fr.geoGaps.W -= gap
		}
	}
}

// recalcGeometries assigns g to the frame and divides it among the
// children proportionally to the left child's relSize. This is the hot
// path; it runs on every mutation of the subtree.
func (fr *Frame) recalcGeometries(g canvas.Rect, gap int) {
	if fr == nil {
		return
	}

	fr.geo = g
	fr.applyGaps(gap)

	if fr.split == SplitNone || fr.left == nil || fr.right == nil {
		return
	}

	var gLeft, gRight canvas.Rect
	if fr.split == SplitHorizontal {
		split := int(fr.left.relSize * float64(g.W))
		gLeft = canvas.Rect{X: g.X, Y: g.Y, W: split, H: g.H}
		gRight = canvas.Rect{X: g.X + split, Y: g.Y, W: g.W - split, H: g.H}
	} else {
		split := int(fr.left.relSize * float64(g.H))
		gLeft = canvas.Rect{X: g.X, Y: g.Y, W: g.W, H: split}
		gRight = canvas.Rect{X: g.X, Y: g.Y + split, W: g.W, H: g.H - split}
	}

	fr.left.recalcGeometries(gLeft, gap)
	fr.right.recalcGeometries(gRight, gap)
}

// byView finds the leaf listing v anywhere in the subtree.
func (fr *Frame) byView(v View) *Frame {
	if fr == nil {
		return nil
	}
	if fr.split == SplitNone {
		if fr.indexOfView(v) >= 0 {
			return fr
		}
		return nil
	}
	if found := fr.left.byView(v); found != nil {
		return found
	}
	return fr.right.byView(v)
}

// eachLeaf visits every leaf of the subtree.
func (fr *Frame) eachLeaf(f func(*Frame)) {
	if fr == nil {
		return
	}
	if fr.split == SplitNone {
		f(fr)
		return
	}
	fr.left.eachLeaf(f)
	fr.right.eachLeaf(f)
}

// findParentBySplit walks up to the nearest ancestor with the given split
// axis, ignoring approach direction. Used by resize.
func (fr *Frame) findParentBySplit(sp Split) *Frame {
	if fr == nil || fr.parent == nil {
		return nil
	}
	cur := fr.parent
	for cur != nil && cur.split != sp {
		cur = cur.parent
	}
	return cur
}

// findParentBySplitDir walks up to the nearest ancestor with the given
// split axis that is approachable from direction dir: an ancestor reached
// from its left child cannot serve DirLeft, nor one reached from its right
// child DirRight, since descent would lead straight back.
func (fr *Frame) findParentBySplitDir(sp Split, dir Direction) *Frame {
	if fr == nil || fr.parent == nil {
		return nil
	}
	cur := fr
	for cur != nil && cur.parent != nil {
		applicable := !(cur == cur.parent.left && dir == DirLeft) &&
			!(cur == cur.parent.right && dir == DirRight)
		cur = cur.parent
		if cur.split == sp && applicable {
			return cur
		}
	}
	return nil
}

// frameSelection descends from an internal frame into the subtree on the
// given side, following lastFocused until a leaf. Falls back to the left
// child where no focus history exists.
func (fr *Frame) frameSelection(dir Direction) *Frame {
	if fr == nil {
		return nil
	}
	sel := fr.left
	if dir == DirRight {
		sel = fr.right
	}
	for sel != nil && sel.split != SplitNone {
		next := sel.lastFocused
		if next == nil {
			next = sel.left
		}
		sel = next
	}
	return sel
}
