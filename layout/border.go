// Copyright © 2026 Wavy contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/border.go
// Summary: Frame and view border painting into per-leaf buffers.
// Usage: Borders are four filled strips; the buffers blit on render_pre.

package layout

import "wavy/canvas"

// borderBuffer caches one leaf's border pixels between repaints.
type borderBuffer struct {
	buf  canvas.Buffer
	w, h int
}

func (b *borderBuffer) release(cv canvas.Canvas) {
	if b.buf != nil && cv != nil {
		cv.DestroyBuffer(b.buf)
	}
	b.buf = nil
	b.w, b.h = 0, 0
}

// ensure reallocates the buffer when the leaf's gap geometry changed.
func (b *borderBuffer) ensure(cv canvas.Canvas, w, h int) {
	if b.buf != nil && b.w == w && b.h == h {
		return
	}
	b.release(cv)
	if w <= 0 || h <= 0 {
		return
	}
	b.buf = cv.CreateBuffer(w, h)
	b.w, b.h = w, h
}

// paintStrips draws a border of the given thickness along the edges of r.
func paintStrips(cv canvas.Canvas, buf canvas.Buffer, r canvas.Rect, thickness int, color uint32) {
	if thickness <= 0 || r.Empty() {
		return
	}
	cv.PaintRect(buf, canvas.Rect{X: r.X, Y: r.Y, W: r.W, H: thickness}, color)
	cv.PaintRect(buf, canvas.Rect{X: r.X, Y: r.Y + r.H - thickness, W: r.W, H: thickness}, color)
	cv.PaintRect(buf, canvas.Rect{X: r.X, Y: r.Y, W: thickness, H: r.H}, color)
	cv.PaintRect(buf, canvas.Rect{X: r.X + r.W - thickness, Y: r.Y, W: thickness, H: r.H}, color)
}

// updateFrameBorder repaints a leaf's outer border. Empty leaves use their
// own thickness and colors so an empty target frame stays findable.
func (m *Manager) updateFrameBorder(ws *Workspace, fr *Frame, realloc bool) {
	if m.cv == nil {
		return
	}

	g := fr.geoGaps
	if realloc || fr.border.buf == nil {
		fr.border.ensure(m.cv, g.W, g.H)
	}
	if fr.border.buf == nil {
		return
	}

	active := m.ActiveFrame() == fr
	empty := len(fr.views) == 0

	var thickness int
	var color uint32
	switch {
	case empty && active:
		thickness, color = m.cfg.FrameBorderEmptySize, m.cfg.FrameBorderEmptyActiveColor
	case empty:
		thickness, color = m.cfg.FrameBorderEmptySize, m.cfg.FrameBorderEmptyInactiveColor
	case active:
		thickness, color = m.cfg.FrameBorderSize, m.cfg.FrameBorderActiveColor
	default:
		thickness, color = m.cfg.FrameBorderSize, m.cfg.FrameBorderInactiveColor
	}

	// Clear the whole buffer; view borders repaint after this.
	m.cv.PaintRect(fr.border.buf, canvas.Rect{W: g.W, H: g.H}, 0x00000000)
	paintStrips(m.cv, fr.border.buf, canvas.Rect{W: g.W, H: g.H}, thickness, color)
}

// paintViewBorder draws the strip between a placed view and its cell. The
// active color applies only when the leaf is active and the view is the
// leaf's active view.
func (m *Manager) paintViewBorder(ws *Workspace, fr *Frame, v View, g canvas.Rect) {
	if m.cv == nil || fr.border.buf == nil || m.cfg.ViewBorderSize <= 0 {
		return
	}
	color := m.cfg.ViewBorderInactiveColor
	if m.ActiveFrame() == fr && fr.activeView == v {
		color = m.cfg.ViewBorderActiveColor
	}
	paintStrips(m.cv, fr.border.buf, g, m.cfg.ViewBorderSize, color)
}
