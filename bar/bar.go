// Copyright © 2026 Wavy contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: bar/bar.go
// Summary: Per-output status bar: double buffers, indicators and widget
//          composition.
// Usage: The render path reads the front buffer under the same draw lock
//        the repaint swaps it under; a swap is a pointer exchange, never a
//        partial write.

package bar

import (
	"fmt"
	"strings"
	"sync"

	"wavy/canvas"
	"wavy/config"
	"wavy/layout"
)

// wsCellWidth is the fixed width of one workspace indicator cell.
const wsCellWidth = 20

// outputBar holds one output's bar state. front is what render_pre blits;
// back is what repaint draws into before the swap.
type outputBar struct {
	id uint64

	mu          sync.Mutex // the draw lock
	g           canvas.Rect
	front, back canvas.Buffer
	outW, outH  int
	dirty       bool
	fingerprint string
}

func (d *Driver) barGeometry(outW, outH int) canvas.Rect {
	y := 0
	if d.cfg.StatusbarPosition == config.PosBottom {
		y = outH - d.cfg.StatusbarHeight
	}
	return canvas.Rect{X: 0, Y: y, W: outW, H: d.cfg.StatusbarHeight}
}

// allocLocked (re)creates both buffers for the current output size.
func (d *Driver) allocLocked(b *outputBar) {
	if b.front != nil {
		d.cv.DestroyBuffer(b.front)
		d.cv.DestroyBuffer(b.back)
	}
	b.g = d.barGeometry(b.outW, b.outH)
	b.front = d.cv.CreateBuffer(b.g.W, b.g.H)
	b.back = d.cv.CreateBuffer(b.g.W, b.g.H)
	b.dirty = false
	b.fingerprint = ""
}

// widgetRender is the snapshot a repaint works from, taken under the
// script lock so a concurrent hook cannot tear it.
type widgetRender struct {
	side     Side
	bg, fg   uint32
	text     string
}

// repaint redraws one bar's back buffer and swaps. Skipped when neither
// the widgets nor the indicators changed since the last paint.
func (d *Driver) repaint(b *outputBar, widgets []widgetRender) {
	b.mu.Lock()
	defer b.mu.Unlock()

	inds := d.state.WorkspaceIndicators(b.id)

	fp := d.fingerprintFor(widgets, inds)
	if !b.dirty && fp == b.fingerprint && b.front != nil {
		return
	}

	if b.dirty || b.front == nil {
		d.allocLocked(b)
	}

	cfg := d.cfg
	d.cv.PaintRect(b.back, canvas.Rect{W: b.g.W, H: b.g.H}, cfg.StatusbarBgColor)

	// Workspace indicators occupy fixed cells at the left edge.
	for i, ind := range inds {
		bg, fg := cfg.StatusbarInactiveWsColor, cfg.StatusbarInactiveWsFontColor
		if ind.Active {
			bg, fg = cfg.StatusbarActiveWsColor, cfg.StatusbarActiveWsFontColor
		}
		cell := canvas.Rect{X: i * wsCellWidth, Y: 0, W: wsCellWidth, H: b.g.H}
		d.cv.PaintRect(b.back, cell, bg)
		d.cv.DrawText(b.back, cell, cfg.StatusbarFont, ind.Label, fg)
	}

	d.drawWidgets(b, widgets, len(inds))

	b.front, b.back = b.back, b.front
	b.fingerprint = fp
}

// drawWidgets lays the widget boxes out: right-side widgets from the right
// edge inward, left-side widgets from the indicator edge outward. Drawing
// stops when the cursors collide.
func (d *Driver) drawWidgets(b *outputBar, widgets []widgetRender, numIndicators int) {
	cfg := d.cfg
	gap := cfg.StatusbarGap
	padding := cfg.StatusbarPadding

	prevXRight := b.g.W + gap
	prevXLeft := numIndicators*wsCellWidth + gap
	firstRight, firstLeft := true, true

	for _, w := range widgets {
		if w.text == "" {
			continue
		}
		if prevXLeft > prevXRight {
			break
		}

		width := d.cv.TextWidth(cfg.StatusbarFont, w.text) + 2*padding

		var x int
		if w.side == SideRight {
			x = prevXRight - width - gap
			if cfg.StatusbarSeparatorEnabled && !firstRight {
				sepX := x + width + (gap-cfg.StatusbarSeparatorWidth)/2
				d.cv.PaintRect(b.back, canvas.Rect{X: sepX, Y: 0, W: cfg.StatusbarSeparatorWidth, H: b.g.H},
					cfg.StatusbarSeparatorColor)
			}
			prevXRight = x
			firstRight = false
		} else {
			x = prevXLeft
			if cfg.StatusbarSeparatorEnabled && !firstLeft {
				sepX := x - (gap+cfg.StatusbarSeparatorWidth)/2
				d.cv.PaintRect(b.back, canvas.Rect{X: sepX, Y: 0, W: cfg.StatusbarSeparatorWidth, H: b.g.H},
					cfg.StatusbarSeparatorColor)
			}
			prevXLeft = x + width + gap
			firstLeft = false
		}

		box := canvas.Rect{X: x, Y: 0, W: width, H: b.g.H}
		d.cv.PaintRect(b.back, box, w.bg)
		d.cv.DrawText(b.back, box, cfg.StatusbarFont, w.text, w.fg)
	}
}

func (d *Driver) fingerprintFor(widgets []widgetRender, inds []layout.Indicator) string {
	var sb strings.Builder
	for _, w := range widgets {
		fmt.Fprintf(&sb, "%d/%08x/%08x/%s;", w.side, w.bg, w.fg, w.text)
	}
	for _, ind := range inds {
		fmt.Fprintf(&sb, "%s=%v;", ind.Label, ind.Active)
	}
	return sb.String()
}
