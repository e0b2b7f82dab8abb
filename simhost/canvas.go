// Copyright © 2026 Wavy contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: simhost/canvas.go
// Summary: A cell-resolution Canvas: pixels map onto terminal cells.
// Usage: The layout core thinks in pixels; the simulated host renders a
//        cellW x cellH block per terminal cell.

package simhost

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"wavy/canvas"
)

// One terminal cell stands in for an 8x16 pixel block.
const (
	cellW = 8
	cellH = 16
)

type cell struct {
	ch  rune
	fg  tcell.Color
	bg  tcell.Color
	set bool
}

type cellBuf struct {
	w, h       int // pixel size the core asked for
	cols, rows int
	cells      [][]cell
}

func (b *cellBuf) Size() (int, int) { return b.w, b.h }

func toTcell(c canvas.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c>>24&0xff), int32(c>>16&0xff), int32(c>>8&0xff))
}

// CellCanvas implements the Canvas port against a tcell screen.
type CellCanvas struct {
	sim *Sim
}

func (cc *CellCanvas) CreateBuffer(w, h int) canvas.Buffer {
	cols := (w + cellW - 1) / cellW
	rows := (h + cellH - 1) / cellH
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	cells := make([][]cell, rows)
	for i := range cells {
		cells[i] = make([]cell, cols)
	}
	return &cellBuf{w: w, h: h, cols: cols, rows: rows, cells: cells}
}

func (cc *CellCanvas) DestroyBuffer(b canvas.Buffer) {}

func (cc *CellCanvas) PaintRect(b canvas.Buffer, r canvas.Rect, c canvas.Color) {
	buf, ok := b.(*cellBuf)
	if !ok || r.Empty() {
		return
	}
	transparent := c&0xff < 8

	x0 := r.X / cellW
	y0 := r.Y / cellH
	x1 := (r.X + r.W + cellW - 1) / cellW
	y1 := (r.Y + r.H + cellH - 1) / cellH

	// The far edges round up, so every non-empty rect covers at least one
	// cell; a thin strip fills the whole cell it touches.
	if r.W >= cellW/2 && x1 == x0 {
		x1 = x0 + 1
	}
	if r.H >= cellH/2 && y1 == y0 {
		y1 = y0 + 1
	}

	bg := toTcell(c)
	for y := y0; y < y1 && y < buf.rows; y++ {
		for x := x0; x < x1 && x < buf.cols; x++ {
			if y < 0 || x < 0 {
				continue
			}
			if transparent {
				buf.cells[y][x] = cell{}
				continue
			}
			buf.cells[y][x] = cell{ch: ' ', bg: bg, fg: buf.cells[y][x].fg, set: true}
		}
	}
}

func (cc *CellCanvas) DrawText(b canvas.Buffer, r canvas.Rect, font, text string, fg canvas.Color) {
	buf, ok := b.(*cellBuf)
	if !ok || text == "" || r.Empty() {
		return
	}

	colSpan := r.W / cellW
	if colSpan < 1 {
		colSpan = 1
	}
	startCol := r.X/cellW + (colSpan-runewidth.StringWidth(text))/2
	row := (r.Y + r.H/2) / cellH
	if row >= buf.rows {
		row = buf.rows - 1
	}
	if row < 0 {
		row = 0
	}

	color := toTcell(fg)
	col := startCol
	for _, ch := range text {
		if col >= 0 && col < buf.cols {
			c := &buf.cells[row][col]
			c.ch = ch
			c.fg = color
			c.set = true
		}
		col += runewidth.RuneWidth(ch)
	}
}

func (cc *CellCanvas) TextWidth(font, text string) int {
	return runewidth.StringWidth(text) * cellW
}

// BlitToOutput copies set cells onto the terminal. Unset cells are
// transparent and leave whatever is underneath.
func (cc *CellCanvas) BlitToOutput(outputID uint64, g canvas.Rect, b canvas.Buffer) {
	buf, ok := b.(*cellBuf)
	if !ok || cc.sim == nil || cc.sim.screen == nil {
		return
	}
	offX := g.X / cellW
	offY := g.Y / cellH
	for y := 0; y < buf.rows; y++ {
		for x := 0; x < buf.cols; x++ {
			c := buf.cells[y][x]
			if !c.set {
				continue
			}
			style := tcell.StyleDefault.Foreground(c.fg).Background(c.bg)
			cc.sim.screen.SetContent(offX+x, offY+y, c.ch, nil, style)
		}
	}
}
