// Copyright © 2026 Wavy contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: canvas/software_test.go
// Summary: Software canvas: fills, text metrics and output blits.

package canvas

import (
	"image"
	"testing"
)

func TestPaintRectFills(t *testing.T) {
	cv := NewSoftware(nil)
	buf := cv.CreateBuffer(20, 10)

	cv.PaintRect(buf, Rect{X: 2, Y: 3, W: 5, H: 4}, 0xff0000ff)

	img := buf.(*Image).RGBA
	r, g, b, a := img.At(3, 4).RGBA()
	if r>>8 != 0xff || g != 0 || b != 0 || a>>8 != 0xff {
		t.Fatalf("pixel inside = %v %v %v %v", r>>8, g>>8, b>>8, a>>8)
	}
	if _, _, _, a := img.At(10, 4).RGBA(); a != 0 {
		t.Fatalf("pixel outside the rect painted")
	}
}

func TestTextWidthGrowsWithText(t *testing.T) {
	cv := NewSoftware(nil)
	short := cv.TextWidth("monospace 10", "ab")
	long := cv.TextWidth("monospace 10", "abcd")
	if short <= 0 || long <= short {
		t.Fatalf("widths = %d, %d", short, long)
	}
}

func TestDrawTextMarksPixels(t *testing.T) {
	cv := NewSoftware(nil)
	buf := cv.CreateBuffer(100, 20)
	cv.DrawText(buf, Rect{X: 0, Y: 0, W: 100, H: 20}, "monospace 10", "X", 0xffffffff)

	img := buf.(*Image).RGBA
	found := false
	for y := 0; y < 20 && !found; y++ {
		for x := 0; x < 100; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Fatalf("no glyph pixels drawn")
	}
}

func TestBlitReachesSink(t *testing.T) {
	var gotID uint64
	var gotRect Rect
	var gotImg *image.RGBA

	cv := NewSoftware(func(outputID uint64, g Rect, img *image.RGBA) {
		gotID, gotRect, gotImg = outputID, g, img
	})
	buf := cv.CreateBuffer(8, 8)
	cv.BlitToOutput(3, Rect{X: 1, Y: 2, W: 8, H: 8}, buf)

	if gotID != 3 || gotRect.X != 1 || gotImg == nil {
		t.Fatalf("blit sink got %d %+v %v", gotID, gotRect, gotImg)
	}
}

func TestRectHelpers(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 10}
	if r.Inset(3) != (Rect{X: 13, Y: 13, W: 14, H: 4}) {
		t.Fatalf("inset = %+v", r.Inset(3))
	}
	if !r.Contains(10, 10) || r.Contains(30, 10) {
		t.Fatalf("contains wrong")
	}
	if !(Rect{W: 0, H: 5}).Empty() {
		t.Fatalf("zero-width rect not empty")
	}
}
