// Copyright © 2026 Wavy contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: canvas/software.go
// Summary: Software Canvas over image.RGBA with basicfont text.

package canvas

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Image is a pixel buffer backed by an image.RGBA.
type Image struct {
	RGBA *image.RGBA
}

func (b *Image) Size() (int, int) {
	r := b.RGBA.Bounds()
	return r.Dx(), r.Dy()
}

// BlitFunc receives finished pixel buffers for an output. The host side
// installs one; tests install a recorder.
type BlitFunc func(outputID uint64, g Rect, img *image.RGBA)

// Software renders into image.RGBA buffers using the fixed 7x13 face. It is
// the only Canvas the core ships; the simulated host wraps its own.
type Software struct {
	face font.Face
	blit BlitFunc
}

func NewSoftware(blit BlitFunc) *Software {
	return &Software{face: basicfont.Face7x13, blit: blit}
}

func (s *Software) CreateBuffer(w, h int) Buffer {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Image{RGBA: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (s *Software) DestroyBuffer(b Buffer) {
	// Nothing to release; buffers are garbage collected.
}

// rgba unpacks a 0xRRGGBBAA color.
func rgba(c Color) color.RGBA {
	return color.RGBA{
		R: uint8(c >> 24),
		G: uint8(c >> 16),
		B: uint8(c >> 8),
		A: uint8(c),
	}
}

func (s *Software) PaintRect(b Buffer, r Rect, c Color) {
	img, ok := b.(*Image)
	if !ok || r.Empty() {
		return
	}
	dst := image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
	draw.Draw(img.RGBA, dst, &image.Uniform{C: rgba(c)}, image.Point{}, draw.Src)
}

func (s *Software) DrawText(b Buffer, r Rect, fontName, text string, fg Color) {
	img, ok := b.(*Image)
	if !ok || text == "" || r.Empty() {
		return
	}

	width := s.TextWidth(fontName, text)
	metrics := s.face.Metrics()
	height := metrics.Ascent.Ceil() + metrics.Descent.Ceil()

	x := r.X + (r.W-width)/2
	y := r.Y + (r.H-height)/2 + metrics.Ascent.Ceil()

	d := font.Drawer{
		Dst:  img.RGBA,
		Src:  &image.Uniform{C: rgba(fg)},
		Face: s.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func (s *Software) TextWidth(fontName, text string) int {
	return font.MeasureString(s.face, text).Ceil()
}

func (s *Software) BlitToOutput(outputID uint64, g Rect, b Buffer) {
	img, ok := b.(*Image)
	if !ok || s.blit == nil {
		return
	}
	s.blit(outputID, g, img.RGBA)
}
