// Copyright © 2026 Wavy contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: canvas/canvas.go
// Summary: The Canvas port: buffers, rect fills, text and output blits.
// Usage: Implemented in software here; the host side supplies the blit sink.

package canvas

// Color is a packed 0xRRGGBBAA value, the encoding used throughout the
// configuration surface.
type Color = uint32

// Rect is the pixel geometry unit shared by the layout, bar and wallpaper
// code.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Inset returns r shrunk by n pixels on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// Buffer is an opaque drawing surface owned by a Canvas.
type Buffer interface {
	Size() (w, h int)
}

// Canvas is the drawing port. The layout core paints borders and the bar
// driver paints status content through it; neither knows what backs the
// buffers.
type Canvas interface {
	CreateBuffer(w, h int) Buffer
	DestroyBuffer(b Buffer)

	// PaintRect fills r (in buffer coordinates) with the given color.
	PaintRect(b Buffer, r Rect, c Color)

	// DrawText renders text centered inside r. The font string is a hint in
	// the "family size" form; implementations may approximate.
	DrawText(b Buffer, r Rect, font, text string, fg Color)

	// TextWidth reports the pixel width text would occupy when drawn.
	TextWidth(font, text string) int

	// BlitToOutput copies the buffer to the output at geometry g.
	BlitToOutput(outputID uint64, g Rect, b Buffer)
}
