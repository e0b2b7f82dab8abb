// Copyright © 2026 Wavy contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/workspace.go
// Summary: Workspaces and outputs: the containers the frame trees live in.

package layout

import (
	"wavy/canvas"
	"wavy/config"
)

// Workspace is a numbered layout context. The root frame always exists;
// the active frame is a leaf inside it. At most one workspace per output
// is visible.
type Workspace struct {
	number  int // 0-based; displayed 1-based
	root    *Frame
	active  *Frame
	output  *Output // nil while detached
	visible bool
}

// Number returns the 0-based workspace index.
func (ws *Workspace) Number() int { return ws.number }

// Root returns the workspace's root frame.
func (ws *Workspace) Root() *Frame { return ws.root }

// ActiveFrame returns the focused leaf.
func (ws *Workspace) ActiveFrame() *Frame { return ws.active }

// Visible reports whether the workspace is shown on its output.
func (ws *Workspace) Visible() bool { return ws.visible }

// Output returns the assigned output, nil while detached.
func (ws *Workspace) Output() *Output { return ws.output }

// Output is a physical display. The stored size is the usable area: the
// full resolution minus the status bar strip.
type Output struct {
	id       uint64
	w, h     int
	activeWs *Workspace
}

// ID returns the host's handle for this output.
func (o *Output) ID() uint64 { return o.id }

// Size returns the usable area in pixels.
func (o *Output) Size() (w, h int) { return o.w, o.h }

// VisibleWorkspace returns the workspace currently shown.
func (o *Output) VisibleWorkspace() *Workspace { return o.activeWs }

// usableGeometry is the rectangle workspaces tile into: the output minus
// the bar strip, which sits above or below it.
func (m *Manager) usableGeometry(out *Output) canvas.Rect {
	y := 0
	if m.cfg.StatusbarPosition == config.PosTop {
		y = m.cfg.StatusbarHeight
	}
	return canvas.Rect{X: 0, Y: y, W: out.w, H: out.h}
}
