// Copyright © 2026 Wavy contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/host.go
// Summary: Ports toward the host compositor and the bar driver.

package layout

import "wavy/canvas"

// View is an opaque host-owned surface handle. Zero means "no view".
type View = uint64

// Host is the outbound port to the compositor runtime. The layout core
// drives view geometry, masks and focus through it and never touches
// surfaces directly.
type Host interface {
	ViewSetMask(v View, mask uint32)
	ViewSetGeometry(v View, g canvas.Rect)
	ViewFocus(v View) // zero clears focus
	ViewClose(v View)
	ViewTitle(v View) string
	ScheduleRender(output uint64)
	Terminate()
}

// BarDriver is what the layout core needs from the status bar: lifecycle
// notifications per output and the view-update hook after tree mutations.
type BarDriver interface {
	OutputAdded(id uint64, w, h int)
	OutputRemoved(id uint64)
	OutputResized(id uint64, w, h int)
	TriggerViewUpdate()
	RenderOutput(id uint64)
}
