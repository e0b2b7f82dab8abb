// Copyright © 2026 Wavy contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: layout/manager.go
// Summary: The layout manager: owns outputs and workspaces, routes host
//          events into the frame trees and keeps the focus discipline.
// Usage: Single-writer; all mutations arrive on the host's event loop.

package layout

import (
	"log"
	"strconv"

	"wavy/canvas"
	"wavy/config"
)

const initialWorkspaces = 9

// Manager owns the set of outputs and workspaces. Everything the host
// compositor reports funnels through here.
type Manager struct {
	cfg  *config.Config
	host Host
	cv   canvas.Canvas
	bar  BarDriver // optional; nil in most tests

	outputs    []*Output
	workspaces []*Workspace
	active     *Output

	// Debug enables frame tree dumps after structural mutations.
	Debug bool
}

// NewManager creates the manager with the nine startup workspaces.
func NewManager(cfg *config.Config, host Host, cv canvas.Canvas) *Manager {
	m := &Manager{cfg: cfg, host: host, cv: cv}
	for i := 0; i < initialWorkspaces; i++ {
		m.workspaces = append(m.workspaces, m.allocWorkspace())
	}
	return m
}

// SetBar wires the status bar driver in. Optional.
func (m *Manager) SetBar(b BarDriver) { m.bar = b }

// Workspaces returns all workspaces in creation order.
func (m *Manager) Workspaces() []*Workspace { return m.workspaces }

// Outputs returns all connected outputs.
func (m *Manager) Outputs() []*Output { return m.outputs }

// ActiveOutput returns the focused output, nil when none is connected.
func (m *Manager) ActiveOutput() *Output { return m.active }

func (m *Manager) allocWorkspace() *Workspace {
	// Real dimensions are assigned once the workspace lands on an output.
	ws := &Workspace{number: len(m.workspaces)}
	ws.root = newFrame(canvas.Rect{})
	ws.active = ws.root
	return ws
}

func (m *Manager) findInactiveWorkspace() *Workspace {
	for _, ws := range m.workspaces {
		if !ws.visible {
			return ws
		}
	}
	// Every workspace is visible somewhere; grow the set.
	ws := m.allocWorkspace()
	m.workspaces = append(m.workspaces, ws)
	return ws
}

// ActiveWorkspace returns the visible workspace of the active output.
func (m *Manager) ActiveWorkspace() *Workspace {
	if m.active != nil {
		return m.active.activeWs
	}
	return nil
}

// ActiveFrame returns the focused leaf of the active workspace.
func (m *Manager) ActiveFrame() *Frame {
	if m.active != nil && m.active.activeWs != nil {
		return m.active.activeWs.active
	}
	return nil
}

// ActiveView returns the focused view, zero when there is none.
func (m *Manager) ActiveView() View {
	if fr := m.ActiveFrame(); fr != nil {
		return fr.activeView
	}
	return 0
}

// ActiveTitle reads the focused view's title from the host.
func (m *Manager) ActiveTitle() string {
	v := m.ActiveView()
	if v == 0 {
		return ""
	}
	return m.host.ViewTitle(v)
}

func (m *Manager) outputByID(id uint64) *Output {
	for _, out := range m.outputs {
		if out.id == id {
			return out
		}
	}
	return nil
}

// byViewGlobal finds the leaf listing v across all workspaces.
func (m *Manager) byViewGlobal(v View) (*Workspace, *Frame) {
	for _, ws := range m.workspaces {
		if fr := ws.root.byView(v); fr != nil {
			return ws, fr
		}
	}
	return nil, nil
}

func (m *Manager) tileMode(fr *Frame) config.TileMode {
	return m.cfg.TileLayouts[fr.tile%m.cfg.NumLayouts()]
}

func (m *Manager) viewUpdate() {
	if m.bar != nil {
		m.bar.TriggerViewUpdate()
	}
}

func (m *Manager) scheduleRender() {
	if m.active != nil {
		m.host.ScheduleRender(m.active.id)
	}
}

func (m *Manager) dumpTree() {
	if m.Debug {
		if ws := m.ActiveWorkspace(); ws != nil {
			PrintTree(ws.root)
		}
	}
}

// Terminate asks the host compositor to shut down.
func (m *Manager) Terminate() {
	m.host.Terminate()
}

// CloseActiveView asks the host to close the focused view. The tree is
// updated when the host reports the destruction back.
func (m *Manager) CloseActiveView() {
	if v := m.ActiveView(); v != 0 {
		m.host.ViewClose(v)
	}
}

// --- output lifecycle ---------------------------------------------------

// AddOutput registers a connected display. The first invisible workspace
// (lowest-numbered) becomes visible on it and it becomes the active
// output. Re-announcing a known id is ignored.
func (m *Manager) AddOutput(id uint64, w, h int) {
	if m.outputByID(id) != nil {
		return
	}

	out := &Output{id: id, w: w, h: h - m.cfg.StatusbarHeight}
	out.activeWs = m.findInactiveWorkspace()
	out.activeWs.visible = true
	if m.bar != nil {
		m.bar.OutputAdded(id, w, h)
	}
	m.active = out
	m.outputs = append(m.outputs, out)
	m.assignWorkspace(out.activeWs, out)
	m.updateResolution(out, w, h)
	m.maskTree(out.activeWs.root, 1)
	m.host.ViewFocus(m.ActiveView())

	log.Printf("layout: %dx%d output added, id=%d", w, h, id)
}

// RemoveOutput drops a display. Its workspaces stay alive but lose the
// assignment; the first remaining output is promoted to active.
func (m *Manager) RemoveOutput(id uint64) {
	out := m.outputByID(id)
	if out == nil {
		log.Printf("layout: remove for unknown output %d ignored", id)
		return
	}
	log.Printf("layout: output %d removed", id)

	out.activeWs.visible = false
	for _, ws := range m.workspaces {
		if ws.output == out {
			ws.output = nil
		}
	}

	for i, cur := range m.outputs {
		if cur == out {
			m.outputs = append(m.outputs[:i], m.outputs[i+1:]...)
			break
		}
	}
	if len(m.outputs) == 0 {
		m.active = nil
	} else {
		m.active = m.outputs[0]
	}
	if m.bar != nil {
		m.bar.OutputRemoved(id)
	}
}

// SetResolution handles a mode change on a known output.
func (m *Manager) SetResolution(id uint64, w, h int) {
	out := m.outputByID(id)
	if out == nil {
		log.Printf("layout: resolution for unknown output %d ignored", id)
		return
	}
	m.updateResolution(out, w, h)
}

func (m *Manager) assignWorkspace(ws *Workspace, out *Output) {
	ws.output = out
	g := m.usableGeometry(out)
	ws.root.recalcGeometries(g, m.cfg.FrameGapsSize)
	m.redraw(ws, ws.root, true)
	m.host.ScheduleRender(out.id)
}

func (m *Manager) updateResolution(out *Output, w, h int) {
	out.w = w
	out.h = h - m.cfg.StatusbarHeight
	g := m.usableGeometry(out)

	// Every workspace assigned here needs fresh geometry, visible or not.
	for _, ws := range m.workspaces {
		if ws.output == out {
			ws.root.recalcGeometries(g, m.cfg.FrameGapsSize)
		}
	}

	m.redraw(out.activeWs, out.activeWs.root, true)
	if m.bar != nil {
		m.bar.OutputResized(out.id, w, h)
	}
	m.host.ScheduleRender(out.id)
}

// --- view lifecycle -----------------------------------------------------

// ViewCreated adopts a managed view into the active leaf, right after the
// current active view. Returns false when no output exists to host it.
func (m *Manager) ViewCreated(v View) bool {
	fr := m.ActiveFrame()
	if fr == nil {
		log.Printf("layout: view %d created with no active output, ignored", v)
		return false
	}
	m.childAdd(fr, v)
	return true
}

func (m *Manager) childAdd(fr *Frame, v View) {
	ws := m.ActiveWorkspace()
	i := 0
	if len(fr.views) > 0 {
		i = fr.indexOfView(fr.activeView) + 1
	}
	fr.views = append(fr.views[:i], append([]View{v}, fr.views[i:]...)...)
	fr.activeView = v
	m.host.ViewFocus(v)
	m.redraw(ws, fr, false)
}

// ViewDestroyed removes a view wherever it lives. If it was its leaf's
// active view, the preceding sibling (else the next, else none) becomes
// active. Host focus moves only when the focused view dies; a view dying
// anywhere else leaves the host focus untouched.
func (m *Manager) ViewDestroyed(v View) {
	if v == m.ActiveView() {
		ws := m.ActiveWorkspace()
		fr := m.ActiveFrame()
		i := fr.indexOfView(v)

		var next View
		switch {
		case len(fr.views) == 1:
			next = 0
		case i > 0:
			next = fr.views[i-1]
		default:
			next = fr.views[1]
		}

		fr.views = append(fr.views[:i], fr.views[i+1:]...)
		fr.activeView = next
		m.redraw(ws, fr, false)
		m.host.ViewFocus(next)
		return
	}

	ws, fr := m.byViewGlobal(v)
	if fr == nil {
		log.Printf("layout: destroy for unknown view %d ignored", v)
		return
	}
	i := fr.indexOfView(v)
	if fr.activeView == v {
		switch {
		case len(fr.views) == 1:
			fr.activeView = 0
		case i > 0:
			fr.activeView = fr.views[i-1]
		default:
			fr.activeView = fr.views[1]
		}
	}
	fr.views = append(fr.views[:i], fr.views[i+1:]...)
	m.redraw(ws, fr, false)
}

// ViewPropertiesUpdated reruns the view-update hook so bar widgets can pick
// up title changes.
func (m *Manager) ViewPropertiesUpdated(v View) {
	m.viewUpdate()
}

// RequestGeometry honors geometry wishes of unmanaged views only; tiled
// views are placed by their leaf's policy.
func (m *Manager) RequestGeometry(v View, g canvas.Rect) {
	if _, fr := m.byViewGlobal(v); fr != nil {
		return
	}
	m.host.ViewSetGeometry(v, g)
}

// PointerButton focuses a managed view on press.
func (m *Manager) PointerButton(v View, pressed bool) {
	if pressed && v != 0 {
		m.FocusView(v)
	}
}

// FocusView moves focus to an arbitrary managed view, switching the active
// output and frame along with it.
func (m *Manager) FocusView(v View) {
	if v == 0 || v == m.ActiveView() {
		return
	}
	ws, fr := m.byViewGlobal(v)
	if fr == nil {
		return
	}

	oldFr := m.ActiveFrame()
	if ws.output != nil {
		m.active = ws.output
	}
	ws.active = fr
	fr.activeView = v
	m.host.ViewFocus(v)
	m.redraw(ws, fr, false)
	if oldFr != nil && oldFr != fr {
		m.redraw(m.ActiveWorkspace(), oldFr, false)
	}
}

// --- directional navigation ---------------------------------------------

// FocusDirection moves focus to the neighbor in dir: first inside the
// leaf's tiled view sequence, then across frames.
func (m *Manager) FocusDirection(dir Direction) {
	fr := m.ActiveFrame()
	if fr == nil {
		return
	}
	ws := m.ActiveWorkspace()

	if adj := fr.adjacentView(m.tileMode(fr), dir); adj != 0 {
		fr.activeView = adj
		m.host.ViewFocus(adj)
		m.redraw(ws, fr, false)
		m.scheduleRender()
		return
	}

	adjFr := fr.findAdjacentFrame(dir)
	if adjFr == nil {
		return
	}
	ws.active = adjFr
	adjFr.parent.lastFocused = adjFr
	m.redraw(ws, fr, false)
	m.redraw(ws, adjFr, false)
	m.scheduleRender()
	m.host.ViewFocus(m.ActiveView())
}

// MoveDirection moves the active view in dir: swapping with the adjacent
// view inside the leaf, or carrying it into the adjacent frame.
func (m *Manager) MoveDirection(dir Direction) {
	fr := m.ActiveFrame()
	if fr == nil {
		return
	}
	ws := m.ActiveWorkspace()

	if adj := fr.adjacentView(m.tileMode(fr), dir); adj != 0 {
		a := fr.indexOfView(m.ActiveView())
		b := fr.indexOfView(adj)
		fr.views[a], fr.views[b] = fr.views[b], fr.views[a]
		fr.activeView = fr.views[b]
		m.redraw(ws, fr, false)
		m.host.ViewFocus(fr.activeView)
		return
	}

	adjFr := fr.findAdjacentFrame(dir)
	if adjFr == nil {
		return
	}
	v := m.ActiveView()
	if v == 0 {
		return
	}
	m.ViewDestroyed(v) // detach from the source leaf
	ws.active = adjFr
	m.redraw(ws, fr, false)
	m.childAdd(adjFr, v)
	m.scheduleRender()
}

// CycleView rotates focus through the leaf's view list, wrapping around.
func (m *Manager) CycleView(forward bool) {
	fr := m.ActiveFrame()
	if fr == nil || len(fr.views) == 0 {
		return
	}
	step := -1
	if forward {
		step = 1
	}
	i := fr.indexOfView(fr.activeView)
	n := len(fr.views)
	next := ((i+step)%n + n) % n
	fr.activeView = fr.views[next]
	m.host.ViewFocus(fr.activeView)
	m.redraw(m.ActiveWorkspace(), fr, false)
	m.scheduleRender()
}

// CycleTilingMode advances the leaf to the next policy in the configured
// cycle.
func (m *Manager) CycleTilingMode() {
	fr := m.ActiveFrame()
	if fr == nil {
		return
	}
	fr.tile = (fr.tile + 1) % m.cfg.NumLayouts()
	m.redraw(m.ActiveWorkspace(), fr, false)
	m.scheduleRender()
}

// --- frame operations ---------------------------------------------------

// NewFrame splits the active leaf. DirRight splits the horizontal axis,
// anything else the vertical one. The old leaf's views move into the left
// (or top) child and keep focus; the other child starts empty.
func (m *Manager) NewFrame(dir Direction) {
	fr := m.ActiveFrame()
	if fr == nil || fr.split != SplitNone {
		return
	}
	ws := m.ActiveWorkspace()

	newLeft := &Frame{
		parent:     fr,
		relSize:    0.5,
		tile:       fr.tile,
		views:      fr.views,
		activeView: fr.activeView,
	}
	newRight := newFrame(canvas.Rect{})
	newRight.parent = fr
	newRight.relSize = 0.5

	if dir == DirRight {
		fr.split = SplitHorizontal
	} else {
		fr.split = SplitVertical
	}
	fr.views = nil
	fr.activeView = 0
	fr.left = newLeft
	fr.right = newRight
	fr.lastFocused = newLeft
	fr.border.release(m.cv)

	ws.active = newLeft
	fr.recalcGeometries(fr.geo, m.cfg.FrameGapsSize)
	m.redraw(ws, fr, true)
	m.scheduleRender()
	m.dumpTree()
}

// DeleteFrame removes the active leaf. Its views land in the sibling (or,
// for a subtree sibling, the leaf its focus history selects) and the
// sibling takes the parent's slot. Deleting the root is a no-op.
func (m *Manager) DeleteFrame() {
	fr := m.ActiveFrame()
	if fr == nil || fr.parent == nil {
		return
	}
	ws := m.ActiveWorkspace()
	parent := fr.parent

	brother := parent.left
	dir := DirLeft
	if parent.left == fr {
		brother = parent.right
		dir = DirRight
	}

	target := parent.frameSelection(dir)
	if target == nil {
		// A focus chain can dead-end only on a malformed tree.
		panic("layout: delete found no leaf to adopt views")
	}

	target.views = append(target.views, fr.views...)
	if target.activeView == 0 && len(fr.views) > 0 {
		target.activeView = fr.activeView
	}

	// The sibling takes the parent's place in the grandparent.
	grand := parent.parent
	brother.parent = grand
	brother.relSize = parent.relSize
	if grand == nil {
		ws.root = brother
	} else {
		if grand.left == parent {
			grand.left = brother
		} else {
			grand.right = brother
		}
		if grand.lastFocused == parent {
			grand.lastFocused = brother
		}
	}

	fr.border.release(m.cv)
	parent.border.release(m.cv)

	ws.active = target
	brother.recalcGeometries(parent.geo, m.cfg.FrameGapsSize)
	m.redraw(ws, brother, true)
	m.host.ViewFocus(m.ActiveView())
	m.scheduleRender()
	m.dumpTree()
}

// ResizePercent grows or shrinks the active frame along dir by adjusting
// the nearest matching ancestor's left share, clamped away from collapse.
func (m *Manager) ResizePercent(dir Direction, pct float64) {
	fr := m.ActiveFrame()
	if fr == nil || fr.parent == nil {
		return
	}

	sp := SplitVertical
	if dir == DirLeft || dir == DirRight {
		sp = SplitHorizontal
	}
	anc := fr.findParentBySplit(sp)
	if anc == nil {
		return
	}

	delta := pct
	if dir == DirUp || dir == DirLeft {
		delta = -pct
	}
	size := anc.left.relSize + delta
	if size < 0.01 {
		size = 0.01
	}
	if size > 0.99 {
		size = 0.99
	}
	anc.left.relSize = size
	anc.right.relSize = 1 - size

	anc.recalcGeometries(anc.geo, m.cfg.FrameGapsSize)
	m.redraw(m.ActiveWorkspace(), anc, true)
	m.scheduleRender()
}

// --- workspaces ---------------------------------------------------------

// maskTree applies a visibility mask to every view of the subtree. When
// unmasking, a fullscreen leaf reveals only its active view.
func (m *Manager) maskTree(fr *Frame, mask uint32) {
	if fr == nil {
		return
	}
	if fr.split == SplitNone {
		if mask == 1 && m.tileMode(fr) == config.TileFullscreen {
			if fr.activeView != 0 {
				m.host.ViewSetMask(fr.activeView, mask)
			}
			return
		}
		for _, v := range fr.views {
			m.host.ViewSetMask(v, mask)
		}
		return
	}
	m.maskTree(fr.left, mask)
	m.maskTree(fr.right, mask)
}

// SwitchWorkspace shows workspace num (0-based) on the active output.
// Switching to the current workspace is a no-op.
func (m *Manager) SwitchWorkspace(num int) {
	cur := m.ActiveWorkspace()
	if cur == nil || num < 0 || num >= len(m.workspaces) || cur.number == num {
		return
	}
	log.Printf("layout: switching to workspace %d", num+1)

	m.maskTree(cur.root, 0)
	cur.visible = false
	target := m.workspaces[num]
	m.active.activeWs = target

	if target.output != m.active {
		m.assignWorkspace(target, m.active)
	}
	target.visible = true
	m.viewUpdate()
	m.redraw(target, target.root, true)
	m.maskTree(target.root, 1)
	m.host.ViewFocus(m.ActiveView())
	m.host.ScheduleRender(m.active.id)
}

// NextWorkspace selects the following workspace, saturating at the end.
func (m *Manager) NextWorkspace() {
	cur := m.ActiveWorkspace()
	if cur == nil || cur.number+1 >= len(m.workspaces) {
		return
	}
	m.SwitchWorkspace(cur.number + 1)
}

// PrevWorkspace selects the preceding workspace, saturating at zero.
func (m *Manager) PrevWorkspace() {
	cur := m.ActiveWorkspace()
	if cur == nil || cur.number == 0 {
		return
	}
	m.SwitchWorkspace(cur.number - 1)
}

// MoveToWorkspace carries the active view to workspace num's active leaf,
// appending it there and hiding it until that workspace shows.
func (m *Manager) MoveToWorkspace(num int) {
	cur := m.ActiveWorkspace()
	if cur == nil || num < 0 || num >= len(m.workspaces) || cur.number == num {
		return
	}
	fr := m.ActiveFrame()
	if fr == nil || len(fr.views) == 0 {
		return
	}

	i := fr.indexOfView(m.ActiveView())
	v := fr.views[i]

	target := m.workspaces[num]
	target.active.views = append(target.active.views, v)
	target.active.activeView = v

	var next View
	switch {
	case len(fr.views) == 1:
		next = 0
	case i > 0:
		next = fr.views[i-1]
	default:
		next = fr.views[1]
	}
	fr.activeView = next

	fr.views = append(fr.views[:i], fr.views[i+1:]...)
	m.host.ViewSetMask(v, 0)

	m.redraw(cur, fr, false)
	if target.visible {
		m.redraw(target, target.active, false)
	}
	m.host.ViewFocus(next)
	m.scheduleRender()
}

// AddWorkspace appends a fresh workspace to the set.
func (m *Manager) AddWorkspace() {
	m.workspaces = append(m.workspaces, m.allocWorkspace())
	m.viewUpdate()
	m.scheduleRender()
}

// --- rendering ----------------------------------------------------------

// Indicator is one workspace cell of the status bar.
type Indicator struct {
	Label  string
	Active bool
}

// WorkspaceIndicators describes the indicator row for one output's bar.
func (m *Manager) WorkspaceIndicators(outputID uint64) []Indicator {
	out := m.outputByID(outputID)
	ind := make([]Indicator, 0, len(m.workspaces))
	for _, ws := range m.workspaces {
		ind = append(ind, Indicator{
			Label:  strconv.Itoa(ws.number + 1),
			Active: ws.visible && out != nil && ws.output == out,
		})
	}
	return ind
}

// RenderPre blits the frame border buffers and the bar front buffer for an
// output. Called by the host on each render pass; the simulated host calls
// it after painting its views.
func (m *Manager) RenderPre(outputID uint64) {
	out := m.outputByID(outputID)
	if out == nil || out.activeWs == nil {
		return
	}
	out.activeWs.root.eachLeaf(func(fr *Frame) {
		if fr.border.buf != nil {
			m.cv.BlitToOutput(outputID, fr.geoGaps, fr.border.buf)
		}
	})
	if m.bar != nil {
		m.bar.RenderOutput(outputID)
	}
}

// redraw retiles every leaf of the subtree: placements become host
// geometry and mask calls, borders are repainted, and the view-update hook
// fires so the bar can follow.
func (m *Manager) redraw(ws *Workspace, fr *Frame, realloc bool) {
	if fr == nil {
		return
	}
	if fr.split != SplitNone {
		m.redraw(ws, fr.left, realloc)
		m.redraw(ws, fr.right, realloc)
		return
	}

	m.updateFrameBorder(ws, fr, realloc)

	if len(fr.views) > 0 {
		inner := fr.geoGaps.Inset(m.cfg.FrameBorderSize)
		placements := tilePlacements(m.tileMode(fr), inner, fr.views, fr.activeView)
		for _, p := range placements {
			if !p.Visible {
				m.host.ViewSetMask(p.View, 0)
				continue
			}
			m.setView(ws, fr, p)
		}
	}
	m.viewUpdate()
}

// setView paints the view border into the frame buffer and hands the view
// its final rectangle.
func (m *Manager) setView(ws *Workspace, fr *Frame, p Placement) {
	// Border rectangle relative to the frame buffer, not the output.
	gBorder := canvas.Rect{
		X: p.Rect.X - fr.geoGaps.X,
		Y: p.Rect.Y - fr.geoGaps.Y,
		W: p.Rect.W,
		H: p.Rect.H,
	}

	g := p.Rect.Inset(m.cfg.ViewBorderSize)

	if ws.visible {
		m.host.ViewSetMask(p.View, 1)
	}
	m.paintViewBorder(ws, fr, p.View, gBorder)
	m.host.ViewSetGeometry(p.View, g)
}
