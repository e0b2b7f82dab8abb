// Copyright © 2026 Wavy contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: simhost/simhost.go
// Summary: A terminal-backed host compositor for development. The terminal
//          is the single output; views are synthetic colored regions.
// Usage: F2 creates a view, configured keybindings do everything else.
//        Views have no client behind them; closing one destroys it.

package simhost

import (
	"image"
	"log"
	"sort"
	"strconv"
	"sync"

	"github.com/gdamore/tcell/v2"

	"wavy/canvas"
	"wavy/commands"
	"wavy/layout"
)

const outputID uint64 = 1

type viewState struct {
	g     canvas.Rect
	mask  uint32
	title string
}

// Sim implements layout.Host against a tcell screen.
type Sim struct {
	screen     tcell.Screen
	mgr        *layout.Manager
	dispatcher *commands.Dispatcher

	mu      sync.Mutex
	views   map[layout.View]*viewState
	focused layout.View
	nextID  layout.View

	wallpaper *image.RGBA

	redrawCh chan struct{}
	quit     chan struct{}
	quitOnce sync.Once
}

// New initializes the terminal screen.
func New() (*Sim, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()

	return &Sim{
		screen:   screen,
		views:    make(map[layout.View]*viewState),
		nextID:   1,
		redrawCh: make(chan struct{}, 1),
		quit:     make(chan struct{}),
	}, nil
}

// Canvas returns the cell-resolution canvas bound to this screen.
func (s *Sim) Canvas() canvas.Canvas { return &CellCanvas{sim: s} }

// Wire attaches the manager and dispatcher once they exist.
func (s *Sim) Wire(mgr *layout.Manager, d *commands.Dispatcher) {
	s.mgr = mgr
	s.dispatcher = d
}

// SetWallpaper installs a pre-scaled wallpaper image.
func (s *Sim) SetWallpaper(img *image.RGBA) { s.wallpaper = img }

// Resolution reports the output size in simulated pixels.
func (s *Sim) Resolution() (int, int) {
	cols, rows := s.screen.Size()
	return cols * cellW, rows * cellH
}

// --- layout.Host --------------------------------------------------------

func (s *Sim) ViewSetMask(v layout.View, mask uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if vs, ok := s.views[v]; ok {
		vs.mask = mask
	}
}

func (s *Sim) ViewSetGeometry(v layout.View, g canvas.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if vs, ok := s.views[v]; ok {
		vs.g = g
	}
}

func (s *Sim) ViewFocus(v layout.View) {
	s.mu.Lock()
	s.focused = v
	s.mu.Unlock()
}

// ViewClose destroys the synthetic view; a real client would exit here.
func (s *Sim) ViewClose(v layout.View) {
	s.mu.Lock()
	_, ok := s.views[v]
	delete(s.views, v)
	s.mu.Unlock()
	if ok {
		s.mgr.ViewDestroyed(v)
		s.ScheduleRender(outputID)
	}
}

func (s *Sim) ViewTitle(v layout.View) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if vs, ok := s.views[v]; ok {
		return vs.title
	}
	return ""
}

func (s *Sim) ScheduleRender(id uint64) {
	select {
	case s.redrawCh <- struct{}{}:
	default:
	}
}

func (s *Sim) Terminate() {
	s.quitOnce.Do(func() { close(s.quit) })
}

// --- event loop ---------------------------------------------------------

func (s *Sim) createView() {
	v := s.nextID
	s.nextID++
	s.mu.Lock()
	s.views[v] = &viewState{title: "view " + strconv.Itoa(int(v))}
	s.mu.Unlock()
	if !s.mgr.ViewCreated(v) {
		s.mu.Lock()
		delete(s.views, v)
		s.mu.Unlock()
	}
	s.ScheduleRender(outputID)
}

// Run drives the event loop until the core terminates.
func (s *Sim) Run() error {
	w, h := s.Resolution()
	s.mgr.AddOutput(outputID, w, h)

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-s.quit:
				return
			}
		}
	}()

	s.draw()
	for {
		select {
		case ev := <-events:
			s.handleEvent(ev)
			s.draw()
		case <-s.redrawCh:
			s.draw()
		case <-s.quit:
			s.screen.Fini()
			return nil
		}
	}
}

func (s *Sim) handleEvent(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventResize:
		w, h := s.Resolution()
		s.mgr.SetResolution(outputID, w, h)

	case *tcell.EventKey:
		if mods, sym, ok := translateKey(e); ok {
			s.mu.Lock()
			focused := s.focused
			s.mu.Unlock()
			if s.dispatcher != nil && s.dispatcher.Dispatch(focused, mods, sym) {
				return
			}
		}
		// Development affordances outside the config surface.
		switch e.Key() {
		case tcell.KeyF2:
			s.createView()
		case tcell.KeyCtrlC:
			s.Terminate()
		}
	}
}

func translateKey(e *tcell.EventKey) (mods uint32, sym uint32, ok bool) {
	if e.Modifiers()&tcell.ModShift != 0 {
		mods |= commands.ModShift
	}
	if e.Modifiers()&tcell.ModCtrl != 0 {
		mods |= commands.ModCtrl
	}
	if e.Modifiers()&tcell.ModAlt != 0 {
		mods |= commands.ModAlt
	}
	if e.Modifiers()&tcell.ModMeta != 0 {
		mods |= commands.ModLogo
	}

	if e.Key() == tcell.KeyRune {
		return mods, uint32(e.Rune()), true
	}

	var name string
	switch e.Key() {
	case tcell.KeyEnter:
		name = "Return"
	case tcell.KeyEscape:
		name = "Escape"
	case tcell.KeyTab:
		name = "Tab"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		name = "BackSpace"
	case tcell.KeyDelete:
		name = "Delete"
	case tcell.KeyUp:
		name = "Up"
	case tcell.KeyDown:
		name = "Down"
	case tcell.KeyLeft:
		name = "Left"
	case tcell.KeyRight:
		name = "Right"
	case tcell.KeyHome:
		name = "Home"
	case tcell.KeyEnd:
		name = "End"
	case tcell.KeyPgUp:
		name = "Page_Up"
	case tcell.KeyPgDn:
		name = "Page_Down"
	case tcell.KeyF1:
		name = "F1"
	case tcell.KeyF3:
		name = "F3"
	case tcell.KeyF4:
		name = "F4"
	case tcell.KeyF5:
		name = "F5"
	case tcell.KeyF6:
		name = "F6"
	case tcell.KeyF7:
		name = "F7"
	case tcell.KeyF8:
		name = "F8"
	case tcell.KeyF9:
		name = "F9"
	default:
		return 0, 0, false
	}

	keysym, err := commands.KeysymFromName(name)
	if err != nil {
		log.Printf("simhost: %v", err)
		return 0, 0, false
	}
	return mods, keysym, true
}

// viewColors cycles deterministic fills for synthetic views.
var viewColors = []tcell.Color{
	tcell.ColorDarkSlateBlue,
	tcell.ColorDarkOliveGreen,
	tcell.ColorDarkRed,
	tcell.ColorDarkCyan,
	tcell.ColorDarkMagenta,
	tcell.ColorDarkGoldenrod,
}

func (s *Sim) draw() {
	s.screen.Clear()
	s.drawWallpaper()

	s.mu.Lock()
	ids := make([]layout.View, 0, len(s.views))
	for v := range s.views {
		ids = append(ids, v)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	focused := s.focused

	for _, v := range ids {
		vs := s.views[v]
		if vs.mask == 0 || vs.g.Empty() {
			continue
		}
		x0 := vs.g.X / cellW
		y0 := vs.g.Y / cellH
		x1 := (vs.g.X + vs.g.W) / cellW
		y1 := (vs.g.Y + vs.g.H) / cellH
		style := tcell.StyleDefault.Background(viewColors[int(v)%len(viewColors)])
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				s.screen.SetContent(x, y, ' ', nil, style)
			}
		}
		title := vs.title
		if v == focused {
			title = "*" + title
		}
		col := x0
		for _, ch := range title {
			if col >= x1 {
				break
			}
			s.screen.SetContent(col, y0, ch, nil, style.Foreground(tcell.ColorWhite))
			col++
		}
	}
	s.mu.Unlock()

	// Frame borders and the bar front buffer arrive through the canvas,
	// drawn over the views.
	s.mgr.RenderPre(outputID)
	s.screen.Show()
}

func (s *Sim) drawWallpaper() {
	if s.wallpaper == nil {
		return
	}
	cols, rows := s.screen.Size()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			px := x*cellW + cellW/2
			py := y*cellH + cellH/2
			if !image.Pt(px, py).In(s.wallpaper.Bounds()) {
				continue
			}
			r, g, b, _ := s.wallpaper.At(px, py).RGBA()
			color := tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
			s.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault.Background(color))
		}
	}
}
