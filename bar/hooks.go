// Copyright © 2026 Wavy contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: bar/hooks.go
// Summary: Widget registry, hook scheduling and the driver lifecycle.
// Usage: Two background tickers fire the periodic hooks; the layout
//        manager fires ViewUpdate after tree mutations; scripts fire User.

package bar

import (
	"fmt"
	"log"
	"sync"
	"time"

	"wavy/canvas"
	"wavy/config"
	"wavy/layout"
)

// Side places a widget relative to the bar edges.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// Hook is the event class a widget subscribes to.
type Hook int

const (
	HookPeriodicFast Hook = iota // ~1s
	HookPeriodicSlow             // ~30s
	HookViewUpdate
	HookUser
	numHooks
)

func parseSide(s string) (Side, error) {
	switch s {
	case "left":
		return SideLeft, nil
	case "right":
		return SideRight, nil
	}
	return 0, fmt.Errorf("unknown widget side %q", s)
}

func parseHook(s string) (Hook, error) {
	switch s {
	case "periodic_fast":
		return HookPeriodicFast, nil
	case "periodic_slow":
		return HookPeriodicSlow, nil
	case "view_update":
		return HookViewUpdate, nil
	case "user":
		return HookUser, nil
	}
	return 0, fmt.Errorf("unknown widget hook %q", s)
}

// widget is a registered status entry. bg/fg/text hold the last rendering
// and are retained when a callback faults.
type widget struct {
	side   Side
	hook   Hook
	ref    int
	bg, fg uint32
	text   string
}

// StateSource supplies the workspace indicator row per output.
type StateSource interface {
	WorkspaceIndicators(outputID uint64) []layout.Indicator
}

// Driver owns all bars and the widget list. Widget state is guarded by the
// script lock (widgets change only while callbacks run); the bars map has
// its own mutex, and each bar its draw lock.
type Driver struct {
	cfg    *config.Config
	cv     canvas.Canvas
	engine *config.Engine
	state  StateSource

	// schedule asks the host to render an output after a repaint.
	schedule func(outputID uint64)

	mu   sync.Mutex
	bars map[uint64]*outputBar

	widgets []*widget

	quit     chan struct{}
	stopOnce sync.Once
}

// NewDriver builds the bar driver and registers the configured widgets.
// A widget spec with an unknown side or hook aborts startup.
func NewDriver(cfg *config.Config, cv canvas.Canvas, engine *config.Engine,
	state StateSource, schedule func(uint64)) (*Driver, error) {

	d := &Driver{
		cfg:      cfg,
		cv:       cv,
		engine:   engine,
		state:    state,
		schedule: schedule,
		bars:     make(map[uint64]*outputBar),
		quit:     make(chan struct{}),
	}

	for _, spec := range cfg.Widgets {
		side, err := parseSide(spec.Side)
		if err != nil {
			return nil, err
		}
		hook, err := parseHook(spec.Hook)
		if err != nil {
			return nil, err
		}
		d.widgets = append(d.widgets, &widget{side: side, hook: hook, ref: spec.FnRef})
	}

	engine.SetUserHook(d.TriggerUser)
	return d, nil
}

// Start launches the periodic hook tickers.
func (d *Driver) Start() {
	go d.tick(time.Second, HookPeriodicFast)
	go d.tick(30*time.Second, HookPeriodicSlow)
}

func (d *Driver) tick(period time.Duration, hook Hook) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			d.TriggerHook(hook)
		case <-d.quit:
			return
		}
	}
}

// Stop cancels the hook tasks. In-flight callbacks finish.
func (d *Driver) Stop() {
	d.stopOnce.Do(func() { close(d.quit) })
}

// TriggerHook re-evaluates every widget subscribed to hook under the
// script lock, then repaints all bars. A faulting callback is skipped for
// the tick and keeps its previous text.
func (d *Driver) TriggerHook(hook Hook) {
	var snapshot []widgetRender
	d.engine.Do(func() {
		for _, w := range d.widgets {
			if w.hook != hook {
				continue
			}
			bg, fg, text, err := d.engine.CallWidget(w.ref)
			if err != nil {
				log.Printf("bar: widget skipped: %v", err)
				continue
			}
			w.bg, w.fg, w.text = bg, fg, text
		}
		snapshot = make([]widgetRender, len(d.widgets))
		for i, w := range d.widgets {
			snapshot[i] = widgetRender{side: w.side, bg: w.bg, fg: w.fg, text: w.text}
		}
	})

	d.mu.Lock()
	bars := make([]*outputBar, 0, len(d.bars))
	for _, b := range d.bars {
		bars = append(bars, b)
	}
	d.mu.Unlock()

	for _, b := range bars {
		d.repaint(b, snapshot)
		if d.schedule != nil {
			d.schedule(b.id)
		}
	}
}

// TriggerViewUpdate satisfies layout.BarDriver.
func (d *Driver) TriggerViewUpdate() { d.TriggerHook(HookViewUpdate) }

// TriggerUser fires the user hook; wired behind wavy.trigger_user_hook().
func (d *Driver) TriggerUser() { d.TriggerHook(HookUser) }

// OutputAdded allocates the bar for a new output and sweeps every hook
// once off the event loop so a slow script cannot stall startup.
func (d *Driver) OutputAdded(id uint64, w, h int) {
	b := &outputBar{id: id, outW: w, outH: h, dirty: true}
	d.mu.Lock()
	d.bars[id] = b
	d.mu.Unlock()

	go func() {
		for hook := Hook(0); hook < numHooks; hook++ {
			d.TriggerHook(hook)
		}
	}()
}

// OutputRemoved drops the bar and its buffers.
func (d *Driver) OutputRemoved(id uint64) {
	d.mu.Lock()
	b, ok := d.bars[id]
	delete(d.bars, id)
	d.mu.Unlock()
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.front != nil {
		d.cv.DestroyBuffer(b.front)
		d.cv.DestroyBuffer(b.back)
		b.front, b.back = nil, nil
	}
}

// OutputResized marks the bar for reallocation and repaints immediately.
func (d *Driver) OutputResized(id uint64, w, h int) {
	d.mu.Lock()
	b, ok := d.bars[id]
	d.mu.Unlock()
	if !ok {
		return
	}
	b.mu.Lock()
	b.outW, b.outH = w, h
	b.dirty = true
	b.mu.Unlock()

	d.TriggerHook(HookViewUpdate)
}

// RenderOutput blits the front buffer under the draw lock.
func (d *Driver) RenderOutput(id uint64) {
	d.mu.Lock()
	b, ok := d.bars[id]
	d.mu.Unlock()
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.front != nil {
		d.cv.BlitToOutput(id, b.g, b.front)
	}
}
