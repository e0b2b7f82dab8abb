// Copyright © 2026 Wavy contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: The Config record, its defaults and typed option setters.
// Usage: Built once at startup by the script loader, then read-only.

package config

import (
	"fmt"
	"math"
)

// Position places the status bar.
type Position int

const (
	PosTop Position = iota
	PosBottom
)

// TileMode selects one of the five built-in leaf tiling policies.
type TileMode int

const (
	TileVertical TileMode = iota
	TileHorizontal
	TileGrid
	TileFullscreen
	TileFibonacci
)

var tileModeNames = map[string]TileMode{
	"vertical":   TileVertical,
	"horizontal": TileHorizontal,
	"grid":       TileGrid,
	"fullscreen": TileFullscreen,
	"fibonacci":  TileFibonacci,
}

func (m TileMode) String() string {
	for name, mode := range tileModeNames {
		if mode == m {
			return name
		}
	}
	return "unknown"
}

// KeySpec is a raw keybinding entry as registered by the config script.
// The commands package interprets it into an action.
type KeySpec struct {
	Mods   []string
	Key    string
	Action string
	Args   []interface{}
	FnRef  int // registry handle when Action == "js"
}

// WidgetSpec is a raw status-bar widget entry. The bar driver interprets it.
type WidgetSpec struct {
	Side  string
	Hook  string
	FnRef int
}

// Config is the static configuration produced by the Config Source. Colors
// are packed 0xRRGGBBAA.
type Config struct {
	FrameGapsSize        int
	FrameBorderSize      int
	FrameBorderEmptySize int

	FrameBorderActiveColor        uint32
	FrameBorderInactiveColor      uint32
	FrameBorderEmptyActiveColor   uint32
	FrameBorderEmptyInactiveColor uint32

	ViewBorderSize          int
	ViewBorderActiveColor   uint32
	ViewBorderInactiveColor uint32

	StatusbarHeight              int
	StatusbarFont                string
	StatusbarGap                 int
	StatusbarPadding             int
	StatusbarPosition            Position
	StatusbarBgColor             uint32
	StatusbarActiveWsColor       uint32
	StatusbarInactiveWsColor     uint32
	StatusbarActiveWsFontColor   uint32
	StatusbarInactiveWsFontColor uint32
	StatusbarSeparatorEnabled    bool
	StatusbarSeparatorColor      uint32
	StatusbarSeparatorWidth      int

	TileLayouts []TileMode

	Autostart [][]string
	Wallpaper string

	Keys    []KeySpec
	Widgets []WidgetSpec

	// Input holds libinput passthrough options per device name; applying
	// them is host business.
	Input map[string]map[string]interface{}
}

// Default returns the built-in configuration, the state a config script
// starts from.
func Default() *Config {
	return &Config{
		FrameGapsSize:        5,
		FrameBorderSize:      0,
		FrameBorderEmptySize: 3,

		FrameBorderActiveColor:        0x475b74ff,
		FrameBorderInactiveColor:      0x475b74ff,
		FrameBorderEmptyActiveColor:   0x0c1cffff,
		FrameBorderEmptyInactiveColor: 0x6b6c7fff,

		ViewBorderSize:          2,
		ViewBorderActiveColor:   0x4897cfff,
		ViewBorderInactiveColor: 0x475b74ff,

		StatusbarHeight:              17,
		StatusbarFont:                "monospace 10",
		StatusbarGap:                 4,
		StatusbarPadding:             10,
		StatusbarPosition:            PosTop,
		StatusbarBgColor:             0x282828ff,
		StatusbarActiveWsColor:       0x70407fff,
		StatusbarInactiveWsColor:     0x404055ff,
		StatusbarActiveWsFontColor:   0xffffffff,
		StatusbarInactiveWsFontColor: 0xccccccff,
		StatusbarSeparatorEnabled:    false,
		StatusbarSeparatorColor:      0x2d95efff,
		StatusbarSeparatorWidth:      1,

		TileLayouts: []TileMode{
			TileVertical, TileHorizontal, TileGrid, TileFullscreen, TileFibonacci,
		},

		Input: make(map[string]map[string]interface{}),
	}
}

// NumLayouts returns the length of the configured tiling cycle.
func (c *Config) NumLayouts() int {
	return len(c.TileLayouts)
}

// InputPolicy returns the passthrough options for a device, or nil.
func (c *Config) InputPolicy(device string) map[string]interface{} {
	return c.Input[device]
}

func asUint(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int64:
		if n < 0 {
			return 0, false
		}
		return int(n), true
	case float64:
		if n < 0 || n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	}
	return 0, false
}

func asColor(v interface{}) (uint32, bool) {
	switch n := v.(type) {
	case int64:
		if n < 0 || n > math.MaxUint32 {
			return 0, false
		}
		return uint32(n), true
	case float64:
		if n < 0 || n > math.MaxUint32 || n != math.Trunc(n) {
			return 0, false
		}
		return uint32(n), true
	}
	return 0, false
}

// Set applies a scalar option by its config key. Unknown keys and ill-typed
// values are configuration errors and abort startup.
func (c *Config) Set(key string, value interface{}) error {
	uintInto := func(dst *int) error {
		n, ok := asUint(value)
		if !ok {
			return fmt.Errorf("option %q wants a non-negative integer", key)
		}
		*dst = n
		return nil
	}
	colorInto := func(dst *uint32) error {
		n, ok := asColor(value)
		if !ok {
			return fmt.Errorf("option %q wants an 0xRRGGBBAA color", key)
		}
		*dst = n
		return nil
	}

	switch key {
	case "frame_gaps_size":
		return uintInto(&c.FrameGapsSize)
	case "frame_border_size":
		return uintInto(&c.FrameBorderSize)
	case "frame_border_empty_size":
		return uintInto(&c.FrameBorderEmptySize)
	case "frame_border_active_color":
		return colorInto(&c.FrameBorderActiveColor)
	case "frame_border_inactive_color":
		return colorInto(&c.FrameBorderInactiveColor)
	case "frame_border_empty_active_color":
		return colorInto(&c.FrameBorderEmptyActiveColor)
	case "frame_border_empty_inactive_color":
		return colorInto(&c.FrameBorderEmptyInactiveColor)
	case "view_border_size":
		return uintInto(&c.ViewBorderSize)
	case "view_border_active_color":
		return colorInto(&c.ViewBorderActiveColor)
	case "view_border_inactive_color":
		return colorInto(&c.ViewBorderInactiveColor)
	case "statusbar_height":
		return uintInto(&c.StatusbarHeight)
	case "statusbar_gap":
		return uintInto(&c.StatusbarGap)
	case "statusbar_padding":
		return uintInto(&c.StatusbarPadding)
	case "statusbar_separator_width":
		return uintInto(&c.StatusbarSeparatorWidth)
	case "statusbar_separator_enabled":
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("option %q wants a boolean", key)
		}
		c.StatusbarSeparatorEnabled = b
		return nil
	case "statusbar_bg_color":
		return colorInto(&c.StatusbarBgColor)
	case "statusbar_active_ws_color":
		return colorInto(&c.StatusbarActiveWsColor)
	case "statusbar_inactive_ws_color":
		return colorInto(&c.StatusbarInactiveWsColor)
	case "statusbar_active_ws_font_color":
		return colorInto(&c.StatusbarActiveWsFontColor)
	case "statusbar_inactive_ws_font_color":
		return colorInto(&c.StatusbarInactiveWsFontColor)
	case "statusbar_separator_color":
		return colorInto(&c.StatusbarSeparatorColor)
	case "statusbar_font":
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("option %q wants a string", key)
		}
		c.StatusbarFont = s
		return nil
	case "statusbar_position":
		s, ok := value.(string)
		if !ok || (s != "top" && s != "bottom") {
			return fmt.Errorf("option %q wants \"top\" or \"bottom\"", key)
		}
		if s == "bottom" {
			c.StatusbarPosition = PosBottom
		} else {
			c.StatusbarPosition = PosTop
		}
		return nil
	case "wallpaper":
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("option %q wants a path string", key)
		}
		c.Wallpaper = s
		return nil
	case "tile_layouts":
		list, ok := value.([]interface{})
		if !ok || len(list) == 0 {
			return fmt.Errorf("option %q wants a non-empty list of layout names", key)
		}
		modes := make([]TileMode, 0, len(list))
		for _, item := range list {
			name, ok := item.(string)
			if !ok {
				return fmt.Errorf("option %q wants layout names as strings", key)
			}
			mode, ok := tileModeNames[name]
			if !ok {
				return fmt.Errorf("unknown tiling layout %q", name)
			}
			modes = append(modes, mode)
		}
		c.TileLayouts = modes
		return nil
	}
	return fmt.Errorf("unknown config option %q", key)
}
