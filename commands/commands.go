// Copyright © 2026 Wavy contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: commands/commands.go
// Summary: Keybinding actions and the dispatcher that runs them.
// Usage: Built once from the config's raw key specs; Dispatch runs on the
//        host's key callback and reports whether the press was consumed.

package commands

import (
	"fmt"
	"log"
	"os/exec"
	"syscall"

	"wavy/config"
	"wavy/layout"
)

// Kind enumerates the bindable operations.
type Kind int

const (
	ActionSpawn Kind = iota
	ActionScript
	ActionExit
	ActionCloseView
	ActionCycleTilingMode
	ActionCycleView
	ActionSelect
	ActionMove
	ActionNewFrame
	ActionDeleteFrame
	ActionResize
	ActionCycleWorkspace
	ActionSelectWorkspace
	ActionMoveToWorkspace
	ActionAddWorkspace
)

// Action is a tagged variant: Kind selects which payload fields apply.
type Action struct {
	Kind    Kind
	Argv    []string         // ActionSpawn
	Ref     int              // ActionScript
	Dir     layout.Direction // ActionSelect, ActionMove, ActionNewFrame, ActionResize
	Num     int              // ActionSelectWorkspace, ActionMoveToWorkspace (1-based)
	Forward bool             // ActionCycleView, ActionCycleWorkspace
	Frac    float64          // ActionResize
}

type chord struct {
	mods   uint32
	keysym uint32
}

// Dispatcher maps key chords to actions.
type Dispatcher struct {
	mgr      *layout.Manager
	engine   *config.Engine
	bindings map[chord]Action
}

// NewDispatcher interprets the config's raw key specs. Any malformed spec
// is a configuration error and aborts startup.
func NewDispatcher(cfg *config.Config, mgr *layout.Manager, engine *config.Engine) (*Dispatcher, error) {
	d := &Dispatcher{
		mgr:      mgr,
		engine:   engine,
		bindings: make(map[chord]Action),
	}
	for i, spec := range cfg.Keys {
		mods, err := ParseMods(spec.Mods)
		if err != nil {
			return nil, fmt.Errorf("keybinding %d: %w", i, err)
		}
		sym, err := KeysymFromName(spec.Key)
		if err != nil {
			return nil, fmt.Errorf("keybinding %d: %w", i, err)
		}
		action, err := parseAction(spec)
		if err != nil {
			return nil, fmt.Errorf("keybinding %d: %w", i, err)
		}
		d.Bind(mods, sym, action)
	}
	return d, nil
}

// Bind inserts or overwrites the binding for a chord.
func (d *Dispatcher) Bind(mods, keysym uint32, a Action) {
	d.bindings[chord{mods: mods, keysym: keysym}] = a
}

func parseDirection(v interface{}) (layout.Direction, error) {
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("direction argument must be a string")
	}
	switch s {
	case "up":
		return layout.DirUp, nil
	case "down":
		return layout.DirDown, nil
	case "left":
		return layout.DirLeft, nil
	case "right":
		return layout.DirRight, nil
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

func parseNum(v interface{}) (int, error) {
	switch n := v.(type) {
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	}
	return 0, fmt.Errorf("expected a number argument")
}

func parseAction(spec config.KeySpec) (Action, error) {
	argAt := func(i int) (interface{}, error) {
		if i >= len(spec.Args) {
			return nil, fmt.Errorf("action %q is missing argument %d", spec.Action, i+1)
		}
		return spec.Args[i], nil
	}

	switch spec.Action {
	case "spawn":
		arg, err := argAt(0)
		if err != nil {
			return Action{}, err
		}
		list, ok := arg.([]interface{})
		if !ok || len(list) == 0 {
			return Action{}, fmt.Errorf("spawn wants a non-empty argv list")
		}
		argv := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return Action{}, fmt.Errorf("spawn argv entries must be strings")
			}
			argv = append(argv, s)
		}
		return Action{Kind: ActionSpawn, Argv: argv}, nil

	case "js":
		return Action{Kind: ActionScript, Ref: spec.FnRef}, nil

	case "exit":
		return Action{Kind: ActionExit}, nil

	case "close_view":
		return Action{Kind: ActionCloseView}, nil

	case "cycle_tiling_mode":
		return Action{Kind: ActionCycleTilingMode}, nil

	case "cycle_view":
		arg, err := argAt(0)
		if err != nil {
			return Action{}, err
		}
		s, ok := arg.(string)
		if !ok || (s != "forward" && s != "backward") {
			return Action{}, fmt.Errorf("cycle_view wants \"forward\" or \"backward\"")
		}
		return Action{Kind: ActionCycleView, Forward: s == "forward"}, nil

	case "select":
		arg, err := argAt(0)
		if err != nil {
			return Action{}, err
		}
		dir, err := parseDirection(arg)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: ActionSelect, Dir: dir}, nil

	case "move":
		arg, err := argAt(0)
		if err != nil {
			return Action{}, err
		}
		dir, err := parseDirection(arg)
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: ActionMove, Dir: dir}, nil

	case "new_frame":
		arg, err := argAt(0)
		if err != nil {
			return Action{}, err
		}
		s, ok := arg.(string)
		if !ok || (s != "right" && s != "down") {
			return Action{}, fmt.Errorf("new_frame wants \"right\" or \"down\"")
		}
		dir := layout.DirDown
		if s == "right" {
			dir = layout.DirRight
		}
		return Action{Kind: ActionNewFrame, Dir: dir}, nil

	case "delete_frame":
		return Action{Kind: ActionDeleteFrame}, nil

	case "resize":
		arg0, err := argAt(0)
		if err != nil {
			return Action{}, err
		}
		dir, err := parseDirection(arg0)
		if err != nil {
			return Action{}, err
		}
		arg1, err := argAt(1)
		if err != nil {
			return Action{}, err
		}
		var frac float64
		switch n := arg1.(type) {
		case int64:
			frac = float64(n)
		case float64:
			frac = n
		default:
			return Action{}, fmt.Errorf("resize wants a fraction argument")
		}
		return Action{Kind: ActionResize, Dir: dir, Frac: frac}, nil

	case "cycle_workspace":
		arg, err := argAt(0)
		if err != nil {
			return Action{}, err
		}
		s, ok := arg.(string)
		if !ok || (s != "next" && s != "prev") {
			return Action{}, fmt.Errorf("cycle_workspace wants \"next\" or \"prev\"")
		}
		return Action{Kind: ActionCycleWorkspace, Forward: s == "next"}, nil

	case "select_workspace":
		arg, err := argAt(0)
		if err != nil {
			return Action{}, err
		}
		num, err := parseNum(arg)
		if err != nil || num < 1 {
			return Action{}, fmt.Errorf("select_workspace wants a workspace number from 1")
		}
		return Action{Kind: ActionSelectWorkspace, Num: num}, nil

	case "move_to_workspace":
		arg, err := argAt(0)
		if err != nil {
			return Action{}, err
		}
		num, err := parseNum(arg)
		if err != nil || num < 1 {
			return Action{}, fmt.Errorf("move_to_workspace wants a workspace number from 1")
		}
		return Action{Kind: ActionMoveToWorkspace, Num: num}, nil

	case "add_workspace":
		return Action{Kind: ActionAddWorkspace}, nil
	}

	return Action{}, fmt.Errorf("unknown action %q", spec.Action)
}

// Spawn forks a detached child for argv. Failures are logged, never fatal.
func Spawn(argv []string) {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		log.Printf("commands: spawn %v: %v", argv, err)
		return
	}
	go func() { _ = cmd.Wait() }()
}

// Dispatch runs the action bound to the chord, if any, and reports whether
// the key press was consumed.
func (d *Dispatcher) Dispatch(view layout.View, mods, keysym uint32) bool {
	a, ok := d.bindings[chord{mods: mods, keysym: keysym}]
	if !ok {
		return false
	}

	switch a.Kind {
	case ActionSpawn:
		Spawn(a.Argv)
	case ActionScript:
		if err := d.engine.CallFunc(a.Ref); err != nil {
			log.Printf("commands: %v", err)
		}
	case ActionExit:
		log.Printf("commands: wavy is being terminated ...")
		d.mgr.Terminate()
	case ActionCloseView:
		d.mgr.CloseActiveView()
	case ActionCycleTilingMode:
		d.mgr.CycleTilingMode()
	case ActionCycleView:
		d.mgr.CycleView(a.Forward)
	case ActionSelect:
		d.mgr.FocusDirection(a.Dir)
	case ActionMove:
		d.mgr.MoveDirection(a.Dir)
	case ActionNewFrame:
		d.mgr.NewFrame(a.Dir)
	case ActionDeleteFrame:
		d.mgr.DeleteFrame()
	case ActionResize:
		d.mgr.ResizePercent(a.Dir, a.Frac)
	case ActionCycleWorkspace:
		if a.Forward {
			d.mgr.NextWorkspace()
		} else {
			d.mgr.PrevWorkspace()
		}
	case ActionSelectWorkspace:
		d.mgr.SwitchWorkspace(a.Num - 1)
	case ActionMoveToWorkspace:
		d.mgr.MoveToWorkspace(a.Num - 1)
	case ActionAddWorkspace:
		d.mgr.AddWorkspace()
	}
	return true
}
