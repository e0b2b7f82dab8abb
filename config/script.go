// Copyright © 2026 Wavy contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/script.go
// Summary: The embedded JavaScript Config Source built on sobek.
// Usage: Load evaluates config.js once; callbacks registered by the script
//        stay callable behind numeric handles for the lifetime of the run.

package config

import (
	"fmt"
	"os"

	"github.com/grafana/sobek"
)

// Engine wraps the script runtime. All entry points take the script lock;
// callbacks may re-enter the engine (trigger_user_hook) on the same
// goroutine.
type Engine struct {
	vm       *sobek.Runtime
	lock     RecursiveMutex
	registry map[int]sobek.Callable
	nextRef  int
	cfg      *Config

	// userHook fires the bar's User hook; installed after the bar driver
	// exists. titleSource reads the active view title for scripts.
	userHook    func()
	titleSource func() string
}

// SetUserHook installs the target of wavy.trigger_user_hook().
func (e *Engine) SetUserHook(fn func()) {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.userHook = fn
}

// SetTitleSource installs the reader behind wavy.active_title().
func (e *Engine) SetTitleSource(fn func() string) {
	e.lock.Lock()
	defer e.lock.Unlock()
	e.titleSource = fn
}

// Do runs f under the script lock.
func (e *Engine) Do(f func()) {
	e.lock.Lock()
	defer e.lock.Unlock()
	f()
}

func (e *Engine) register(fn sobek.Callable) int {
	e.nextRef++
	e.registry[e.nextRef] = fn
	return e.nextRef
}

// CallWidget evaluates a widget callback and decodes its
// [bg, fg, text] triple.
func (e *Engine) CallWidget(ref int) (bg, fg uint32, text string, err error) {
	e.lock.Lock()
	defer e.lock.Unlock()

	fn, ok := e.registry[ref]
	if !ok {
		return 0, 0, "", fmt.Errorf("unknown widget callback handle %d", ref)
	}
	res, err := fn(sobek.Undefined())
	if err != nil {
		return 0, 0, "", fmt.Errorf("widget callback: %w", err)
	}
	triple, ok := res.Export().([]interface{})
	if !ok || len(triple) != 3 {
		return 0, 0, "", fmt.Errorf("widget callback must return [bg, fg, text]")
	}
	bgv, okBg := asColor(triple[0])
	fgv, okFg := asColor(triple[1])
	str, okStr := triple[2].(string)
	if !okBg || !okFg || !okStr {
		return 0, 0, "", fmt.Errorf("widget callback returned a malformed [bg, fg, text] triple")
	}
	return bgv, fgv, str, nil
}

// CallFunc runs a registered plain callback ("js" keybinding actions).
func (e *Engine) CallFunc(ref int) error {
	e.lock.Lock()
	defer e.lock.Unlock()

	fn, ok := e.registry[ref]
	if !ok {
		return fmt.Errorf("unknown callback handle %d", ref)
	}
	if _, err := fn(sobek.Undefined()); err != nil {
		return fmt.Errorf("script callback: %w", err)
	}
	return nil
}

func exportStrings(v interface{}) ([]string, bool) {
	list, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// installAPI builds the wavy global object the config script talks to.
func (e *Engine) installAPI() error {
	vm := e.vm
	wavyObj := vm.NewObject()

	fail := func(format string, args ...interface{}) {
		panic(vm.NewTypeError(format, args...))
	}

	err := wavyObj.Set("set", func(call sobek.FunctionCall) sobek.Value {
		if len(call.Arguments) != 2 {
			fail("wavy.set(key, value) wants two arguments")
		}
		key, ok := call.Arguments[0].Export().(string)
		if !ok {
			fail("wavy.set: key must be a string")
		}
		if err := e.cfg.Set(key, call.Arguments[1].Export()); err != nil {
			fail("wavy.set: %s", err)
		}
		return sobek.Undefined()
	})
	if err != nil {
		return err
	}

	// Keybindings arrive as [action, [mods...], key, args...], the tuple
	// order the original config format used.
	err = wavyObj.Set("keys", func(call sobek.FunctionCall) sobek.Value {
		if len(call.Arguments) != 1 {
			fail("wavy.keys(bindings) wants one argument")
		}
		obj := call.Arguments[0].ToObject(vm)
		lengthVal := obj.Get("length")
		if lengthVal == nil {
			fail("wavy.keys: bindings must be an array")
		}
		n := int(lengthVal.ToInteger())
		for i := 0; i < n; i++ {
			entryVal := obj.Get(fmt.Sprintf("%d", i))
			if entryVal == nil {
				fail("wavy.keys: binding %d must be [action, mods, key, ...]", i)
			}
			entry, ok := entryVal.Export().([]interface{})
			if !ok || len(entry) < 3 {
				fail("wavy.keys: binding %d must be [action, mods, key, ...]", i)
			}
			action, okA := entry[0].(string)
			mods, okM := exportStrings(entry[1])
			key, okK := entry[2].(string)
			if !okA || !okM || !okK {
				fail("wavy.keys: binding %d must be [action, mods, key, ...]", i)
			}
			spec := KeySpec{Mods: mods, Key: key, Action: action, Args: entry[3:]}
			if action == "js" {
				entryObj := entryVal.ToObject(vm)
				fnVal := entryObj.Get("3")
				if fnVal == nil {
					fail("wavy.keys: \"js\" binding %d wants a function argument", i)
				}
				fn, ok := sobek.AssertFunction(fnVal)
				if !ok {
					fail("wavy.keys: \"js\" binding %d wants a function argument", i)
				}
				spec.FnRef = e.register(fn)
				spec.Args = nil
			}
			e.cfg.Keys = append(e.cfg.Keys, spec)
		}
		return sobek.Undefined()
	})
	if err != nil {
		return err
	}

	err = wavyObj.Set("widget", func(call sobek.FunctionCall) sobek.Value {
		if len(call.Arguments) != 3 {
			fail("wavy.widget(side, hook, fn) wants three arguments")
		}
		side, okS := call.Arguments[0].Export().(string)
		hook, okH := call.Arguments[1].Export().(string)
		fn, okF := sobek.AssertFunction(call.Arguments[2])
		if !okS || !okH || !okF {
			fail("wavy.widget: wants (side string, hook string, callback)")
		}
		e.cfg.Widgets = append(e.cfg.Widgets, WidgetSpec{
			Side:  side,
			Hook:  hook,
			FnRef: e.register(fn),
		})
		return sobek.Undefined()
	})
	if err != nil {
		return err
	}

	err = wavyObj.Set("autostart", func(call sobek.FunctionCall) sobek.Value {
		if len(call.Arguments) != 1 {
			fail("wavy.autostart(argv) wants one argument")
		}
		argv, ok := exportStrings(call.Arguments[0].Export())
		if !ok || len(argv) == 0 {
			fail("wavy.autostart: wants a non-empty list of strings")
		}
		e.cfg.Autostart = append(e.cfg.Autostart, argv)
		return sobek.Undefined()
	})
	if err != nil {
		return err
	}

	err = wavyObj.Set("input", func(call sobek.FunctionCall) sobek.Value {
		if len(call.Arguments) != 2 {
			fail("wavy.input(device, options) wants two arguments")
		}
		device, okD := call.Arguments[0].Export().(string)
		opts, okO := call.Arguments[1].Export().(map[string]interface{})
		if !okD || !okO {
			fail("wavy.input: wants (device string, options object)")
		}
		e.cfg.Input[device] = opts
		return sobek.Undefined()
	})
	if err != nil {
		return err
	}

	err = wavyObj.Set("trigger_user_hook", func(call sobek.FunctionCall) sobek.Value {
		if e.userHook != nil {
			e.userHook()
		}
		return sobek.Undefined()
	})
	if err != nil {
		return err
	}

	err = wavyObj.Set("active_title", func(call sobek.FunctionCall) sobek.Value {
		if e.titleSource == nil {
			return vm.ToValue("")
		}
		return vm.ToValue(e.titleSource())
	})
	if err != nil {
		return err
	}

	return vm.Set("wavy", wavyObj)
}

// Load evaluates the config script at path on top of the defaults. A script
// error aborts startup; the caller surfaces it and exits non-zero.
func Load(path string) (*Config, *Engine, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read config: %w", err)
	}

	e := &Engine{
		vm:       sobek.New(),
		registry: make(map[int]sobek.Callable),
		cfg:      Default(),
	}
	if err := e.installAPI(); err != nil {
		return nil, nil, fmt.Errorf("config runtime: %w", err)
	}

	e.lock.Lock()
	defer e.lock.Unlock()
	if _, err := e.vm.RunScript(path, string(src)); err != nil {
		return nil, nil, fmt.Errorf("config script: %w", err)
	}
	return e.cfg, e, nil
}

// LoadDefaults returns a default config with an engine that has no script
// behind it. Used when no config file exists.
func LoadDefaults() (*Config, *Engine, error) {
	e := &Engine{
		vm:       sobek.New(),
		registry: make(map[int]sobek.Callable),
		cfg:      Default(),
	}
	if err := e.installAPI(); err != nil {
		return nil, nil, fmt.Errorf("config runtime: %w", err)
	}
	return e.cfg, e, nil
}
