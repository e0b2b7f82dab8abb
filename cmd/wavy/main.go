// Copyright © 2026 Wavy contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/wavy/main.go
// Summary: Entry point: flags, config load, core wiring and the host loop.

package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"wavy/bar"
	"wavy/commands"
	"wavy/config"
	"wavy/layout"
	"wavy/simhost"
	"wavy/wallpaper"
)

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("wavy", flag.ContinueOnError)

	showVersion := fs.Bool("version", false, "Print the version and exit")
	fs.BoolVar(showVersion, "v", *showVersion, "Alias for --version")
	debug := fs.Bool("debug", false, "Enable debug logging and tree dumps")
	fs.BoolVar(debug, "d", *debug, "Alias for --debug")
	noHostLog := fs.Bool("no-wlc-output", false, "Suppress host compositor log output")
	fs.BoolVar(noHostLog, "W", *noHostLog, "Alias for --no-wlc-output")
	configPath := fs.String("config", "", "Config file to use instead of the XDG search")
	fs.StringVar(configPath, "c", *configPath, "Alias for --config")

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if *showVersion {
		fmt.Printf("wavy %s\n", version)
		return nil
	}

	if *noHostLog {
		log.SetOutput(io.Discard)
	}

	path, err := config.FindConfig(*configPath)
	if err != nil {
		return err
	}

	var cfg *config.Config
	var engine *config.Engine
	if path == "" {
		log.Printf("no config file found, using defaults")
		cfg, engine, err = config.LoadDefaults()
	} else {
		log.Printf("loading config %s", path)
		cfg, engine, err = config.Load(path)
	}
	if err != nil {
		return err
	}

	sim, err := simhost.New()
	if err != nil {
		return fmt.Errorf("init host: %w", err)
	}
	cv := sim.Canvas()

	mgr := layout.NewManager(cfg, sim, cv)
	mgr.Debug = *debug
	engine.SetTitleSource(mgr.ActiveTitle)

	barDriver, err := bar.NewDriver(cfg, cv, engine, mgr, sim.ScheduleRender)
	if err != nil {
		return err
	}
	mgr.SetBar(barDriver)

	dispatcher, err := commands.NewDispatcher(cfg, mgr, engine)
	if err != nil {
		return err
	}
	sim.Wire(mgr, dispatcher)

	if cfg.Wallpaper != "" {
		img, err := wallpaper.Load(cfg.Wallpaper)
		if err != nil {
			log.Printf("%v", err)
		} else {
			w, h := sim.Resolution()
			sim.SetWallpaper(wallpaper.ScaleTo(img, w, h))
		}
	}

	barDriver.Start()
	defer barDriver.Stop()

	// The host is up; run the autostart programs.
	for _, argv := range cfg.Autostart {
		commands.Spawn(argv)
	}

	return sim.Run()
}
