// Copyright © 2026 Wavy contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/paths.go
// Summary: Config file lookup following the XDG base directory rules.

package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configName = "config.js"

// FindConfig resolves the config file path. An explicit override wins;
// otherwise $XDG_CONFIG_HOME/wavy/config.js is tried, then
// $HOME/.config/wavy/config.js. An empty return means no config exists and
// the defaults apply.
func FindConfig(override string) (string, error) {
	if override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", fmt.Errorf("config file %s: %w", override, err)
		}
		return override, nil
	}

	var candidates []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidates = append(candidates, filepath.Join(xdg, "wavy", configName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "wavy", configName))
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}
