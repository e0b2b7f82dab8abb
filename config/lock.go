// Copyright © 2026 Wavy contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/lock.go
// Summary: Reentrant mutex guarding the embedded script state.

package config

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// RecursiveMutex serializes access to the script engine. A widget callback
// may call trigger_user_hook, which re-enters the lock on the same
// goroutine; recursion is permitted only from within a callback on the
// goroutine that holds the lock.
type RecursiveMutex struct {
	mu    sync.Mutex
	owner atomic.Int64
	depth int
}

func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	// The first line reads "goroutine N [...".
	fields := bytes.Fields(buf[:n])
	if len(fields) < 2 {
		return -1
	}
	id, err := strconv.ParseInt(string(fields[1]), 10, 64)
	if err != nil {
		return -1
	}
	return id
}

func (m *RecursiveMutex) Lock() {
	id := goroutineID()
	if m.owner.Load() == id {
		m.depth++
		return
	}
	m.mu.Lock()
	m.owner.Store(id)
	m.depth = 1
}

func (m *RecursiveMutex) Unlock() {
	if m.owner.Load() != goroutineID() {
		panic("config: RecursiveMutex unlocked by non-owner")
	}
	m.depth--
	if m.depth == 0 {
		m.owner.Store(0)
		m.mu.Unlock()
	}
}
