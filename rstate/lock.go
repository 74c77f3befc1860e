// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstate

import (
	"runtime"
	"strconv"
	"sync"
)

// reentrantMutex is a process-wide lock that the same goroutine can
// acquire more than once without deadlocking itself, needed because
// dropping a RenderState's last non-cache reference can cascade into
// dropping cache references on other states arbitrarily deep inside
// whatever call started it.
//
// Go's sync.Mutex is deliberately not reentrant, and there is no
// goroutine-local storage in the language. This implementation falls
// back to the one escape hatch available: parsing the calling
// goroutine's id out of its own stack trace. That is exactly the kind
// of thing the runtime does not want user code relying on — it is
// slower than a plain mutex and the format of runtime.Stack's output
// is not a committed API. Cascading call sites in this module already
// use "Locked" variants that never call Lock themselves; the reentrant
// lock is a safety net for any path that does re-enter.
type reentrantMutex struct {
	mu    sync.Mutex
	cond  *sync.Cond
	owner int64 // goroutine id currently holding the lock, or -1
	depth int
}

func newReentrantMutex() *reentrantMutex {
	m := &reentrantMutex{owner: -1}
	m.cond = sync.NewCond(&m.mu)
	return m
}

func (m *reentrantMutex) Lock() {
	id := goroutineID()
	m.mu.Lock()
	for m.owner != -1 && m.owner != id {
		m.cond.Wait()
	}
	m.owner = id
	m.depth++
	m.mu.Unlock()
}

func (m *reentrantMutex) Unlock() {
	id := goroutineID()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.owner != id {
		panic("rstate: Unlock called by a goroutine that does not hold the lock")
	}
	m.depth--
	if m.depth == 0 {
		m.owner = -1
		m.cond.Signal()
	}
}

// goroutineID extracts the numeric id from the "goroutine N [state]:"
// header runtime.Stack always writes first.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	line := string(buf[:n])
	const prefix = "goroutine "
	if len(line) <= len(prefix) {
		return -1
	}
	line = line[len(prefix):]
	end := 0
	for end < len(line) && line[end] >= '0' && line[end] <= '9' {
		end++
	}
	id, err := strconv.ParseInt(line[:end], 10, 64)
	if err != nil {
		return -1
	}
	return id
}

// globalLock serializes every structural operation on the state cache:
// the intern table and every state's composition caches and refcounts.
// Every exported function locks it exactly once and then calls the
// "Locked" internal variants, which assume it is already held and never
// lock it themselves; reentrancy exists as a safety net for any call
// path that does not follow that discipline, not as a license to skip
// it — re-locking still serializes against every other goroutine the
// way a single critical section should.
var globalLock = newReentrantMutex()
