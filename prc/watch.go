// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prc

import (
	"log/slog"

	"github.com/fsnotify/fsnotify"

	"pandacore.dev/engine/base/errors"
)

// Watch starts watching every directory on the current search path for
// create/write/remove/rename events and calls ReloadImplicitPages once
// per event, for any file in a watched directory; bursts of events are
// not coalesced, so each one triggers its own reload. Panda3D's own
// tree has no live-reload path, relying on process restart instead.
// Watch is a no-op if a watch is already running; call StopWatch first
// to change the watched set.
func (m *Manager) Watch() error {
	m.mu.Lock()
	if m.watcher != nil {
		m.mu.Unlock()
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		m.mu.Unlock()
		return errors.Wrap(err)
	}
	for _, dir := range m.searchPath {
		if err := w.Add(dir); err != nil {
			slog.Warn("prc: could not watch directory", "dir", dir, "err", err)
		}
	}
	m.watcher = w
	stop := make(chan struct{})
	m.watchStop = stop
	m.mu.Unlock()

	go m.watchLoop(w, stop)
	return nil
}

// StopWatch stops a watch started by [Manager.Watch]. It is a no-op if
// no watch is running.
func (m *Manager) StopWatch() {
	m.mu.Lock()
	w := m.watcher
	stop := m.watchStop
	m.watcher = nil
	m.watchStop = nil
	m.mu.Unlock()
	if stop != nil {
		close(stop)
	}
	if w != nil {
		w.Close()
	}
}

func (m *Manager) watchLoop(w *fsnotify.Watcher, stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			slog.Warn("prc: watch error", "err", err)
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			m.ReloadImplicitPages()
		}
	}
}
