// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prc

import (
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Manager holds the two page lists, the resolved search path, the three
// (four, with the structured-page supplement) glob-pattern lists, and
// the sequencing/dirty state behind Panda3D's ConfigPageManager.
type Manager struct {
	mu sync.Mutex

	implicit []*Page
	explicit []*Page

	pagesSorted bool
	nextPageSeq int64

	searchPath []string

	readPatterns       Globs
	decryptPatterns    Globs
	executePatterns    Globs
	structuredPatterns Globs

	encryptionKey string

	currentlyLoading bool
	loadedImplicit   bool

	watcher   *fsnotify.Watcher
	watchStop chan struct{}

	// onInvalidate is invoked after every successful ReloadImplicitPages and
	// every explicit-page mutation, used by cvar to invalidate its
	// per-variable lookup cache.
	onInvalidate []func()
}

// Default is the process-wide config page manager.
var Default = NewManager()

// NewManager returns a manager with the build-time default glob
// patterns and an empty search path.
func NewManager() *Manager {
	return &Manager{
		nextPageSeq:        1,
		readPatterns:       append(Globs{}, defaultReadPatterns...),
		decryptPatterns:    append(Globs{}, defaultDecryptPatterns...),
		executePatterns:    append(Globs{}, defaultExecutePatterns...),
		structuredPatterns: append(Globs{}, defaultStructuredPatterns...),
	}
}

// OnInvalidate registers a callback invoked whenever the page stack
// changes shape (reload, explicit page added/removed). [cvar] uses this
// to drop its per-variable resolved-value cache.
func (m *Manager) OnInvalidate(f func()) {
	m.mu.Lock()
	m.onInvalidate = append(m.onInvalidate, f)
	m.mu.Unlock()
}

func (m *Manager) invalidate() {
	for _, f := range m.onInvalidate {
		f()
	}
}

// MakeExplicitPage creates and returns a new, empty page, stacked above
// every page created before it.
func (m *Manager) MakeExplicitPage(name string) *Page {
	m.mu.Lock()
	seq := m.nextPageSeq
	m.nextPageSeq++
	p := NewPage(name, false, seq)
	m.explicit = append(m.explicit, p)
	m.pagesSorted = false
	m.mu.Unlock()
	m.invalidate()
	return p
}

// DeleteExplicitPage removes page from the explicit list. It reports
// false if page was not found (already deleted, or never explicit).
func (m *Manager) DeleteExplicitPage(page *Page) bool {
	m.mu.Lock()
	found := false
	for i, p := range m.explicit {
		if p == page {
			m.explicit = append(m.explicit[:i], m.explicit[i+1:]...)
			found = true
			break
		}
	}
	m.mu.Unlock()
	if found {
		m.invalidate()
	}
	return found
}

// SortPages lazily re-sorts both page lists by (trust_level desc,
// sequence_number desc) — the is_implicit half of the ordering tuple
// falls out for free since the two lists are always scanned
// explicit-then-implicit in [Manager.OrderedPages].
func (m *Manager) SortPages() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sortPagesLocked()
}

func (m *Manager) sortPagesLocked() {
	if m.pagesSorted {
		return
	}
	less := func(pages []*Page) func(i, j int) bool {
		return func(i, j int) bool {
			if pages[i].Trust != pages[j].Trust {
				return pages[i].Trust > pages[j].Trust
			}
			return pages[i].Seq > pages[j].Seq
		}
	}
	sort.SliceStable(m.explicit, less(m.explicit))
	sort.SliceStable(m.implicit, less(m.implicit))
	m.pagesSorted = true
}

/// OrderedPages returns every page, highest priority first: explicit
// pages before implicit pages, each internally ordered by
// (trust_level desc, sequence_number desc) — together the full
// ordering tuple (is_implicit, trust_level desc, sequence_number desc).
func (m *Manager) OrderedPages() []*Page {
	m.mu.Lock()
	m.sortPagesLocked()
	out := make([]*Page, 0, len(m.explicit)+len(m.implicit))
	out = append(out, m.explicit...)
	out = append(out, m.implicit...)
	m.mu.Unlock()
	return out
}

// NumPages returns the total number of pages currently loaded.
func (m *Manager) NumPages() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.explicit) + len(m.implicit)
}
