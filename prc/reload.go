// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prc

// ReloadImplicitPages rebuilds the implicit page list from scratch: it
// resolves the glob patterns and search path from the environment (or
// [HostBlob]), walks the search path, loads every matching file (and
// the builtin blob page, if any), and swaps in the new page list
//. Concurrent calls short-circuit
// rather than queue — reload is idempotent and the caller is expected to
// retry if it needs the result of a reload triggered by someone else.
func (m *Manager) ReloadImplicitPages() {
	m.mu.Lock()
	if m.currentlyLoading {
		m.mu.Unlock()
		return
	}
	m.currentlyLoading = true
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.currentlyLoading = false
		m.mu.Unlock()
	}()

	pat := resolvePatterns()
	searchPath := buildSearchPath(pat)
	files := discoverFiles(searchPath, pat)
	pages := m.loadFiles(files, pat)

	m.mu.Lock()
	m.implicit = pages
	m.readPatterns = pat.read
	m.decryptPatterns = pat.decrypt
	m.executePatterns = pat.execute
	m.structuredPatterns = pat.structured
	m.encryptionKey = pat.encryptionKey
	m.searchPath = searchPath
	m.pagesSorted = false
	m.loadedImplicit = true
	m.mu.Unlock()

	m.invalidate()
}

// SearchPath returns the directory list most recently resolved by
// ReloadImplicitPages, most important first.
func (m *Manager) SearchPath() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.searchPath))
	copy(out, m.searchPath)
	return out
}

// LoadedImplicit reports whether ReloadImplicitPages has run at least
// once.
func (m *Manager) LoadedImplicit() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadedImplicit
}
