// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstate

// compositionEntry is one slot of a state's composition cache. result
// is nil for a placeholder "paired back-entry" — installed on the
// other operand purely so that operand's own cache map doubles as the
// reverse index needed to invalidate this entry in O(1) if the other
// operand is destroyed or its cache is cleared, without a separate
// reverse-lookup structure.
type compositionEntry struct {
	result *State
}

// cacheComposeLocked records a.composeCache[b] = r, holding a cache
// reference on r, and ensures b has a (possibly empty) paired back-entry
// for a so that invalidating b's cache also reaches this entry.
func cacheComposeLocked(a, b, r *State) {
	if a.composeCache == nil {
		a.composeCache = map[*State]*compositionEntry{}
	}
	a.composeCache[b] = &compositionEntry{result: r}
	cacheRefLocked(r)

	if a == b {
		return
	}
	if b.composeCache == nil {
		b.composeCache = map[*State]*compositionEntry{}
	}
	if _, exists := b.composeCache[a]; !exists {
		b.composeCache[a] = &compositionEntry{}
	}
}

func cacheInvertComposeLocked(a, b, r *State) {
	if a.invertCache == nil {
		a.invertCache = map[*State]*compositionEntry{}
	}
	a.invertCache[b] = &compositionEntry{result: r}
	cacheRefLocked(r)

	if a == b {
		return
	}
	if b.invertCache == nil {
		b.invertCache = map[*State]*compositionEntry{}
	}
	if _, exists := b.invertCache[a]; !exists {
		b.invertCache[a] = &compositionEntry{}
	}
}

// RemoveCachePointers clears every composition-cache entry that
// references s, in either direction, releasing the cache references
// those entries held.
func RemoveCachePointers(s *State) {
	globalLock.Lock()
	defer globalLock.Unlock()
	removeCachePointersLocked(s)
}

func removeCachePointersLocked(s *State) {
	// Releasing a cache reference below can drop some other state's
	// total_refcount to zero and recursively destroy it — possibly s
	// itself, if s's only surviving reference was a cache reference from
	// a state that is itself only cache-referenced through s (a direct
	// compose/invert cycle of the kind [DetectAndBreakCycles] exists to
	// break). Taking our own local snapshot and clearing s's maps before
	// releasing anything means a reentrant call to removeCachePointersLocked
	// on s sees empty maps and returns immediately instead of
	// double-releasing the same entries.
	composeCache, invertCache := s.composeCache, s.invertCache
	s.composeCache, s.invertCache = nil, nil

	for other := range composeCache {
		if other != s {
			if entry, ok := other.composeCache[s]; ok {
				delete(other.composeCache, s)
				releaseEntryLocked(entry)
			}
		}
	}
	for entry := range allEntries(composeCache) {
		releaseEntryLocked(entry)
	}

	for other := range invertCache {
		if other != s {
			if entry, ok := other.invertCache[s]; ok {
				delete(other.invertCache, s)
				releaseEntryLocked(entry)
			}
		}
	}
	for entry := range allEntries(invertCache) {
		releaseEntryLocked(entry)
	}
}

func allEntries(m map[*State]*compositionEntry) map[*compositionEntry]struct{} {
	out := make(map[*compositionEntry]struct{}, len(m))
	for _, e := range m {
		out[e] = struct{}{}
	}
	return out
}

func releaseEntryLocked(entry *compositionEntry) {
	if entry.result != nil {
		cacheUnrefLocked(entry.result)
	}
}

// ClearCache drops every composition-cache entry in the entire table,
// releasing every cache reference it held. Equivalent to calling
// [RemoveCachePointers] on every interned state, but walks the table
// once instead of per-state.
func ClearCache() int {
	globalLock.Lock()
	defer globalLock.Unlock()
	n := 0
	for _, s := range allStates {
		n += len(s.composeCache) + len(s.invertCache)
		removeCachePointersLocked(s)
	}
	return n
}

// destroyLocked tears down s: it is no longer reachable by any
// reference, cache or otherwise. Removing s's own cache pointers can
// drop the last reference to other states (their cache-only reference
// from s just vanished), cascading into further destroyLocked calls —
// all still under the single globalLock held by the original entry
// point, per the lock-once-at-boundary discipline in lock.go.
func destroyLocked(s *State) {
	if s.destructing {
		return
	}
	s.destructing = true
	removeCachePointersLocked(s)
	removeFromTableLocked(s)
}
