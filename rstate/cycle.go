// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstate

// cycleEpochCounter is a process-wide monotonic counter: each
// detection pass over one candidate state gets its own epoch, so the
// per-state cycleEpoch field (state.go) can tell "visited during this
// pass" apart from "visited during some earlier pass" without having to
// clear every state's visited flag between passes.
var cycleEpochCounter uint64

// DetectAndBreakCycles scans every interned state that currently has
// only cache references and, for each one found to be part of a
// composition-cache cycle, breaks the cycle by calling
// [RemoveCachePointers] on it. It returns the number of cycles broken.
//
// A composition cycle — A's cache points to B, B's cache points back to
// A — keeps both states permanently alive by pure cache references even
// though nothing outside the cache holds either of them, so ordinary
// refcount-reaches-zero collection never fires for either. This is the
// condition [GarbageCollect] also checks per-candidate when
// auto-break-cycles is enabled; DetectAndBreakCycles is the same check
// run eagerly over the whole table rather than piggybacked onto a
// rolling GC scan.
func DetectAndBreakCycles() int {
	globalLock.Lock()
	defer globalLock.Unlock()
	broken := 0
	for _, s := range allStates {
		if s.totalRefcount == 0 || s.totalRefcount != s.cacheRefcount {
			continue
		}
		if detectAndBreakCycleLocked(s) {
			broken++
		}
	}
	return broken
}

// detectAndBreakCycleLocked runs the forward cycle search from s, then
// (only if that finds nothing) the reverse search, breaking s's cache
// pointers and reporting true the first time either finds a cycle. This
// is the single check shared by [DetectAndBreakCycles], the rolling
// [garbageCollectLocked] sweep, and the refcount-decrement checkpoint in
// unrefLocked.
func detectAndBreakCycleLocked(s *State) bool {
	cycleEpochCounter++
	if detectCycleLocked(s, s, 1, cycleEpochCounter) {
		removeCachePointersLocked(s)
		return true
	}
	cycleEpochCounter++
	if detectReverseCycleLocked(s, s, 1, cycleEpochCounter) {
		removeCachePointersLocked(s)
		return true
	}
	return false
}

// detectCycleLocked runs a depth-first search from start (called at
// depth 1), following every forward composeCache and invertCache edge
// out of current into that edge's cached result (not the state it
// happens to be keyed by), stamping every state it visits with epoch.
// It reports a cycle only once the search gets back to a
// previously-visited state that is start itself at a path length
// greater than 2 — length-1 and length-2 returns to start are the
// harmless self-entries and immediate pairings every composed state
// accumulates, not genuine cycles.
func detectCycleLocked(start, current *State, depth int, epoch uint64) bool {
	if current.cycleEpoch == epoch {
		return current == start && depth > 2
	}
	current.cycleEpoch = epoch
	current.cycleDepth = depth

	for _, entry := range current.composeCache {
		if entry.result == nil {
			continue
		}
		if detectCycleLocked(start, entry.result, depth+1, epoch) {
			return true
		}
	}
	for _, entry := range current.invertCache {
		if entry.result == nil {
			continue
		}
		if detectCycleLocked(start, entry.result, depth+1, epoch) {
			return true
		}
	}
	return false
}

// detectReverseCycleLocked complements detectCycleLocked by walking the
// paired back-entries instead: for every other state current has a
// forward cache relationship with, it follows other's own entry keyed
// by current (not current's entry keyed by other) into that entry's
// result. This catches cycles only reachable through the reverse
// pairing a forward-only search never crosses.
func detectReverseCycleLocked(start, current *State, depth int, epoch uint64) bool {
	if current.cycleEpoch == epoch {
		return current == start && depth > 2
	}
	current.cycleEpoch = epoch
	current.cycleDepth = depth

	for other := range current.composeCache {
		if other == current {
			continue
		}
		entry, ok := other.composeCache[current]
		if !ok || entry.result == nil {
			continue
		}
		if detectReverseCycleLocked(start, entry.result, depth+1, epoch) {
			return true
		}
	}
	for other := range current.invertCache {
		if other == current {
			continue
		}
		entry, ok := other.invertCache[current]
		if !ok || entry.result == nil {
			continue
		}
		if detectReverseCycleLocked(start, entry.result, depth+1, epoch) {
			return true
		}
	}
	return false
}
