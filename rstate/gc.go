// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstate

// GarbageCollect scans a configurable fraction of the intern table,
// starting from a rolling cursor left over from the previous call, and
// removes every state it finds with no references outside the cache
// itself. It returns the number of
// states removed.
//
// Most callers never need to call this directly: if
// garbage-collect-states is enabled (the default), a host render loop
// is expected to call it once per frame; rstate only supplies the
// mechanism and the garbage-collect-states-rate cvar controlling how
// much of the table one call examines.
func GarbageCollect() int {
	globalLock.Lock()
	defer globalLock.Unlock()
	return garbageCollectLocked()
}

func garbageCollectLocked() int {
	total := len(allStates)
	if total == 0 {
		return 0
	}
	rate := garbageCollectStatesRate.Value()
	if rate <= 0 {
		return 0
	}
	count := int(float64(total)*rate + 1)
	if count > total {
		count = total
	}

	removed := 0
	for n := 0; n < count; {
		if gcCursor >= len(allStates) {
			gcCursor = 0
			if len(allStates) == 0 {
				break
			}
		}
		s := allStates[gcCursor]
		if s.totalRefcount == s.cacheRefcount {
			if autoBreakCycles.Value() {
				detectAndBreakCycleLocked(s)
			}
			if s.totalRefcount == 0 {
				destroyLocked(s)
				removed++
				cacheCounters.gcRemovedTotal++
				n++
				// destroyLocked's swap-remove left whatever was at
				// allStates[last] now sitting at gcCursor: re-examine it
				// rather than skipping past it.
				continue
			}
			if unrefIfOneCandidateLocked(s) {
				removed++
				cacheCounters.gcRemovedTotal++
				n++
				continue
			}
		}
		gcCursor++
		n++
	}
	return removed
}

// unrefIfOneCandidateLocked is [UnrefIfOne]'s body, reused by the GC
// loop which already holds globalLock and must not try to re-acquire
// it.
func unrefIfOneCandidateLocked(s *State) bool {
	if s.totalRefcount != 1 {
		return false
	}
	s.totalRefcount = 0
	destroyLocked(s)
	return true
}
