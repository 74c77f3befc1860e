// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstate

// refLocked records one more external reference to s and returns s, so
// call sites can write `return refLocked(x)`.
func refLocked(s *State) *State {
	s.totalRefcount++
	return s
}

// Ref records one more external reference to s.
func Ref(s *State) *State {
	globalLock.Lock()
	defer globalLock.Unlock()
	return refLocked(s)
}

// Unref releases one external reference to s. If it was the last
// reference of any kind, s is torn down immediately.
func Unref(s *State) {
	globalLock.Lock()
	defer globalLock.Unlock()
	unrefLocked(s)
}

// unrefLocked drops one reference from s. If garbage-collect-states is
// disabled, nothing else will ever sweep the table for cycles, so right
// before this would remove the one reference keeping s alive outside
// the cache — s.totalRefcount == s.cacheRefcount+1 — it checks for and
// breaks a composition-cache cycle through s first, exactly as
// [garbageCollectLocked] does per scanned candidate.
func unrefLocked(s *State) {
	if s.totalRefcount <= 0 {
		invariantViolation("rstate: Unref called on state with total_refcount already %d", s.totalRefcount)
		return
	}
	if autoBreakCycles.Value() && uniquifyStates.Value() && !garbageCollectStates.Value() &&
		s.cacheRefcount > 0 && s.totalRefcount == s.cacheRefcount+1 {
		detectAndBreakCycleLocked(s)
		if s.destructing {
			// Breaking the cycle released the last cache reference propping
			// s up and destroyLocked(s) already ran reentrantly from inside
			// that release chain; the reference this call was about to drop
			// no longer exists to decrement.
			return
		}
	}
	s.totalRefcount--
	if s.totalRefcount <= 0 {
		destroyLocked(s)
	}
}

// cacheRefLocked records one more cache reference to s. Every cache
// reference is also a total reference, maintaining the invariant
// cache_refcount <= total_refcount.
func cacheRefLocked(s *State) {
	s.totalRefcount++
	s.cacheRefcount++
}

// cacheUnrefLocked releases one cache reference to s. It decrements
// cacheRefcount before delegating to unrefLocked, so unrefLocked's own
// cycle checkpoint sees the post-decrement counts and fires correctly
// whether the total reference being dropped came from here or from
// [Unref] directly.
func cacheUnrefLocked(s *State) {
	if s.cacheRefcount <= 0 {
		invariantViolation("rstate: cache unref on state with cache_refcount already %d", s.cacheRefcount)
		return
	}
	s.cacheRefcount--
	unrefLocked(s)
}

// UnrefIfOne releases s's single remaining reference, atomically with
// respect to every other caller holding [globalLock], and reports
// whether it did so. It is a no-op, returning false, if s currently has
// any number of references other than exactly one. [GarbageCollect]
// uses this to claim sole ownership of a candidate state immediately
// before tearing it down, closing the check-then-act race a plain
// "if RefCount() == 1 { Unref(s) }" would leave open under a reentrant
// lock.
func UnrefIfOne(s *State) bool {
	globalLock.Lock()
	defer globalLock.Unlock()
	return unrefIfOneCandidateLocked(s)
}

// RefCount returns s's total reference count.
func (s *State) RefCount() int32 {
	globalLock.Lock()
	defer globalLock.Unlock()
	return s.totalRefcount
}

// CacheRefCount returns the portion of s's reference count held by
// other states' composition caches.
func (s *State) CacheRefCount() int32 {
	globalLock.Lock()
	defer globalLock.Unlock()
	return s.cacheRefcount
}

// HasOnlyCacheReferences reports whether every remaining reference to s
// is a cache reference — the condition [GarbageCollect] and
// [DetectAndBreakCycles] use to decide whether s can safely be
// collected or has a cycle worth breaking.
func (s *State) HasOnlyCacheReferences() bool {
	globalLock.Lock()
	defer globalLock.Unlock()
	return s.totalRefcount > 0 && s.totalRefcount == s.cacheRefcount
}
