// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstate

// buckets is the intern set's lookup index: every canonical State
// currently reachable, grouped by [State.Hash] for O(1)-amortized
// structural-equality lookup during [returnUniqueLocked].
var buckets = map[uint64][]*State{}

// allStates is every canonical State currently reachable, in no
// particular order, kept in sync with buckets. [GarbageCollect] rolls
// its cursor over this slice rather than over buckets, since an index
// into a flat slice survives a swap-remove in place and can be
// re-examined on the next pass, whereas a map has no stable notion of
// "next" position.
var allStates []*State

// indexOf maps a canonical state to its current position in allStates,
// kept in sync on every insert/removal so removeFromTableLocked's
// swap-remove is O(1) instead of a linear scan.
var indexOf = map[*State]int{}

// gcCursor is the rolling scan position [garbageCollectLocked] resumes
// from on each call.
var gcCursor int

// returnNewLocked is the common entry point every mutator (Make,
// AddAttrib, SetAttrib, RemoveAttrib, the compose/invert-compose
// algorithms) funnels its freshly built, uninterned state through. With
// interning disabled, a non-empty state is returned as-is, skipping the
// table entirely; the canonical empty state is always routed through
// [returnUniqueLocked] regardless, so [MakeEmpty]'s singleton identity
// holds even with uniquify-states off. Callers must hold globalLock.
func returnNewLocked(s *State) *State {
	if !uniquifyStates.Value() && !s.IsEmpty() {
		// The hash must still be computed so composition caching (which
		// keys on pointer identity, not structural equality) has something
		// deterministic to report in diagnostics.
		s.Hash()
		return s
	}
	return returnUniqueLocked(s)
}

// returnUniqueLocked canonicalizes s, which is uninterned and has no
// outstanding references. If a structurally equal state is already in
// the table, it is returned (s is discarded); otherwise s itself is
// installed as the new canonical instance. Unlike [returnNewLocked],
// this always performs the full table lookup regardless of
// uniquify-states. Callers must hold globalLock.
func returnUniqueLocked(s *State) *State {
	h := s.Hash()
	for _, c := range buckets[h] {
		if c.CompareTo(s) == 0 {
			return c
		}
	}
	return insertLocked(s, h)
}

func insertLocked(s *State, h uint64) *State {
	buckets[h] = append(buckets[h], s)
	indexOf[s] = len(allStates)
	allStates = append(allStates, s)
	return s
}

// removeFromTableLocked deletes s from both the hash bucket and the
// flat scan slice, swapping the last element into s's old slot rather
// than shifting. gcCursor is left
// pointing at the same index, so a scan in progress re-examines
// whatever state the swap just moved there instead of skipping it.
func removeFromTableLocked(s *State) {
	h := s.Hash()
	bucket := buckets[h]
	for i, c := range bucket {
		if c == s {
			last := len(bucket) - 1
			bucket[i] = bucket[last]
			bucket = bucket[:last]
			break
		}
	}
	if len(bucket) == 0 {
		delete(buckets, h)
	} else {
		buckets[h] = bucket
	}

	i, ok := indexOf[s]
	if !ok {
		return
	}
	last := len(allStates) - 1
	allStates[i] = allStates[last]
	indexOf[allStates[i]] = i
	allStates = allStates[:last]
	delete(indexOf, s)
	if gcCursor > len(allStates) {
		gcCursor = 0
	}
}

// NumStates returns the number of interned states currently in the
// table.
func NumStates() int {
	globalLock.Lock()
	defer globalLock.Unlock()
	return len(allStates)
}
