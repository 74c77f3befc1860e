// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstate

import (
	"fmt"
	"hash/fnv"

	"pandacore.dev/engine/attrib"
)

// CompareTo defines the total order used to key the intern table
//: two states compare equal if and
// only if they fill exactly the same slots with pairwise-CompareTo-equal
// attributes at pairwise-equal override priorities.
//
// Panda3D orders this comparison by the attributes' pointer addresses,
// since every RenderAttrib in that codebase is itself an interned,
// ref-counted singleton. This module's [attrib.Attrib] implementations
// are ordinary Go values without a canonical address, so CompareTo
// instead walks filled slots in ascending [attrib.Slot] order (itself a
// stable, deterministic key) and falls through to each attribute's own
// CompareTo and then its override as tiebreakers.
func (s *State) CompareTo(other *State) int {
	if s == other {
		return 0
	}
	if s.filledSlots != other.filledSlots {
		if s.filledSlots < other.filledSlots {
			return -1
		}
		return 1
	}
	for slot := attrib.Slot(1); int(slot) < attrib.MaxSlots; slot++ {
		if !hasSlot(s.filledSlots, slot) {
			continue
		}
		a, b := s.attribs[slot], other.attribs[slot]
		if c := a.Handle.CompareTo(b.Handle); c != 0 {
			return c
		}
		if a.Override != b.Override {
			if a.Override < b.Override {
				return -1
			}
			return 1
		}
	}
	return 0
}

// CompareSort orders states by their filled slots' registered sort
// rank, used to cluster draw calls sharing the same transparency/cull
// bin/depth-test combination. It is
// independent of [State.CompareTo]: every registered slot is compared,
// but override priorities are not, so two states that CompareSort equal
// may still differ in the overrides of their entries.
func (s *State) CompareSort(other *State) int {
	for _, slot := range attrib.Registry.SortedSlots() {
		af, _ := s.GetAttrib(slot)
		bf, _ := other.GetAttrib(slot)
		aPresent := hasSlot(s.filledSlots, slot)
		bPresent := hasSlot(other.filledSlots, slot)
		switch {
		case aPresent && !bPresent:
			return -1
		case !aPresent && bPresent:
			return 1
		case !aPresent && !bPresent:
			continue
		}
		if c := af.Handle.CompareTo(bf.Handle); c != 0 {
			return c
		}
	}
	return 0
}

// CompareMask compares s against other exactly like [State.CompareTo],
// but restricts the comparison to the slots set in mask — used by
// higher-level code that wants to know whether two states agree while
// ignoring some attribute kinds entirely (e.g. comparing cull bin
// assignment while ignoring color).
func (s *State) CompareMask(other *State, mask uint64) int {
	sf, of := s.filledSlots&mask, other.filledSlots&mask
	if sf != of {
		if sf < of {
			return -1
		}
		return 1
	}
	for slot := attrib.Slot(1); int(slot) < attrib.MaxSlots; slot++ {
		if !hasSlot(sf, slot) {
			continue
		}
		a, b := s.attribs[slot], other.attribs[slot]
		if c := a.Handle.CompareTo(b.Handle); c != 0 {
			return c
		}
		if a.Override != b.Override {
			if a.Override < b.Override {
				return -1
			}
			return 1
		}
	}
	return 0
}

// Mask returns the canonical state containing only the slots of s set
// in mask.
func (s *State) Mask(mask uint64) *State {
	next := &State{filledSlots: s.filledSlots & mask}
	for slot := attrib.Slot(1); int(slot) < attrib.MaxSlots; slot++ {
		if hasSlot(next.filledSlots, slot) {
			next.attribs[slot] = s.attribs[slot]
		}
	}
	globalLock.Lock()
	defer globalLock.Unlock()
	return refLocked(returnNewLocked(next))
}

// Hash returns a value-based structural hash of s, computed lazily and
// cached. It is a bucket key for the intern table only: two states
// with equal hashes are not guaranteed equal, and
// [State.CompareTo] is always the authority on a collision.
func (s *State) Hash() uint64 {
	if s.hashValid {
		return s.hash
	}
	h := fnv.New64a()
	fmt.Fprintf(h, "%x", s.filledSlots)
	for slot := attrib.Slot(1); int(slot) < attrib.MaxSlots; slot++ {
		if !hasSlot(s.filledSlots, slot) {
			continue
		}
		e := s.attribs[slot]
		fmt.Fprintf(h, "|%d:%v:%d", slot, e.Handle, e.Override)
	}
	s.hash = h.Sum64()
	s.hashValid = true
	return s.hash
}
