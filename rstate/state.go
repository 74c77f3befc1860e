// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rstate implements the interned, reference-counted render
// state cache: immutable bundles of render
// attributes, deduplicated by structural equality, with memoized
// pairwise composition and periodic garbage collection of unreferenced
// entries.
package rstate

import (
	"sync"

	"pandacore.dev/engine/attrib"
)

// State is an immutable, interned bundle of render attributes, one per
// filled slot. Once returned from
// [Make], [State.AddAttrib], [State.Compose], or any other
// constructor, a State's attribute contents never change; only its
// bookkeeping fields mutate: refcounts and caches under [globalLock],
// derived values under derivedMu.
type State struct {
	filledSlots uint64
	attribs     [attrib.MaxSlots]attrib.Entry

	hashValid bool
	hash      uint64

	totalRefcount int32
	cacheRefcount int32

	composeCache map[*State]*compositionEntry
	invertCache  map[*State]*compositionEntry

	// derivedMu guards the four fields below independently of
	// globalLock: computing them only reads a state's own immutable
	// attribs array, never the intern table or any other state's
	// fields, so a narrower lock here avoids contending on the same
	// mutex every composition and GC pass takes.
	derivedMu       sync.Mutex
	derivedValid    bool
	binIndex        int
	drawOrder       int
	hasCullCallback bool
	geomRendering   uint32

	// destructing guards against a composition cache entry being
	// re-entered while this state is in the middle of being torn down.
	destructing bool

	// cycleEpoch/cycleDepth record the most recent cycle-detection pass
	// that visited this state; see cycle.go.
	cycleEpoch uint64
	cycleDepth int
}

func hasSlot(filled uint64, slot attrib.Slot) bool {
	return filled&(uint64(1)<<uint(slot)) != 0
}

func withSlot(filled uint64, slot attrib.Slot) uint64 {
	return filled | (uint64(1) << uint(slot))
}

func withoutSlot(filled uint64, slot attrib.Slot) uint64 {
	return filled &^ (uint64(1) << uint(slot))
}

// emptyState is the canonical zero-attribute state, lazily created the
// first time it is needed and recreated if the previous one was destroyed.
var emptyState *State

// MakeEmpty returns the canonical state with no attributes filled.
func MakeEmpty() *State {
	globalLock.Lock()
	defer globalLock.Unlock()
	return refLocked(emptyStateLocked())
}

// emptyStateLocked returns the canonical zero-attribute state, creating
// it on first use. Callers must hold globalLock.
func emptyStateLocked() *State {
	if emptyState == nil || emptyState.destructing {
		emptyState = returnUniqueLocked(&State{})
	}
	return emptyState
}

// Make returns the canonical state holding exactly the given entries,
// each placed at its attribute's registered slot. A later entry for a
// slot already seen earlier in entries overwrites the earlier one,
// matching RenderState::make's variadic-argument behavior.
func Make(entries ...attrib.Entry) *State {
	s := &State{}
	for _, e := range entries {
		s.setSlotUninterned(e)
	}
	globalLock.Lock()
	defer globalLock.Unlock()
	return refLocked(returnNewLocked(s))
}

func (s *State) setSlotUninterned(e attrib.Entry) {
	slot := e.Handle.Slot()
	if !uniquifyAttribs.Value() {
		e.Handle = attrib.AttribInterner.Intern(e.Handle)
	}
	s.filledSlots = withSlot(s.filledSlots, slot)
	s.attribs[slot] = e
	s.hashValid = false
}

// clone returns a fresh, uninterned copy of s's filled slots — the
// starting point for every mutator below.
func (s *State) clone() *State {
	next := &State{filledSlots: s.filledSlots, attribs: s.attribs}
	return next
}

// AddAttrib returns the canonical state equal to s but with attribute a
// placed at its slot with the given override priority, replacing
// whatever previously occupied that slot — unless that slot is already
// filled with a strictly higher override, in which case s is returned
// unchanged and a is discarded.
func (s *State) AddAttrib(a attrib.Attrib, override int32) *State {
	slot := a.Slot()
	globalLock.Lock()
	if hasSlot(s.filledSlots, slot) && s.attribs[slot].Override > override {
		defer globalLock.Unlock()
		return refLocked(s)
	}
	globalLock.Unlock()

	next := s.clone()
	next.setSlotUninterned(attrib.Entry{Handle: a, Override: override})
	globalLock.Lock()
	defer globalLock.Unlock()
	return refLocked(returnNewLocked(next))
}

// SetAttrib returns the canonical state equal to s but with attribute a
// placed at its slot with the given override priority, replacing
// whatever previously occupied that slot unconditionally — unlike
// AddAttrib, an existing higher override at that slot does not stop the
// replacement.
func (s *State) SetAttrib(a attrib.Attrib, override int32) *State {
	next := s.clone()
	next.setSlotUninterned(attrib.Entry{Handle: a, Override: override})
	globalLock.Lock()
	defer globalLock.Unlock()
	return refLocked(returnNewLocked(next))
}

// RemoveAttrib returns the canonical state equal to s but with slot
// cleared entirely.
func (s *State) RemoveAttrib(slot attrib.Slot) *State {
	next := s.clone()
	next.filledSlots = withoutSlot(next.filledSlots, slot)
	next.attribs[slot] = attrib.Entry{}
	globalLock.Lock()
	defer globalLock.Unlock()
	return refLocked(returnNewLocked(next))
}

// AdjustAllPriorities returns the canonical state equal to s but with
// delta added to every filled slot's override priority, clamped to
// never go below zero.
func (s *State) AdjustAllPriorities(delta int32) *State {
	next := s.clone()
	for slot := attrib.Slot(1); int(slot) < attrib.MaxSlots; slot++ {
		if !hasSlot(next.filledSlots, slot) {
			continue
		}
		e := next.attribs[slot]
		e.Override = max(e.Override+delta, 0)
		next.attribs[slot] = e
	}
	globalLock.Lock()
	defer globalLock.Unlock()
	return refLocked(returnNewLocked(next))
}

// GetAttrib returns the entry filling slot, and whether the slot is
// filled at all.
func (s *State) GetAttrib(slot attrib.Slot) (attrib.Entry, bool) {
	if !hasSlot(s.filledSlots, slot) {
		return attrib.Entry{}, false
	}
	return s.attribs[slot], true
}

// HasAttrib reports whether slot is filled.
func (s *State) HasAttrib(slot attrib.Slot) bool {
	return hasSlot(s.filledSlots, slot)
}

// IsEmpty reports whether s has no filled slots.
func (s *State) IsEmpty() bool {
	return s.filledSlots == 0
}

// NumAttribs returns the number of filled slots.
func (s *State) NumAttribs() int {
	n := 0
	for f := s.filledSlots; f != 0; f &= f - 1 {
		n++
	}
	return n
}
