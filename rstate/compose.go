// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstate

import "pandacore.dev/engine/attrib"

// Compose returns the state that results from rendering with other
// immediately after s in the scene graph — s's attributes as modified
// by whatever other overrides. The result
// is cached in s's composition cache keyed by other, so repeated
// Compose(other) calls on the same pair after the first are O(1).
func (s *State) Compose(other *State) *State {
	globalLock.Lock()
	defer globalLock.Unlock()
	return composeLocked(s, other)
}

// InvertCompose returns the relative state r such that
// s.Compose(r) is structurally equal to other — the attribute delta
// that would need to be applied on top of s to arrive at other.
// s.InvertCompose(s) is always the canonical empty state.
func (s *State) InvertCompose(other *State) *State {
	globalLock.Lock()
	defer globalLock.Unlock()
	return invertComposeLocked(s, other)
}

func composeLocked(a, b *State) *State {
	if stateCache.Value() {
		if entry, ok := a.composeCache[b]; ok && entry.result != nil {
			cacheCounters.composeHits++
			return refLocked(entry.result)
		}
	}
	cacheCounters.composeMisses++
	r := doComposeLocked(a, b)
	if stateCache.Value() {
		cacheComposeLocked(a, b, r)
	}
	return refLocked(r)
}

func invertComposeLocked(a, b *State) *State {
	if a == b {
		// The general per-slot algorithm doesn't reduce to empty here:
		// ColorAttrib.InvertCompose(self), for one, returns a non-identity
		// value. Composing a state against itself always has no relative
		// delta, so short-circuit before touching the cache.
		return refLocked(emptyStateLocked())
	}
	if stateCache.Value() {
		if entry, ok := a.invertCache[b]; ok && entry.result != nil {
			cacheCounters.invertHits++
			return refLocked(entry.result)
		}
	}
	cacheCounters.invertMisses++
	r := doInvertComposeLocked(a, b)
	if stateCache.Value() {
		cacheInvertComposeLocked(a, b, r)
	}
	return refLocked(r)
}

// doComposeLocked implements the per-slot merge rule: a slot present
// on only one side passes through unchanged. Of a slot present on both
// sides, a strictly higher override on a's side always wins outright as
// a. Otherwise — b's override is higher, or the two are equal — the
// slot normally composes via the attribute's own Compose, at b's
// override; but if b's override is strictly higher and a's attribute
// opts into [attrib.Attrib.LowerAttribCanOverride], b wins outright
// instead of being composed onto.
func doComposeLocked(a, b *State) *State {
	next := &State{}
	for slot := attrib.Slot(1); int(slot) < attrib.MaxSlots; slot++ {
		af, aok := a.GetAttrib(slot)
		bf, bok := b.GetAttrib(slot)
		entry, ok := mergeSlot(af, aok, bf, bok)
		if ok {
			next.filledSlots = withSlot(next.filledSlots, slot)
			next.attribs[slot] = entry
		}
	}
	return returnNewLocked(next)
}

func mergeSlot(af attrib.Entry, aok bool, bf attrib.Entry, bok bool) (attrib.Entry, bool) {
	switch {
	case aok && !bok:
		return af, true
	case !aok && bok:
		return bf, true
	case !aok && !bok:
		return attrib.Entry{}, false
	case af.Override > bf.Override:
		return af, true
	case bf.Override > af.Override && af.Handle.LowerAttribCanOverride():
		return bf, true
	default: // equal override, or bf.Override > af.Override with no opt-in
		return attrib.Entry{Handle: af.Handle.Compose(bf.Handle), Override: bf.Override}, true
	}
}

// doInvertComposeLocked computes the inverse composition: a slot
// present on both sides inverts via the attribute's own
// InvertCompose, at other's priority; a slot present only on other
// passes through unchanged (s made no constraint on it); a slot present
// only on s is inverted against that slot's registered identity
// default, effectively cancelling s's contribution.
func doInvertComposeLocked(s, other *State) *State {
	next := &State{}
	for slot := attrib.Slot(1); int(slot) < attrib.MaxSlots; slot++ {
		af, aok := s.GetAttrib(slot)
		bf, bok := other.GetAttrib(slot)
		switch {
		case aok && bok:
			next.filledSlots = withSlot(next.filledSlots, slot)
			next.attribs[slot] = attrib.Entry{Handle: af.Handle.InvertCompose(bf.Handle), Override: bf.Override}
		case !aok && bok:
			next.filledSlots = withSlot(next.filledSlots, slot)
			next.attribs[slot] = bf
		case aok && !bok:
			identity := attrib.Registry.SlotDefault(slot)
			if identity == nil {
				continue
			}
			next.filledSlots = withSlot(next.filledSlots, slot)
			next.attribs[slot] = attrib.Entry{Handle: af.Handle.InvertCompose(identity), Override: 0}
		}
	}
	return returnNewLocked(next)
}
