// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package attrib

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MaxSlots is the upper bound on the number of attribute kinds the
// registry can hold. Slot indices are dense in [1, MaxSlots).
const MaxSlots = 64

// slotInfo records everything the registry knows about one registered
// attribute kind.
type slotInfo struct {
	name     string
	multi    bool
	sortRank int
	identity Attrib
}

// SlotRegistry assigns a stable, dense [Slot] to each attribute kind at
// initialization time. Registration must happen before
// any RenderState is constructed: initialization order is slot registry
// → config page manager → first state construction.
type SlotRegistry struct {
	mu     sync.Mutex
	slots  []slotInfo // index 0 unused, matches Slot numbering
	sorted []Slot     // cached, rebuilt on each Register
}

// Registry is the process-wide singleton slot registry.
var Registry = newSlotRegistry()

func newSlotRegistry() *SlotRegistry {
	r := &SlotRegistry{}
	r.slots = make([]slotInfo, 1) // reserve slot 0
	return r
}

// Register assigns the next free dense slot to an attribute kind named
// name, with the given sort rank (used to cluster draw calls by
// transparency/cull-bin/depth-test combination) and identity default
// (used as the missing-side operand of InvertCompose). multi records
// whether the original Panda3D registry considered this kind "multi"
// (capable of conceptually stacking); this implementation does not use
// the flag for composition — every slot still holds at most one entry
// — but keeps it for registry diagnostics.
//
// Register panics if called after [MaxSlots] kinds have already been
// registered, or with a nil identity.
func (r *SlotRegistry) Register(name string, multi bool, sortRank int, identity Attrib) Slot {
	if identity == nil {
		panic("attrib: Register requires a non-nil identity default for " + name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.slots) >= MaxSlots {
		panic(fmt.Sprintf("attrib: slot registry exhausted registering %q", name))
	}
	slot := Slot(len(r.slots))
	r.slots = append(r.slots, slotInfo{name: name, multi: multi, sortRank: sortRank, identity: identity})
	r.rebuildSorted()
	return slot
}

// rebuildSorted recomputes the sort-rank ordered slot list. Called with
// mu held.
func (r *SlotRegistry) rebuildSorted() {
	sorted := make([]Slot, 0, len(r.slots)-1)
	for s := 1; s < len(r.slots); s++ {
		sorted = append(sorted, Slot(s))
	}
	sort.Slice(sorted, func(i, j int) bool {
		return r.slots[sorted[i]].sortRank < r.slots[sorted[j]].sortRank
	})
	r.sorted = sorted
}

// NumSlots returns the number of attribute kinds currently registered
// (excluding the reserved slot 0).
func (r *SlotRegistry) NumSlots() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.slots) - 1
}

// MaxSlots returns the capacity of the registry.
func (r *SlotRegistry) MaxSlots() int {
	return MaxSlots
}

// SlotDefault returns the identity attribute registered for slot, or nil
// if slot is out of range or unregistered.
func (r *SlotRegistry) SlotDefault(slot Slot) Attrib {
	r.mu.Lock()
	defer r.mu.Unlock()
	if int(slot) <= 0 || int(slot) >= len(r.slots) {
		return nil
	}
	return r.slots[slot].identity
}

// Name returns the diagnostic name given to slot at registration time.
func (r *SlotRegistry) Name(slot Slot) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if int(slot) <= 0 || int(slot) >= len(r.slots) {
		return "<unknown>"
	}
	return r.slots[slot].name
}

// SortedSlots returns every registered slot ordered by ascending sort
// rank, the order [rstate.State.CompareSort] walks.
func (r *SlotRegistry) SortedSlots() []Slot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Slot, len(r.sorted))
	copy(out, r.sorted)
	return out
}

// Multi reports whether slot was registered as a "multi" attribute
// kind — one the original Panda3D registry considered capable of
// stacking multiple instances per state. Composition in this
// implementation never consults the flag; it exists for diagnostics
// only.
func (r *SlotRegistry) Multi(slot Slot) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if int(slot) <= 0 || int(slot) >= len(r.slots) {
		return false
	}
	return r.slots[slot].multi
}

// String renders every registered slot's name, sort rank, and multi
// flag, one per line, mirroring RenderAttribRegistry::write in the
// original.
func (r *SlotRegistry) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var b strings.Builder
	for s := 1; s < len(r.slots); s++ {
		info := r.slots[s]
		fmt.Fprintf(&b, "%d: %s (sort_rank=%d multi=%v)\n", s, info.name, info.sortRank, info.multi)
	}
	return b.String()
}
