// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bam

import (
	"sync"

	"pandacore.dev/engine/attrib"
)

// TableRegistry is a simple in-memory [PointerRegistry]: each distinct
// attribute value (by [attrib.Attrib.CompareTo] within its slot) gets
// the next sequential id the first time it's interned. It is what a
// real bam writer's object table collapses to once headers, object
// graphs, and pointer-fixup hooks are stripped away — good enough to
// round-trip a single file's worth of states, not to merge pointer
// tables across files the way the original format does.
type TableRegistry struct {
	mu     sync.Mutex
	byID   []attrib.Attrib
	bySlot map[attrib.Slot][]uint32
}

// NewTableRegistry returns an empty registry, id 0 reserved as
// "unresolved".
func NewTableRegistry() *TableRegistry {
	return &TableRegistry{byID: []attrib.Attrib{nil}, bySlot: map[attrib.Slot][]uint32{}}
}

// Intern implements [PointerRegistry].
func (t *TableRegistry) Intern(a attrib.Attrib) uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	slot := a.Slot()
	for _, id := range t.bySlot[slot] {
		if t.byID[id].CompareTo(a) == 0 {
			return id
		}
	}
	id := uint32(len(t.byID))
	t.byID = append(t.byID, a)
	t.bySlot[slot] = append(t.bySlot[slot], id)
	return id
}

// Lookup implements [PointerRegistry].
func (t *TableRegistry) Lookup(id uint32) (attrib.Attrib, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id == 0 || int(id) >= len(t.byID) {
		return nil, false
	}
	return t.byID[id], true
}
