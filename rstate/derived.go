// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstate

import "pandacore.dev/engine/attrib"

// computeDerivedLocked fills in s's lazily-memoized derived fields
//: the cull bin index and draw order
// from its CullBinAttrib (or bin 0 / order 0 if unfilled), whether any
// filled attribute wants a cull callback, and the accumulated geometry
// rendering bits contributed by RenderModeAttrib, TexGenAttrib, and
// TexMatrixAttrib. Callers must hold s.derivedMu — this only reads s's
// own immutable attribute array, so it does not need [globalLock].
func (s *State) computeDerivedLocked() {
	if s.derivedValid {
		return
	}

	if e, ok := s.GetAttrib(attrib.CullBinSlot); ok {
		if bin, ok := e.Handle.(attrib.CullBinAttrib); ok {
			s.binIndex = bin.BinIndex()
			s.drawOrder = bin.DrawOrder
		}
	}

	var rendering uint32
	hasCullCallback := false
	for slot := attrib.Slot(1); int(slot) < attrib.MaxSlots; slot++ {
		e, ok := s.GetAttrib(slot)
		if !ok {
			continue
		}
		if e.Handle.HasCullCallback() {
			hasCullCallback = true
		}
		if r, ok := e.Handle.(attrib.GeomRenderer); ok {
			rendering = r.GeomRenderingBits(rendering)
		}
	}
	s.hasCullCallback = hasCullCallback
	s.geomRendering = rendering
	s.derivedValid = true
}

// GetBinIndex returns the dense cull bin index this state sorts into
//, defaulting to the "default" bin
// (index 0) if no CullBinAttrib is filled.
func (s *State) GetBinIndex() int {
	s.derivedMu.Lock()
	defer s.derivedMu.Unlock()
	s.computeDerivedLocked()
	return s.binIndex
}

// GetDrawOrder returns the within-bin draw order this state specifies,
// defaulting to 0.
func (s *State) GetDrawOrder() int {
	s.derivedMu.Lock()
	defer s.derivedMu.Unlock()
	s.computeDerivedLocked()
	return s.drawOrder
}

// HasCullCallback reports whether any filled attribute wants a chance
// to run custom logic during cull traversal.
func (s *State) HasCullCallback() bool {
	s.derivedMu.Lock()
	defer s.derivedMu.Unlock()
	s.computeDerivedLocked()
	return s.hasCullCallback
}

// GetGeomRendering folds base together with every filled attribute's
// contribution to the accumulated geometry-rendering bitmask.
func (s *State) GetGeomRendering(base uint32) uint32 {
	s.derivedMu.Lock()
	defer s.derivedMu.Unlock()
	s.computeDerivedLocked()
	return base | s.geomRendering
}
