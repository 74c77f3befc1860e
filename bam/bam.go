// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bam implements an attribute-sequence round trip standing in
// for Panda3D's full binary object-graph format (the "bam" file
// format): a [PointerRegistry] plays the role of bam's
// object pointer table, and [EncodeState]/[DecodeState] write and read
// the (registry pointer, override) pairs that make up a RenderState.
// Full bam framing — headers, object graphs, the `change_this`
// pointer-fixup hook machinery — is out of scope; only the part of the
// format this module's own data actually needs is implemented.
package bam

import (
	"encoding/binary"
	"io"

	"pandacore.dev/engine/attrib"
	"pandacore.dev/engine/base/errors"
	"pandacore.dev/engine/rstate"
)

// PointerRegistry stands in for bam's object pointer table: Intern
// assigns (or looks up) a stable integer id for an attribute instance,
// and Lookup does the reverse. A real bam reader/writer resolves
// pointers against every object in the file being read or written;
// this module's registry only ever needs to round-trip
// [attrib.Attrib] values, so that is the entire interface.
type PointerRegistry interface {
	Intern(a attrib.Attrib) uint32
	Lookup(id uint32) (attrib.Attrib, bool)
}

// EncodeState writes s's filled attributes to w as a `uint16` count
// followed by, per attribute, a `uint32` registry pointer (from
// reg.Intern) and an `int32` override priority.
func EncodeState(w io.Writer, reg PointerRegistry, s *rstate.State) error {
	var entries []attrib.Entry
	for slot := attrib.Slot(1); int(slot) < attrib.MaxSlots; slot++ {
		if e, ok := s.GetAttrib(slot); ok {
			entries = append(entries, e)
		}
	}
	if len(entries) > 0xFFFF {
		return errors.Errorf("bam: state has %d attributes, more than a uint16 count can hold", len(entries))
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(entries))); err != nil {
		return errors.Wrap(err)
	}
	for _, e := range entries {
		id := reg.Intern(e.Handle)
		if err := binary.Write(w, binary.LittleEndian, id); err != nil {
			return errors.Wrap(err)
		}
		if err := binary.Write(w, binary.LittleEndian, e.Override); err != nil {
			return errors.Wrap(err)
		}
	}
	return nil
}

// DecodeState reads back the sequence [EncodeState] wrote and returns
// the canonical [rstate.State] for it — decoding always runs the result
// through [rstate.Make], so a decoded state substitutes itself with
// the interner's canonical representative even if an equal state
// already exists from some other source.
func DecodeState(r io.Reader, reg PointerRegistry) (*rstate.State, error) {
	var count uint16
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, errors.Wrap(err)
	}
	entries := make([]attrib.Entry, 0, count)
	for i := uint16(0); i < count; i++ {
		var id uint32
		var override int32
		if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
			return nil, errors.Wrap(err)
		}
		if err := binary.Read(r, binary.LittleEndian, &override); err != nil {
			return nil, errors.Wrap(err)
		}
		a, ok := reg.Lookup(id)
		if !ok {
			return nil, errors.Errorf("bam: unresolved pointer %d", id)
		}
		entries = append(entries, attrib.Entry{Handle: a, Override: override})
	}
	return rstate.Make(entries...), nil
}
