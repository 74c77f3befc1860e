// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package attrib defines the Attrib interface shared by every render
// attribute kind (color, depth test, cull bin, ...), the dense slot
// registry that assigns each kind a stable index at startup, and a
// small attribute-level interner used when a RenderState is
// canonicalized.
package attrib

// Slot is a dense index, assigned once at registry-initialization time,
// identifying one attribute kind. Slot 0 is reserved and always unused.
type Slot int

// NoSlot is the reserved, always-empty slot.
const NoSlot Slot = 0

// Attrib is implemented by every attribute kind placed into a
// RenderState. Implementations must be immutable and safe for concurrent
// use once constructed: the composition cache and the interner both
// assume an Attrib's value never changes after it escapes its
// constructor.
type Attrib interface {
	// Slot returns this attribute's dense slot index, as assigned by the
	// package-level [Registry] at registration time.
	Slot() Slot

	// CompareTo defines the identity order used to key the RenderState
	// intern set: <0, 0, or >0 exactly like [strings.Compare]. Two
	// attributes that CompareTo as equal must be treated as
	// interchangeable for every purpose, including as map keys in the
	// attribute-level interner.
	CompareTo(other Attrib) int

	// Compose returns the result of applying other on top of self,
	// implementing this attribute kind's specific composition rule.
	Compose(other Attrib) Attrib

	// InvertCompose returns the relative attribute that would need to be
	// composed with self to produce other.
	InvertCompose(other Attrib) Attrib

	// LowerAttribCanOverride reports whether this attribute, when it is
	// the lower-override operand of a compose against a higher-override
	// attribute of the same slot, opts into letting the higher-override
	// side win outright instead of the two composing normally. Most
	// attribute kinds return false.
	LowerAttribCanOverride() bool

	// HasCullCallback reports whether this attribute kind wants a chance
	// to run custom logic during the cull traversal. Folded by
	// [rstate.State.HasCullCallback] via an OR across filled slots.
	HasCullCallback() bool
}

// Entry is an attribute placed into a RenderState slot, paired with its
// composition override priority.
type Entry struct {
	Handle   Attrib
	Override int32
}
