// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package attrib

import "image/color"

// ColorSlot is the dense slot assigned to [ColorAttrib].
var ColorSlot = Registry.Register("ColorAttrib", false, 10, ColorAttrib{Color: color.White, Off: true})

// ColorAttrib fixes the flat color applied to geometry, overriding
// per-vertex color. It is the simplest possible attribute kind and is
// used throughout the test suite for its composition is trivial:
// Compose and InvertCompose both just take the rightmost non-Off value.
type ColorAttrib struct {
	Color color.Color
	// Off, when true, means "do not apply a flat color" (the identity
	// value), distinct from any particular opaque color.
	Off bool
}

// NewColorAttrib returns a ColorAttrib applying c.
func NewColorAttrib(c color.Color) ColorAttrib {
	return ColorAttrib{Color: c}
}

// Slot implements [Attrib].
func (a ColorAttrib) Slot() Slot { return ColorSlot }

// CompareTo implements [Attrib].
func (a ColorAttrib) CompareTo(other Attrib) int {
	b := other.(ColorAttrib)
	if a.Off != b.Off {
		if a.Off {
			return -1
		}
		return 1
	}
	ar, ag, ab, aa := colorRGBA(a.Color)
	br, bg, bb, ba := colorRGBA(b.Color)
	switch {
	case ar != br:
		return int(ar) - int(br)
	case ag != bg:
		return int(ag) - int(bg)
	case ab != bb:
		return int(ab) - int(bb)
	default:
		return int(aa) - int(ba)
	}
}

// Compose implements [Attrib]: the later attribute in the pair wins,
// unless it is Off, in which case self's color is retained.
func (a ColorAttrib) Compose(other Attrib) Attrib {
	b := other.(ColorAttrib)
	if b.Off {
		return a
	}
	return b
}

// InvertCompose implements [Attrib]: same rule as Compose, since flat
// color has no meaningful "relative" composition.
func (a ColorAttrib) InvertCompose(other Attrib) Attrib {
	return a.Compose(other)
}

// LowerAttribCanOverride implements [Attrib].
func (a ColorAttrib) LowerAttribCanOverride() bool { return false }

// HasCullCallback implements [Attrib].
func (a ColorAttrib) HasCullCallback() bool { return false }

func colorRGBA(c color.Color) (r, g, b, a uint32) {
	if c == nil {
		return 0, 0, 0, 0
	}
	r32, g32, b32, a32 := c.RGBA()
	return r32, g32, b32, a32
}
