// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package attrib

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorAttribCompose(t *testing.T) {
	red := NewColorAttrib(color.RGBA{R: 255, A: 255})
	off := ColorAttrib{Off: true}

	assert.Equal(t, red, red.Compose(off))
	assert.Equal(t, off, off.Compose(off))

	blue := NewColorAttrib(color.RGBA{B: 255, A: 255})
	assert.Equal(t, blue, red.Compose(blue))
}

func TestColorAttribCompareTo(t *testing.T) {
	a := NewColorAttrib(color.RGBA{R: 255, A: 255})
	b := NewColorAttrib(color.RGBA{R: 255, A: 255})
	assert.Equal(t, 0, a.CompareTo(b))

	c := NewColorAttrib(color.RGBA{G: 255, A: 255})
	assert.NotEqual(t, 0, a.CompareTo(c))
}

func TestTransparencyLowerAttribCanOverride(t *testing.T) {
	assert.True(t, TransparencyAttrib{}.LowerAttribCanOverride())
	assert.False(t, DepthTestAttrib{}.LowerAttribCanOverride())
	assert.True(t, TransparencyAttrib{Mode: TransparencyDual}.HasCullCallback())
	assert.False(t, TransparencyAttrib{Mode: TransparencyAlpha}.HasCullCallback())
}

func TestCullBinIndexRegistersUnknownBin(t *testing.T) {
	idx := Bins.Index("my-custom-bin")
	assert.GreaterOrEqual(t, idx, 3) // past the three built-in bins

	again := Bins.Index("my-custom-bin")
	assert.Equal(t, idx, again)
}

func TestSlotRegistrySortedOrder(t *testing.T) {
	sorted := Registry.SortedSlots()
	assert.NotEmpty(t, sorted)
	for i := 1; i < len(sorted); i++ {
		assert.LessOrEqual(t, Registry.slots[sorted[i-1]].sortRank, Registry.slots[sorted[i]].sortRank)
	}
	assert.Contains(t, sorted, CullBinSlot)
	assert.Contains(t, sorted, ColorSlot)
}

func TestAttribInterner(t *testing.T) {
	a := NewColorAttrib(color.RGBA{R: 10, A: 255})
	b := NewColorAttrib(color.RGBA{R: 10, A: 255})
	ia := AttribInterner.Intern(a)
	ib := AttribInterner.Intern(b)
	assert.Equal(t, ia, ib)
}
