// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bam

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pandacore.dev/engine/attrib"
	"pandacore.dev/engine/rstate"
)

func TestEncodeDecodeStateRoundTrips(t *testing.T) {
	s := rstate.Make(
		attrib.Entry{Handle: attrib.NewColorAttrib(color.RGBA{R: 255, A: 255}), Override: 2},
		attrib.Entry{Handle: attrib.DepthTestAttrib{Mode: attrib.DepthTestLess}, Override: 0},
	)
	defer rstate.Unref(s)

	reg := NewTableRegistry()
	var buf bytes.Buffer
	require.NoError(t, EncodeState(&buf, reg, s))

	decoded, err := DecodeState(&buf, reg)
	require.NoError(t, err)
	defer rstate.Unref(decoded)

	assert.Same(t, s, decoded)
}

func TestDecodeStateUnresolvedPointerErrors(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{1, 0})          // count = 1
	buf.Write([]byte{99, 0, 0, 0})   // id = 99, never interned
	buf.Write([]byte{0, 0, 0, 0})    // override = 0

	_, err := DecodeState(&buf, NewTableRegistry())
	assert.Error(t, err)
}

func TestTableRegistryInternDedupesEqualAttribs(t *testing.T) {
	reg := NewTableRegistry()
	a := attrib.NewColorAttrib(color.RGBA{R: 10, A: 255})
	b := attrib.NewColorAttrib(color.RGBA{R: 10, A: 255})

	ida := reg.Intern(a)
	idb := reg.Intern(b)
	assert.Equal(t, ida, idb)

	got, ok := reg.Lookup(ida)
	assert.True(t, ok)
	assert.Equal(t, 0, got.CompareTo(a))

	_, ok = reg.Lookup(0)
	assert.False(t, ok, "id 0 is reserved as unresolved")
}
