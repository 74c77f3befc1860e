// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cvar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pandacore.dev/engine/prc"
)

func TestBoolVariableDefaultAndOverride(t *testing.T) {
	prc.Default = prc.NewManager()

	v := Bool("test-flag-a", true, "a test flag")
	assert.True(t, v.Value())

	page := prc.Default.MakeExplicitPage("test")
	page.Declare("test-flag-a", "false", "test:1")
	v.InvalidateCache()
	assert.False(t, v.Value())
}

func TestVariableMalformedValueSkipped(t *testing.T) {
	prc.Default = prc.NewManager()
	v := Int("test-int-a", 7, "a test int")

	page := prc.Default.MakeExplicitPage("test")
	page.Declare("test-int-a", "not-a-number", "test:1")
	v.InvalidateCache()

	assert.Equal(t, 7, v.Value())
}

func TestVariableHighestPriorityPageWins(t *testing.T) {
	prc.Default = prc.NewManager()
	v := String("test-string-a", "default", "a test string")

	low := prc.Default.MakeExplicitPage("low")
	low.Declare("test-string-a", "from-low", "low:1")
	high := prc.Default.MakeExplicitPage("high")
	high.Trust = 5
	high.Declare("test-string-a", "from-high", "high:1")
	v.InvalidateCache()

	assert.Equal(t, "from-high", v.Value())
}

func TestVariableCachesUntilInvalidated(t *testing.T) {
	prc.Default = prc.NewManager()
	v := Float64("test-float-a", 1.5, "a test float")
	// MakeExplicitPage invalidates every variable, so the page is created
	// before the value is first cached; Declare alone does not invalidate.
	page := prc.Default.MakeExplicitPage("test")
	assert.Equal(t, 1.5, v.Value())

	page.Declare("test-float-a", "3.5", "test:1")
	// No InvalidateCache call: stale cached value should persist.
	assert.Equal(t, 1.5, v.Value())

	v.InvalidateCache()
	assert.Equal(t, 3.5, v.Value())
}

func TestMakeExplicitPageInvalidatesCache(t *testing.T) {
	prc.Default = prc.NewManager()
	v := Bool("test-flag-b", false, "a test flag")
	assert.False(t, v.Value())

	page := prc.Default.MakeExplicitPage("test")
	page.Declare("test-flag-b", "true", "test:1")
	// MakeExplicitPage itself calls invalidate(), which every Variable
	// subscribed to via OnInvalidate.
	assert.True(t, v.Value())
}

func TestSuggestFindsCloseMatch(t *testing.T) {
	Bool("notify-level-glxdisplay", false, "")
	name, ok := Suggest("notify-level-glxdisplai")
	assert.True(t, ok)
	assert.Equal(t, "notify-level-glxdisplay", name)
}
