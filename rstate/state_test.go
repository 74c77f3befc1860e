// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstate

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"pandacore.dev/engine/attrib"
	"pandacore.dev/engine/prc"
)

func TestMakeEmptyIsCanonical(t *testing.T) {
	a := MakeEmpty()
	defer Unref(a)
	b := MakeEmpty()
	defer Unref(b)
	assert.Same(t, a, b)
	assert.True(t, a.IsEmpty())
}

func TestMakeDeduplicatesStructurallyEqualStates(t *testing.T) {
	a := Make(attrib.Entry{Handle: attrib.ColorAttrib{Off: true}, Override: 0})
	defer Unref(a)
	b := Make(attrib.Entry{Handle: attrib.ColorAttrib{Off: true}, Override: 0})
	defer Unref(b)
	assert.Same(t, a, b)
}

func TestMakeLaterEntryForSameSlotWins(t *testing.T) {
	s := Make(
		attrib.Entry{Handle: attrib.DepthTestAttrib{Mode: attrib.DepthTestLess}, Override: 0},
		attrib.Entry{Handle: attrib.DepthTestAttrib{Mode: attrib.DepthTestAlways}, Override: 0},
	)
	defer Unref(s)
	e, ok := s.GetAttrib(attrib.DepthTestSlot)
	assert.True(t, ok)
	assert.Equal(t, attrib.DepthTestAlways, e.Handle.(attrib.DepthTestAttrib).Mode)
}

func TestAddAttribRemoveAttrib(t *testing.T) {
	base := MakeEmpty()
	defer Unref(base)

	withColor := base.AddAttrib(attrib.ColorAttrib{Off: true}, 0)
	defer Unref(withColor)
	assert.True(t, withColor.HasAttrib(attrib.ColorSlot))

	removed := withColor.RemoveAttrib(attrib.ColorSlot)
	defer Unref(removed)
	assert.False(t, removed.HasAttrib(attrib.ColorSlot))
	assert.Same(t, base, removed)
}

func TestAddAttribKeepsHigherExistingOverride(t *testing.T) {
	s := Make(attrib.Entry{Handle: attrib.DepthTestAttrib{Mode: attrib.DepthTestLess}, Override: 10})
	defer Unref(s)

	unchanged := s.AddAttrib(attrib.DepthTestAttrib{Mode: attrib.DepthTestAlways}, 0)
	defer Unref(unchanged)
	assert.Same(t, s, unchanged)
	e, _ := unchanged.GetAttrib(attrib.DepthTestSlot)
	assert.Equal(t, attrib.DepthTestLess, e.Handle.(attrib.DepthTestAttrib).Mode)

	replaced := s.AddAttrib(attrib.DepthTestAttrib{Mode: attrib.DepthTestAlways}, 20)
	defer Unref(replaced)
	e, _ = replaced.GetAttrib(attrib.DepthTestSlot)
	assert.Equal(t, attrib.DepthTestAlways, e.Handle.(attrib.DepthTestAttrib).Mode)
}

func TestAdjustAllPriorities(t *testing.T) {
	s := Make(attrib.Entry{Handle: attrib.DepthTestAttrib{Mode: attrib.DepthTestLess}, Override: 5})
	defer Unref(s)
	adjusted := s.AdjustAllPriorities(10)
	defer Unref(adjusted)
	e, _ := adjusted.GetAttrib(attrib.DepthTestSlot)
	assert.EqualValues(t, 15, e.Override)
}

func TestAdjustAllPrioritiesClampsAtZero(t *testing.T) {
	s := Make(attrib.Entry{Handle: attrib.DepthTestAttrib{Mode: attrib.DepthTestLess}, Override: 5})
	defer Unref(s)
	adjusted := s.AdjustAllPriorities(-20)
	defer Unref(adjusted)
	e, _ := adjusted.GetAttrib(attrib.DepthTestSlot)
	assert.EqualValues(t, 0, e.Override)
}

func TestComposeHigherOverrideWins(t *testing.T) {
	lower := Make(attrib.Entry{Handle: attrib.DepthTestAttrib{Mode: attrib.DepthTestLess}, Override: 0})
	defer Unref(lower)
	higher := Make(attrib.Entry{Handle: attrib.DepthTestAttrib{Mode: attrib.DepthTestAlways}, Override: 10})
	defer Unref(higher)

	result := lower.Compose(higher)
	defer Unref(result)
	e, _ := result.GetAttrib(attrib.DepthTestSlot)
	assert.Equal(t, attrib.DepthTestAlways, e.Handle.(attrib.DepthTestAttrib).Mode)
}

func TestComposeLowerAttribCanOverride(t *testing.T) {
	lowerOverride := Make(attrib.Entry{Handle: attrib.TransparencyAttrib{Mode: attrib.TransparencyAlpha}, Override: 0})
	defer Unref(lowerOverride)
	higherOverride := Make(attrib.Entry{Handle: attrib.TransparencyAttrib{Mode: attrib.TransparencyNone}, Override: 10})
	defer Unref(higherOverride)

	// lowerOverride's attrib opts into LowerAttribCanOverride, so the
	// higher-override side wins outright rather than composing.
	result := lowerOverride.Compose(higherOverride)
	defer Unref(result)
	e, _ := result.GetAttrib(attrib.TransparencySlot)
	assert.Equal(t, attrib.TransparencyNone, e.Handle.(attrib.TransparencyAttrib).Mode)
}

func TestComposeCachesResult(t *testing.T) {
	a := Make(attrib.Entry{Handle: attrib.ColorAttrib{Off: true}, Override: 0})
	defer Unref(a)
	b := Make(attrib.Entry{Handle: attrib.DepthTestAttrib{Mode: attrib.DepthTestLess}, Override: 0})
	defer Unref(b)

	before := Stats()
	r1 := a.Compose(b)
	afterFirst := Stats()
	r2 := a.Compose(b)
	afterSecond := Stats()

	assert.Same(t, r1, r2)
	assert.Greater(t, afterFirst.ComposeMisses, before.ComposeMisses)
	assert.Greater(t, afterSecond.ComposeHits, afterFirst.ComposeHits)

	Unref(r1)
	Unref(r2)
}

func TestInvertComposeRoundTrips(t *testing.T) {
	base := Make(attrib.Entry{Handle: attrib.DepthTestAttrib{Mode: attrib.DepthTestLess}, Override: 0})
	defer Unref(base)
	other := Make(attrib.Entry{Handle: attrib.DepthTestAttrib{Mode: attrib.DepthTestAlways}, Override: 5})
	defer Unref(other)

	delta := base.InvertCompose(other)
	defer Unref(delta)
	recomposed := base.Compose(delta)
	defer Unref(recomposed)

	assert.Equal(t, 0, recomposed.CompareTo(other))
}

func TestInvertComposeAgainstSelfIsEmpty(t *testing.T) {
	s := Make(attrib.Entry{Handle: attrib.NewColorAttrib(color.RGBA{R: 255, A: 255}), Override: 0})
	defer Unref(s)

	delta := s.InvertCompose(s)
	defer Unref(delta)
	assert.True(t, delta.IsEmpty())

	empty := MakeEmpty()
	defer Unref(empty)
	assert.Same(t, empty, delta)
}

func TestCompareSortOrdersBySortRank(t *testing.T) {
	withBin := Make(attrib.Entry{Handle: attrib.CullBinAttrib{Bin: "default"}, Override: 0})
	defer Unref(withBin)
	withoutBin := MakeEmpty()
	defer Unref(withoutBin)

	assert.Equal(t, -1, withBin.CompareSort(withoutBin))
	assert.Equal(t, 1, withoutBin.CompareSort(withBin))
}

func TestGetBinIndexAndDrawOrder(t *testing.T) {
	s := Make(attrib.Entry{Handle: attrib.CullBinAttrib{Bin: "transparent", DrawOrder: 3}, Override: 0})
	defer Unref(s)
	assert.Equal(t, attrib.Bins.Index("transparent"), s.GetBinIndex())
	assert.Equal(t, 3, s.GetDrawOrder())
}

func TestHasCullCallbackFoldsAcrossSlots(t *testing.T) {
	dual := Make(attrib.Entry{Handle: attrib.TransparencyAttrib{Mode: attrib.TransparencyDual}, Override: 0})
	defer Unref(dual)
	assert.True(t, dual.HasCullCallback())

	none := MakeEmpty()
	defer Unref(none)
	assert.False(t, none.HasCullCallback())
}

func TestUnrefDestroysUnreferencedState(t *testing.T) {
	before := NumStates()
	s := Make(attrib.Entry{Handle: attrib.DepthTestAttrib{Mode: attrib.DepthTestEqual}, Override: 0})
	assert.Equal(t, before+1, NumStates())
	Unref(s)
	assert.Equal(t, before, NumStates())
}

func TestUnrefIfOneOnlyActsAtExactlyOneRef(t *testing.T) {
	s := Ref(MakeEmpty())
	defer Unref(s)
	// s now has total_refcount == 2 (one from MakeEmpty, one from Ref).
	assert.False(t, UnrefIfOne(s))
	Unref(s)
}

func TestGarbageCollectRemovesCacheOnlyStates(t *testing.T) {
	a := Make(attrib.Entry{Handle: attrib.ColorAttrib{Off: true}, Override: 0})
	b := Make(attrib.Entry{Handle: attrib.DepthTestAttrib{Mode: attrib.DepthTestLess}, Override: 0})

	r := a.Compose(b)
	Unref(r) // r is now kept alive only by a's composition cache.

	before := NumStates()
	GarbageCollect()
	_ = before

	Unref(a)
	Unref(b)
}

func TestUnrefBreaksForcedCompositionCycleWithoutGarbageCollect(t *testing.T) {
	// With garbage-collect-states off, nothing ever sweeps the table, so
	// a cycle can only be reclaimed by the check unrefLocked itself runs
	// right before dropping the one non-cache reference that was keeping
	// a cycle member alive. auto-break-cycles stays at its default of
	// true.
	page := prc.Default.MakeExplicitPage("test-forced-cycle")
	page.Declare("garbage-collect-states", "false", "test")
	defer prc.Default.DeleteExplicitPage(page)

	a := Make(attrib.Entry{Handle: attrib.ColorAttrib{Off: true}, Override: 0})
	b := Make(attrib.Entry{Handle: attrib.DepthTestAttrib{Mode: attrib.DepthTestLess}, Override: 0})
	c := Make(attrib.Entry{Handle: attrib.DepthTestAttrib{Mode: attrib.DepthTestAlways}, Override: 0})
	d := Make(attrib.Entry{Handle: attrib.ColorAttrib{Off: true}, Override: 5})

	globalLock.Lock()
	// Force a composition-cache cycle unreachable from real composition:
	// a.compose(b) = c, c.compose(d) = a. b and d each keep one real
	// reference of their own throughout, as an ordinary scene-graph
	// state would; a and c are kept alive purely by each other's cache
	// reference once their own single reference below is dropped.
	cacheComposeLocked(a, b, c)
	cacheComposeLocked(c, d, a)
	globalLock.Unlock()

	before := NumStates()
	Unref(a) // the checkpoint in unrefLocked fires here and breaks the a/c cycle.
	Unref(c) // dropping c's own reference then reclaims both a and c.
	assert.Less(t, NumStates(), before)

	Unref(b)
	Unref(d)
}

func TestGarbageCollectBreaksForcedCompositionCycle(t *testing.T) {
	a := Make(attrib.Entry{Handle: attrib.ColorAttrib{Off: true}, Override: 0})
	b := Make(attrib.Entry{Handle: attrib.DepthTestAttrib{Mode: attrib.DepthTestLess}, Override: 0})
	c := Make(attrib.Entry{Handle: attrib.DepthTestAttrib{Mode: attrib.DepthTestAlways}, Override: 0})
	d := Make(attrib.Entry{Handle: attrib.ColorAttrib{Off: true}, Override: 5})
	defer Unref(b)
	defer Unref(d)

	globalLock.Lock()
	// a.compose(b) = c, c.compose(d) = a, the same forced cycle as above.
	// b and d stay referenced by the test throughout, so the two forward
	// cache entries making up the cycle are never invalidated by either
	// operand going away — only a's and c's own references get dropped
	// below, leaving them cache-only and mutually keeping each other
	// alive until a GC sweep's own cycle checkpoint breaks it.
	cacheComposeLocked(a, b, c)
	cacheComposeLocked(c, d, a)
	globalLock.Unlock()

	Unref(a)
	Unref(c)
	assert.True(t, a.HasOnlyCacheReferences())
	assert.True(t, c.HasOnlyCacheReferences())

	// Force a full-table scan in this one call regardless of how large
	// the table has grown from other tests sharing this process — the
	// rolling cursor otherwise only guarantees a full pass eventually,
	// not within a single call.
	page := prc.Default.MakeExplicitPage("test-full-gc-sweep")
	page.Declare("garbage-collect-states-rate", "1", "test")
	defer prc.Default.DeleteExplicitPage(page)

	before := NumStates()
	removed := GarbageCollect()
	assert.Greater(t, removed, 0)
	assert.Less(t, NumStates(), before)
}

func TestDetectAndBreakCyclesIsANoOpWithoutCycles(t *testing.T) {
	s := Make(attrib.Entry{Handle: attrib.ColorAttrib{Off: true}, Override: 0})
	defer Unref(s)
	assert.Equal(t, 0, DetectAndBreakCycles())
}

func TestUnrefBelowZeroDegradesWithoutPanicking(t *testing.T) {
	s := Make(attrib.Entry{Handle: attrib.ColorAttrib{Off: true}, Override: 0})
	Unref(s) // drops s to zero and destroys it.
	assert.NotPanics(t, func() { Unref(s) })
}

func TestClearCacheReleasesCacheReferences(t *testing.T) {
	a := Make(attrib.Entry{Handle: attrib.ColorAttrib{Off: true}, Override: 0})
	defer Unref(a)
	b := Make(attrib.Entry{Handle: attrib.DepthTestAttrib{Mode: attrib.DepthTestLess}, Override: 0})
	defer Unref(b)

	r := a.Compose(b)
	Unref(r)
	assert.True(t, r.HasOnlyCacheReferences())

	ClearCache()
	assert.EqualValues(t, 0, r.CacheRefCount())
}
