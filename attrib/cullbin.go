// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package attrib

import (
	"log/slog"
	"sync"
)

// BinManager assigns a dense index to each named draw-call bin,
// registering a new, unsorted bin on the fly for any name it hasn't
// seen before.
type BinManager struct {
	mu     sync.Mutex
	byName map[string]int
	names  []string
}

// Bins is the process-wide bin manager.
var Bins = &BinManager{byName: map[string]int{"default": 0, "opaque": 1, "transparent": 2}, names: []string{"default", "opaque", "transparent"}}

// Index returns the dense index for name, registering an unsorted bin
// for it (logging a warning) if name hasn't been seen before.
func (m *BinManager) Index(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if idx, ok := m.byName[name]; ok {
		return idx
	}
	slog.Warn("attrib: unknown cull bin, creating unsorted bin", "name", name)
	idx := len(m.names)
	m.byName[name] = idx
	m.names = append(m.names, name)
	return idx
}

// CullBinSlot is the dense slot assigned to [CullBinAttrib].
var CullBinSlot = Registry.Register("CullBinAttrib", false, 5, CullBinAttrib{Bin: "default", DrawOrder: 0})

// CullBinAttrib names the bin geometry using this state sorts into, and
// its draw order within that bin. [rstate.State.GetBinIndex] and
// [rstate.State.GetDrawOrder] consult it lazily.
type CullBinAttrib struct {
	Bin       string
	DrawOrder int
}

// Slot implements [Attrib].
func (a CullBinAttrib) Slot() Slot { return CullBinSlot }

// CompareTo implements [Attrib].
func (a CullBinAttrib) CompareTo(other Attrib) int {
	b := other.(CullBinAttrib)
	if a.Bin != b.Bin {
		if a.Bin < b.Bin {
			return -1
		}
		return 1
	}
	return a.DrawOrder - b.DrawOrder
}

// Compose implements [Attrib].
func (a CullBinAttrib) Compose(other Attrib) Attrib { return other }

// InvertCompose implements [Attrib].
func (a CullBinAttrib) InvertCompose(other Attrib) Attrib { return other }

// LowerAttribCanOverride implements [Attrib].
func (a CullBinAttrib) LowerAttribCanOverride() bool { return false }

// HasCullCallback implements [Attrib].
func (a CullBinAttrib) HasCullCallback() bool { return false }

// BinIndex returns the dense bin index for this attribute's bin name.
func (a CullBinAttrib) BinIndex() int { return Bins.Index(a.Bin) }
