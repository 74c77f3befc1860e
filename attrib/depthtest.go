// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package attrib

// DepthTestMode selects how incoming fragments are compared against the
// depth buffer.
type DepthTestMode int

const (
	DepthTestNone DepthTestMode = iota
	DepthTestLess
	DepthTestLessEqual
	DepthTestEqual
	DepthTestAlways
)

// DepthTestSlot is the dense slot assigned to [DepthTestAttrib].
var DepthTestSlot = Registry.Register("DepthTestAttrib", false, 20, DepthTestAttrib{Mode: DepthTestLess})

// DepthTestAttrib selects the depth comparison function.
type DepthTestAttrib struct {
	Mode DepthTestMode
}

// Slot implements [Attrib].
func (a DepthTestAttrib) Slot() Slot { return DepthTestSlot }

// CompareTo implements [Attrib].
func (a DepthTestAttrib) CompareTo(other Attrib) int {
	return int(a.Mode) - int(other.(DepthTestAttrib).Mode)
}

// Compose implements [Attrib]: other's mode always wins, matching the
// original RenderAttrib's "later value replaces earlier value" default
// for attributes with no richer merge rule.
func (a DepthTestAttrib) Compose(other Attrib) Attrib { return other }

// InvertCompose implements [Attrib].
func (a DepthTestAttrib) InvertCompose(other Attrib) Attrib { return other }

// LowerAttribCanOverride implements [Attrib].
func (a DepthTestAttrib) LowerAttribCanOverride() bool { return false }

// HasCullCallback implements [Attrib].
func (a DepthTestAttrib) HasCullCallback() bool { return false }
