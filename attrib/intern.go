// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package attrib

import "sync"

// Interner deduplicates attribute instances by value equality
// ([Attrib.CompareTo]), independently of the RenderState interner. It
// backs the canonicalization path a RenderState's own interner takes
// when the uniquify-attribs policy is disabled: each attribute is
// canonicalized through this attribute-level interner before the
// state itself is inserted, so two states built from separately
// constructed but equal attributes hold the same attribute instances.
type Interner struct {
	mu  sync.Mutex
	byS map[Slot][]Attrib
}

// AttribInterner is the process-wide attribute-level interner.
var AttribInterner = &Interner{byS: make(map[Slot][]Attrib)}

// Intern returns the canonical instance equivalent to a, installing a as
// the canonical instance the first time its value is seen for its slot.
func (in *Interner) Intern(a Attrib) Attrib {
	in.mu.Lock()
	defer in.mu.Unlock()
	slot := a.Slot()
	bucket := in.byS[slot]
	for _, c := range bucket {
		if c.CompareTo(a) == 0 {
			return c
		}
	}
	in.byS[slot] = append(bucket, a)
	return a
}
