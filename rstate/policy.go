// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rstate

import "pandacore.dev/engine/cvar"

// Policy flags are read from the config page store. They are ordinary [cvar.Bool] /
// [cvar.Float64] variables so that a deployment can flip them from a
// .prc page exactly like any other config variable; rstate just
// supplies the name, default, and description.
var (
	stateCache = cvar.Bool("state-cache", true,
		"If true, the results of composing and inverting RenderStates are cached, "+
			"to avoid repeating potentially expensive composition operations.")

	garbageCollectStates = cvar.Bool("garbage-collect-states", true,
		"If true, unreferenced RenderStates are periodically removed from the "+
			"cache by calling GarbageCollect, instead of only being removed when "+
			"a composition cache reference is dropped.")

	garbageCollectStatesRate = cvar.Float64("garbage-collect-states-rate", 1.0/30.0,
		"The fraction of the state cache scanned by each call to GarbageCollect.")

	autoBreakCycles = cvar.Bool("auto-break-cycles", true,
		"If true, composition cycles are detected and broken automatically "+
			"whenever a RenderState's only remaining references are cache references.")

	uniquifyStates = cvar.Bool("uniquify-states", true,
		"If true, newly constructed RenderStates are always passed through the "+
			"interner, even when the state cache itself is disabled.")

	uniquifyAttribs = cvar.Bool("uniquify-attribs", true,
		"If true, attribute pointers are assumed already canonical when a "+
			"RenderState is interned. If false, each attribute is additionally "+
			"passed through the attribute-level interner first.")
)
