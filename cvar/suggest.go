// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cvar

import (
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"pandacore.dev/engine/prc"
)

// suggestThreshold is the minimum Jaro-Winkler similarity at which an
// unrecognized variable name is worth suggesting a correction for.
const suggestThreshold = 0.82

var jaroWinkler = metrics.NewJaroWinkler()

// Suggest returns the closest declared variable name to name by
// Jaro-Winkler similarity, if any scores above [suggestThreshold].
// This is a diagnostic helper, not used on the Value() hot path: it
// exists for catching typos in ".prc" files, which otherwise fail
// silently — an unrecognized variable name is just never read by
// anything.
func Suggest(name string) (string, bool) {
	registryMu.Lock()
	names := make([]string, len(registry))
	for i, d := range registry {
		names[i] = d.Name()
	}
	registryMu.Unlock()

	best, bestScore := "", 0.0
	for _, candidate := range names {
		score := strutil.Similarity(name, candidate, jaroWinkler)
		if score > bestScore {
			best, bestScore = candidate, score
		}
	}
	if bestScore < suggestThreshold {
		return "", false
	}
	return best, true
}

// Unknown describes a declaration in a loaded page whose variable name
// matches no declared [Variable].
type Unknown struct {
	VarName    string
	Source     string
	Suggestion string
}

// UnknownVariables scans every currently loaded page for declarations
// whose name was never registered via [Bool], [Int], [Float64], or
// [String], and reports each one with its best typo suggestion, if any.
func UnknownVariables() []Unknown {
	var out []Unknown
	for _, page := range prc.Default.OrderedPages() {
		for _, decl := range page.Declarations() {
			if _, ok := Lookup(decl.VarName); ok {
				continue
			}
			u := Unknown{VarName: decl.VarName, Source: decl.Source}
			if suggestion, ok := Suggest(decl.VarName); ok {
				u.Suggestion = suggestion
			}
			out = append(out, u)
		}
	}
	return out
}
