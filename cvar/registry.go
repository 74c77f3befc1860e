// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cvar

import (
	"log/slog"
	"sync"
)

// Declared is the type-erased view of a [Variable] used for listing and
// typo suggestions, independent of its value type.
type Declared interface {
	Name() string
	Description() string
}

var (
	registryMu sync.Mutex
	registry   []Declared
	byName     = map[string]Declared{}
)

func register(v Declared) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = append(registry, v)
	byName[v.Name()] = v
}

// All returns every declared variable, in declaration order. Intended
// for admin tooling (a "--list-config" style dump), not the hot path.
func All() []Declared {
	registryMu.Lock()
	defer registryMu.Unlock()
	out := make([]Declared, len(registry))
	copy(out, registry)
	return out
}

// Lookup returns the declared variable with the given name, if any —
// an administrative helper (the backing for a "--list-config" style
// tool), not something [Variable.Value] itself calls. If name matches
// no declared variable, Lookup logs a warning carrying the closest
// declared name by Jaro-Winkler similarity, if one scores high enough
// to be worth suggesting.
func Lookup(name string) (Declared, bool) {
	registryMu.Lock()
	v, ok := byName[name]
	registryMu.Unlock()
	if ok {
		return v, true
	}
	if suggestion, found := Suggest(name); found {
		slog.Warn("cvar: unknown config variable", "name", name, "did_you_mean", suggestion)
	} else {
		slog.Warn("cvar: unknown config variable", "name", name)
	}
	return nil, false
}
