// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cvar provides typed, cached accessors over the layered config
// page store in [pandacore.dev/engine/prc]. Each [Variable] scans the page stack head to tail
// on first use, caches the resolved value, and drops the cache whenever
// the page stack changes shape.
package cvar

import (
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"pandacore.dev/engine/prc"
)

// Variable is a named, typed, cached lookup against the process-wide
// config page store. The zero value is not usable; construct one with
// [Bool], [Int], [Float64], or [String].
type Variable[T any] struct {
	name  string
	def   T
	desc  string
	parse func(string) (T, bool)

	mu     sync.Mutex
	valid  bool
	cached T
	source string
}

func newVariable[T any](name string, def T, desc string, parse func(string) (T, bool)) *Variable[T] {
	v := &Variable[T]{name: name, def: def, desc: desc, parse: parse}
	prc.Default.OnInvalidate(v.InvalidateCache)
	register(v)
	return v
}

// Bool declares a boolean config variable. Recognized truthy spellings
// are "1", "true", "yes", "on"; falsy are "0", "false", "no", "off"
// (case-insensitive), matching Panda3D's ConfigVariableBool.
func Bool(name string, def bool, desc string) *Variable[bool] {
	return newVariable(name, def, desc, parseBool)
}

// Int declares an integer config variable.
func Int(name string, def int, desc string) *Variable[int] {
	return newVariable(name, def, desc, func(s string) (int, bool) {
		n, err := strconv.ParseInt(s, 0, 64)
		return int(n), err == nil
	})
}

// Float64 declares a floating-point config variable.
func Float64(name string, def float64, desc string) *Variable[float64] {
	return newVariable(name, def, desc, func(s string) (float64, bool) {
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	})
}

// String declares a string config variable. The raw declaration value
// is returned verbatim, so parse always succeeds.
func String(name string, def string, desc string) *Variable[string] {
	return newVariable(name, def, desc, func(s string) (string, bool) { return s, true })
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}

// Value returns the variable's current resolved value: the first page,
// scanned highest-priority first, that declares this variable with a
// value of the right type. A page that declares the variable with a
// malformed value is logged and skipped, as if it had not declared it
// at all.
func (v *Variable[T]) Value() T {
	v.mu.Lock()
	if v.valid {
		defer v.mu.Unlock()
		return v.cached
	}
	v.mu.Unlock()

	val, source := v.resolve()

	v.mu.Lock()
	v.cached, v.source, v.valid = val, source, true
	v.mu.Unlock()
	return val
}

func (v *Variable[T]) resolve() (T, string) {
	for _, page := range prc.Default.OrderedPages() {
		decl, ok := page.Lookup(v.name)
		if !ok {
			continue
		}
		parsed, ok := v.parse(decl.Value)
		if !ok {
			slog.Warn("cvar: malformed value, skipping", "var", v.name, "source", decl.Source, "value", decl.Value)
			continue
		}
		return parsed, decl.Source
	}
	return v.def, "default"
}

// InvalidateCache drops the cached value, forcing the next [Variable.Value]
// call to rescan the page stack. [prc.Manager] calls this automatically
// on every page-list change; exported so callers can force a rescan
// without a page change (e.g. after editing HostBlob).
func (v *Variable[T]) InvalidateCache() {
	v.mu.Lock()
	v.valid = false
	v.mu.Unlock()
}

// Name returns the variable's declared name.
func (v *Variable[T]) Name() string { return v.name }

// Description returns the variable's help text.
func (v *Variable[T]) Description() string { return v.desc }

// Source returns where the cached value most recently came from
// ("default", or a page name/file:line), valid only after a call to
// [Variable.Value].
func (v *Variable[T]) Source() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.source
}
