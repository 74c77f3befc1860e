// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package prc implements the layered, priority-ordered config page store
//: pages are discovered from the filesystem (optionally
// decrypted or produced by a subprocess) or declared explicitly by
// calling code, ordered by (is_implicit, trust_level desc,
// sequence_number desc), and queried head-to-tail by [pandacore.dev/engine/cvar].
package prc

import "sync"

// Declaration is one `<variable-name> <value>` line parsed from a page,
// together with where it came from.
type Declaration struct {
	VarName string
	Value   string
	Source  string // file:line, "builtin", or an explicit-page name
}

// Page is an ordered set of declarations loaded from one source: a file,
// the host's inline blob, or a subprocess's stdout.
type Page struct {
	Name      string
	Implicit  bool
	Seq       int64
	Trust     int
	Signature []byte

	mu    sync.Mutex
	decls []Declaration
	// byVar indexes decls by name for fast lookup; declarations appended
	// later in the same page shadow earlier ones with the same name,
	// matching a single file's own line-by-line override behavior.
	byVar map[string]int
}

// NewPage returns an empty page. Most callers should go through
// [Manager.MakeExplicitPage] or the loader in discover.go instead of
// calling this directly.
func NewPage(name string, implicit bool, seq int64) *Page {
	return &Page{Name: name, Implicit: implicit, Seq: seq, byVar: make(map[string]int)}
}

// Declare appends a declaration to the page. If name was already
// declared in this page, the new value shadows it for future lookups
//.
func (p *Page) Declare(name, value, source string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.byVar == nil {
		p.byVar = make(map[string]int)
	}
	p.byVar[name] = len(p.decls)
	p.decls = append(p.decls, Declaration{VarName: name, Value: value, Source: source})
}

// Lookup returns the page's current declaration for name, if any.
func (p *Page) Lookup(name string) (Declaration, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	idx, ok := p.byVar[name]
	if !ok {
		return Declaration{}, false
	}
	return p.decls[idx], true
}

// Declarations returns every declaration in the page, in the order they
// were parsed or added.
func (p *Page) Declarations() []Declaration {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Declaration, len(p.decls))
	copy(out, p.decls)
	return out
}
