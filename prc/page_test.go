// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageDeclareLookup(t *testing.T) {
	p := NewPage("test", false, 1)
	p.Declare("notify-level", "warning", "test:1")
	p.Declare("notify-level", "debug", "test:2") // later line shadows earlier

	decl, ok := p.Lookup("notify-level")
	assert.True(t, ok)
	assert.Equal(t, "debug", decl.Value)

	_, ok = p.Lookup("unknown-var")
	assert.False(t, ok)

	assert.Len(t, p.Declarations(), 2)
}

func TestManagerOrderedPages(t *testing.T) {
	m := NewManager()
	a := m.MakeExplicitPage("a")
	b := m.MakeExplicitPage("b")
	b.Trust = 1

	pages := m.OrderedPages()
	assert.Len(t, pages, 2)
	// Higher trust level sorts first regardless of creation order.
	assert.Same(t, b, pages[0])
	assert.Same(t, a, pages[1])
}

func TestManagerExplicitBeforeImplicit(t *testing.T) {
	m := NewManager()
	explicit := m.MakeExplicitPage("explicit")
	implicit := NewPage("implicit", true, 100)
	m.implicit = append(m.implicit, implicit)

	pages := m.OrderedPages()
	assert.Len(t, pages, 2)
	assert.Same(t, explicit, pages[0])
	assert.Same(t, implicit, pages[1])
}

func TestManagerDeleteExplicitPage(t *testing.T) {
	m := NewManager()
	p := m.MakeExplicitPage("p")
	assert.Equal(t, 1, m.NumPages())

	ok := m.DeleteExplicitPage(p)
	assert.True(t, ok)
	assert.Equal(t, 0, m.NumPages())

	ok = m.DeleteExplicitPage(p)
	assert.False(t, ok)
}

func TestGlobsMatch(t *testing.T) {
	g := Globs{"*.prc", "*.cfg"}
	assert.True(t, g.Match("test.prc"))
	assert.True(t, g.Match("test.cfg"))
	assert.False(t, g.Match("test.toml"))
}

func TestTrustRegistryVerify(t *testing.T) {
	tr := &TrustRegistry{}
	assert.Equal(t, 0, tr.Verify([]byte("msg"), nil))
	assert.Equal(t, 0, tr.Verify([]byte("msg"), []byte("not-a-real-signature")))
}

func TestParsePrcText(t *testing.T) {
	text := []byte("# a comment\nnotify-level-glxdisplay debug\n\nwin-size 800 600\n")
	decls, sig := parsePrcText(text, "mem")
	assert.Nil(t, sig)
	assert.Len(t, decls, 2)
	assert.Equal(t, "notify-level-glxdisplay", decls[0].VarName)
	assert.Equal(t, "debug", decls[0].Value)
	assert.Equal(t, "win-size", decls[1].VarName)
	assert.Equal(t, "800 600", decls[1].Value)
}

func TestParsePrcTextSignatureSplit(t *testing.T) {
	text := []byte("win-size 800 600\n" + signatureMarker + "\nbase64gibberish\n")
	decls, sig := parsePrcText(text, "mem")
	assert.Len(t, decls, 1)
	assert.Equal(t, []byte("base64gibberish"), sig)
}
